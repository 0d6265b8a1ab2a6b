package router

import (
	"github.com/soar/stickprofile/internal/axis"
	"github.com/soar/stickprofile/internal/calib"
)

// Config controls auto-repeat and adjustment step sizes. Delays are in frames.
type Config struct {
	// RepeatDelay is how long a key must be held before it repeats. Zero
	// disables auto-repeat.
	RepeatDelay int
	// RepeatInterval is the number of frames between repeats.
	RepeatInterval int
	DeadzoneStep   float64
	ExponentStep   float64
}

// DefaultConfig is about a third of a second delay and 15 repeats per second at 60Hz.
var DefaultConfig = Config{
	RepeatDelay:    20,
	RepeatInterval: 4,
	DeadzoneStep:   0.01,
	ExponentStep:   0.1,
}

// priority decides which key wins when several fire in the same frame.
var priority = [...]Key{Back, Select, Next, Prev, AdjustUp, AdjustDown}

func repeats(k Key) bool {
	return k == Next || k == Prev || k == AdjustUp || k == AdjustDown
}

// Router is pulled once per frame. It keeps only the hold counters needed for
// edge detection and auto-repeat.
type Router struct {
	cfg  Config
	held [numKeys]int
}

func New(cfg Config) *Router {
	if cfg.RepeatInterval <= 0 {
		cfg.RepeatInterval = 1
	}
	return &Router{cfg: cfg}
}

// Route consumes one frame and returns the event it produces, if any.
// An empty snapshot means the device is gone and yields no event. Hold
// counters still advance so a key kept down across the reconnect does not fire.
func (r *Router) Route(snapshot []float64, nav NavState, s calib.Session) (calib.Event, bool) {
	var fired NavState
	for k := Key(0); k < numKeys; k++ {
		if !nav[k] {
			r.held[k] = 0
			continue
		}
		r.held[k]++
		fired[k] = r.fires(k, r.held[k])
	}

	if len(snapshot) == 0 {
		return calib.Event{}, false
	}
	for _, k := range priority {
		if !fired[k] {
			continue
		}
		ev, ok := r.translate(k, s)
		if !ok {
			continue
		}
		return ev, true
	}
	return calib.Event{}, false
}

func (r *Router) fires(k Key, frames int) bool {
	if frames == 1 {
		return true
	}
	if !repeats(k) || r.cfg.RepeatDelay <= 0 || frames <= r.cfg.RepeatDelay {
		return false
	}
	return (frames-1-r.cfg.RepeatDelay)%r.cfg.RepeatInterval == 0
}

func (r *Router) step(f axis.Field) float64 {
	switch f {
	case axis.FieldExponent:
		return r.cfg.ExponentStep
	case axis.FieldDeadzoneLow, axis.FieldDeadzoneHigh:
		return r.cfg.DeadzoneStep
	}
	return 1
}

func (r *Router) translate(k Key, s calib.Session) (calib.Event, bool) {
	e := func(kind calib.EventKind) (calib.Event, bool) { return calib.Event{Kind: kind}, true }

	switch s.Mode {
	case calib.AxisSelect:
		switch k {
		case Next:
			return e(calib.NextAxis)
		case Prev:
			return e(calib.PrevAxis)
		case Select:
			return e(calib.Advance)
		case Back:
			return e(calib.RequestExit)
		}
	case calib.ProfileTypeSelect:
		switch k {
		case Next, AdjustUp:
			return calib.Event{Kind: calib.ToggleProfileType, Delta: 1}, true
		case Prev, AdjustDown:
			return calib.Event{Kind: calib.ToggleProfileType, Delta: -1}, true
		case Select:
			return e(calib.EnterCurveEdit)
		case Back:
			return e(calib.Retreat)
		}
	case calib.CurveEdit:
		switch k {
		case Next:
			return e(calib.NextField)
		case Prev:
			return e(calib.PrevField)
		case AdjustUp:
			return calib.Adjust(s.Field, r.step(s.Field)), true
		case AdjustDown:
			return calib.Adjust(s.Field, -r.step(s.Field)), true
		case Select:
			return e(calib.Confirm)
		case Back:
			return e(calib.Cancel)
		}
	case calib.GraphView:
		switch k {
		case Next:
			return e(calib.NextAxis)
		case Prev:
			return e(calib.PrevAxis)
		case AdjustUp:
			return calib.Event{Kind: calib.ToggleProfileType, Delta: 1}, true
		case AdjustDown:
			return calib.Event{Kind: calib.ToggleProfileType, Delta: -1}, true
		case Select:
			return e(calib.EnterCurveEdit)
		case Back:
			return e(calib.RequestExit)
		}
	}
	return calib.Event{}, false
}
