// Package screen hosts the joystick calibration screen: it wires the device,
// the router, the session state machine and the profile store into the
// enter / frame / render / exit cycle the game drives.
package screen

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/soar/stickprofile/internal/calib"
	"github.com/soar/stickprofile/internal/graph"
	"github.com/soar/stickprofile/internal/router"
	"github.com/soar/stickprofile/internal/store"
)

// Device is the joystick the screen calibrates.
type Device interface {
	ListAxes() int
	PollRaw() []float64
}

// Options configures a Screen.
type Options struct {
	Types      []store.ProfileType
	Resolution int
	Router     router.Config
}

// Screen is the single calibration screen instance of a game session. It is
// not safe for concurrent use; every method runs on the frame loop.
type Screen struct {
	device  Device
	persist store.Persistence
	opts    Options

	router  *router.Router
	store   *store.Store
	session calib.Session
	live    []float64
	active  bool
}

func New(device Device, persist store.Persistence, opts Options) *Screen {
	if opts.Resolution <= 0 {
		opts.Resolution = graph.DefaultResolution
	}
	if len(opts.Types) == 0 {
		opts.Types = store.DefaultTypes
	}
	return &Screen{
		device:  device,
		persist: persist,
		opts:    opts,
	}
}

// EnterScreen builds the profile store for the connected device, loads the
// saved calibration into it and starts a fresh session. A missing or broken
// save file leaves the defaults in place.
func (s *Screen) EnterScreen() {
	count := s.device.ListAxes()
	s.store = store.New(count, s.opts.Types)

	log := logrus.WithField("axes", count)
	if blob, err := s.persist.Load(); err != nil {
		log.WithError(err).Warn("could not load stick profiles, using defaults")
	} else if err := s.store.ImportAll(blob); err != nil {
		log.WithError(err).Warn("ignoring saved stick profiles")
	}

	s.router = router.New(s.opts.Router)
	s.session = calib.New(count, s.store.Types(), s.store)
	s.live = nil
	s.active = true
	log.Info("stick profile screen entered")
}

// HandleFrameInput advances the screen by one frame. It returns the event
// that was applied, if any. Reaching Exit flushes the store.
func (s *Screen) HandleFrameInput(snapshot []float64, nav router.NavState) (calib.Event, bool) {
	if !s.active {
		return calib.Event{}, false
	}
	s.live = append(s.live[:0], snapshot...)
	s.reconcile(len(snapshot))

	ev, ok := s.router.Route(snapshot, nav, s.session)
	if !ok {
		return ev, false
	}

	next, err := calib.Apply(s.session, ev, s.store)
	fields := logrus.Fields{
		"event": ev.String(),
		"mode":  next.Mode.String(),
		"axis":  next.Axis,
		"type":  next.Type(),
	}
	if err != nil {
		logrus.WithFields(fields).WithError(err).Warn("profile rejected")
	} else {
		logrus.WithFields(fields).Debug("calibration event")
	}
	s.session = next

	if s.session.Done() {
		if err := s.ExitScreen(); err != nil {
			logrus.WithError(err).Error("saving stick profiles failed")
		}
	}
	return ev, true
}

func (s *Screen) reconcile(n int) {
	if n == 0 {
		if s.session.HasAxis() {
			logrus.Info("joystick lost")
			s.session = calib.Disconnect(s.session, s.store)
		}
		return
	}
	if !s.session.HasAxis() {
		if n > s.store.AxisCount() {
			n = s.store.AxisCount()
		}
		s.session = calib.Reconnect(s.session, n, s.store)
	}
}

// RenderGraph returns the working copy's response curve in surface
// coordinates of the given rectangle. The curve is re-sampled on every call.
func (s *Screen) RenderGraph(alpha float64, origin, size graph.Vec) []graph.Drawable {
	return graph.ToScreen(graph.Sample(s.session.Working, s.opts.Resolution), alpha, origin, size)
}

// Leave ends the session from the host side, without a router event, and
// flushes the store. It works while the device is disconnected.
func (s *Screen) Leave() error {
	if !s.active {
		return nil
	}
	if !s.session.Done() {
		next, _ := calib.Apply(s.session, calib.Event{Kind: calib.RequestExit}, s.store)
		s.session = next
		logrus.WithField("axis", s.session.Axis).Debug("calibration screen left by host")
	}
	return s.ExitScreen()
}

// ExitScreen writes the store to persistence. Once a save succeeds further
// calls are no-ops; after a failed save the next call retries.
func (s *Screen) ExitScreen() error {
	if !s.active {
		return nil
	}

	blob, err := s.store.ExportAll()
	if err != nil {
		return err
	}
	if err := s.persist.Save(blob); err != nil {
		return errors.Wrap(err, "saving stick profiles")
	}
	s.active = false
	logrus.WithField("bytes", len(blob)).Info("stick profiles saved")
	return nil
}

// Done reports whether the player left the screen.
func (s *Screen) Done() bool {
	return s.session.Done()
}

// Session returns the current session value.
func (s *Screen) Session() calib.Session {
	return s.session
}

// Store returns the committed profiles, for the input pipeline to shape with.
func (s *Screen) Store() *store.Store {
	return s.store
}
