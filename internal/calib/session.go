// Package calib holds the calibration screen's state machine: the session
// value and the pure transition function that applies one event to it.
package calib

import (
	"fmt"

	"github.com/soar/stickprofile/internal/axis"
	"github.com/soar/stickprofile/internal/store"
)

// NoAxis marks a session without a usable device.
const NoAxis = -1

// Mode is the screen the session is on.
type Mode int

const (
	AxisSelect Mode = iota
	ProfileTypeSelect
	CurveEdit
	GraphView
	Exit
)

func (m Mode) String() string {
	switch m {
	case AxisSelect:
		return "axis_select"
	case ProfileTypeSelect:
		return "profile_type_select"
	case CurveEdit:
		return "curve_edit"
	case GraphView:
		return "graph_view"
	case Exit:
		return "exit"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	for c := AxisSelect; c <= Exit; c++ {
		if c.String() == string(b) {
			*m = c
			return nil
		}
	}
	return fmt.Errorf("unknown mode %q", b)
}

// Store is the part of the profile store a session reads and commits to.
type Store interface {
	Get(a int, t store.ProfileType) (axis.Profile, error)
	Set(a int, t store.ProfileType, p axis.Profile) error
}

// Session is the complete state of one visit to the calibration screen.
// Working is a copy: edits reach the store only through Confirm.
type Session struct {
	Axis      int
	AxisCount int
	Types     []store.ProfileType
	TypeIndex int
	Mode      Mode
	Working   axis.Profile
	Field     axis.Field
	Message   string
}

// New starts a session on the first axis. The profile type starts on Normal
// when it is configured, otherwise on the first type.
func New(axisCount int, types []store.ProfileType, st Store) Session {
	if len(types) == 0 {
		types = store.DefaultTypes
	}
	s := Session{
		Axis:      NoAxis,
		AxisCount: axisCount,
		Types:     append([]store.ProfileType(nil), types...),
		Mode:      AxisSelect,
		Field:     axis.Fields[0],
	}
	for i, t := range s.Types {
		if t == store.Normal {
			s.TypeIndex = i
			break
		}
	}
	if axisCount > 0 {
		s.Axis = 0
	} else {
		s.AxisCount = 0
	}
	return s.reload(st)
}

// Type returns the current profile type.
func (s Session) Type() store.ProfileType {
	return s.Types[s.TypeIndex]
}

// HasAxis reports whether the session points at a real axis.
func (s Session) HasAxis() bool {
	return s.Axis != NoAxis
}

// Done reports whether the session reached Exit.
func (s Session) Done() bool {
	return s.Mode == Exit
}

// reload replaces the working copy with the committed profile of the current
// pair. Without an axis the working copy falls back to the type default.
func (s Session) reload(st Store) Session {
	if !s.HasAxis() {
		s.Working = store.Default(s.Type())
		return s
	}
	p, err := st.Get(s.Axis, s.Type())
	if err != nil {
		s.Message = err.Error()
		s.Working = store.Default(s.Type())
		return s
	}
	s.Working = p
	return s
}
