package calib

import (
	"github.com/soar/stickprofile/internal/axis"
	"github.com/soar/stickprofile/internal/store"
)

// Apply returns the session that results from ev. The only side effect is
// the store write performed by Confirm. Events that do not apply to the
// current mode leave the session unchanged. The returned error is non-nil only
// when Confirm is rejected by the store; the session then stays in CurveEdit
// with Message describing the failure.
func Apply(s Session, ev Event, st Store) (Session, error) {
	if s.Mode == Exit {
		return s, nil
	}

	switch ev.Kind {
	case NextAxis, PrevAxis:
		if s.Mode != AxisSelect && s.Mode != GraphView {
			return s, nil
		}
		return s.stepAxis(ev.Kind, st), nil

	case ToggleProfileType:
		if s.Mode != ProfileTypeSelect && s.Mode != GraphView {
			return s, nil
		}
		step := 1
		if ev.Delta < 0 {
			step = -1
		}
		n := len(s.Types)
		s.TypeIndex = ((s.TypeIndex+step)%n + n) % n
		return s.reload(st), nil

	case Advance:
		if s.Mode == AxisSelect {
			s.Mode = ProfileTypeSelect
		}
		return s, nil

	case Retreat:
		if s.Mode == ProfileTypeSelect || s.Mode == GraphView {
			s.Mode = AxisSelect
		}
		return s, nil

	case EnterCurveEdit:
		if s.Mode == CurveEdit || !s.HasAxis() {
			return s, nil
		}
		s = s.reload(st)
		s.Mode = CurveEdit
		s.Message = ""
		return s, nil

	case AdjustParameter:
		if s.Mode != CurveEdit {
			return s, nil
		}
		s.Working = axis.Adjust(s.Working, ev.Field, ev.Delta)
		s.Field = ev.Field
		return s, nil

	case NextField, PrevField:
		if s.Mode != CurveEdit {
			return s, nil
		}
		s.Field = stepField(s.Field, ev.Kind == NextField)
		return s, nil

	case ResetProfile:
		if s.Mode != CurveEdit {
			return s, nil
		}
		s.Working = store.Default(s.Type())
		return s, nil

	case Confirm:
		if s.Mode != CurveEdit {
			return s, nil
		}
		if err := st.Set(s.Axis, s.Type(), s.Working); err != nil {
			s.Message = err.Error()
			return s, err
		}
		s.Mode = GraphView
		s.Message = ""
		return s, nil

	case Cancel:
		if s.Mode != CurveEdit {
			return s, nil
		}
		return s.cancel(st), nil

	case RequestExit:
		if s.Mode == CurveEdit {
			s = s.cancel(st)
		}
		s.Mode = Exit
		return s, nil
	}
	return s, nil
}

func (s Session) cancel(st Store) Session {
	s = s.reload(st)
	s.Mode = GraphView
	s.Message = ""
	return s
}

func (s Session) stepAxis(kind EventKind, st Store) Session {
	if s.AxisCount == 0 || !s.HasAxis() {
		return s
	}
	if kind == NextAxis {
		s.Axis = (s.Axis + 1) % s.AxisCount
	} else {
		s.Axis = (s.Axis - 1 + s.AxisCount) % s.AxisCount
	}
	return s.reload(st)
}

func stepField(f axis.Field, forward bool) axis.Field {
	n := len(axis.Fields)
	i := 0
	for j, x := range axis.Fields {
		if x == f {
			i = j
			break
		}
	}
	if forward {
		i = (i + 1) % n
	} else {
		i = (i - 1 + n) % n
	}
	return axis.Fields[i]
}

// Disconnect moves the session to the device-less state. An edit in progress
// is dropped without touching the store.
func Disconnect(s Session, st Store) Session {
	if s.Mode == Exit || !s.HasAxis() {
		return s
	}
	if s.Mode == CurveEdit {
		s.Mode = AxisSelect
	}
	s.Axis = NoAxis
	s.AxisCount = 0
	s.Message = ""
	return s.reload(st)
}

// Reconnect selects the first axis of a device with axisCount axes.
func Reconnect(s Session, axisCount int, st Store) Session {
	if s.Mode == Exit || s.HasAxis() || axisCount <= 0 {
		return s
	}
	s.Axis = 0
	s.AxisCount = axisCount
	return s.reload(st)
}
