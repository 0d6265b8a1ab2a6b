package calib

import (
	"fmt"

	"github.com/soar/stickprofile/internal/axis"
)

// EventKind enumerates the inputs the state machine understands.
type EventKind int

const (
	NextAxis EventKind = iota + 1
	PrevAxis
	ToggleProfileType
	EnterCurveEdit
	AdjustParameter
	Confirm
	Cancel
	RequestExit
	Advance
	Retreat
	NextField
	PrevField
	ResetProfile
)

var eventNames = map[EventKind]string{
	NextAxis:          "next_axis",
	PrevAxis:          "prev_axis",
	ToggleProfileType: "toggle_profile_type",
	EnterCurveEdit:    "enter_curve_edit",
	AdjustParameter:   "adjust_parameter",
	Confirm:           "confirm",
	Cancel:            "cancel",
	RequestExit:       "request_exit",
	Advance:           "advance",
	Retreat:           "retreat",
	NextField:         "next_field",
	PrevField:         "prev_field",
	ResetProfile:      "reset_profile",
}

func (k EventKind) String() string {
	if n, ok := eventNames[k]; ok {
		return n
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is one discrete input. Field and Delta are used by AdjustParameter;
// ToggleProfileType reads the sign of Delta to pick a direction.
type Event struct {
	Kind  EventKind
	Field axis.Field
	Delta float64
}

func (e Event) String() string {
	if e.Kind == AdjustParameter {
		return fmt.Sprintf("%s(%s, %+g)", e.Kind, e.Field, e.Delta)
	}
	return e.Kind.String()
}

// Adjust builds an AdjustParameter event.
func Adjust(f axis.Field, delta float64) Event {
	return Event{Kind: AdjustParameter, Field: f, Delta: delta}
}
