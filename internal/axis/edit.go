package axis

import (
	"fmt"
	"math"
)

// Field names an editable parameter of a Profile.
type Field int

const (
	FieldDeadzoneLow Field = iota
	FieldDeadzoneHigh
	FieldKind
	FieldExponent
	FieldInverted
)

// Fields lists the editable fields in the order the edit screen cycles them.
var Fields = []Field{FieldDeadzoneLow, FieldDeadzoneHigh, FieldKind, FieldExponent, FieldInverted}

func (f Field) String() string {
	switch f {
	case FieldDeadzoneLow:
		return "deadzone_low"
	case FieldDeadzoneHigh:
		return "deadzone_high"
	case FieldKind:
		return "kind"
	case FieldExponent:
		return "exponent"
	case FieldInverted:
		return "inverted"
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Adjust returns p with field moved by delta and the result clamped back to
// the nearest legal profile. Kind cycles by the sign of delta and Inverted
// toggles on any non-zero delta.
func Adjust(p Profile, field Field, delta float64) Profile {
	if delta == 0 || math.IsNaN(delta) {
		return Clamp(p)
	}
	switch field {
	case FieldDeadzoneLow:
		p.DeadzoneLow = clampUnit(p.DeadzoneLow + delta)
		if p.DeadzoneLow > p.DeadzoneHigh {
			p.DeadzoneLow = p.DeadzoneHigh
		}
	case FieldDeadzoneHigh:
		p.DeadzoneHigh = clampUnit(p.DeadzoneHigh + delta)
		if p.DeadzoneHigh < p.DeadzoneLow {
			p.DeadzoneHigh = p.DeadzoneLow
		}
	case FieldKind:
		step := 1
		if delta < 0 {
			step = -1
		}
		n := len(Kinds)
		p.Kind = Kinds[((int(p.Kind)+step)%n+n)%n]
	case FieldExponent:
		p.Exponent += delta
	case FieldInverted:
		p.Inverted = !p.Inverted
	}
	return Clamp(p)
}

// Clamp returns the legal profile nearest to p.
func Clamp(p Profile) Profile {
	if !p.Kind.Valid() {
		p.Kind = Linear
	}
	switch {
	case math.IsNaN(p.Exponent), p.Exponent < MinExponent:
		p.Exponent = MinExponent
	case p.Exponent > MaxExponent:
		p.Exponent = MaxExponent
	}
	p.DeadzoneLow = clampUnit(p.DeadzoneLow)
	p.DeadzoneHigh = clampUnit(p.DeadzoneHigh)
	if p.DeadzoneLow > p.DeadzoneHigh {
		p.DeadzoneLow = p.DeadzoneHigh
	}
	return p
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
