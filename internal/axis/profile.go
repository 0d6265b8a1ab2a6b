package axis

import (
	"fmt"
	"math"
)

// Kind selects the shaping function applied to the normalized magnitude.
type Kind int

const (
	Linear Kind = iota
	Square
	Cube
	CustomExponent
)

var kindNames = [...]string{"linear", "square", "cube", "custom"}

// Kinds lists every curve kind in cycling order.
var Kinds = []Kind{Linear, Square, Cube, CustomExponent}

func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k >= Linear && k <= CustomExponent
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown curve kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown curve kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

const (
	// MinExponent is the smallest exponent an edit can reach.
	MinExponent = 0.1
	// MaxExponent is the largest exponent an edit can reach.
	MaxExponent = 10.0
)

// Profile holds the calibration parameters of one axis.
type Profile struct {
	Kind         Kind    `yaml:"kind" json:"kind"`
	Exponent     float64 `yaml:"exponent" json:"exponent"` // only used by CustomExponent
	DeadzoneLow  float64 `yaml:"deadzone_low" json:"deadzoneLow"`
	DeadzoneHigh float64 `yaml:"deadzone_high" json:"deadzoneHigh"`
	Inverted     bool    `yaml:"inverted" json:"inverted"`
}

// Default is the profile a fresh axis starts with.
func Default() Profile {
	return Profile{
		Kind:         Linear,
		Exponent:     2,
		DeadzoneLow:  0.05,
		DeadzoneHigh: 1,
	}
}

// EffectiveExponent returns the exponent the curve is evaluated with.
func (p Profile) EffectiveExponent() float64 {
	switch p.Kind {
	case Square:
		return 2
	case Cube:
		return 3
	case CustomExponent:
		return p.Exponent
	default:
		return 1
	}
}

// Validate checks the profile invariants.
func (p Profile) Validate() error {
	if !p.Kind.Valid() {
		return fmt.Errorf("unknown curve kind %d", int(p.Kind))
	}
	if math.IsNaN(p.Exponent) || math.IsInf(p.Exponent, 0) || p.Exponent <= 0 {
		return fmt.Errorf("exponent must be positive, got %v", p.Exponent)
	}
	if !inUnit(p.DeadzoneLow) || !inUnit(p.DeadzoneHigh) {
		return fmt.Errorf("deadzones must lie in [0,1], got %v/%v", p.DeadzoneLow, p.DeadzoneHigh)
	}
	if p.DeadzoneLow > p.DeadzoneHigh {
		return fmt.Errorf("deadzone low %v exceeds high %v", p.DeadzoneLow, p.DeadzoneHigh)
	}
	return nil
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
