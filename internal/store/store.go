// Package store keeps the committed calibration of every (axis, profile type)
// pair and converts it to and from the blob handed to persistence.
package store

import (
	"github.com/pkg/errors"

	"github.com/soar/stickprofile/internal/axis"
)

// ProfileType names an alternate calibration of the same axis. The set is
// open: a store is created with whatever types the configuration lists.
type ProfileType string

const (
	Normal    ProfileType = "normal"
	Precision ProfileType = "precision"
)

// DefaultTypes is the type list used when none is configured.
var DefaultTypes = []ProfileType{Normal, Precision}

// Key identifies one store entry.
type Key struct {
	Axis int
	Type ProfileType
}

// Store maps every legal (axis, type) pair to its committed profile. Set is
// the only mutator.
type Store struct {
	axisCount int
	types     []ProfileType
	profiles  map[Key]axis.Profile
}

// New creates a store for axisCount axes with the given profile types, each
// entry starting at the type's default profile. Duplicate types are dropped.
func New(axisCount int, types []ProfileType) *Store {
	if axisCount < 0 {
		axisCount = 0
	}
	if len(types) == 0 {
		types = DefaultTypes
	}
	seen := make(map[ProfileType]bool, len(types))
	s := &Store{
		axisCount: axisCount,
		profiles:  make(map[Key]axis.Profile, axisCount*len(types)),
	}
	for _, t := range types {
		if seen[t] {
			continue
		}
		seen[t] = true
		s.types = append(s.types, t)
	}
	for a := 0; a < axisCount; a++ {
		for _, t := range s.types {
			s.profiles[Key{a, t}] = Default(t)
		}
	}
	return s
}

// Default returns the factory profile for a type. Precision starts cubic.
func Default(t ProfileType) axis.Profile {
	p := axis.Default()
	if t == Precision {
		p.Kind = axis.Cube
	}
	return p
}

// AxisCount returns the number of axes the store was created for.
func (s *Store) AxisCount() int {
	return s.axisCount
}

// Types returns the profile types in cycling order.
func (s *Store) Types() []ProfileType {
	return append([]ProfileType(nil), s.types...)
}

func (s *Store) check(a int, t ProfileType) error {
	if a < 0 || a >= s.axisCount {
		return errors.Wrapf(ErrUnknownAxis, "axis %d of %d", a, s.axisCount)
	}
	if _, ok := s.profiles[Key{a, t}]; !ok {
		return errors.Wrapf(ErrUnknownProfileType, "%q", t)
	}
	return nil
}

// Get returns the committed profile for (a, t).
func (s *Store) Get(a int, t ProfileType) (axis.Profile, error) {
	if err := s.check(a, t); err != nil {
		return axis.Profile{}, err
	}
	return s.profiles[Key{a, t}], nil
}

// Set replaces the committed profile for (a, t). An invalid profile is
// rejected and the store is left unchanged.
func (s *Store) Set(a int, t ProfileType, p axis.Profile) error {
	if err := s.check(a, t); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidProfile, "axis %d %s: %v", a, t, err)
	}
	s.profiles[Key{a, t}] = p
	return nil
}

// Shape evaluates raw through the committed profile for (a, t).
func (s *Store) Shape(a int, t ProfileType, raw float64) (float64, error) {
	p, err := s.Get(a, t)
	if err != nil {
		return 0, err
	}
	return axis.Evaluate(raw, p), nil
}

// All returns a copy of every entry.
func (s *Store) All() map[Key]axis.Profile {
	out := make(map[Key]axis.Profile, len(s.profiles))
	for k, v := range s.profiles {
		out[k] = v
	}
	return out
}
