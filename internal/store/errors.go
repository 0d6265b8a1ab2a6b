package store

import "github.com/pkg/errors"

var (
	// ErrUnknownAxis is returned for an axis index outside the device's axis count.
	ErrUnknownAxis = errors.New("unknown axis")
	// ErrUnknownProfileType is returned for a profile type the store was not created with.
	ErrUnknownProfileType = errors.New("unknown profile type")
	// ErrInvalidProfile is returned when a profile violates the deadzone or exponent constraints.
	ErrInvalidProfile = errors.New("invalid profile")
	// ErrMalformedBlob is returned when an import blob cannot be decoded.
	ErrMalformedBlob = errors.New("malformed profile blob")
)
