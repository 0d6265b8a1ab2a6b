// Package axis implements the joystick axis response model: the calibration
// parameters of a single axis and the curve that shapes raw samples with them.
package axis

import "math"

// Evaluate shapes a raw axis sample in [-1,1] with p. Values outside the range
// are clamped first. The result lies in [-1,1], is odd-symmetric around zero
// and monotonic in |raw|.
func Evaluate(raw float64, p Profile) float64 {
	if math.IsNaN(raw) {
		return 0
	}
	m := math.Abs(raw)
	if m > 1 {
		m = 1
	}
	if m <= p.DeadzoneLow {
		return 0
	}
	// Travel beyond the high deadzone saturates.
	if p.DeadzoneHigh < 1 && m >= p.DeadzoneHigh {
		m = 1
	}

	n := clampUnit((m - p.DeadzoneLow) / (1 - p.DeadzoneLow))
	out := math.Pow(n, p.EffectiveExponent())
	if raw < 0 {
		out = -out
	}
	if p.Inverted {
		out = -out
	}
	return out
}
