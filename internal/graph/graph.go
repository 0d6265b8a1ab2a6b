// Package graph turns a profile into the points of its response curve.
package graph

import "github.com/soar/stickprofile/internal/axis"

// DefaultResolution is the number of points sampled for the live curve.
const DefaultResolution = 64

// Point is a curve sample in axis space, both coordinates in [-1,1].
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sample evaluates p at resolution evenly spaced inputs covering [-1,1]
// inclusive. It returns a fresh slice on every call.
func Sample(p axis.Profile, resolution int) []Point {
	if resolution <= 0 {
		return nil
	}
	pts := make([]Point, resolution)
	if resolution == 1 {
		pts[0] = Point{X: 0, Y: axis.Evaluate(0, p)}
		return pts
	}
	last := float64(resolution - 1)
	for i := range pts {
		x := -1 + 2*float64(i)/last
		pts[i] = Point{X: x, Y: axis.Evaluate(x, p)}
	}
	return pts
}
