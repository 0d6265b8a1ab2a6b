package graph

// Vec is a position or extent on the render surface.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Drawable is a point in surface coordinates with its blend value.
type Drawable struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Alpha float64 `json:"a"`
}

// ToScreen maps points from [-1,1]² into the rectangle at origin with the
// given size. Surface y grows downward, so y=1 lands on the top edge.
func ToScreen(pts []Point, alpha float64, origin, size Vec) []Drawable {
	alpha = clamp01(alpha)
	out := make([]Drawable, len(pts))
	for i, p := range pts {
		out[i] = Drawable{
			X:     origin.X + (p.X+1)/2*size.X,
			Y:     origin.Y + (1-p.Y)/2*size.Y,
			Alpha: alpha,
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
