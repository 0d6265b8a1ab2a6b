package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/stickprofile/internal/axis"
)

func TestSampleDeterministic(t *testing.T) {
	p := axis.Profile{Kind: axis.CustomExponent, Exponent: 1.4, DeadzoneLow: 0.08, DeadzoneHigh: 0.9}

	first := Sample(p, 64)
	Sample(axis.Default(), 13)
	second := Sample(p, 64)

	assert.Equal(t, first, second)
	second[0].Y = 42
	assert.NotEqual(t, first[0].Y, second[0].Y, "samples must not share storage")
}

func TestSampleDomain(t *testing.T) {
	p := axis.Default()
	pts := Sample(p, DefaultResolution)

	require.Len(t, pts, DefaultResolution)
	assert.Equal(t, -1.0, pts[0].X)
	assert.Equal(t, 1.0, pts[len(pts)-1].X)
	for i := 1; i < len(pts); i++ {
		assert.Greater(t, pts[i].X, pts[i-1].X)
		assert.GreaterOrEqual(t, pts[i].Y, pts[i-1].Y)
		assert.Equal(t, axis.Evaluate(pts[i].X, p), pts[i].Y)
	}
}

func TestSampleSmallResolutions(t *testing.T) {
	assert.Nil(t, Sample(axis.Default(), 0))
	assert.Nil(t, Sample(axis.Default(), -3))
	assert.Equal(t, []Point{{X: 0, Y: 0}}, Sample(axis.Default(), 1))

	two := Sample(axis.Profile{Kind: axis.Linear, Exponent: 1, DeadzoneHigh: 1}, 2)
	assert.Equal(t, []Point{{X: -1, Y: -1}, {X: 1, Y: 1}}, two)
}

func TestToScreen(t *testing.T) {
	pts := []Point{{X: -1, Y: -1}, {X: 0, Y: 0}, {X: 1, Y: 1}}
	got := ToScreen(pts, 0.5, Vec{X: 10, Y: 20}, Vec{X: 200, Y: 100})

	assert.Equal(t, []Drawable{
		{X: 10, Y: 120, Alpha: 0.5},
		{X: 110, Y: 70, Alpha: 0.5},
		{X: 210, Y: 20, Alpha: 0.5},
	}, got)
}

func TestToScreenClampsAlpha(t *testing.T) {
	pts := []Point{{}}
	assert.Equal(t, 1.0, ToScreen(pts, 3, Vec{}, Vec{X: 1, Y: 1})[0].Alpha)
	assert.Equal(t, 0.0, ToScreen(pts, -1, Vec{}, Vec{X: 1, Y: 1})[0].Alpha)
	assert.Empty(t, ToScreen(nil, 1, Vec{}, Vec{}))
}
