package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soar/stickprofile/internal/router"
)

func TestNormalizeAxis(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeAxis(0))
	assert.Equal(t, 1.0, NormalizeAxis(math.MaxInt16))
	assert.Equal(t, -1.0, NormalizeAxis(math.MinInt16))
	assert.InDelta(t, 0.5, NormalizeAxis(16384), 1e-4)
}

func TestGetMapping(t *testing.T) {
	assert.Equal(t, "xbox", GetMapping(0x045E, 0x0B12).Name)
	assert.Equal(t, "playstation", GetMapping(0x054C, 0x0CE6).Name)
	assert.Equal(t, "generic", GetMapping(0x1234, 0x5678).Name)
}

func TestNavFromButtonsAndHat(t *testing.T) {
	down := map[int32]bool{0: true, 5: true, 9: true}
	pressed := func(i int32) bool { return down[i] }

	nav := xboxMapping.Nav(11, pressed, hatUp)
	want := router.NavState{}.Press(router.Select).Press(router.Next).Press(router.AdjustUp)
	assert.Equal(t, want, nav)
}

func TestNavSkipsMissingButtons(t *testing.T) {
	queried := map[int32]bool{}
	pressed := func(i int32) bool {
		queried[i] = true
		return true
	}

	nav := xboxMapping.Nav(2, pressed, 0)
	assert.Equal(t, map[int32]bool{0: true, 1: true}, queried)
	assert.Equal(t, router.NavState{}.Press(router.Select).Press(router.Back), nav)
}

func TestNavHatDirections(t *testing.T) {
	none := func(int32) bool { return false }
	nav := genericMapping.Nav(0, none, hatLeft|hatDown)
	assert.Equal(t, router.NavState{}.Press(router.Prev).Press(router.AdjustDown), nav)

	noHat := &DeviceMapping{Name: "bare"}
	assert.Equal(t, router.NavState{}, noHat.Nav(0, none, hatLeft))
}
