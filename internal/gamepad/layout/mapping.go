// Package layout binds raw controller buttons and hats to navigation keys.
package layout

import (
	"math"

	"github.com/soar/stickprofile/internal/router"
)

const (
	hatUp    uint8 = 0x01
	hatRight uint8 = 0x02
	hatDown  uint8 = 0x04
	hatLeft  uint8 = 0x08
)

// ButtonMapping binds a raw button index to a navigation key.
type ButtonMapping struct {
	Index int32
	Key   router.Key
}

// DeviceMapping holds the navigation bindings for a specific device type.
type DeviceMapping struct {
	Name    string
	Buttons []ButtonMapping
	HasHat  bool
}

// NormalizeAxis converts a raw axis value (-32768..32767) to -1.0..1.0.
func NormalizeAxis(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v
}

// Nav builds the navigation state from the device's buttons and first hat.
// numButtons bounds the indices that are queried.
func (m *DeviceMapping) Nav(numButtons int32, pressed func(int32) bool, hat uint8) router.NavState {
	var nav router.NavState
	for _, bm := range m.Buttons {
		if bm.Index >= numButtons {
			continue
		}
		if pressed(bm.Index) {
			nav = nav.Press(bm.Key)
		}
	}
	if m.HasHat {
		if hat&hatRight != 0 {
			nav = nav.Press(router.Next)
		}
		if hat&hatLeft != 0 {
			nav = nav.Press(router.Prev)
		}
		if hat&hatUp != 0 {
			nav = nav.Press(router.AdjustUp)
		}
		if hat&hatDown != 0 {
			nav = nav.Press(router.AdjustDown)
		}
	}
	return nav
}

// Built-in mappings for common controllers.

var xboxMapping = &DeviceMapping{
	Name: "xbox",
	Buttons: []ButtonMapping{
		{Index: 0, Key: router.Select}, // A
		{Index: 1, Key: router.Back},   // B
		{Index: 4, Key: router.Prev},   // LB
		{Index: 5, Key: router.Next},   // RB
		{Index: 7, Key: router.Select}, // Start
	},
	HasHat: true,
}

var playstationMapping = &DeviceMapping{
	Name: "playstation",
	Buttons: []ButtonMapping{
		{Index: 0, Key: router.Select}, // Cross (×)
		{Index: 1, Key: router.Back},   // Circle (○)
		{Index: 6, Key: router.Select}, // Options
		{Index: 9, Key: router.Prev},   // L1
		{Index: 10, Key: router.Next},  // R1
	},
	HasHat: true,
}

var switchProMapping = &DeviceMapping{
	Name: "switch_pro",
	Buttons: []ButtonMapping{
		{Index: 0, Key: router.Select},
		{Index: 1, Key: router.Back},
		{Index: 4, Key: router.Prev},
		{Index: 5, Key: router.Next},
	},
	HasHat: true,
}

// Flight sticks rarely agree on anything beyond the trigger and thumb button.
var genericMapping = &DeviceMapping{
	Name: "generic",
	Buttons: []ButtonMapping{
		{Index: 0, Key: router.Select},
		{Index: 1, Key: router.Back},
		{Index: 2, Key: router.AdjustDown},
		{Index: 3, Key: router.AdjustUp},
		{Index: 4, Key: router.Prev},
		{Index: 5, Key: router.Next},
	},
	HasHat: true,
}

// Known vendor/product IDs.
type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var knownDevices = map[deviceKey]*DeviceMapping{
	// Microsoft Xbox controllers
	{0x045E, 0x028E}: xboxMapping, // Xbox 360
	{0x045E, 0x02FF}: xboxMapping, // Xbox One
	{0x045E, 0x0B12}: xboxMapping, // Xbox Series X|S
	{0x045E, 0x0B13}: xboxMapping, // Xbox Series X|S (wireless)
	// Sony PlayStation controllers
	{0x054C, 0x0CE6}: playstationMapping, // DualSense
	{0x054C, 0x09CC}: playstationMapping, // DualShock 4 v2
	{0x054C, 0x05C4}: playstationMapping, // DualShock 4 v1
	// Nintendo Switch Pro Controller
	{0x057E, 0x2009}: switchProMapping,
}

// GetMapping returns the appropriate mapping for a device identified by vendor/product ID.
// Falls back to generic mapping if no specific mapping is found.
func GetMapping(vendorID, productID uint16) *DeviceMapping {
	key := deviceKey{VendorID: vendorID, ProductID: productID}
	if m, ok := knownDevices[key]; ok {
		return m
	}
	return genericMapping
}
