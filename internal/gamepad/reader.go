// Package gamepad is the SDL3 joystick device source of the calibration
// screen. It polls the active joystick once per frame and exposes its raw
// axes and navigation buttons.
package gamepad

import (
	"context"
	"runtime"

	"github.com/jupiterrider/purego-sdl3/sdl"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/soar/stickprofile/internal/gamepad/layout"
	"github.com/soar/stickprofile/internal/router"
)

const pollDelayNS = 16_000_000 // ~60Hz

type joystickInfo struct {
	joystick *sdl.Joystick
	mapping  *layout.DeviceMapping
	name     string
	id       sdl.JoystickID
}

// FrameFunc runs once per polled frame on the SDL thread.
type FrameFunc func(r *Reader) bool

// Reader reads joystick input through the SDL3 Joystick API. All methods
// must be called from the goroutine running Run, normally from a FrameFunc.
type Reader struct {
	joysticks map[sdl.JoystickID]*joystickInfo
	activeID  sdl.JoystickID // the first connected joystick
	hasActive bool
	axes      []float64
	nav       router.NavState
}

func NewReader() *Reader {
	return &Reader{
		joysticks: make(map[sdl.JoystickID]*joystickInfo),
	}
}

// Run initializes SDL and runs the event+polling loop on the current thread,
// calling frame after every poll. It returns when ctx is done or frame
// returns false.
func (r *Reader) Run(ctx context.Context, frame FrameFunc) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		return errors.Errorf("SDL init failed: %s", sdl.GetError())
	}
	defer sdl.Quit()

	logrus.Info("SDL3 joystick subsystem initialized")

	// Check for already-connected joysticks
	ids := sdl.GetJoysticks()
	for _, id := range ids {
		r.openJoystick(id)
	}
	defer r.closeAll()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		r.processEvents()
		r.pollState()
		if !frame(r) {
			return nil
		}
		sdl.DelayNS(pollDelayNS)
	}
}

// ListAxes returns the axis count of the active joystick, or 0 without one.
func (r *Reader) ListAxes() int {
	info := r.active()
	if info == nil {
		return 0
	}
	return int(sdl.GetNumJoystickAxes(info.joystick))
}

// PollRaw returns the axes read in the current frame, normalized to [-1,1].
// The slice is empty while no joystick is connected.
func (r *Reader) PollRaw() []float64 {
	return append([]float64(nil), r.axes...)
}

// Nav returns the navigation keys held on the joystick in the current frame.
func (r *Reader) Nav() router.NavState {
	return r.nav
}

// Name returns the active joystick's name.
func (r *Reader) Name() string {
	if info := r.active(); info != nil {
		return info.name
	}
	return ""
}

func (r *Reader) active() *joystickInfo {
	if !r.hasActive {
		return nil
	}
	info, exists := r.joysticks[r.activeID]
	if !exists || !sdl.JoystickConnected(info.joystick) {
		return nil
	}
	return info
}

func (r *Reader) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			devEvent := event.JDevice()
			r.openJoystick(devEvent.Which)

		case sdl.EventJoystickRemoved:
			devEvent := event.JDevice()
			r.removeJoystick(devEvent.Which)

		case sdl.EventJoystickButtonDown:
			be := event.JButton()
			logrus.Tracef("button down: index=%d joystick=%d", be.Button, be.Which)

		case sdl.EventJoystickHatMotion:
			he := event.JHat()
			logrus.Tracef("hat: index=%d value=0x%02X joystick=%d", he.Hat, he.Value, he.Which)
		}
	}
}

func (r *Reader) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := r.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		logrus.Warnf("failed to open joystick %d: %s", instanceID, sdl.GetError())
		return
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	name := sdl.GetJoystickName(js)
	mapping := layout.GetMapping(vendorID, productID)

	r.joysticks[jsID] = &joystickInfo{
		joystick: js,
		mapping:  mapping,
		name:     name,
		id:       jsID,
	}

	logrus.WithFields(logrus.Fields{
		"name":    name,
		"vid":     vendorID,
		"pid":     productID,
		"mapping": mapping.Name,
		"axes":    sdl.GetNumJoystickAxes(js),
		"buttons": sdl.GetNumJoystickButtons(js),
		"hats":    sdl.GetNumJoystickHats(js),
	}).Info("joystick connected")

	// Use the first connected joystick as active
	if !r.hasActive {
		r.activeID = jsID
		r.hasActive = true
		logrus.Infof("active joystick set: %s (ID=%d)", name, jsID)
	}
}

func (r *Reader) removeJoystick(instanceID sdl.JoystickID) {
	info, exists := r.joysticks[instanceID]
	if !exists {
		return
	}

	logrus.Infof("joystick disconnected: %s", info.name)
	sdl.CloseJoystick(info.joystick)
	delete(r.joysticks, instanceID)

	if !r.hasActive || r.activeID != instanceID {
		return
	}
	r.hasActive = false
	// Promote the next available joystick
	for id, js := range r.joysticks {
		if sdl.JoystickConnected(js.joystick) {
			r.activeID = id
			r.hasActive = true
			logrus.Infof("active joystick switched to: %s (ID=%d)", js.name, id)
			break
		}
	}
}

func (r *Reader) closeAll() {
	for id, info := range r.joysticks {
		sdl.CloseJoystick(info.joystick)
		delete(r.joysticks, id)
	}
	r.hasActive = false
}

func (r *Reader) pollState() {
	r.axes = r.axes[:0]
	r.nav = router.NavState{}

	info := r.active()
	if info == nil {
		return
	}
	js := info.joystick

	numAxes := sdl.GetNumJoystickAxes(js)
	for i := int32(0); i < numAxes; i++ {
		r.axes = append(r.axes, layout.NormalizeAxis(sdl.GetJoystickAxis(js, i)))
	}

	var hat uint8
	if info.mapping.HasHat && sdl.GetNumJoystickHats(js) > 0 {
		hat = sdl.GetJoystickHat(js, 0)
	}
	r.nav = info.mapping.Nav(sdl.GetNumJoystickButtons(js), func(i int32) bool {
		return sdl.GetJoystickButton(js, i)
	}, hat)
}
