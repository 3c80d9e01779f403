// Package sdlhost adapts an SDL2 application to the keyboard core: it
// implements the padtype.Host capabilities on top of SDL, translates SDL
// events into the core's host-neutral events, and uploads decoded glyph
// atlases as SDL textures.
package sdlhost

import (
	"log/slog"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/atomic"

	"github.com/padtype/padtype/pkg/padtype"
	"github.com/padtype/padtype/pkg/padtype/internal"
)

const pulseDurationMS = 60

// Adapter implements padtype.Host (and padtype.Haptics) for an SDL2
// application. Text and control keys are delivered through the callbacks.
type Adapter struct {
	OnText          func(text string)
	OnControlKey    func(key padtype.ControlKey)
	OnStopTextInput func()

	log         *slog.Logger
	controllers []*sdl.GameController
	joysticks   []*sdl.Joystick
	appCursor   *sdl.Cursor
	swapped     bool
	pulsing     atomic.Bool
}

// New creates an adapter. Call OpenControllers after sdl.Init to enable pad
// input and rumble.
func New() *Adapter {
	return &Adapter{log: internal.GetLogger()}
}

// OpenControllers opens every attached game controller and raw joystick, the
// same way the rest of the application would for menu navigation.
func (a *Adapter) OpenControllers() {
	num := sdl.NumJoysticks()
	for i := 0; i < num; i++ {
		if sdl.IsGameController(i) {
			if c := sdl.GameControllerOpen(i); c != nil {
				a.controllers = append(a.controllers, c)
				a.log.Debug("opened game controller", "index", i, "name", c.Name())
			}
		} else if j := sdl.JoystickOpen(i); j != nil {
			a.joysticks = append(a.joysticks, j)
			a.log.Debug("opened joystick", "index", i, "name", j.Name())
		}
	}
}

// Close releases controllers and restores the cursor if it is still swapped.
func (a *Adapter) Close() {
	a.RestoreCursor()
	for _, c := range a.controllers {
		c.Close()
	}
	for _, j := range a.joysticks {
		j.Close()
	}
	a.controllers = nil
	a.joysticks = nil
}

// InsertText implements padtype.Host.
func (a *Adapter) InsertText(text string) {
	if a.OnText != nil {
		a.OnText(text)
	}
}

// SendControlKey implements padtype.Host.
func (a *Adapter) SendControlKey(key padtype.ControlKey) {
	if a.OnControlKey != nil {
		a.OnControlKey(key)
	}
}

// RequestStopTextInput implements padtype.Host.
func (a *Adapter) RequestStopTextInput() {
	sdl.StopTextInput()
	if a.OnStopTextInput != nil {
		a.OnStopTextInput()
	}
}

// DisplayBounds implements padtype.Host.
func (a *Adapter) DisplayBounds() (w, h int32) {
	rect, err := sdl.GetDisplayBounds(0)
	if err != nil {
		a.log.Error("failed to query display bounds", "error", err)
		return 0, 0
	}
	return rect.W, rect.H
}

// TicksMS implements padtype.Host.
func (a *Adapter) TicksMS() uint32 {
	return sdl.GetTicks()
}

// UseDefaultCursor saves the application cursor and shows SDL's default one.
func (a *Adapter) UseDefaultCursor() {
	if a.swapped {
		return
	}
	cursor := sdl.GetCursor()
	def := sdl.GetDefaultCursor()
	if cursor != def {
		a.appCursor = cursor
		sdl.SetCursor(def)
		a.swapped = true
	}
}

// RestoreCursor puts the saved application cursor back.
func (a *Adapter) RestoreCursor() {
	if !a.swapped {
		return
	}
	sdl.SetCursor(a.appCursor)
	a.appCursor = nil
	a.swapped = false
}

// HighlightPulse implements padtype.Haptics with a short rumble burst. The
// guard keeps overlapping pulses from stacking while one is still running.
func (a *Adapter) HighlightPulse() {
	if !a.pulsing.CompareAndSwap(false, true) {
		return
	}
	for _, c := range a.controllers {
		if err := c.Rumble(0x4000, 0x4000, pulseDurationMS); err != nil {
			a.log.Debug("rumble not available", "error", err)
		}
	}
	time.AfterFunc(pulseDurationMS*time.Millisecond, func() {
		a.pulsing.Store(false)
	})
}

// TranslateEvent maps an SDL event to a core keyboard event. The second
// return value is false for events the keyboard has no interest in.
func (a *Adapter) TranslateEvent(event sdl.Event) (padtype.Event, bool) {
	switch e := event.(type) {
	case *sdl.MouseMotionEvent:
		if e.Which != 0 {
			return nil, false
		}
		return padtype.PointerMotionEvent{X: e.X, Y: e.Y}, true
	case *sdl.MouseButtonEvent:
		if e.Which != 0 || e.Button != sdl.BUTTON_LEFT {
			return nil, false
		}
		return padtype.PointerButtonEvent{X: e.X, Y: e.Y, Pressed: e.State == sdl.PRESSED}, true
	case *sdl.JoyAxisEvent:
		return padtype.AxisMotionEvent{Axis: e.Axis, Value: e.Value}, true
	case *sdl.JoyHatEvent:
		if dir, ok := hatDirection(e.Value); ok {
			return padtype.HatMotionEvent{Direction: dir}, true
		}
		return nil, false
	case *sdl.JoyButtonEvent:
		return joyButton(e.Button, e.State == sdl.PRESSED)
	case *sdl.ControllerButtonEvent:
		return controllerButton(e.Button, e.State == sdl.PRESSED)
	}
	return nil, false
}

func hatDirection(value uint8) (padtype.HatDirection, bool) {
	switch value {
	case sdl.HAT_UP:
		return padtype.HatUp, true
	case sdl.HAT_DOWN:
		return padtype.HatDown, true
	case sdl.HAT_LEFT:
		return padtype.HatLeft, true
	case sdl.HAT_RIGHT:
		return padtype.HatRight, true
	}
	return padtype.HatCentered, false
}

func joyButton(button uint8, pressed bool) (padtype.Event, bool) {
	switch button {
	case 0:
		return padtype.ButtonEvent{Button: padtype.ButtonActivate, Pressed: pressed}, true
	case 1:
		return padtype.ButtonEvent{Button: padtype.ButtonBackspace, Pressed: pressed}, true
	}
	return nil, false
}

func controllerButton(button uint8, pressed bool) (padtype.Event, bool) {
	switch sdl.GameControllerButton(button) {
	case sdl.CONTROLLER_BUTTON_A:
		return padtype.ButtonEvent{Button: padtype.ButtonActivate, Pressed: pressed}, true
	case sdl.CONTROLLER_BUTTON_B:
		return padtype.ButtonEvent{Button: padtype.ButtonBackspace, Pressed: pressed}, true
	case sdl.CONTROLLER_BUTTON_DPAD_UP:
		if pressed {
			return padtype.HatMotionEvent{Direction: padtype.HatUp}, true
		}
	case sdl.CONTROLLER_BUTTON_DPAD_DOWN:
		if pressed {
			return padtype.HatMotionEvent{Direction: padtype.HatDown}, true
		}
	case sdl.CONTROLLER_BUTTON_DPAD_LEFT:
		if pressed {
			return padtype.HatMotionEvent{Direction: padtype.HatLeft}, true
		}
	case sdl.CONTROLLER_BUTTON_DPAD_RIGHT:
		if pressed {
			return padtype.HatMotionEvent{Direction: padtype.HatRight}, true
		}
	}
	return nil, false
}
