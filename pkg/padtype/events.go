package padtype

// Event is a host-neutral input event. Adapters translate windowing-system
// events (SDL, evdev, ...) into these before handing them to ProcessEvent so
// no host types leak into the core.
type Event interface {
	isEvent()
}

// PointerMotionEvent reports pointer movement in screen coordinates.
type PointerMotionEvent struct {
	X, Y int32
}

// PointerButtonEvent reports a pointer button press or release.
type PointerButtonEvent struct {
	X, Y    int32
	Pressed bool
}

// AxisMotionEvent reports analog stick motion. Axis 0 is horizontal,
// axis 1 vertical; values follow the usual signed 16-bit convention.
type AxisMotionEvent struct {
	Axis  uint8
	Value int16
}

// HatDirection is a discrete directional-pad position.
type HatDirection uint8

const (
	HatCentered HatDirection = iota
	HatUp
	HatDown
	HatLeft
	HatRight
)

// HatMotionEvent reports a directional-pad position change.
type HatMotionEvent struct {
	Direction HatDirection
}

// Button is a pad button with keyboard meaning.
type Button uint8

const (
	// ButtonActivate presses the focused key.
	ButtonActivate Button = iota
	// ButtonBackspace is the dedicated backspace shortcut.
	ButtonBackspace
)

// ButtonEvent reports a pad button press or release.
type ButtonEvent struct {
	Button  Button
	Pressed bool
}

func (PointerMotionEvent) isEvent() {}
func (PointerButtonEvent) isEvent() {}
func (AxisMotionEvent) isEvent()    {}
func (HatMotionEvent) isEvent()     {}
func (ButtonEvent) isEvent()        {}

// axisThreshold is the stick deflection beyond which axis motion counts as a
// directional step.
const axisThreshold = 256
