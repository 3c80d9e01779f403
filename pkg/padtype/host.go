// Package padtype implements an on-screen virtual keyboard for console-class
// hardware without a physical keyboard: a key grid with pointer and
// directional-pad navigation, a resumable show/hide animation, an editable
// input buffer and pre-rendered glyph atlases.
//
// The package draws nothing itself and owns no event loop. The host hands
// events to Keyboard.ProcessEvent, calls Keyboard.RenderFrame once per frame
// with a Renderer, and receives text and control keys back through the Host
// interface.
package padtype

import (
	"github.com/padtype/padtype/pkg/padtype/atlas"
)

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X, Y, W, H int32
}

// Color is an RGBA color with straight alpha.
type Color struct {
	R, G, B, A uint8
}

func rgba(v uint32) Color {
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}

// ControlKey names a non-text key event delivered to the host.
type ControlKey int

const (
	ControlBackspace ControlKey = iota
	ControlConfirm
)

// Host is the capability surface the embedding application provides to the
// keyboard. All methods are called from the same goroutine that drives
// ProcessEvent and RenderFrame.
type Host interface {
	// InsertText delivers literal text to the focused text destination.
	InsertText(text string)
	// SendControlKey delivers a backspace or confirm press.
	SendControlKey(key ControlKey)
	// RequestStopTextInput asks the host to end its text-input session,
	// issued when the internal input panel commits.
	RequestStopTextInput()
	// DisplayBounds returns the screen size in pixels.
	DisplayBounds() (w, h int32)
	// TicksMS returns a monotonic millisecond clock.
	TicksMS() uint32
	// UseDefaultCursor swaps the application pointer cursor for the host's
	// default one while the keyboard is open.
	UseDefaultCursor()
	// RestoreCursor restores the cursor saved by UseDefaultCursor.
	RestoreCursor()
}

// Haptics is optionally implemented by hosts that can pulse a rumble motor
// when the pointer highlight moves onto a new key.
type Haptics interface {
	HighlightPulse()
}

// Renderer receives the keyboard's draw requests for one frame, in paint
// order. The collaborator owns rasterization, blending and texture binding.
type Renderer interface {
	// FillRect draws a solid rectangle.
	FillRect(r Rect, c Color)
	// DrawGlyph draws the src region of the level's atlas into dst, tinted.
	// The atlas pointer is stable for the lifetime of an open session, so
	// implementations may cache uploaded textures per level.
	DrawGlyph(a *atlas.Atlas, level int, src, dst Rect, tint Color)
	// SetClip restricts subsequent draws to r; nil clears the clip region.
	SetClip(r *Rect)
}
