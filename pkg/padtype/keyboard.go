package padtype

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/padtype/padtype/pkg/padtype/atlas"
	"github.com/padtype/padtype/pkg/padtype/internal"
	"github.com/padtype/padtype/pkg/padtype/layout"
)

const (
	enterAnimationMS = 1000
	exitAnimationMS  = 500

	rowHeight   = 40
	rowSpacing  = 12
	focusBorder = 4
	// Vertical inset between the panel top and the first key row.
	keyTopInset = 5

	maxBufferKeys  = 64
	cursorBlinkMS  = 500
	panelTextInset = 16
)

// Options configures a Keyboard.
type Options struct {
	// AtlasDir is the directory holding the osk<level>.tex files produced by
	// the offline builder. Defaults to the working directory.
	AtlasDir string
	// Logger defaults to the package logger.
	Logger *slog.Logger
	// KeyColor tints the key glyphs. Defaults to white.
	KeyColor Color
}

// Keyboard is the mutable aggregate owning layout level, focus/highlight
// position, animation progress, the input buffer and the atlas cache. It is
// not safe for concurrent use; the host drives it from a single goroutine.
type Keyboard struct {
	layout *layout.Layout
	host   Host
	log    *slog.Logger

	atlasDir string
	keyColor Color

	screenW, screenH int32

	visible       bool
	visibleHeight int32
	panY          int32

	startTicks          uint32
	animationTime       uint32
	startVisibleHeight  int32
	targetVisibleHeight int32
	startPanY           int32
	targetPanY          int32

	activeLevel  int
	focusRow     int
	focusCol     int
	highlightRow int
	highlightCol int

	inputRect *Rect

	buffer     []layout.KeyRef
	cursorX    int32
	scrollX    int32
	blinkStart uint32

	atlases     [layout.NumLevels]*atlas.Atlas
	atlasFailed [layout.NumLevels]bool
}

// New creates a keyboard in the closed state.
func New(lay *layout.Layout, host Host, opts Options) *Keyboard {
	log := opts.Logger
	if log == nil {
		log = internal.GetLogger()
	}
	keyColor := opts.KeyColor
	if keyColor == (Color{}) {
		keyColor = Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return &Keyboard{
		layout:       lay,
		host:         host,
		log:          log,
		atlasDir:     opts.AtlasDir,
		keyColor:     keyColor,
		focusRow:     -1,
		highlightRow: -1,
	}
}

// PanelHeight returns the full height of the open keyboard panel.
func (k *Keyboard) PanelHeight() int32 {
	return int32(k.layout.NumRows()) * (rowHeight + rowSpacing)
}

// IsOpen reports whether the keyboard is visible, including during the enter
// and exit transitions.
func (k *Keyboard) IsOpen() bool { return k.visible }

// VisibleHeight returns the currently visible panel height in pixels.
func (k *Keyboard) VisibleHeight() int32 { return k.visibleHeight }

// PanY returns the viewport pan offset the host should apply so an external
// input rectangle stays visible above the keyboard.
func (k *Keyboard) PanY() int32 { return k.panY }

// ActiveLevel returns the current layout level (0..3).
func (k *Keyboard) ActiveLevel() int { return k.activeLevel }

// Focus returns the pad-driven focus position, if set.
func (k *Keyboard) Focus() (row, col int, ok bool) {
	return k.focusRow, k.focusCol, k.focusRow >= 0
}

// Highlight returns the pointer-hover highlight position, if set.
func (k *Keyboard) Highlight() (row, col int, ok bool) {
	return k.highlightRow, k.highlightCol, k.highlightRow >= 0
}

// BufferLen returns the number of key references in the internal input
// buffer.
func (k *Keyboard) BufferLen() int { return len(k.buffer) }

// CursorX returns the text cursor offset in pixels from the buffer start.
func (k *Keyboard) CursorX() int32 { return k.cursorX }

// ScrollX returns the horizontal scroll applied to the internal input panel.
func (k *Keyboard) ScrollX() int32 { return k.scrollX }

func (k *Keyboard) ensureBounds() {
	if k.screenW == 0 {
		k.screenW, k.screenH = k.host.DisplayBounds()
	}
}

// Show starts (or re-targets) the enter transition. Calling Show while the
// exit transition runs re-captures the interpolated height, so the panel
// reverses without a jump.
func (k *Keyboard) Show() {
	k.ensureBounds()
	k.visible = true
	k.startTicks = k.host.TicksMS()
	k.startVisibleHeight = k.visibleHeight
	k.targetVisibleHeight = k.PanelHeight()
	k.animationTime = enterAnimationMS
	k.host.UseDefaultCursor()
	k.log.Debug("keyboard show", "from", k.startVisibleHeight, "to", k.targetVisibleHeight)
}

// Hide starts (or re-targets) the exit transition. Teardown happens when the
// transition completes.
func (k *Keyboard) Hide() {
	k.startTicks = k.host.TicksMS()
	k.startVisibleHeight = k.visibleHeight
	k.targetVisibleHeight = 0
	k.startPanY = k.panY
	k.targetPanY = 0
	k.animationTime = exitAnimationMS
	k.log.Debug("keyboard hide", "from", k.startVisibleHeight)
}

// SetFocusRect tells the keyboard where the host's active text field is, or
// nil for none. With no external field the keyboard opens its own input
// panel; with one, the viewport pan target is derived so the field stays
// centered in the space left above the panel.
func (k *Keyboard) SetFocusRect(r *Rect) {
	k.ensureBounds()
	if r != nil && r.H != 0 {
		rect := *r
		k.inputRect = &rect
		desiredY := (k.screenH - k.PanelHeight() - rect.H) / 2
		k.targetPanY = desiredY - rect.Y
	} else {
		k.inputRect = nil
		k.targetPanY = 0
	}
	k.startPanY = k.panY
}

// StartTextInput is the host's notification that a text-input session began.
func (k *Keyboard) StartTextInput() {
	k.log.Debug("text input session started")
}

// StopTextInput is the host's notification that the session ended.
func (k *Keyboard) StopTextInput() {
	k.log.Debug("text input session stopped")
}

// editable reports whether the internal input panel (and with it the
// editable key buffer) is active. It is active exactly when the host has not
// supplied an external input rectangle.
func (k *Keyboard) editable() bool { return k.inputRect == nil }

// updateAnimation advances the height/pan interpolation; called once per
// rendered frame.
func (k *Keyboard) updateAnimation() {
	if k.animationTime == 0 {
		return
	}
	elapsed := k.host.TicksMS() - k.startTicks
	if elapsed >= k.animationTime {
		k.visibleHeight = k.targetVisibleHeight
		k.panY = k.targetPanY
		k.animationTime = 0
		if k.targetVisibleHeight == 0 {
			k.teardown()
		}
		return
	}

	pos := math.Sin(math.Pi / 2 * float64(elapsed) / float64(k.animationTime))
	heightDiff := k.targetVisibleHeight - k.startVisibleHeight
	k.visibleHeight = k.startVisibleHeight + int32(float64(heightDiff)*pos)
	panDiff := k.targetPanY - k.startPanY
	k.panY = k.startPanY + int32(float64(panDiff)*pos)
}

// teardown runs at the end of the exit transition: atlases are released,
// state returns to defaults and the host cursor is restored, so the next
// Show starts clean.
func (k *Keyboard) teardown() {
	k.visible = false
	k.releaseAtlases()
	k.host.RestoreCursor()

	k.activeLevel = 0
	k.focusRow = -1
	k.highlightRow = -1
	k.buffer = k.buffer[:0]
	k.cursorX = 0
	k.scrollX = 0
	k.inputRect = nil
	k.panY = 0
	k.startPanY = 0
	k.targetPanY = 0
	k.log.Debug("keyboard closed")
}

func (k *Keyboard) releaseAtlases() {
	for i := range k.atlases {
		k.atlases[i] = nil
		k.atlasFailed[i] = false
	}
}

// lookupAtlas loads the atlas for a level on first use. A decode or read
// failure leaves the level absent for the rest of the open session; glyph
// drawing is skipped but key boxes still render.
func (k *Keyboard) lookupAtlas(level int) *atlas.Atlas {
	if k.atlases[level] != nil {
		return k.atlases[level]
	}
	if k.atlasFailed[level] {
		return nil
	}

	path := filepath.Join(k.atlasDir, fmt.Sprintf("osk%d.tex", level))
	data, err := os.ReadFile(path)
	if err != nil {
		k.log.Error("failed to read atlas", "path", path, "error", err)
		k.atlasFailed[level] = true
		return nil
	}
	a, err := atlas.Decode(data)
	if err != nil {
		k.log.Error("failed to decode atlas", "path", path, "error", err)
		k.atlasFailed[level] = true
		return nil
	}
	k.atlases[level] = a
	return a
}

// setLevel switches the active layout level and clamps the focus column to
// the new level's row, in case row key counts ever differ across levels.
func (k *Keyboard) setLevel(level int) {
	k.activeLevel = level
	if k.focusRow >= 0 {
		if last := k.layout.Row(k.focusRow).NumKeys() - 1; k.focusCol > last {
			k.focusCol = last
		}
	}
}
