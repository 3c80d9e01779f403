package padtype_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/padtype/padtype/pkg/padtype"
	"github.com/padtype/padtype/pkg/padtype/atlas"
	"github.com/padtype/padtype/pkg/padtype/layout"
)

const (
	screenW = 640
	screenH = 480

	// Fully open panel height for the default five-row layout.
	panelH = 5 * (40 + 12)
	// Top of the first key row when the panel is fully open.
	keysTop = screenH - panelH + 5

	testGlyphW = 10
	testGlyphH = 12
)

// fakeHost implements padtype.Host with manually advanced ticks and records
// everything the keyboard sends back.
type fakeHost struct {
	ticks    uint32
	texts    []string
	controls []padtype.ControlKey
	stops    int
	swaps    int
	restores int
	pulses   int
}

func (h *fakeHost) InsertText(text string) { h.texts = append(h.texts, text) }

func (h *fakeHost) SendControlKey(key padtype.ControlKey) { h.controls = append(h.controls, key) }

func (h *fakeHost) RequestStopTextInput() { h.stops++ }

func (h *fakeHost) DisplayBounds() (int32, int32) { return screenW, screenH }

func (h *fakeHost) TicksMS() uint32 { return h.ticks }

func (h *fakeHost) UseDefaultCursor() { h.swaps++ }

func (h *fakeHost) RestoreCursor() { h.restores++ }

func (h *fakeHost) HighlightPulse() { h.pulses++ }

// nopRenderer drives RenderFrame (and with it the animation) without
// recording anything.
type nopRenderer struct{}

func (nopRenderer) FillRect(padtype.Rect, padtype.Color) {}
func (nopRenderer) DrawGlyph(*atlas.Atlas, int, padtype.Rect, padtype.Rect, padtype.Color) {
}
func (nopRenderer) SetClip(*padtype.Rect) {}

// newKeyboard builds a keyboard over the default layout whose atlases live
// in a temp dir: every key glyph is testGlyphW px wide.
func newKeyboard(t *testing.T) (*padtype.Keyboard, *fakeHost) {
	t.Helper()
	host := &fakeHost{ticks: 1}
	dir := t.TempDir()
	writeAtlases(t, dir)
	kb := padtype.New(layout.Default(), host, padtype.Options{AtlasDir: dir})
	return kb, host
}

// writeAtlases encodes one atlas per level for the default layout, with a
// uniform solid glyph per key.
func writeAtlases(t *testing.T, dir string) {
	t.Helper()
	lay := layout.Default()
	for level := 0; level < layout.NumLevels; level++ {
		glyphs := make([][]atlas.Glyph, lay.NumRows())
		for r := range glyphs {
			glyphs[r] = make([]atlas.Glyph, lay.Row(r).NumKeys())
			for c := range glyphs[r] {
				g := atlas.Glyph{
					Width:  testGlyphW,
					Height: testGlyphH,
					Alpha:  make([]byte, testGlyphW*testGlyphH),
				}
				for i := range g.Alpha {
					g.Alpha[i] = 0xff
				}
				glyphs[r][c] = g
			}
		}
		data, err := atlas.Encode(glyphs, testGlyphH)
		require.NoError(t, err)
		path := filepath.Join(dir, fmt.Sprintf("osk%d.tex", level))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}
}

// open shows the keyboard and advances past the enter transition.
func open(kb *padtype.Keyboard, host *fakeHost) {
	kb.Show()
	host.ticks += 1100
	kb.RenderFrame(nopRenderer{})
}

// settle advances past whichever transition is in flight.
func settle(kb *padtype.Keyboard, host *fakeHost) {
	host.ticks += 1100
	kb.RenderFrame(nopRenderer{})
}

// keyCenter returns the on-screen center of a key in the fully open panel.
func keyCenter(row, col int) (int32, int32) {
	br := layout.Default().Row(row)
	x := br.StartX
	for c := 0; c < col; c++ {
		x += br.Widths[c] + br.Spacing
	}
	return x + br.Widths[col]/2, int32(keysTop) + int32(row)*(40+12) + 20
}

// click sends a pointer press at a key's center.
func click(kb *padtype.Keyboard, row, col int) {
	x, y := keyCenter(row, col)
	kb.ProcessEvent(padtype.PointerButtonEvent{X: x, Y: y, Pressed: true})
}
