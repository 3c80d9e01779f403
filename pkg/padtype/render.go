package padtype

import "github.com/padtype/padtype/pkg/padtype/layout"

var (
	colorPanelBg          = rgba(0x0e0e12ff)
	colorKeyBgLetter      = rgba(0x5a606aff)
	colorKeyBgLetterHigh  = rgba(0x2d3035ff)
	colorKeyBgEnter       = rgba(0x003c00ff)
	colorKeyBgEnterHigh   = rgba(0x32783eff)
	colorKeyBgSpecial     = rgba(0x32363eff)
	colorKeyBgSpecialHigh = rgba(0x191b1fff)
	colorFocus            = rgba(0xe0f010ff)

	colorInputPanelBg = rgba(0x16161cff)
	colorInputFieldBg = rgba(0x26262eff)
	colorInputCursor  = rgba(0xe0f010ff)
)

// RenderFrame advances the animation and emits this frame's draw requests.
// Nothing is emitted while the keyboard is closed.
func (k *Keyboard) RenderFrame(r Renderer) {
	k.updateAnimation()
	if !k.visible {
		return
	}

	panelTop := k.screenH - k.visibleHeight
	r.FillRect(Rect{X: 0, Y: panelTop, W: k.screenW, H: k.PanelHeight()}, colorPanelBg)

	if k.editable() {
		k.renderInputPanel(r, panelTop)
	}

	k.renderKeyBackgrounds(r)
	k.renderKeyGlyphs(r)
}

// renderInputPanel draws the internal input panel, the buffered glyphs and
// the blinking cursor. The panel is anchored to the keyboard top so it
// slides in and out with the same animation curve.
func (k *Keyboard) renderInputPanel(r Renderer, panelTop int32) {
	panelH := k.screenH - k.PanelHeight()
	panel := Rect{X: 0, Y: panelTop - panelH, W: k.screenW, H: panelH}
	r.FillRect(panel, colorInputPanelBg)

	fieldH := int32(rowHeight) + 2*focusBorder
	field := Rect{
		X: panelTextInset,
		Y: panel.Y + (panelH-fieldH)/2,
		W: k.textWindow(),
		H: fieldH,
	}
	r.FillRect(field, colorInputFieldBg)

	r.SetClip(&field)
	x := field.X - k.scrollX
	midY := field.Y + field.H/2
	for _, ref := range k.buffer {
		a := k.lookupAtlas(ref.Level())
		if a == nil {
			continue
		}
		sx, sy, sw, sh := a.GlyphRect(ref.Row(), ref.Col())
		dst := Rect{X: x, Y: midY - int32(sh)/2, W: int32(sw), H: int32(sh)}
		r.DrawGlyph(a, ref.Level(),
			Rect{X: int32(sx), Y: int32(sy), W: int32(sw), H: int32(sh)}, dst, k.keyColor)
		x += int32(sw)
	}
	if k.cursorVisible() {
		r.FillRect(Rect{X: x, Y: field.Y + focusBorder, W: 2, H: field.H - 2*focusBorder}, colorInputCursor)
	}
	r.SetClip(nil)
}

// cursorVisible implements the blink: the cursor shows for cursorBlinkMS,
// hides for cursorBlinkMS, and every edit restarts the visible phase.
func (k *Keyboard) cursorVisible() bool {
	return (k.host.TicksMS()-k.blinkStart)/cursorBlinkMS%2 == 0
}

func (k *Keyboard) renderKeyBackgrounds(r Renderer) {
	for row := 0; row < k.layout.NumRows(); row++ {
		br := k.layout.Row(row)
		for col := 0; col < br.NumKeys(); col++ {
			rect := k.keyRect(row, col)

			if row == k.focusRow && col == k.focusCol {
				r.FillRect(Rect{
					X: rect.X - focusBorder,
					Y: rect.Y - focusBorder,
					W: rect.W + 2*focusBorder,
					H: rect.H + 2*focusBorder,
				}, colorFocus)
			}

			highlighted := row == k.highlightRow && col == k.highlightCol
			r.FillRect(rect, k.keyBackground(row, col, highlighted))
		}
	}
}

func (k *Keyboard) keyBackground(row, col int, highlighted bool) Color {
	switch k.layout.Key(k.activeLevel, row, col).Kind {
	case layout.KeyEnter:
		if highlighted {
			return colorKeyBgEnterHigh
		}
		return colorKeyBgEnter
	case layout.KeyLiteral:
		if highlighted {
			return colorKeyBgLetterHigh
		}
		return colorKeyBgLetter
	default:
		if highlighted {
			return colorKeyBgSpecialHigh
		}
		return colorKeyBgSpecial
	}
}

// renderKeyGlyphs draws the glyph of every key, centered in its box. A
// missing atlas skips glyph drawing for the frame; the key boxes above
// remain.
func (k *Keyboard) renderKeyGlyphs(r Renderer) {
	a := k.lookupAtlas(k.activeLevel)
	if a == nil {
		return
	}

	for row := 0; row < k.layout.NumRows(); row++ {
		br := k.layout.Row(row)
		for col := 0; col < br.NumKeys(); col++ {
			sx, sy, sw, sh := a.GlyphRect(row, col)
			if sw == 0 {
				continue
			}
			rect := k.keyRect(row, col)
			dst := Rect{
				X: rect.X + (rect.W-int32(sw))/2,
				Y: rect.Y + (rect.H-int32(sh))/2,
				W: int32(sw),
				H: int32(sh),
			}
			r.DrawGlyph(a, k.activeLevel,
				Rect{X: int32(sx), Y: int32(sy), W: int32(sw), H: int32(sh)}, dst, k.keyColor)
		}
	}
}
