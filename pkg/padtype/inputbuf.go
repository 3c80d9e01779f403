package padtype

import "github.com/padtype/padtype/pkg/padtype/layout"

// activateKey interprets the key at (row, col) under the active layout
// level: a layout switch, an edit command, or literal text.
func (k *Keyboard) activateKey(row, col int) {
	key := k.layout.Key(k.activeLevel, row, col)

	switch key.Kind {
	case layout.KeyBackspace:
		k.backspace()
	case layout.KeyEnter:
		if k.editable() {
			k.commit()
		} else {
			k.host.SendControlKey(ControlConfirm)
		}
	case layout.KeyAbc:
		k.setLevel(0)
	case layout.KeyShift:
		if k.activeLevel == 0 {
			k.setLevel(1)
		} else {
			k.setLevel(0)
		}
	case layout.KeySymbolsA:
		k.setLevel(2)
	case layout.KeySymbolsB:
		k.setLevel(3)
	default:
		if k.editable() {
			k.appendRef(layout.NewKeyRef(k.activeLevel, row, col))
		} else {
			k.host.InsertText(key.Text)
		}
	}
}

// backspace removes the last buffered key, or forwards a backspace control
// event when no internal buffer is active.
func (k *Keyboard) backspace() {
	if !k.editable() {
		k.host.SendControlKey(ControlBackspace)
		return
	}
	if len(k.buffer) == 0 {
		return
	}
	k.buffer = k.buffer[:len(k.buffer)-1]
	k.recomputeCursor()
}

// appendRef records a typed key in the internal buffer. Keys beyond the
// buffer bound are dropped silently.
func (k *Keyboard) appendRef(ref layout.KeyRef) {
	if len(k.buffer) >= maxBufferKeys {
		return
	}
	k.buffer = append(k.buffer, ref)
	k.recomputeCursor()
}

// commit replays the whole buffer as resolved text to the host, asks the
// host to end the text-input session and starts the exit transition.
func (k *Keyboard) commit() {
	for _, ref := range k.buffer {
		key := k.layout.Key(ref.Level(), ref.Row(), ref.Col())
		if key.Kind == layout.KeyLiteral {
			k.host.InsertText(key.Text)
		}
	}
	k.host.RequestStopTextInput()
	k.Hide()
}

// glyphWidth returns the rendered width of a buffered key, looked up in the
// atlas of the level the key was typed at, not the active one.
func (k *Keyboard) glyphWidth(ref layout.KeyRef) int32 {
	a := k.lookupAtlas(ref.Level())
	if a == nil {
		return 0
	}
	return int32(a.KeyWidths[ref.Row()][ref.Col()])
}

// textWindow returns the width of the visible text area inside the internal
// input panel.
func (k *Keyboard) textWindow() int32 {
	return k.screenW - 2*panelTextInset
}

// recomputeCursor rederives the cursor position and scroll offset after any
// edit. The cursor sits at the end of the buffer; scroll moves only as far
// as needed to keep it inside the visible window.
func (k *Keyboard) recomputeCursor() {
	var x int32
	for _, ref := range k.buffer {
		x += k.glyphWidth(ref)
	}
	k.cursorX = x

	window := k.textWindow()
	if k.cursorX-k.scrollX > window {
		k.scrollX = k.cursorX - window
	} else if k.cursorX < k.scrollX {
		k.scrollX = k.cursorX
	}
	k.blinkStart = k.host.TicksMS()
}
