package padtype

// keysTop returns the y coordinate of the first key row.
func (k *Keyboard) keysTop() int32 {
	return k.screenH - k.visibleHeight + keyTopInset
}

// keyAt maps a screen point to a key position. Containment is strict on both
// horizontal edges, so a point exactly on the boundary between two keys
// belongs to neither.
func (k *Keyboard) keyAt(px, py int32) (row, col int, ok bool) {
	startY := k.keysTop()
	for r := 0; r < k.layout.NumRows(); r++ {
		y := startY + int32(r)*(rowHeight+rowSpacing)
		if py < y {
			break
		}
		if py >= y+rowHeight {
			continue
		}

		br := k.layout.Row(r)
		x := br.StartX
		for c := 0; c < br.NumKeys(); c++ {
			if px > x && px < x+br.Widths[c] {
				return r, c, true
			}
			x += br.Widths[c] + br.Spacing
		}
	}
	return 0, 0, false
}

// keyRect returns the on-screen rectangle of a key.
func (k *Keyboard) keyRect(row, col int) Rect {
	br := k.layout.Row(row)
	x := br.StartX
	for c := 0; c < col; c++ {
		x += br.Widths[c] + br.Spacing
	}
	y := k.keysTop() + int32(row)*(rowHeight+rowSpacing)
	return Rect{X: x, Y: y, W: br.Widths[col], H: rowHeight}
}

// activatePointerMode switches to pointer-driven input: the pad focus is
// cleared and the hover highlight takes over.
func (k *Keyboard) activatePointerMode() {
	k.focusRow = -1
}

// activatePadMode switches to pad-driven input: the highlight is cleared and,
// if no key was focused yet, focus starts at the middle of the middle row.
func (k *Keyboard) activatePadMode() {
	if k.focusRow < 0 {
		k.focusRow = k.layout.NumRows() / 2
		k.focusCol = k.layout.Row(k.focusRow).NumKeys() / 2
	}
	k.highlightRow = -1
}

func (k *Keyboard) moveRight() {
	k.focusCol++
	if k.focusCol >= k.layout.Row(k.focusRow).NumKeys() {
		k.focusCol = 0
	}
}

func (k *Keyboard) moveLeft() {
	k.focusCol--
	if k.focusCol < 0 {
		k.focusCol = k.layout.Row(k.focusRow).NumKeys() - 1
	}
}

func (k *Keyboard) moveUp() {
	oldRow := k.focusRow
	k.focusRow--
	if k.focusRow < 0 {
		k.focusRow = k.layout.NumRows() - 1
	}
	if oldRow >= 0 {
		k.focusCol = k.adjustColumn(k.focusRow, oldRow, k.focusCol)
	}
}

func (k *Keyboard) moveDown() {
	oldRow := k.focusRow
	k.focusRow++
	if k.focusRow >= k.layout.NumRows() {
		k.focusRow = 0
	}
	if oldRow >= 0 {
		k.focusCol = k.adjustColumn(k.focusRow, oldRow, k.focusCol)
	}
}

// adjustColumn picks the column in the destination row closest to the
// departure key: the last key whose left edge does not pass the departure
// key's right edge, so vertical movement stays spatially intuitive when row
// key counts differ.
func (k *Keyboard) adjustColumn(row, oldRow, oldCol int) int {
	br := k.layout.Row(oldRow)
	x := br.StartX
	for c := 0; c < oldCol; c++ {
		x += br.Widths[c] + br.Spacing
	}
	departX := x + br.Widths[oldCol]

	br = k.layout.Row(row)
	x = br.StartX
	col := 0
	for ; col < br.NumKeys(); col++ {
		if x > departX {
			if col > 0 {
				return col - 1
			}
			return col
		}
		x += br.Widths[col] + br.Spacing
	}
	return col - 1
}

// ProcessEvent routes one host event. It returns whether the event was
// consumed; events arriving while the keyboard is closed are not.
func (k *Keyboard) ProcessEvent(ev Event) bool {
	if !k.visible {
		return false
	}

	switch e := ev.(type) {
	case PointerMotionEvent:
		k.handleMotion(e.X, e.Y)
	case PointerButtonEvent:
		if e.Pressed {
			k.handleClick(e.X, e.Y)
		}
	case AxisMotionEvent:
		k.handleAxis(e)
	case HatMotionEvent:
		k.handleHat(e.Direction)
	case ButtonEvent:
		k.handleButton(e)
	default:
		return false
	}
	return true
}

func (k *Keyboard) handleMotion(px, py int32) {
	k.activatePointerMode()

	if row, col, ok := k.keyAt(px, py); ok {
		if k.highlightRow != row || k.highlightCol != col {
			k.highlightRow = row
			k.highlightCol = col
			if h, ok := k.host.(Haptics); ok {
				h.HighlightPulse()
			}
		}
	} else {
		k.highlightRow = -1
	}
}

func (k *Keyboard) handleClick(px, py int32) {
	k.activatePointerMode()

	if py < k.screenH-k.PanelHeight() {
		// Tap outside the keyboard. With the internal panel active this is
		// an implicit commit; otherwise it just dismisses the keyboard.
		if k.editable() {
			k.commit()
		} else {
			k.Hide()
		}
		return
	}

	if row, col, ok := k.keyAt(px, py); ok {
		k.activateKey(row, col)
	}
}

func (k *Keyboard) handleAxis(e AxisMotionEvent) {
	k.activatePadMode()

	switch e.Axis {
	case 0:
		if e.Value > axisThreshold {
			k.moveRight()
		} else if e.Value < -axisThreshold {
			k.moveLeft()
		}
	case 1:
		if e.Value > axisThreshold {
			k.moveDown()
		} else if e.Value < -axisThreshold {
			k.moveUp()
		}
	}
}

func (k *Keyboard) handleHat(dir HatDirection) {
	k.activatePadMode()

	switch dir {
	case HatRight:
		k.moveRight()
	case HatLeft:
		k.moveLeft()
	case HatDown:
		k.moveDown()
	case HatUp:
		k.moveUp()
	}
}

func (k *Keyboard) handleButton(e ButtonEvent) {
	if k.focusRow < 0 || !e.Pressed {
		return
	}

	switch e.Button {
	case ButtonActivate:
		k.activateKey(k.focusRow, k.focusCol)
	case ButtonBackspace:
		k.backspace()
	}
}
