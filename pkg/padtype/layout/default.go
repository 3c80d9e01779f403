package layout

// Captions holds the display text of the functional keys. Hosts that want
// localized captions can fill this from the i18n package.
type Captions struct {
	Backspace  string
	Shift      string
	Enter      string
	Abc        string
	Symbols    string
	FirstPage  string
	SecondPage string
}

// DefaultCaptions returns the captions used by the built-in layout.
func DefaultCaptions() Captions {
	return Captions{
		Backspace:  "←",
		Shift:      "↑",
		Enter:      "⏎",
		Abc:        "abc",
		Symbols:    "=\\<",
		FirstPage:  "1/2",
		SecondPage: "2/2",
	}
}

// Default returns the built-in five-row QWERTY layout.
func Default() *Layout { return DefaultWith(DefaultCaptions()) }

// DefaultWith returns the built-in layout with custom functional-key
// captions.
func DefaultWith(c Captions) *Layout {
	backspace := Key{Kind: KeyBackspace, Text: c.Backspace}
	shift := Key{Kind: KeyShift, Text: c.Shift}
	enter := Key{Kind: KeyEnter, Text: c.Enter}
	abc := Key{Kind: KeyAbc, Text: c.Abc}
	symbols := Key{Kind: KeySymbolsA, Text: c.Symbols}
	firstPage := Key{Kind: KeySymbolsB, Text: c.FirstPage}
	secondPage := Key{Kind: KeySymbolsA, Text: c.SecondPage}

	row0Syms := literals("1", "2", "3", "4", "5", "6", "7", "8", "9", "0")
	row0Syms2 := literals("~", "@", "#", "$", "%", "^", "&", "*", "(", ")")
	row0 := &Row{
		StartX:  6,
		Spacing: 12,
		Widths:  widths(52, 10),
		Levels:  [NumLevels][]Key{row0Syms, row0Syms, row0Syms2, row0Syms2},
	}

	row1 := &Row{
		StartX:  6,
		Spacing: 12,
		Widths:  widths(52, 10),
		Levels: [NumLevels][]Key{
			literals("q", "w", "e", "r", "t", "y", "u", "i", "o", "p"),
			literals("Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P"),
			literals("\\", "/", "€", "¢", "=", "-", "_", "+", "[", "]"),
			literals("©", "®", "£", "µ", "¥", "№", "°", "★", "☞", "☜"),
		},
	}

	row2 := &Row{
		StartX:  38,
		Spacing: 12,
		Widths:  widths(52, 9),
		Levels: [NumLevels][]Key{
			literals("a", "s", "d", "f", "g", "h", "j", "k", "l"),
			literals("A", "S", "D", "F", "G", "H", "J", "K", "L"),
			literals("<", ">", "¿", "¡", "—", "´", "|", "{", "}"),
			literals("«", "»", "☺", "☹", "\U0001f600", "\U0001f609", "\U0001f622", "\U0001f607", "\U0001f608"),
		},
	}

	row3 := &Row{
		StartX:  6,
		Spacing: 12,
		Widths:  []int32{84, 52, 52, 52, 52, 52, 52, 52, 84},
		Levels: [NumLevels][]Key{
			bracketed(shift, literals("z", "x", "c", "v", "b", "n", "m"), backspace),
			bracketed(shift, literals("Z", "X", "C", "V", "B", "N", "M"), backspace),
			bracketed(firstPage, literals("`", "\"", "'", ":", ";", "!", "?"), backspace),
			bracketed(secondPage, literals("⚠", "§", "±", "♂", "♀", "☀", "☾"), backspace),
		},
	}

	row4Letters := bracketed(symbols, literals(",", " ", "."), enter)
	row4Symbols := bracketed(abc, literals(",", " ", "."), enter)
	row4 := &Row{
		StartX:  6,
		Spacing: 12,
		Widths:  []int32{84, 52, 244, 52, 148},
		Levels:  [NumLevels][]Key{row4Letters, row4Letters, row4Symbols, row4Symbols},
	}

	l, err := New([]*Row{row0, row1, row2, row3, row4})
	if err != nil {
		// The built-in table is validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return l
}

func literals(texts ...string) []Key {
	keys := make([]Key, len(texts))
	for i, t := range texts {
		keys[i] = Literal(t)
	}
	return keys
}

func bracketed(first Key, middle []Key, last Key) []Key {
	keys := make([]Key, 0, len(middle)+2)
	keys = append(keys, first)
	keys = append(keys, middle...)
	return append(keys, last)
}

func widths(w int32, n int) []int32 {
	ws := make([]int32, n)
	for i := range ws {
		ws[i] = w
	}
	return ws
}
