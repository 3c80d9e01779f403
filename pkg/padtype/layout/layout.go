// Package layout describes the key grid of the on-screen keyboard: rows,
// per-key pixel widths and the four symbol tables (base, shifted and two
// symbol pages) assigned to every key. A Layout is immutable once built and
// is passed explicitly to every component that needs it.
package layout

import "fmt"

// Hard limits of the addressable key space. The atlas file format and KeyRef
// encoding both depend on these, so they are compile-time constants rather
// than properties of a particular Layout.
const (
	NumLevels     = 4
	NumRows       = 5
	MaxKeysPerRow = 10
)

// KeyKind classifies what activating a key does. Functional keys are
// recognized by their kind, never by comparing caption text.
type KeyKind int

const (
	KeyLiteral KeyKind = iota
	KeyBackspace
	KeyEnter
	KeyShift
	// KeySymbolsA switches to the first symbols page (level 2).
	KeySymbolsA
	// KeySymbolsB switches to the second symbols page (level 3).
	KeySymbolsB
	// KeyAbc switches back to the base letters (level 0).
	KeyAbc
)

// Key is one entry of a symbol table. Text is the literal inserted for
// KeyLiteral keys and the rendered caption for every other kind.
type Key struct {
	Kind KeyKind
	Text string
}

// Literal builds a plain text key.
func Literal(text string) Key { return Key{Kind: KeyLiteral, Text: text} }

// Row describes one horizontal band of keys. The four symbol tables must all
// have exactly len(Widths) entries.
type Row struct {
	StartX  int32
	Spacing int32
	Widths  []int32
	Levels  [NumLevels][]Key
}

// NumKeys returns the number of keys in the row.
func (r *Row) NumKeys() int { return len(r.Widths) }

// Layout is an immutable sequence of rows.
type Layout struct {
	rows []*Row
}

// New validates the row set and builds a Layout from it.
func New(rows []*Row) (*Layout, error) {
	if len(rows) == 0 || len(rows) > NumRows {
		return nil, fmt.Errorf("layout: row count %d outside 1..%d", len(rows), NumRows)
	}
	for i, r := range rows {
		if n := r.NumKeys(); n == 0 || n > MaxKeysPerRow {
			return nil, fmt.Errorf("layout: row %d has %d keys, limit is %d", i, n, MaxKeysPerRow)
		}
		for lvl := 0; lvl < NumLevels; lvl++ {
			if len(r.Levels[lvl]) != r.NumKeys() {
				return nil, fmt.Errorf("layout: row %d level %d has %d symbols for %d keys",
					i, lvl, len(r.Levels[lvl]), r.NumKeys())
			}
		}
	}
	return &Layout{rows: rows}, nil
}

// NumRows returns the number of rows in the layout.
func (l *Layout) NumRows() int { return len(l.rows) }

// Row returns the i-th row, top to bottom.
func (l *Layout) Row(i int) *Row { return l.rows[i] }

// Key returns the symbol at (level, row, col).
func (l *Layout) Key(level, row, col int) Key {
	return l.rows[row].Levels[level][col]
}

// KeyRef packs a (level, row, col) triple into one small integer so the input
// buffer can remember which glyph was typed even after the active level
// changes. The encoding is bijective within
// NumLevels*NumRows*MaxKeysPerRow (= 200) values.
type KeyRef uint8

// NewKeyRef encodes the triple. Arguments must be within the layout limits.
func NewKeyRef(level, row, col int) KeyRef {
	return KeyRef((level*NumRows+row)*MaxKeysPerRow + col)
}

// Level returns the layout level the reference was recorded at.
func (r KeyRef) Level() int { return int(r) / (NumRows * MaxKeysPerRow) }

// Row returns the row index.
func (r KeyRef) Row() int { return int(r) / MaxKeysPerRow % NumRows }

// Col returns the column index.
func (r KeyRef) Col() int { return int(r) % MaxKeysPerRow }
