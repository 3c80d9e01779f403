package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padtype/padtype/pkg/padtype/layout"
)

func TestKeyRefRoundTrip(t *testing.T) {
	for level := 0; level < layout.NumLevels; level++ {
		for row := 0; row < layout.NumRows; row++ {
			for col := 0; col < layout.MaxKeysPerRow; col++ {
				ref := layout.NewKeyRef(level, row, col)
				assert.Equal(t, level, ref.Level())
				assert.Equal(t, row, ref.Row())
				assert.Equal(t, col, ref.Col())
			}
		}
	}
}

func TestKeyRefDistinct(t *testing.T) {
	seen := make(map[layout.KeyRef]bool)
	for level := 0; level < layout.NumLevels; level++ {
		for row := 0; row < layout.NumRows; row++ {
			for col := 0; col < layout.MaxKeysPerRow; col++ {
				ref := layout.NewKeyRef(level, row, col)
				require.False(t, seen[ref], "duplicate ref %d", ref)
				seen[ref] = true
			}
		}
	}
}

func TestNewValidation(t *testing.T) {
	goodRow := func(n int) *layout.Row {
		r := &layout.Row{Widths: make([]int32, n)}
		for i := range r.Widths {
			r.Widths[i] = 52
		}
		for l := 0; l < layout.NumLevels; l++ {
			r.Levels[l] = make([]layout.Key, n)
		}
		return r
	}

	tests := []struct {
		name    string
		rows    []*layout.Row
		wantErr bool
	}{
		{name: "single row", rows: []*layout.Row{goodRow(3)}},
		{name: "max rows", rows: []*layout.Row{goodRow(1), goodRow(2), goodRow(3), goodRow(4), goodRow(10)}},
		{name: "no rows", rows: nil, wantErr: true},
		{
			name:    "too many rows",
			rows:    []*layout.Row{goodRow(1), goodRow(1), goodRow(1), goodRow(1), goodRow(1), goodRow(1)},
			wantErr: true,
		},
		{name: "too many keys", rows: []*layout.Row{goodRow(11)}, wantErr: true},
		{
			name: "symbol table length mismatch",
			rows: func() []*layout.Row {
				r := goodRow(3)
				r.Levels[2] = r.Levels[2][:2]
				return []*layout.Row{r}
			}(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := layout.New(tt.rows)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.rows), l.NumRows())
		})
	}
}

func TestDefaultLayoutShape(t *testing.T) {
	l := layout.Default()
	require.Equal(t, layout.NumRows, l.NumRows())

	wantKeys := []int{10, 10, 9, 9, 5}
	for r := 0; r < l.NumRows(); r++ {
		row := l.Row(r)
		assert.Equal(t, wantKeys[r], row.NumKeys(), "row %d", r)
		for level := 0; level < layout.NumLevels; level++ {
			assert.Len(t, row.Levels[level], row.NumKeys(), "row %d level %d", r, level)
		}
	}
}

func TestDefaultLayoutSpecialKeys(t *testing.T) {
	l := layout.Default()

	for level := 0; level < layout.NumLevels; level++ {
		assert.Equal(t, layout.KeyBackspace, l.Key(level, 3, 8).Kind, "level %d", level)
		assert.Equal(t, layout.KeyEnter, l.Key(level, 4, 4).Kind, "level %d", level)
	}

	// Shift swaps the two letter levels; the symbol levels page between each
	// other in its place, and abc leads back from the symbol levels.
	assert.Equal(t, layout.KeyShift, l.Key(0, 3, 0).Kind)
	assert.Equal(t, layout.KeyShift, l.Key(1, 3, 0).Kind)
	assert.Equal(t, layout.KeySymbolsB, l.Key(2, 3, 0).Kind)
	assert.Equal(t, layout.KeySymbolsA, l.Key(3, 3, 0).Kind)
	assert.Equal(t, layout.KeySymbolsA, l.Key(0, 4, 0).Kind)
	assert.Equal(t, layout.KeyAbc, l.Key(2, 4, 0).Kind)

	// Space is a plain literal everywhere.
	for level := 0; level < layout.NumLevels; level++ {
		key := l.Key(level, 4, 2)
		assert.Equal(t, layout.KeyLiteral, key.Kind)
		assert.Equal(t, " ", key.Text)
	}
}

func TestDefaultLayoutShiftPairs(t *testing.T) {
	l := layout.Default()
	// Level 1 mirrors level 0 with upper-case letters.
	assert.Equal(t, "q", l.Key(0, 1, 0).Text)
	assert.Equal(t, "Q", l.Key(1, 1, 0).Text)
	assert.Equal(t, "m", l.Key(0, 3, 7).Text)
	assert.Equal(t, "M", l.Key(1, 3, 7).Text)
}
