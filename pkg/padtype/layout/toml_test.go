package layout_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padtype/padtype/pkg/padtype/layout"
)

const miniLayout = `
[[rows]]
start = 6
spacing = 12
widths = [84, 52, 84]
levels = [
    ["@shift", "a", "@backspace"],
    ["@shift", "A", "@backspace"],
    ["@first", "<", "@backspace"],
    ["@second:2/2", ">", "@backspace"],
]

[[rows]]
start = 6
spacing = 12
widths = [84, 244, 148]
levels = [
    ["@symbols", " ", "@enter"],
    ["@symbols", " ", "@enter"],
    ["@abc", " ", "@enter"],
    ["@abc", " ", "@enter"],
]
`

func TestParseTOML(t *testing.T) {
	l, err := layout.ParseTOML([]byte(miniLayout))
	require.NoError(t, err)
	require.Equal(t, 2, l.NumRows())

	row := l.Row(0)
	assert.Equal(t, int32(6), row.StartX)
	assert.Equal(t, int32(12), row.Spacing)
	assert.Equal(t, []int32{84, 52, 84}, row.Widths)

	assert.Equal(t, layout.KeyShift, l.Key(0, 0, 0).Kind)
	assert.Equal(t, layout.KeyBackspace, l.Key(0, 0, 2).Kind)
	assert.Equal(t, layout.KeySymbolsB, l.Key(2, 0, 0).Kind)
	assert.Equal(t, layout.KeySymbolsA, l.Key(3, 0, 0).Kind)
	assert.Equal(t, layout.KeySymbolsA, l.Key(0, 1, 0).Kind)
	assert.Equal(t, layout.KeyAbc, l.Key(2, 1, 0).Kind)

	// Literal keys pass through untouched.
	assert.Equal(t, layout.Key{Kind: layout.KeyLiteral, Text: "a"}, l.Key(0, 0, 1))
	assert.Equal(t, layout.Key{Kind: layout.KeyLiteral, Text: " "}, l.Key(0, 1, 1))
}

func TestParseTOMLCaptions(t *testing.T) {
	l, err := layout.ParseTOML([]byte(miniLayout))
	require.NoError(t, err)

	// Bare markers fall back to the built-in captions, ":caption" overrides.
	assert.Equal(t, layout.DefaultCaptions().Shift, l.Key(0, 0, 0).Text)
	assert.Equal(t, layout.DefaultCaptions().FirstPage, l.Key(2, 0, 0).Text)
	assert.Equal(t, "2/2", l.Key(3, 0, 0).Text)
}

func TestParseTOMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not toml", doc: `rows = "nope"`},
		{
			name: "missing levels",
			doc: `
[[rows]]
widths = [52]
levels = [["a"], ["A"]]
`,
		},
		{
			name: "unknown marker",
			doc: `
[[rows]]
widths = [52]
levels = [["@bogus"], ["a"], ["a"], ["a"]]
`,
		},
		{
			name: "table shorter than widths",
			doc: `
[[rows]]
widths = [52, 52]
levels = [["a"], ["a"], ["a"], ["a"]]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := layout.ParseTOML([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.toml")
	require.NoError(t, os.WriteFile(path, []byte(miniLayout), 0o644))

	l, err := layout.LoadTOML(path)
	require.NoError(t, err)
	assert.Equal(t, 2, l.NumRows())

	_, err = layout.LoadTOML(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
