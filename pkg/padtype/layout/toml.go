package layout

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Functional keys are spelled in TOML tables as "@name" markers, optionally
// followed by ":caption" to override the rendered caption, e.g. "@shift:⇧".
var kindsByMarker = map[string]KeyKind{
	"backspace": KeyBackspace,
	"enter":     KeyEnter,
	"shift":     KeyShift,
	"symbols":   KeySymbolsA,
	"first":     KeySymbolsB,
	"second":    KeySymbolsA,
	"abc":       KeyAbc,
}

type tomlRow struct {
	Start   int32      `toml:"start"`
	Spacing int32      `toml:"spacing"`
	Widths  []int32    `toml:"widths"`
	Levels  [][]string `toml:"levels"`
}

type tomlLayout struct {
	Rows []tomlRow `toml:"rows"`
}

// LoadTOML reads a custom layout table from path.
func LoadTOML(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return ParseTOML(data)
}

// ParseTOML decodes a layout table from TOML. Each [[rows]] entry carries the
// row geometry and exactly four symbol tables (one per level); functional
// keys use "@marker" spellings.
func ParseTOML(data []byte) (*Layout, error) {
	var doc tomlLayout
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	captions := DefaultCaptions()
	rows := make([]*Row, 0, len(doc.Rows))
	for i, tr := range doc.Rows {
		if len(tr.Levels) != NumLevels {
			return nil, fmt.Errorf("layout: row %d has %d symbol tables, want %d", i, len(tr.Levels), NumLevels)
		}
		row := &Row{StartX: tr.Start, Spacing: tr.Spacing, Widths: tr.Widths}
		for lvl, table := range tr.Levels {
			keys := make([]Key, len(table))
			for c, spelling := range table {
				key, err := parseKeySpelling(spelling, captions)
				if err != nil {
					return nil, fmt.Errorf("layout: row %d level %d col %d: %w", i, lvl, c, err)
				}
				keys[c] = key
			}
			row.Levels[lvl] = keys
		}
		rows = append(rows, row)
	}
	return New(rows)
}

func parseKeySpelling(s string, captions Captions) (Key, error) {
	if !strings.HasPrefix(s, "@") {
		return Literal(s), nil
	}
	marker, caption, hasCaption := strings.Cut(s[1:], ":")
	kind, ok := kindsByMarker[marker]
	if !ok {
		return Key{}, fmt.Errorf("unknown functional key %q", s)
	}
	if !hasCaption {
		caption = defaultCaption(marker, captions)
	}
	return Key{Kind: kind, Text: caption}, nil
}

func defaultCaption(marker string, c Captions) string {
	switch marker {
	case "backspace":
		return c.Backspace
	case "enter":
		return c.Enter
	case "shift":
		return c.Shift
	case "symbols":
		return c.Symbols
	case "first":
		return c.FirstPage
	case "second":
		return c.SecondPage
	case "abc":
		return c.Abc
	}
	return ""
}
