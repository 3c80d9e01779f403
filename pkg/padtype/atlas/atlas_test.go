package atlas_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padtype/padtype/pkg/padtype/atlas"
)

// gradientGlyph builds a w x h alpha bitmap with a deterministic per-pixel
// pattern so mismatches point at an exact coordinate.
func gradientGlyph(w, h int) atlas.Glyph {
	g := atlas.Glyph{Width: w, Height: h, Alpha: make([]byte, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Alpha[y*w+x] = byte((x*31 + y*17) % 256)
		}
	}
	return g
}

func TestBuildDimensions(t *testing.T) {
	glyphs := [][]atlas.Glyph{
		{gradientGlyph(10, 12), gradientGlyph(7, 12)},
		{gradientGlyph(5, 12)},
	}
	a, err := atlas.Build(glyphs, 12)
	require.NoError(t, err)

	// Widest row is 17 px, two rows of 12 px; both round up to whole cells.
	assert.Equal(t, 24, a.Width)
	assert.Equal(t, 24, a.Height)
	assert.Equal(t, uint8(12), a.KeyHeight)
	assert.Equal(t, uint8(10), a.KeyWidths[0][0])
	assert.Equal(t, uint8(7), a.KeyWidths[0][1])
	assert.Equal(t, uint8(5), a.KeyWidths[1][0])
	assert.Equal(t, uint8(0), a.KeyWidths[1][1])
	assert.Len(t, a.Texels, 24*24/2)
}

func TestBuildSamples(t *testing.T) {
	g0 := gradientGlyph(10, 12)
	g1 := gradientGlyph(7, 12)
	a, err := atlas.Build([][]atlas.Glyph{{g0, g1}}, 12)
	require.NoError(t, err)

	// Intensities are the top 4 bits of the source alpha.
	for y := 0; y < 12; y++ {
		for x := 0; x < 10; x++ {
			assert.Equal(t, g0.Alpha[y*10+x]>>4, a.Sample(x, y), "g0 (%d,%d)", x, y)
		}
		for x := 0; x < 7; x++ {
			assert.Equal(t, g1.Alpha[y*7+x]>>4, a.Sample(10+x, y), "g1 (%d,%d)", x, y)
		}
	}
}

func TestBuildClipsTallGlyphs(t *testing.T) {
	tall := gradientGlyph(8, 20)
	a, err := atlas.Build([][]atlas.Glyph{{tall}, {gradientGlyph(8, 8)}}, 8)
	require.NoError(t, err)

	// Row 1 starts at y=8; the clipped overhang of the tall glyph must not
	// overwrite it.
	second := gradientGlyph(8, 8)
	for x := 0; x < 8; x++ {
		assert.Equal(t, second.Alpha[x]>>4, a.Sample(x, 8), "x=%d", x)
	}
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name   string
		glyphs [][]atlas.Glyph
		height int
	}{
		{name: "zero height", glyphs: [][]atlas.Glyph{{gradientGlyph(4, 4)}}, height: 0},
		{name: "height over 255", glyphs: [][]atlas.Glyph{{gradientGlyph(4, 4)}}, height: 256},
		{name: "too many rows", glyphs: make([][]atlas.Glyph, 6), height: 8},
		{
			name:   "too many columns",
			glyphs: [][]atlas.Glyph{make([]atlas.Glyph, 11)},
			height: 8,
		},
		{
			name:   "glyph too wide",
			glyphs: [][]atlas.Glyph{{gradientGlyph(256, 4)}},
			height: 8,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := atlas.Build(tt.glyphs, tt.height)
			assert.Error(t, err)
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	glyphs := [][]atlas.Glyph{
		{gradientGlyph(10, 14), gradientGlyph(9, 14), gradientGlyph(12, 14)},
		{gradientGlyph(21, 14)},
		{},
		{gradientGlyph(3, 14), gradientGlyph(3, 14)},
	}
	built, err := atlas.Build(glyphs, 14)
	require.NoError(t, err)

	data, err := atlas.Encode(glyphs, 14)
	require.NoError(t, err)

	decoded, err := atlas.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, built, decoded)
}

func TestEncodeHeaderLayout(t *testing.T) {
	data, err := atlas.Encode([][]atlas.Glyph{{gradientGlyph(10, 9)}}, 9)
	require.NoError(t, err)

	assert.Equal(t, uint16(atlas.FormatVersion), binary.BigEndian.Uint16(data[0:2]))
	assert.Equal(t, uint16(16), binary.BigEndian.Uint16(data[2:4]))
	assert.Equal(t, uint16(16), binary.BigEndian.Uint16(data[4:6]))
	// Width table starts right after the dimensions, glyph height follows it.
	assert.Equal(t, byte(10), data[6])
	assert.Equal(t, byte(9), data[6+50])
	assert.Len(t, data, 6+50+1+16*16/2)
}

func TestDecodeErrors(t *testing.T) {
	data, err := atlas.Encode([][]atlas.Glyph{{gradientGlyph(6, 6)}}, 6)
	require.NoError(t, err)

	t.Run("version mismatch", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		binary.BigEndian.PutUint16(bad[0:2], 2)
		_, err := atlas.Decode(bad)
		assert.ErrorIs(t, err, atlas.ErrVersionMismatch)
	})

	t.Run("short header", func(t *testing.T) {
		_, err := atlas.Decode(data[:10])
		assert.ErrorIs(t, err, atlas.ErrTruncated)
	})

	t.Run("short payload", func(t *testing.T) {
		_, err := atlas.Decode(data[:len(data)-1])
		assert.ErrorIs(t, err, atlas.ErrTruncated)
	})

	t.Run("unaligned dimensions", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		binary.BigEndian.PutUint16(bad[2:4], 12)
		_, err := atlas.Decode(bad)
		assert.Error(t, err)
	})
}

func TestGlyphRect(t *testing.T) {
	glyphs := [][]atlas.Glyph{
		{gradientGlyph(10, 8), gradientGlyph(7, 8), gradientGlyph(5, 8)},
		{gradientGlyph(9, 8)},
	}
	a, err := atlas.Build(glyphs, 8)
	require.NoError(t, err)

	x, y, w, h := a.GlyphRect(0, 0)
	assert.Equal(t, []int{0, 0, 10, 8}, []int{x, y, w, h})

	x, y, w, h = a.GlyphRect(0, 2)
	assert.Equal(t, []int{17, 0, 5, 8}, []int{x, y, w, h})

	x, y, w, h = a.GlyphRect(1, 0)
	assert.Equal(t, []int{0, 8, 9, 8}, []int{x, y, w, h})
}

func TestNibblePacking(t *testing.T) {
	// One glyph wide enough to cross a cell boundary: pixel x and x+1 share
	// a byte with the even pixel in the high nibble.
	g := atlas.Glyph{Width: 10, Height: 1, Alpha: make([]byte, 10)}
	for x := range g.Alpha {
		g.Alpha[x] = byte(x) << 4
	}
	a, err := atlas.Build([][]atlas.Glyph{{g}}, 1)
	require.NoError(t, err)

	assert.Equal(t, byte(0x01), a.Texels[0])
	assert.Equal(t, byte(0x23), a.Texels[1])
	// Pixels 8 and 9 land in the second 8x8 cell.
	assert.Equal(t, byte(0x89), a.Texels[32])
	for x := 0; x < 10; x++ {
		assert.Equal(t, byte(x), a.Sample(x, 0), "x=%d", x)
	}
}
