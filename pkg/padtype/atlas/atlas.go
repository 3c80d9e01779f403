// Package atlas implements the glyph atlas file format: one packed 4-bit
// intensity bitmap per layout level, holding the pre-rendered glyphs of every
// key. The encoder runs in the offline builder; the decoder runs at keyboard
// open time. Both sides operate on the exact same byte layout, so an
// encode/decode round trip is lossless.
//
// All multi-byte header fields are big-endian. The texel payload is stored as
// fixed-size square cells (CellSize x CellSize pixels) so the consumer can
// address whole cells without stride arithmetic; within a cell two
// horizontally adjacent pixels share one byte, high nibble first.
package atlas

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/padtype/padtype/pkg/padtype/layout"
)

const (
	// FormatVersion is the only version Decode accepts.
	FormatVersion = 1
	// CellSize is the edge length of one texture cell in pixels.
	CellSize = 8

	widthTableSize = layout.NumRows * layout.MaxKeysPerRow
	headerSize     = 2 + 2 + 2 + widthTableSize + 1

	// One cell: 8x8 pixels at 4 bits each.
	cellBytes = CellSize * CellSize / 2
)

var (
	// ErrVersionMismatch reports a version field different from
	// FormatVersion.
	ErrVersionMismatch = errors.New("atlas: format version mismatch")
	// ErrTruncated reports that the input ends before the expected texel
	// payload size.
	ErrTruncated = errors.New("atlas: truncated payload")
)

// Atlas is a decoded (or freshly built) glyph atlas for one layout level.
type Atlas struct {
	// Width and Height are in pixels, both multiples of CellSize.
	Width  int
	Height int
	// KeyWidths holds the pixel width of each key glyph, row-major. Unused
	// slots are zero.
	KeyWidths [layout.NumRows][layout.MaxKeysPerRow]uint8
	// KeyHeight is the glyph height shared by every key.
	KeyHeight uint8
	// Texels is the packed 4-bit payload, Width*Height/2 bytes.
	Texels []byte
}

// Glyph is a rasterized key symbol handed to the encoder: an 8-bit alpha
// bitmap in row-major order.
type Glyph struct {
	Width  int
	Height int
	Alpha  []byte
}

// Build lays out the per-key glyph bitmaps into a single atlas. glyphs is
// indexed [row][col]; empty slots use a zero-width Glyph. Each row of glyphs
// starts at vertical offset row*glyphHeight; glyphs taller than glyphHeight
// are clipped so they cannot bleed into the next row.
func Build(glyphs [][]Glyph, glyphHeight int) (*Atlas, error) {
	if len(glyphs) > layout.NumRows {
		return nil, fmt.Errorf("atlas: %d glyph rows exceed the %d row limit", len(glyphs), layout.NumRows)
	}
	if glyphHeight <= 0 || glyphHeight > 255 {
		return nil, fmt.Errorf("atlas: glyph height %d outside 1..255", glyphHeight)
	}

	a := &Atlas{KeyHeight: uint8(glyphHeight)}
	maxWidth := 0
	for row, rowGlyphs := range glyphs {
		if len(rowGlyphs) > layout.MaxKeysPerRow {
			return nil, fmt.Errorf("atlas: row %d has %d glyphs, limit is %d", row, len(rowGlyphs), layout.MaxKeysPerRow)
		}
		rowWidth := 0
		for col, g := range rowGlyphs {
			if g.Width > 255 {
				return nil, fmt.Errorf("atlas: glyph (%d,%d) width %d exceeds 255", row, col, g.Width)
			}
			a.KeyWidths[row][col] = uint8(g.Width)
			rowWidth += g.Width
		}
		if rowWidth > maxWidth {
			maxWidth = rowWidth
		}
	}

	a.Width = roundToCells(maxWidth)
	a.Height = roundToCells(glyphHeight * len(glyphs))
	a.Texels = make([]byte, a.Width*a.Height/2)

	for row, rowGlyphs := range glyphs {
		x := 0
		for _, g := range rowGlyphs {
			a.blit(g, x, row*glyphHeight, glyphHeight)
			x += g.Width
		}
	}
	return a, nil
}

// Encode builds the atlas and serializes it in one step. This is the
// builder-side contract; Decode is its inverse.
func Encode(glyphs [][]Glyph, glyphHeight int) ([]byte, error) {
	a, err := Build(glyphs, glyphHeight)
	if err != nil {
		return nil, err
	}
	return a.MarshalBinary()
}

// MarshalBinary serializes the atlas in the on-disk format.
func (a *Atlas) MarshalBinary() ([]byte, error) {
	if a.Width%CellSize != 0 || a.Height%CellSize != 0 {
		return nil, fmt.Errorf("atlas: dimensions %dx%d not cell-aligned", a.Width, a.Height)
	}
	out := make([]byte, 0, headerSize+len(a.Texels))
	out = binary.BigEndian.AppendUint16(out, FormatVersion)
	out = binary.BigEndian.AppendUint16(out, uint16(a.Width))
	out = binary.BigEndian.AppendUint16(out, uint16(a.Height))
	for row := range a.KeyWidths {
		out = append(out, a.KeyWidths[row][:]...)
	}
	out = append(out, a.KeyHeight)
	return append(out, a.Texels...), nil
}

// Decode parses an atlas file. It fails with ErrVersionMismatch on an
// unsupported version and ErrTruncated when the input is shorter than the
// header plus the Width*Height/2 byte payload the header promises.
func Decode(data []byte) (*Atlas, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the %d byte header", ErrTruncated, len(data), headerSize)
	}
	version := binary.BigEndian.Uint16(data[0:2])
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, version, FormatVersion)
	}

	a := &Atlas{
		Width:  int(binary.BigEndian.Uint16(data[2:4])),
		Height: int(binary.BigEndian.Uint16(data[4:6])),
	}
	if a.Width%CellSize != 0 || a.Height%CellSize != 0 {
		return nil, fmt.Errorf("atlas: dimensions %dx%d not aligned to %d pixel cells", a.Width, a.Height, CellSize)
	}
	offset := 6
	for row := range a.KeyWidths {
		copy(a.KeyWidths[row][:], data[offset:offset+layout.MaxKeysPerRow])
		offset += layout.MaxKeysPerRow
	}
	a.KeyHeight = data[offset]
	offset++

	payload := a.Width * a.Height / 2
	if len(data)-offset < payload {
		return nil, fmt.Errorf("%w: read %d texel bytes, expected %d", ErrTruncated, len(data)-offset, payload)
	}
	a.Texels = make([]byte, payload)
	copy(a.Texels, data[offset:offset+payload])
	return a, nil
}

// GlyphRect returns the source rectangle of the glyph at (row, col) inside
// the atlas.
func (a *Atlas) GlyphRect(row, col int) (x, y, w, h int) {
	for c := 0; c < col; c++ {
		x += int(a.KeyWidths[row][c])
	}
	return x, row * int(a.KeyHeight), int(a.KeyWidths[row][col]), int(a.KeyHeight)
}

// Sample returns the 4-bit intensity (0..15) of the texel at (x, y).
func (a *Atlas) Sample(x, y int) uint8 {
	b := a.Texels[a.texelOffset(x, y)]
	if x%2 == 0 {
		return b >> 4
	}
	return b & 0x0f
}

// texelOffset maps a pixel coordinate to the byte holding its nibble.
func (a *Atlas) texelOffset(x, y int) int {
	cellsPerRow := a.Width / CellSize
	cell := (y/CellSize)*cellsPerRow + x/CellSize
	return cell*cellBytes + (y%CellSize)*(CellSize/2) + (x%CellSize)/2
}

// blit writes the glyph's alpha channel into the packed payload at the given
// atlas position, truncating each sample to its top 4 bits.
func (a *Atlas) blit(g Glyph, startX, startY, maxHeight int) {
	height := g.Height
	if height > maxHeight {
		height = maxHeight
	}
	for gy := 0; gy < height; gy++ {
		for gx := 0; gx < g.Width; gx++ {
			alpha := g.Alpha[gy*g.Width+gx]
			a.setSample(startX+gx, startY+gy, alpha>>4)
		}
	}
}

func (a *Atlas) setSample(x, y int, v uint8) {
	offset := a.texelOffset(x, y)
	if x%2 == 0 {
		a.Texels[offset] = a.Texels[offset]&0x0f | v<<4
	} else {
		a.Texels[offset] = a.Texels[offset]&0xf0 | v&0x0f
	}
}

func roundToCells(v int) int {
	return (v + CellSize - 1) / CellSize * CellSize
}
