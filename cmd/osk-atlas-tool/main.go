// Command osk-atlas-tool rasterizes a keyboard layout's key symbols with a
// TTF font and packs them into the binary glyph atlas files the on-screen
// keyboard loads at runtime, one osk<level>.tex file per layout level.
package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/padtype/padtype/pkg/padtype"
	"github.com/padtype/padtype/pkg/padtype/atlas"
	"github.com/padtype/padtype/pkg/padtype/i18n"
	"github.com/padtype/padtype/pkg/padtype/layout"
)

type cli struct {
	FontFile string `arg:"" type:"existingfile" help:"TTF font to rasterize the key symbols with"`
	FontSize int    `arg:"" help:"Font point size"`

	OutDir   string `help:"Directory to write the atlas files into" default:"."`
	Layout   string `help:"Layout TOML file (defaults to the built-in layout)" type:"existingfile"`
	Lang     string `help:"Language code for the special-key captions" default:"en"`
	Preview  bool   `help:"Also write an osk<level>.png preview per level"`
	LogLevel string `help:"Log level" enum:"debug,info,warn,error" default:"warn"`
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("osk-atlas-tool"),
		kong.Description("Build on-screen keyboard glyph atlases from a TTF font."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

func (c *cli) Run() error {
	padtype.SetLogLevel(c.LogLevel)
	log := padtype.Logger()

	if err := i18n.SetWithCode(c.Lang); err != nil {
		return fmt.Errorf("unknown language %q: %w", c.Lang, err)
	}

	lay, err := c.loadLayout()
	if err != nil {
		return err
	}

	if err := ttf.Init(); err != nil {
		return fmt.Errorf("init SDL_ttf: %w", err)
	}
	defer ttf.Quit()

	font, err := ttf.OpenFont(c.FontFile, c.FontSize)
	if err != nil {
		return fmt.Errorf("open font %s: %w", c.FontFile, err)
	}
	defer font.Close()

	glyphHeight, err := measureGlyphHeight(font)
	if err != nil {
		return err
	}
	log.Debug("measured glyph height", "height", glyphHeight)

	if err := os.MkdirAll(c.OutDir, 0o755); err != nil {
		return err
	}

	for level := 0; level < layout.NumLevels; level++ {
		glyphs, err := rasterizeLevel(font, lay, level)
		if err != nil {
			return fmt.Errorf("level %d: %w", level, err)
		}
		data, err := atlas.Encode(glyphs, glyphHeight)
		if err != nil {
			return fmt.Errorf("level %d: %w", level, err)
		}
		path := filepath.Join(c.OutDir, fmt.Sprintf("osk%d.tex", level))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		log.Info("wrote atlas", "path", path, "bytes", len(data))

		if c.Preview {
			if err := writePreview(c.OutDir, level, data); err != nil {
				return fmt.Errorf("level %d preview: %w", level, err)
			}
		}
	}
	return nil
}

func (c *cli) loadLayout() (*layout.Layout, error) {
	if c.Layout != "" {
		return layout.LoadTOML(c.Layout)
	}
	return layout.DefaultWith(i18n.Captions()), nil
}

// measureGlyphHeight renders a tall reference glyph; every key row in the
// atlas is allotted exactly this many pixels.
func measureGlyphHeight(font *ttf.Font) (int, error) {
	surface, err := font.RenderUTF8Blended("|", sdl.Color{R: 255, G: 255, B: 255, A: 255})
	if err != nil {
		return 0, fmt.Errorf("measure glyph height: %w", err)
	}
	defer surface.Free()
	return int(surface.H), nil
}

func rasterizeLevel(font *ttf.Font, lay *layout.Layout, level int) ([][]atlas.Glyph, error) {
	glyphs := make([][]atlas.Glyph, lay.NumRows())
	for r := 0; r < lay.NumRows(); r++ {
		row := lay.Row(r)
		glyphs[r] = make([]atlas.Glyph, row.NumKeys())
		for col := 0; col < row.NumKeys(); col++ {
			text := row.Levels[level][col].Text
			if text == "" {
				continue
			}
			g, err := rasterizeText(font, text)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", text, err)
			}
			glyphs[r][col] = g
		}
	}
	return glyphs, nil
}

// rasterizeText renders one key symbol and extracts its alpha channel.
func rasterizeText(font *ttf.Font, text string) (atlas.Glyph, error) {
	surface, err := font.RenderUTF8Blended(text, sdl.Color{R: 255, G: 255, B: 255, A: 255})
	if err != nil {
		return atlas.Glyph{}, err
	}
	defer surface.Free()

	var alphaOffset int
	switch surface.Format.Format {
	case sdl.PIXELFORMAT_ARGB32:
		alphaOffset = 0
	case sdl.PIXELFORMAT_BGRA32:
		alphaOffset = 3
	default:
		return atlas.Glyph{}, fmt.Errorf("unsupported surface pixel format 0x%x", surface.Format.Format)
	}

	w, h := int(surface.W), int(surface.H)
	pitch := int(surface.Pitch)
	pixels := surface.Pixels()

	g := atlas.Glyph{Width: w, Height: h, Alpha: make([]byte, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Alpha[y*w+x] = pixels[y*pitch+x*4+alphaOffset]
		}
	}
	return g, nil
}

// writePreview decodes the atlas back and dumps it as a grayscale PNG so the
// packing can be eyeballed.
func writePreview(dir string, level int, data []byte) error {
	a, err := atlas.Decode(data)
	if err != nil {
		return err
	}
	img := image.NewGray(image.Rect(0, 0, a.Width, a.Height))
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			img.Pix[y*img.Stride+x] = a.Sample(x, y) * 17
		}
	}
	f, err := os.Create(filepath.Join(dir, fmt.Sprintf("osk%d.png", level)))
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
