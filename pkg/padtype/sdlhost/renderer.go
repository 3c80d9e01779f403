package sdlhost

import (
	"log/slog"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/padtype/padtype/pkg/padtype"
	"github.com/padtype/padtype/pkg/padtype/atlas"
	"github.com/padtype/padtype/pkg/padtype/internal"
	"github.com/padtype/padtype/pkg/padtype/layout"
)

type levelTexture struct {
	source  *atlas.Atlas
	texture *sdl.Texture
}

// Renderer draws keyboard frames with an sdl.Renderer. Decoded atlases are
// uploaded lazily, one texture per layout level, and re-uploaded when the
// keyboard supplies a different atlas for that level.
type Renderer struct {
	renderer *sdl.Renderer
	log      *slog.Logger
	levels   [layout.NumLevels]levelTexture
}

// NewRenderer wraps an SDL renderer for keyboard drawing.
func NewRenderer(renderer *sdl.Renderer) *Renderer {
	return &Renderer{renderer: renderer, log: internal.GetLogger()}
}

// Destroy releases the cached atlas textures.
func (r *Renderer) Destroy() {
	for i := range r.levels {
		if r.levels[i].texture != nil {
			_ = r.levels[i].texture.Destroy()
			r.levels[i] = levelTexture{}
		}
	}
}

// FillRect implements padtype.Renderer.
func (r *Renderer) FillRect(rect padtype.Rect, color padtype.Color) {
	_ = r.renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	_ = r.renderer.SetDrawColor(color.R, color.G, color.B, color.A)
	_ = r.renderer.FillRect(&sdl.Rect{X: rect.X, Y: rect.Y, W: rect.W, H: rect.H})
}

// DrawGlyph implements padtype.Renderer.
func (r *Renderer) DrawGlyph(a *atlas.Atlas, level int, src, dst padtype.Rect, tint padtype.Color) {
	texture := r.textureFor(a, level)
	if texture == nil {
		return
	}
	_ = texture.SetColorMod(tint.R, tint.G, tint.B)
	_ = texture.SetAlphaMod(tint.A)
	_ = r.renderer.Copy(texture,
		&sdl.Rect{X: src.X, Y: src.Y, W: src.W, H: src.H},
		&sdl.Rect{X: dst.X, Y: dst.Y, W: dst.W, H: dst.H})
}

// SetClip implements padtype.Renderer.
func (r *Renderer) SetClip(rect *padtype.Rect) {
	if rect == nil {
		_ = r.renderer.SetClipRect(nil)
		return
	}
	_ = r.renderer.SetClipRect(&sdl.Rect{X: rect.X, Y: rect.Y, W: rect.W, H: rect.H})
}

func (r *Renderer) textureFor(a *atlas.Atlas, level int) *sdl.Texture {
	if level < 0 || level >= layout.NumLevels {
		return nil
	}
	cached := &r.levels[level]
	if cached.source == a && cached.texture != nil {
		return cached.texture
	}
	if cached.texture != nil {
		_ = cached.texture.Destroy()
		*cached = levelTexture{}
	}
	texture, err := r.uploadAtlas(a)
	if err != nil {
		r.log.Error("failed to upload glyph atlas", "level", level, "error", err)
		return nil
	}
	*cached = levelTexture{source: a, texture: texture}
	return texture
}

// uploadAtlas expands the packed 4-bit intensities into a white RGBA surface
// whose alpha channel carries the intensity, then uploads it as a texture.
func (r *Renderer) uploadAtlas(a *atlas.Atlas) (*sdl.Texture, error) {
	surface, err := sdl.CreateRGBSurfaceWithFormat(0, int32(a.Width), int32(a.Height), 32, sdl.PIXELFORMAT_RGBA32)
	if err != nil {
		return nil, err
	}
	defer surface.Free()

	pixels := surface.Pixels()
	pitch := int(surface.Pitch)
	for y := 0; y < int(a.Height); y++ {
		row := pixels[y*pitch:]
		for x := 0; x < int(a.Width); x++ {
			// Scale the 0..15 intensity back to 0..255.
			alpha := a.Sample(x, y) * 17
			off := x * 4
			row[off+0] = 0xff
			row[off+1] = 0xff
			row[off+2] = 0xff
			row[off+3] = alpha
		}
	}

	texture, err := r.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, err
	}
	_ = texture.SetBlendMode(sdl.BLENDMODE_BLEND)
	return texture, nil
}
