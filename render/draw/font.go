package draw

import (
	"fmt"

	"github.com/corvidae/plume/render/core"
)

// FontProvider rasterizes the glyph atlas and learns which texture id the
// renderer assigned to it.
type FontProvider interface {
	// BuildAtlas returns tightly packed RGBA pixels.
	BuildAtlas() (pixels []byte, width, height int)
	// SetFontTexture is called after a successful upload.
	SetFontTexture(id core.TextureID)
}

// ReloadFontTexture rebuilds the font atlas texture: the previous atlas (if
// any) is evicted, the provider's pixels are uploaded and registered under a
// fresh id, and the provider is told the new id. Safe to call repeatedly;
// after any number of reloads exactly one atlas texture is live.
func (r *Renderer) ReloadFontTexture(p FontProvider) error {
	if r.fontTex != 0 {
		r.RemoveTexture(r.fontTex)
		r.fontTex = 0
	}
	pixels, w, h := p.BuildAtlas()
	tex, err := r.backend.CreateTexture(core.TextureDesc{
		Label:  "font atlas",
		Width:  w,
		Height: h,
		Pixels: pixels,
		Filter: core.FilterLinear,
	})
	if err != nil {
		return fmt.Errorf("draw: font atlas upload: %w", err)
	}
	r.fontTex = r.RegisterTexture(tex)
	p.SetFontTexture(r.fontTex)
	r.log.Debug("font atlas reloaded", "id", uint64(r.fontTex), "width", w, "height", h)
	return nil
}

// FontTexture returns the id of the current font atlas, or zero before the
// first reload.
func (r *Renderer) FontTexture() core.TextureID { return r.fontTex }
