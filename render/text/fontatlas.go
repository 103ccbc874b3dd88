// Package text rasterizes a glyph atlas and emits text quads into draw
// lists. It implements the renderer's font provider, so the atlas texture
// can be rebuilt through the font-reload path at any time.
package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/corvidae/plume/render/core"
)

type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // distance from baseline to glyph top
	W, H     int     // glyph bitmap size
	U0, V0   float32 // UVs in atlas
	U1, V1   float32
}

// Atlas is a shelf-packed white-glyph RGBA atlas (alpha coverage). The
// top-left texel block is reserved opaque white so solid-color geometry can
// sample the same texture at (0,0).
type Atlas struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	W, H                     int

	pix  []byte
	tex  core.TextureID
	face font.Face
}

const (
	padding   = 2
	whiteSize = 4 // reserved white block at (0,0)
	firstRune = rune(32)
	lastRune  = rune(126)
)

// LoadTTF parses TTF/OTF data and rasterizes the printable ASCII range into
// an atlas, growing from 256 up to 4096 square until everything fits.
func LoadTTF(ttfData []byte, sizePx float32) (*Atlas, error) {
	ft, err := opentype.Parse(ttfData)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: new face: %w", err)
	}

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent

	type meas struct {
		r      rune
		w, h   int
		adv    float32
		bx, by float32
	}
	measure := make([]meas, 0, int(lastRune-firstRune)+1)
	for rr := firstRune; rr <= lastRune; rr++ {
		br, adv, ok := face.GlyphBounds(rr)
		if !ok {
			continue
		}
		measure = append(measure, meas{
			r: rr,
			w: (br.Max.X - br.Min.X).Round(),
			h: (br.Max.Y - br.Min.Y).Round(),
			adv: float32(adv.Round()),
			bx:  float32(br.Min.X.Round()),
			by:  float32(-br.Min.Y.Round()),
		})
	}

	// Shelf packer: rows left to right, growing the atlas until it fits.
	// The first shelf starts past the white block.
	atlasSize := 256
	var pos map[rune]image.Point
	for {
		x, y, rowH := whiteSize+padding, padding, 0
		fits := true
		pos = make(map[rune]image.Point, len(measure))

		for _, g := range measure {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if g.w+padding*2 > atlasSize || g.h+padding*2 > atlasSize {
				fits = false
				break
			}
			if x+g.w+padding > atlasSize {
				x = padding
				y += rowH + padding
				rowH = 0
			}
			if y+g.h+padding > atlasSize {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + padding
			if g.h > rowH {
				rowH = g.h
			}
		}

		if fits {
			break
		}
		atlasSize *= 2
		if atlasSize > 4096 {
			return nil, fmt.Errorf("text: font atlas too large (>%d)", 4096)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, atlasSize, atlasSize))
	draw.Draw(dst, image.Rect(0, 0, whiteSize, whiteSize),
		&image.Uniform{color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	glyphs := make(map[rune]Glyph, len(measure))
	for _, g := range measure {
		if g.w == 0 || g.h == 0 {
			glyphs[g.r] = Glyph{
				Rune: g.r, Advance: g.adv,
				BearingX: g.bx, BearingY: g.by,
				W: g.w, H: g.h,
			}
			continue
		}
		p := pos[g.r]

		// the drawer dot sits on the baseline; shift left by the bearing
		drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
		drawer.DrawString(string(g.r))

		glyphs[g.r] = Glyph{
			Rune: g.r, Advance: g.adv,
			BearingX: g.bx, BearingY: g.by,
			W: g.w, H: g.h,
			U0: float32(p.X) / float32(atlasSize),
			V0: float32(p.Y) / float32(atlasSize),
			U1: float32(p.X+g.w) / float32(atlasSize),
			V1: float32(p.Y+g.h) / float32(atlasSize),
		}
	}

	return &Atlas{
		SizePx: sizePx,
		Ascent: ascent, Descent: descent, LineGap: lineGap,
		Glyphs: glyphs,
		W:      atlasSize, H: atlasSize,
		pix:  dst.Pix,
		face: face,
	}, nil
}

// BuildAtlas returns the atlas pixels for upload.
func (a *Atlas) BuildAtlas() (pixels []byte, width, height int) {
	return a.pix, a.W, a.H
}

// SetFontTexture records the texture id the renderer registered the atlas
// under.
func (a *Atlas) SetFontTexture(id core.TextureID) { a.tex = id }

// TextureID returns the atlas texture id (zero before the first upload).
func (a *Atlas) TextureID() core.TextureID { return a.tex }

// LineHeight is the baseline-to-baseline distance.
func (a *Atlas) LineHeight() float32 { return a.Ascent - a.Descent + a.LineGap }

// Close releases the font face.
func (a *Atlas) Close() error {
	if a.face == nil {
		return nil
	}
	err := a.face.Close()
	a.face = nil
	return err
}
