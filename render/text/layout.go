package text

import "github.com/corvidae/plume/render/core"

// AppendText emits one quad per glyph into dl, top-left origin at (x,y).
// Positive Y goes down, matching the display coordinate system.
func (a *Atlas) AppendText(dl *core.DrawList, s string, x, y float32, color uint32) {
	penX := x
	baseY := y + a.Ascent
	var prev rune = -1

	for _, r := range s {
		if r == '\n' {
			penX = x
			baseY += a.LineHeight()
			prev = -1
			continue
		}

		g, ok := a.Glyphs[r]
		if !ok {
			if sp, ok2 := a.Glyphs[' ']; ok2 {
				penX += sp.Advance
			}
			prev = r
			continue
		}

		if prev >= 0 && a.face != nil {
			penX += float32(a.face.Kern(prev, r)) / 64.0
		}

		if g.W > 0 && g.H > 0 {
			left := penX + g.BearingX
			top := baseY - g.BearingY
			dl.AddQuad(left, top, left+float32(g.W), top+float32(g.H),
				g.U0, g.V0, g.U1, g.V1, color, a.tex)
		}

		penX += g.Advance
		prev = r
	}
}

// MeasureText returns the pixel bounds of s at the atlas's native size.
func (a *Atlas) MeasureText(s string) (width, height float32) {
	var lineW float32
	var prev rune = -1
	height = a.LineHeight()

	for _, r := range s {
		if r == '\n' {
			if lineW > width {
				width = lineW
			}
			lineW = 0
			height += a.LineHeight()
			prev = -1
			continue
		}

		g, ok := a.Glyphs[r]
		if !ok {
			if sp, ok2 := a.Glyphs[' ']; ok2 {
				lineW += sp.Advance
			}
			prev = r
			continue
		}

		if prev >= 0 && a.face != nil {
			lineW += float32(a.face.Kern(prev, r)) / 64.0
		}
		lineW += g.Advance
		prev = r
	}

	if lineW > width {
		width = lineW
	}
	return width, height
}
