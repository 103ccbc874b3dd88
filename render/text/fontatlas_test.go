package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/corvidae/plume/render/core"
)

func loadTestAtlas(t *testing.T) *Atlas {
	t.Helper()
	a, err := LoadTTF(goregular.TTF, 16)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestLoadTTF(t *testing.T) {
	a := loadTestAtlas(t)

	pix, w, h := a.BuildAtlas()
	require.Equal(t, 4*w*h, len(pix))
	assert.Equal(t, w, h, "atlas is square")

	// reserved white block at (0,0)
	assert.Equal(t, []byte{255, 255, 255, 255}, pix[:4])

	g, ok := a.Glyphs['A']
	require.True(t, ok)
	assert.Greater(t, g.W, 0)
	assert.Greater(t, g.Advance, float32(0))
	assert.Less(t, g.U0, g.U1)
	assert.Less(t, g.V0, g.V1)
	assert.LessOrEqual(t, g.U1, float32(1))

	// glyphs must not land inside the white block
	assert.GreaterOrEqual(t, int(g.U0*float32(w)), whiteSize)

	assert.Greater(t, a.Ascent, float32(0))
	assert.Greater(t, a.LineHeight(), float32(0))
}

func TestAtlasGlyphCoverage(t *testing.T) {
	a := loadTestAtlas(t)
	for r := firstRune; r <= lastRune; r++ {
		_, ok := a.Glyphs[r]
		assert.True(t, ok, "missing glyph %q", r)
	}
}

func TestAppendText(t *testing.T) {
	a := loadTestAtlas(t)
	a.SetFontTexture(7)

	dl := &core.DrawList{}
	dl.SetClip(0, 0, 1000, 1000)
	a.AppendText(dl, "Hi", 10, 10, core.White)

	assert.Len(t, dl.Vtx, 8, "one quad per glyph")
	require.Len(t, dl.Cmds, 1, "same texture and clip must merge")
	assert.Equal(t, core.TextureID(7), dl.Cmds[0].TextureID)
	assert.Equal(t, 12, dl.Cmds[0].ElemCount)
}

func TestAppendTextNewline(t *testing.T) {
	a := loadTestAtlas(t)
	a.SetFontTexture(7)

	one := &core.DrawList{}
	a.AppendText(one, "H", 0, 0, core.White)
	two := &core.DrawList{}
	a.AppendText(two, "H\nH", 0, 0, core.White)

	require.Len(t, one.Vtx, 4)
	require.Len(t, two.Vtx, 8)
	assert.InDelta(t, a.LineHeight(), two.Vtx[4].Y-two.Vtx[0].Y, 0.001,
		"second line starts one line height down")
	assert.Equal(t, two.Vtx[0].X, two.Vtx[4].X, "newline returns to the left margin")
}

func TestMeasureText(t *testing.T) {
	a := loadTestAtlas(t)

	w1, h1 := a.MeasureText("H")
	w2, h2 := a.MeasureText("HH")
	assert.Greater(t, w2, w1)
	assert.Equal(t, h1, h2)

	_, h3 := a.MeasureText("H\nH")
	assert.InDelta(t, 2*a.LineHeight(), h3, 0.001)
}
