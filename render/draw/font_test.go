package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidae/plume/render/core"
)

type stubFontProvider struct {
	w, h  int
	ids   []core.TextureID
	built int
}

func (p *stubFontProvider) BuildAtlas() ([]byte, int, int) {
	p.built++
	return make([]byte, 4*p.w*p.h), p.w, p.h
}

func (p *stubFontProvider) SetFontTexture(id core.TextureID) {
	p.ids = append(p.ids, id)
}

func TestReloadFontTexture(t *testing.T) {
	r, _ := newTestRenderer(t)
	p := &stubFontProvider{w: 64, h: 64}

	require.NoError(t, r.ReloadFontTexture(p))
	require.Len(t, p.ids, 1)
	assert.NotZero(t, p.ids[0])
	assert.Equal(t, p.ids[0], r.FontTexture())

	got, ok := r.Texture(p.ids[0])
	require.True(t, ok)
	assert.Equal(t, 64, got.Width())
}

func TestReloadFontTextureTwice(t *testing.T) {
	r, b := newTestRenderer(t)
	p := &stubFontProvider{w: 64, h: 64}

	require.NoError(t, r.ReloadFontTexture(p))
	require.NoError(t, r.ReloadFontTexture(p))
	require.Len(t, p.ids, 2)
	assert.NotEqual(t, p.ids[0], p.ids[1], "reload must issue a fresh id")

	_, ok := r.Texture(p.ids[0])
	assert.False(t, ok, "old atlas id must be evicted")
	_, ok = r.Texture(p.ids[1])
	assert.True(t, ok)

	require.Len(t, b.textures, 2)
	assert.True(t, b.textures[0].released, "old atlas texture must be released")
	assert.False(t, b.textures[1].released)
}

func TestReloadFontTextureFailure(t *testing.T) {
	r, b := newTestRenderer(t)
	p := &stubFontProvider{w: 64, h: 64}

	require.NoError(t, r.ReloadFontTexture(p))
	old := p.ids[0]

	b.failTexture = true
	err := r.ReloadFontTexture(p)
	require.Error(t, err)

	// the old atlas is already evicted; the renderer has no font texture
	assert.Zero(t, r.FontTexture())
	_, ok := r.Texture(old)
	assert.False(t, ok)
	require.Len(t, p.ids, 1, "provider keeps its stale id until the next success")
}
