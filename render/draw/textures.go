package draw

import (
	"fmt"

	"github.com/corvidae/plume/render/core"
)

// BadTextureError reports a texture id with no live registry entry. A draw
// command carrying such an id aborts the frame: a stale id means a lifecycle
// bug, and failing at the first observable point keeps it debuggable.
type BadTextureError struct {
	ID core.TextureID
}

func (e *BadTextureError) Error() string {
	return fmt.Sprintf("draw: bad texture id %d", e.ID)
}

// RegisterTexture adds a texture to the registry and returns a fresh id.
// Ids are never recycled, so a dangling id can never silently resolve to an
// unrelated texture.
func (r *Renderer) RegisterTexture(t core.Texture) core.TextureID {
	id := r.nextID
	r.nextID++
	r.textures[id] = t
	return id
}

// CreateTexture uploads RGBA pixels through the backend and registers the
// resulting texture.
func (r *Renderer) CreateTexture(desc core.TextureDesc) (core.TextureID, error) {
	t, err := r.backend.CreateTexture(desc)
	if err != nil {
		return 0, fmt.Errorf("draw: create texture: %w", err)
	}
	return r.RegisterTexture(t), nil
}

// ReplaceTexture swaps the texture behind an existing id, releasing the old
// one. The id stays valid for every holder.
func (r *Renderer) ReplaceTexture(id core.TextureID, t core.Texture) error {
	old, ok := r.textures[id]
	if !ok {
		return &BadTextureError{ID: id}
	}
	old.Release()
	r.textures[id] = t
	return nil
}

// RemoveTexture releases and unregisters a texture. Removing an unknown id
// is a no-op.
func (r *Renderer) RemoveTexture(id core.TextureID) {
	if t, ok := r.textures[id]; ok {
		t.Release()
		delete(r.textures, id)
	}
}

// Texture looks up a registered texture without side effects.
func (r *Renderer) Texture(id core.TextureID) (core.Texture, bool) {
	t, ok := r.textures[id]
	return t, ok
}
