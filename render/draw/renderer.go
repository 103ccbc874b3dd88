// Package draw translates immediate-mode GUI draw data into GPU commands
// through a core.Backend. Usage is frame-lockstep and single-threaded:
// Prepare uploads the frame's geometry and returns a FrameData, Execute
// replays it into an open render pass.
package draw

import (
	"log/slog"

	"github.com/corvidae/plume/render/core"
	"github.com/corvidae/plume/render/scratch"
)

type Renderer struct {
	backend core.Backend
	log     *slog.Logger

	textures map[core.TextureID]core.Texture
	nextID   core.TextureID

	vtx bufferSlot
	idx bufferSlot

	vtxStage *scratch.Buffer
	idxStage *scratch.Buffer

	lastPos  [2]float32
	lastSize [2]float32
	hasProj  bool

	fontTex core.TextureID

	stats Statistics
}

// New creates a renderer and its initial vertex/index buffers.
func New(backend core.Backend, cfg core.Config) (*Renderer, error) {
	cfg = cfg.Normalize()
	r := &Renderer{
		backend:  backend,
		log:      cfg.Logger,
		textures: make(map[core.TextureID]core.Texture),
		nextID:   1,
		vtx:      bufferSlot{kind: core.BufferVertex, label: "vertex"},
		idx:      bufferSlot{kind: core.BufferIndex, label: "index"},
		vtxStage: scratch.New(cfg.InitialVertexCount * core.VertexStride),
		idxStage: scratch.New(cfg.InitialIndexCount * core.IndexStride),
	}
	if err := r.vtx.ensure(backend, r.log, cfg.InitialVertexCount*core.VertexStride); err != nil {
		return nil, err
	}
	if err := r.idx.ensure(backend, r.log, cfg.InitialIndexCount*core.IndexStride); err != nil {
		r.vtx.release()
		return nil, err
	}
	return r, nil
}

// Stats returns the statistics of the most recent Execute.
func (r *Renderer) Stats() Statistics { return r.stats }

// Release frees the GPU buffers and every registered texture.
func (r *Renderer) Release() {
	r.vtx.release()
	r.idx.release()
	for id, t := range r.textures {
		t.Release()
		delete(r.textures, id)
	}
	r.fontTex = 0
}
