package draw

import (
	"errors"
	"fmt"

	"github.com/corvidae/plume/render/core"
)

// Recording fakes so tests can assert on the exact command stream.

type fakeBuffer struct {
	kind     core.BufferKind
	size     int
	data     []byte
	writes   int
	released bool
}

func (b *fakeBuffer) Write(offset int, data []byte) error {
	if b.released {
		return errors.New("fake: write to released buffer")
	}
	if offset+len(data) > b.size {
		return fmt.Errorf("fake: write %d+%d exceeds buffer size %d", offset, len(data), b.size)
	}
	copy(b.data[offset:], data)
	b.writes++
	return nil
}

func (b *fakeBuffer) Cap() int { return b.size }
func (b *fakeBuffer) Release() { b.released = true }

type fakeTexture struct {
	w, h     int
	released bool
}

func (t *fakeTexture) Width() int  { return t.w }
func (t *fakeTexture) Height() int { return t.h }
func (t *fakeTexture) Release()    { t.released = true }

type fakeBackend struct {
	buffers     []*fakeBuffer
	textures    []*fakeTexture
	projections [][16]float32
	failTexture bool
}

func (f *fakeBackend) CreateBuffer(kind core.BufferKind, size int) (core.Buffer, error) {
	b := &fakeBuffer{kind: kind, size: size, data: make([]byte, size)}
	f.buffers = append(f.buffers, b)
	return b, nil
}

func (f *fakeBackend) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if f.failTexture {
		return nil, errors.New("fake: texture creation failed")
	}
	t := &fakeTexture{w: desc.Width, h: desc.Height}
	f.textures = append(f.textures, t)
	return t, nil
}

func (f *fakeBackend) SetProjection(m [16]float32) {
	f.projections = append(f.projections, m)
}

// liveBuffers returns the fake buffers not yet released.
func (f *fakeBackend) liveBuffers() []*fakeBuffer {
	var out []*fakeBuffer
	for _, b := range f.buffers {
		if !b.released {
			out = append(out, b)
		}
	}
	return out
}

type passOp struct {
	kind               string // pipeline, buffers, scissor, texture, draw
	x, y, w, h         int
	count, first, base int
	tex                core.Texture
	vtxBuf, idxBuf     core.Buffer
}

type fakePass struct {
	ops []passOp
}

func (p *fakePass) BindPipeline() {
	p.ops = append(p.ops, passOp{kind: "pipeline"})
}

func (p *fakePass) BindBuffers(vtx, idx core.Buffer) {
	p.ops = append(p.ops, passOp{kind: "buffers", vtxBuf: vtx, idxBuf: idx})
}

func (p *fakePass) SetScissor(x, y, w, h int) {
	p.ops = append(p.ops, passOp{kind: "scissor", x: x, y: y, w: w, h: h})
}

func (p *fakePass) BindTexture(t core.Texture) {
	p.ops = append(p.ops, passOp{kind: "texture", tex: t})
}

func (p *fakePass) DrawIndexed(count, firstIndex, baseVertex int) {
	p.ops = append(p.ops, passOp{kind: "draw", count: count, first: firstIndex, base: baseVertex})
}

func (p *fakePass) byKind(kind string) []passOp {
	var out []passOp
	for _, op := range p.ops {
		if op.kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// quadList builds a single-quad list covering (0,0)-(w,h) with the given
// clip rect and texture.
func quadList(w, h float32, clip [4]float32, tex core.TextureID) *core.DrawList {
	dl := &core.DrawList{}
	dl.SetClip(clip[0], clip[1], clip[2], clip[3])
	dl.AddQuad(0, 0, w, h, 0, 0, 1, 1, core.White, tex)
	return dl
}

// frame wraps lists into draw data for a w x h display at scale 1.
func frame(w, h float32, lists ...*core.DrawList) *core.DrawData {
	dd := &core.DrawData{
		DisplaySize:      [2]float32{w, h},
		FramebufferScale: [2]float32{1, 1},
	}
	for _, dl := range lists {
		dd.AddList(dl)
	}
	return dd
}
