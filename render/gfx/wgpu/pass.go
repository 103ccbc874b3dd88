package wgpubackend

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/corvidae/plume/render/core"
)

// Pass wraps an open render pass encoder as a core.RenderPass. The caller
// owns the encoder; the wrapper only records draw state into it.
func (b *Backend) Pass(rp *wgpu.RenderPassEncoder) core.RenderPass {
	return &pass{backend: b, rp: rp}
}

type pass struct {
	backend *Backend
	rp      *wgpu.RenderPassEncoder
}

func (p *pass) BindPipeline() {
	p.rp.SetPipeline(p.backend.pipeline)
	p.rp.SetBindGroup(0, p.backend.uniformGroup, nil)
}

func (p *pass) BindBuffers(vtx, idx core.Buffer) {
	p.rp.SetVertexBuffer(0, vtx.(*buffer).buf, 0, wgpu.WholeSize)
	p.rp.SetIndexBuffer(idx.(*buffer).buf, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
}

func (p *pass) SetScissor(x, y, w, h int) {
	p.rp.SetScissorRect(uint32(x), uint32(y), uint32(w), uint32(h))
}

func (p *pass) BindTexture(t core.Texture) {
	p.rp.SetBindGroup(1, t.(*Texture).group, nil)
}

func (p *pass) DrawIndexed(count, firstIndex, baseVertex int) {
	p.rp.DrawIndexed(uint32(count), 1, uint32(firstIndex), int32(baseVertex), 0)
}
