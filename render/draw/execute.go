package draw

import (
	"github.com/chewxy/math32"

	"github.com/corvidae/plume/render/core"
)

// Execute replays the frame into an open render pass. dd must be the same
// draw data fd was prepared from. On a BadTextureError the pass is left
// mid-frame; the caller should drop the frame.
func (r *Renderer) Execute(dd *core.DrawData, fd *FrameData, pass core.RenderPass) error {
	r.stats = Statistics{}
	if fd.Empty {
		return nil
	}

	pass.BindPipeline()
	pass.BindBuffers(r.vtx.buf, r.idx.buf)

	fbW := float32(fd.FbWidth)
	fbH := float32(fd.FbHeight)

	for i, dl := range dd.Lists {
		off := fd.Lists[i]
		cursor := off.IdxBase
		for _, cmd := range dl.Cmds {
			first := cursor
			cursor += cmd.ElemCount // advances whether or not the command draws
			r.stats.Commands++

			tex, ok := r.textures[cmd.TextureID]
			if !ok {
				return &BadTextureError{ID: cmd.TextureID}
			}

			// Clip rect from display coordinates to framebuffer pixels.
			clipL := (cmd.ClipRect[0] - fd.Off[0]) * fd.Scale[0]
			clipT := (cmd.ClipRect[1] - fd.Off[1]) * fd.Scale[1]
			clipR := (cmd.ClipRect[2] - fd.Off[0]) * fd.Scale[0]
			clipB := (cmd.ClipRect[3] - fd.Off[1]) * fd.Scale[1]

			// No overlap with the framebuffer; touching an edge counts.
			if clipR <= 0 || clipB <= 0 || clipL >= fbW || clipT >= fbH {
				r.stats.Rejected++
				continue
			}
			x0 := math32.Max(clipL, 0)
			y0 := math32.Max(clipT, 0)
			x1 := math32.Min(clipR, fbW)
			y1 := math32.Min(clipB, fbH)
			if x1 <= x0 || y1 <= y0 {
				r.stats.Rejected++
				continue
			}

			// Conservative pixel snap: floor the origin, ceil the extent.
			sx := int(math32.Floor(x0))
			sy := int(math32.Floor(y0))
			sw := int(math32.Ceil(x1)) - sx
			sh := int(math32.Ceil(y1)) - sy
			pass.SetScissor(sx, sy, sw, sh)
			pass.BindTexture(tex)
			pass.DrawIndexed(cmd.ElemCount, first, off.VtxBase)
			r.stats.DrawCalls++
		}
		r.stats.DrawLists++
	}
	r.stats.VertexCount = dd.TotalVtxCount
	r.stats.IndexCount = dd.TotalIdxCount
	return nil
}
