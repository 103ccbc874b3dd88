package draw

import (
	"github.com/chewxy/math32"

	"github.com/corvidae/plume/render/core"
)

const projEpsilon = 1e-6

// ListOffsets locates one draw list inside the shared frame buffers.
// Offsets are in elements, not bytes.
type ListOffsets struct {
	VtxBase int
	IdxBase int
}

// FrameData is the snapshot Prepare hands to Execute. It stays valid until
// the next Prepare call, which may reallocate the buffers it refers to.
type FrameData struct {
	Empty    bool
	FbWidth  int
	FbHeight int
	Scale    [2]float32
	Off      [2]float32
	Lists    []ListOffsets
}

// Prepare uploads a frame's geometry and builds the offset table. prev may
// be the previous frame's FrameData, which is recycled; pass nil on the
// first frame.
//
// A frame with a degenerate framebuffer or no indices yields a FrameData
// with Empty set; Execute on it is a no-op, not an error.
func (r *Renderer) Prepare(dd *core.DrawData, prev *FrameData) (*FrameData, error) {
	fd := prev
	if fd == nil {
		fd = &FrameData{}
	}
	fbW := dd.DisplaySize[0] * dd.FramebufferScale[0]
	fbH := dd.DisplaySize[1] * dd.FramebufferScale[1]

	fd.Empty = fbW <= 0 || fbH <= 0 || dd.TotalIdxCount == 0
	fd.FbWidth = int(fbW)
	fd.FbHeight = int(fbH)
	fd.Scale = dd.FramebufferScale
	fd.Off = dd.DisplayPos
	fd.Lists = fd.Lists[:0]
	if fd.Empty {
		return fd, nil
	}

	r.updateProjection(dd)

	r.vtxStage.Reset()
	r.idxStage.Reset()
	vtxBase, idxBase := 0, 0
	for _, dl := range dd.Lists {
		fd.Lists = append(fd.Lists, ListOffsets{VtxBase: vtxBase, IdxBase: idxBase})
		r.vtxStage.Append(dl.VertexBytes())
		r.idxStage.Append(dl.IndexBytes())
		vtxBase += len(dl.Vtx)
		idxBase += len(dl.Idx)
	}
	// Index payload is 2 bytes per element; the copy granularity is 4.
	r.idxStage.AlignTo(copyAlign)

	if err := r.vtx.ensure(r.backend, r.log, r.vtxStage.Len()); err != nil {
		return nil, err
	}
	if err := r.idx.ensure(r.backend, r.log, r.idxStage.Len()); err != nil {
		return nil, err
	}
	if err := r.vtx.upload(r.vtxStage.Bytes()); err != nil {
		return nil, err
	}
	if err := r.idx.upload(r.idxStage.Bytes()); err != nil {
		return nil, err
	}
	return fd, nil
}

// updateProjection pushes the ortho matrix, but only when the viewport
// actually moved or resized.
func (r *Renderer) updateProjection(dd *core.DrawData) {
	if r.hasProj && nearEq(r.lastPos, dd.DisplayPos) && nearEq(r.lastSize, dd.DisplaySize) {
		return
	}
	w, h := dd.DisplaySize[0], dd.DisplaySize[1]
	px, py := dd.DisplayPos[0], dd.DisplayPos[1]
	sx := 2 / w
	sy := -2 / h
	tx := -1 - 2*px/w
	ty := 1 + 2*py/h
	r.backend.SetProjection([16]float32{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, 0.5, 0,
		tx, ty, 0.5, 1,
	})
	r.lastPos = dd.DisplayPos
	r.lastSize = dd.DisplaySize
	r.hasProj = true
}

func nearEq(a, b [2]float32) bool {
	return math32.Abs(a[0]-b[0]) <= projEpsilon && math32.Abs(a[1]-b[1]) <= projEpsilon
}
