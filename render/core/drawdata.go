package core

import "unsafe"

// TextureID is an opaque handle issued by the texture registry. Zero is
// never a live id.
type TextureID uint64

// DrawVert is the GPU vertex layout: pos, uv, packed RGBA. 20 bytes.
type DrawVert struct {
	X, Y  float32
	U, V  float32
	Color uint32
}

// DrawIdx is the index element type.
type DrawIdx = uint16

const (
	VertexStride = int(unsafe.Sizeof(DrawVert{})) // 20
	IndexStride  = 2
)

// PackColor packs normalized RGBA into the vertex color format
// (R in the low byte).
func PackColor(r, g, b, a float32) uint32 {
	return uint32(r*255+0.5) | uint32(g*255+0.5)<<8 | uint32(b*255+0.5)<<16 | uint32(a*255+0.5)<<24
}

// White is the packed opaque white color.
const White uint32 = 0xFFFFFFFF

// DrawCmd is one clipped, textured run of indices.
type DrawCmd struct {
	ClipRect  [4]float32 // left, top, right, bottom in display coordinates
	TextureID TextureID
	ElemCount int
}

// DrawList holds geometry for one layer. Indices are local to the list;
// the executor addresses them with the list's base vertex.
type DrawList struct {
	Vtx  []DrawVert
	Idx  []DrawIdx
	Cmds []DrawCmd

	clip [4]float32
}

// SetClip sets the clip rect applied to subsequently added geometry.
func (dl *DrawList) SetClip(l, t, r, b float32) { dl.clip = [4]float32{l, t, r, b} }

// AddQuad appends a textured quad spanning (x0,y0)-(x1,y1) with the given
// UV rect. Consecutive quads sharing texture and clip merge into one command.
func (dl *DrawList) AddQuad(x0, y0, x1, y1, u0, v0, u1, v1 float32, color uint32, tex TextureID) {
	base := DrawIdx(len(dl.Vtx))
	dl.Vtx = append(dl.Vtx,
		DrawVert{X: x0, Y: y0, U: u0, V: v0, Color: color},
		DrawVert{X: x1, Y: y0, U: u1, V: v0, Color: color},
		DrawVert{X: x0, Y: y1, U: u0, V: v1, Color: color},
		DrawVert{X: x1, Y: y1, U: u1, V: v1, Color: color},
	)
	dl.Idx = append(dl.Idx,
		base+0, base+2, base+1,
		base+1, base+2, base+3,
	)

	if n := len(dl.Cmds); n > 0 {
		last := &dl.Cmds[n-1]
		if last.TextureID == tex && last.ClipRect == dl.clip {
			last.ElemCount += 6
			return
		}
	}
	dl.Cmds = append(dl.Cmds, DrawCmd{ClipRect: dl.clip, TextureID: tex, ElemCount: 6})
}

// AddRect appends a solid-color quad. The texture must resolve to an
// opaque white texel at (u,v)=(0,0), which the font atlas reserves.
func (dl *DrawList) AddRect(x0, y0, x1, y1 float32, color uint32, tex TextureID) {
	dl.AddQuad(x0, y0, x1, y1, 0, 0, 0, 0, color, tex)
}

// Reset empties the list for reuse, keeping allocations.
func (dl *DrawList) Reset() {
	dl.Vtx = dl.Vtx[:0]
	dl.Idx = dl.Idx[:0]
	dl.Cmds = dl.Cmds[:0]
}

// VertexBytes views the vertex slice as raw bytes (no copy).
func (dl *DrawList) VertexBytes() []byte {
	if len(dl.Vtx) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&dl.Vtx[0])), len(dl.Vtx)*VertexStride)
}

// IndexBytes views the index slice as raw bytes (no copy).
func (dl *DrawList) IndexBytes() []byte {
	if len(dl.Idx) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&dl.Idx[0])), len(dl.Idx)*IndexStride)
}

// DrawData is one frame's worth of draw lists plus viewport placement.
type DrawData struct {
	DisplayPos       [2]float32
	DisplaySize      [2]float32
	FramebufferScale [2]float32
	Lists            []*DrawList
	TotalVtxCount    int
	TotalIdxCount    int
}

// AddList appends a list and maintains the totals.
func (dd *DrawData) AddList(dl *DrawList) {
	dd.Lists = append(dd.Lists, dl)
	dd.TotalVtxCount += len(dl.Vtx)
	dd.TotalIdxCount += len(dl.Idx)
}

// Reset empties the frame, keeping the list slice.
func (dd *DrawData) Reset() {
	dd.Lists = dd.Lists[:0]
	dd.TotalVtxCount = 0
	dd.TotalIdxCount = 0
}
