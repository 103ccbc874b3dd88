package core

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackColor(t *testing.T) {
	assert.Equal(t, White, PackColor(1, 1, 1, 1))
	assert.Equal(t, uint32(0xFF0000FF), PackColor(1, 0, 0, 1))
	assert.Equal(t, uint32(0x00FF0000), PackColor(0, 0, 1, 0))
}

func TestAddQuadMergesCommands(t *testing.T) {
	dl := &DrawList{}
	dl.SetClip(0, 0, 100, 100)

	dl.AddQuad(0, 0, 10, 10, 0, 0, 1, 1, White, 1)
	dl.AddQuad(20, 0, 30, 10, 0, 0, 1, 1, White, 1)
	require.Len(t, dl.Cmds, 1, "same texture and clip must merge")
	assert.Equal(t, 12, dl.Cmds[0].ElemCount)

	// different texture breaks the run
	dl.AddQuad(40, 0, 50, 10, 0, 0, 1, 1, White, 2)
	require.Len(t, dl.Cmds, 2)

	// clip change breaks the run even for the same texture
	dl.SetClip(0, 0, 50, 50)
	dl.AddQuad(0, 0, 10, 10, 0, 0, 1, 1, White, 2)
	require.Len(t, dl.Cmds, 3)
	assert.Equal(t, [4]float32{0, 0, 50, 50}, dl.Cmds[2].ClipRect)

	assert.Len(t, dl.Vtx, 16)
	assert.Len(t, dl.Idx, 24)
}

func TestQuadIndexWinding(t *testing.T) {
	dl := &DrawList{}
	dl.AddQuad(0, 0, 10, 10, 0, 0, 1, 1, White, 1)
	dl.AddQuad(0, 0, 10, 10, 0, 0, 1, 1, White, 1)

	// indices are local to the list, second quad offsets by its base
	assert.Equal(t, []DrawIdx{0, 2, 1, 1, 2, 3, 4, 6, 5, 5, 6, 7}, dl.Idx)
}

func TestVertexBytesLayout(t *testing.T) {
	require.Equal(t, 20, VertexStride)

	dl := &DrawList{}
	dl.AddQuad(1, 2, 3, 4, 0.5, 0.25, 1, 1, 0xAABBCCDD, 1)

	raw := dl.VertexBytes()
	require.Len(t, raw, 4*VertexStride)

	// first vertex: pos (1,2), uv (0.5,0.25), color at offset 16
	assert.Equal(t, uint32(0x3F800000), binary.LittleEndian.Uint32(raw[0:]))  // 1.0f
	assert.Equal(t, uint32(0x40000000), binary.LittleEndian.Uint32(raw[4:]))  // 2.0f
	assert.Equal(t, uint32(0x3F000000), binary.LittleEndian.Uint32(raw[8:]))  // 0.5f
	assert.Equal(t, uint32(0x3E800000), binary.LittleEndian.Uint32(raw[12:])) // 0.25f
	assert.Equal(t, uint32(0xAABBCCDD), binary.LittleEndian.Uint32(raw[16:]))
}

func TestDrawDataTotals(t *testing.T) {
	a := &DrawList{}
	a.AddQuad(0, 0, 1, 1, 0, 0, 1, 1, White, 1)
	b := &DrawList{}
	b.AddQuad(0, 0, 1, 1, 0, 0, 1, 1, White, 1)
	b.AddQuad(2, 0, 3, 1, 0, 0, 1, 1, White, 1)

	var dd DrawData
	dd.AddList(a)
	dd.AddList(b)
	assert.Equal(t, 12, dd.TotalVtxCount)
	assert.Equal(t, 18, dd.TotalIdxCount)

	dd.Reset()
	assert.Zero(t, dd.TotalVtxCount)
	assert.Zero(t, dd.TotalIdxCount)
	assert.Empty(t, dd.Lists)
}

func TestListReset(t *testing.T) {
	dl := &DrawList{}
	dl.AddQuad(0, 0, 1, 1, 0, 0, 1, 1, White, 1)
	dl.Reset()
	assert.Empty(t, dl.Vtx)
	assert.Empty(t, dl.Idx)
	assert.Empty(t, dl.Cmds)
	assert.Nil(t, dl.VertexBytes())
	assert.Nil(t, dl.IndexBytes())
}
