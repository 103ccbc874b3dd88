package core

import "log/slog"

// BufferKind selects the GPU usage of a buffer created through a Backend.
type BufferKind int

const (
	BufferVertex BufferKind = iota
	BufferIndex
	BufferUniform
)

// FilterMode selects texture sampling.
type FilterMode int

const (
	FilterLinear FilterMode = iota
	FilterNearest
)

// Backend abstraction. Implemented by the gfx packages; the draw package
// only ever talks to the GPU through it.
type Backend interface {
	CreateBuffer(kind BufferKind, size int) (Buffer, error)
	CreateTexture(desc TextureDesc) (Texture, error)
	SetProjection(m [16]float32)
}

// Buffer is a GPU buffer owned by a Backend.
type Buffer interface {
	Write(offset int, data []byte) error
	Cap() int
	Release()
}

// Texture is a bindable GPU texture (view + sampler + binding baked in).
type Texture interface {
	Width() int
	Height() int
	Release()
}

// RenderPass is the command surface the draw executor replays into.
// Scissor coordinates are top-left origin in framebuffer pixels; backends
// that differ (GL) translate internally.
type RenderPass interface {
	BindPipeline()
	BindBuffers(vtx, idx Buffer)
	SetScissor(x, y, w, h int)
	BindTexture(t Texture)
	DrawIndexed(count, firstIndex, baseVertex int)
}

// TextureDesc describes an RGBA8 texture upload.
type TextureDesc struct {
	Label  string
	Width  int
	Height int
	Pixels []byte // len = 4*Width*Height, row-major, top-left origin
	Filter FilterMode
}

// Config for the draw renderer.
type Config struct {
	Logger *slog.Logger // nil disables logging
	// Initial buffer capacities in elements (not bytes).
	InitialVertexCount int
	InitialIndexCount  int
}

const defaultBufferCount = 32768

// Normalize fills in defaults for zero fields.
func (c Config) Normalize() Config {
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.InitialVertexCount <= 0 {
		c.InitialVertexCount = defaultBufferCount
	}
	if c.InitialIndexCount <= 0 {
		c.InitialIndexCount = defaultBufferCount
	}
	return c
}
