// Package glbackend implements the core capability interfaces on OpenGL 3.3
// core profile. The host owns the context; gl.Init must have run before
// New is called.
package glbackend

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/corvidae/plume/render/core"
)

type Backend struct {
	program uint32
	vao     uint32
	projLoc int32
	texLoc  int32
	proj    [16]float32
}

// New compiles the shader program and creates the shared VAO.
func New() (*Backend, error) {
	b := &Backend{}
	var err error
	b.program, err = makeProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	gl.GenVertexArrays(1, &b.vao)
	b.projLoc = gl.GetUniformLocation(b.program, gl.Str("uProj\x00"))
	b.texLoc = gl.GetUniformLocation(b.program, gl.Str("uTexture\x00"))
	return b, nil
}

func (b *Backend) Release() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.program != 0 {
		gl.DeleteProgram(b.program)
		b.program = 0
	}
}

// CreateBuffer implements core.Backend.
func (b *Backend) CreateBuffer(kind core.BufferKind, size int) (core.Buffer, error) {
	var target uint32
	switch kind {
	case core.BufferVertex:
		target = gl.ARRAY_BUFFER
	case core.BufferIndex:
		target = gl.ELEMENT_ARRAY_BUFFER
	case core.BufferUniform:
		target = gl.UNIFORM_BUFFER
	default:
		return nil, fmt.Errorf("glbackend: unknown buffer kind %d", kind)
	}
	buf := &buffer{target: target, size: size}
	gl.GenBuffers(1, &buf.id)
	gl.BindBuffer(target, buf.id)
	gl.BufferData(target, size, nil, gl.STREAM_DRAW)
	gl.BindBuffer(target, 0)
	return buf, nil
}

// CreateTexture implements core.Backend.
func (b *Backend) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if want := 4 * desc.Width * desc.Height; len(desc.Pixels) != want {
		return nil, fmt.Errorf("glbackend: texture %q: got %d pixel bytes, want %d", desc.Label, len(desc.Pixels), want)
	}
	t := &texture{w: desc.Width, h: desc.Height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	filter := int32(gl.LINEAR)
	if desc.Filter == core.FilterNearest {
		filter = gl.NEAREST
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(desc.Width), int32(desc.Height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(desc.Pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// SetProjection implements core.Backend. The matrix is uploaded when the
// pass binds the pipeline.
func (b *Backend) SetProjection(m [16]float32) { b.proj = m }

// BeginPass returns a pass for the current framebuffer. The height is
// needed to flip scissor rects into GL's bottom-left origin.
func (b *Backend) BeginPass(fbWidth, fbHeight int) core.RenderPass {
	return &pass{backend: b, fbHeight: fbHeight}
}

type buffer struct {
	id     uint32
	target uint32
	size   int
}

func (buf *buffer) Write(offset int, data []byte) error {
	gl.BindBuffer(buf.target, buf.id)
	gl.BufferSubData(buf.target, offset, len(data), gl.Ptr(data))
	gl.BindBuffer(buf.target, 0)
	return nil
}

func (buf *buffer) Cap() int { return buf.size }

func (buf *buffer) Release() {
	if buf.id != 0 {
		gl.DeleteBuffers(1, &buf.id)
		buf.id = 0
	}
}

type texture struct {
	id   uint32
	w, h int
}

func (t *texture) Width() int  { return t.w }
func (t *texture) Height() int { return t.h }

func (t *texture) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

type pass struct {
	backend  *Backend
	fbHeight int
}

func (p *pass) BindPipeline() {
	b := p.backend
	gl.UseProgram(b.program)
	gl.BindVertexArray(b.vao)
	gl.UniformMatrix4fv(b.projLoc, 1, false, &b.proj[0])
	gl.Uniform1i(b.texLoc, 0)

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE_MINUS_DST_ALPHA, gl.ONE)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
}

func (p *pass) BindBuffers(vtx, idx core.Buffer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vtx.(*buffer).id)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, idx.(*buffer).id)

	// layout(location=0) vec2 pos, (1) vec2 uv, (2) vec4 color (normalized ubytes)
	stride := int32(core.VertexStride)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(0)))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(8)))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.UNSIGNED_BYTE, true, stride, unsafe.Pointer(uintptr(16)))
}

func (p *pass) SetScissor(x, y, w, h int) {
	// top-left origin to GL's bottom-left
	gl.Scissor(int32(x), int32(p.fbHeight-(y+h)), int32(w), int32(h))
}

func (p *pass) BindTexture(t core.Texture) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.(*texture).id)
}

func (p *pass) DrawIndexed(count, firstIndex, baseVertex int) {
	gl.DrawElementsBaseVertex(gl.TRIANGLES, int32(count), gl.UNSIGNED_SHORT,
		unsafe.Pointer(uintptr(firstIndex*core.IndexStride)), int32(baseVertex))
}

// --- Shader utilities ---

const vertexSource = `
#version 330 core
layout(location=0) in vec2 aPos;
layout(location=1) in vec2 aUV;
layout(location=2) in vec4 aColor;
uniform mat4 uProj;
out vec2 vUV;
out vec4 vColor;
void main() {
    vUV = aUV;
    vColor = aColor;
    gl_Position = uProj * vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const fragmentSource = `
#version 330 core
in vec2 vUV;
in vec4 vColor;
uniform sampler2D uTexture;
out vec4 FragColor;
void main() {
    FragColor = vColor * texture(uTexture, vUV);
}
` + "\x00"

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("glbackend: shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("glbackend: program link error: %s", log)
	}
	return prog, nil
}
