// Package wgpubackend implements the core capability interfaces on WebGPU
// (github.com/cogentcore/webgpu).
package wgpubackend

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/corvidae/plume/render/core"
)

// ShaderVariant selects the WGSL the pipeline is built from.
type ShaderVariant int

const (
	// ShaderLinear is the embedded shader with linear output. Use with
	// non-sRGB surface formats.
	ShaderLinear ShaderVariant = iota
	// ShaderSRGB is the embedded shader with a gamma conversion in the
	// fragment stage. Use when the surface format applies its own
	// linear-to-sRGB encode and the GUI colors are authored in sRGB.
	ShaderSRGB
	// ShaderSource builds the pipeline from caller-supplied WGSL with
	// vs_main/fs_main entry points and the standard bind group layout.
	ShaderSource
)

var errNoSource = errors.New("wgpubackend: ShaderSource requires Config.Source")

// Config for the backend.
type Config struct {
	Format  wgpu.TextureFormat // render target format
	Shader  ShaderVariant
	Source  string // WGSL, only with ShaderSource
	Samples int    // MSAA sample count; 0 means 1
}

// Backend holds the pipeline and shared bindings. It implements
// core.Backend; per-frame commands go through Pass.
type Backend struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	pipeline     *wgpu.RenderPipeline
	uniformBuf   *wgpu.Buffer
	uniformGroup *wgpu.BindGroup
	texLayout    *wgpu.BindGroupLayout
}

// New builds the render pipeline for the given target format.
func New(device *wgpu.Device, queue *wgpu.Queue, cfg Config) (*Backend, error) {
	b := &Backend{device: device, queue: queue}
	if err := b.init(cfg); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

func (b *Backend) init(cfg Config) error {
	source := ""
	switch cfg.Shader {
	case ShaderLinear:
		source = shaderLinearWGSL
	case ShaderSRGB:
		source = shaderSRGBWGSL
	case ShaderSource:
		if cfg.Source == "" {
			return errNoSource
		}
		source = cfg.Source
	default:
		return fmt.Errorf("wgpubackend: unknown shader variant %d", cfg.Shader)
	}
	samples := cfg.Samples
	if samples <= 0 {
		samples = 1
	}

	shader, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "gui shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: source},
	})
	if err != nil {
		return fmt.Errorf("wgpubackend: shader module: %w", err)
	}
	defer shader.Release()

	b.uniformBuf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "gui projection",
		Size:  uniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpubackend: uniform buffer: %w", err)
	}

	uniformLayout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "gui uniform layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uniformSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpubackend: uniform layout: %w", err)
	}
	defer uniformLayout.Release()

	b.uniformGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "gui uniform group",
		Layout: uniformLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.uniformBuf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpubackend: uniform group: %w", err)
	}

	b.texLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "gui texture layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpubackend: texture layout: %w", err)
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "gui pipeline layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{uniformLayout, b.texLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpubackend: pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	b.pipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "gui pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(core.VertexStride),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
						{Format: wgpu.VertexFormatUnorm8x4, Offset: 16, ShaderLocation: 2},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format: cfg.Format,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
						Alpha: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOneMinusDstAlpha,
							DstFactor: wgpu.BlendFactorOne,
							Operation: wgpu.BlendOperationAdd,
						},
					},
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(samples),
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("wgpubackend: render pipeline: %w", err)
	}
	return nil
}

const uniformSize = 64 // mat4x4<f32>

// CreateBuffer implements core.Backend.
func (b *Backend) CreateBuffer(kind core.BufferKind, size int) (core.Buffer, error) {
	var usage wgpu.BufferUsage
	label := ""
	switch kind {
	case core.BufferVertex:
		usage = wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst
		label = "gui vertices"
	case core.BufferIndex:
		usage = wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst
		label = "gui indices"
	case core.BufferUniform:
		usage = wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
		label = "gui uniforms"
	default:
		return nil, fmt.Errorf("wgpubackend: unknown buffer kind %d", kind)
	}
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(size),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpubackend: create buffer: %w", err)
	}
	return &buffer{buf: buf, queue: b.queue, size: size}, nil
}

// SetProjection implements core.Backend.
func (b *Backend) SetProjection(m [16]float32) {
	b.queue.WriteBuffer(b.uniformBuf, 0, wgpu.ToBytes(m[:]))
}

// Release frees the pipeline and shared bindings. Buffers and textures
// created through the backend have their own lifetime.
func (b *Backend) Release() {
	if b.pipeline != nil {
		b.pipeline.Release()
		b.pipeline = nil
	}
	if b.texLayout != nil {
		b.texLayout.Release()
		b.texLayout = nil
	}
	if b.uniformGroup != nil {
		b.uniformGroup.Release()
		b.uniformGroup = nil
	}
	if b.uniformBuf != nil {
		b.uniformBuf.Release()
		b.uniformBuf = nil
	}
}

type buffer struct {
	buf   *wgpu.Buffer
	queue *wgpu.Queue
	size  int
}

func (b *buffer) Write(offset int, data []byte) error {
	b.queue.WriteBuffer(b.buf, uint64(offset), data)
	return nil
}

func (b *buffer) Cap() int { return b.size }

func (b *buffer) Release() { b.buf.Release() }
