package wgpubackend

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/corvidae/plume/render/core"
)

// Texture bundles the GPU texture with its view, sampler and bind group so
// the executor can bind it in one call.
type Texture struct {
	tex     *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
	group   *wgpu.BindGroup
	w, h    int
}

func (t *Texture) Width() int  { return t.w }
func (t *Texture) Height() int { return t.h }

func (t *Texture) Release() {
	if t.group != nil {
		t.group.Release()
		t.group = nil
	}
	if t.sampler != nil {
		t.sampler.Release()
		t.sampler = nil
	}
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.tex != nil {
		t.tex.Release()
		t.tex = nil
	}
}

// CreateTexture implements core.Backend: upload RGBA pixels and build the
// texture bind group (binding 0 view, binding 1 clamp-to-edge sampler).
func (b *Backend) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if want := 4 * desc.Width * desc.Height; len(desc.Pixels) != want {
		return nil, fmt.Errorf("wgpubackend: texture %q: got %d pixel bytes, want %d", desc.Label, len(desc.Pixels), want)
	}
	size := wgpu.Extent3D{
		Width:              uint32(desc.Width),
		Height:             uint32(desc.Height),
		DepthOrArrayLayers: 1,
	}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         desc.Label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpubackend: create texture: %w", err)
	}
	t := &Texture{tex: tex, w: desc.Width, h: desc.Height}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		desc.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(4 * desc.Width),
			RowsPerImage: uint32(desc.Height),
		},
		&size,
	)

	t.view, err = tex.CreateView(nil)
	if err != nil {
		t.Release()
		return nil, fmt.Errorf("wgpubackend: texture view: %w", err)
	}

	filter := wgpu.FilterModeLinear
	if desc.Filter == core.FilterNearest {
		filter = wgpu.FilterModeNearest
	}
	t.sampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         desc.Label,
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     filter,
		MinFilter:     filter,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		t.Release()
		return nil, fmt.Errorf("wgpubackend: sampler: %w", err)
	}

	t.group, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  desc.Label,
		Layout: b.texLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: t.view},
			{Binding: 1, Sampler: t.sampler},
		},
	})
	if err != nil {
		t.Release()
		return nil, fmt.Errorf("wgpubackend: texture bind group: %w", err)
	}
	return t, nil
}
