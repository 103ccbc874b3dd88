// Demo: renders GUI draw lists through the WebGPU backend in a GLFW window.
// Press R to rebuild the font atlas, C to swap the checker texture in place.
package main

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/corvidae/plume/render/assets"
	"github.com/corvidae/plume/render/core"
	"github.com/corvidae/plume/render/draw"
	wgpubackend "github.com/corvidae/plume/render/gfx/wgpu"
	"github.com/corvidae/plume/render/text"
)

func main() {
	// The window and GPU surface require the main OS thread.
	runtime.LockOSThread()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if err := run(logger); err != nil {
		logger.Error("demo failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(1280, 720, "plume demo", nil, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))
	defer surface.Release()

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
	})
	if err != nil {
		return err
	}
	defer adapter.Release()

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:          "plume demo device",
		RequiredLimits: &wgpu.RequiredLimits{Limits: wgpu.DefaultLimits()},
	})
	if err != nil {
		return err
	}
	defer device.Release()
	queue := device.GetQueue()

	caps := surface.GetCapabilities(adapter)
	format := caps.Formats[0]
	alphaMode := caps.AlphaModes[0]

	configureSurface := func(w, h int) {
		surface.Configure(adapter, device, &wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      format,
			Width:       uint32(w),
			Height:      uint32(h),
			PresentMode: wgpu.PresentModeFifo,
			AlphaMode:   alphaMode,
		})
	}
	fbw, fbh := window.GetFramebufferSize()
	configureSurface(fbw, fbh)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		if w > 0 && h > 0 {
			configureSurface(w, h)
		}
	})

	// sRGB swapchains encode on output; feed them linear values
	shader := wgpubackend.ShaderLinear
	if format == wgpu.TextureFormatBGRA8UnormSrgb || format == wgpu.TextureFormatRGBA8UnormSrgb {
		shader = wgpubackend.ShaderSRGB
	}
	backend, err := wgpubackend.New(device, queue, wgpubackend.Config{
		Format: format,
		Shader: shader,
	})
	if err != nil {
		return err
	}
	defer backend.Release()

	renderer, err := draw.New(backend, core.Config{Logger: logger})
	if err != nil {
		return err
	}
	defer renderer.Release()

	atlas, err := text.LoadTTF(goregular.TTF, 18)
	if err != nil {
		return err
	}
	defer atlas.Close()
	if err := renderer.ReloadFontTexture(atlas); err != nil {
		return err
	}

	checkerID, err := renderer.CreateTexture(checkerDesc(0x40, 0xC0))
	if err != nil {
		return err
	}

	// Optional: show an image from disk instead of the checker.
	if len(os.Args) > 1 {
		pixels, w, h, err := assets.LoadImage(os.Args[1])
		if err != nil {
			return err
		}
		tex, err := backend.CreateTexture(core.TextureDesc{
			Label: os.Args[1], Width: w, Height: h, Pixels: pixels,
		})
		if err != nil {
			return err
		}
		if err := renderer.ReplaceTexture(checkerID, tex); err != nil {
			return err
		}
	}

	dark := false
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			window.SetShouldClose(true)
		case glfw.KeyR:
			if err := renderer.ReloadFontTexture(atlas); err != nil {
				logger.Error("font reload failed", "err", err)
			}
		case glfw.KeyC:
			dark = !dark
			lo, hi := byte(0x40), byte(0xC0)
			if dark {
				lo, hi = 0x10, 0x60
			}
			tex, err := backend.CreateTexture(checkerDesc(lo, hi))
			if err != nil {
				logger.Error("checker rebuild failed", "err", err)
				return
			}
			if err := renderer.ReplaceTexture(checkerID, tex); err != nil {
				logger.Error("checker swap failed", "err", err)
			}
		}
	})

	var fd *draw.FrameData
	dl := &core.DrawList{}
	dd := &core.DrawData{}

	for !window.ShouldClose() {
		glfw.PollEvents()

		winW, winH := window.GetSize()
		fbw, fbh = window.GetFramebufferSize()
		if winW == 0 || winH == 0 || fbw == 0 || fbh == 0 {
			continue
		}

		buildFrame(dd, dl, atlas, renderer.Stats(), checkerID, winW, winH, fbw, fbh)

		fd, err = renderer.Prepare(dd, fd)
		if err != nil {
			return err
		}

		surfTex, err := surface.GetCurrentTexture()
		if err != nil {
			// lost swapchain (resize, minimize): reconfigure and retry
			logger.Debug("surface texture unavailable", "err", err)
			configureSurface(fbw, fbh)
			continue
		}
		view, err := surfTex.CreateView(nil)
		if err != nil {
			surfTex.Release()
			return err
		}
		encoder, err := device.CreateCommandEncoder(nil)
		if err != nil {
			view.Release()
			surfTex.Release()
			return err
		}

		rpass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
			ColorAttachments: []wgpu.RenderPassColorAttachment{{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0.10, G: 0.10, B: 0.12, A: 1},
			}},
		})
		if err := renderer.Execute(dd, fd, backend.Pass(rpass)); err != nil {
			rpass.End()
			encoder.Release()
			view.Release()
			surfTex.Release()
			return err
		}
		rpass.End()

		cmd, err := encoder.Finish(nil)
		if err != nil {
			encoder.Release()
			view.Release()
			surfTex.Release()
			return err
		}
		queue.Submit(cmd)
		surface.Present()

		cmd.Release()
		encoder.Release()
		view.Release()
		surfTex.Release()
	}
	return nil
}

func buildFrame(dd *core.DrawData, dl *core.DrawList, atlas *text.Atlas, stats draw.Statistics,
	checker core.TextureID, winW, winH, fbw, fbh int) {
	dl.Reset()
	dl.SetClip(0, 0, float32(winW), float32(winH))

	// panel background
	dl.AddRect(16, 16, 460, 180, core.PackColor(0.15, 0.16, 0.20, 0.95), atlas.TextureID())

	// the checker quad, clipped by the panel's right half
	dl.SetClip(240, 16, 460, 180)
	dl.AddQuad(300, 32, 428, 160, 0, 0, 1, 1, core.White, checker)

	dl.SetClip(0, 0, float32(winW), float32(winH))
	atlas.AppendText(dl, "plume demo\nR reloads the font atlas, C swaps the checker\n"+stats.String(),
		28, 28, core.White)

	dd.Reset()
	dd.DisplaySize = [2]float32{float32(winW), float32(winH)}
	dd.FramebufferScale = [2]float32{float32(fbw) / float32(winW), float32(fbh) / float32(winH)}
	dd.AddList(dl)
}

// checkerDesc builds an 8x8-cell checkerboard texture.
func checkerDesc(lo, hi byte) core.TextureDesc {
	const size, cell = 64, 8
	pix := make([]byte, 4*size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := lo
			if (x/cell+y/cell)%2 == 0 {
				v = hi
			}
			i := 4 * (y*size + x)
			pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, 0xFF
		}
	}
	return core.TextureDesc{Label: "checker", Width: size, Height: size, Pixels: pix, Filter: core.FilterNearest}
}
