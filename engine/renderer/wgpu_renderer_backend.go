package renderer

import (
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-bulb/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-bulb/engine/uniform"
	"github.com/cogentcore/webgpu/wgpu"
)

// captureFormat is the offscreen color format used for frame capture.
const captureFormat = wgpu.TextureFormatRGBA8Unorm

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	presentMode   wgpu.PresentMode
	width, height int

	shader          shader.Shader
	module          *wgpu.ShaderModule
	uniformBuffer   *wgpu.Buffer
	bindGroupLayout *wgpu.BindGroupLayout
	bindGroup       *wgpu.BindGroup
	pipelineLayout  *wgpu.PipelineLayout
	pipeline        *wgpu.RenderPipeline

	capture captureTarget
}

// captureTarget is the lazily built offscreen render target and readback buffer.
// It is rebuilt whenever the capture size changes.
type captureTarget struct {
	pipeline    *wgpu.RenderPipeline
	texture     *wgpu.Texture
	view        *wgpu.TextureView
	readback    *wgpu.Buffer
	width       int
	height      int
	bytesPerRow uint32
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (*wgpuRendererBackendImpl, error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("window has no surface descriptor")
	}

	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Fractal Device",
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	if err := b.initUniform(); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

// initUniform creates the uniform buffer, its bind group and the pipeline layout.
// The fractal pass has exactly one binding: the FractalUniform block at group 0, binding 0.
func (b *wgpuRendererBackendImpl) initUniform() error {
	var err error
	b.uniformBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Fractal Uniform Buffer",
		Size:  uniform.GPUFractalUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create uniform buffer: %w", err)
	}

	b.bindGroupLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Fractal Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uniform.GPUFractalUniformSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create bind group layout: %w", err)
	}

	b.bindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Fractal Bind Group",
		Layout: b.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  b.uniformBuffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create bind group: %w", err)
	}

	b.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Fractal Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.bindGroupLayout},
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline layout: %w", err)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.configureSurface(width, height)
}

func (b *wgpuRendererBackendImpl) configureSurface(width, height int) error {
	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 || len(capabilities.AlphaModes) == 0 {
		return fmt.Errorf("%w: surface reports no supported formats", ErrSurfaceLost)
	}

	format := capabilities.Formats[0]
	formatChanged := b.pipeline != nil && format != b.surfaceFormat
	b.surfaceFormat = format
	b.width, b.height = width, height

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	if formatChanged {
		b.pipeline.Release()
		p, err := b.createPipeline(b.surfaceFormat, "Fractal Render Pipeline")
		if err != nil {
			b.pipeline = nil
			return err
		}
		b.pipeline = p
	}
	return nil
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) RegisterPipeline(s shader.Shader) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	module, err := b.device.CreateShaderModule(s.Module())
	if err != nil {
		return fmt.Errorf("failed to create shader module %s: %w", s.Key(), err)
	}
	if b.module != nil {
		b.module.Release()
	}
	b.module = module
	b.shader = s

	p, err := b.createPipeline(b.surfaceFormat, s.Key()+" Render Pipeline")
	if err != nil {
		return err
	}
	if b.pipeline != nil {
		b.pipeline.Release()
	}
	b.pipeline = p
	return nil
}

// createPipeline builds the full-screen triangle pipeline for one color target format.
// There are no vertex buffers, no depth attachment and no MSAA; anti-aliasing is done
// by supersampling in the fragment stage.
func (b *wgpuRendererBackendImpl) createPipeline(format wgpu.TextureFormat, label string) (*wgpu.RenderPipeline, error) {
	if b.module == nil || b.shader == nil {
		return nil, errors.New("no shader registered")
	}
	p, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label,
		Layout: b.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     b.module,
			EntryPoint: b.shader.VertexEntryPoint(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     b.module,
			EntryPoint: b.shader.FragmentEntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", label, err)
	}
	return p, nil
}

func (b *wgpuRendererBackendImpl) WriteUniform(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue.WriteBuffer(b.uniformBuffer, 0, data)
}

// acquire gets the next swapchain texture. An acquisition failure is retried once
// after reconfiguring, which covers outdated swapchains after a resize; a second
// failure means the surface is gone.
func (b *wgpuRendererBackendImpl) acquire() (*wgpu.Texture, error) {
	tex, err := b.surface.GetCurrentTexture()
	if err == nil {
		return tex, nil
	}
	if cfgErr := b.configureSurface(b.width, b.height); cfgErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrSurfaceLost, cfgErr)
	}
	tex, err = b.surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSurfaceLost, err)
	}
	return tex, nil
}

func (b *wgpuRendererBackendImpl) DrawFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pipeline == nil {
		return errors.New("no render pipeline registered")
	}

	surfaceTexture, err := b.acquire()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	if err := b.encodeAndSubmit(view, b.pipeline, nil); err != nil {
		return err
	}
	b.surface.Present()
	return nil
}

// encodeAndSubmit records the fractal pass into view, runs extra (if set) on the
// encoder after the pass, and submits the command buffer.
func (b *wgpuRendererBackendImpl) encodeAndSubmit(view *wgpu.TextureView, p *wgpu.RenderPipeline, extra func(*wgpu.CommandEncoder)) error {
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
			},
		},
	})
	pass.SetPipeline(p)
	pass.SetBindGroup(0, b.bindGroup, nil)
	pass.Draw(3, 1, 0, 0)
	pass.End()

	if extra != nil {
		extra(encoder)
	}

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()

	b.queue.Submit(commandBuffer)
	return nil
}

func (b *wgpuRendererBackendImpl) CaptureFrame(width, height int) (*image.RGBA, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureCaptureTarget(width, height); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}
	c := &b.capture

	err := b.encodeAndSubmit(c.view, c.pipeline, func(encoder *wgpu.CommandEncoder) {
		encoder.CopyTextureToBuffer(
			&wgpu.ImageCopyTexture{
				Texture:  c.texture,
				MipLevel: 0,
				Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
				Aspect:   wgpu.TextureAspectAll,
			},
			&wgpu.ImageCopyBuffer{
				Buffer: c.readback,
				Layout: wgpu.TextureDataLayout{
					Offset:       0,
					BytesPerRow:  c.bytesPerRow,
					RowsPerImage: uint32(c.height),
				},
			},
			&wgpu.Extent3D{
				Width:              uint32(c.width),
				Height:             uint32(c.height),
				DepthOrArrayLayers: 1,
			},
		)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}

	size := uint64(c.bytesPerRow) * uint64(c.height)
	var status wgpu.BufferMapAsyncStatus
	if err := c.readback.MapAsync(wgpu.MapModeRead, 0, size, func(s wgpu.BufferMapAsyncStatus) {
		status = s
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}
	b.device.Poll(true, nil)
	if status != wgpu.BufferMapAsyncStatusSuccess {
		return nil, fmt.Errorf("%w: buffer map status %v", ErrCaptureUnavailable, status)
	}

	img := unpadRows(c.readback.GetMappedRange(0, uint(size)), c.width, c.height, int(c.bytesPerRow))
	c.readback.Unmap()
	return img, nil
}

// ensureCaptureTarget builds the offscreen pipeline once and the texture and readback
// buffer whenever the size changes.
func (b *wgpuRendererBackendImpl) ensureCaptureTarget(width, height int) error {
	c := &b.capture
	if c.pipeline == nil {
		p, err := b.createPipeline(captureFormat, "Fractal Capture Pipeline")
		if err != nil {
			return err
		}
		c.pipeline = p
	}
	if c.texture != nil && c.width == width && c.height == height {
		return nil
	}
	c.releaseTargets()

	texture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Fractal Capture Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        captureFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		return err
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return err
	}

	bytesPerRow := alignedBytesPerRow(width)
	readback, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Fractal Capture Readback",
		Size:  uint64(bytesPerRow) * uint64(height),
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		view.Release()
		texture.Release()
		return err
	}

	c.texture, c.view, c.readback = texture, view, readback
	c.width, c.height, c.bytesPerRow = width, height, bytesPerRow
	return nil
}

func (c *captureTarget) releaseTargets() {
	if c.readback != nil {
		c.readback.Release()
		c.readback = nil
	}
	if c.view != nil {
		c.view.Release()
		c.view = nil
	}
	if c.texture != nil {
		c.texture.Release()
		c.texture = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.capture.releaseTargets()
	if b.capture.pipeline != nil {
		b.capture.pipeline.Release()
		b.capture.pipeline = nil
	}
	if b.pipeline != nil {
		b.pipeline.Release()
		b.pipeline = nil
	}
	if b.module != nil {
		b.module.Release()
		b.module = nil
	}
	if b.pipelineLayout != nil {
		b.pipelineLayout.Release()
		b.pipelineLayout = nil
	}
	if b.bindGroup != nil {
		b.bindGroup.Release()
		b.bindGroup = nil
	}
	if b.bindGroupLayout != nil {
		b.bindGroupLayout.Release()
		b.bindGroupLayout = nil
	}
	if b.uniformBuffer != nil {
		b.uniformBuffer.Release()
		b.uniformBuffer = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
