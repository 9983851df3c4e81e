package renderer

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-bulb/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-bulb/engine/uniform"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrSurfaceLost reports that the swapchain can no longer produce images.
	// The session cannot continue drawing.
	ErrSurfaceLost = errors.New("render surface lost")

	// ErrCaptureUnavailable reports that a frame could not be read back.
	ErrCaptureUnavailable = errors.New("frame capture unavailable")
)

// SurfaceTarget is the window-side half of surface creation.
type SurfaceTarget interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// Surface is the draw collaborator the render loop talks to. Each call receives the
// full parameter surface for one frame.
type Surface interface {
	// Draw renders frame to the display.
	//
	// Parameters:
	//   - frame: the parameter surface for this draw
	//
	// Returns:
	//   - error: ErrSurfaceLost when the surface is gone, other errors for transient failures
	Draw(frame uniform.Frame) error

	// Capture renders frame offscreen at its resolution and returns the pixels.
	//
	// Parameters:
	//   - frame: the parameter surface for this draw
	//
	// Returns:
	//   - image.Image: the rendered frame
	//   - error: ErrCaptureUnavailable if the frame cannot be read back
	Capture(frame uniform.Frame) (image.Image, error)

	// Resize reconfigures the surface for a new framebuffer size.
	//
	// Parameters:
	//   - width, height: the framebuffer size in pixels
	Resize(width, height int)

	// Release frees the GPU resources behind the surface.
	Release()
}

// renderer is the implementation of the Surface interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	shader      shader.Shader

	width, height int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
}

var _ Surface = &renderer{}

// NewRenderer creates the GPU surface for target and builds the fractal pipeline.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - target: the window providing the platform surface descriptor and size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Surface: the ready-to-draw surface
//   - error: an error if the adapter, device, surface or pipeline cannot be created
func NewRenderer(backendType RendererBackendType, target SurfaceTarget, options ...RendererBuilderOption) (Surface, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		presentMode: PresentModeVSync,
		width:       target.Width(),
		height:      target.Height(),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	if r.shader == nil {
		s, err := shader.Default()
		if err != nil {
			return nil, err
		}
		r.shader = s
	}

	if r.backend == nil {
		switch backendType {
		case BackendTypeWGPU:
			fallthrough
		default:
			b, err := newWGPURendererBackend(target.SurfaceDescriptor(), r.forceFallbackAdapter)
			if err != nil {
				return nil, err
			}
			r.backend = b
		}
	}

	r.backend.SetPresentMode(r.presentMode)
	if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("failed to configure surface: %w", err)
	}
	if err := r.backend.RegisterPipeline(r.shader); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("failed to register fractal pipeline: %w", err)
	}
	return r, nil
}

func (r *renderer) Draw(frame uniform.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// minimized windows have a zero-sized framebuffer
	if r.width <= 0 || r.height <= 0 {
		return nil
	}

	g := frame.GPU()
	r.backend.WriteUniform(g.Marshal())
	return r.backend.DrawFrame()
}

func (r *renderer) Capture(frame uniform.Frame) (image.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, h := int(frame.Resolution[0]), int(frame.Resolution[1])
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty resolution %dx%d", ErrCaptureUnavailable, w, h)
	}

	g := frame.GPU()
	r.backend.WriteUniform(g.Marshal())
	return r.backend.CaptureFrame(w, h)
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width, r.height = width, height
	if width <= 0 || height <= 0 {
		return
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		slog.Warn("surface resize failed", "width", width, "height", height, "err", err)
	}
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Release()
}
