package renderer

import (
	"image"

	"github.com/Carmen-Shannon/oxy-bulb/engine/renderer/shader"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// RendererBackend is the GPU API behind a Renderer. The fractal pass is a single
// full-screen pipeline with one uniform block, so the backend surface is small.
type RendererBackend interface {
	// ConfigureSurface (re)configures the swapchain for a new framebuffer size.
	//
	// Parameters:
	//   - width, height: the framebuffer size in pixels
	//
	// Returns:
	//   - error: an error if the surface reports no usable format
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the present mode used by the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// RegisterPipeline builds the full-screen render pipeline from s.
	//
	// Parameters:
	//   - s: the shader holding both stages
	//
	// Returns:
	//   - error: an error if module or pipeline creation fails
	RegisterPipeline(s shader.Shader) error

	// WriteUniform uploads the marshaled uniform block.
	WriteUniform(data []byte)

	// DrawFrame renders one frame to the swapchain and presents it.
	//
	// Returns:
	//   - error: ErrSurfaceLost if the swapchain image cannot be acquired, other errors for encoding failures
	DrawFrame() error

	// CaptureFrame renders one frame offscreen and reads it back.
	//
	// Parameters:
	//   - width, height: the capture size in pixels
	//
	// Returns:
	//   - *image.RGBA: the captured pixels
	//   - error: ErrCaptureUnavailable if readback fails
	CaptureFrame(width, height int) (*image.RGBA, error)

	// Release frees every GPU resource held by the backend.
	Release()
}
