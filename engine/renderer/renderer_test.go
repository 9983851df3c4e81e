package renderer

import (
	"errors"
	"image"
	"testing"

	"github.com/Carmen-Shannon/oxy-bulb/engine/params"
	"github.com/Carmen-Shannon/oxy-bulb/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-bulb/engine/uniform"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	width, height int
}

func (t fakeTarget) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (t fakeTarget) Width() int                                 { return t.width }
func (t fakeTarget) Height() int                                { return t.height }

type fakeBackend struct {
	configured  [][2]int
	presentMode PresentMode
	pipeline    shader.Shader
	uniforms    [][]byte
	draws       int
	drawErr     error
	configErr   error
	released    bool
}

func (b *fakeBackend) ConfigureSurface(width, height int) error {
	b.configured = append(b.configured, [2]int{width, height})
	return b.configErr
}
func (b *fakeBackend) SetPresentMode(mode PresentMode)        { b.presentMode = mode }
func (b *fakeBackend) RegisterPipeline(s shader.Shader) error { b.pipeline = s; return nil }
func (b *fakeBackend) WriteUniform(data []byte)               { b.uniforms = append(b.uniforms, data) }
func (b *fakeBackend) DrawFrame() error                       { b.draws++; return b.drawErr }
func (b *fakeBackend) Release()                               { b.released = true }

func (b *fakeBackend) CaptureFrame(width, height int) (*image.RGBA, error) {
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

func testFrame(w, h float32) uniform.Frame {
	return uniform.Frame{Params: params.Default(), Zoom: 2.8, Resolution: mgl32.Vec2{w, h}}
}

func TestNewRendererConfiguresAndRegisters(t *testing.T) {
	b := &fakeBackend{}
	s, err := NewRenderer(BackendTypeWGPU, fakeTarget{640, 480},
		WithBackend(b), WithPresentMode(PresentModeUncapped))
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, [][2]int{{640, 480}}, b.configured)
	assert.Equal(t, PresentModeUncapped, b.presentMode)
	require.NotNil(t, b.pipeline)
	assert.Equal(t, "fractal", b.pipeline.Key())
}

func TestNewRendererConfigureFailure(t *testing.T) {
	b := &fakeBackend{configErr: errors.New("no formats")}
	_, err := NewRenderer(BackendTypeWGPU, fakeTarget{640, 480}, WithBackend(b))
	require.Error(t, err)
	assert.True(t, b.released)
}

func TestNewRendererWithoutDescriptorFails(t *testing.T) {
	_, err := NewRenderer(BackendTypeWGPU, fakeTarget{640, 480})
	assert.Error(t, err)
}

func TestDrawUploadsUniform(t *testing.T) {
	b := &fakeBackend{}
	s, err := NewRenderer(BackendTypeWGPU, fakeTarget{640, 480}, WithBackend(b))
	require.NoError(t, err)

	require.NoError(t, s.Draw(testFrame(640, 480)))
	assert.Equal(t, 1, b.draws)
	require.Len(t, b.uniforms, 1)
	assert.Len(t, b.uniforms[0], uniform.GPUFractalUniformSize)
}

func TestDrawPropagatesSurfaceLost(t *testing.T) {
	b := &fakeBackend{drawErr: ErrSurfaceLost}
	s, err := NewRenderer(BackendTypeWGPU, fakeTarget{640, 480}, WithBackend(b))
	require.NoError(t, err)
	assert.ErrorIs(t, s.Draw(testFrame(640, 480)), ErrSurfaceLost)
}

func TestDrawSkippedWhenMinimized(t *testing.T) {
	b := &fakeBackend{}
	s, err := NewRenderer(BackendTypeWGPU, fakeTarget{640, 480}, WithBackend(b))
	require.NoError(t, err)

	s.Resize(0, 0)
	require.NoError(t, s.Draw(testFrame(640, 480)))
	assert.Zero(t, b.draws)
	assert.Len(t, b.configured, 1)

	s.Resize(800, 600)
	assert.Equal(t, [2]int{800, 600}, b.configured[1])
}

func TestCapture(t *testing.T) {
	b := &fakeBackend{}
	s, err := NewRenderer(BackendTypeWGPU, fakeTarget{640, 480}, WithBackend(b))
	require.NoError(t, err)

	img, err := s.Capture(testFrame(32, 16))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 16), img.Bounds())

	_, err = s.Capture(testFrame(0, 16))
	assert.ErrorIs(t, err, ErrCaptureUnavailable)
}

func TestAlignedBytesPerRow(t *testing.T) {
	assert.Equal(t, uint32(256), alignedBytesPerRow(1))
	assert.Equal(t, uint32(256), alignedBytesPerRow(64))
	assert.Equal(t, uint32(512), alignedBytesPerRow(65))
	assert.Equal(t, uint32(5120), alignedBytesPerRow(1280))
}

func TestUnpadRows(t *testing.T) {
	const w, h, pitch = 2, 2, 256
	data := make([]byte, pitch*h)
	copy(data[0:], []byte{1, 2, 3, 4, 5, 6, 7, 8})
	copy(data[pitch:], []byte{9, 10, 11, 12, 13, 14, 15, 16})

	img := unpadRows(data, w, h, pitch)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}, img.Pix)

	data[0] = 99
	assert.Equal(t, byte(1), img.Pix[0])
}
