package uniform

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-bulb/engine/params"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f32At(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestMarshalLayout(t *testing.T) {
	p := params.Default()
	p.RequestFull()
	p.SetXRay(true)
	p.RequestFull()

	f := Frame{
		Params:     p,
		CamRot:     mgl32.Vec2{0.2, 0.5},
		Zoom:       2.8,
		LookAt:     mgl32.Vec3{1, 2, 3},
		Resolution: mgl32.Vec2{1280, 720},
		Time:       4.5,
	}
	g := f.GPU()
	buf := g.Marshal()
	require.Len(t, buf, GPUFractalUniformSize)

	assert.Equal(t, float32(1280), f32At(buf, 0))
	assert.Equal(t, float32(720), f32At(buf, 4))
	assert.Equal(t, float32(0.2), f32At(buf, 8))
	assert.Equal(t, float32(0.5), f32At(buf, 12))
	assert.Equal(t, float32(3), f32At(buf, 24))
	assert.Equal(t, float32(2.8), f32At(buf, 28))
	assert.Equal(t, float32(0.5), f32At(buf, 32))
	assert.Equal(t, float32(8), f32At(buf, 44))
	assert.Equal(t, float32(1.2), f32At(buf, 48))
	assert.Equal(t, float32(4.5), f32At(buf, 60))
	assert.Equal(t, float32(0.8), f32At(buf, 64))
	assert.Equal(t, float32(0.001), f32At(buf, 76))
	assert.Equal(t, uint32(200), binary.LittleEndian.Uint32(buf[80:]))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(buf[84:]))
	assert.Equal(t, float32(1), f32At(buf, 88))
	assert.Equal(t, float32(0), f32At(buf, 92))
	assert.Equal(t, float32(1), f32At(buf, 96))
	assert.Equal(t, make([]byte, 12), buf[100:])
}

func TestPreviewQualityFlag(t *testing.T) {
	g := Frame{Params: params.Default()}.GPU()
	assert.Equal(t, float32(0), g.HighRes)
}

func TestWGSLSourceEmbedded(t *testing.T) {
	assert.True(t, strings.Contains(GPUFractalUniformSource, "struct FractalUniform"))
}
