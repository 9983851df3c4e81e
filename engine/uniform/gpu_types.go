package uniform

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUFractalUniformSource is the canonical WGSL definition of the FractalUniform struct.
// Matches GPUFractalUniform layout exactly (112 bytes).
//
//go:embed assets/fractal_uniform.wgsl
var GPUFractalUniformSource string

// GPUFractalUniformSize is the byte size of the marshaled uniform block.
const GPUFractalUniformSize = 112

// GPUFractalUniform is the GPU-aligned representation of the fractal uniform buffer.
// Matches the WGSL FractalUniform struct layout exactly (see GPUFractalUniformSource).
type GPUFractalUniform struct {
	Resolution mgl32.Vec2 // offset   0: vec2<f32>
	CamRot     mgl32.Vec2 // offset   8: vec2<f32> (pitch, yaw)
	LookAt     mgl32.Vec3 // offset  16: vec3<f32>
	Zoom       float32    // offset  28: f32
	Color      mgl32.Vec3 // offset  32: vec3<f32>
	Power      float32    // offset  44: f32
	Param      mgl32.Vec3 // offset  48: vec3<f32>
	Time       float32    // offset  60: f32
	LightPos   mgl32.Vec3 // offset  64: vec3<f32>
	Softness   float32    // offset  76: f32
	MaxSteps   int32      // offset  80: i32
	AAQuality  int32      // offset  84: i32
	HighRes    float32    // offset  88: f32
	ColorAnim  float32    // offset  92: f32
	XRay       float32    // offset  96: f32
	// offset 100: 12 bytes padding to 112
}

// Size returns the size of the marshaled GPUFractalUniform in bytes.
//
// Returns:
//   - int: the block size in bytes (112)
func (g *GPUFractalUniform) Size() int {
	return GPUFractalUniformSize
}

// Marshal serializes the GPUFractalUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUFractalUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	putVec := func(offset int, v []float32) {
		for i, c := range v {
			binary.LittleEndian.PutUint32(buf[offset+i*4:], math.Float32bits(c))
		}
	}
	putF32 := func(offset int, v float32) {
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(v))
	}

	putVec(0, g.Resolution[:])
	putVec(8, g.CamRot[:])
	putVec(16, g.LookAt[:])
	putF32(28, g.Zoom)
	putVec(32, g.Color[:])
	putF32(44, g.Power)
	putVec(48, g.Param[:])
	putF32(60, g.Time)
	putVec(64, g.LightPos[:])
	putF32(76, g.Softness)
	binary.LittleEndian.PutUint32(buf[80:], uint32(g.MaxSteps))
	binary.LittleEndian.PutUint32(buf[84:], uint32(g.AAQuality))
	putF32(88, g.HighRes)
	putF32(92, g.ColorAnim)
	putF32(96, g.XRay)
	return buf
}
