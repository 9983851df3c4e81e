// Package uniform defines the flat parameter surface handed to the shader once per draw.
package uniform

import (
	"github.com/Carmen-Shannon/oxy-bulb/engine/params"
	"github.com/go-gl/mathgl/mgl32"
)

// Frame is everything one draw needs: the render parameters, the current camera
// pose, the viewport resolution and the elapsed time.
type Frame struct {
	Params params.Params

	// CamRot is the current (pitch, yaw) pair.
	CamRot mgl32.Vec2
	Zoom   float32
	LookAt mgl32.Vec3

	// Resolution is the viewport size in pixels.
	Resolution mgl32.Vec2
	// Time is the elapsed seconds since the loop started.
	Time float32
}

// GPU returns the std140-aligned uniform block for the frame.
//
// Returns:
//   - GPUFractalUniform: the GPU layout of the frame
func (f Frame) GPU() GPUFractalUniform {
	return GPUFractalUniform{
		Resolution: f.Resolution,
		CamRot:     f.CamRot,
		LookAt:     f.LookAt,
		Zoom:       f.Zoom,
		Color:      f.Params.Color,
		Power:      f.Params.Power,
		Param:      f.Params.Param,
		Time:       f.Time,
		LightPos:   f.Params.LightDir,
		Softness:   f.Params.Softness,
		MaxSteps:   f.Params.MaxSteps,
		AAQuality:  f.Params.AAQuality,
		HighRes:    flag(f.Params.Quality == params.QualityFull),
		ColorAnim:  flag(f.Params.ColorAnim),
		XRay:       flag(f.Params.XRay),
	}
}

func flag(on bool) float32 {
	if on {
		return 1
	}
	return 0
}
