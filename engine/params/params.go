// Package params holds the tunable render parameters read by the shader each frame.
//
// Every setter marks the parameters for a PREVIEW pass, including setters that
// write a value equal to the current one. Only RequestFull raises the quality to FULL.
package params

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// Quality selects between the cheap interactive pass and the high-cost final pass.
type Quality int

const (
	// QualityPreview is the interactive pass used while anything is changing.
	QualityPreview Quality = iota

	// QualityFull is the final pass requested by render-now or export.
	QualityFull
)

func (q Quality) String() string {
	if q == QualityFull {
		return "FULL"
	}
	return "PREVIEW"
}

// Axis identifies one of the three free shape parameters.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Randomize ranges.
const (
	RandomPowerMin = 4.0
	RandomPowerMax = 12.0

	RandomParamXMin = 0.8
	RandomParamXMax = 2.0
	RandomParamYMin = 0.2
	RandomParamYMax = 1.5
	RandomParamZMin = 0.5
	RandomParamZMax = 1.6

	randomSaturation = 0.7
	randomLightness  = 0.6

	// lightHeight is the fixed Y component of the light direction.
	lightHeight = 0.7
)

// Params is the render parameter store.
type Params struct {
	// Power is the bulb exponent.
	Power float32
	// Color is the base colour, normalized RGB.
	Color mgl32.Vec3
	// Param holds the three free shape parameters.
	Param mgl32.Vec3
	// MaxSteps is the ray-march step budget.
	MaxSteps int32
	// AAQuality is the per-axis supersampling level (n x n samples).
	AAQuality int32
	// Softness is the surface epsilon.
	Softness float32
	// LightDir is the light direction, derived from an angle.
	LightDir mgl32.Vec3
	// ColorAnim enables colour cycling in the shader.
	ColorAnim bool
	// XRay enables the x-ray shading mode.
	XRay bool
	// Quality is the pass the next draw should use.
	Quality Quality
}

// Default returns the startup parameter set.
//
// Returns:
//   - Params: default parameters with PREVIEW quality
func Default() Params {
	return Params{
		Power:     8.0,
		Color:     mgl32.Vec3{0.5, 0.8, 1.0},
		Param:     mgl32.Vec3{1.2, 0.5, 1.0},
		MaxSteps:  200,
		AAQuality: 2,
		Softness:  0.001,
		LightDir:  mgl32.Vec3{0.8, 0.7, 0.6},
		Quality:   QualityPreview,
	}
}

// MarkPreview resets quality to PREVIEW without touching any other field.
func (p *Params) MarkPreview() {
	p.Quality = QualityPreview
}

// RequestFull raises quality to FULL. It stays FULL until the next mutation.
func (p *Params) RequestFull() {
	p.Quality = QualityFull
}

// SetPower sets the bulb exponent and resets quality to PREVIEW.
//
// Parameters:
//   - v: the new exponent
func (p *Params) SetPower(v float32) {
	p.Power = v
	p.MarkPreview()
}

// SetColor sets the base colour and resets quality to PREVIEW.
//
// Parameters:
//   - r, g, b: normalized colour components
func (p *Params) SetColor(r, g, b float32) {
	p.Color = mgl32.Vec3{r, g, b}
	p.MarkPreview()
}

// SetFreeParam sets one component of the free shape parameters.
//
// Parameters:
//   - axis: which component to set
//   - v: the new value
func (p *Params) SetFreeParam(axis Axis, v float32) {
	switch axis {
	case AxisX:
		p.Param[0] = v
	case AxisY:
		p.Param[1] = v
	case AxisZ:
		p.Param[2] = v
	}
	p.MarkPreview()
}

// SetMaxSteps sets the ray-march step budget and resets quality to PREVIEW.
//
// Parameters:
//   - v: the positive step count
func (p *Params) SetMaxSteps(v int32) {
	p.MaxSteps = v
	p.MarkPreview()
}

// SetAAQuality sets the per-axis supersampling level and resets quality to PREVIEW.
//
// Parameters:
//   - v: the positive sample count per axis
func (p *Params) SetAAQuality(v int32) {
	p.AAQuality = v
	p.MarkPreview()
}

// SetSoftness sets the surface epsilon and resets quality to PREVIEW.
//
// Parameters:
//   - v: the positive epsilon
func (p *Params) SetSoftness(v float32) {
	p.Softness = v
	p.MarkPreview()
}

// SetLightAngle points the light at (cos a, 0.7, sin a).
//
// Parameters:
//   - radians: the light's angle around the Y axis
func (p *Params) SetLightAngle(radians float32) {
	p.LightDir = mgl32.Vec3{math32.Cos(radians), lightHeight, math32.Sin(radians)}
	p.MarkPreview()
}

// SetColorAnim switches colour cycling and resets quality to PREVIEW.
//
// Parameters:
//   - on: true to animate the colour
func (p *Params) SetColorAnim(on bool) {
	p.ColorAnim = on
	p.MarkPreview()
}

// SetXRay switches the x-ray shading mode and resets quality to PREVIEW.
//
// Parameters:
//   - on: true to enable x-ray shading
func (p *Params) SetXRay(on bool) {
	p.XRay = on
	p.MarkPreview()
}

// Randomize re-rolls the exponent, the free parameters and the colour (random hue
// at fixed saturation and lightness).
//
// Parameters:
//   - rng: the random source
func (p *Params) Randomize(rng *rand.Rand) {
	p.Power = float32(RandomPowerMin + rng.Float64()*(RandomPowerMax-RandomPowerMin))

	c := colorful.Hsl(rng.Float64()*360, randomSaturation, randomLightness)
	p.Color = mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}

	p.Param = mgl32.Vec3{
		float32(RandomParamXMin + rng.Float64()*(RandomParamXMax-RandomParamXMin)),
		float32(RandomParamYMin + rng.Float64()*(RandomParamYMax-RandomParamYMin)),
		float32(RandomParamZMin + rng.Float64()*(RandomParamZMax-RandomParamZMin)),
	}
	p.MarkPreview()
}
