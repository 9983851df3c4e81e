package params

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullParams() Params {
	p := Default()
	p.RequestFull()
	return p
}

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, float32(8), p.Power)
	assert.Equal(t, mgl32.Vec3{0.5, 0.8, 1.0}, p.Color)
	assert.Equal(t, mgl32.Vec3{1.2, 0.5, 1.0}, p.Param)
	assert.Equal(t, int32(200), p.MaxSteps)
	assert.Equal(t, int32(2), p.AAQuality)
	assert.Equal(t, QualityPreview, p.Quality)
}

func TestEverySetterResetsQuality(t *testing.T) {
	setters := map[string]func(p *Params){
		"power":       func(p *Params) { p.SetPower(p.Power) },
		"color":       func(p *Params) { p.SetColor(p.Color[0], p.Color[1], p.Color[2]) },
		"param":       func(p *Params) { p.SetFreeParam(AxisY, p.Param[1]) },
		"max_steps":   func(p *Params) { p.SetMaxSteps(p.MaxSteps) },
		"aa_quality":  func(p *Params) { p.SetAAQuality(p.AAQuality) },
		"softness":    func(p *Params) { p.SetSoftness(p.Softness) },
		"light_angle": func(p *Params) { p.SetLightAngle(0) },
		"color_anim":  func(p *Params) { p.SetColorAnim(p.ColorAnim) },
		"xray":        func(p *Params) { p.SetXRay(p.XRay) },
		"randomize":   func(p *Params) { p.Randomize(rand.New(rand.NewPCG(1, 2))) },
	}
	for name, set := range setters {
		t.Run(name, func(t *testing.T) {
			p := fullParams()
			set(&p)
			assert.Equal(t, QualityPreview, p.Quality)
		})
	}
}

func TestSetFreeParamAxes(t *testing.T) {
	p := Default()
	p.SetFreeParam(AxisX, 1)
	p.SetFreeParam(AxisY, 2)
	p.SetFreeParam(AxisZ, 3)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, p.Param)
}

func TestSetLightAngle(t *testing.T) {
	p := Default()
	p.SetLightAngle(math.Pi / 2)
	assert.InDelta(t, 0, p.LightDir[0], 1e-6)
	assert.InDelta(t, 0.7, p.LightDir[1], 1e-6)
	assert.InDelta(t, 1, p.LightDir[2], 1e-6)
}

func TestRandomizeRanges(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	p := Default()
	for range 500 {
		p.Randomize(rng)
		require.GreaterOrEqual(t, p.Power, float32(RandomPowerMin))
		require.LessOrEqual(t, p.Power, float32(RandomPowerMax))
		require.GreaterOrEqual(t, p.Param[0], float32(RandomParamXMin))
		require.LessOrEqual(t, p.Param[0], float32(RandomParamXMax))
		require.GreaterOrEqual(t, p.Param[1], float32(RandomParamYMin))
		require.LessOrEqual(t, p.Param[1], float32(RandomParamYMax))
		require.GreaterOrEqual(t, p.Param[2], float32(RandomParamZMin))
		require.LessOrEqual(t, p.Param[2], float32(RandomParamZMax))
		for i := range 3 {
			require.GreaterOrEqual(t, p.Color[i], float32(-1e-6))
			require.LessOrEqual(t, p.Color[i], float32(1+1e-6))
		}
	}
}

func TestParseField(t *testing.T) {
	f, err := ParseField("Param-X")
	require.NoError(t, err)
	assert.Equal(t, FieldParamX, f)
	assert.Equal(t, "param_x", f.String())

	_, err = ParseField("gamma")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSetText(t *testing.T) {
	p := fullParams()
	require.NoError(t, p.SetText(FieldColor, "#ff0000"))
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, p.Color)
	assert.Equal(t, QualityPreview, p.Quality)

	require.NoError(t, p.SetText(FieldPower, " 9.5 "))
	assert.Equal(t, float32(9.5), p.Power)

	require.NoError(t, p.SetText(FieldMaxSteps, "350"))
	assert.Equal(t, int32(350), p.MaxSteps)

	require.NoError(t, p.SetText(FieldXRay, "true"))
	assert.True(t, p.XRay)
}

func TestSetTextRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		field Field
		raw   string
	}{
		{FieldPower, "abc"},
		{FieldPower, "NaN"},
		{FieldParamZ, ""},
		{FieldSoftness, "-1"},
		{FieldAAQuality, "0"},
		{FieldMaxSteps, "1.5"},
		{FieldColor, "blue"},
		{FieldColorAnim, "maybe"},
	}
	for _, tc := range cases {
		p := fullParams()
		before := p
		err := p.SetText(tc.field, tc.raw)
		assert.ErrorIs(t, err, ErrInvalidValue, "%s=%q", tc.field, tc.raw)
		assert.Equal(t, before, p, "%s=%q must be a no-op", tc.field, tc.raw)
	}
}

func TestParse(t *testing.T) {
	p := fullParams()
	require.NoError(t, p.Parse("color", "#ff0000"))
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, p.Color)

	before := p
	assert.ErrorIs(t, p.Parse("power", "abc"), ErrInvalidValue)
	assert.ErrorIs(t, p.Parse("shininess", "1"), ErrUnknownField)
	assert.Equal(t, before, p)
}
