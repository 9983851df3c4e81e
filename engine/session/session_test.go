package session

import (
	"math/rand/v2"
	"testing"

	"github.com/Carmen-Shannon/oxy-bulb/common"
	"github.com/Carmen-Shannon/oxy-bulb/engine/camera"
	"github.com/Carmen-Shannon/oxy-bulb/engine/params"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(options ...Option) *Session {
	options = append([]Option{WithRand(rand.New(rand.NewPCG(1, 2)))}, options...)
	return New(options...)
}

func TestScrollAwayFromDefaultZoom(t *testing.T) {
	s := newTestSession()
	s.Apply(ZoomDelta{Amount: 1})
	assert.InDelta(t, 3.08, s.Camera().Target.Zoom, 1e-12)
	assert.Equal(t, params.QualityPreview, s.Params().Quality)
}

func TestScrollTowardStepsByDistance(t *testing.T) {
	s := newTestSession()
	dist := s.SurfaceDistance()
	s.Apply(ZoomDelta{Amount: -1})
	want := camera.DefaultZoom - max(dist*ZoomInDistanceFraction, camera.DefaultZoom*ZoomInMinFraction)
	assert.InDelta(t, want, s.Camera().Target.Zoom, 1e-12)
}

func TestZoomStaysInBounds(t *testing.T) {
	s := newTestSession()
	for range 500 {
		s.Apply(ZoomDelta{Amount: -1})
		z := s.Camera().Target.Zoom
		require.GreaterOrEqual(t, z, camera.MinZoom)
		require.LessOrEqual(t, z, camera.MaxZoom)
	}
	for range 500 {
		s.Apply(ZoomDelta{Amount: 1})
		z := s.Camera().Target.Zoom
		require.GreaterOrEqual(t, z, camera.MinZoom)
		require.LessOrEqual(t, z, camera.MaxZoom)
	}
	assert.Equal(t, camera.MaxZoom, s.Camera().Target.Zoom)
}

func TestCenterLockBlocksPan(t *testing.T) {
	s := newTestSession(WithCamera(camera.NewState(camera.WithLookAt(0.3, -0.2, 0.1))))
	s.Apply(ToggleCenterLock{})
	require.True(t, s.Flags().CenterLock)
	assert.Equal(t, mgl64.Vec3{}, s.Camera().Target.LookAt)

	s.Apply(
		PointerDown{Button: common.MouseButtonSecondary, X: 100, Y: 100},
		PointerMove{X: 180, Y: 40},
		PanDelta{DX: 25, DY: -12},
		PointerUp{Button: common.MouseButtonSecondary},
	)
	assert.Equal(t, mgl64.Vec3{}, s.Camera().Target.LookAt)
}

func TestPanMovesAlongRightAndUp(t *testing.T) {
	s := newTestSession()
	right := s.Camera().Target.Right()
	sens := s.Sensitivity()

	s.Apply(PanDelta{DX: 10, DY: 5})
	look := s.Camera().Target.LookAt
	want := right.Mul(-10 * PanRate * sens).Add(mgl64.Vec3{0, 5 * PanRate * sens, 0})
	assert.InDeltaSlice(t, want[:], look[:], 1e-12)
	assert.Equal(t, params.QualityPreview, s.Params().Quality)
}

func TestOrbitDrag(t *testing.T) {
	s := newTestSession()
	sens := s.Sensitivity()
	require.Greater(t, sens, 0.0)

	s.Apply(
		PointerDown{Button: common.MouseButtonPrimary, X: 10, Y: 10},
		PointerMove{X: 30, Y: 20},
	)
	target := s.Camera().Target
	assert.InDelta(t, camera.DefaultYaw-20*OrbitRate*sens, target.Yaw, 1e-12)
	assert.InDelta(t, camera.DefaultPitch+10*OrbitRate*sens, target.Pitch, 1e-12)
	assert.True(t, s.Flags().Dragging)

	s.Apply(PointerUp{Button: common.MouseButtonPrimary})
	assert.False(t, s.Flags().Dragging)
}

func TestOrbitPitchAlwaysClamped(t *testing.T) {
	s := newTestSession()
	s.Apply(OrbitDelta{DX: 0, DY: 1e9})
	assert.Equal(t, camera.MaxPitch, s.Camera().Target.Pitch)
	s.Apply(OrbitDelta{DX: 0, DY: -1e12})
	assert.Equal(t, camera.MinPitch, s.Camera().Target.Pitch)
}

func TestMoveWithoutDragIsIgnored(t *testing.T) {
	s := newTestSession()
	s.Apply(RenderNow{})
	before := *s.Camera()
	s.Apply(PointerMove{X: 400, Y: 300})
	assert.Equal(t, before, *s.Camera())
	assert.Equal(t, params.QualityFull, s.Params().Quality)
}

func TestZeroDeltaKeepsQuality(t *testing.T) {
	s := newTestSession()
	s.Apply(RenderNow{}, OrbitDelta{}, PanDelta{})
	assert.Equal(t, params.QualityFull, s.Params().Quality)
}

func TestManualInputCancelsAutopilot(t *testing.T) {
	cases := map[string]Command{
		"orbit drag": PointerDown{Button: common.MouseButtonPrimary},
		"pan drag":   PointerDown{Button: common.MouseButtonSecondary},
		"wheel":      ZoomDelta{Amount: 1},
		"reset":      KeyPress{Code: common.KeyR},
	}
	for name, cmd := range cases {
		t.Run(name, func(t *testing.T) {
			s := newTestSession(WithAutopilot())
			require.True(t, s.Flags().Autopilot)
			s.Apply(cmd)
			assert.False(t, s.Flags().Autopilot)

			for i := range 120 {
				s.Tick(float64(i) / 60)
			}
			assert.False(t, s.Flags().Autopilot)
		})
	}
}

func TestMiddleButtonLeavesAutopilotOn(t *testing.T) {
	s := newTestSession(WithAutopilot())
	s.Apply(PointerDown{Button: common.MouseButtonMiddle})
	assert.True(t, s.Flags().Autopilot)
}

func TestAutopilotTickResetsQuality(t *testing.T) {
	s := newTestSession(WithAutopilot())
	s.Apply(RenderNow{})
	frame := s.Tick(1)
	assert.Equal(t, params.QualityPreview, frame.Params.Quality)
	assert.InDelta(t, camera.DefaultYaw+0.003, s.Camera().Target.Yaw, 1e-12)
}

func TestRenderNowPersistsUntilNextMutation(t *testing.T) {
	s := newTestSession()
	s.Apply(KeyPress{Code: common.KeyS})

	for i := range 3 {
		frame := s.Tick(float64(i))
		assert.Equal(t, params.QualityFull, frame.Params.Quality)
	}

	s.Apply(SetPower{Value: s.Params().Power})
	assert.Equal(t, params.QualityPreview, s.Tick(4).Params.Quality)
}

func TestResetView(t *testing.T) {
	s := newTestSession(WithCamera(camera.NewState(
		camera.WithPitch(1), camera.WithYaw(2), camera.WithZoom(5), camera.WithLookAt(1, 1, 1),
	)))
	s.Apply(RenderNow{}, KeyPress{Code: common.KeyR})

	target := s.Camera().Target
	assert.Equal(t, camera.Orbit{Pitch: camera.DefaultPitch, Yaw: camera.DefaultYaw, Zoom: camera.DefaultZoom}, target)
	assert.Equal(t, float64(5), s.Camera().Current.Zoom)
	assert.Equal(t, params.QualityPreview, s.Params().Quality)
}

func TestRandomizeKey(t *testing.T) {
	s := newTestSession()
	s.Apply(RenderNow{}, KeyPress{Code: common.KeySpace})

	p := s.Params()
	assert.GreaterOrEqual(t, p.Power, float32(params.RandomPowerMin))
	assert.LessOrEqual(t, p.Power, float32(params.RandomPowerMax))
	assert.Equal(t, params.QualityPreview, p.Quality)
}

func TestToggleKeys(t *testing.T) {
	s := newTestSession()
	s.Apply(
		KeyPress{Code: common.KeyA},
		KeyPress{Code: common.KeyL},
		KeyPress{Code: common.KeyX},
		KeyPress{Code: common.KeyC},
	)
	f := s.Flags()
	assert.True(t, f.Autopilot)
	assert.True(t, f.CenterLock)
	assert.True(t, f.ColorAnim)
	assert.True(t, s.Params().XRay)

	s.Apply(KeyPress{Code: common.KeyEsc}, KeyPress{Code: 'Q'})
	assert.Equal(t, f, s.Flags())
}

func TestSetParamText(t *testing.T) {
	s := newTestSession()
	s.Apply(SetParamText{Name: "power", Raw: "6.5"}, RenderNow{})
	assert.Equal(t, float32(6.5), s.Params().Power)

	before := s.Params()
	s.Apply(
		SetParamText{Name: "power", Raw: "abc"},
		SetParamText{Name: "nonsense", Raw: "1"},
	)
	assert.Equal(t, before, s.Params())
}

func TestTickAdvancesAndBuildsFrame(t *testing.T) {
	s := newTestSession()
	s.Apply(
		Resize{Width: 800, Height: 600},
		Resize{Width: 0, Height: 10},
		ZoomDelta{Amount: 1},
	)

	frame := s.Tick(2.5)
	cur := s.Camera().Current
	assert.InDelta(t, camera.DefaultZoom+0.1*(3.08-camera.DefaultZoom), cur.Zoom, 1e-12)
	assert.InDelta(t, cur.Zoom, float64(frame.Zoom), 1e-6)
	assert.InDelta(t, cur.Pitch, float64(frame.CamRot[0]), 1e-6)
	assert.InDelta(t, cur.Yaw, float64(frame.CamRot[1]), 1e-6)
	assert.Equal(t, float32(800), frame.Resolution[0])
	assert.Equal(t, float32(600), frame.Resolution[1])
	assert.Equal(t, float32(2.5), frame.Time)
	assert.Equal(t, 2.5, s.Elapsed())
}

func TestApplySkipsNil(t *testing.T) {
	s := newTestSession()
	assert.NotPanics(t, func() { s.Apply(nil, RenderNow{}, nil) })
	assert.Equal(t, params.QualityFull, s.Params().Quality)
}
