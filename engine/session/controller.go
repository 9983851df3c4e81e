package session

import (
	"github.com/Carmen-Shannon/oxy-bulb/common"
	"github.com/Carmen-Shannon/oxy-bulb/engine/camera"
	"github.com/Carmen-Shannon/oxy-bulb/engine/fractal"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// OrbitRate and PanRate scale pixel deltas before sensitivity is applied.
	OrbitRate = 0.005
	PanRate   = 0.002

	// ZoomOutFactor multiplies the target zoom per scroll-away step.
	ZoomOutFactor = 1.1
	// ZoomInDistanceFraction is the share of the surface distance covered per scroll-toward step.
	ZoomInDistanceFraction = 0.3
	// ZoomInMinFraction is the minimum scroll-toward step as a share of the current zoom.
	ZoomInMinFraction = 0.0001

	// distanceSensitivityScale converts the surface distance to a drag multiplier.
	distanceSensitivityScale = 1.5
)

// SurfaceDistance returns the clamped distance estimate from the target eye
// position to the surface centred at the target look-at point.
//
// Returns:
//   - float64: finite distance no smaller than fractal.MinDistance
func (s *Session) SurfaceDistance() float64 {
	d := fractal.Estimate(s.camera.TargetEye(), s.camera.Target.LookAt, float64(s.params.Power))
	return fractal.SafeDistance(d)
}

// Sensitivity scales drag input by proximity to visible surface detail. Far from
// the surface it is bounded by the zoom ratio to the default zoom.
//
// Returns:
//   - float64: the drag multiplier
func (s *Session) Sensitivity() float64 {
	return min(s.camera.Target.Zoom/camera.DefaultZoom, s.SurfaceDistance()*distanceSensitivityScale)
}

// drag applies one motion sample as an orbit and/or pan of the target pose.
func (s *Session) drag(dx, dy float64, orbit, pan bool) {
	if dx == 0 && dy == 0 {
		return
	}
	sensitivity := s.Sensitivity()

	if orbit {
		s.camera.Target.Yaw -= dx * OrbitRate * sensitivity
		s.camera.SetTargetPitch(s.camera.Target.Pitch + dy*OrbitRate*sensitivity)
	}

	if pan && !s.centerLock {
		side := s.camera.Target.Right().Mul(-dx * PanRate * sensitivity)
		up := mgl64.Vec3{0, 1, 0}.Mul(dy * PanRate * sensitivity)
		s.camera.Target.LookAt = s.camera.Target.LookAt.Add(side).Add(up)
	}

	s.params.MarkPreview()
}

// zoom applies one wheel step and cancels the autopilot.
func (s *Session) zoom(away bool) {
	s.autopilot.Stop()

	dist := s.SurfaceDistance()
	z := s.camera.Target.Zoom
	if away {
		z *= ZoomOutFactor
	} else {
		z -= max(dist*ZoomInDistanceFraction, z*ZoomInMinFraction)
	}
	s.camera.SetTargetZoom(z)

	s.params.MarkPreview()
}

func (s *Session) resetView() {
	s.camera.ResetToOrigin()
	s.params.MarkPreview()
	s.autopilot.Stop()
}

// key maps the keyboard shortcuts. Unbound keys are ignored.
func (s *Session) key(code uint32) {
	switch code {
	case common.KeySpace:
		s.params.Randomize(s.rng)
	case common.KeyR:
		s.resetView()
	case common.KeyS:
		s.params.RequestFull()
	case common.KeyA:
		s.autopilot.Toggle()
	case common.KeyL:
		ToggleCenterLock{}.apply(s)
	case common.KeyX:
		ToggleXRay{}.apply(s)
	case common.KeyC:
		ToggleColorAnim{}.apply(s)
	}
}
