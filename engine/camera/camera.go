package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-bulb/common"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultPitch, DefaultYaw and DefaultZoom are the startup and reset orbit values.
	DefaultPitch = 0.2
	DefaultYaw   = 0.5
	DefaultZoom  = 2.8

	// MinPitch and MaxPitch bound the target pitch in radians.
	MinPitch = -1.5
	MaxPitch = 1.5

	// MinZoom and MaxZoom bound the target orbit radius.
	MinZoom = 1e-5
	MaxZoom = 10.0

	// DampingFactor is the fraction of the remaining delta the current state covers per Advance.
	DampingFactor = 0.1
)

// Orbit is an orbit-camera pose: spherical coordinates (pitch, yaw, zoom) around a look-at point.
type Orbit struct {
	// Pitch is the vertical angle from the horizontal plane, in radians.
	Pitch float64
	// Yaw is the horizontal angle around the Y axis, in radians (0 = +Z axis).
	Yaw float64
	// Zoom is the distance from the look-at point.
	Zoom float64
	// LookAt is the world-space orbit pivot.
	LookAt mgl64.Vec3
}

// EyePosition converts the orbit pose to a world-space eye position.
//
// Returns:
//   - mgl64.Vec3: zoom * (cos(pitch)sin(yaw), sin(pitch), cos(pitch)cos(yaw)) + lookAt
func (o Orbit) EyePosition() mgl64.Vec3 {
	cosPitch := math.Cos(o.Pitch)
	return mgl64.Vec3{
		o.Zoom * cosPitch * math.Sin(o.Yaw),
		o.Zoom * math.Sin(o.Pitch),
		o.Zoom * cosPitch * math.Cos(o.Yaw),
	}.Add(o.LookAt)
}

// Right returns the camera's horizontal right axis for the pose's yaw.
// It is cross(worldUp, backward) normalized, which reduces to (cos yaw, 0, -sin yaw)
// and is independent of pitch.
//
// Returns:
//   - mgl64.Vec3: the unit right vector
func (o Orbit) Right() mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(o.Yaw), 0, -math.Sin(o.Yaw)}
}

// State is the dual target/current camera. Input writes Target; Advance relaxes
// Current toward it once per frame tick.
type State struct {
	Target  Orbit
	Current Orbit
}

// NewState creates a camera State at the default pose with Current equal to Target.
//
// Parameters:
//   - options: functional options applied to both target and current pose
//
// Returns:
//   - *State: the newly created camera state
func NewState(options ...StateOption) *State {
	s := &State{
		Target: Orbit{
			Pitch: DefaultPitch,
			Yaw:   DefaultYaw,
			Zoom:  DefaultZoom,
		},
	}
	for _, option := range options {
		option(s)
	}
	s.Target.Pitch = common.Clamp(s.Target.Pitch, MinPitch, MaxPitch)
	s.Target.Zoom = common.Clamp(s.Target.Zoom, MinZoom, MaxZoom)
	s.Current = s.Target
	return s
}

// Advance moves every current field a fixed fraction (DampingFactor) of the way to
// its target. The step is per call, not scaled by wall-clock time.
func (s *State) Advance() {
	s.Current.Pitch = common.Damp(s.Current.Pitch, s.Target.Pitch, DampingFactor)
	s.Current.Yaw = common.Damp(s.Current.Yaw, s.Target.Yaw, DampingFactor)
	s.Current.Zoom = common.Damp(s.Current.Zoom, s.Target.Zoom, DampingFactor)
	s.Current.LookAt = common.DampVec3(s.Current.LookAt, s.Target.LookAt, DampingFactor)
}

// ResetToOrigin sets the target pose back to the defaults looking at the origin.
// Current is left alone and relaxes toward the reset pose.
func (s *State) ResetToOrigin() {
	s.Target = Orbit{
		Pitch: DefaultPitch,
		Yaw:   DefaultYaw,
		Zoom:  DefaultZoom,
	}
}

// SetTargetPitch sets the target pitch, clamped to [MinPitch, MaxPitch].
//
// Parameters:
//   - pitch: new pitch in radians
func (s *State) SetTargetPitch(pitch float64) {
	s.Target.Pitch = common.Clamp(pitch, MinPitch, MaxPitch)
}

// SetTargetZoom sets the target zoom, clamped to [MinZoom, MaxZoom].
//
// Parameters:
//   - zoom: new orbit radius
func (s *State) SetTargetZoom(zoom float64) {
	s.Target.Zoom = common.Clamp(zoom, MinZoom, MaxZoom)
}

// TargetEye returns the eye position of the target pose. Sensitivity queries use
// this instead of the lagging current pose.
//
// Returns:
//   - mgl64.Vec3: world-space eye position of the target pose
func (s *State) TargetEye() mgl64.Vec3 {
	return s.Target.EyePosition()
}
