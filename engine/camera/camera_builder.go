package camera

import "github.com/go-gl/mathgl/mgl64"

// StateOption is a functional option for configuring a camera State.
type StateOption func(*State)

// WithPitch sets the initial pitch.
//
// Parameters:
//   - pitch: vertical angle in radians (clamped to [MinPitch, MaxPitch])
//
// Returns:
//   - StateOption: functional option to set the pitch
func WithPitch(pitch float64) StateOption {
	return func(s *State) {
		s.Target.Pitch = pitch
	}
}

// WithYaw sets the initial yaw.
//
// Parameters:
//   - yaw: horizontal angle in radians (0 = +Z axis)
//
// Returns:
//   - StateOption: functional option to set the yaw
func WithYaw(yaw float64) StateOption {
	return func(s *State) {
		s.Target.Yaw = yaw
	}
}

// WithZoom sets the initial orbit radius.
//
// Parameters:
//   - zoom: distance from the look-at point (clamped to [MinZoom, MaxZoom])
//
// Returns:
//   - StateOption: functional option to set the zoom
func WithZoom(zoom float64) StateOption {
	return func(s *State) {
		s.Target.Zoom = zoom
	}
}

// WithLookAt sets the initial look-at point.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - StateOption: functional option to set the look-at point
func WithLookAt(x, y, z float64) StateOption {
	return func(s *State) {
		s.Target.LookAt = mgl64.Vec3{x, y, z}
	}
}
