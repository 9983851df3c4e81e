package session

import (
	"github.com/Carmen-Shannon/oxy-bulb/engine/uniform"
	"github.com/go-gl/mathgl/mgl32"
)

// Tick advances one frame: the autopilot writes targets if ON, the current pose
// relaxes toward the targets, and the resulting draw parameters are returned.
// Damping is a fixed fraction per call, so motion speed follows the tick rate.
//
// Parameters:
//   - elapsed: seconds since the loop started
//
// Returns:
//   - uniform.Frame: the parameter surface for this frame's draw
func (s *Session) Tick(elapsed float64) uniform.Frame {
	s.elapsed = elapsed
	if s.autopilot.Step(s.camera, elapsed) {
		s.params.MarkPreview()
	}
	s.camera.Advance()
	return s.Frame()
}

// Frame returns the parameter surface for the current state without advancing it.
//
// Returns:
//   - uniform.Frame: the current draw parameters
func (s *Session) Frame() uniform.Frame {
	cur := s.camera.Current
	return uniform.Frame{
		Params:     s.params,
		CamRot:     mgl32.Vec2{float32(cur.Pitch), float32(cur.Yaw)},
		Zoom:       float32(cur.Zoom),
		LookAt:     mgl32.Vec3{float32(cur.LookAt[0]), float32(cur.LookAt[1]), float32(cur.LookAt[2])},
		Resolution: mgl32.Vec2{float32(s.width), float32(s.height)},
		Time:       float32(s.elapsed),
	}
}
