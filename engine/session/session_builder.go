package session

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-bulb/engine/camera"
	"github.com/Carmen-Shannon/oxy-bulb/engine/params"
)

// Option is a functional option for configuring a Session.
type Option func(*Session)

// WithCamera replaces the default camera state.
//
// Parameters:
//   - cam: the camera state to use
//
// Returns:
//   - Option: functional option to set the camera
func WithCamera(cam *camera.State) Option {
	return func(s *Session) {
		if cam != nil {
			s.camera = cam
		}
	}
}

// WithParams replaces the default render parameters.
//
// Parameters:
//   - p: the initial parameters
//
// Returns:
//   - Option: functional option to set the parameters
func WithParams(p params.Params) Option {
	return func(s *Session) {
		s.params = p
	}
}

// WithResolution sets the initial viewport size.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - Option: functional option to set the resolution
func WithResolution(width, height int) Option {
	return func(s *Session) {
		s.width, s.height = width, height
	}
}

// WithRand sets the random source used by Randomize. Tests pass a seeded source
// for deterministic replay.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - Option: functional option to set the random source
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithAutopilot starts the session with the autopilot ON.
//
// Returns:
//   - Option: functional option to enable the autopilot
func WithAutopilot() Option {
	return func(s *Session) {
		if !s.autopilot.Active() {
			s.autopilot.Toggle()
		}
	}
}
