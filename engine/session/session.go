// Package session owns the viewer's mutable state: camera, render parameters,
// interaction flags and autopilot. All mutation goes through Apply with command
// values, and Tick advances one frame. A Session is not safe for concurrent use;
// the engine serializes input and ticks on one goroutine.
package session

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-bulb/engine/autopilot"
	"github.com/Carmen-Shannon/oxy-bulb/engine/camera"
	"github.com/Carmen-Shannon/oxy-bulb/engine/params"
)

// Flags is a snapshot of the interaction flags.
type Flags struct {
	Dragging      bool
	RightDragging bool
	CenterLock    bool
	Autopilot     bool
	ColorAnim     bool
}

// Session is the single explicit session state.
type Session struct {
	camera    *camera.State
	params    params.Params
	autopilot autopilot.Oscillator

	dragging      bool
	rightDragging bool
	centerLock    bool

	// pointer is the last pointer position seen during a drag.
	pointerX, pointerY float64

	width, height int
	elapsed       float64

	rng *rand.Rand
}

// New creates a Session with default camera, parameters and a 1280x720 viewport.
//
// Parameters:
//   - options: functional options to configure the session
//
// Returns:
//   - *Session: the newly created session
func New(options ...Option) *Session {
	s := &Session{
		camera: camera.NewState(),
		params: params.Default(),
		width:  1280,
		height: 720,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Camera returns the session's camera state. Callers must not mutate it outside Apply.
func (s *Session) Camera() *camera.State {
	return s.camera
}

// Params returns a copy of the current render parameters.
func (s *Session) Params() params.Params {
	return s.params
}

// Flags returns a snapshot of the interaction flags.
func (s *Session) Flags() Flags {
	return Flags{
		Dragging:      s.dragging,
		RightDragging: s.rightDragging,
		CenterLock:    s.centerLock,
		Autopilot:     s.autopilot.Active(),
		ColorAnim:     s.params.ColorAnim,
	}
}

// Resolution returns the viewport size in pixels.
func (s *Session) Resolution() (width, height int) {
	return s.width, s.height
}

// Elapsed returns the elapsed time passed to the most recent Tick.
func (s *Session) Elapsed() float64 {
	return s.elapsed
}

// Apply runs commands against the session in order.
//
// Parameters:
//   - cmds: the commands to apply
func (s *Session) Apply(cmds ...Command) {
	for _, cmd := range cmds {
		if cmd != nil {
			cmd.apply(s)
		}
	}
}
