// Package autopilot drives the camera targets from elapsed time when no one is
// steering. Manual input turns it off; nothing but an explicit toggle turns it on.
package autopilot

import (
	"math"

	"github.com/Carmen-Shannon/oxy-bulb/engine/camera"
)

const (
	// YawStep is the target yaw increment applied per tick.
	YawStep = 0.003

	PitchCenter    = 0.2
	PitchAmplitude = 0.2
	PitchRate      = 0.5

	ZoomCenter    = 2.8
	ZoomAmplitude = 0.5
	ZoomRate      = 0.3
)

// Oscillator is the OFF/ON autopilot state machine.
type Oscillator struct {
	on bool
}

// Active reports whether the autopilot is ON.
func (o *Oscillator) Active() bool {
	return o.on
}

// Toggle flips between OFF and ON.
func (o *Oscillator) Toggle() {
	o.on = !o.on
}

// Stop forces the autopilot OFF.
//
// Returns:
//   - bool: true if the autopilot was ON before the call
func (o *Oscillator) Stop() bool {
	wasOn := o.on
	o.on = false
	return wasOn
}

// Step writes the oscillator's targets for elapsed time t into cam when ON.
//
// Parameters:
//   - cam: the camera whose targets are overridden
//   - t: elapsed seconds since the loop started
//
// Returns:
//   - bool: true if targets were written
func (o *Oscillator) Step(cam *camera.State, t float64) bool {
	if !o.on {
		return false
	}
	cam.Target.Yaw += YawStep
	cam.SetTargetPitch(PitchCenter + PitchAmplitude*math.Sin(PitchRate*t))
	cam.SetTargetZoom(ZoomCenter + ZoomAmplitude*math.Cos(ZoomRate*t))
	return true
}
