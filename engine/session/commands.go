package session

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-bulb/common"
	"github.com/Carmen-Shannon/oxy-bulb/engine/params"
	"github.com/go-gl/mathgl/mgl64"
)

// Command is a single state mutation funneled through Session.Apply.
type Command interface {
	apply(s *Session)
}

// PointerDown starts an orbit drag (primary button) or pan drag (secondary button).
// Either cancels the autopilot.
type PointerDown struct {
	Button int
	X, Y   float64
}

// PointerUp ends any drag in progress.
type PointerUp struct {
	Button int
}

// PointerMove is a pointer motion sample in pixels. It is ignored unless a drag is active.
type PointerMove struct {
	X, Y float64
}

// OrbitDelta orbits the target pose by a pixel delta.
type OrbitDelta struct {
	DX, DY float64
}

// PanDelta moves the target look-at point by a pixel delta. Ignored under center lock.
type PanDelta struct {
	DX, DY float64
}

// ZoomDelta is a wheel step. Positive Amount scrolls away from the surface,
// negative scrolls toward it. The magnitude is not used. Cancels the autopilot.
type ZoomDelta struct {
	Amount float64
}

// KeyPress is a key-down event with a GLFW key code.
type KeyPress struct {
	Code uint32
}

// Resize forwards new viewport dimensions in pixels.
type Resize struct {
	Width, Height int
}

// Parameter updates. Each applies its value through the matching params setter,
// which resets quality to PREVIEW even when the value is unchanged.
type (
	// SetPower sets the bulb exponent.
	SetPower struct{ Value float32 }
	// SetColor sets the base colour from normalized components.
	SetColor struct{ R, G, B float32 }
	// SetMaxSteps sets the ray-march step budget.
	SetMaxSteps struct{ Value int32 }
	// SetAAQuality sets the per-axis supersampling level.
	SetAAQuality struct{ Value int32 }
	// SetSoftness sets the surface epsilon.
	SetSoftness struct{ Value float32 }
	// SetLightAngle points the light from an angle around the Y axis.
	SetLightAngle struct{ Radians float32 }
	// SetColorAnim switches colour cycling.
	SetColorAnim struct{ On bool }
	// SetXRay switches the x-ray shading mode.
	SetXRay struct{ On bool }

	// SetFreeParam sets one of the three free shape parameters.
	SetFreeParam struct {
		Axis  params.Axis
		Value float32
	}

	// SetParamText sets a parameter from unparsed text. Malformed input is logged and dropped.
	SetParamText struct {
		Name string
		Raw  string
	}

	// ToggleColorAnim flips colour cycling.
	ToggleColorAnim struct{}
	// ToggleXRay flips the x-ray shading mode.
	ToggleXRay struct{}
	// ToggleAutopilot switches the autopilot ON or OFF.
	ToggleAutopilot struct{}
	// ToggleCenterLock flips the centre lock. Engaging it moves the target look-at
	// to the origin and disables panning.
	ToggleCenterLock struct{}

	// Randomize re-rolls exponent, free parameters and colour.
	Randomize struct{}
	// ResetView resets the target pose and stops the autopilot.
	ResetView struct{}
	// RenderNow requests a FULL quality draw without changing any parameter.
	RenderNow struct{}
)

func (c PointerDown) apply(s *Session) {
	switch c.Button {
	case common.MouseButtonPrimary:
		s.dragging = true
		s.autopilot.Stop()
	case common.MouseButtonSecondary:
		s.rightDragging = true
		s.autopilot.Stop()
	}
	s.pointerX, s.pointerY = c.X, c.Y
}

func (c PointerUp) apply(s *Session) {
	s.dragging = false
	s.rightDragging = false
}

func (c PointerMove) apply(s *Session) {
	if !s.dragging && !s.rightDragging {
		return
	}
	dx, dy := c.X-s.pointerX, c.Y-s.pointerY
	s.drag(dx, dy, s.dragging, s.rightDragging)
	s.pointerX, s.pointerY = c.X, c.Y
}

func (c OrbitDelta) apply(s *Session) { s.drag(c.DX, c.DY, true, false) }
func (c PanDelta) apply(s *Session)   { s.drag(c.DX, c.DY, false, true) }
func (c ZoomDelta) apply(s *Session)  { s.zoom(c.Amount > 0) }
func (c KeyPress) apply(s *Session)   { s.key(c.Code) }

func (c Resize) apply(s *Session) {
	if c.Width <= 0 || c.Height <= 0 {
		return
	}
	s.width, s.height = c.Width, c.Height
}

func (c SetPower) apply(s *Session)      { s.params.SetPower(c.Value) }
func (c SetColor) apply(s *Session)      { s.params.SetColor(c.R, c.G, c.B) }
func (c SetFreeParam) apply(s *Session)  { s.params.SetFreeParam(c.Axis, c.Value) }
func (c SetMaxSteps) apply(s *Session)   { s.params.SetMaxSteps(c.Value) }
func (c SetAAQuality) apply(s *Session)  { s.params.SetAAQuality(c.Value) }
func (c SetSoftness) apply(s *Session)   { s.params.SetSoftness(c.Value) }
func (c SetLightAngle) apply(s *Session) { s.params.SetLightAngle(c.Radians) }
func (c SetColorAnim) apply(s *Session)  { s.params.SetColorAnim(c.On) }
func (c SetXRay) apply(s *Session)       { s.params.SetXRay(c.On) }

func (c SetParamText) apply(s *Session) {
	if err := s.params.Parse(c.Name, c.Raw); err != nil {
		slog.Warn("ignoring parameter update", "field", c.Name, "value", c.Raw, "err", err)
	}
}

func (ToggleColorAnim) apply(s *Session) { s.params.SetColorAnim(!s.params.ColorAnim) }
func (ToggleXRay) apply(s *Session)      { s.params.SetXRay(!s.params.XRay) }
func (ToggleAutopilot) apply(s *Session) { s.autopilot.Toggle() }

func (ToggleCenterLock) apply(s *Session) {
	s.centerLock = !s.centerLock
	if s.centerLock {
		s.camera.Target.LookAt = mgl64.Vec3{}
	}
}

func (Randomize) apply(s *Session) { s.params.Randomize(s.rng) }
func (ResetView) apply(s *Session) { s.resetView() }
func (RenderNow) apply(s *Session) { s.params.RequestFull() }
