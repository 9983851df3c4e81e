package engine

import (
	"github.com/Carmen-Shannon/oxy-bulb/engine/export"
	"github.com/Carmen-Shannon/oxy-bulb/engine/profiler"
	"github.com/Carmen-Shannon/oxy-bulb/engine/renderer"
	"github.com/Carmen-Shannon/oxy-bulb/engine/session"
	"github.com/Carmen-Shannon/oxy-bulb/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler ticked after each frame while profiling is enabled
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the loop tick rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickInterval(fps)
	}
}

// WithWindow sets the window whose message loop Run drives. Without a window, Run
// blocks until Quit.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithSurface sets the draw surface frames are sent to.
//
// Parameters:
//   - s: the surface, released when the engine shuts down
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSurface(s renderer.Surface) EngineBuilderOption {
	return func(e *engine) {
		e.surface = s
	}
}

// WithSession sets the session state the loop drives. The engine takes ownership:
// callers must not touch s after Run starts.
//
// Parameters:
//   - s: the session
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSession(s *session.Session) EngineBuilderOption {
	return func(e *engine) {
		e.session = s
	}
}

// WithExporter sets where exported frames are written.
//
// Parameters:
//   - x: the exporter, flushed when the engine shuts down
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithExporter(x export.Exporter) EngineBuilderOption {
	return func(e *engine) {
		e.exporter = x
	}
}

// WithFatalHandler sets the function called once when the surface is lost.
//
// Parameters:
//   - fn: receives the error that ended the session
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFatalHandler(fn func(err error)) EngineBuilderOption {
	return func(e *engine) {
		e.fatalHandler = fn
	}
}
