package engine

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-bulb/engine/config"
	"github.com/Carmen-Shannon/oxy-bulb/engine/export"
	"github.com/Carmen-Shannon/oxy-bulb/engine/profiler"
	"github.com/Carmen-Shannon/oxy-bulb/engine/renderer"
	"github.com/Carmen-Shannon/oxy-bulb/engine/session"
	"github.com/Carmen-Shannon/oxy-bulb/engine/window"
)

// commandQueueSize bounds how many input commands may wait between two ticks.
const commandQueueSize = 256

// engine implements the Engine interface.
// The loop goroutine is the only reader and writer of the session.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates
	commandChannel  chan session.Command
	exportChannel   chan struct{}

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel  chan struct{}
	quitOnce     sync.Once // Ensures quitChannel is only closed once
	fatalOnce    sync.Once
	shutdownOnce sync.Once

	window   window.Window
	surface  renderer.Surface
	session  *session.Session
	exporter export.Exporter

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	start          time.Time
	lastStep       time.Time
	renderCallback func(deltaTime float32)
	fatalHandler   func(err error)
}

// Engine drives the fractal viewer: it owns the session, applies queued input,
// advances the render loop each tick and hands frames to the draw surface.
type Engine interface {
	// Submit queues commands for the next tick. Safe to call from any goroutine.
	//
	// Parameters:
	//   - cmds: the commands to apply, in order
	Submit(cmds ...session.Command)

	// RequestExport asks the loop to render one FULL-quality frame, capture it and
	// hand it to the exporter. Requests made before the next tick collapse into one.
	RequestExport()

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the render loop rate in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetRenderCallback registers the function called after each drawn frame, on the
	// loop goroutine.
	//
	// Parameters:
	//   - callback: receives the seconds since the previous frame
	SetRenderCallback(callback func(deltaTime float32))

	// Run starts the loop and blocks until the window closes, Quit is called, or
	// the surface is lost. Resources are released before it returns.
	Run()

	// Quit signals the loop to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (surface, session, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel:  make(chan time.Duration, 1),
		commandChannel:   make(chan session.Command, commandQueueSize),
		exportChannel:    make(chan struct{}, 1),
		quitChannel:      make(chan struct{}),
		wg:               sync.WaitGroup{},
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
		fatalHandler: func(err error) {
			slog.Error("rendering stopped", "error", err)
		},
	}

	for _, opt := range options {
		opt(e)
	}

	if e.session == nil {
		e.session = session.New()
	}
	e.start = time.Now()
	e.lastStep = e.start

	return e
}

func (e *engine) Submit(cmds ...session.Command) {
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		select {
		case e.commandChannel <- cmd:
		case <-e.quitChannel:
			return
		}
	}
}

func (e *engine) RequestExport() {
	select {
	case e.exportChannel <- struct{}{}:
	default:
	}
}

func (e *engine) Run() {
	if !e.running.CompareAndSwap(false, true) {
		return
	}
	e.handle()
	if e.window != nil {
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.quitChannel:
				e.shutdown()
			default:
			}
		})
		e.window.ProcessMessages()
		e.signalQuit()
	} else {
		<-e.quitChannel
	}
	e.shutdown()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// shutdown waits for the loop to exit, then releases the surface before the
// window it was created from. Runs on the window's thread.
func (e *engine) shutdown() {
	e.shutdownOnce.Do(func() {
		e.wg.Wait()
		if e.exporter != nil {
			e.exporter.Flush()
		}
		if e.surface != nil {
			e.surface.Release()
		}
		if e.window != nil {
			if err := e.window.Close(); err != nil {
				slog.Warn("failed to close window", "error", err)
			}
		}
	})
}

// handle launches the loop and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.start = time.Now()
	e.lastStep = e.start
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleQuit()
}

// handleEngine runs the fixed-rate loop in its own goroutine and listens for
// dynamic rate changes via tickRateChannel. Exits when the quit channel is closed.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("render loop recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	for {
		select {
		case <-e.quitChannel:
			return
		case now := <-ticker.C:
			e.step(now)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// step is one iteration of the render loop: apply queued input, serve a pending
// export, advance the session and draw.
func (e *engine) step(now time.Time) {
	e.drainCommands()

	select {
	case <-e.exportChannel:
		if !e.export(now) {
			return
		}
	default:
	}

	frame := e.session.Tick(now.Sub(e.start).Seconds())
	if e.surface != nil {
		if err := e.surface.Draw(frame); err != nil {
			if e.surfaceError(err) {
				return
			}
		}
	}

	if e.renderCallback != nil {
		e.renderCallback(float32(now.Sub(e.lastStep).Seconds()))
	}
	e.lastStep = now

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

func (e *engine) drainCommands() {
	for {
		select {
		case cmd := <-e.commandChannel:
			e.session.Apply(cmd)
			// zero sizes still reach the surface so a minimized window stops drawing
			if r, ok := cmd.(session.Resize); ok && e.surface != nil {
				e.surface.Resize(r.Width, r.Height)
			}
		default:
			return
		}
	}
}

// export renders the current view at FULL quality and queues it for writing.
// It returns false if the surface was lost.
func (e *engine) export(now time.Time) bool {
	if e.surface == nil || e.exporter == nil {
		slog.Warn("export requested without a surface and exporter")
		return true
	}

	e.session.Apply(session.RenderNow{})
	img, err := e.surface.Capture(e.session.Frame())
	if err != nil {
		return !e.surfaceError(err)
	}

	snap := export.Snapshot{
		Camera: config.FromCamera(e.session.Camera().Current),
		Params: config.FromParams(e.session.Params()),
	}
	e.exporter.Save(img, snap, now)
	return true
}

// surfaceError logs transient draw failures. A lost surface ends the session: the
// fatal handler runs once and the loop quits. It reports whether the error was fatal.
func (e *engine) surfaceError(err error) bool {
	if !errors.Is(err, renderer.ErrSurfaceLost) {
		slog.Warn("draw failed", "error", err)
		return false
	}
	e.fatalOnce.Do(func() {
		if e.fatalHandler != nil {
			e.fatalHandler(err)
		}
	})
	e.signalQuit()
	return true
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderCallback registers the function called after each drawn frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetTickRate sets the loop tick rate in frames per second.
// The loop picks the rate up on its next select, or on start if it is not running yet.
// Safe to call from any goroutine.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)

	// Non-blocking send - if channel is full, replace the pending value
	for {
		select {
		case e.tickRateChannel <- newRate:
			return
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
		}
	}
}

func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}
