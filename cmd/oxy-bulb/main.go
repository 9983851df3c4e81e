// Command oxy-bulb opens an interactive ray-marched power-bulb viewer.
//
// Drag with the left button to orbit, the right button to pan and scroll to zoom.
// Space randomizes the shape, R resets the view, S renders one full-quality frame,
// P exports it as a PNG, A toggles the autopilot, L the centre lock, X the x-ray
// mode and C the colour animation.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/Carmen-Shannon/oxy-bulb/common"
	"github.com/Carmen-Shannon/oxy-bulb/engine"
	"github.com/Carmen-Shannon/oxy-bulb/engine/config"
	"github.com/Carmen-Shannon/oxy-bulb/engine/export"
	"github.com/Carmen-Shannon/oxy-bulb/engine/input"
	"github.com/Carmen-Shannon/oxy-bulb/engine/renderer"
	"github.com/Carmen-Shannon/oxy-bulb/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-bulb/engine/session"
	"github.com/Carmen-Shannon/oxy-bulb/engine/window"
	"github.com/spf13/pflag"
)

func init() {
	// GLFW must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("oxy-bulb failed", "error", err)
		alert(os.Stderr, err)
		os.Exit(1)
	}
}

// alert prints a plain notice to w when err means the render surface was lost.
func alert(w io.Writer, err error) {
	if !errors.Is(err, renderer.ErrSurfaceLost) {
		return
	}
	fmt.Fprintln(w, "oxy-bulb: the GPU render surface was lost and the viewer had to stop.")
	fmt.Fprintln(w, "Restart oxy-bulb to continue.")
}

type flags struct {
	configPath string
	sets       []string
	exportDir  string
	logLevel   string
	profile    bool
}

func run(args []string) error {
	fs := pflag.NewFlagSet("oxy-bulb", pflag.ContinueOnError)
	var f flags
	fs.StringVar(&f.configPath, "config", config.DefaultPath, "TOML configuration file")
	fs.StringArrayVar(&f.sets, "set", nil, "override a parameter as name=value (repeatable)")
	fs.StringVar(&f.exportDir, "export-dir", "", "directory exported frames are written to")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.BoolVar(&f.profile, "profile", false, "log frame and memory statistics")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(f.configPath)
	switch {
	case errors.Is(err, config.ErrNoConfig) && !fs.Changed("config"):
		slog.Info("no config file, using defaults", "path", f.configPath)
	case err != nil:
		return err
	default:
		slog.Info("loaded config", "path", f.configPath)
	}
	cfg.Export.Dir = common.Coalesce(f.exportDir, cfg.Export.Dir)
	cfg.Loop.Profiling = cfg.Loop.Profiling || f.profile

	overrides, err := parseSets(f.sets)
	if err != nil {
		return err
	}

	return view(cfg, f.configPath, overrides)
}

// parseSets turns name=value pairs into parameter updates. The value itself is
// validated when the update is applied.
func parseSets(sets []string) ([]session.Command, error) {
	cmds := make([]session.Command, 0, len(sets))
	for _, s := range sets {
		name, raw, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --set %q: expected name=value", s)
		}
		cmds = append(cmds, session.SetParamText{Name: name, Raw: raw})
	}
	return cmds, nil
}

func view(cfg config.Config, configPath string, overrides []session.Command) error {
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return fmt.Errorf("failed to open window: %w", err)
	}

	shdr, err := shader.FromFile(cfg.Renderer.Shader)
	if err != nil {
		_ = win.Close()
		return err
	}

	presentMode := renderer.PresentModeVSync
	if !cfg.Renderer.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	surf, err := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithShader(shdr),
		renderer.WithPresentMode(presentMode),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.Software),
	)
	if err != nil {
		_ = win.Close()
		return fmt.Errorf("failed to create render surface: %w", err)
	}

	sessionOptions := []session.Option{
		session.WithCamera(cfg.Camera.CameraState()),
		session.WithResolution(win.Width(), win.Height()),
	}
	if cfg.Autopilot {
		sessionOptions = append(sessionOptions, session.WithAutopilot())
	}
	sess := session.New(sessionOptions...)
	sess.Apply(cfg.Params.Commands()...)
	sess.Apply(overrides...)

	var fatal error
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithSurface(surf),
		engine.WithSession(sess),
		engine.WithExporter(export.NewExporter(
			export.WithDir(cfg.Export.Dir),
			export.WithWorkers(cfg.Export.Workers),
		)),
		engine.WithTickRate(cfg.Loop.FrameRate),
		engine.WithProfiling(cfg.Loop.Profiling),
		engine.WithFatalHandler(func(err error) {
			slog.Error("render surface lost, restart the viewer", "error", err)
			fatal = err
		}),
	)
	input.Bind(win, eng, input.WithExport(eng.RequestExport))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if _, err := os.Stat(configPath); err == nil {
		go func() {
			err := config.Watch(ctx, configPath, func(c config.Config) {
				eng.Submit(c.Params.Commands()...)
				eng.SetTickRate(c.Loop.FrameRate)
			})
			if err != nil {
				slog.Warn("config watch stopped", "error", err)
			}
		}()
	}

	eng.Run()
	return fatal
}
