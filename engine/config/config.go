// Package config loads the viewer's TOML configuration over built-in defaults and
// watches the file for parameter edits while the viewer runs.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"

	"github.com/Carmen-Shannon/oxy-bulb/engine/camera"
	"github.com/Carmen-Shannon/oxy-bulb/engine/params"
	"github.com/Carmen-Shannon/oxy-bulb/engine/session"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config file looked up when no path is given.
const DefaultPath = "oxy-bulb.toml"

// ErrNoConfig reports that the config file does not exist.
var ErrNoConfig = errors.New("config file not found")

// Config is the full configuration document.
type Config struct {
	// Autopilot starts the viewer with the autopilot ON.
	Autopilot bool `toml:"autopilot"`

	Window   WindowConfig   `toml:"window"`
	Loop     LoopConfig     `toml:"loop"`
	Renderer RendererConfig `toml:"renderer"`
	Export   ExportConfig   `toml:"export"`
	Camera   CameraConfig   `toml:"camera"`
	Params   ParamsConfig   `toml:"params"`
}

// WindowConfig sizes and titles the viewer window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// LoopConfig controls the render loop.
type LoopConfig struct {
	// FrameRate is the render loop tick rate in frames per second.
	FrameRate float64 `toml:"frame_rate"`
	Profiling bool    `toml:"profiling"`
}

// RendererConfig selects presentation and the shader.
type RendererConfig struct {
	VSync    bool `toml:"vsync"`
	Software bool `toml:"software"`
	// Shader is an optional WGSL file replacing the built-in ray marcher.
	Shader string `toml:"shader"`
}

// ExportConfig controls where and how exported frames are written.
type ExportConfig struct {
	Dir     string `toml:"dir"`
	Workers int    `toml:"workers"`
}

// CameraConfig is the initial target pose.
type CameraConfig struct {
	Pitch  float64    `toml:"pitch"`
	Yaw    float64    `toml:"yaw"`
	Zoom   float64    `toml:"zoom"`
	LookAt [3]float64 `toml:"look_at"`
}

// ParamsConfig mirrors the tunable render parameters. Every key is also a valid
// params field name for text updates.
type ParamsConfig struct {
	Power      float64 `toml:"power"`
	Color      string  `toml:"color"`
	ParamX     float64 `toml:"param_x"`
	ParamY     float64 `toml:"param_y"`
	ParamZ     float64 `toml:"param_z"`
	MaxSteps   int     `toml:"max_steps"`
	AAQuality  int     `toml:"aa_quality"`
	Softness   float64 `toml:"softness"`
	LightAngle float64 `toml:"light_angle"`
	ColorAnim  bool    `toml:"color_anim"`
	XRay       bool    `toml:"xray"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oxy-bulb",
			Width:  1280,
			Height: 720,
		},
		Loop: LoopConfig{
			FrameRate: 60,
		},
		Renderer: RendererConfig{
			VSync: true,
		},
		Export: ExportConfig{
			Dir:     ".",
			Workers: 2,
		},
		Camera: CameraConfig{
			Pitch: camera.DefaultPitch,
			Yaw:   camera.DefaultYaw,
			Zoom:  camera.DefaultZoom,
		},
		Params: FromParams(params.Default()),
	}
}

// Load reads path over the defaults. Keys not in the schema are an error.
//
// Parameters:
//   - path: the TOML file to read
//
// Returns:
//   - Config: the merged configuration, or the defaults on error
//   - error: ErrNoConfig if the file does not exist, or a read/decode error
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("%w: %s", ErrNoConfig, path)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a TOML document over the defaults.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the merged configuration, or the defaults on error
//   - error: a decode error
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Default(), fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Marshal encodes cfg as TOML.
//
// Parameters:
//   - cfg: the configuration to encode
//
// Returns:
//   - []byte: the TOML document
//   - error: an encode error
func Marshal(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// CameraState builds the initial camera from the configured pose.
//
// Returns:
//   - *camera.State: the camera with Current equal to Target
func (c CameraConfig) CameraState() *camera.State {
	return camera.NewState(
		camera.WithPitch(c.Pitch),
		camera.WithYaw(c.Yaw),
		camera.WithZoom(c.Zoom),
		camera.WithLookAt(c.LookAt[0], c.LookAt[1], c.LookAt[2]),
	)
}

// FromCamera returns the config form of an orbit pose.
//
// Parameters:
//   - o: the pose to convert
//
// Returns:
//   - CameraConfig: the config section
func FromCamera(o camera.Orbit) CameraConfig {
	return CameraConfig{
		Pitch:  o.Pitch,
		Yaw:    o.Yaw,
		Zoom:   o.Zoom,
		LookAt: [3]float64(o.LookAt),
	}
}

// FromParams returns the config form of p. The light direction is stored as its
// angle around the Y axis.
//
// Parameters:
//   - p: the parameters to convert
//
// Returns:
//   - ParamsConfig: the config section
func FromParams(p params.Params) ParamsConfig {
	col := colorful.Color{R: float64(p.Color[0]), G: float64(p.Color[1]), B: float64(p.Color[2])}
	return ParamsConfig{
		Power:      float64(p.Power),
		Color:      col.Clamped().Hex(),
		ParamX:     float64(p.Param[0]),
		ParamY:     float64(p.Param[1]),
		ParamZ:     float64(p.Param[2]),
		MaxSteps:   int(p.MaxSteps),
		AAQuality:  int(p.AAQuality),
		Softness:   float64(p.Softness),
		LightAngle: math.Atan2(float64(p.LightDir[2]), float64(p.LightDir[0])),
		ColorAnim:  p.ColorAnim,
		XRay:       p.XRay,
	}
}

// Commands returns one text update per parameter. Each goes through the same
// validation as interactive input, so a bad value is logged and skipped without
// affecting the others.
//
// Returns:
//   - []session.Command: the parameter updates in field order
func (c ParamsConfig) Commands() []session.Command {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return []session.Command{
		session.SetParamText{Name: params.FieldPower.String(), Raw: f(c.Power)},
		session.SetParamText{Name: params.FieldColor.String(), Raw: c.Color},
		session.SetParamText{Name: params.FieldParamX.String(), Raw: f(c.ParamX)},
		session.SetParamText{Name: params.FieldParamY.String(), Raw: f(c.ParamY)},
		session.SetParamText{Name: params.FieldParamZ.String(), Raw: f(c.ParamZ)},
		session.SetParamText{Name: params.FieldMaxSteps.String(), Raw: strconv.Itoa(c.MaxSteps)},
		session.SetParamText{Name: params.FieldAAQuality.String(), Raw: strconv.Itoa(c.AAQuality)},
		session.SetParamText{Name: params.FieldSoftness.String(), Raw: f(c.Softness)},
		session.SetParamText{Name: params.FieldLightAngle.String(), Raw: f(c.LightAngle)},
		session.SetParamText{Name: params.FieldColorAnim.String(), Raw: strconv.FormatBool(c.ColorAnim)},
		session.SetParamText{Name: params.FieldXRay.String(), Raw: strconv.FormatBool(c.XRay)},
	}
}
