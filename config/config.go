package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the complete runtime configuration of the demo.
type Config struct {
	Window    WindowConfig    `toml:"window" yaml:"window"`
	Instances InstancesConfig `toml:"instances" yaml:"instances"`
	Camera    CameraConfig    `toml:"camera" yaml:"camera"`
	Mesh      MeshConfig      `toml:"mesh" yaml:"mesh"`
	Renderer  RendererConfig  `toml:"renderer" yaml:"renderer"`
	Logging   LoggingConfig   `toml:"logging" yaml:"logging"`
	Profiling bool            `toml:"profiling" yaml:"profiling"`
}

// WindowConfig sets the window title and initial size.
type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
}

// InstancesConfig describes the instance grid and motion.
type InstancesConfig struct {
	Count     int        `toml:"count" yaml:"count"`
	GridSize  int        `toml:"grid_size" yaml:"grid_size"`
	Spacing   float32    `toml:"spacing" yaml:"spacing"`
	Speed     float32    `toml:"speed" yaml:"speed"` // world units per second along direction
	Direction [3]float32 `toml:"direction" yaml:"direction"`
	Strategy  string     `toml:"strategy" yaml:"strategy"` // "legacy" or "unravel"
}

// CameraConfig selects the camera variant and its lens and placement.
type CameraConfig struct {
	Variant     string     `toml:"variant" yaml:"variant"` // "flying" or "fixed"
	FovDegrees  float32    `toml:"fov_degrees" yaml:"fov_degrees"`
	Near        float32    `toml:"near" yaml:"near"`
	Far         float32    `toml:"far" yaml:"far"`
	Position    [3]float32 `toml:"position" yaml:"position"`
	Direction   [3]float32 `toml:"direction" yaml:"direction"`
	MoveSpeed   float32    `toml:"move_speed" yaml:"move_speed"`
	Sensitivity float32    `toml:"sensitivity" yaml:"sensitivity"` // degrees per pixel
}

// MeshConfig selects the mesh replicated by every instance.
type MeshConfig struct {
	Path     string  `toml:"path" yaml:"path"` // empty selects the built-in cube
	Scale    float32 `toml:"scale" yaml:"scale"`
	Recenter bool    `toml:"recenter" yaml:"recenter"`
}

// RendererConfig holds the shader program and surface settings.
type RendererConfig struct {
	Shader        string     `toml:"shader" yaml:"shader"`             // "lit" or "static"
	PresentMode   string     `toml:"present_mode" yaml:"present_mode"` // "vsync" or "uncapped"
	MSAA          int        `toml:"msaa" yaml:"msaa"`
	FrameLimit    float64    `toml:"frame_limit" yaml:"frame_limit"` // fps, 0 = uncapped
	ClearColor    [4]float64 `toml:"clear_color" yaml:"clear_color"`
	ForceSoftware bool       `toml:"force_software" yaml:"force_software"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// Load reads a configuration file over the defaults. The format follows the extension:
// .toml, or .yaml/.yml. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the built-in configuration: 100 cubes on a 10-wide grid.
func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "oxy-instancing",
			Width:  1024,
			Height: 768,
		},
		Instances: InstancesConfig{
			Count:     100,
			GridSize:  10,
			Spacing:   1,
			Speed:     0,
			Direction: [3]float32{1, 1, 1},
			Strategy:  "legacy",
		},
		Camera: CameraConfig{
			Variant:     "flying",
			FovDegrees:  90,
			Near:        0.1,
			Far:         1024,
			Position:    [3]float32{4.5, 4.5, 10},
			Direction:   [3]float32{0, 0, -1},
			MoveSpeed:   3,
			Sensitivity: 0.1,
		},
		Mesh: MeshConfig{
			Scale: 0.25,
		},
		Renderer: RendererConfig{
			Shader:      "lit",
			PresentMode: "vsync",
			MSAA:        4,
			ClearColor:  [4]float64{0, 0, 0, 0},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports every out-of-range or unknown value, each wrapping ErrInvalid.
func (c *Config) Validate() error {
	var err error
	invalid := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		invalid("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Instances.Count < 0 {
		invalid("instances.count %d must not be negative", c.Instances.Count)
	}
	if c.Instances.GridSize <= 0 {
		invalid("instances.grid_size %d must be positive", c.Instances.GridSize)
	}
	switch strings.ToLower(c.Instances.Strategy) {
	case "legacy", "unravel":
	default:
		invalid("instances.strategy %q must be legacy or unravel", c.Instances.Strategy)
	}
	switch strings.ToLower(c.Camera.Variant) {
	case "flying", "fixed":
	default:
		invalid("camera.variant %q must be flying or fixed", c.Camera.Variant)
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		invalid("camera.fov_degrees %v must be in (0, 180)", c.Camera.FovDegrees)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		invalid("camera near %v and far %v must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far)
	}
	if c.Mesh.Scale <= 0 {
		invalid("mesh.scale %v must be positive", c.Mesh.Scale)
	}
	switch strings.ToLower(c.Renderer.Shader) {
	case "lit", "static":
	default:
		invalid("renderer.shader %q must be lit or static", c.Renderer.Shader)
	}
	switch strings.ToLower(c.Renderer.PresentMode) {
	case "vsync", "uncapped":
	default:
		invalid("renderer.present_mode %q must be vsync or uncapped", c.Renderer.PresentMode)
	}
	switch c.Renderer.MSAA {
	case 1, 4:
	default:
		invalid("renderer.msaa %d must be 1 or 4", c.Renderer.MSAA)
	}
	if c.Renderer.FrameLimit < 0 {
		invalid("renderer.frame_limit %v must not be negative", c.Renderer.FrameLimit)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		invalid("logging.format %q must be json or console", c.Logging.Format)
	}
	return err
}
