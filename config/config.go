// Package config loads the TOML configuration of the orbit program.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/camera"
	"github.com/Carmen-Shannon/oxy-transform/engine/shading"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the complete program configuration. Zero-valued sections in a file keep their defaults.
type Config struct {
	LogLevel  string         `toml:"log_level"`
	Profiling bool           `toml:"profiling"`
	Window    WindowConfig   `toml:"window"`
	Renderer  RendererConfig `toml:"renderer"`
	Camera    CameraConfig   `toml:"camera"`
	Scene     SceneConfig    `toml:"scene"`
	Input     InputConfig    `toml:"input"`
}

// WindowConfig sizes the window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// RendererConfig selects presentation and anti-aliasing.
type RendererConfig struct {
	VSync         bool    `toml:"vsync"`
	MSAA          int     `toml:"msaa"` // 1 or 4
	ForceSoftware bool    `toml:"force_software"`
	FrameLimit    float64 `toml:"frame_limit"` // frames per second, 0 = uncapped
}

// CameraConfig sets the projection, the starting eye position and controller step sizes.
type CameraConfig struct {
	FovY               float32    `toml:"fov_y"` // degrees
	Near               float32    `toml:"near"`
	Far                float32    `toml:"far"`
	Position           [3]float32 `toml:"position"`
	LinearStep         float32    `toml:"linear_step"`
	AngularStepDegrees float32    `toml:"angular_step_degrees"`
}

// SceneConfig tunes the scene: stack capacity, culling, lighting and the demo objects' motion.
type SceneConfig struct {
	StackCapacity         int        `toml:"stack_capacity"`
	CullingDisabled       bool       `toml:"culling_disabled"`
	ParallelCullThreshold int        `toml:"parallel_cull_threshold"`
	Light                 [3]float32 `toml:"light"`
	Shading               string     `toml:"shading"`
	SpinSpeed             float32    `toml:"spin_speed"`  // radians per second
	OrbitSpeed            float32    `toml:"orbit_speed"` // radians per second
}

// InputConfig rebinds keys. Keys are names from common.KeyNames, values are camera action names;
// "none" unbinds a default.
type InputConfig struct {
	Bindings map[string]string `toml:"bindings"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Window: WindowConfig{
			Title:  "oxy-transform orbit",
			Width:  800,
			Height: 600,
		},
		Renderer: RendererConfig{
			VSync: true,
			MSAA:  4,
		},
		Camera: CameraConfig{
			FovY:               35,
			Near:               1,
			Far:                500,
			Position:           [3]float32{0, 0, 15},
			LinearStep:         camera.DefaultLinearStep,
			AngularStepDegrees: camera.DefaultAngularStepDegrees,
		},
		Scene: SceneConfig{
			StackCapacity:         64,
			ParallelCullThreshold: 256,
			Light:                 [3]float32{0, 10, 5},
			Shading:               shading.PointLightDiffuse.String(),
			SpinSpeed:             0.5,
			OrbitSpeed:            1.5,
		},
	}
}

// Load reads a TOML file over the defaults and validates the result.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the merged configuration
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate reports every invalid field, each wrapped with ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	if _, err := c.SlogLevel(); err != nil {
		invalid("log_level: %v", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		invalid("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Renderer.MSAA != 1 && c.Renderer.MSAA != 4 {
		invalid("renderer.msaa must be 1 or 4, got %d", c.Renderer.MSAA)
	}
	if c.Renderer.FrameLimit < 0 {
		invalid("renderer.frame_limit must not be negative")
	}
	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		invalid("camera.fov_y %v outside (0, 180)", c.Camera.FovY)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		invalid("camera clip range near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.LinearStep <= 0 || c.Camera.AngularStepDegrees <= 0 {
		invalid("camera step sizes must be positive")
	}
	if c.Scene.StackCapacity < 2 {
		invalid("scene.stack_capacity must be at least 2, got %d", c.Scene.StackCapacity)
	}
	if c.Scene.ParallelCullThreshold < 0 {
		invalid("scene.parallel_cull_threshold must not be negative")
	}
	if _, err := c.ShadingMode(); err != nil {
		invalid("scene.shading: %v", err)
	}
	if _, err := c.KeyBindings(); err != nil {
		invalid("input.bindings: %v", err)
	}
	return errors.Join(errs...)
}

// SlogLevel parses LogLevel; an empty level means info.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(common.Coalesce(strings.TrimSpace(c.LogLevel), "info")))
	return level, err
}

// ShadingMode parses Scene.Shading.
func (c Config) ShadingMode() (shading.Mode, error) {
	return shading.ParseMode(c.Scene.Shading)
}

// KeyBindings merges Input.Bindings over camera.DefaultBindings.
//
// Returns:
//   - map[uint32]camera.Action: key code to action
//   - error: an unknown key or action name
func (c Config) KeyBindings() (map[uint32]camera.Action, error) {
	bindings := camera.DefaultBindings()
	for keyName, actionName := range c.Input.Bindings {
		code, ok := common.KeyNames[strings.ToLower(strings.TrimSpace(keyName))]
		if !ok {
			return nil, fmt.Errorf("unknown key %q", keyName)
		}
		action, err := camera.ParseAction(actionName)
		if err != nil {
			return nil, err
		}
		if action == camera.ActionNone {
			delete(bindings, code)
			continue
		}
		bindings[code] = action
	}
	return bindings, nil
}
