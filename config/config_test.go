package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/camera"
	"github.com/Carmen-Shannon/oxy-transform/engine/shading"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	mode, err := cfg.ShadingMode()
	require.NoError(t, err)
	assert.Equal(t, shading.PointLightDiffuse, mode)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	bindings, err := cfg.KeyBindings()
	require.NoError(t, err)
	assert.Equal(t, camera.DefaultBindings(), bindings)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
log_level = "debug"

[window]
width = 1024

[camera]
fov_y = 60
position = [1, 2, 3]

[scene]
shading = "flat"
culling_disabled = true

[input.bindings]
w = "none"
space = "move_up"
`))
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, float32(60), cfg.Camera.FovY)
	assert.Equal(t, float32(500), cfg.Camera.Far)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Camera.Position)
	assert.True(t, cfg.Scene.CullingDisabled)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	mode, err := cfg.ShadingMode()
	require.NoError(t, err)
	assert.Equal(t, shading.Flat, mode)

	bindings, err := cfg.KeyBindings()
	require.NoError(t, err)
	_, bound := bindings[common.KeyW]
	assert.False(t, bound)
	assert.Equal(t, camera.ActionMoveUp, bindings[common.KeySpace])
	assert.Equal(t, camera.ActionMoveForward, bindings[common.KeyUp])
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(`
[window]
widht = 1024
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"window size", func(c *Config) { c.Window.Height = 0 }},
		{"msaa", func(c *Config) { c.Renderer.MSAA = 2 }},
		{"frame limit", func(c *Config) { c.Renderer.FrameLimit = -1 }},
		{"fov", func(c *Config) { c.Camera.FovY = 180 }},
		{"near", func(c *Config) { c.Camera.Near = 0 }},
		{"far", func(c *Config) { c.Camera.Far = c.Camera.Near }},
		{"linear step", func(c *Config) { c.Camera.LinearStep = 0 }},
		{"stack capacity", func(c *Config) { c.Scene.StackCapacity = 1 }},
		{"cull threshold", func(c *Config) { c.Scene.ParallelCullThreshold = -1 }},
		{"shading", func(c *Config) { c.Scene.Shading = "phong" }},
		{"binding key", func(c *Config) { c.Input.Bindings = map[string]string{"f13": "move_up"} }},
		{"binding action", func(c *Config) { c.Input.Bindings = map[string]string{"w": "jump"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = -1
	cfg.Renderer.MSAA = 3
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window size")
	assert.Contains(t, err.Error(), "renderer.msaa")
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Input.Bindings = map[string]string{"space": "move_up"}
	cfg.Camera.Position = [3]float32{4, 5, 6}

	data, err := cfg.Marshal()
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbit.toml")
	require.NoError(t, os.WriteFile(path, []byte("profiling = true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Profiling)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
