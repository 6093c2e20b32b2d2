package main

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/config"
	"github.com/Carmen-Shannon/oxy-transform/engine/frame"
	"github.com/Carmen-Shannon/oxy-transform/engine/game_object"
	"github.com/Carmen-Shannon/oxy-transform/engine/shading"
)

func TestNewCameraFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Bindings = map[string]string{"space": "move_up"}

	cam, err := newCamera(cfg, 800, 400)
	require.NoError(t, err)

	assert.Equal(t, common.Vec3(0, 0, 15), cam.Frame().Origin())
	assert.InDelta(t, 2.0, cam.Frustum().Aspect(), 1e-6)
	assert.Equal(t, cfg.Camera.FovY, cam.Frustum().FovY())
	assert.Equal(t, cam.Frustum().ProjectionMatrix(), cam.ProjectionStack().Top())

	require.NotNil(t, cam.Controller())
	assert.True(t, cam.Controller().HandleKeyDown(common.KeySpace))
	assert.True(t, cam.Frame().Origin().ApproxEqual(common.Vec3(0, cfg.Camera.LinearStep, 15), 1e-5))
}

func TestNewCameraMinimizedWindow(t *testing.T) {
	cam, err := newCamera(config.Default(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(1), cam.Frustum().Aspect())
}

func TestNewScene(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.Shading = "flat"
	cam, err := newCamera(cfg, 800, 600)
	require.NoError(t, err)

	sc, moon, err := newScene(cfg, cam)
	require.NoError(t, err)
	t.Cleanup(sc.Close)

	assert.True(t, sc.Active())
	assert.Equal(t, 2, sc.Count())
	assert.Equal(t, batchSphere, moon.Batch())
	assert.Equal(t, shading.Flat, moon.Mode())
	assert.Equal(t, cfg.Scene.StackCapacity, sc.ModelViewStack().Capacity())
}

func TestOrbitKeepsRadiusAndFacing(t *testing.T) {
	obj := game_object.NewGameObject(game_object.WithFrame(frame.NewFrame(frame.WithOrigin(moonDistance, 0, 0))))
	before := obj.Frame().WorldToLocal(common.Vec3(0, 0, 0))

	orbit(obj, math32.Pi/2)
	assert.True(t, obj.Frame().Origin().ApproxEqual(common.Vec3(0, 0, -moonDistance), 1e-5))
	assert.True(t, obj.Frame().WorldToLocal(common.Vec3(0, 0, 0)).ApproxEqual(before, 1e-5))

	orbit(obj, 0)
	assert.True(t, obj.Frame().Origin().ApproxEqual(common.Vec3(0, 0, -moonDistance), 1e-5))
}
