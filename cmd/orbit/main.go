// Command orbit renders a spinning cube with an orbiting moon above a floor grid.
// The camera flies with the keyboard; see camera.DefaultBindings for the keys.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/config"
	"github.com/Carmen-Shannon/oxy-transform/engine"
	"github.com/Carmen-Shannon/oxy-transform/engine/camera"
	"github.com/Carmen-Shannon/oxy-transform/engine/frame"
	"github.com/Carmen-Shannon/oxy-transform/engine/game_object"
	"github.com/Carmen-Shannon/oxy-transform/engine/renderer"
	"github.com/Carmen-Shannon/oxy-transform/engine/scene"
	"github.com/Carmen-Shannon/oxy-transform/engine/window"
)

// moonDistance is the moon's orbit radius around the planet, in planet-frame units.
const moonDistance = 2.5

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("orbit failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	presentMode := renderer.PresentModeUncapped
	if cfg.Renderer.VSync {
		presentMode = renderer.PresentModeVSync
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Renderer.MSAA)),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
	)
	if err != nil {
		return err
	}
	defer r.Release()

	if err := registerBatches(r); err != nil {
		return err
	}

	cam, err := newCamera(cfg, win.Width(), win.Height())
	if err != nil {
		return err
	}
	sc, moon, err := newScene(cfg, cam)
	if err != nil {
		return err
	}
	defer sc.Close()

	eng := engine.NewEngine(
		engine.WithLogger(logger),
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithScene(0, sc),
		engine.WithProfiling(cfg.Profiling),
		engine.WithRenderFrameLimit(cfg.Renderer.FrameLimit),
	)
	orbitSpeed := cfg.Scene.OrbitSpeed
	eng.SetTickCallback(func(dt float32) {
		orbit(moon, orbitSpeed*dt)
	})

	logger.Info("orbit ready",
		slog.String("title", win.Title()),
		slog.Int("width", win.Width()),
		slog.Int("height", win.Height()),
		slog.String("shading", cfg.Scene.Shading),
	)
	return eng.Run()
}

func newCamera(cfg config.Config, width, height int) (camera.Camera, error) {
	bindings, err := cfg.KeyBindings()
	if err != nil {
		return nil, err
	}
	pos := cfg.Camera.Position
	cam := camera.NewCamera(
		camera.WithFrame(frame.NewFrame(frame.WithOrigin(pos[0], pos[1], pos[2]))),
		camera.WithController(camera.NewCameraController(
			camera.WithBindings(bindings),
			camera.WithLinearStep(cfg.Camera.LinearStep),
			camera.WithAngularStep(cfg.Camera.AngularStepDegrees),
		)),
	)

	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	if err := cam.SetPerspective(cfg.Camera.FovY, aspect, cfg.Camera.Near, cfg.Camera.Far); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	return cam, nil
}

// newScene builds the planet, its moon and the floor. The moon is returned so the tick
// callback can move it along its orbit.
func newScene(cfg config.Config, cam camera.Camera) (scene.Scene, game_object.GameObject, error) {
	mode, err := cfg.ShadingMode()
	if err != nil {
		return nil, nil, err
	}

	moon := game_object.NewGameObject(
		game_object.WithBatch(batchSphere),
		game_object.WithFrame(frame.NewFrame(frame.WithOrigin(moonDistance, 0, 0))),
		game_object.WithScale(0.4, 0.4, 0.4),
		game_object.WithColor(0.8, 0.8, 0.85, 1),
		game_object.WithMode(mode),
	)
	planet := game_object.NewGameObject(
		game_object.WithBatch(batchCube),
		game_object.WithFrame(frame.NewFrame(frame.WithOrigin(0, 0, -4))),
		game_object.WithScale(1.5, 1.5, 1.5),
		game_object.WithBoundingRadius(math32.Sqrt(3)/2),
		game_object.WithSpin(cfg.Scene.SpinSpeed, 0.3, 1, 0),
		game_object.WithColor(0.9, 0.45, 0.2, 1),
		game_object.WithMode(mode),
		game_object.WithChildren(moon),
	)
	floor := game_object.NewGameObject(
		game_object.WithBatch(batchGrid),
		game_object.WithFrame(frame.NewFrame(frame.WithOrigin(0, -3, -4))),
		game_object.WithBoundingRadius(10*math32.Sqrt(2)),
		game_object.WithColor(0.5, 0.5, 0.5, 1),
		game_object.WithMode(mode),
	)

	light := cfg.Scene.Light
	sc := scene.NewScene("orbit", cam,
		scene.WithActive(true),
		scene.WithObjects(planet, floor),
		scene.WithLight(light[0], light[1], light[2]),
		scene.WithStackCapacity(cfg.Scene.StackCapacity),
		scene.WithParallelCullThreshold(cfg.Scene.ParallelCullThreshold),
		scene.WithCullingDisabled(cfg.Scene.CullingDisabled),
	)
	return sc, moon, nil
}

// orbit swings an object about its parent's Y axis, turning it so the same side faces the parent.
func orbit(obj game_object.GameObject, angle float32) {
	if angle == 0 {
		return
	}
	f := obj.Frame()
	origin := common.TransformVector(common.Rotation(angle, 0, 1, 0), f.Origin())
	f.SetOrigin(origin.X(), origin.Y(), origin.Z())
	f.RotateWorld(angle, 0, 1, 0)
}
