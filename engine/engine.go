package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-transform/engine/profiler"
	"github.com/Carmen-Shannon/oxy-transform/engine/scene"
	"github.com/Carmen-Shannon/oxy-transform/engine/window"
)

var (
	// ErrNoRenderer is returned by Frame when the engine has no renderer.
	ErrNoRenderer = errors.New("engine has no renderer")
	// ErrNoWindow is returned by Run when the engine has no window.
	ErrNoWindow = errors.New("engine has no window")
)

// Renderer is the frame-level surface the engine drives. engine/renderer satisfies it.
type Renderer interface {
	scene.Renderer
	BeginFrame() error
	EndFrame()
	Present()
	Resize(width, height int) error
}

// engine implements the Engine interface.
// Everything runs on the window thread: the window's update callback drives one frame per iteration.
type engine struct {
	window   window.Window
	renderer Renderer
	logger   *slog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	now              func() time.Time
	lastFrame        time.Time

	quitOnce sync.Once
	quit     bool
	err      error
}

// Engine is the main entry point for the engine.
// It owns the frame loop and routes window input and resize events to scenes and their cameras.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil when running headless
	Window() window.Window

	// Renderer returns the renderer frames are drawn with.
	Renderer() Renderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called once per loop iteration before the frame.
	// Use this for game logic and input processing.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after each presented frame.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are updated and rendered in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key, or nil.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Frame draws one frame: BeginFrame, then Update and Render for each active scene in key
	// order, then EndFrame and Present.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//
	// Returns:
	//   - error: the first renderer or scene error; the frame is abandoned
	Frame(dt float32) error

	// Resize forwards a new framebuffer size to the renderer and every scene camera.
	// Zero or negative sizes (a minimized window) are ignored.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	//
	// Returns:
	//   - error: the first renderer or camera error
	Resize(width, height int) error

	// HandleKeyDown routes a key press to the camera controllers of the active scenes.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	//
	// Returns:
	//   - bool: true if any controller had the key bound
	HandleKeyDown(keyCode uint32) bool

	// HandleScroll routes a scroll delta to the camera controllers of the active scenes.
	HandleScroll(delta float32)

	// Run runs the frame loop on the window thread until the window closes or a frame fails.
	//
	// Returns:
	//   - error: the error that stopped the loop, or nil on a normal close
	Run() error

	// Quit stops the loop after the current iteration.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Err returns the error that stopped the loop, if any.
	Err() error
}

// NewEngine creates a new Engine instance with the provided options.
// When a window is supplied its update, resize, key-down and scroll callbacks are claimed by the engine.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		scenes: make(map[int]scene.Scene),
		logger: slog.Default(),
		now:    time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(e.logger)
	}

	if e.window != nil {
		e.window.SetUpdateCallback(e.step)
		e.window.SetResizeCallback(func(width, height int) {
			if err := e.Resize(width, height); err != nil {
				e.fail(err)
			}
		})
		e.window.SetKeyDownCallback(func(keyCode uint32) {
			e.HandleKeyDown(keyCode)
		})
		e.window.SetScrollCallback(e.HandleScroll)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() Renderer {
	return e.renderer
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}
	e.logger.Info("engine started", slog.Int("scenes", len(e.scenes)))
	e.lastFrame = e.now()
	e.window.ProcessMessages()
	if e.err != nil {
		return e.err
	}
	e.logger.Info("engine stopped")
	return nil
}

// step runs one loop iteration: tick callback, frame, frame limiting.
func (e *engine) step() {
	if e.quit {
		return
	}
	start := e.now()
	dt := float32(start.Sub(e.lastFrame).Seconds())
	e.lastFrame = start

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
	if err := e.Frame(dt); err != nil {
		e.fail(err)
		return
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// fail logs the error that stops the loop and requests quit.
func (e *engine) fail(err error) {
	if e.err == nil {
		e.err = err
	}
	e.logger.Error("frame failed, stopping", slog.Any("error", err))
	e.Quit()
}

func (e *engine) Frame(dt float32) error {
	if e.renderer == nil {
		return ErrNoRenderer
	}
	active := e.activeScenes()

	if err := e.renderer.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	for _, s := range active {
		s.Update(dt)
		stats, err := s.Render(e.renderer)
		if err != nil {
			e.renderer.EndFrame()
			return fmt.Errorf("render: %w", err)
		}
		if e.profilingEnabled {
			e.profiler.Record(stats)
		}
	}
	e.renderer.EndFrame()
	e.renderer.Present()

	if e.renderCallback != nil {
		e.renderCallback(dt)
	}
	if e.profilingEnabled {
		e.profiler.Tick()
	}
	return nil
}

// activeScenes returns the active scenes in ascending z-index order.
func (e *engine) activeScenes() []scene.Scene {
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	active := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

func (e *engine) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if e.renderer != nil {
		if err := e.renderer.Resize(width, height); err != nil {
			return fmt.Errorf("resize renderer: %w", err)
		}
	}
	for _, s := range e.scenes {
		if err := s.Camera().Resize(width, height); err != nil {
			return fmt.Errorf("resize scene %q: %w", s.Name(), err)
		}
	}
	e.logger.Debug("resized", slog.Int("width", width), slog.Int("height", height))
	return nil
}

func (e *engine) HandleKeyDown(keyCode uint32) bool {
	handled := false
	for _, s := range e.activeScenes() {
		if ctrl := s.Camera().Controller(); ctrl != nil && ctrl.HandleKeyDown(keyCode) {
			handled = true
		}
	}
	return handled
}

func (e *engine) HandleScroll(delta float32) {
	for _, s := range e.activeScenes() {
		if ctrl := s.Camera().Controller(); ctrl != nil {
			ctrl.HandleScroll(delta)
		}
	}
}

// Quit stops the loop after the current iteration.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.quit = true
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

func (e *engine) Err() error {
	return e.err
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickCallback registers the function called each loop iteration.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called after each presented frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
