package scene

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/camera"
	"github.com/Carmen-Shannon/oxy-transform/engine/game_object"
	"github.com/Carmen-Shannon/oxy-transform/engine/matrix_stack"
	"github.com/Carmen-Shannon/oxy-transform/engine/shading"
	"github.com/Carmen-Shannon/oxy-transform/engine/transform_pipeline"
)

// ErrUnbalancedStack is returned by Render when the model-view stack depth at the end of a frame
// differs from its depth at the start.
var ErrUnbalancedStack = errors.New("model-view stack unbalanced after frame")

// DefaultParallelCullThreshold is the root object count at which culling moves to the worker pool.
const DefaultParallelCullThreshold = 256

// Renderer receives the draws a scene produces. engine/renderer satisfies it.
type Renderer interface {
	Draw(cmd shading.DrawCommand) error
}

// FrameStats summarizes one Render call.
type FrameStats struct {
	Objects  int // enabled root objects considered
	Culled   int // root objects rejected by the view frustum
	Draws    int // draw commands issued, children included
	MaxDepth int // deepest model-view stack depth reached
}

// Scene owns a camera, the model-view matrix stack, the transform pipeline bound to it and to the
// camera's projection stack, and an ordered set of root objects.
// Thread-safe for concurrent access; Render and Update serialize with every other method.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently rendered.
	Active() bool

	// SetActive sets whether this scene is rendered.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera and rebinds the pipeline to its projection stack.
	//
	// Parameters:
	//   - cam: the new camera, ignored when nil
	SetCamera(cam camera.Camera)

	// ModelViewStack returns the model-view matrix stack.
	//
	// Returns:
	//   - matrix_stack.MatrixStack: the model-view stack
	ModelViewStack() matrix_stack.MatrixStack

	// Pipeline returns the transform pipeline bound to the model-view and projection stacks.
	//
	// Returns:
	//   - transform_pipeline.TransformPipeline: the bound pipeline
	Pipeline() transform_pipeline.TransformPipeline

	// Light returns the world-space light position.
	Light() common.Vector4

	// SetLight sets the world-space light position. Draws receive it in eye space.
	//
	// Parameters:
	//   - position: homogeneous position, w = 1 for a point light
	SetLight(position common.Vector4)

	// CullingDisabled reports whether frustum culling is skipped.
	CullingDisabled() bool

	// SetCullingDisabled turns frustum culling off or on.
	//
	// Parameters:
	//   - disabled: true to draw every enabled object
	SetCullingDisabled(disabled bool)

	// Add appends a root object. Objects without an ID are assigned one.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - uint64: the object's ID
	Add(obj game_object.GameObject) uint64

	// Get returns a root object by ID, or nil.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove deletes a root object by ID.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - bool: true if an object was removed
	Remove(id uint64) bool

	// Objects returns the root objects in draw order.
	//
	// Returns:
	//   - []game_object.GameObject: a copy of the root object list
	Objects() []game_object.GameObject

	// Count returns the number of root objects.
	Count() int

	// Update advances every object's animation state.
	//
	// Parameters:
	//   - dt: elapsed seconds
	Update(dt float32)

	// Render draws one frame. The model-view stack is pushed and loaded with the camera
	// matrix, each visible root object and its children are composed onto it and handed to the
	// renderer, and the stack is popped back. On any error the stack is unwound to its depth at
	// the start of the frame.
	//
	// Parameters:
	//   - r: the renderer receiving the draws
	//
	// Returns:
	//   - FrameStats: counters for the frame
	//   - error: a wrapped stack, pipeline or renderer error, or ErrUnbalancedStack
	Render(r Renderer) (FrameStats, error)

	// Close stops the culling worker pool.
	Close()
}

type scene struct {
	mu     sync.RWMutex
	name   string
	active bool

	cam       camera.Camera
	modelView matrix_stack.MatrixStack
	pipeline  transform_pipeline.TransformPipeline
	light     common.Vector4

	objects []game_object.GameObject
	nextID  uint64

	stackCapacity     int
	cullingDisabled   bool
	parallelThreshold int

	// cullPool runs the sphere tests of large scenes. Workers persist across frames.
	cullPool    worker.DynamicWorkerPool
	cullWorkers int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a Scene viewed through cam. NewScene panics if cam is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		name:              name,
		active:            true,
		cam:               cam,
		light:             common.Vec4(0, 10, 5, 1),
		nextID:            1,
		stackCapacity:     matrix_stack.DefaultCapacity,
		parallelThreshold: DefaultParallelCullThreshold,
		cullWorkers:       max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	s.modelView = matrix_stack.NewMatrixStack(matrix_stack.WithCapacity(s.stackCapacity))
	s.pipeline = transform_pipeline.NewTransformPipeline(
		transform_pipeline.WithMatrixStacks(s.modelView, cam.ProjectionStack()),
	)
	s.cullPool = worker.NewDynamicWorkerPool(s.cullWorkers, 256, 1*time.Second)
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	if cam == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
	s.pipeline.Bind(s.modelView, cam.ProjectionStack())
}

func (s *scene) ModelViewStack() matrix_stack.MatrixStack {
	return s.modelView
}

func (s *scene) Pipeline() transform_pipeline.TransformPipeline {
	return s.pipeline
}

func (s *scene) Light() common.Vector4 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.light
}

func (s *scene) SetLight(position common.Vector4) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.light = position
}

func (s *scene) CullingDisabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cullingDisabled
}

func (s *scene) SetCullingDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cullingDisabled = disabled
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(obj)
}

func (s *scene) add(obj game_object.GameObject) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	} else if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	s.objects = append(s.objects, obj)
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, obj := range s.objects {
		if obj.ID() == id {
			return obj
		}
	}
	return nil
}

func (s *scene) Remove(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, obj := range s.objects {
		if obj.ID() == id {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return true
		}
	}
	return false
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, len(s.objects))
	copy(out, s.objects)
	return out
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) Update(dt float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, obj := range s.objects {
		obj.Update(dt)
	}
}

func (s *scene) Render(r Renderer) (FrameStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats FrameStats
	mv := s.modelView
	start := mv.Depth()

	if err := mv.PushCopy(); err != nil {
		return stats, fmt.Errorf("scene %q: %w", s.name, err)
	}
	view := s.cam.ViewMatrix()
	mv.MultiplyTop(view)
	stats.MaxDepth = mv.Depth()

	lightEye := common.TransformVector4(view, s.light)
	visible := s.cull(&stats)

	for _, obj := range visible {
		if err := s.draw(r, obj, lightEye, &stats); err != nil {
			s.unwind(start)
			return stats, fmt.Errorf("scene %q: %w", s.name, err)
		}
	}

	if err := mv.Pop(); err != nil {
		s.unwind(start)
		return stats, fmt.Errorf("scene %q: %w: %w", s.name, ErrUnbalancedStack, err)
	}
	if end := mv.Depth(); end != start {
		s.unwind(start)
		return stats, fmt.Errorf("scene %q: %w: depth %d at start, %d at end", s.name, ErrUnbalancedStack, start, end)
	}
	return stats, nil
}

func (s *scene) Close() {
	s.cullPool.Stop()
}

// draw composes obj onto the model-view stack, issues its draw, recurses into its children and
// restores the stack. The stack is left unbalanced only when an error is returned.
func (s *scene) draw(r Renderer, obj game_object.GameObject, light common.Vector4, stats *FrameStats) error {
	if !obj.Enabled() {
		return nil
	}
	mv := s.modelView

	if err := mv.PushMultiply(obj.Frame().ModelMatrix()); err != nil {
		return err
	}
	if err := mv.PushCopy(); err != nil {
		return err
	}
	stats.MaxDepth = max(stats.MaxDepth, mv.Depth())

	axis, _, angle := obj.Spin()
	mv.Rotate(angle, axis[0], axis[1], axis[2])
	scale := obj.Scale()
	mv.Scale(scale[0], scale[1], scale[2])

	uniform, err := shading.NewTransformUniform(s.pipeline, obj.Color(), light)
	if err != nil {
		return err
	}
	if err := r.Draw(shading.DrawCommand{Batch: obj.Batch(), Mode: obj.Mode(), Uniform: uniform}); err != nil {
		return fmt.Errorf("draw object %d: %w", obj.ID(), err)
	}
	stats.Draws++

	if err := mv.Pop(); err != nil {
		return err
	}
	for _, child := range obj.Children() {
		if err := s.draw(r, child, light, stats); err != nil {
			return err
		}
	}
	return mv.Pop()
}

func (s *scene) unwind(depth int) {
	for s.modelView.Depth() > depth {
		if err := s.modelView.Pop(); err != nil {
			return
		}
	}
}

// cull returns the enabled root objects whose bounding spheres touch the view frustum, in draw order.
func (s *scene) cull(stats *FrameStats) []game_object.GameObject {
	objs := s.objects
	keep := make([]bool, len(objs))

	if s.cullingDisabled {
		for i, obj := range objs {
			keep[i] = obj.Enabled()
		}
	} else {
		planes := s.cam.ViewFrustum()
		test := func(lo, hi int) {
			for i := lo; i < hi; i++ {
				obj := objs[i]
				keep[i] = obj.Enabled() && planes.IntersectsSphere(obj.Frame().Origin(), obj.Extent())
			}
		}

		if len(objs) < s.parallelThreshold {
			test(0, len(objs))
		} else {
			// pool.Wait() blocks until workers idle-exit, so the frame barrier is a WaitGroup.
			var wg sync.WaitGroup
			chunk := (len(objs) + s.cullWorkers - 1) / s.cullWorkers
			for id, lo := 0, 0; lo < len(objs); id, lo = id+1, lo+chunk {
				hi := min(lo+chunk, len(objs))
				wg.Add(1)
				s.cullPool.SubmitTask(worker.Task{
					ID: id,
					Do: func() (any, error) {
						defer wg.Done()
						test(lo, hi)
						return nil, nil
					},
				})
			}
			wg.Wait()
		}
	}

	visible := make([]game_object.GameObject, 0, len(objs))
	for i, obj := range objs {
		if !obj.Enabled() {
			continue
		}
		stats.Objects++
		if keep[i] {
			visible = append(visible, obj)
		} else {
			stats.Culled++
		}
	}
	return visible
}
