package scene

import (
	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/game_object"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is rendered. Scenes start active.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithObjects adds initial root objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			if obj != nil {
				s.add(obj)
			}
		}
	}
}

// WithLight sets the world-space light position.
//
// Parameters:
//   - x, y, z: the light position
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLight(x, y, z float32) SceneBuilderOption {
	return func(s *scene) {
		s.light = common.Vec4(x, y, z, 1)
	}
}

// WithStackCapacity sets the model-view stack capacity, which bounds the object hierarchy depth.
// Each root object uses two slots plus two per level of children, on top of the identity floor and the
// camera slot.
//
// Parameters:
//   - capacity: maximum stack depth; values below 1 use matrix_stack.DefaultCapacity
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithStackCapacity(capacity int) SceneBuilderOption {
	return func(s *scene) {
		s.stackCapacity = capacity
	}
}

// WithCullWorkers sets the number of goroutines used for parallel culling.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of cull workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCullWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.cullWorkers = n
	}
}

// WithParallelCullThreshold sets the root object count at which culling runs on the worker pool.
//
// Parameters:
//   - n: the threshold; 0 always culls in parallel
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithParallelCullThreshold(n int) SceneBuilderOption {
	return func(s *scene) {
		if n >= 0 {
			s.parallelThreshold = n
		}
	}
}

// WithCullingDisabled disables frustum culling for the scene. By default culling is enabled.
//
// Parameters:
//   - disabled: true to disable frustum culling, false to enable it (default)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCullingDisabled(disabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.cullingDisabled = disabled
	}
}
