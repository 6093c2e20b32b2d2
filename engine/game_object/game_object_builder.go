package game_object

import (
	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/frame"
	"github.com/Carmen-Shannon/oxy-transform/engine/shading"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithEnabled sets whether the GameObject is drawn.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithFrame sets the placement frame. The object takes the frame as is; later moves of the frame move the object.
//
// Parameters:
//   - f: the placement frame
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the frame
func WithFrame(f frame.Frame) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.placement = f
	}
}

// WithBatch sets the vertex batch drawn for the object.
//
// Parameters:
//   - key: a batch key registered with the renderer
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the batch key
func WithBatch(key string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.batch = key
	}
}

// WithScale sets the initial scale of the GameObject.
//
// Parameters:
//   - x: scale along the X axis
//   - y: scale along the Y axis
//   - z: scale along the Z axis
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = common.Vec3(x, y, z)
	}
}

// WithSpin sets a constant spin about an axis in the object's frame.
//
// Parameters:
//   - speed: radians per second
//   - x, y, z: the spin axis, ignored when zero-length
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the spin
func WithSpin(speed, x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.SetSpin(speed, x, y, z)
	}
}

func WithColor(r, g, b, a float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.color = common.Vec4(r, g, b, a)
	}
}

func WithMode(mode shading.Mode) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mode = mode
	}
}

// WithBoundingRadius sets the unscaled bounding sphere radius of the batch, used for culling.
//
// Parameters:
//   - radius: the radius, ignored when negative
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the radius
func WithBoundingRadius(radius float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		if radius >= 0 {
			obj.radius = radius
		}
	}
}

// WithChildren attaches sub-parts placed relative to this object's frame.
//
// Parameters:
//   - children: the sub-parts
//
// Returns:
//   - GameObjectBuilderOption: functional option to add children
func WithChildren(children ...GameObject) GameObjectBuilderOption {
	return func(obj *gameObject) {
		for _, child := range children {
			obj.AddChild(child)
		}
	}
}
