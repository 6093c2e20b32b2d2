package camera

import (
	"github.com/Carmen-Shannon/oxy-transform/engine/frame"
	"github.com/Carmen-Shannon/oxy-transform/engine/frustum"
	"github.com/Carmen-Shannon/oxy-transform/engine/matrix_stack"
)

type CameraBuilderOption func(*cameraImpl)

// WithFrame sets the eye frame.
//
// Parameters:
//   - f: the frame the camera looks from
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's eye frame
func WithFrame(f frame.Frame) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.eye = f
	}
}

// WithFrustum sets the projection builder. Its current matrix is loaded into the projection stack.
//
// Parameters:
//   - f: the projection builder
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's projection builder
func WithFrustum(f frustum.Frustum) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.frustum = f
	}
}

// WithProjectionStack sets the stack that carries the projection channel.
//
// Parameters:
//   - s: the projection stack
//
// Returns:
//   - CameraBuilderOption: functional option to set the projection stack
func WithProjectionStack(s matrix_stack.MatrixStack) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = s
	}
}

// WithController attaches an input controller to the camera.
// A controller with no target is pointed at the camera's eye frame.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
