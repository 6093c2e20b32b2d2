package camera

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/frame"
	"github.com/Carmen-Shannon/oxy-transform/engine/frustum"
	"github.com/Carmen-Shannon/oxy-transform/engine/matrix_stack"
)

type cameraImpl struct {
	eye        frame.Frame
	frustum    frustum.Frustum
	projection matrix_stack.MatrixStack
	controller CameraController
}

// Camera bundles the eye frame, the projection builder and the projection matrix stack.
// The projection stack's top always holds the builder's current matrix, so a transform
// pipeline bound to it sees viewport changes as soon as Resize returns.
type Camera interface {
	// Frame returns the eye frame. Moving or rotating it moves the camera.
	//
	// Returns:
	//   - frame.Frame: the eye frame
	Frame() frame.Frame

	// Frustum returns the projection builder.
	//
	// Returns:
	//   - frustum.Frustum: the projection builder
	Frustum() frustum.Frustum

	// ProjectionStack returns the projection channel's matrix stack.
	//
	// Returns:
	//   - matrix_stack.MatrixStack: the projection stack
	ProjectionStack() matrix_stack.MatrixStack

	// ViewMatrix returns the eye frame's camera matrix.
	//
	// Returns:
	//   - common.Matrix4: the view matrix
	ViewMatrix() common.Matrix4

	// ViewFrustum returns the world-space culling planes for the current eye and projection.
	//
	// Returns:
	//   - common.FrustumPlanes: the culling planes
	ViewFrustum() common.FrustumPlanes

	// Resize handles a viewport size change: the perspective is recomputed with the new aspect
	// ratio and loaded into the projection stack before the next frame's queries.
	//
	// Parameters:
	//   - width, height: the new viewport size in pixels
	//
	// Returns:
	//   - error: frustum.ErrInvalidRange for a degenerate viewport; the projection is then unchanged
	Resize(width, height int) error

	// SetPerspective replaces the perspective parameters and reloads the projection stack.
	//
	// Parameters:
	//   - fovYDegrees: vertical field of view in degrees
	//   - aspect: width / height
	//   - near, far: clip plane distances
	//
	// Returns:
	//   - error: frustum.ErrInvalidRange for malformed parameters
	SetPerspective(fovYDegrees, aspect, near, far float32) error

	// Controller returns the attached input controller, or nil.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// SetController attaches an input controller. A controller without a target is pointed at the eye frame.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera. Without options the eye sits at the origin facing -Z and the
// projection is a 35 degree perspective with aspect 1 and clip planes at 1 and 500.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{}
	for _, option := range options {
		option(c)
	}

	if c.eye == nil {
		c.eye = frame.NewFrame()
	}
	if c.frustum == nil {
		f, err := frustum.NewFrustum()
		if err != nil {
			panic(fmt.Sprintf("camera: failed to build default frustum: %v", err))
		}
		c.frustum = f
	}
	if c.projection == nil {
		c.projection = matrix_stack.NewMatrixStack()
	}
	c.projection.LoadMatrix(c.frustum.ProjectionMatrix())

	if c.controller != nil && c.controller.Target() == nil {
		c.controller.SetTarget(c.eye)
	}
	return c
}

func (c *cameraImpl) Frame() frame.Frame {
	return c.eye
}

func (c *cameraImpl) Frustum() frustum.Frustum {
	return c.frustum
}

func (c *cameraImpl) ProjectionStack() matrix_stack.MatrixStack {
	return c.projection
}

func (c *cameraImpl) ViewMatrix() common.Matrix4 {
	return c.eye.CameraMatrix()
}

func (c *cameraImpl) ViewFrustum() common.FrustumPlanes {
	return c.frustum.Planes(c.ViewMatrix())
}

func (c *cameraImpl) Resize(width, height int) error {
	if err := c.frustum.Resize(width, height); err != nil {
		return fmt.Errorf("camera resize: %w", err)
	}
	c.projection.LoadMatrix(c.frustum.ProjectionMatrix())
	return nil
}

func (c *cameraImpl) SetPerspective(fovYDegrees, aspect, near, far float32) error {
	if err := c.frustum.SetPerspective(fovYDegrees, aspect, near, far); err != nil {
		return fmt.Errorf("camera perspective: %w", err)
	}
	c.projection.LoadMatrix(c.frustum.ProjectionMatrix())
	return nil
}

func (c *cameraImpl) Controller() CameraController {
	return c.controller
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.controller = ctrl
	if ctrl != nil && ctrl.Target() == nil {
		ctrl.SetTarget(c.eye)
	}
}
