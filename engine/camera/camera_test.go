package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/frame"
	"github.com/Carmen-Shannon/oxy-transform/engine/frustum"
	"github.com/Carmen-Shannon/oxy-transform/engine/matrix_stack"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	require.NotNil(t, c.Frame())
	require.NotNil(t, c.Frustum())
	require.NotNil(t, c.ProjectionStack())

	assert.Equal(t, common.Identity4(), c.ViewMatrix())
	assert.Equal(t, c.Frustum().ProjectionMatrix(), c.ProjectionStack().Top())
	assert.Equal(t, 1, c.ProjectionStack().Depth())
	assert.Nil(t, c.Controller())
}

func TestNewCameraWithOptions(t *testing.T) {
	eye := frame.NewFrame(frame.WithOrigin(0, 2, 10))
	f, err := frustum.NewFrustum(frustum.WithPerspective(60, 2, 0.5, 50))
	require.NoError(t, err)
	proj := matrix_stack.NewMatrixStack(matrix_stack.WithCapacity(4))
	ctrl := NewCameraController()

	c := NewCamera(WithFrame(eye), WithFrustum(f), WithProjectionStack(proj), WithController(ctrl))
	assert.Same(t, eye, c.Frame())
	assert.Same(t, proj, c.ProjectionStack())
	assert.Equal(t, f.ProjectionMatrix(), proj.Top())
	assert.Same(t, eye, ctrl.Target())

	want := mgl32.LookAtV(mgl32.Vec3{0, 2, 10}, mgl32.Vec3{0, 2, 9}, mgl32.Vec3{0, 1, 0})
	got := c.ViewMatrix()
	assert.InDeltaSlice(t, want[:], got[:], 1e-5)
}

func TestResizeReloadsProjectionStack(t *testing.T) {
	c := NewCamera()
	require.NoError(t, c.Resize(800, 600))

	want := mgl32.Perspective(mgl32.DegToRad(35), 800.0/600.0, 1, 500)
	got := c.ProjectionStack().Top()
	assert.InDeltaSlice(t, want[:], got[:], 1e-5)
	assert.InDelta(t, 800.0/600.0, c.Frustum().Aspect(), 1e-6)
}

func TestResizeDegenerateKeepsProjection(t *testing.T) {
	c := NewCamera()
	before := c.ProjectionStack().Top()

	err := c.Resize(800, 0)
	assert.ErrorIs(t, err, frustum.ErrInvalidRange)
	assert.Equal(t, before, c.ProjectionStack().Top())
}

func TestSetPerspective(t *testing.T) {
	c := NewCamera()
	require.NoError(t, c.SetPerspective(45, 1.5, 0.1, 100))
	want := mgl32.Perspective(mgl32.DegToRad(45), 1.5, 0.1, 100)
	got := c.ProjectionStack().Top()
	assert.InDeltaSlice(t, want[:], got[:], 1e-4)

	before := c.ProjectionStack().Top()
	assert.ErrorIs(t, c.SetPerspective(45, 1.5, 10, 1), frustum.ErrInvalidRange)
	assert.Equal(t, before, c.ProjectionStack().Top())
}

func TestViewFrustumFollowsEye(t *testing.T) {
	c := NewCamera()
	ahead := common.Vec3(0, 0, -20)

	assert.True(t, c.ViewFrustum().ContainsPoint(ahead))

	c.Frame().RotateWorld(math32.Pi, 0, 1, 0)
	assert.False(t, c.ViewFrustum().ContainsPoint(ahead))
	assert.True(t, c.ViewFrustum().ContainsPoint(common.Vec3(0, 0, 20)))
}

func TestSetControllerTargetsEye(t *testing.T) {
	c := NewCamera()
	ctrl := NewCameraController()
	c.SetController(ctrl)
	assert.Same(t, c.Frame(), ctrl.Target())

	other := frame.NewFrame()
	bound := NewCameraController(WithTarget(other))
	c.SetController(bound)
	assert.Same(t, other, bound.Target())
}
