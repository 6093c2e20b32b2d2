package matrix_stack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/frame"
)

func TestNewMatrixStackStartsAtIdentity(t *testing.T) {
	s := NewMatrixStack()
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, DefaultCapacity, s.Capacity())
	assert.Equal(t, common.Identity4(), s.Top())
}

func TestWithCapacity(t *testing.T) {
	assert.Equal(t, 8, NewMatrixStack(WithCapacity(8)).Capacity())
	assert.Equal(t, DefaultCapacity, NewMatrixStack(WithCapacity(0)).Capacity())
	assert.Equal(t, DefaultCapacity, NewMatrixStack(WithCapacity(-3)).Capacity())
}

func TestPushCopyPopRoundTrip(t *testing.T) {
	s := NewMatrixStack()
	s.LoadMatrix(common.Translation(1, 2, 3))
	s.Rotate(0.5, 0, 1, 0)
	startDepth, startTop := s.Depth(), s.Top()

	for i := 0; i < 10; i++ {
		require.NoError(t, s.PushCopy())
		s.Translate(float32(i), 0, 0)
		s.Scale(2, 1, 1)
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, s.Pop())
	}

	assert.Equal(t, startDepth, s.Depth())
	assert.Equal(t, startTop, s.Top())
}

func TestPopFloorUnderflows(t *testing.T) {
	s := NewMatrixStack()
	err := s.Pop()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, common.Identity4(), s.Top())
}

func TestPushPastCapacityOverflows(t *testing.T) {
	s := NewMatrixStack(WithCapacity(3))
	require.NoError(t, s.PushIdentity())
	require.NoError(t, s.PushLoad(common.Translation(1, 0, 0)))

	pushes := map[string]func() error{
		"identity": s.PushIdentity,
		"copy":     s.PushCopy,
		"multiply": func() error { return s.PushMultiply(common.Scale(2, 2, 2)) },
		"load":     func() error { return s.PushLoad(common.Identity4()) },
	}
	for name, push := range pushes {
		err := push()
		assert.ErrorIs(t, err, ErrStackOverflow, name)
		assert.Equal(t, 3, s.Depth(), name)
		assert.Equal(t, common.Translation(1, 0, 0), s.Top(), name)
	}
}

func TestCapacityOneAllowsNoPush(t *testing.T) {
	s := NewMatrixStack(WithCapacity(1))
	assert.ErrorIs(t, s.PushCopy(), ErrStackOverflow)
	assert.ErrorIs(t, s.Pop(), ErrStackUnderflow)
}

func TestMultiplyTopRightMultiplies(t *testing.T) {
	s := NewMatrixStack()
	s.LoadMatrix(common.Translation(10, 0, 0))
	s.MultiplyTop(common.Scale(2, 2, 2))

	assert.Equal(t, common.Mul4(common.Translation(10, 0, 0), common.Scale(2, 2, 2)), s.Top())

	// the scale applies first, then the translation
	p := common.TransformPoint(s.Top(), common.Vec3(1, 0, 0))
	assert.InDeltaSlice(t, []float32{12, 0, 0}, p[:], 1e-6)
}

func TestPushMultiplyComposesOntoCopy(t *testing.T) {
	s := NewMatrixStack()
	s.LoadMatrix(common.Translation(0, 0, -4))
	require.NoError(t, s.PushMultiply(common.Rotation(1, 0, 1, 0)))

	assert.Equal(t, 2, s.Depth())
	assert.Equal(t, common.Mul4(common.Translation(0, 0, -4), common.Rotation(1, 0, 1, 0)), s.Top())

	require.NoError(t, s.Pop())
	assert.Equal(t, common.Translation(0, 0, -4), s.Top())
}

func TestPushIdentityAndLoads(t *testing.T) {
	s := NewMatrixStack()
	s.LoadMatrix(common.Scale(3, 3, 3))
	require.NoError(t, s.PushIdentity())
	assert.Equal(t, common.Identity4(), s.Top())

	s.LoadMatrix(common.Translation(1, 1, 1))
	s.LoadIdentity()
	assert.Equal(t, common.Identity4(), s.Top())
}

func TestNestedCompositionMatchesManualProduct(t *testing.T) {
	camera := frame.NewFrame()
	camera.MoveForward(-15)
	object := frame.NewFrame(frame.WithOrigin(1, 0, -2))
	object.RotateWorld(0.3, 1, 0, 0)

	s := NewMatrixStack()
	require.NoError(t, s.PushCopy())
	s.MultiplyTop(camera.CameraMatrix())
	require.NoError(t, s.PushCopy())
	s.MultiplyFrame(object)
	s.Translate(0, 0, -4)
	s.Rotate(0.7, 0, 1, 0)

	want := common.Mul4(
		common.Mul4(camera.CameraMatrix(), object.ModelMatrix()),
		common.Mul4(common.Translation(0, 0, -4), common.Rotation(0.7, 0, 1, 0)),
	)
	assert.True(t, want.ApproxEqual(s.Top(), 1e-4))

	require.NoError(t, s.Pop())
	assert.Equal(t, camera.CameraMatrix(), s.Top())
	require.NoError(t, s.Pop())
	assert.Equal(t, 1, s.Depth())
}

func TestLoadFrame(t *testing.T) {
	f := frame.NewFrame(frame.WithOrigin(5, 6, 7))
	s := NewMatrixStack()
	s.LoadFrame(f)
	assert.Equal(t, f.ModelMatrix(), s.Top())
}
