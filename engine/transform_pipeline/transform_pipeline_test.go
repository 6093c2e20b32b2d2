package transform_pipeline

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/frame"
	"github.com/Carmen-Shannon/oxy-transform/engine/frustum"
	"github.com/Carmen-Shannon/oxy-transform/engine/matrix_stack"
)

func newBound(t *testing.T) (TransformPipeline, matrix_stack.MatrixStack, matrix_stack.MatrixStack) {
	t.Helper()
	mv := matrix_stack.NewMatrixStack()
	proj := matrix_stack.NewMatrixStack()
	p := NewTransformPipeline(WithMatrixStacks(mv, proj))
	require.True(t, p.Bound())
	return p, mv, proj
}

func TestUnboundQueriesFail(t *testing.T) {
	p := NewTransformPipeline()
	assert.False(t, p.Bound())

	_, err := p.ModelViewMatrix()
	assert.ErrorIs(t, err, ErrNotBound)
	_, err = p.ProjectionMatrix()
	assert.ErrorIs(t, err, ErrNotBound)
	_, err = p.ModelViewProjectionMatrix()
	assert.ErrorIs(t, err, ErrNotBound)
	_, err = p.NormalMatrix()
	assert.ErrorIs(t, err, ErrNotBound)

	p.Bind(matrix_stack.NewMatrixStack(), nil)
	assert.False(t, p.Bound())
	_, err = p.ModelViewMatrix()
	assert.ErrorIs(t, err, ErrNotBound)
}

func TestQueriesReadCurrentTops(t *testing.T) {
	p, mv, proj := newBound(t)
	mv.LoadMatrix(common.Translation(1, 2, 3))
	proj.LoadMatrix(common.Perspective(1, 1, 1, 10))

	got, err := p.ModelViewMatrix()
	require.NoError(t, err)
	assert.Equal(t, mv.Top(), got)

	got, err = p.ProjectionMatrix()
	require.NoError(t, err)
	assert.Equal(t, proj.Top(), got)

	// reads are live, not cached
	require.NoError(t, mv.PushMultiply(common.Scale(2, 2, 2)))
	got, err = p.ModelViewMatrix()
	require.NoError(t, err)
	assert.Equal(t, mv.Top(), got)
}

func TestModelViewProjectionOrder(t *testing.T) {
	p, mv, proj := newBound(t)
	mv.LoadMatrix(common.Mul4(common.Translation(0, 0, -5), common.Rotation(0.4, 0, 1, 0)))
	proj.LoadMatrix(common.Perspective(0.8, 1.5, 1, 100))

	got, err := p.ModelViewProjectionMatrix()
	require.NoError(t, err)

	want := mgl32.Mat4(proj.Top()).Mul4(mgl32.Mat4(mv.Top()))
	assert.InDeltaSlice(t, want[:], got[:], 1e-5)
	assert.False(t, got.ApproxEqual(common.Mul4(mv.Top(), proj.Top()), 1e-3))
}

func TestRebindReplacesStacks(t *testing.T) {
	p, _, proj := newBound(t)
	other := matrix_stack.NewMatrixStack()
	other.LoadMatrix(common.Translation(9, 9, 9))

	p.Bind(other, proj)
	got, err := p.ModelViewMatrix()
	require.NoError(t, err)
	assert.Equal(t, common.Translation(9, 9, 9), got)
}

func TestDepthSeparationThroughPipeline(t *testing.T) {
	p, _, proj := newBound(t)
	f, err := frustum.NewFrustum()
	require.NoError(t, err)
	require.NoError(t, f.SetPerspective(35, 800.0/600.0, 1, 500))
	proj.LoadMatrix(f.ProjectionMatrix())

	mvp, err := p.ModelViewProjectionMatrix()
	require.NoError(t, err)

	near := common.TransformVector4(mvp, common.Vec4(0, 0, -1, 1)).PerspectiveDivide()
	far := common.TransformVector4(mvp, common.Vec4(0, 0, -500, 1)).PerspectiveDivide()
	assert.NotEqual(t, near[2], far[2])
	for _, v := range []common.Vector3{near, far} {
		for _, c := range v {
			assert.InDelta(t, 0, c, 1+1e-5)
		}
	}
}

func TestNormalMatrixRigidReturnsRotation(t *testing.T) {
	p, mv, _ := newBound(t)
	camera := frame.NewFrame(frame.WithOrigin(2, 3, 10))
	camera.RotateWorld(0.7, 0, 1, 0)
	mv.LoadMatrix(camera.CameraMatrix())
	mv.Rotate(1.1, 1, 0, 1)
	mv.Translate(4, 0, -2)

	got, err := p.NormalMatrix()
	require.NoError(t, err)
	assert.Equal(t, common.Upper3x3(mv.Top()), got)
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	p, mv, _ := newBound(t)
	mv.LoadMatrix(common.Mul4(common.Rotation(0.5, 0, 0, 1), common.Scale(1, 4, 1)))

	got, err := p.NormalMatrix()
	require.NoError(t, err)

	want := mgl32.Mat4(mv.Top()).Mat3().Inv().Transpose()
	assert.InDeltaSlice(t, want[:], got[:], 1e-5)

	// a surface normal stays perpendicular to a transformed tangent
	tangent := common.TransformVector(mv.Top(), common.Vec3(1, 1, 0))
	normal := got.MulVector(common.Vec3(1, -1, 0))
	assert.InDelta(t, 0, tangent.Dot(normal), 1e-5)

	// the direct 3x3 would not keep it perpendicular
	direct := common.Upper3x3(mv.Top()).MulVector(common.Vec3(1, -1, 0))
	assert.Greater(t, abs(tangent.Dot(direct)), float32(0.1))
}

func TestNormalMatrixSmallNonUniformScales(t *testing.T) {
	tests := []struct {
		name  string
		angle float32
		scale common.Vector3
	}{
		{"one percent", 0, common.Vec3(0.01, 0.01, 0.005)},
		{"one percent rotated", 0.8, common.Vec3(0.01, 0.01, 0.005)},
		{"wide range", 0, common.Vec3(1e3, 1, 1e-3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, mv, _ := newBound(t)
			mv.Rotate(tt.angle, 0, 1, 0)
			mv.Scale(tt.scale[0], tt.scale[1], tt.scale[2])

			got, err := p.NormalMatrix()
			require.NoError(t, err)
			assert.NotEqual(t, common.Upper3x3(mv.Top()), got)

			want := mgl32.Mat4(mv.Top()).Mat3().Inv().Transpose()
			var largest float32
			for _, v := range want {
				largest = max(largest, abs(v))
			}
			assert.InDeltaSlice(t, want[:], got[:], float64(largest)*1e-5)

			n := mgl32.Vec3{1, 0, 1}
			wantDir := want.Mul3x1(n).Normalize()
			gotDir := got.MulVector(common.Vec3(1, 0, 1)).Normalize()
			assert.InDeltaSlice(t, wantDir[:], gotDir[:], 1e-4)
		})
	}
}

func TestNormalMatrixOnePercentScaleDirection(t *testing.T) {
	p, mv, _ := newBound(t)
	mv.Scale(0.01, 0.01, 0.005)

	got, err := p.NormalMatrix()
	require.NoError(t, err)

	dir := got.MulVector(common.Vec3(1, 0, 1)).Normalize()
	assert.True(t, dir.ApproxEqual(common.Vec3(1, 0, 2).Normalize(), 1e-5), "got %v", dir)
}

func TestNormalMatrixSingularFallsBack(t *testing.T) {
	p, mv, _ := newBound(t)
	mv.LoadMatrix(common.Scale(1, 0, 1))

	got, err := p.NormalMatrix()
	require.NoError(t, err)
	assert.Equal(t, common.Upper3x3(mv.Top()), got)

	// small but invertible scales are not singular
	mv.LoadMatrix(common.Scale(0.01, 0.01, 0.005))
	got, err = p.NormalMatrix()
	require.NoError(t, err)
	assert.NotEqual(t, common.Upper3x3(mv.Top()), got)
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
