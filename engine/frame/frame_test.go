package frame

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-transform/common"
)

const tol = 1e-5

func requireOrthonormal(t *testing.T, f Frame) {
	t.Helper()
	require.InDelta(t, 1, f.Forward().Len(), tol)
	require.InDelta(t, 1, f.Up().Len(), tol)
	require.InDelta(t, 0, f.Forward().Dot(f.Up()), tol)
	require.InDelta(t, 1, f.Right().Len(), tol)
}

func assertVecNear(t *testing.T, want, got common.Vector3, msgAndArgs ...any) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], tol, msgAndArgs...)
}

func TestNewFrameDefaults(t *testing.T) {
	f := NewFrame()
	assert.Equal(t, common.Vec3(0, 0, 0), f.Origin())
	assert.Equal(t, common.Vec3(0, 0, -1), f.Forward())
	assert.Equal(t, common.Vec3(0, 1, 0), f.Up())
	assertVecNear(t, common.Vec3(1, 0, 0), f.Right())
	assert.Equal(t, common.Identity4(), f.ModelMatrix())
	assert.Equal(t, common.Identity4(), f.CameraMatrix())
}

func TestBuilderOptionsAreOrthonormalized(t *testing.T) {
	f := NewFrame(WithOrigin(1, 2, 3), WithForward(0, 0, 5), WithUp(0, 1, 1))
	assert.Equal(t, common.Vec3(1, 2, 3), f.Origin())
	assertVecNear(t, common.Vec3(0, 0, 1), f.Forward())
	assertVecNear(t, common.Vec3(0, 1, 0), f.Up())
	requireOrthonormal(t, f)

	// zero-length inputs fall back to the defaults
	g := NewFrame(WithForward(0, 0, 0), WithUp(0, 0, 0))
	assert.Equal(t, common.Vec3(0, 0, -1), g.Forward())
	assert.Equal(t, common.Vec3(0, 1, 0), g.Up())
}

func TestMovesFollowOwnAxes(t *testing.T) {
	f := NewFrame()
	f.RotateWorld(math32.Pi/2, 0, 1, 0) // now facing -X

	f.MoveForward(2)
	assertVecNear(t, common.Vec3(-2, 0, 0), f.Origin())

	f.MoveRight(1)
	assertVecNear(t, common.Vec3(-2, 0, -1), f.Origin())

	f.MoveUp(-3)
	assertVecNear(t, common.Vec3(-2, -3, -1), f.Origin())

	f.TranslateWorld(2, 3, 1)
	assertVecNear(t, common.Vec3(0, 0, 0), f.Origin())

	f.TranslateLocal(0, 0, 1) // local +Z is backward
	assertVecNear(t, common.Vec3(1, 0, 0), f.Origin())
}

func TestRotateWorldFullTurnRestoresBasis(t *testing.T) {
	for _, n := range []int{3, 8, 72, 360} {
		f := NewFrame(WithForward(1, -2, 0.5), WithUp(0, 1, 0))
		startForward, startUp := f.Forward(), f.Up()
		theta := 2 * math32.Pi / float32(n)

		for i := 0; i < n; i++ {
			f.RotateWorld(theta, 0.3, 1, -0.2)
			requireOrthonormal(t, f)
		}
		forward, up := f.Forward(), f.Up()
		assert.InDeltaSlice(t, startForward[:], forward[:], 5e-4, "n=%d", n)
		assert.InDeltaSlice(t, startUp[:], up[:], 5e-4, "n=%d", n)
	}
}

func TestRotateWorldMatchesMathgl(t *testing.T) {
	f := NewFrame()
	f.RotateWorld(0.6, 1, 1, 0)

	rot := mgl32.HomogRotate3D(0.6, mgl32.Vec3{1, 1, 0}.Normalize())
	wantForward := rot.Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
	wantUp := rot.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
	assertVecNear(t, common.Vector3(wantForward), f.Forward())
	assertVecNear(t, common.Vector3(wantUp), f.Up())
}

func TestRotationKeepsOriginFixed(t *testing.T) {
	f := NewFrame(WithOrigin(4, 5, 6))
	f.RotateWorld(1, 0, 1, 0)
	f.RotateLocal(-0.4, 1, 0, 0)
	assert.Equal(t, common.Vec3(4, 5, 6), f.Origin())
}

func TestRotateLocalUsesFrameAxes(t *testing.T) {
	a := NewFrame()
	a.RotateWorld(math32.Pi/2, 0, 0, 1) // roll so local up is world -X

	b := NewFrame()
	b.RotateWorld(math32.Pi/2, 0, 0, 1)

	a.RotateLocal(0.3, 0, 1, 0)
	up := b.Up()
	b.RotateWorld(0.3, up[0], up[1], up[2])

	assertVecNear(t, b.Forward(), a.Forward())
	assertVecNear(t, b.Up(), a.Up())
}

func TestLongRunningRotationDoesNotDrift(t *testing.T) {
	f := NewFrame()
	for i := 0; i < 20000; i++ {
		f.RotateLocal(0.0137, 1, 0.2, 0)
		f.RotateWorld(-0.0071, 0, 1, 0)
	}
	requireOrthonormal(t, f)
}

func TestCameraAndModelAreInverses(t *testing.T) {
	f := NewFrame(WithOrigin(3, -2, 7))
	f.RotateWorld(0.8, 0, 1, 0)
	f.RotateLocal(-0.3, 1, 0, 0)
	f.MoveForward(2.5)

	product := common.Mul4(f.CameraMatrix(), f.ModelMatrix())
	assert.True(t, product.ApproxEqual(common.Identity4(), 1e-5), "camera*model = %v", product)

	inv, ok := common.Invert4(f.ModelMatrix())
	require.True(t, ok)
	assert.True(t, inv.ApproxEqual(f.CameraMatrix(), 1e-4))
}

func TestCameraMatrixMatchesLookAt(t *testing.T) {
	f := NewFrame(WithOrigin(0, 2, 15))
	f.RotateWorld(0.4, 0, 1, 0)

	o, fw, up := f.Origin(), f.Forward(), f.Up()
	want := mgl32.LookAtV(mgl32.Vec3(o), mgl32.Vec3(o.Add(fw)), mgl32.Vec3(up))
	got := f.CameraMatrix()
	assert.InDeltaSlice(t, want[:], got[:], tol)

	rot := f.CameraRotationMatrix()
	assert.Equal(t, float32(0), rot[12])
	assert.Equal(t, float32(0), rot[13])
	assert.Equal(t, float32(0), rot[14])
	assert.InDeltaSlice(t, got[:12], rot[:12], tol)
}

func TestCameraMatrixPutsPointsInFrontOnNegativeZ(t *testing.T) {
	f := NewFrame()
	f.MoveForward(-15) // step back from the scene as the sample programs do
	p := common.TransformPoint(f.CameraMatrix(), common.Vec3(0, 0, 0))
	assertVecNear(t, common.Vec3(0, 0, -15), p)
}

func TestLookAt(t *testing.T) {
	f := NewFrame(WithOrigin(0, 0, 10))
	f.LookAt(10, 0, 10)
	assertVecNear(t, common.Vec3(1, 0, 0), f.Forward())
	requireOrthonormal(t, f)

	// facing straight down collapses the up hint, which must be replaced
	f.LookAt(0, -5, 10)
	assertVecNear(t, common.Vec3(0, -1, 0), f.Forward())
	requireOrthonormal(t, f)

	before := f.Forward()
	f.LookAt(0, 0, 10)
	assert.Equal(t, before, f.Forward())
}

func TestSettersReorthonormalize(t *testing.T) {
	f := NewFrame()
	f.SetForward(1, 1, 0)
	requireOrthonormal(t, f)
	assertVecNear(t, common.Vec3(1, 1, 0).Normalize(), f.Forward())

	f.SetUp(0, 0, 3)
	requireOrthonormal(t, f)
	assertVecNear(t, common.Vec3(0, 0, 1), f.Up())

	f.SetOrigin(1, 1, 1)
	assert.Equal(t, common.Vec3(1, 1, 1), f.Origin())

	f.SetForward(0, 0, 0)
	assertVecNear(t, common.Vec3(1, 1, 0).Normalize(), f.Forward())
}

func TestLocalWorldRoundTrip(t *testing.T) {
	f := NewFrame(WithOrigin(-1, 4, 2))
	f.RotateWorld(1.2, 1, 2, 3)

	p := common.Vec3(0.5, -2, 3)
	world := f.LocalToWorld(p, false)
	assertVecNear(t, common.TransformPoint(f.ModelMatrix(), p), world)
	assertVecNear(t, p, f.WorldToLocal(world))

	dir := f.LocalToWorld(common.Vec3(0, 0, -1), true)
	assertVecNear(t, f.Forward(), dir)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	f := NewFrame()
	f.RotateWorld(0.25, 1, 0, 1)
	fw, up := f.Forward(), f.Up()
	f.Normalize()
	assertVecNear(t, fw, f.Forward())
	assertVecNear(t, up, f.Up())
}

func TestPlacementConvention(t *testing.T) {
	f := NewFrame()
	assert.Equal(t, common.Identity4(), f.ModelMatrix())

	f.RotateLocal(0.5, 1, 0, 0)
	assert.Greater(t, f.Forward().Y(), float32(0))

	local := f.LocalToWorld(common.Vec3(0, 0, -1), true)
	assert.True(t, local.ApproxEqual(f.Forward(), 1e-6))
}
