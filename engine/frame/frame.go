package frame

import (
	"github.com/Carmen-Shannon/oxy-transform/common"
)

// Frame is an oriented point in space: an origin plus an orthonormal forward/up basis.
// A Frame can stand for the eye (CameraMatrix) or for a movable object (ModelMatrix).
// The right axis is always derived as forward × up and is never stored.
//
// Every mutation leaves forward and up unit length and mutually orthogonal; rotations
// run an explicit Gram-Schmidt correction afterwards so drift cannot accumulate over
// long interactive sessions.
//
// Local coordinates follow the OpenGL eye-space convention: +X is right, +Y is up and
// +Z points backward (opposite to forward). A Frame is not safe for concurrent use.
type Frame interface {
	// Origin returns the frame's position in world space.
	//
	// Returns:
	//   - common.Vector3: the world-space origin
	Origin() common.Vector3

	// Forward returns the unit direction the frame faces.
	//
	// Returns:
	//   - common.Vector3: the unit forward axis
	Forward() common.Vector3

	// Up returns the unit up axis, orthogonal to Forward.
	//
	// Returns:
	//   - common.Vector3: the unit up axis
	Up() common.Vector3

	// Right returns the derived right axis, forward × up.
	//
	// Returns:
	//   - common.Vector3: the unit right axis
	Right() common.Vector3

	// SetOrigin moves the frame to the given world-space position.
	//
	// Parameters:
	//   - x, y, z: the new origin
	SetOrigin(x, y, z float32)

	// SetForward points the frame along the given direction and corrects up to stay orthogonal.
	// A zero-length direction is ignored.
	//
	// Parameters:
	//   - x, y, z: the new forward direction (need not be unit length)
	SetForward(x, y, z float32)

	// SetUp sets the up hint and re-orthonormalizes it against the current forward axis.
	// A zero-length vector is ignored.
	//
	// Parameters:
	//   - x, y, z: the new up direction (need not be unit length)
	SetUp(x, y, z float32)

	// MoveForward translates the origin along the frame's current forward axis.
	//
	// Parameters:
	//   - distance: signed distance; negative values move backward
	MoveForward(distance float32)

	// MoveUp translates the origin along the frame's current up axis.
	//
	// Parameters:
	//   - distance: signed distance; negative values move down
	MoveUp(distance float32)

	// MoveRight translates the origin along the frame's current right axis.
	//
	// Parameters:
	//   - distance: signed distance; negative values move left
	MoveRight(distance float32)

	// TranslateWorld translates the origin by a world-space offset.
	//
	// Parameters:
	//   - x, y, z: world-space offset
	TranslateWorld(x, y, z float32)

	// TranslateLocal translates the origin by an offset expressed in the frame's local axes.
	//
	// Parameters:
	//   - x, y, z: local-space offset (+X right, +Y up, +Z backward)
	TranslateLocal(x, y, z float32)

	// RotateLocal rotates the basis about an axis given in the frame's own local space.
	// The origin is unchanged.
	//
	// Parameters:
	//   - angle: rotation angle in radians
	//   - x, y, z: local-space rotation axis (+X right, +Y up, +Z backward)
	RotateLocal(angle, x, y, z float32)

	// RotateWorld rotates the basis about a world-space axis through the origin.
	// The origin is unchanged.
	//
	// Parameters:
	//   - angle: rotation angle in radians
	//   - x, y, z: world-space rotation axis
	RotateWorld(angle, x, y, z float32)

	// LookAt turns the frame to face a world-space point, keeping the current up axis as a hint.
	// Looking at the origin itself is a no-op.
	//
	// Parameters:
	//   - x, y, z: the world-space point to face
	LookAt(x, y, z float32)

	// LocalToWorld converts a point from the frame's local space into world space.
	//
	// Parameters:
	//   - p: the local-space point
	//   - rotationOnly: when true the origin offset is not applied (direction transform)
	//
	// Returns:
	//   - common.Vector3: the world-space result
	LocalToWorld(p common.Vector3, rotationOnly bool) common.Vector3

	// WorldToLocal converts a world-space point into the frame's local space.
	//
	// Parameters:
	//   - p: the world-space point
	//
	// Returns:
	//   - common.Vector3: the local-space point
	WorldToLocal(p common.Vector3) common.Vector3

	// CameraMatrix builds the view matrix for an eye at this frame: world space is translated
	// by -origin and then rotated into the frame's basis. It is the exact inverse of ModelMatrix.
	//
	// Returns:
	//   - common.Matrix4: the view matrix
	CameraMatrix() common.Matrix4

	// CameraRotationMatrix is CameraMatrix without the translation, for geometry that
	// must stay centered on the eye such as a sky box.
	//
	// Returns:
	//   - common.Matrix4: the rotation-only view matrix
	CameraRotationMatrix() common.Matrix4

	// ModelMatrix builds the placement matrix for an object at this frame. Its columns are
	// right, up, -forward and origin, so the object's local -Z faces forward and a default
	// frame yields the identity.
	//
	// Returns:
	//   - common.Matrix4: the model matrix
	ModelMatrix() common.Matrix4

	// Normalize re-orthonormalizes forward and up. Every rotation already does this;
	// it is exposed for callers that want to force a correction.
	Normalize()
}

type frameImpl struct {
	origin  common.Vector3
	forward common.Vector3
	up      common.Vector3
}

var _ Frame = &frameImpl{}

// NewFrame creates a Frame at the world origin facing -Z with +Y up.
//
// Parameters:
//   - options: functional options to configure the frame
//
// Returns:
//   - Frame: the newly created frame
func NewFrame(options ...FrameBuilderOption) Frame {
	f := &frameImpl{
		forward: common.Vec3(0, 0, -1),
		up:      common.Vec3(0, 1, 0),
	}
	for _, option := range options {
		option(f)
	}
	f.orthonormalize()
	return f
}

func (f *frameImpl) Origin() common.Vector3 {
	return f.origin
}

func (f *frameImpl) Forward() common.Vector3 {
	return f.forward
}

func (f *frameImpl) Up() common.Vector3 {
	return f.up
}

func (f *frameImpl) Right() common.Vector3 {
	return f.forward.Cross(f.up)
}

func (f *frameImpl) SetOrigin(x, y, z float32) {
	f.origin = common.Vec3(x, y, z)
}

func (f *frameImpl) SetForward(x, y, z float32) {
	v := common.Vec3(x, y, z)
	if v.Len() < common.Epsilon {
		return
	}
	f.forward = v
	f.orthonormalize()
}

func (f *frameImpl) SetUp(x, y, z float32) {
	v := common.Vec3(x, y, z)
	if v.Len() < common.Epsilon {
		return
	}
	f.up = v
	f.orthonormalize()
}

func (f *frameImpl) MoveForward(distance float32) {
	f.origin = f.origin.Add(f.forward.Mul(distance))
}

func (f *frameImpl) MoveUp(distance float32) {
	f.origin = f.origin.Add(f.up.Mul(distance))
}

func (f *frameImpl) MoveRight(distance float32) {
	f.origin = f.origin.Add(f.Right().Mul(distance))
}

func (f *frameImpl) TranslateWorld(x, y, z float32) {
	f.origin = f.origin.Add(common.Vec3(x, y, z))
}

func (f *frameImpl) TranslateLocal(x, y, z float32) {
	f.origin = f.origin.Add(f.LocalToWorld(common.Vec3(x, y, z), true))
}

func (f *frameImpl) RotateLocal(angle, x, y, z float32) {
	axis := f.LocalToWorld(common.Vec3(x, y, z), true)
	f.RotateWorld(angle, axis[0], axis[1], axis[2])
}

func (f *frameImpl) RotateWorld(angle, x, y, z float32) {
	r := common.Rotation(angle, x, y, z)
	f.forward = common.TransformVector(r, f.forward)
	f.up = common.TransformVector(r, f.up)
	f.orthonormalize()
}

func (f *frameImpl) LookAt(x, y, z float32) {
	dir := common.Vec3(x, y, z).Sub(f.origin)
	if dir.Len() < common.Epsilon {
		return
	}
	f.forward = dir
	f.orthonormalize()
}

func (f *frameImpl) LocalToWorld(p common.Vector3, rotationOnly bool) common.Vector3 {
	world := f.Right().Mul(p[0]).Add(f.up.Mul(p[1])).Add(f.forward.Mul(-p[2]))
	if rotationOnly {
		return world
	}
	return world.Add(f.origin)
}

func (f *frameImpl) WorldToLocal(p common.Vector3) common.Vector3 {
	d := p.Sub(f.origin)
	return common.Vec3(d.Dot(f.Right()), d.Dot(f.up), -d.Dot(f.forward))
}

func (f *frameImpl) CameraMatrix() common.Matrix4 {
	m := f.CameraRotationMatrix()
	r, u, b := f.Right(), f.up, f.forward.Neg()
	m[12] = -r.Dot(f.origin)
	m[13] = -u.Dot(f.origin)
	m[14] = -b.Dot(f.origin)
	return m
}

func (f *frameImpl) CameraRotationMatrix() common.Matrix4 {
	r, u, b := f.Right(), f.up, f.forward.Neg()
	// rows are the basis vectors, i.e. the transpose of the placement rotation
	return common.Matrix4{
		r[0], u[0], b[0], 0,
		r[1], u[1], b[1], 0,
		r[2], u[2], b[2], 0,
		0, 0, 0, 1,
	}
}

func (f *frameImpl) ModelMatrix() common.Matrix4 {
	r, u, b := f.Right(), f.up, f.forward.Neg()
	return common.Matrix4{
		r[0], r[1], r[2], 0,
		u[0], u[1], u[2], 0,
		b[0], b[1], b[2], 0,
		f.origin[0], f.origin[1], f.origin[2], 1,
	}
}

func (f *frameImpl) Normalize() {
	f.orthonormalize()
}

// orthonormalize applies Gram-Schmidt with forward as the authoritative axis.
// When up has collapsed onto forward, the world axis least aligned with forward replaces it.
func (f *frameImpl) orthonormalize() {
	f.forward = f.forward.Normalize()
	if f.forward == (common.Vector3{}) {
		f.forward = common.Vec3(0, 0, -1)
	}

	up := f.up.Sub(f.forward.Mul(f.up.Dot(f.forward)))
	if up.Len() < common.Epsilon {
		up = leastAlignedAxis(f.forward)
		up = up.Sub(f.forward.Mul(up.Dot(f.forward)))
	}
	f.up = up.Normalize()
}

func leastAlignedAxis(v common.Vector3) common.Vector3 {
	axes := [3]common.Vector3{common.Vec3(0, 1, 0), common.Vec3(0, 0, 1), common.Vec3(1, 0, 0)}
	best := axes[0]
	bestDot := float32(2)
	for _, a := range axes {
		d := v.Dot(a)
		if d < 0 {
			d = -d
		}
		if d < bestDot {
			best, bestDot = a, d
		}
	}
	return best
}
