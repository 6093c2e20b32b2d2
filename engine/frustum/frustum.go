package frustum

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-transform/common"
)

// ErrInvalidRange is returned for malformed projection parameters.
var ErrInvalidRange = errors.New("invalid projection range")

// Defaults used by NewFrustum when no projection option is given.
const (
	DefaultFovY   float32 = 35
	DefaultAspect float32 = 1
	DefaultNear   float32 = 1
	DefaultFar    float32 = 500
)

// Frustum builds the projection matrix for one viewport. The matrix is recomputed from
// scratch on every change and uses OpenGL clip conventions (normalized depth in [-1, 1]).
// A failed update leaves the previous projection untouched.
type Frustum interface {
	// SetPerspective switches to a symmetric perspective projection.
	//
	// Parameters:
	//   - fovYDegrees: vertical field of view in degrees, in (0, 180)
	//   - aspect: width / height, > 0
	//   - near: distance to the near plane, > 0
	//   - far: distance to the far plane, > near
	//
	// Returns:
	//   - error: ErrInvalidRange if any parameter is out of range
	SetPerspective(fovYDegrees, aspect, near, far float32) error

	// SetOrthographic switches to an orthographic projection of the given box.
	//
	// Parameters:
	//   - xMin, xMax: horizontal extents, xMin < xMax
	//   - yMin, yMax: vertical extents, yMin < yMax
	//   - zMin, zMax: depth extents along -Z, zMin < zMax
	//
	// Returns:
	//   - error: ErrInvalidRange if any extent is empty
	SetOrthographic(xMin, xMax, yMin, yMax, zMin, zMax float32) error

	// Resize recomputes a perspective projection for a new viewport size, keeping the
	// field of view and clip planes. Orthographic projections are left unchanged.
	//
	// Parameters:
	//   - width, height: the new viewport size in pixels
	//
	// Returns:
	//   - error: ErrInvalidRange if either dimension is not positive
	Resize(width, height int) error

	// ProjectionMatrix returns the current projection.
	//
	// Returns:
	//   - common.Matrix4: the projection matrix
	ProjectionMatrix() common.Matrix4

	// Planes returns the six culling planes of the view volume in the space the view matrix maps from.
	//
	// Parameters:
	//   - view: the view (camera) matrix
	//
	// Returns:
	//   - common.FrustumPlanes: normalized planes with the inside on the positive side
	Planes(view common.Matrix4) common.FrustumPlanes

	// FovY returns the vertical field of view in degrees (perspective only).
	FovY() float32

	// Aspect returns the aspect ratio (perspective only).
	Aspect() float32

	// Near returns the near plane distance.
	Near() float32

	// Far returns the far plane distance.
	Far() float32

	// Orthographic reports whether the current projection is orthographic.
	Orthographic() bool
}

type frustumImpl struct {
	fovY   float32
	aspect float32
	near   float32
	far    float32

	orthographic bool
	box          [6]float32

	projection common.Matrix4

	// pending holds the first option that failed validation, reported by NewFrustum.
	pending error
}

var _ Frustum = &frustumImpl{}

// NewFrustum creates a Frustum, by default a 35 degree perspective with aspect 1 and
// clip planes at 1 and 500.
//
// Parameters:
//   - options: functional options selecting the initial projection
//
// Returns:
//   - Frustum: the newly created frustum
//   - error: ErrInvalidRange if an option carried malformed parameters
func NewFrustum(options ...FrustumBuilderOption) (Frustum, error) {
	f := &frustumImpl{}
	if err := f.SetPerspective(DefaultFovY, DefaultAspect, DefaultNear, DefaultFar); err != nil {
		return nil, err
	}
	for _, option := range options {
		option(f)
		if f.pending != nil {
			return nil, f.pending
		}
	}
	return f, nil
}

func (f *frustumImpl) SetPerspective(fovYDegrees, aspect, near, far float32) error {
	switch {
	case near <= 0:
		return fmt.Errorf("%w: near plane %v must be positive", ErrInvalidRange, near)
	case far <= near:
		return fmt.Errorf("%w: far plane %v must be beyond near plane %v", ErrInvalidRange, far, near)
	case aspect <= 0:
		return fmt.Errorf("%w: aspect ratio %v must be positive", ErrInvalidRange, aspect)
	case fovYDegrees <= 0 || fovYDegrees >= 180:
		return fmt.Errorf("%w: field of view %v must be in (0, 180) degrees", ErrInvalidRange, fovYDegrees)
	}

	f.fovY, f.aspect, f.near, f.far = fovYDegrees, aspect, near, far
	f.orthographic = false
	f.projection = common.Perspective(common.DegToRad(fovYDegrees), aspect, near, far)
	return nil
}

func (f *frustumImpl) SetOrthographic(xMin, xMax, yMin, yMax, zMin, zMax float32) error {
	if xMin >= xMax || yMin >= yMax || zMin >= zMax {
		return fmt.Errorf("%w: empty orthographic box x[%v,%v] y[%v,%v] z[%v,%v]",
			ErrInvalidRange, xMin, xMax, yMin, yMax, zMin, zMax)
	}

	f.box = [6]float32{xMin, xMax, yMin, yMax, zMin, zMax}
	f.near, f.far = zMin, zMax
	f.orthographic = true
	f.projection = common.Ortho(xMin, xMax, yMin, yMax, zMin, zMax)
	return nil
}

func (f *frustumImpl) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidRange, width, height)
	}
	if f.orthographic {
		return nil
	}
	return f.SetPerspective(f.fovY, float32(width)/float32(height), f.near, f.far)
}

func (f *frustumImpl) ProjectionMatrix() common.Matrix4 {
	return f.projection
}

func (f *frustumImpl) Planes(view common.Matrix4) common.FrustumPlanes {
	return common.ExtractFrustumFromMatrix(common.Mul4(f.projection, view))
}

func (f *frustumImpl) FovY() float32 {
	return f.fovY
}

func (f *frustumImpl) Aspect() float32 {
	return f.aspect
}

func (f *frustumImpl) Near() float32 {
	return f.near
}

func (f *frustumImpl) Far() float32 {
	return f.far
}

func (f *frustumImpl) Orthographic() bool {
	return f.orthographic
}
