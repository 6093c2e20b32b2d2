package frustum

// FrustumBuilderOption is a functional option for configuring a Frustum.
// Options are validated as they are applied; the first failure is returned by NewFrustum.
type FrustumBuilderOption func(*frustumImpl)

// WithPerspective selects a symmetric perspective projection.
//
// Parameters:
//   - fovYDegrees: vertical field of view in degrees
//   - aspect: width / height
//   - near, far: clip plane distances
//
// Returns:
//   - FrustumBuilderOption: option function to apply
func WithPerspective(fovYDegrees, aspect, near, far float32) FrustumBuilderOption {
	return func(f *frustumImpl) {
		f.pending = f.SetPerspective(fovYDegrees, aspect, near, far)
	}
}

// WithOrthographic selects an orthographic projection of the given box.
//
// Parameters:
//   - xMin, xMax, yMin, yMax, zMin, zMax: the view volume
//
// Returns:
//   - FrustumBuilderOption: option function to apply
func WithOrthographic(xMin, xMax, yMin, yMax, zMin, zMax float32) FrustumBuilderOption {
	return func(f *frustumImpl) {
		f.pending = f.SetOrthographic(xMin, xMax, yMin, yMax, zMin, zMax)
	}
}
