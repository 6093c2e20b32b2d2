package common

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   Vector3
	Distance float32
}

// SignedDistance returns the signed distance from p to the plane.
// Positive values lie on the side the normal points toward.
func (pl Plane) SignedDistance(p Vector3) float32 {
	return pl.Normal.Dot(p) + pl.Distance
}

// FrustumPlanes represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type FrustumPlanes struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumFromMatrix extracts frustum planes from a combined projection * view matrix.
// Uses the Gribb/Hartmann method for plane extraction with OpenGL clip conventions,
// so the resulting planes live in the space the view matrix maps from (world space).
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the combined projection * view matrix (column-major)
//
// Returns:
//   - FrustumPlanes: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj Matrix4) FrustumPlanes {
	var f FrustumPlanes

	r0, r1, r2, r3 := viewProj.Row(0), viewProj.Row(1), viewProj.Row(2), viewProj.Row(3)
	rows := [6]Vector4{
		FrustumLeft:   addRows(r3, r0, 1),
		FrustumRight:  addRows(r3, r0, -1),
		FrustumBottom: addRows(r3, r1, 1),
		FrustumTop:    addRows(r3, r1, -1),
		FrustumNear:   addRows(r3, r2, 1),
		FrustumFar:    addRows(r3, r2, -1),
	}
	for i, r := range rows {
		f.Planes[i] = Plane{Normal: r.Vec3(), Distance: r[3]}
		f.normalizePlane(i)
	}

	return f
}

// ContainsPoint reports whether p lies inside (or on) every plane.
func (f FrustumPlanes) ContainsPoint(p Vector3) bool {
	return f.IntersectsSphere(p, 0)
}

// IntersectsSphere reports whether a sphere is at least partially inside the frustum.
// The test is conservative: spheres near a frustum corner may pass without being visible.
//
// Parameters:
//   - center: sphere center in the same space as the planes
//   - radius: sphere radius
//
// Returns:
//   - bool: false only when the sphere lies entirely outside one of the planes
func (f FrustumPlanes) IntersectsSphere(center Vector3, radius float32) bool {
	for _, pl := range f.Planes {
		if pl.SignedDistance(center) < -radius {
			return false
		}
	}
	return true
}

func addRows(a, b Vector4, sign float32) Vector4 {
	return Vector4{a[0] + sign*b[0], a[1] + sign*b[1], a[2] + sign*b[2], a[3] + sign*b[3]}
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *FrustumPlanes) normalizePlane(index int) {
	p := &f.Planes[index]
	length := p.Normal.Len()

	if length > 0 {
		invLen := 1.0 / length
		p.Normal = p.Normal.Mul(invLen)
		p.Distance *= invLen
	}
}
