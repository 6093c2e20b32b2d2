package common

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// Identity4 returns the 4x4 identity matrix.
//
// Returns:
//   - Matrix4: the identity matrix
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Identity3 returns the 3x3 identity matrix.
//
// Returns:
//   - Matrix3: the identity matrix
func Identity3() Matrix3 {
	return Matrix3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Mul4 multiplies two 4x4 matrices.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Acting on a column vector, the result applies b first and then a. Not commutative.
//
// Parameters:
//   - a: left-hand matrix
//   - b: right-hand matrix
//
// Returns:
//   - Matrix4: the product a * b
func Mul4(a, b Matrix4) Matrix4 {
	var out Matrix4
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			out[i*4+j] = sum
		}
	}
	return out
}

// Mul3 multiplies two 3x3 column-major matrices.
//
// Parameters:
//   - a: left-hand matrix
//   - b: right-hand matrix
//
// Returns:
//   - Matrix3: the product a * b
func Mul3(a, b Matrix3) Matrix3 {
	var out Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := float32(0)
			for k := 0; k < 3; k++ {
				sum += a[k*3+j] * b[i*3+k]
			}
			out[i*3+j] = sum
		}
	}
	return out
}

// Translation returns a matrix translating by (x, y, z).
//
// Parameters:
//   - x, y, z: translation along each world axis
//
// Returns:
//   - Matrix4: the translation matrix
func Translation(x, y, z float32) Matrix4 {
	m := Identity4()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale returns a matrix scaling by (x, y, z).
//
// Parameters:
//   - x, y, z: scale factor along each axis
//
// Returns:
//   - Matrix4: the scale matrix
func Scale(x, y, z float32) Matrix4 {
	m := Identity4()
	m[0], m[5], m[10] = x, y, z
	return m
}

// Rotation returns a right-handed rotation of angle radians about the axis (x, y, z).
// The axis is normalized internally. A zero-length axis yields the identity instead of NaN,
// and an angle of 0 yields the identity.
//
// Parameters:
//   - angle: rotation angle in radians, counter-clockwise looking down the axis toward the origin
//   - x, y, z: rotation axis components
//
// Returns:
//   - Matrix4: the rotation matrix
func Rotation(angle, x, y, z float32) Matrix4 {
	axis := Vector3{x, y, z}
	l := axis.Len()
	if l < Epsilon || angle == 0 {
		return Identity4()
	}
	x, y, z = x/l, y/l, z/l

	s, c := math32.Sincos(angle)
	oc := 1 - c

	return Matrix4{
		x*x*oc + c, y*x*oc + z*s, x*z*oc - y*s, 0,
		x*y*oc - z*s, y*y*oc + c, y*z*oc + x*s, 0,
		x*z*oc + y*s, y*z*oc - x*s, z*z*oc + c, 0,
		0, 0, 0, 1,
	}
}

// TransformPoint applies m to the point p (w = 1). No perspective divide is performed.
//
// Parameters:
//   - m: the affine transform
//   - p: the point to transform
//
// Returns:
//   - Vector3: the transformed point
func TransformPoint(m Matrix4, p Vector3) Vector3 {
	return Vector3{
		m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12],
		m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13],
		m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14],
	}
}

// TransformVector applies the linear part of m to the direction v, ignoring translation.
//
// Parameters:
//   - m: the transform
//   - v: the direction to transform
//
// Returns:
//   - Vector3: the transformed direction
func TransformVector(m Matrix4, v Vector3) Vector3 {
	return Vector3{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2],
	}
}

// TransformVector4 computes the full homogeneous product m * v.
//
// Parameters:
//   - m: the transform
//   - v: the homogeneous vector
//
// Returns:
//   - Vector4: the product, before any perspective divide
func TransformVector4(m Matrix4, v Vector4) Vector4 {
	var out Vector4
	for r := 0; r < 4; r++ {
		out[r] = m[r]*v[0] + m[4+r]*v[1] + m[8+r]*v[2] + m[12+r]*v[3]
	}
	return out
}

// Invert4 computes the inverse of a 4x4 column-major matrix using the Laplace
// expansion (cofactor) method.
//
// Parameters:
//   - m: source matrix (column-major)
//
// Returns:
//   - Matrix4: the inverse, or m unchanged when singular
//   - bool: true if the matrix was successfully inverted, false if singular relative to its
//     column lengths
func Invert4(m Matrix4) (Matrix4, bool) {
	// 2x2 sub-determinants of the upper-left and lower-right quadrants.
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if singular(det, m.Col(0).Len(), m.Col(1).Len(), m.Col(2).Len(), m.Col(3).Len()) {
		return m, false
	}

	invDet := 1.0 / det
	var out Matrix4

	out[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * invDet
	out[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * invDet
	out[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * invDet
	out[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * invDet

	out[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * invDet
	out[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * invDet
	out[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * invDet
	out[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * invDet

	out[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * invDet
	out[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * invDet
	out[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * invDet
	out[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * invDet

	out[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * invDet
	out[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * invDet
	out[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * invDet
	out[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * invDet

	return out, true
}

// singular reports whether det is negligible against the product of the column lengths,
// which bounds |det| from above. Uniformly small but well-conditioned matrices still invert.
func singular(det float32, colLengths ...float32) bool {
	bound := float32(1)
	for _, l := range colLengths {
		bound *= l
	}
	return det == 0 || math32.IsNaN(det) || math32.IsInf(det, 0) || math32.Abs(det) <= Epsilon*bound
}

// Upper3x3 extracts the upper-left 3x3 (the linear part) of m.
func Upper3x3(m Matrix4) Matrix3 {
	return Matrix3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Transpose3 returns the transpose of m.
func Transpose3(m Matrix3) Matrix3 {
	return Matrix3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Invert3 computes the inverse of a 3x3 column-major matrix from its cofactors.
//
// Parameters:
//   - m: source matrix
//
// Returns:
//   - Matrix3: the inverse, or m unchanged when singular
//   - bool: false if m is singular relative to its column lengths
func Invert3(m Matrix3) (Matrix3, bool) {
	a00, a10, a20 := m[0], m[1], m[2]
	a01, a11, a21 := m[3], m[4], m[5]
	a02, a12, a22 := m[6], m[7], m[8]

	c00 := a11*a22 - a12*a21
	c01 := -(a10*a22 - a12*a20)
	c02 := a10*a21 - a11*a20

	det := a00*c00 + a01*c01 + a02*c02
	if singular(det, m.Col(0).Len(), m.Col(1).Len(), m.Col(2).Len()) {
		return m, false
	}

	c10 := -(a01*a22 - a02*a21)
	c11 := a00*a22 - a02*a20
	c12 := -(a00*a21 - a01*a20)
	c20 := a01*a12 - a02*a11
	c21 := -(a00*a12 - a02*a10)
	c22 := a00*a11 - a01*a10

	// inverse(r, c) = cofactor(c, r) / det
	inv := 1 / det
	return Matrix3{
		c00 * inv, c01 * inv, c02 * inv,
		c10 * inv, c11 * inv, c12 * inv,
		c20 * inv, c21 * inv, c22 * inv,
	}, true
}

// MulVector returns m * v.
func (m Matrix3) MulVector(v Vector3) Vector3 {
	return Vector3{
		m[0]*v[0] + m[3]*v[1] + m[6]*v[2],
		m[1]*v[0] + m[4]*v[1] + m[7]*v[2],
		m[2]*v[0] + m[5]*v[1] + m[8]*v[2],
	}
}

// IsOrthonormal reports whether the columns of m are unit length and mutually orthogonal within eps.
// Rotation-only matrices satisfy this; any scale or shear does not.
func (m Matrix3) IsOrthonormal(eps float32) bool {
	c0, c1, c2 := m.Col(0), m.Col(1), m.Col(2)
	return math32.Abs(c0.Dot(c0)-1) <= eps &&
		math32.Abs(c1.Dot(c1)-1) <= eps &&
		math32.Abs(c2.Dot(c2)-1) <= eps &&
		math32.Abs(c0.Dot(c1)) <= eps &&
		math32.Abs(c0.Dot(c2)) <= eps &&
		math32.Abs(c1.Dot(c2)) <= eps
}

// ApproxEqual reports whether every element of m and o differs by at most eps.
func (m Matrix4) ApproxEqual(o Matrix4, eps float32) bool {
	for i := range m {
		if math32.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

// ApproxEqual reports whether every element of m and o differs by at most eps.
func (m Matrix3) ApproxEqual(o Matrix3, eps float32) bool {
	for i := range m {
		if math32.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

// Frustum creates an OpenGL-style off-axis perspective projection.
// Eye space looks down -Z; normalized device depth spans [-1, 1] from near to far.
//
// Parameters:
//   - left, right: horizontal extents of the near plane
//   - bottom, top: vertical extents of the near plane
//   - near, far: positive distances to the clipping planes
//
// Returns:
//   - Matrix4: the projection matrix
func Frustum(left, right, bottom, top, near, far float32) Matrix4 {
	var m Matrix4
	m[0] = 2 * near / (right - left)
	m[5] = 2 * near / (top - bottom)
	m[8] = (right + left) / (right - left)
	m[9] = (top + bottom) / (top - bottom)
	m[10] = -(far + near) / (far - near)
	m[11] = -1
	m[14] = -2 * far * near / (far - near)
	return m
}

// Perspective creates a symmetric perspective projection with OpenGL clip conventions.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - Matrix4: the projection matrix
func Perspective(fovY, aspect, near, far float32) Matrix4 {
	yMax := near * math32.Tan(fovY/2)
	xMax := yMax * aspect
	return Frustum(-xMax, xMax, -yMax, yMax, near, far)
}

// Ortho creates an orthographic projection with OpenGL clip conventions.
//
// Parameters:
//   - left, right, bottom, top: view volume extents
//   - near, far: depth extents along -Z
//
// Returns:
//   - Matrix4: the projection matrix
func Ortho(left, right, bottom, top, near, far float32) Matrix4 {
	m := Identity4()
	m[0] = 2 / (right - left)
	m[5] = 2 / (top - bottom)
	m[10] = -2 / (far - near)
	m[12] = -(right + left) / (right - left)
	m[13] = -(top + bottom) / (top - bottom)
	m[14] = -(far + near) / (far - near)
	return m
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
//
// Returns:
//   - Matrix4: the view matrix
func LookAt(eye, center, up Vector3) Matrix4 {
	z := eye.Sub(center).Normalize()
	if z == (Vector3{}) {
		z = Vector3{0, 0, 1}
	}
	x := up.Cross(z).Normalize()
	y := z.Cross(x)

	var out Matrix4
	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -x.Dot(eye)
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -y.Dot(eye)
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -z.Dot(eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
	return out
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float32) float32 {
	return rad * 180 / math32.Pi
}
