package common

// Vector3 is a 3-component float32 vector (x, y, z).
type Vector3 [3]float32

// Vector4 is a 4-component float32 vector (x, y, z, w).
type Vector4 [4]float32

// Matrix3 is a 3x3 float32 matrix stored in column-major order.
// Element (row r, column c) lives at index c*3+r.
type Matrix3 [9]float32

// Matrix4 is a 4x4 float32 matrix stored in column-major order (OpenGL/WebGPU convention).
// Element (row r, column c) lives at index c*4+r, so the translation occupies indices 12, 13 and 14.
// Matrices act on column vectors: Mul4(a, b) applied to v transforms v by b first, then by a.
type Matrix4 [16]float32

// Epsilon is the tolerance used for degenerate-length and singularity checks.
const Epsilon float32 = 1e-6

// Vec3 is shorthand for constructing a Vector3.
func Vec3(x, y, z float32) Vector3 {
	return Vector3{x, y, z}
}

// Vec4 is shorthand for constructing a Vector4.
func Vec4(x, y, z, w float32) Vector4 {
	return Vector4{x, y, z, w}
}

// At returns the element at (row, col).
func (m Matrix4) At(row, col int) float32 {
	return m[col*4+row]
}

// Col returns column col as a Vector4.
func (m Matrix4) Col(col int) Vector4 {
	return Vector4{m[col*4], m[col*4+1], m[col*4+2], m[col*4+3]}
}

// Row returns row row as a Vector4.
func (m Matrix4) Row(row int) Vector4 {
	return Vector4{m[row], m[4+row], m[8+row], m[12+row]}
}

// At returns the element at (row, col).
func (m Matrix3) At(row, col int) float32 {
	return m[col*3+row]
}

// Col returns column col as a Vector3.
func (m Matrix3) Col(col int) Vector3 {
	return Vector3{m[col*3], m[col*3+1], m[col*3+2]}
}
