package common

import (
	"github.com/chewxy/math32"
)

// X returns the first component.
func (v Vector3) X() float32 { return v[0] }

// Y returns the second component.
func (v Vector3) Y() float32 { return v[1] }

// Z returns the third component.
func (v Vector3) Z() float32 { return v[2] }

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Mul returns v scaled by s.
func (v Vector3) Mul(s float32) Vector3 {
	return Vector3{v[0] * s, v[1] * s, v[2] * s}
}

// Neg returns -v.
func (v Vector3) Neg() Vector3 {
	return Vector3{-v[0], -v[1], -v[2]}
}

// Dot returns the dot product of v and o.
func (v Vector3) Dot(o Vector3) float32 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Cross returns the right-handed cross product v × o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Len returns the Euclidean length of v.
func (v Vector3) Len() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length.
// A vector shorter than Epsilon is returned as the zero vector rather than producing NaN.
//
// Returns:
//   - Vector3: the unit-length vector, or the zero vector for degenerate input
func (v Vector3) Normalize() Vector3 {
	l := v.Len()
	if l < Epsilon {
		return Vector3{}
	}
	return v.Mul(1 / l)
}

// ApproxEqual reports whether every component of v and o differs by at most eps.
//
// Parameters:
//   - o: the vector to compare against
//   - eps: the per-component tolerance
//
// Returns:
//   - bool: true if the vectors are within tolerance
func (v Vector3) ApproxEqual(o Vector3, eps float32) bool {
	for i := range v {
		if math32.Abs(v[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

// Vec4 extends v with the given w component.
func (v Vector3) Vec4(w float32) Vector4 {
	return Vector4{v[0], v[1], v[2], w}
}

// Vec3 drops the w component.
func (v Vector4) Vec3() Vector3 {
	return Vector3{v[0], v[1], v[2]}
}

// PerspectiveDivide returns the xyz components divided by w.
// A w of zero yields the undivided components.
func (v Vector4) PerspectiveDivide() Vector3 {
	if v[3] == 0 {
		return v.Vec3()
	}
	inv := 1 / v[3]
	return Vector3{v[0] * inv, v[1] * inv, v[2] * inv}
}

// Dot returns the 4-component dot product of v and o.
func (v Vector4) Dot(o Vector4) float32 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] + v[3]*o[3]
}

// Len returns the Euclidean length of all four components.
func (v Vector4) Len() float32 {
	return math32.Sqrt(v.Dot(v))
}
