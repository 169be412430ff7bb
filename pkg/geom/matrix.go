package geom

import "math"

// Matrix3 is a 3x3 affine transform over 2D points using the row-vector
// convention: Transform computes v·M with the translation stored in the
// last row. Composition therefore reads left to right; see MulSelf.
type Matrix3 [3][3]float64

// Identity returns the identity transform.
func Identity() Matrix3 {
	return Matrix3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Orthographic maps pixel space (0..width, 0..height with Y increasing
// downward) to clip space (-1..1 with Y increasing upward).
func Orthographic(width, height float64) Matrix3 {
	return Matrix3{
		{2 / width, 0, 0},
		{0, -2 / height, 0},
		{-1, 1, 1},
	}
}

// Translation returns a transform that moves points by (x, y).
func Translation(x, y float64) Matrix3 {
	return Matrix3{
		{1, 0, 0},
		{0, 1, 0},
		{x, y, 1},
	}
}

// Scaling returns a transform that scales points by (x, y) about the origin.
func Scaling(x, y float64) Matrix3 {
	return Matrix3{
		{x, 0, 0},
		{0, y, 0},
		{0, 0, 1},
	}
}

// Rotation returns a transform that rotates points by the given angle in
// radians.
func Rotation(radians float64) Matrix3 {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return Matrix3{
		{cos, sin, 0},
		{-sin, cos, 0},
		{0, 0, 1},
	}
}

// Mul returns m·b.
func (m Matrix3) Mul(b Matrix3) Matrix3 {
	var out Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0]*b[0][j] + m[i][1]*b[1][j] + m[i][2]*b[2][j]
		}
	}
	return out
}

// MulSelf composes b onto the receiver so that the result applies the
// receiver's transform first and b second (B∘self). The camera builds its
// matrix as view-then-projection through exactly this ordering, and the
// painter chains pad-then-footprint rotations the same way, so the
// ordering here must not change.
func (m *Matrix3) MulSelf(b Matrix3) *Matrix3 {
	*m = m.Mul(b)
	return m
}

// Transform applies the transform to a point.
func (m Matrix3) Transform(v Vec2) Vec2 {
	return Vec2{
		X: v.X*m[0][0] + v.Y*m[1][0] + m[2][0],
		Y: v.X*m[0][1] + v.Y*m[1][1] + m[2][1],
	}
}

// TransformAll applies the transform to every point in a slice, returning
// a new slice.
func (m Matrix3) TransformAll(pts []Vec2) []Vec2 {
	out := make([]Vec2, len(pts))
	for i, p := range pts {
		out[i] = m.Transform(p)
	}
	return out
}

// Determinant returns the determinant of the matrix.
func (m Matrix3) Determinant() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inverse returns the inverse transform using the closed-form adjugate.
// A singular matrix (zero determinant) yields NaN entries; callers are
// expected to hand in invertible transforms.
func (m Matrix3) Inverse() Matrix3 {
	inv := 1.0 / m.Determinant()
	var out Matrix3
	out[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * inv
	out[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * inv
	out[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * inv
	out[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * inv
	out[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * inv
	out[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * inv
	out[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * inv
	out[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * inv
	out[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * inv
	return out
}
