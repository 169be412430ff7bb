// Package geom provides the 2D math primitives used by the layout viewer:
// vectors, 3x3 affine transforms, and axis-aligned bounding boxes.
// All coordinates are in board units (millimeters) unless a function says
// otherwise.
package geom

import "math"

// Vec2 is a 2D point or displacement.
type Vec2 struct {
	X float64
	Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by s.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Length returns the magnitude of the vector.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normal returns the vector rotated a quarter turn, useful for offsetting
// polyline segments sideways when building thick strokes.
func (v Vec2) Normal() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Normalize returns a unit vector in the same direction. A zero-length
// vector normalizes to the zero vector rather than producing NaNs.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the scalar (z-component) cross product of v and w.
func (v Vec2) Cross(w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Rotate returns the vector rotated by the given angle in radians.
func (v Vec2) Rotate(radians float64) Vec2 {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}
