package geom

import "math"

// BBox is an axis-aligned bounding box. Construction through NewBBox
// normalizes negative extents, so W and H are always non-negative.
type BBox struct {
	X float64
	Y float64
	W float64
	H float64
}

// NewBBox builds a box from an origin and size. Negative widths or heights
// are flipped so the stored origin is the minimum corner and the extents
// are non-negative.
func NewBBox(x, y, w, h float64) BBox {
	if w < 0 {
		x += w
		w = -w
	}
	if h < 0 {
		y += h
		h = -h
	}
	return BBox{X: x, Y: y, W: w, H: h}
}

// BBoxFromPoints returns the smallest box containing all given points.
// An empty slice yields the zero box.
func BBoxFromPoints(pts ...Vec2) BBox {
	if len(pts) == 0 {
		return BBox{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return BBox{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// X2 returns the maximum X edge.
func (b BBox) X2() float64 { return b.X + b.W }

// Y2 returns the maximum Y edge.
func (b BBox) Y2() float64 { return b.Y + b.H }

// Center returns the center point of the box.
func (b BBox) Center() Vec2 {
	return Vec2{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// IsEmpty reports whether the box has zero area.
func (b BBox) IsEmpty() bool {
	return b.W == 0 || b.H == 0
}

// Combine returns the union of two boxes. Degenerate zero-area boxes are
// ignored so an uninitialized accumulator does not drag the union toward
// the origin.
func (b BBox) Combine(other BBox) BBox {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	minX := math.Min(b.X, other.X)
	minY := math.Min(b.Y, other.Y)
	maxX := math.Max(b.X2(), other.X2())
	maxY := math.Max(b.Y2(), other.Y2())
	return BBox{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// ContainsPoint reports whether the point lies inside the box, bounds
// inclusive.
func (b BBox) ContainsPoint(p Vec2) bool {
	return p.X >= b.X && p.X <= b.X2() && p.Y >= b.Y && p.Y <= b.Y2()
}

// ContainsBBox reports whether other lies entirely inside the box,
// bounds inclusive.
func (b BBox) ContainsBBox(other BBox) bool {
	return other.X >= b.X && other.X2() <= b.X2() &&
		other.Y >= b.Y && other.Y2() <= b.Y2()
}

// Intersects reports whether the interiors of the two boxes overlap.
// Boxes that merely share an edge do not intersect.
func (b BBox) Intersects(other BBox) bool {
	return b.X < other.X2() && b.X2() > other.X &&
		b.Y < other.Y2() && b.Y2() > other.Y
}

// Grow expands the box symmetrically by d on every side.
func (b BBox) Grow(d float64) BBox {
	return NewBBox(b.X-d, b.Y-d, b.W+2*d, b.H+2*d)
}
