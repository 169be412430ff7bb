package render

import (
	"image/color"

	"github.com/chewxy/math32"

	"github.com/atopile/atopile-sub007/pkg/geom"
)

const (
	// circleSegments is the fan resolution for filled circles (pads, vias).
	circleSegments = 48
	// capSegments is the fan resolution for one semicircular line cap.
	capSegments = 8
)

// Mesh is a flat triangle soup: three consecutive vertices form one
// triangle. Positions are x,y pairs and colors are r,g,b,a in [0,1],
// both in world units, ready to hand to the layer committer.
type Mesh struct {
	Pos []float32
	Col []float32
	N   int // vertex count
}

func rgba(c color.NRGBA) [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

func (m *Mesh) vertex(x, y float32, col [4]float32) {
	m.Pos = append(m.Pos, x, y)
	m.Col = append(m.Col, col[0], col[1], col[2], col[3])
	m.N++
}

func (m *Mesh) triangle(a, b, c geom.Vec2, col [4]float32) {
	m.vertex(float32(a.X), float32(a.Y), col)
	m.vertex(float32(b.X), float32(b.Y), col)
	m.vertex(float32(c.X), float32(c.Y), col)
}

// Append concatenates another mesh onto this one.
func (m *Mesh) Append(o Mesh) {
	m.Pos = append(m.Pos, o.Pos...)
	m.Col = append(m.Col, o.Col...)
	m.N += o.N
}

// TessellatePolyline expands a polyline of the given width into triangles:
// one quad per segment plus, when rounded, a semicircular fan at each end.
// Zero-length segments are skipped; fewer than two points, or a
// non-positive width, produce no geometry.
func TessellatePolyline(points []geom.Vec2, width float64, c color.NRGBA, rounded bool) Mesh {
	var m Mesh
	if len(points) < 2 || width <= 0 {
		return m
	}
	col := rgba(c)
	half := width / 2

	drew := false
	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		dir := b.Sub(a)
		if dir.Length() == 0 {
			continue
		}
		n := dir.Normalize().Normal().Mul(half)
		m.triangle(a.Add(n), b.Add(n), b.Sub(n), col)
		m.triangle(a.Add(n), b.Sub(n), a.Sub(n), col)

		if rounded {
			// Joints between segments get a full cap fan too; at the
			// widths boards use the overdraw is invisible and it keeps
			// sharp corners from showing a notch.
			capFan(&m, a, half, dir.Normalize().Normal(), col)
			capFan(&m, b, half, dir.Normalize().Normal().Mul(-1), col)
		}
		drew = true
	}
	if !drew {
		return Mesh{}
	}
	return m
}

// capFan emits a semicircular fan at center, radius r, sweeping half a
// turn starting from the direction of n.
func capFan(m *Mesh, center geom.Vec2, r float64, n geom.Vec2, col [4]float32) {
	start := math32.Atan2(float32(n.Y), float32(n.X))
	prev := center.Add(n.Mul(r))
	for i := 1; i <= capSegments; i++ {
		a := start + math32.Pi*float32(i)/capSegments
		next := geom.V(
			center.X+r*float64(math32.Cos(a)),
			center.Y+r*float64(math32.Sin(a)),
		)
		m.triangle(center, prev, next, col)
		prev = next
	}
}

// TessellateCircle expands a filled circle into a triangle fan. A
// non-positive radius produces no geometry; segments <= 0 selects the
// default resolution.
func TessellateCircle(center geom.Vec2, radius float64, c color.NRGBA, segments int) Mesh {
	var m Mesh
	if radius <= 0 {
		return m
	}
	if segments <= 0 {
		segments = circleSegments
	}
	col := rgba(c)
	prev := geom.V(center.X+radius, center.Y)
	for i := 1; i <= segments; i++ {
		a := 2 * math32.Pi * float32(i) / float32(segments)
		next := geom.V(
			center.X+radius*float64(math32.Cos(a)),
			center.Y+radius*float64(math32.Sin(a)),
		)
		m.triangle(center, prev, next, col)
		prev = next
	}
	return m
}

// TriangulatePolygon fans a polygon from its first vertex. Board polygons
// (zone fills, custom pads) are convex or near-convex, so a fan is
// sufficient. Fewer than three points produce no geometry.
func TriangulatePolygon(points []geom.Vec2, c color.NRGBA) Mesh {
	var m Mesh
	if len(points) < 3 {
		return m
	}
	col := rgba(c)
	for i := 1; i < len(points)-1; i++ {
		m.triangle(points[0], points[i], points[i+1], col)
	}
	return m
}

// CirclePoints returns n points on a circle's rim, closed (first point
// repeated at the end) so it can stroke as a ring.
func CirclePoints(center geom.Vec2, radius float64, n int) []geom.Vec2 {
	if n <= 0 {
		n = circleSegments
	}
	pts := make([]geom.Vec2, 0, n+1)
	for i := 0; i <= n; i++ {
		a := 2 * math32.Pi * float32(i) / float32(n)
		pts = append(pts, geom.V(
			center.X+radius*float64(math32.Cos(a)),
			center.Y+radius*float64(math32.Sin(a)),
		))
	}
	return pts
}
