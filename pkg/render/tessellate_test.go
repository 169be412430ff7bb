package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/atopile/atopile-sub007/pkg/geom"
)

var testCol = color.NRGBA{R: 200, G: 52, B: 52, A: 255}

func TestTessellatePolylineDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		points []geom.Vec2
		width  float64
	}{
		{"no points", nil, 1},
		{"single point", []geom.Vec2{geom.V(1, 1)}, 1},
		{"zero width", []geom.Vec2{geom.V(0, 0), geom.V(1, 0)}, 0},
		{"coincident points", []geom.Vec2{geom.V(2, 2), geom.V(2, 2)}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := TessellatePolyline(tt.points, tt.width, testCol, true)
			if m.N != 0 {
				t.Errorf("got %d vertices, want 0", m.N)
			}
		})
	}
}

func TestTessellatePolylineSegmentAndCaps(t *testing.T) {
	m := TessellatePolyline([]geom.Vec2{geom.V(0, 0), geom.V(10, 0)}, 2, testCol, true)

	// One quad (2 triangles) plus two cap fans.
	want := (2 + 2*capSegments) * 3
	if m.N != want {
		t.Fatalf("vertex count = %d, want %d", m.N, want)
	}

	// Every vertex stays within the stroked extent: the segment grown by
	// the half width in both axes.
	for i := 0; i < m.N; i++ {
		x, y := float64(m.Pos[2*i]), float64(m.Pos[2*i+1])
		if x < -1-1e-6 || x > 11+1e-6 || math.Abs(y) > 1+1e-6 {
			t.Errorf("vertex %d at (%v, %v) escapes stroke bounds", i, x, y)
		}
	}

	// Cap fans actually reach past the endpoints.
	minX := math.Inf(1)
	for i := 0; i < m.N; i++ {
		minX = math.Min(minX, float64(m.Pos[2*i]))
	}
	if minX > -0.9 {
		t.Errorf("start cap does not extend past endpoint, min x = %v", minX)
	}
}

func TestTessellatePolylineSkipsZeroSegments(t *testing.T) {
	m := TessellatePolyline([]geom.Vec2{
		geom.V(0, 0), geom.V(0, 0), geom.V(10, 0),
	}, 2, testCol, false)

	if m.N != 2*3 {
		t.Errorf("vertex count = %d, want one quad", m.N)
	}
}

func TestTessellateCircle(t *testing.T) {
	m := TessellateCircle(geom.V(3, 4), 2, testCol, 0)
	if m.N != circleSegments*3 {
		t.Fatalf("vertex count = %d, want %d", m.N, circleSegments*3)
	}
	// All rim vertices are at radius; fan centers at the center.
	for i := 0; i < m.N; i++ {
		dx := float64(m.Pos[2*i]) - 3
		dy := float64(m.Pos[2*i+1]) - 4
		r := math.Hypot(dx, dy)
		if r > 1e-6 && math.Abs(r-2) > 1e-5 {
			t.Errorf("vertex %d at radius %v, want 0 or 2", i, r)
		}
	}

	if m := TessellateCircle(geom.V(0, 0), 0, testCol, 0); m.N != 0 {
		t.Errorf("zero radius produced %d vertices", m.N)
	}
}

func TestTriangulatePolygon(t *testing.T) {
	quad := []geom.Vec2{geom.V(0, 0), geom.V(4, 0), geom.V(4, 4), geom.V(0, 4)}
	m := TriangulatePolygon(quad, testCol)
	if m.N != 2*3 {
		t.Fatalf("vertex count = %d, want 6", m.N)
	}

	// Signed area of the fan must equal the polygon area.
	area := 0.0
	for i := 0; i < m.N; i += 3 {
		ax, ay := float64(m.Pos[2*i]), float64(m.Pos[2*i+1])
		bx, by := float64(m.Pos[2*i+2]), float64(m.Pos[2*i+3])
		cx, cy := float64(m.Pos[2*i+4]), float64(m.Pos[2*i+5])
		area += ((bx-ax)*(cy-ay) - (cx-ax)*(by-ay)) / 2
	}
	if math.Abs(math.Abs(area)-16) > 1e-5 {
		t.Errorf("fan area = %v, want 16", area)
	}

	if m := TriangulatePolygon(quad[:2], testCol); m.N != 0 {
		t.Errorf("two points produced %d vertices", m.N)
	}
}

func TestMeshColors(t *testing.T) {
	m := TessellateCircle(geom.V(0, 0), 1, testCol, 8)
	for i := 0; i < m.N; i++ {
		if got := vertexColor(m, i); got != testCol {
			t.Fatalf("vertex %d color = %v, want %v", i, got, testCol)
		}
	}
}

func TestCircumcenter(t *testing.T) {
	c, ok := Circumcenter(geom.V(1, 0), geom.V(0, 1), geom.V(-1, 0))
	if !ok || c.Length() > 1e-9 {
		t.Errorf("circumcenter = %v, %v; want origin", c, ok)
	}

	if _, ok := Circumcenter(geom.V(0, 0), geom.V(1, 1), geom.V(2, 2)); ok {
		t.Error("collinear points reported a circumcenter")
	}
}

func TestArcPoints(t *testing.T) {
	t.Run("semicircle through mid", func(t *testing.T) {
		pts := ArcPoints(geom.V(1, 0), geom.V(0, 1), geom.V(-1, 0), 16)
		if len(pts) != 17 {
			t.Fatalf("got %d points, want 17", len(pts))
		}
		if !vecApprox(pts[0], geom.V(1, 0)) || !vecApprox(pts[16], geom.V(-1, 0)) {
			t.Errorf("endpoints %v, %v", pts[0], pts[16])
		}
		if !vecApprox(pts[8], geom.V(0, 1)) {
			t.Errorf("midpoint = %v, want (0, 1)", pts[8])
		}
		for _, p := range pts {
			if math.Abs(p.Length()-1) > 1e-9 {
				t.Errorf("point %v off the unit circle", p)
			}
		}
	})

	t.Run("direction follows mid on the other side", func(t *testing.T) {
		pts := ArcPoints(geom.V(1, 0), geom.V(0, -1), geom.V(-1, 0), 16)
		if !vecApprox(pts[8], geom.V(0, -1)) {
			t.Errorf("midpoint = %v, want (0, -1)", pts[8])
		}
	})

	t.Run("collinear degenerates to polyline", func(t *testing.T) {
		pts := ArcPoints(geom.V(0, 0), geom.V(1, 1), geom.V(2, 2), 16)
		want := []geom.Vec2{geom.V(0, 0), geom.V(1, 1), geom.V(2, 2)}
		if len(pts) != 3 {
			t.Fatalf("got %d points, want 3", len(pts))
		}
		for i := range want {
			if !vecApprox(pts[i], want[i]) {
				t.Errorf("pts[%d] = %v, want %v", i, pts[i], want[i])
			}
		}
	})
}
