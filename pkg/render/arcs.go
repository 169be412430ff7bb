package render

import (
	"math"

	"github.com/atopile/atopile-sub007/pkg/geom"
)

// Segment counts for sampled arcs. Copper arcs get more segments than
// footprint drawings because tracks are what the eye follows.
const (
	DrawingArcSegments = 32
	TrackArcSegments   = 48
	EdgeCircleSegments = 64
)

// Circumcenter returns the center of the circle through three points.
// ok is false when the points are (nearly) collinear and no finite
// center exists.
func Circumcenter(a, b, c geom.Vec2) (center geom.Vec2, ok bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-9 {
		return geom.Vec2{}, false
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	return geom.V(
		(a2*(b.Y-c.Y)+b2*(c.Y-a.Y)+c2*(a.Y-b.Y))/d,
		(a2*(c.X-b.X)+b2*(a.X-c.X)+c2*(b.X-a.X))/d,
	), true
}

// ArcPoints samples a three-point arc (start, mid, end) into a polyline
// of the given resolution. The sweep direction is whichever way passes
// through mid. Collinear points degenerate to the straight polyline
// start-mid-end.
func ArcPoints(start, mid, end geom.Vec2, segments int) []geom.Vec2 {
	center, ok := Circumcenter(start, mid, end)
	if !ok {
		return []geom.Vec2{start, mid, end}
	}
	if segments < 2 {
		segments = DrawingArcSegments
	}
	r := start.Sub(center).Length()

	ts := math.Atan2(start.Y-center.Y, start.X-center.X)
	tm := math.Atan2(mid.Y-center.Y, mid.X-center.X)
	te := math.Atan2(end.Y-center.Y, end.X-center.X)

	dm := normAngle(tm - ts)
	de := normAngle(te - ts)
	// Force the end angle onto the same side as mid so the sampled arc
	// passes through it.
	if dm > 0 && de < dm {
		de += 2 * math.Pi
	} else if dm < 0 && de > dm {
		de -= 2 * math.Pi
	}

	pts := make([]geom.Vec2, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := ts + de*float64(i)/float64(segments)
		pts = append(pts, geom.V(center.X+r*math.Cos(a), center.Y+r*math.Sin(a)))
	}
	return pts
}

// normAngle wraps an angle to (-pi, pi].
func normAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
