package render

import (
	"math"
	"testing"

	"github.com/atopile/atopile-sub007/pkg/geom"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func vecApprox(a, b geom.Vec2) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y)
}

func TestCameraCenterMapsToViewportCenter(t *testing.T) {
	c := NewCamera(geom.V(800, 600))
	c.Center = geom.V(42, -17)
	c.Zoom = 3

	got := c.WorldToScreen(c.Center)
	if !vecApprox(got, geom.V(400, 300)) {
		t.Errorf("center maps to %v, want viewport center (400, 300)", got)
	}
}

func TestCameraSetBBoxFit(t *testing.T) {
	c := NewCamera(geom.V(800, 600))
	c.SetBBox(geom.NewBBox(0, 0, 100, 50))

	// Width is the limiting axis: 800/100 = 8 < 600/50 = 12.
	if !approx(c.Zoom, 8) {
		t.Errorf("zoom = %v, want 8", c.Zoom)
	}
	if !vecApprox(c.Center, geom.V(50, 25)) {
		t.Errorf("center = %v, want (50, 25)", c.Center)
	}

	// The fitted box must be fully visible.
	view := c.BBox()
	for _, corner := range []geom.Vec2{
		geom.V(0, 0), geom.V(100, 0), geom.V(0, 50), geom.V(100, 50),
	} {
		if !view.Grow(1e-9).ContainsPoint(corner) {
			t.Errorf("view %+v does not contain fitted corner %v", view, corner)
		}
	}
}

func TestCameraSetBBoxIgnoresDegenerate(t *testing.T) {
	c := NewCamera(geom.V(800, 600))
	before := *c
	c.SetBBox(geom.BBox{})
	if *c != before {
		t.Errorf("degenerate bbox changed the camera: %+v", c)
	}
}

func TestCameraRoundTrip(t *testing.T) {
	c := NewCamera(geom.V(1024, 768))
	c.Center = geom.V(12.5, -3)
	c.Zoom = 17

	for _, p := range []geom.Vec2{
		{}, geom.V(1, 1), geom.V(-200, 340.25), geom.V(1e3, -1e3),
	} {
		got := c.ScreenToWorld(c.WorldToScreen(p))
		if got.Sub(p).Length() > 1e-6 {
			t.Errorf("round trip of %v = %v", p, got)
		}
	}
}

func TestCameraZoomToKeepsAnchor(t *testing.T) {
	c := NewCamera(geom.V(800, 600))
	c.Center = geom.V(10, 10)
	c.Zoom = 4

	anchor := geom.V(123, 456)
	before := c.ScreenToWorld(anchor)
	c.ZoomTo(anchor, 9)
	after := c.ScreenToWorld(anchor)

	if before.Sub(after).Length() > 1e-9 {
		t.Errorf("anchor moved from %v to %v", before, after)
	}
	if !approx(c.Zoom, 9) {
		t.Errorf("zoom = %v, want 9", c.Zoom)
	}
}

func TestCameraZoomClamped(t *testing.T) {
	c := NewCamera(geom.V(800, 600))

	c.ZoomTo(geom.V(400, 300), 1e6)
	if c.Zoom != MaxZoom {
		t.Errorf("zoom = %v, want clamp at %v", c.Zoom, MaxZoom)
	}
	c.ZoomTo(geom.V(400, 300), 1e-6)
	if c.Zoom != MinZoom {
		t.Errorf("zoom = %v, want clamp at %v", c.Zoom, MinZoom)
	}
}

func TestCameraTranslate(t *testing.T) {
	c := NewCamera(geom.V(800, 600))
	c.Center = geom.V(5, 5)
	c.Translate(geom.V(-2, 3))
	if !vecApprox(c.Center, geom.V(3, 8)) {
		t.Errorf("center = %v, want (3, 8)", c.Center)
	}
}
