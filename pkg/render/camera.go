// Package render contains the viewer's drawing pipeline: the camera, the
// CPU tessellator, the retained layer manager built on Gio ops, and the
// painter that walks a board render model and turns it into layer draw
// calls.
package render

import (
	"math"

	"github.com/atopile/atopile-sub007/pkg/geom"
)

// Zoom limits in pixels per board unit.
const (
	MinZoom = 0.5
	MaxZoom = 190.0
)

// Camera maps between world space (board units) and screen space (pixels).
// The same matrix drives rendering, picking, and pan/zoom so the three can
// never disagree about where a point is.
type Camera struct {
	// ViewportSize is the canvas size in pixels.
	ViewportSize geom.Vec2
	// Center is the world-space point shown at the viewport center.
	Center geom.Vec2
	// Zoom is the scale in pixels per world unit.
	Zoom float64
}

// NewCamera creates a camera for the given viewport with a neutral zoom.
func NewCamera(viewport geom.Vec2) *Camera {
	return &Camera{
		ViewportSize: viewport,
		Zoom:         10,
	}
}

// Matrix returns the world-to-screen transform: translate so Center is at
// the origin, scale by Zoom, then move the origin to the viewport center.
func (c *Camera) Matrix() geom.Matrix3 {
	m := geom.Translation(-c.Center.X, -c.Center.Y)
	m.MulSelf(geom.Scaling(c.Zoom, c.Zoom))
	m.MulSelf(geom.Translation(c.ViewportSize.X/2, c.ViewportSize.Y/2))
	return m
}

// BBox returns the currently visible world rectangle by inverse-mapping
// two opposite corners of the viewport.
func (c *Camera) BBox() geom.BBox {
	inv := c.Matrix().Inverse()
	a := inv.Transform(geom.Vec2{})
	b := inv.Transform(c.ViewportSize)
	return geom.BBoxFromPoints(a, b)
}

// SetBBox fits the camera to the given world rectangle: the zoom is the
// smaller of the two axis fit ratios (the other axis letterboxes) and the
// center is the rectangle's center.
func (c *Camera) SetBBox(b geom.BBox) {
	if b.W <= 0 || b.H <= 0 {
		return
	}
	c.Zoom = math.Min(c.ViewportSize.X/b.W, c.ViewportSize.Y/b.H)
	c.Center = b.Center()
}

// ScreenToWorld maps a pixel position to world space.
func (c *Camera) ScreenToWorld(p geom.Vec2) geom.Vec2 {
	return c.Matrix().Inverse().Transform(p)
}

// WorldToScreen maps a world position to pixels.
func (c *Camera) WorldToScreen(p geom.Vec2) geom.Vec2 {
	return c.Matrix().Transform(p)
}

// Translate moves the camera center by a world-space delta.
func (c *Camera) Translate(delta geom.Vec2) {
	c.Center = c.Center.Add(delta)
}

// ZoomTo sets the zoom, clamped to the camera limits, keeping the world
// point under the given screen position stationary.
func (c *Camera) ZoomTo(screen geom.Vec2, zoom float64) {
	before := c.ScreenToWorld(screen)
	c.Zoom = math.Min(math.Max(zoom, MinZoom), MaxZoom)
	after := c.ScreenToWorld(screen)
	c.Translate(before.Sub(after))
}
