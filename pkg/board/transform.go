package board

import (
	"math"

	"github.com/atopile/atopile-sub007/pkg/geom"
)

// RotateDeg rotates a local point by a rotation in degrees. Screen Y grows
// downward, so the angle is negated before conversion to radians; every
// rotation in the model goes through this single sign convention.
func RotateDeg(p geom.Vec2, degrees float64) geom.Vec2 {
	if degrees == 0 {
		return p
	}
	return p.Rotate(-degrees * math.Pi / 180)
}

// ToFootprint maps a pad-local point into the owning footprint's frame:
// pad rotation first, then pad offset.
func (p *Pad) ToFootprint(local geom.Vec2) geom.Vec2 {
	return RotateDeg(local, p.At.R).Add(p.At.Pos())
}

// ToWorld maps a footprint-local point into world space: footprint
// rotation, then footprint position.
func (f *Footprint) ToWorld(local geom.Vec2) geom.Vec2 {
	return RotateDeg(local, f.At.R).Add(f.At.Pos())
}

// PadToWorld maps a pad-local point all the way to world space. The order
// is fixed: pad rotation composes before footprint rotation, never the
// other way around.
func (f *Footprint) PadToWorld(p *Pad, local geom.Vec2) geom.Vec2 {
	return f.ToWorld(p.ToFootprint(local))
}

// PadCorners returns the four corners of a pad's rectangle in world space,
// in winding order.
func (f *Footprint) PadCorners(p *Pad) [4]geom.Vec2 {
	hw := p.Size.W / 2
	hh := p.Size.H / 2
	locals := [4]geom.Vec2{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}
	var out [4]geom.Vec2
	for i, l := range locals {
		out[i] = f.PadToWorld(p, l)
	}
	return out
}

// drawingPoints returns the world-space reference points of a drawing:
// endpoints, arc midpoints, circle center+radius point, or the polygon's
// vertex list, transformed through the footprint pose.
func (f *Footprint) drawingPoints(d *Drawing) []geom.Vec2 {
	var locals []geom.Vec2
	switch d.Type {
	case "line", "rect":
		locals = []geom.Vec2{d.Start.Vec2, d.End.Vec2}
	case "arc":
		locals = []geom.Vec2{d.Start.Vec2, d.Mid.Vec2, d.End.Vec2}
	case "circle":
		locals = []geom.Vec2{d.Center.Vec2, d.End.Vec2}
	case "polygon":
		locals = make([]geom.Vec2, 0, len(d.Points))
		for _, p := range d.Points {
			locals = append(locals, p.Vec2)
		}
	}
	out := make([]geom.Vec2, len(locals))
	for i, l := range locals {
		out[i] = f.ToWorld(l)
	}
	return out
}
