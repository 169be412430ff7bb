package board

import (
	"math"

	"github.com/atopile/atopile-sub007/pkg/geom"
)

const (
	// footprintMargin grows a footprint's picking box slightly past its
	// outermost pad/drawing geometry.
	footprintMargin = 0.2

	// emptyFootprintExtent is the half-size of the fallback box for a
	// footprint with no pads and no drawings.
	emptyFootprintExtent = 1.0
)

// FootprintBBox returns the world-space bounding box of a footprint:
// the union of every rotated pad corner and every drawing reference point,
// grown by a small margin. A footprint with no geometry gets a fixed 2x2
// box centered on its origin so it stays pickable.
func FootprintBBox(fp *Footprint) geom.BBox {
	var pts []geom.Vec2
	for i := range fp.Pads {
		corners := fp.PadCorners(&fp.Pads[i])
		pts = append(pts, corners[:]...)
	}
	for i := range fp.Drawings {
		pts = append(pts, fp.drawingPoints(&fp.Drawings[i])...)
	}
	if len(pts) == 0 {
		return geom.NewBBox(
			fp.At.X-emptyFootprintExtent,
			fp.At.Y-emptyFootprintExtent,
			2*emptyFootprintExtent,
			2*emptyFootprintExtent,
		)
	}
	return geom.BBoxFromPoints(pts...).Grow(footprintMargin)
}

// edgePoints returns the reference points of a board-outline edge.
func edgePoints(e *Edge) []geom.Vec2 {
	switch e.Type {
	case "arc":
		return []geom.Vec2{e.Start.Vec2, e.Mid.Vec2, e.End.Vec2}
	case "circle":
		// Expand to the circle's extremes rather than just center+rim.
		r := e.End.Sub(e.Center.Vec2).Length()
		c := e.Center.Vec2
		return []geom.Vec2{
			{X: c.X - r, Y: c.Y - r},
			{X: c.X + r, Y: c.Y + r},
		}
	default: // line, rect
		return []geom.Vec2{e.Start.Vec2, e.End.Vec2}
	}
}

// BBox returns the bounding box of the whole model. The board outline is
// preferred when present; otherwise the box accumulates every track, via,
// zone and footprint so an outline-less model still fits to view.
func (m *RenderModel) BBox() geom.BBox {
	if len(m.Board.Edges) > 0 {
		var pts []geom.Vec2
		for i := range m.Board.Edges {
			pts = append(pts, edgePoints(&m.Board.Edges[i])...)
		}
		return geom.BBoxFromPoints(pts...)
	}

	box := geom.BBox{}
	for i := range m.Tracks {
		t := &m.Tracks[i]
		box = box.Combine(geom.BBoxFromPoints(t.Start.Vec2, t.End.Vec2).Grow(t.Width / 2))
	}
	for i := range m.Arcs {
		a := &m.Arcs[i]
		box = box.Combine(geom.BBoxFromPoints(a.Start.Vec2, a.Mid.Vec2, a.End.Vec2).Grow(a.Width / 2))
	}
	for i := range m.Vias {
		v := &m.Vias[i]
		r := math.Max(v.Size/2, 0.1)
		box = box.Combine(geom.NewBBox(v.At.X-r, v.At.Y-r, 2*r, 2*r))
	}
	for i := range m.Zones {
		for _, p := range m.Zones[i].Outline {
			box = box.Combine(geom.NewBBox(p.X, p.Y, 1e-9, 1e-9).Grow(0.05))
		}
	}
	for _, fp := range m.Footprints {
		box = box.Combine(FootprintBBox(fp))
	}
	return box
}
