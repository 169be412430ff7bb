package board

import (
	"math"

	"github.com/atopile/atopile-sub007/pkg/geom"
)

// pickTolerance is the extra margin, in board units, allowed around a
// footprint's exact bounding box during the forgiving second picking pass.
const pickTolerance = 1.0

// HitTestFootprints resolves a world-space point to a footprint. Footprints
// are tested last-drawn-first so the visually topmost one wins overlaps.
// When no exact bounding-box hit exists, a fallback pass accepts footprints
// within pickTolerance of the point and picks the one whose box center is
// nearest, which keeps clicking usable at low zoom.
func HitTestFootprints(pos geom.Vec2, fps []*Footprint) *Footprint {
	for i := len(fps) - 1; i >= 0; i-- {
		if FootprintBBox(fps[i]).ContainsPoint(pos) {
			return fps[i]
		}
	}

	var best *Footprint
	bestDist := math.Inf(1)
	for i := len(fps) - 1; i >= 0; i-- {
		box := FootprintBBox(fps[i])
		if !box.Grow(pickTolerance).ContainsPoint(pos) {
			continue
		}
		d := box.Center().Sub(pos).Length()
		if d < bestDist {
			best = fps[i]
			bestDist = d
		}
	}
	return best
}

// HitTestFootprintsInBox returns every footprint whose bounding box
// overlaps the given world-space rectangle. Used for drag-box multi-select.
func HitTestFootprintsInBox(box geom.BBox, fps []*Footprint) []*Footprint {
	var hits []*Footprint
	for _, fp := range fps {
		if FootprintBBox(fp).Intersects(box) {
			hits = append(hits, fp)
		}
	}
	return hits
}
