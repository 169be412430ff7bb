package viewer

import (
	"math"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"

	"github.com/atopile/atopile-sub007/pkg/board"
	"github.com/atopile/atopile-sub007/pkg/geom"
	"github.com/atopile/atopile-sub007/pkg/render"
)

// minBoxSelectPx is the smallest rubber-band extent that counts as a box
// selection rather than a sloppy click.
const minBoxSelectPx = 4.0

type inputState struct {
	panning bool
	lastPos geom.Vec2 // screen, for pan deltas

	dragging  *board.Footprint
	dragGrab  geom.Vec2 // world offset from pointer to footprint origin
	dragMoved bool

	boxSelecting bool
	boxAdditive  bool
	boxStart     geom.Vec2 // screen
	boxEnd       geom.Vec2

	touches   map[pointer.ID]f32.Point
	pinchDist float64
}

func (v *Viewer) inputFilters() []event.Filter {
	return []event.Filter{
		pointer.Filter{
			Target:  v,
			Kinds:   pointer.Press | pointer.Drag | pointer.Move | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollX: pointer.ScrollRange{Min: -1024, Max: 1024},
			ScrollY: pointer.ScrollRange{Min: -1024, Max: 1024},
		},
		key.Filter{Name: "R"},
		key.Filter{Name: "F"},
		key.Filter{Name: "N"},
		key.Filter{Name: key.NameSpace},
		key.Filter{Name: key.NameEscape},
		key.Filter{Name: key.NameF5},
		key.Filter{Name: "Z", Required: key.ModCtrl, Optional: key.ModShift},
	}
}

func (v *Viewer) handleInput(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(v.inputFilters()...)
		if !ok {
			break
		}
		switch e := ev.(type) {
		case pointer.Event:
			v.handlePointer(e)
		case key.Event:
			if e.State == key.Press {
				v.handleKey(e)
			}
		}
	}
}

func (v *Viewer) handleKey(e key.Event) {
	switch e.Name {
	case "R":
		v.rotateSelection()
	case "F":
		v.flipSelection()
	case "N":
		v.toggleNetHighlight()
	case key.NameSpace:
		v.fitted = false
		if v.win != nil {
			v.win.Invalidate()
		}
	case key.NameEscape:
		v.clearSelection()
	case key.NameF5:
		v.sendReload()
	case "Z":
		v.sendHistory(e.Modifiers.Contain(key.ModShift))
	}
}

func (v *Viewer) handlePointer(e pointer.Event) {
	pos := geom.V(float64(e.Position.X), float64(e.Position.Y))

	if e.Source == pointer.Touch {
		v.handleTouch(e, pos)
		return
	}

	switch e.Kind {
	case pointer.Scroll:
		v.handleScroll(e, pos)

	case pointer.Press:
		switch {
		case e.Buttons.Contain(pointer.ButtonTertiary) || e.Buttons.Contain(pointer.ButtonSecondary):
			v.in.panning = true
			v.in.lastPos = pos
		case e.Buttons.Contain(pointer.ButtonPrimary):
			v.handlePrimaryPress(e, pos)
		}

	case pointer.Drag:
		switch {
		case v.in.panning:
			v.panTo(pos)
		case v.in.dragging != nil:
			v.dragTo(pos)
		case v.in.boxSelecting:
			v.in.boxEnd = pos
			v.win.Invalidate()
		}

	case pointer.Release, pointer.Cancel:
		if v.in.panning {
			v.in.panning = false
		}
		if v.in.dragging != nil {
			v.finishDrag()
		}
		if v.in.boxSelecting {
			v.finishBoxSelect(e.Kind == pointer.Cancel)
		}
	}
}

func (v *Viewer) handlePrimaryPress(e pointer.Event, pos geom.Vec2) {
	world := v.cam.ScreenToWorld(pos)
	var hit *board.Footprint
	if v.model != nil {
		hit = board.HitTestFootprints(world, v.model.Footprints)
	}
	if hit == nil {
		v.in.boxSelecting = true
		v.in.boxAdditive = e.Modifiers.Contain(key.ModShift)
		v.in.boxStart = pos
		v.in.boxEnd = pos
		return
	}

	if e.Modifiers.Contain(key.ModCtrl) {
		v.toggleSelect(hit.UUID)
	} else if !v.selected[hit.UUID] {
		v.selectOnly(hit.UUID)
	}
	// Only a current selection member drags.
	if v.selected[hit.UUID] {
		v.in.dragging = hit
		v.in.dragGrab = hit.At.Pos().Sub(world)
		v.in.dragMoved = false
	}
}

func (v *Viewer) panTo(pos geom.Vec2) {
	delta := v.in.lastPos.Sub(pos).Mul(1 / v.cam.Zoom)
	v.in.lastPos = pos
	v.cam.Translate(delta)
	v.win.Invalidate()
}

func (v *Viewer) dragTo(pos geom.Vec2) {
	fp := v.in.dragging
	world := v.cam.ScreenToWorld(pos).Add(v.in.dragGrab)
	if world.Sub(fp.At.Pos()).Length() == 0 {
		return
	}
	fp.At.X, fp.At.Y = world.X, world.Y
	v.in.dragMoved = true
	v.repaint()
}

func (v *Viewer) finishBoxSelect(canceled bool) {
	v.in.boxSelecting = false
	a, b := v.in.boxStart, v.in.boxEnd
	if canceled {
		v.win.Invalidate()
		return
	}
	if math.Abs(a.X-b.X) < minBoxSelectPx && math.Abs(a.Y-b.Y) < minBoxSelectPx {
		// A click on empty space.
		v.clearSelection()
		v.win.Invalidate()
		return
	}
	wa := v.cam.ScreenToWorld(a)
	wb := v.cam.ScreenToWorld(b)
	box := geom.BBoxFromPoints(wa, wb)

	if !v.in.boxAdditive {
		v.selected = map[string]bool{}
	}
	if v.model != nil {
		for _, fp := range board.HitTestFootprintsInBox(box, v.model.Footprints) {
			v.selected[fp.UUID] = true
		}
	}
	v.repaint()
}

// handleScroll zooms at the cursor, or pans when a pan modifier is held.
func (v *Viewer) handleScroll(e pointer.Event, pos geom.Vec2) {
	sx := float64(e.Scroll.X)
	sy := float64(e.Scroll.Y)
	if e.Modifiers.Contain(key.ModShift) {
		// Shift turns vertical scroll into horizontal pan.
		sx, sy = sy, sx
	}
	if e.Modifiers.Contain(key.ModShift) || e.Modifiers.Contain(key.ModCtrl) {
		v.cam.Translate(geom.V(sx, sy).Mul(1 / v.cam.Zoom))
		v.win.Invalidate()
		return
	}
	delta := render.NormalizeWheelDelta(sy, render.WheelPixel)
	if delta == 0 {
		return
	}
	v.cam.ZoomTo(pos, render.WheelZoom(v.cam.Zoom, delta, v.cfg.ZoomSpeed))
	v.win.Invalidate()
}

// handleTouch pans with one finger and pinch-zooms with two.
func (v *Viewer) handleTouch(e pointer.Event, pos geom.Vec2) {
	if v.in.touches == nil {
		v.in.touches = map[pointer.ID]f32.Point{}
	}
	switch e.Kind {
	case pointer.Press:
		v.in.touches[e.PointerID] = e.Position
		if len(v.in.touches) == 1 {
			v.in.panning = true
			v.in.lastPos = pos
		} else {
			v.in.panning = false
			v.in.pinchDist = touchDist(v.in.touches)
		}

	case pointer.Drag, pointer.Move:
		v.in.touches[e.PointerID] = e.Position
		switch len(v.in.touches) {
		case 1:
			if v.in.panning {
				v.panTo(pos)
			}
		case 2:
			d := touchDist(v.in.touches)
			if v.in.pinchDist > 0 && d > 0 {
				mid := touchMid(v.in.touches)
				v.cam.ZoomTo(mid, v.cam.Zoom*d/v.in.pinchDist)
				v.win.Invalidate()
			}
			v.in.pinchDist = d
		}

	case pointer.Release, pointer.Cancel:
		delete(v.in.touches, e.PointerID)
		v.in.panning = false
		v.in.pinchDist = 0
		if len(v.in.touches) == 1 {
			// Back to one finger: resume panning from its position.
			for _, p := range v.in.touches {
				v.in.panning = true
				v.in.lastPos = geom.V(float64(p.X), float64(p.Y))
			}
		}
	}
}

func touchDist(touches map[pointer.ID]f32.Point) float64 {
	pts := touchPoints(touches)
	if len(pts) < 2 {
		return 0
	}
	return pts[0].Sub(pts[1]).Length()
}

func touchMid(touches map[pointer.ID]f32.Point) geom.Vec2 {
	pts := touchPoints(touches)
	if len(pts) < 2 {
		return geom.Vec2{}
	}
	return pts[0].Add(pts[1]).Mul(0.5)
}

func touchPoints(touches map[pointer.ID]f32.Point) []geom.Vec2 {
	out := make([]geom.Vec2, 0, len(touches))
	for _, p := range touches {
		out = append(out, geom.V(float64(p.X), float64(p.Y)))
	}
	return out
}
