package render

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/atopile/atopile-sub007/pkg/board"
	"github.com/atopile/atopile-sub007/pkg/geom"
)

// PadMode selects how a single pad is drawn.
type PadMode uint8

const (
	// PadFilled is the normal solid rendering.
	PadFilled PadMode = iota
	// PadOutline strokes the pad's outline only, used to flag pads the
	// design says are unconnected.
	PadOutline
	// PadHighlight draws the pad filled plus an inflated bright outline.
	PadHighlight
)

const (
	edgeStrokeWidth    = 0.1
	hatchStrokeWidth   = 0.1
	padOutlineFrac     = 0.25
	padHighlightMargin = 0.2
	padHighlightStroke = 0.15
	selectionMargin    = 0.5
	dimmedAlpha        = 60
)

// PaintOptions carries the per-pass view state: what is hidden, what is
// selected, and any per-pad or per-net emphasis.
type PaintOptions struct {
	// HiddenLayers is the user's hidden concrete-layer set.
	HiddenLayers []string
	// Selected marks footprint uuids drawn with a selection overlay.
	Selected map[string]bool
	// HighlightNet, when nonzero, brightens items on that net and fades
	// the rest of the copper.
	HighlightNet int
	// ColorByNet colors copper items by net palette instead of by layer.
	ColorByNet bool
	// PadModes overrides the mode for individual pads, keyed by
	// "<footprint-uuid>/<pad-name>".
	PadModes map[string]PadMode
	// MarkUnconnected draws pads on unconnected nets in outline mode.
	MarkUnconnected bool
}

// PadKey builds the PadModes key for a pad.
func PadKey(fpUUID, padName string) string {
	return fpUUID + "/" + padName
}

// Painter converts a render model into retained layers. It holds no
// per-model state: every Paint call disposes the previous layer set and
// rebuilds from the model it is handed, so a model swap or an option
// change is just another Paint.
type Painter struct {
	r     *Renderer
	theme *Theme
}

// NewPainter creates a painter targeting the given renderer and theme.
func NewPainter(r *Renderer, theme *Theme) *Painter {
	return &Painter{r: r, theme: theme}
}

// SetTheme swaps the color theme. Takes effect on the next Paint.
func (p *Painter) SetTheme(theme *Theme) {
	p.theme = theme
	p.r.SetTheme(theme)
}

// Paint rebuilds the full layer set from the model. Commit order is draw
// order: board edges first, then zone fills, copper, vias, footprints,
// and the selection overlay on top.
func (p *Painter) Paint(m *board.RenderModel, opts PaintOptions) {
	p.r.DisposeLayers()
	if m == nil {
		return
	}
	vis := NewVisibility(m, opts.HiddenLayers)

	p.paintEdges(m, vis)
	p.paintZones(m, vis, opts)
	p.paintTracks(m, vis, opts)
	p.paintArcs(m, vis, opts)
	p.paintVias(m, vis, opts)
	for _, fp := range m.Footprints {
		p.paintFootprint(m, fp, vis, opts)
	}
	p.paintSelection(m, opts)

	// Close a dangling bracket if a paint helper ever leaves one open.
	p.r.EndLayer()
}

// copperColor picks the color for a copper item honoring net coloring and
// net highlighting.
func (p *Painter) copperColor(layer string, net int, opts PaintOptions) color.NRGBA {
	c := p.theme.LayerColor(layer)
	if opts.ColorByNet {
		c = p.theme.NetColor(net)
	}
	if opts.HighlightNet != 0 {
		if net == opts.HighlightNet {
			return p.theme.Highlight
		}
		return dim(c, dimmedAlpha)
	}
	return c
}

func (p *Painter) paintEdges(m *board.RenderModel, vis *Visibility) {
	if len(m.Board.Edges) == 0 || !vis.LayerVisible("Edge.Cuts") {
		return
	}
	l := p.r.StartLayer("edges")
	c := p.theme.LayerColor("Edge.Cuts")
	for i := range m.Board.Edges {
		e := &m.Board.Edges[i]
		switch e.Type {
		case "arc":
			l.AddPolyline(ArcPoints(e.Start.Vec2, e.Mid.Vec2, e.End.Vec2, DrawingArcSegments), edgeStrokeWidth, c)
		case "circle":
			r := e.End.Sub(e.Center.Vec2).Length()
			l.AddPolyline(CirclePoints(e.Center.Vec2, r, EdgeCircleSegments), edgeStrokeWidth, c)
		case "rect":
			a, b := e.Start.Vec2, e.End.Vec2
			l.AddPolyline([]geom.Vec2{a, geom.V(b.X, a.Y), b, geom.V(a.X, b.Y), a}, edgeStrokeWidth, c)
		default: // line
			l.AddLine(e.Start.Vec2, e.End.Vec2, edgeStrokeWidth, c)
		}
	}
	p.r.EndLayer()
}

// paintZones draws filled pours grouped per copper layer, then synthesizes
// an outline-plus-hatch rendering for zones that have no fill yet.
func (p *Painter) paintZones(m *board.RenderModel, vis *Visibility, opts PaintOptions) {
	seen := map[string]bool{}
	var order []string
	for i := range m.Zones {
		for j := range m.Zones[i].Fills {
			f := &m.Zones[i].Fills[j]
			if f.Layer == "" || !vis.LayerVisible(f.Layer) || len(f.Points) < 3 {
				continue
			}
			if !seen[f.Layer] {
				seen[f.Layer] = true
				order = append(order, f.Layer)
			}
		}
	}
	for _, layer := range order {
		l := p.r.StartLayer("zones:" + layer)
		for i := range m.Zones {
			z := &m.Zones[i]
			for j := range z.Fills {
				f := &z.Fills[j]
				if f.Layer != layer || len(f.Points) < 3 {
					continue
				}
				l.AddPolygon(pointsToVecs(f.Points), dim(p.copperColor(layer, z.Net, opts), 180))
			}
		}
		p.r.EndLayer()
	}

	for i := range m.Zones {
		z := &m.Zones[i]
		if len(z.Fills) > 0 || len(z.Outline) < 3 {
			continue
		}
		if !anyLayerVisible(z.Layers, vis) {
			continue
		}
		layer := board.DefaultCopperLayer
		if len(z.Layers) > 0 {
			layer = z.Layers[0]
		}
		c := p.copperColor(layer, z.Net, opts)

		l := p.r.StartLayer("zones:hatch:" + z.UUID)
		outline := pointsToVecs(z.Outline)
		l.AddPolyline(append(outline, outline[0]), hatchStrokeWidth, c)
		for _, seg := range hatchSegments(outline, z.HatchPitch) {
			l.AddLine(seg[0], seg[1], hatchStrokeWidth, c)
		}
		p.r.EndLayer()
	}
}

func (p *Painter) paintTracks(m *board.RenderModel, vis *Visibility, opts PaintOptions) {
	for _, layer := range copperLayerOrder(m) {
		if !vis.LayerVisible(layer) {
			continue
		}
		var opened bool
		var l *RenderLayer
		for i := range m.Tracks {
			t := &m.Tracks[i]
			if t.Layer != layer {
				continue
			}
			if !opened {
				l = p.r.StartLayer("tracks:" + layer)
				opened = true
			}
			l.AddLine(t.Start.Vec2, t.End.Vec2, t.Width, p.copperColor(layer, t.Net, opts))
		}
		if opened {
			p.r.EndLayer()
		}
	}
}

func (p *Painter) paintArcs(m *board.RenderModel, vis *Visibility, opts PaintOptions) {
	for _, layer := range copperLayerOrder(m) {
		if !vis.LayerVisible(layer) {
			continue
		}
		var opened bool
		var l *RenderLayer
		for i := range m.Arcs {
			a := &m.Arcs[i]
			if a.Layer != layer {
				continue
			}
			if !opened {
				l = p.r.StartLayer("arcs:" + layer)
				opened = true
			}
			pts := ArcPoints(a.Start.Vec2, a.Mid.Vec2, a.End.Vec2, TrackArcSegments)
			l.AddPolyline(pts, a.Width, p.copperColor(layer, a.Net, opts))
		}
		if opened {
			p.r.EndLayer()
		}
	}
}

func (p *Painter) paintVias(m *board.RenderModel, vis *Visibility, opts PaintOptions) {
	var opened bool
	var l *RenderLayer
	for i := range m.Vias {
		v := &m.Vias[i]
		if len(v.Layers) > 0 && !anyLayerVisible(v.Layers, vis) {
			continue
		}
		if !opened {
			l = p.r.StartLayer("vias")
			opened = true
		}
		annulus := p.theme.Via
		if opts.HighlightNet != 0 {
			if v.Net == opts.HighlightNet {
				annulus = p.theme.Highlight
			} else {
				annulus = dim(annulus, dimmedAlpha)
			}
		}
		l.AddCircle(v.At.Vec2, v.Size/2, annulus)
		if v.Drill > 0 {
			l.AddCircle(v.At.Vec2, v.Drill/2, p.theme.ViaDrill)
		}
	}
	if opened {
		p.r.EndLayer()
	}
}

// paintFootprint draws a footprint's drawings grouped per layer, then its
// pads. The pads layer is only opened when at least one pad is visible, so
// hiding all copper leaves no empty pad layer behind.
func (p *Painter) paintFootprint(m *board.RenderModel, fp *board.Footprint, vis *Visibility, opts PaintOptions) {
	byLayer := map[string]bool{}
	var order []string
	for i := range fp.Drawings {
		layer := fp.Drawings[i].Layer
		if !vis.LayerVisible(layer) {
			continue
		}
		if !byLayer[layer] {
			byLayer[layer] = true
			order = append(order, layer)
		}
	}
	for _, layer := range order {
		l := p.r.StartLayer(fmt.Sprintf("fp:%s:%s", fp.UUID, layer))
		c := p.theme.LayerColor(layer)
		for i := range fp.Drawings {
			d := &fp.Drawings[i]
			if d.Layer == layer {
				p.paintDrawing(l, fp, d, c)
			}
		}
		p.r.EndLayer()
	}

	var visiblePads []*board.Pad
	for i := range fp.Pads {
		if vis.AnyTokenVisible(fp.Pads[i].Layers) {
			visiblePads = append(visiblePads, &fp.Pads[i])
		}
	}
	if len(visiblePads) == 0 {
		return
	}
	l := p.r.StartLayer(fmt.Sprintf("fp:%s:pads", fp.UUID))
	for _, pad := range visiblePads {
		p.paintPad(l, m, fp, pad, opts)
	}
	p.r.EndLayer()
}

func (p *Painter) paintDrawing(l *RenderLayer, fp *board.Footprint, d *board.Drawing, c color.NRGBA) {
	w := d.Width
	switch d.Type {
	case "line":
		l.AddLine(fp.ToWorld(d.Start.Vec2), fp.ToWorld(d.End.Vec2), w, c)
	case "arc":
		pts := ArcPoints(d.Start.Vec2, d.Mid.Vec2, d.End.Vec2, DrawingArcSegments)
		for i := range pts {
			pts[i] = fp.ToWorld(pts[i])
		}
		l.AddPolyline(pts, w, c)
	case "circle":
		r := d.End.Sub(d.Center.Vec2).Length()
		pts := CirclePoints(d.Center.Vec2, r, 0)
		for i := range pts {
			pts[i] = fp.ToWorld(pts[i])
		}
		l.AddPolyline(pts, w, c)
	case "rect":
		a, b := d.Start.Vec2, d.End.Vec2
		locals := []geom.Vec2{a, geom.V(b.X, a.Y), b, geom.V(a.X, b.Y), a}
		for i := range locals {
			locals[i] = fp.ToWorld(locals[i])
		}
		l.AddPolyline(locals, w, c)
	case "polygon":
		if len(d.Points) < 3 {
			return
		}
		pts := make([]geom.Vec2, len(d.Points))
		for i := range d.Points {
			pts[i] = fp.ToWorld(d.Points[i].Vec2)
		}
		l.AddPolygon(pts, c)
	}
}

func (p *Painter) paintPad(l *RenderLayer, m *board.RenderModel, fp *board.Footprint, pad *board.Pad, opts PaintOptions) {
	c := p.theme.PadSMD
	if pad.Type == "thru_hole" || pad.Type == "np_thru_hole" {
		c = p.theme.PadTH
	}
	if opts.HighlightNet != 0 {
		if pad.Net == opts.HighlightNet {
			c = p.theme.Highlight
		} else {
			c = dim(c, dimmedAlpha)
		}
	}

	mode := PadFilled
	if opts.MarkUnconnected && pad.Type != "np_thru_hole" && m.IsUnconnected(pad.Net) {
		mode = PadOutline
	}
	if override, ok := opts.PadModes[PadKey(fp.UUID, pad.Name)]; ok {
		mode = override
	}

	switch mode {
	case PadOutline:
		p.padOutline(l, fp, pad, c)
	case PadHighlight:
		p.padFill(l, fp, pad, c)
		p.padHalo(l, fp, pad)
	default:
		p.padFill(l, fp, pad, c)
	}

	// Drill holes draw after the pad body so they sit on top.
	if pad.Type == "thru_hole" || pad.Type == "np_thru_hole" {
		d := 0.0
		if pad.Drill != nil {
			d = pad.Drill.SizeX
		}
		if d <= 0 {
			d = pad.Size.W / 2
		}
		l.AddCircle(fp.PadToWorld(pad, geom.Vec2{}), d/2, p.theme.Drill)
	}
}

// padFill draws the solid pad body. Circles and capsule-shaped ovals get
// exact geometry; every other shape renders as its bounding quad.
func (p *Painter) padFill(l *RenderLayer, fp *board.Footprint, pad *board.Pad, c color.NRGBA) {
	w, h := pad.Size.W, pad.Size.H
	switch pad.Shape {
	case "circle":
		l.AddCircle(fp.PadToWorld(pad, geom.Vec2{}), w/2, c)
	case "oval":
		if math.Abs(w-h) < 1e-9 {
			l.AddCircle(fp.PadToWorld(pad, geom.Vec2{}), w/2, c)
			return
		}
		// A capsule: a thick round-capped segment between the two focus
		// points of the oval, as wide as the minor axis.
		f1, f2, minor := ovalFoci(w, h)
		l.AddLine(fp.PadToWorld(pad, f1), fp.PadToWorld(pad, f2), minor, c)
	default: // rect, roundrect, trapezoid, custom
		corners := fp.PadCorners(pad)
		l.AddPolygon(corners[:], c)
	}
}

// padOutline strokes the pad shape instead of filling it.
func (p *Painter) padOutline(l *RenderLayer, fp *board.Footprint, pad *board.Pad, c color.NRGBA) {
	w, h := pad.Size.W, pad.Size.H
	stroke := math.Min(w, h) * padOutlineFrac
	switch pad.Shape {
	case "circle":
		l.AddRing(fp.PadToWorld(pad, geom.Vec2{}), (w-stroke)/2, stroke, c)
	default:
		corners := fp.PadCorners(pad)
		l.AddPolyline(append(corners[:], corners[0]), stroke, c)
	}
}

// padHalo strokes an inflated outline around the pad in the highlight
// color.
func (p *Painter) padHalo(l *RenderLayer, fp *board.Footprint, pad *board.Pad) {
	hw := pad.Size.W/2 + padHighlightMargin
	hh := pad.Size.H/2 + padHighlightMargin
	locals := []geom.Vec2{
		{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}, {X: -hw, Y: -hh},
	}
	for i := range locals {
		locals[i] = fp.PadToWorld(pad, locals[i])
	}
	l.AddPolyline(locals, padHighlightStroke, p.theme.Highlight)
}

// paintSelection draws translucent boxes over the selected footprints.
// Committed last, so the overlay is always topmost.
func (p *Painter) paintSelection(m *board.RenderModel, opts PaintOptions) {
	if len(opts.Selected) == 0 {
		return
	}
	var opened bool
	var l *RenderLayer
	for _, fp := range m.Footprints {
		if !opts.Selected[fp.UUID] {
			continue
		}
		if !opened {
			l = p.r.StartLayer("selection")
			opened = true
		}
		b := board.FootprintBBox(fp).Grow(selectionMargin)
		l.AddPolygon([]geom.Vec2{
			{X: b.X, Y: b.Y},
			{X: b.X + b.W, Y: b.Y},
			{X: b.X + b.W, Y: b.Y + b.H},
			{X: b.X, Y: b.Y + b.H},
		}, p.theme.Selection)
	}
	if opened {
		p.r.EndLayer()
	}
}

// ovalFoci returns the two capsule endpoints of an oval pad in pad-local
// coordinates, plus the capsule width (the minor axis).
func ovalFoci(w, h float64) (f1, f2 geom.Vec2, minor float64) {
	if w > h {
		d := (w - h) / 2
		return geom.V(-d, 0), geom.V(d, 0), h
	}
	d := (h - w) / 2
	return geom.V(0, -d), geom.V(0, d), w
}

// hatchSegments intersects a polygon with a family of slope-1 lines
// spaced at pitch along the anti-diagonal, returning the inside spans.
func hatchSegments(poly []geom.Vec2, pitch float64) [][2]geom.Vec2 {
	if len(poly) < 3 || pitch <= 0 {
		return nil
	}
	// A slope-1 line is the locus x - y = c.
	cmin, cmax := math.Inf(1), math.Inf(-1)
	for _, p := range poly {
		c := p.X - p.Y
		cmin = math.Min(cmin, c)
		cmax = math.Max(cmax, c)
	}
	step := pitch * math.Sqrt2

	var out [][2]geom.Vec2
	for c := cmin + step/2; c < cmax; c += step {
		var hits []geom.Vec2
		for i := range poly {
			a := poly[i]
			b := poly[(i+1)%len(poly)]
			da := a.X - a.Y
			db := b.X - b.Y
			if da == db {
				continue
			}
			t := (c - da) / (db - da)
			if t < 0 || t >= 1 {
				continue
			}
			hits = append(hits, a.Add(b.Sub(a).Mul(t)))
		}
		// Order along the line and pair up: even-odd spans are inside.
		sort.Slice(hits, func(i, j int) bool {
			return hits[i].X+hits[i].Y < hits[j].X+hits[j].Y
		})
		for i := 0; i+1 < len(hits); i += 2 {
			out = append(out, [2]geom.Vec2{hits[i], hits[i+1]})
		}
	}
	return out
}

// copperLayerOrder returns the distinct copper layer names referenced by
// tracks and arc tracks, in first-seen order.
func copperLayerOrder(m *board.RenderModel) []string {
	seen := map[string]bool{}
	var order []string
	for i := range m.Tracks {
		if l := m.Tracks[i].Layer; !seen[l] {
			seen[l] = true
			order = append(order, l)
		}
	}
	for i := range m.Arcs {
		if l := m.Arcs[i].Layer; !seen[l] {
			seen[l] = true
			order = append(order, l)
		}
	}
	return order
}

func anyLayerVisible(layers []string, vis *Visibility) bool {
	if len(layers) == 0 {
		return true
	}
	for _, l := range layers {
		if vis.TokenVisible(l) {
			return true
		}
	}
	return false
}

func pointsToVecs(pts []board.Point) []geom.Vec2 {
	out := make([]geom.Vec2, len(pts))
	for i := range pts {
		out[i] = pts[i].Vec2
	}
	return out
}
