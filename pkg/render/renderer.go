package render

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/atopile/atopile-sub007/pkg/geom"
)

// gridDotCap bounds the number of grid dots per frame so a zoomed-out
// view with a fine grid cannot stall the UI. Past the cap the grid is
// simply not drawn.
const gridDotCap = 20000

// gridDotPx is the on-screen dot size in pixels, independent of zoom.
const gridDotPx = 1.5

// Renderer owns the retained layer set. Paint passes bracket geometry
// between StartLayer/EndLayer; committed layers are macros in a private
// op arena that Draw replays every frame under the camera transform, so
// a frame with no model change re-records nothing.
type Renderer struct {
	arena  op.Ops
	layers []*RenderLayer
	active *RenderLayer

	nextDepth int

	background color.NRGBA
	gridColor  color.NRGBA
	grid       []geom.Vec2
}

// NewRenderer creates a renderer drawing on the given theme's canvas
// colors.
func NewRenderer(theme *Theme) *Renderer {
	return &Renderer{
		background: theme.Background,
		gridColor:  theme.Grid,
	}
}

// SetTheme updates the canvas colors. Layer geometry is unaffected; the
// caller repaints to recolor it.
func (r *Renderer) SetTheme(theme *Theme) {
	r.background = theme.Background
	r.gridColor = theme.Grid
}

// StartLayer opens a new layer at the next depth and makes it the
// accumulation target. An unclosed previous layer is committed first, so
// painters cannot interleave layers by accident.
func (r *Renderer) StartLayer(name string) *RenderLayer {
	if r.active != nil {
		r.EndLayer()
	}
	l := &RenderLayer{Name: name, Depth: r.nextDepth}
	r.nextDepth++
	r.active = l
	return l
}

// EndLayer commits the active layer: its mesh is recorded into the op
// arena and the CPU-side copy is dropped. A layer that accumulated no
// geometry is kept in the list (its depth slot stays burned) but marked
// empty and skipped at draw time.
func (r *Renderer) EndLayer() {
	l := r.active
	if l == nil {
		return
	}
	r.active = nil

	if l.mesh.N == 0 {
		l.empty = true
	} else {
		macro := op.Record(&r.arena)
		emitMesh(&r.arena, l.mesh)
		l.call = macro.Stop()
		l.mesh = Mesh{}
	}
	l.committed = true
	r.layers = append(r.layers, l)
}

// DisposeLayers drops every committed layer and resets the op arena and
// the depth counter. Called at the top of each paint pass.
func (r *Renderer) DisposeLayers() {
	r.arena.Reset()
	r.layers = r.layers[:0]
	r.active = nil
	r.nextDepth = 0
}

// Layers returns the committed layers in depth order.
func (r *Renderer) Layers() []*RenderLayer { return r.layers }

// Layer returns the committed layer with the given name, or nil.
func (r *Renderer) Layer(name string) *RenderLayer {
	for _, l := range r.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// UpdateGrid recomputes the dot lattice covering the visible world
// rectangle at the given spacing. If the view would need more dots than
// the cap, the grid is cleared instead.
func (r *Renderer) UpdateGrid(view geom.BBox, spacing float64) {
	r.grid = r.grid[:0]
	if spacing <= 0 {
		return
	}
	cols := int(view.W/spacing) + 2
	rows := int(view.H/spacing) + 2
	if cols*rows > gridDotCap {
		return
	}
	x0 := spacing * float64(int(view.X/spacing))
	y0 := spacing * float64(int(view.Y/spacing))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r.grid = append(r.grid, geom.V(x0+float64(x)*spacing, y0+float64(y)*spacing))
		}
	}
}

// Draw replays the committed layers into ops: background fill, then the
// grid, then every non-empty layer in depth order under the camera's
// world-to-screen affine.
func (r *Renderer) Draw(ops *op.Ops, cam *Camera) {
	paint.Fill(ops, r.background)
	r.drawGrid(ops, cam)

	m := cam.Matrix()
	aff := f32.NewAffine2D(
		float32(m[0][0]), float32(m[1][0]), float32(m[2][0]),
		float32(m[0][1]), float32(m[1][1]), float32(m[2][1]),
	)
	stack := op.Affine(aff).Push(ops)
	for _, l := range r.layers {
		if !l.empty {
			l.call.Add(ops)
		}
	}
	stack.Pop()
}

// drawGrid paints the dot lattice in screen space so dots keep a fixed
// pixel size at any zoom.
func (r *Renderer) drawGrid(ops *op.Ops, cam *Camera) {
	if len(r.grid) == 0 {
		return
	}
	half := gridDotPx / 2
	for _, p := range r.grid {
		s := cam.WorldToScreen(p)
		rect := image.Rect(
			int(s.X-half), int(s.Y-half),
			int(s.X+half)+1, int(s.Y+half)+1,
		)
		paint.FillShape(ops, r.gridColor, clip.Rect(rect).Op())
	}
}

// emitMesh records a mesh into ops. Consecutive triangles with the same
// color merge into a single clip path and fill, which keeps the op count
// close to one per color run instead of one per triangle.
func emitMesh(ops *op.Ops, m Mesh) {
	i := 0
	for i < m.N {
		run := vertexColor(m, i)
		var p clip.Path
		p.Begin(ops)
		for i+3 <= m.N && vertexColor(m, i) == run {
			p.MoveTo(meshPoint(m, i))
			p.LineTo(meshPoint(m, i+1))
			p.LineTo(meshPoint(m, i+2))
			p.Close()
			i += 3
		}
		paint.FillShape(ops, run, clip.Outline{Path: p.End()}.Op())
	}
}

func meshPoint(m Mesh, i int) f32.Point {
	return f32.Pt(m.Pos[2*i], m.Pos[2*i+1])
}

func vertexColor(m Mesh, i int) color.NRGBA {
	return color.NRGBA{
		R: uint8(m.Col[4*i]*255 + 0.5),
		G: uint8(m.Col[4*i+1]*255 + 0.5),
		B: uint8(m.Col[4*i+2]*255 + 0.5),
		A: uint8(m.Col[4*i+3]*255 + 0.5),
	}
}
