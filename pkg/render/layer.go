package render

import (
	"image/color"

	"gioui.org/op"

	"github.com/atopile/atopile-sub007/pkg/geom"
)

// RenderLayer is one retained draw batch. Geometry is accumulated into a
// CPU mesh between StartLayer and EndLayer; on EndLayer the mesh is
// recorded into the renderer's op arena as a macro and the CPU copy is
// released. Depth is the commit order: later layers draw on top.
type RenderLayer struct {
	Name  string
	Depth int

	mesh      Mesh
	call      op.CallOp
	committed bool
	empty     bool
}

// Empty reports whether the layer committed with no geometry. Empty
// layers are skipped at draw time.
func (l *RenderLayer) Empty() bool { return l.empty }

// VertexCount returns the number of vertices accumulated so far. After
// commit it is zero; use Empty to ask about a committed layer.
func (l *RenderLayer) VertexCount() int { return l.mesh.N }

// AddPolyline strokes a round-capped polyline of the given width.
func (l *RenderLayer) AddPolyline(pts []geom.Vec2, width float64, c color.NRGBA) {
	l.mesh.Append(TessellatePolyline(pts, width, c, true))
}

// AddLine strokes a single round-capped segment.
func (l *RenderLayer) AddLine(a, b geom.Vec2, width float64, c color.NRGBA) {
	l.AddPolyline([]geom.Vec2{a, b}, width, c)
}

// AddCircle fills a circle.
func (l *RenderLayer) AddCircle(center geom.Vec2, radius float64, c color.NRGBA) {
	l.mesh.Append(TessellateCircle(center, radius, c, 0))
}

// AddRing strokes a circle outline of the given line width.
func (l *RenderLayer) AddRing(center geom.Vec2, radius, width float64, c color.NRGBA) {
	l.AddPolyline(CirclePoints(center, radius, 0), width, c)
}

// AddPolygon fills a polygon.
func (l *RenderLayer) AddPolygon(pts []geom.Vec2, c color.NRGBA) {
	l.mesh.Append(TriangulatePolygon(pts, c))
}

// AddMesh appends pre-tessellated geometry.
func (l *RenderLayer) AddMesh(m Mesh) {
	l.mesh.Append(m)
}
