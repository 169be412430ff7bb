// Package viewer is the interactive Gio application: it owns the camera,
// the retained renderer, the current render model and the selection, and
// it turns user input into camera moves and server edit intents.
package viewer

import (
	"context"
	"image"
	"log/slog"
	"math"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/atopile/atopile-sub007/pkg/board"
	"github.com/atopile/atopile-sub007/pkg/geom"
	"github.com/atopile/atopile-sub007/pkg/layoutapi"
	"github.com/atopile/atopile-sub007/pkg/render"
)

const actionTimeout = 5 * time.Second

// Viewer holds all per-window state. Everything runs on the window's
// event loop goroutine; server calls go out on their own goroutines and
// come back as model updates on the subscription channel.
type Viewer struct {
	cfg    Config
	log    *slog.Logger
	client *layoutapi.Client

	cam      *render.Camera
	renderer *render.Renderer
	painter  *render.Painter
	theme    *render.Theme

	model   *board.RenderModel
	updates <-chan *board.RenderModel

	hidden       []string
	selected     map[string]bool
	highlightNet int

	needsRepaint bool
	fitted       bool

	win *app.Window
	in  inputState
}

// New creates a viewer. The model may be nil until the first update
// arrives on the channel.
func New(cfg Config, client *layoutapi.Client, model *board.RenderModel, updates <-chan *board.RenderModel, log *slog.Logger) *Viewer {
	theme := render.ThemeByName(cfg.Theme)
	r := render.NewRenderer(theme)
	return &Viewer{
		cfg:          cfg,
		log:          log,
		client:       client,
		cam:          render.NewCamera(geom.V(1000, 800)),
		renderer:     r,
		painter:      render.NewPainter(r, theme),
		theme:        theme,
		model:        model,
		updates:      updates,
		hidden:       append([]string(nil), cfg.HiddenLayers...),
		selected:     map[string]bool{},
		needsRepaint: model != nil,
	}
}

// Run drives the window event loop until the window closes.
func (v *Viewer) Run(w *app.Window) error {
	v.win = w
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			ops.Reset()
			gtx := app.NewContext(&ops, e)
			v.frame(gtx, e)
			e.Frame(&ops)
		}
	}
}

func (v *Viewer) frame(gtx layout.Context, e app.FrameEvent) {
	v.cam.ViewportSize = geom.V(float64(e.Size.X), float64(e.Size.Y))

	v.drainUpdates()
	v.handleInput(gtx)

	if !v.fitted && v.model != nil {
		v.fitView()
	}
	if v.needsRepaint {
		v.painter.Paint(v.model, v.paintOptions())
		v.needsRepaint = false
	}

	v.renderer.UpdateGrid(v.cam.BBox(), v.cfg.GridSpacing)
	v.renderer.Draw(gtx.Ops, v.cam)
	v.drawSelectBox(gtx.Ops)

	// The whole window is one input area.
	area := clip.Rect(image.Rectangle{Max: e.Size}).Push(gtx.Ops)
	event.Op(gtx.Ops, v)
	area.Pop()
}

// drainUpdates swaps in the newest model pushed by the server. A swap
// during an active drag keeps the dragged footprint's interim pose so
// the part does not snap back under the cursor.
func (v *Viewer) drainUpdates() {
	if v.updates == nil {
		return
	}
	for {
		select {
		case m, ok := <-v.updates:
			if !ok {
				v.updates = nil
				return
			}
			v.setModel(m)
		default:
			return
		}
	}
}

func (v *Viewer) setModel(m *board.RenderModel) {
	if m == nil {
		return
	}
	if v.in.dragging != nil {
		if fp := m.FootprintByUUID(v.in.dragging.UUID); fp != nil {
			fp.At = v.in.dragging.At
			v.in.dragging = fp
		} else {
			v.in.dragging = nil
		}
	}
	// Selection survives by uuid; vanished footprints drop out.
	for uuid := range v.selected {
		if m.FootprintByUUID(uuid) == nil {
			delete(v.selected, uuid)
		}
	}
	v.model = m
	v.needsRepaint = true
	v.log.Debug("model updated",
		"footprints", len(m.Footprints),
		"tracks", len(m.Tracks))
}

func (v *Viewer) paintOptions() render.PaintOptions {
	return render.PaintOptions{
		HiddenLayers:    v.hidden,
		Selected:        v.selected,
		HighlightNet:    v.highlightNet,
		ColorByNet:      v.cfg.ColorByNet,
		MarkUnconnected: v.cfg.MarkUnconnected,
	}
}

func (v *Viewer) fitView() {
	if v.model == nil {
		return
	}
	b := v.model.BBox()
	if b.W <= 0 || b.H <= 0 {
		return
	}
	v.cam.SetBBox(b.Grow(math.Max(b.W, b.H) * 0.05))
	v.fitted = true
}

func (v *Viewer) repaint() {
	v.needsRepaint = true
	if v.win != nil {
		v.win.Invalidate()
	}
}

// selectOnly makes uuid the sole selection.
func (v *Viewer) selectOnly(uuid string) {
	if len(v.selected) == 1 && v.selected[uuid] {
		return
	}
	v.selected = map[string]bool{uuid: true}
	v.repaint()
}

func (v *Viewer) toggleSelect(uuid string) {
	if v.selected[uuid] {
		delete(v.selected, uuid)
	} else {
		v.selected[uuid] = true
	}
	v.repaint()
}

func (v *Viewer) clearSelection() {
	if len(v.selected) == 0 {
		return
	}
	v.selected = map[string]bool{}
	v.repaint()
}

// rotateSelection applies a 90 degree rotation optimistically and sends
// the intent; the authoritative pose comes back with the next model push.
func (v *Viewer) rotateSelection() {
	if v.model == nil {
		return
	}
	for uuid := range v.selected {
		fp := v.model.FootprintByUUID(uuid)
		if fp == nil {
			continue
		}
		fp.At.R = math.Mod(fp.At.R+90, 360)
		v.sendAction(layoutapi.Action{
			Type: "rotate", UUID: uuid,
			X: fp.At.X, Y: fp.At.Y, R: fp.At.R,
		})
	}
	if len(v.selected) > 0 {
		v.repaint()
	}
}

func (v *Viewer) flipSelection() {
	if v.model == nil {
		return
	}
	for uuid := range v.selected {
		fp := v.model.FootprintByUUID(uuid)
		if fp == nil {
			continue
		}
		if fp.Layer == "B.Cu" {
			fp.Layer = "F.Cu"
		} else {
			fp.Layer = "B.Cu"
		}
		v.sendAction(layoutapi.Action{Type: "flip", UUID: uuid})
	}
	if len(v.selected) > 0 {
		v.repaint()
	}
}

func (v *Viewer) finishDrag() {
	fp := v.in.dragging
	v.in.dragging = nil
	if fp == nil || !v.in.dragMoved {
		return
	}
	v.in.dragMoved = false
	v.sendAction(layoutapi.Action{
		Type: "move", UUID: fp.UUID,
		X: fp.At.X, Y: fp.At.Y, R: fp.At.R,
	})
}

// sendAction fires an edit intent without blocking the frame loop.
func (v *Viewer) sendAction(a layoutapi.Action) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		if err := v.client.ExecuteAction(ctx, a); err != nil {
			v.log.Error("action failed", "type", a.Type, "uuid", a.UUID, "err", err)
		}
	}()
}

func (v *Viewer) sendHistory(redo bool) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		var err error
		if redo {
			err = v.client.Redo(ctx)
		} else {
			err = v.client.Undo(ctx)
		}
		if err != nil {
			v.log.Error("history action failed", "redo", redo, "err", err)
		}
	}()
}

// toggleNetHighlight emphasizes the net of the selection's first pad, or
// clears the highlight if that net is already emphasized.
func (v *Viewer) toggleNetHighlight() {
	if v.model == nil {
		return
	}
	net := 0
	for uuid := range v.selected {
		fp := v.model.FootprintByUUID(uuid)
		if fp == nil {
			continue
		}
		for i := range fp.Pads {
			if fp.Pads[i].Net != 0 {
				net = fp.Pads[i].Net
				break
			}
		}
		if net != 0 {
			break
		}
	}
	if net == 0 || net == v.highlightNet {
		net = 0
	}
	if v.highlightNet == net {
		return
	}
	v.highlightNet = net
	v.repaint()
}

func (v *Viewer) sendReload() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		if err := v.client.Reload(ctx); err != nil {
			v.log.Error("reload failed", "err", err)
		}
	}()
}

// drawSelectBox strokes the in-progress rubber-band rectangle in screen
// space, on top of everything.
func (v *Viewer) drawSelectBox(ops *op.Ops) {
	if !v.in.boxSelecting {
		return
	}
	a, b := v.in.boxStart, v.in.boxEnd
	r := image.Rect(int(a.X), int(a.Y), int(b.X), int(b.Y)).Canon()
	if r.Dx() < 2 || r.Dy() < 2 {
		return
	}
	paint.FillShape(ops, v.theme.Selection, clip.Rect(r).Op())
	paint.FillShape(ops, v.theme.Highlight,
		clip.Stroke{Path: clip.RRect{Rect: r}.Path(ops), Width: 1}.Op())
}
