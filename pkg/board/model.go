// Package board defines the render model the layout server hands to the
// viewer, along with the coordinate transforms and spatial queries the
// renderer and the picker share. The model is replaced wholesale on every
// server update; the only in-place mutation is a footprint pose during an
// interactive drag.
package board

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/atopile/atopile-sub007/pkg/geom"
)

// Default values substituted for missing optional fields during decode.
// The renderer prefers drawing something reasonable over rejecting a
// model for one incomplete primitive.
const (
	DefaultCopperLayer = "F.Cu"
	DefaultSilkLayer   = "F.SilkS"
	DefaultStrokeWidth = 0.12
	DefaultHatchPitch  = 0.5
)

// Point decodes the server's [x, y] coordinate arrays.
type Point struct {
	geom.Vec2
}

// UnmarshalJSON accepts a two-element array of numbers.
func (p *Point) UnmarshalJSON(data []byte) error {
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("point: %w", err)
	}
	if len(arr) < 2 {
		return fmt.Errorf("point: expected [x, y], got %d elements", len(arr))
	}
	p.X, p.Y = arr[0], arr[1]
	return nil
}

// Pose is a position plus rotation, decoded from [x, y] or [x, y, r].
// Rotation is in degrees and is always applied through the clockwise-on-
// screen convention in RotateDeg.
type Pose struct {
	X float64
	Y float64
	R float64
}

// UnmarshalJSON accepts [x, y] or [x, y, r]; a missing rotation is 0.
func (p *Pose) UnmarshalJSON(data []byte) error {
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("pose: %w", err)
	}
	if len(arr) < 2 {
		return fmt.Errorf("pose: expected [x, y, r?], got %d elements", len(arr))
	}
	p.X, p.Y = arr[0], arr[1]
	if len(arr) > 2 {
		p.R = arr[2]
	}
	return nil
}

// Pos returns the position component of the pose.
func (p Pose) Pos() geom.Vec2 {
	return geom.Vec2{X: p.X, Y: p.Y}
}

// Size decodes the server's [w, h] size arrays. A single element is
// treated as a square.
type Size struct {
	W float64
	H float64
}

func (s *Size) UnmarshalJSON(data []byte) error {
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("size: %w", err)
	}
	switch len(arr) {
	case 0:
		return fmt.Errorf("size: empty array")
	case 1:
		s.W, s.H = arr[0], arr[0]
	default:
		s.W, s.H = arr[0], arr[1]
	}
	return nil
}

// RenderModel is the full board description for one paint generation.
type RenderModel struct {
	Board      Board        `json:"board"`
	Footprints []*Footprint `json:"footprints"`
	Tracks     []Track      `json:"tracks"`
	Arcs       []ArcTrack   `json:"arcs"`
	Vias       []Via        `json:"vias"`
	Zones      []Zone       `json:"zones"`
	Nets       []Net        `json:"nets"`
}

// Board carries the outline geometry on Edge.Cuts plus the precomputed
// extent the server derived from it.
type Board struct {
	Edges  []Edge  `json:"edges"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Origin Point   `json:"origin"`
}

// Edge is one board-outline primitive.
type Edge struct {
	Type   string `json:"type"` // line, arc, circle, rect
	Start  Point  `json:"start"`
	Mid    Point  `json:"mid"`
	End    Point  `json:"end"`
	Center Point  `json:"center"`
}

// Footprint is a placed component. At is mutated in place during an
// interactive drag; everything else is read-only.
type Footprint struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	Reference string    `json:"reference"`
	Value     string    `json:"value"`
	At        Pose      `json:"at"`
	Layer     string    `json:"layer"`
	Pads      []Pad     `json:"pads"`
	Drawings  []Drawing `json:"drawings"`
}

// Pad is a single contact of a footprint. Layers may contain wildcard
// tokens ("*.Cu", "F&B.Cu") which the painter resolves against the
// model's concrete layer inventory.
type Pad struct {
	Name           string   `json:"name"`
	At             Pose     `json:"at"`
	Size           Size     `json:"size"`
	Shape          string   `json:"shape"` // circle, oval, rect, roundrect, trapezoid, custom
	Type           string   `json:"type"`  // smd, thru_hole, np_thru_hole, connect
	Layers         []string `json:"layers"`
	Net            int      `json:"net"`
	RoundrectRatio float64  `json:"roundrect_rratio"`
	Drill          *Drill   `json:"drill"`
}

// Drill describes a pad's hole geometry.
type Drill struct {
	Shape string  `json:"shape"`
	SizeX float64 `json:"size_x"`
	SizeY float64 `json:"size_y"`
}

// Drawing is a silkscreen/fab/courtyard primitive in the owning
// footprint's local frame.
type Drawing struct {
	Type   string  `json:"type"` // line, arc, circle, rect, polygon
	Start  Point   `json:"start"`
	Mid    Point   `json:"mid"`
	End    Point   `json:"end"`
	Center Point   `json:"center"`
	Points []Point `json:"points"`
	Width  float64 `json:"width"`
	Layer  string  `json:"layer"`
}

// Track is a straight copper segment.
type Track struct {
	UUID  string  `json:"uuid"`
	Start Point   `json:"start"`
	End   Point   `json:"end"`
	Width float64 `json:"width"`
	Layer string  `json:"layer"`
	Net   int     `json:"net"`
}

// ArcTrack is a copper arc defined by a start/mid/end point triple.
type ArcTrack struct {
	UUID  string  `json:"uuid"`
	Start Point   `json:"start"`
	Mid   Point   `json:"mid"`
	End   Point   `json:"end"`
	Width float64 `json:"width"`
	Layer string  `json:"layer"`
	Net   int     `json:"net"`
}

// Via is a plated hole connecting copper layers.
type Via struct {
	UUID   string   `json:"uuid"`
	At     Point    `json:"at"`
	Size   float64  `json:"size"`
	Drill  float64  `json:"drill"`
	Layers []string `json:"layers"`
	Net    int      `json:"net"`
}

// Zone is a copper pour. Fills hold the authoritative filled polygons when
// the zone has been poured; Outline is used to synthesize a keepout/hatch
// rendering when no fill exists.
type Zone struct {
	UUID       string     `json:"uuid"`
	Name       string     `json:"name"`
	Net        int        `json:"net"`
	NetName    string     `json:"net_name"`
	Layers     []string   `json:"layers"`
	Outline    []Point    `json:"outline"`
	Fills      []ZoneFill `json:"filled_polygons"`
	HatchPitch float64    `json:"hatch_pitch"`
}

// ZoneFill is one pre-filled polygon of a zone on a specific layer.
type ZoneFill struct {
	Layer  string  `json:"layer"`
	Points []Point `json:"points"`
}

// Net is an electrical connection group. Number 0 or an empty name means
// unconnected.
type Net struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// DecodeRenderModel reads a render model from JSON and applies the
// defaults for missing optional fields.
func DecodeRenderModel(r io.Reader) (*RenderModel, error) {
	var m RenderModel
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode render model: %w", err)
	}
	m.ApplyDefaults()
	return &m, nil
}

// ApplyDefaults fills the per-primitive defaults so downstream code never
// sees an empty layer or a zero stroke width.
func (m *RenderModel) ApplyDefaults() {
	for i := range m.Tracks {
		if m.Tracks[i].Layer == "" {
			m.Tracks[i].Layer = DefaultCopperLayer
		}
		if m.Tracks[i].Width <= 0 {
			m.Tracks[i].Width = DefaultStrokeWidth
		}
	}
	for i := range m.Arcs {
		if m.Arcs[i].Layer == "" {
			m.Arcs[i].Layer = DefaultCopperLayer
		}
		if m.Arcs[i].Width <= 0 {
			m.Arcs[i].Width = DefaultStrokeWidth
		}
	}
	for i := range m.Zones {
		if m.Zones[i].HatchPitch <= 0 {
			m.Zones[i].HatchPitch = DefaultHatchPitch
		}
	}
	for _, fp := range m.Footprints {
		if fp.Layer == "" {
			fp.Layer = DefaultCopperLayer
		}
		for i := range fp.Drawings {
			if fp.Drawings[i].Layer == "" {
				fp.Drawings[i].Layer = DefaultSilkLayer
			}
			if fp.Drawings[i].Width <= 0 {
				fp.Drawings[i].Width = DefaultStrokeWidth
			}
		}
	}
}

// NetByNumber returns the net with the given number, or nil.
func (m *RenderModel) NetByNumber(num int) *Net {
	for i := range m.Nets {
		if m.Nets[i].Number == num {
			return &m.Nets[i]
		}
	}
	return nil
}

// IsUnconnected reports whether a net number denotes "no net": number 0,
// an unknown net, or a net with an empty name.
func (m *RenderModel) IsUnconnected(num int) bool {
	if num == 0 {
		return true
	}
	n := m.NetByNumber(num)
	return n == nil || n.Name == ""
}

// FootprintByUUID returns the footprint with the given uuid, or nil.
func (m *RenderModel) FootprintByUUID(uuid string) *Footprint {
	for _, fp := range m.Footprints {
		if fp.UUID == uuid {
			return fp
		}
	}
	return nil
}
