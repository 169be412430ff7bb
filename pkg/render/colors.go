package render

import "image/color"

// Theme groups every color the painter uses. Layer colors are looked up
// by concrete layer name; everything else is a role.
type Theme struct {
	Name       string
	Layers     map[string]color.NRGBA
	Background color.NRGBA

	PadTH    color.NRGBA
	PadSMD   color.NRGBA
	Drill    color.NRGBA
	Via      color.NRGBA
	ViaDrill color.NRGBA

	Selection color.NRGBA
	Highlight color.NRGBA
	Grid      color.NRGBA

	// NetPalette colors copper items by net number when net coloring is
	// enabled.
	NetPalette []color.NRGBA
}

// LayerColor returns the theme color for a concrete layer, with a neutral
// gray fallback so unknown layers still show up.
func (t *Theme) LayerColor(layer string) color.NRGBA {
	if c, ok := t.Layers[layer]; ok {
		return c
	}
	return color.NRGBA{R: 132, G: 132, B: 132, A: 255}
}

// NetColor returns a stable palette color for a net number.
func (t *Theme) NetColor(net int) color.NRGBA {
	if len(t.NetPalette) == 0 || net <= 0 {
		return color.NRGBA{R: 132, G: 132, B: 132, A: 255}
	}
	return t.NetPalette[net%len(t.NetPalette)]
}

var classicLayers = map[string]color.NRGBA{
	"F.Cu":   {R: 200, G: 52, B: 52, A: 255},
	"B.Cu":   {R: 77, G: 127, B: 196, A: 255},
	"In1.Cu": {R: 127, G: 200, B: 127, A: 255},
	"In2.Cu": {R: 206, G: 125, B: 44, A: 255},

	"F.SilkS": {R: 242, G: 237, B: 161, A: 255},
	"B.SilkS": {R: 232, G: 178, B: 167, A: 255},

	"F.Mask": {R: 216, G: 100, B: 255, A: 102},
	"B.Mask": {R: 2, G: 255, B: 238, A: 102},

	"F.Paste": {R: 180, G: 160, B: 154, A: 230},
	"B.Paste": {R: 0, G: 194, B: 194, A: 230},

	"F.Fab": {R: 175, G: 175, B: 175, A: 255},
	"B.Fab": {R: 88, G: 93, B: 132, A: 255},

	"F.CrtYd": {R: 255, G: 38, B: 226, A: 255},
	"B.CrtYd": {R: 38, G: 233, B: 255, A: 255},

	"Dwgs.User": {R: 194, G: 194, B: 194, A: 255},
	"Cmts.User": {R: 89, G: 148, B: 220, A: 255},
	"Edge.Cuts": {R: 208, G: 210, B: 205, A: 255},
	"Margin":    {R: 255, G: 38, B: 226, A: 255},
}

var nordLayers = map[string]color.NRGBA{
	"F.Cu":   {R: 191, G: 97, B: 106, A: 255},
	"B.Cu":   {R: 129, G: 161, B: 193, A: 255},
	"In1.Cu": {R: 163, G: 190, B: 140, A: 255},
	"In2.Cu": {R: 208, G: 135, B: 112, A: 255},

	"F.SilkS": {R: 235, G: 203, B: 139, A: 255},
	"B.SilkS": {R: 180, G: 142, B: 173, A: 255},

	"F.Mask": {R: 180, G: 142, B: 173, A: 102},
	"B.Mask": {R: 136, G: 192, B: 208, A: 102},

	"F.Paste": {R: 216, G: 222, B: 233, A: 230},
	"B.Paste": {R: 143, G: 188, B: 187, A: 230},

	"F.Fab": {R: 216, G: 222, B: 233, A: 255},
	"B.Fab": {R: 76, G: 86, B: 106, A: 255},

	"F.CrtYd": {R: 180, G: 142, B: 173, A: 255},
	"B.CrtYd": {R: 136, G: 192, B: 208, A: 255},

	"Dwgs.User": {R: 216, G: 222, B: 233, A: 255},
	"Cmts.User": {R: 129, G: 161, B: 193, A: 255},
	"Edge.Cuts": {R: 229, G: 233, B: 240, A: 255},
	"Margin":    {R: 180, G: 142, B: 173, A: 255},
}

var netPalette = []color.NRGBA{
	{R: 200, G: 52, B: 52, A: 255},
	{R: 77, G: 127, B: 196, A: 255},
	{R: 127, G: 200, B: 127, A: 255},
	{R: 206, G: 125, B: 44, A: 255},
	{R: 216, G: 100, B: 255, A: 255},
	{R: 2, G: 255, B: 238, A: 255},
	{R: 242, G: 237, B: 161, A: 255},
	{R: 89, G: 148, B: 220, A: 255},
}

// ClassicTheme is the default dark theme.
func ClassicTheme() *Theme {
	return &Theme{
		Name:       "classic",
		Layers:     classicLayers,
		Background: color.NRGBA{R: 0, G: 16, B: 35, A: 255},
		PadTH:      color.NRGBA{R: 227, G: 183, B: 46, A: 255},
		PadSMD:     color.NRGBA{R: 227, G: 183, B: 46, A: 255},
		Drill:      color.NRGBA{R: 26, G: 26, B: 26, A: 255},
		Via:        color.NRGBA{R: 236, G: 236, B: 236, A: 255},
		ViaDrill:   color.NRGBA{R: 26, G: 26, B: 26, A: 255},
		Selection:  color.NRGBA{R: 255, G: 255, B: 255, A: 90},
		Highlight:  color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Grid:       color.NRGBA{R: 255, G: 255, B: 255, A: 40},
		NetPalette: netPalette,
	}
}

// NordTheme is an alternate muted theme.
func NordTheme() *Theme {
	return &Theme{
		Name:       "nord",
		Layers:     nordLayers,
		Background: color.NRGBA{R: 46, G: 52, B: 64, A: 255},
		PadTH:      color.NRGBA{R: 235, G: 203, B: 139, A: 255},
		PadSMD:     color.NRGBA{R: 235, G: 203, B: 139, A: 255},
		Drill:      color.NRGBA{R: 59, G: 66, B: 82, A: 255},
		Via:        color.NRGBA{R: 229, G: 233, B: 240, A: 255},
		ViaDrill:   color.NRGBA{R: 59, G: 66, B: 82, A: 255},
		Selection:  color.NRGBA{R: 236, G: 239, B: 244, A: 90},
		Highlight:  color.NRGBA{R: 236, G: 239, B: 244, A: 255},
		Grid:       color.NRGBA{R: 236, G: 239, B: 244, A: 40},
		NetPalette: netPalette,
	}
}

// ThemeByName resolves a configured theme name, defaulting to classic.
func ThemeByName(name string) *Theme {
	switch name {
	case "nord":
		return NordTheme()
	default:
		return ClassicTheme()
	}
}

// dim returns the color with its alpha scaled down, used to fade
// non-highlighted nets.
func dim(c color.NRGBA, alpha uint8) color.NRGBA {
	c.A = uint8(uint16(c.A) * uint16(alpha) / 255)
	return c
}
