package render

import "math"

// WheelMode identifies the unit a wheel/scroll delta is reported in.
// Mouse wheels usually report lines, touchpads pixels, and some platforms
// whole pages.
type WheelMode int

const (
	WheelPixel WheelMode = iota
	WheelLine
	WheelPage
)

const (
	// wheelLineScale converts one scrolled line into pixels.
	wheelLineScale = 8.0
	// wheelPageScale converts one scrolled page into pixels, and doubles
	// as the clamp so a single event never zooms more than one "page".
	wheelPageScale = 24.0

	// DefaultZoomSpeed scales normalized wheel pixels into the zoom
	// exponent. Higher is twitchier.
	DefaultZoomSpeed = 0.01
)

// NormalizeWheelDelta converts a raw wheel delta into pixels and clamps
// its magnitude, so mice, touchpads and platform quirks all zoom at a
// comparable rate.
func NormalizeWheelDelta(delta float64, mode WheelMode) float64 {
	switch mode {
	case WheelLine:
		delta *= wheelLineScale
	case WheelPage:
		delta *= wheelPageScale
	}
	if delta > wheelPageScale {
		delta = wheelPageScale
	} else if delta < -wheelPageScale {
		delta = -wheelPageScale
	}
	return delta
}

// WheelZoom returns the new zoom after applying a normalized wheel delta.
// The exponential form makes every notch scale by the same factor, so
// zooming feels uniform across the whole range. Scrolling up (negative
// delta) zooms in.
func WheelZoom(zoom, delta, speed float64) float64 {
	if speed <= 0 {
		speed = DefaultZoomSpeed
	}
	return zoom * math.Exp(-delta*speed)
}
