package render

import (
	"math"
	"testing"
)

func TestNormalizeWheelDelta(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
		mode  WheelMode
		want  float64
	}{
		{"pixel passthrough", 5, WheelPixel, 5},
		{"line scaled", 3, WheelLine, 24},
		{"page scaled and clamped", 2, WheelPage, 24},
		{"clamp positive", 500, WheelPixel, 24},
		{"clamp negative", -500, WheelPixel, -24},
		{"negative line", -1, WheelLine, -8},
		{"zero", 0, WheelLine, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeWheelDelta(tt.delta, tt.mode); got != tt.want {
				t.Errorf("NormalizeWheelDelta(%v, %v) = %v, want %v", tt.delta, tt.mode, got, tt.want)
			}
		})
	}
}

func TestWheelZoomUniformSteps(t *testing.T) {
	// Equal deltas must multiply the zoom by equal factors regardless of
	// the starting zoom.
	d := NormalizeWheelDelta(-3, WheelLine)
	f1 := WheelZoom(1, d, DefaultZoomSpeed)
	f10 := WheelZoom(10, d, DefaultZoomSpeed) / 10
	if math.Abs(f1-f10) > 1e-12 {
		t.Errorf("zoom factor differs by start zoom: %v vs %v", f1, f10)
	}
	if f1 <= 1 {
		t.Errorf("scrolling up should zoom in, factor = %v", f1)
	}
}

func TestWheelZoomDirection(t *testing.T) {
	in := WheelZoom(10, -8, DefaultZoomSpeed)
	out := WheelZoom(10, 8, DefaultZoomSpeed)
	if in <= 10 {
		t.Errorf("negative delta should zoom in, got %v", in)
	}
	if out >= 10 {
		t.Errorf("positive delta should zoom out, got %v", out)
	}
	// Opposite deltas invert each other.
	if got := WheelZoom(in, 8, DefaultZoomSpeed); math.Abs(got-10) > 1e-9 {
		t.Errorf("in then out = %v, want 10", got)
	}
}
