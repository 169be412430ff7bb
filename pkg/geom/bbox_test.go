package geom

import "testing"

func TestNewBBoxNormalization(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h float64
		want       BBox
	}{
		{"already normal", 1, 2, 3, 4, BBox{1, 2, 3, 4}},
		{"negative width", 10, 0, -4, 2, BBox{6, 0, 4, 2}},
		{"negative height", 0, 10, 2, -4, BBox{0, 6, 2, 4}},
		{"both negative", 5, 5, -5, -5, BBox{0, 0, 5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBBox(tt.x, tt.y, tt.w, tt.h)
			if got != tt.want {
				t.Errorf("NewBBox = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// The flipped corner of a negative-extent box must come out as x2/y2.
func TestNewBBoxPreservesCorner(t *testing.T) {
	b := NewBBox(10, 20, -4, -6)
	if b.X2() != 10 || b.Y2() != 20 {
		t.Errorf("x2,y2 = %v,%v, want 10,20", b.X2(), b.Y2())
	}
}

func TestBBoxCombine(t *testing.T) {
	tests := []struct {
		name string
		a, b BBox
		want BBox
	}{
		{"disjoint", BBox{0, 0, 1, 1}, BBox{2, 2, 1, 1}, BBox{0, 0, 3, 3}},
		{"nested", BBox{0, 0, 10, 10}, BBox{2, 2, 1, 1}, BBox{0, 0, 10, 10}},
		{"degenerate left ignored", BBox{}, BBox{1, 1, 2, 2}, BBox{1, 1, 2, 2}},
		{"degenerate right ignored", BBox{1, 1, 2, 2}, BBox{5, 5, 0, 0}, BBox{1, 1, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Combine(tt.b)
			if got != tt.want {
				t.Errorf("Combine = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBBoxContainsPoint(t *testing.T) {
	b := BBox{0, 0, 10, 10}

	tests := []struct {
		name string
		p    Vec2
		want bool
	}{
		{"inside", V(5, 5), true},
		{"on edge", V(0, 5), true},
		{"on corner", V(10, 10), true},
		{"outside", V(10.001, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.ContainsPoint(tt.p); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBBoxIntersects(t *testing.T) {
	a := BBox{0, 0, 10, 10}

	tests := []struct {
		name string
		b    BBox
		want bool
	}{
		{"overlap", BBox{5, 5, 10, 10}, true},
		{"contained", BBox{2, 2, 2, 2}, true},
		{"disjoint", BBox{20, 20, 5, 5}, false},
		{"edge touch is open", BBox{10, 0, 5, 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects(%+v) = %v, want %v", tt.b, got, tt.want)
			}
		})
	}
}

func TestBBoxContainsBBox(t *testing.T) {
	a := BBox{0, 0, 10, 10}

	tests := []struct {
		name string
		b    BBox
		want bool
	}{
		{"inside", BBox{2, 2, 3, 3}, true},
		{"identical", BBox{0, 0, 10, 10}, true},
		{"straddles edge", BBox{8, 8, 5, 5}, false},
		{"disjoint", BBox{20, 20, 1, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.ContainsBBox(tt.b); got != tt.want {
				t.Errorf("ContainsBBox(%+v) = %v, want %v", tt.b, got, tt.want)
			}
		})
	}
}

func TestBBoxGrow(t *testing.T) {
	b := BBox{5, 5, 10, 10}.Grow(2)
	want := BBox{3, 3, 14, 14}
	if b != want {
		t.Errorf("Grow = %+v, want %+v", b, want)
	}
}

func TestBBoxFromPoints(t *testing.T) {
	b := BBoxFromPoints(V(3, 7), V(-1, 2), V(4, 0))
	want := BBox{-1, 0, 5, 7}
	if b != want {
		t.Errorf("BBoxFromPoints = %+v, want %+v", b, want)
	}
}
