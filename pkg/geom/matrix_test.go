package geom

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func vecApproxEqual(a, b Vec2) bool {
	return approxEqual(a.X, b.X) && approxEqual(a.Y, b.Y)
}

func TestVec2Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"unit x", V(5, 0), V(1, 0)},
		{"diagonal", V(3, 4), V(0.6, 0.8)},
		{"negative", V(0, -2), V(0, -1)},
		{"zero vector stays zero", V(0, 0), V(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !vecApproxEqual(got, tt.want) {
				t.Errorf("Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec2Normal(t *testing.T) {
	got := V(1, 0).Normal()
	if !vecApproxEqual(got, V(0, 1)) {
		t.Errorf("Normal() = %v, want (0,1)", got)
	}
}

func TestMatrix3Transform(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix3
		in   Vec2
		want Vec2
	}{
		{"identity", Identity(), V(3, 7), V(3, 7)},
		{"translation", Translation(10, -5), V(1, 1), V(11, -4)},
		{"scaling", Scaling(2, 3), V(4, 5), V(8, 15)},
		{"quarter turn", Rotation(math.Pi / 2), V(1, 0), V(0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Transform(tt.in)
			if !vecApproxEqual(got, tt.want) {
				t.Errorf("Transform(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// MulSelf must apply the receiver first and the argument second. A scale
// followed by a translation is distinguishable from the reverse order, so
// it pins the convention down.
func TestMatrix3MulSelfOrder(t *testing.T) {
	m := Scaling(2, 2)
	m.MulSelf(Translation(10, 0))

	got := m.Transform(V(1, 1))
	want := V(12, 2) // scale first, then translate
	if !vecApproxEqual(got, want) {
		t.Errorf("Transform = %v, want %v", got, want)
	}
}

func TestMatrix3InverseRoundTrip(t *testing.T) {
	matrices := []struct {
		name string
		m    Matrix3
	}{
		{"translation", Translation(3, -8)},
		{"scaling", Scaling(2.5, 0.5)},
		{"rotation", Rotation(1.234)},
		{"composite", func() Matrix3 {
			m := Translation(-4, 9)
			m.MulSelf(Scaling(3, 3))
			m.MulSelf(Rotation(0.7))
			return m
		}()},
	}
	points := []Vec2{V(0, 0), V(1, 0), V(-5, 12), V(123.4, -0.001)}

	for _, tt := range matrices {
		t.Run(tt.name, func(t *testing.T) {
			inv := tt.m.Inverse()
			for _, p := range points {
				got := inv.Transform(tt.m.Transform(p))
				if !vecApproxEqual(got, p) {
					t.Errorf("inverse round trip of %v = %v", p, got)
				}
			}
		})
	}
}

func TestOrthographic(t *testing.T) {
	m := Orthographic(800, 600)

	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"top left", V(0, 0), V(-1, 1)},
		{"bottom right", V(800, 600), V(1, -1)},
		{"center", V(400, 300), V(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Transform(tt.in)
			if !vecApproxEqual(got, tt.want) {
				t.Errorf("Transform(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
