package render

import (
	"reflect"
	"testing"

	"github.com/atopile/atopile-sub007/pkg/board"
)

func TestParseLayerToken(t *testing.T) {
	tests := []struct {
		raw  string
		want LayerToken
	}{
		{"F.Cu", LayerToken{Kind: TokenConcrete, Name: "F.Cu"}},
		{"Edge.Cuts", LayerToken{Kind: TokenConcrete, Name: "Edge.Cuts"}},
		{"*.Cu", LayerToken{Kind: TokenSuffixWildcard, Suffix: "Cu"}},
		{"*.Mask", LayerToken{Kind: TokenSuffixWildcard, Suffix: "Mask"}},
		{"F&B.Cu", LayerToken{Kind: TokenUnionWildcard, Prefixes: []string{"F", "B"}, Suffix: "Cu"}},
		{"F&B&In1.Cu", LayerToken{Kind: TokenUnionWildcard, Prefixes: []string{"F", "B", "In1"}, Suffix: "Cu"}},
		// Garbage stays concrete so it just misses lookups.
		{"notalayer", LayerToken{Kind: TokenConcrete, Name: "notalayer"}},
		{"", LayerToken{Kind: TokenConcrete, Name: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseLayerToken(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseLayerToken(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLayerTokenExpand(t *testing.T) {
	concrete := []string{"F.Cu", "B.Cu", "In1.Cu", "F.SilkS", "Edge.Cuts"}

	got := ParseLayerToken("*.Cu").Expand(concrete)
	want := []string{"F.Cu", "B.Cu", "In1.Cu"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("*.Cu expands to %v, want %v", got, want)
	}

	got = ParseLayerToken("F&B.Cu").Expand(concrete)
	want = []string{"F.Cu", "B.Cu"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("F&B.Cu expands to %v, want %v", got, want)
	}
}

func visModel() *board.RenderModel {
	return &board.RenderModel{
		Footprints: []*board.Footprint{{
			Layer: "F.Cu",
			Pads: []board.Pad{
				{Layers: []string{"*.Cu", "F.Mask"}},
			},
			Drawings: []board.Drawing{{Type: "line", Layer: "F.SilkS"}},
		}},
		Tracks: []board.Track{
			{Layer: "F.Cu"},
			{Layer: "B.Cu"},
		},
	}
}

func TestVisibilityConcreteInventory(t *testing.T) {
	v := NewVisibility(visModel(), nil)

	// The wildcard token must not leak into the inventory.
	for _, name := range v.concrete {
		if name == "*.Cu" {
			t.Fatal("wildcard token collected as a concrete layer")
		}
	}
	want := map[string]bool{"F.Cu": true, "B.Cu": true, "F.SilkS": true, "F.Mask": true}
	for name := range want {
		found := false
		for _, c := range v.concrete {
			if c == name {
				found = true
			}
		}
		if !found {
			t.Errorf("concrete inventory missing %q", name)
		}
	}
}

func TestTokenVisible(t *testing.T) {
	tests := []struct {
		name   string
		hidden []string
		token  string
		want   bool
	}{
		{"concrete visible", nil, "F.Cu", true},
		{"concrete hidden", []string{"F.Cu"}, "F.Cu", false},
		{"suffix matches some visible", []string{"F.Cu"}, "*.Cu", true},
		{"suffix all hidden", []string{"F.Cu", "B.Cu"}, "*.Cu", false},
		{"suffix absent from model", nil, "*.Paste", false},
		{"union one visible", []string{"F.Cu"}, "F&B.Cu", true},
		{"union all hidden", []string{"F.Cu", "B.Cu"}, "F&B.Cu", false},
		// Union does not require presence in the model.
		{"union absent layers", nil, "F&B.Adhes", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVisibility(visModel(), tt.hidden)
			if got := v.TokenVisible(tt.token); got != tt.want {
				t.Errorf("TokenVisible(%q) with hidden %v = %v, want %v", tt.token, tt.hidden, got, tt.want)
			}
		})
	}
}

func TestAnyTokenVisible(t *testing.T) {
	v := NewVisibility(visModel(), []string{"F.Cu", "B.Cu"})

	if v.AnyTokenVisible([]string{"*.Cu"}) {
		t.Error("all copper hidden but AnyTokenVisible returned true")
	}
	if !v.AnyTokenVisible([]string{"*.Cu", "F.Mask"}) {
		t.Error("mask still visible but AnyTokenVisible returned false")
	}
	if !v.AnyTokenVisible(nil) {
		t.Error("empty token list should count as visible")
	}
}

// A fresh Visibility must see layers that appeared since the last paint;
// wildcard expansion is never cached across models.
func TestVisibilityTracksModelChanges(t *testing.T) {
	m := visModel()
	v := NewVisibility(m, []string{"F.Cu", "B.Cu"})
	if v.TokenVisible("*.Cu") {
		t.Fatal("expected all copper hidden")
	}

	m.Tracks = append(m.Tracks, board.Track{Layer: "In1.Cu"})
	v = NewVisibility(m, []string{"F.Cu", "B.Cu"})
	if !v.TokenVisible("*.Cu") {
		t.Error("new inner layer not picked up by wildcard")
	}
}
