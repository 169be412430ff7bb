package viewer

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServerURL == "" || cfg.Theme == "" || cfg.ZoomSpeed <= 0 {
		t.Errorf("incomplete defaults: %+v", cfg)
	}
}

func TestLoadConfigMissingFileIsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	data := `
server_url: http://example:9000
theme: nord
zoom_speed: 0.02
hidden_layers: [F.Mask, B.Mask]
mark_unconnected: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServerURL != "http://example:9000" || cfg.Theme != "nord" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.ZoomSpeed != 0.02 || !cfg.MarkUnconnected {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if len(cfg.HiddenLayers) != 2 {
		t.Errorf("hidden layers = %v", cfg.HiddenLayers)
	}
	// Unset keys keep their defaults.
	if cfg.GridSpacing != DefaultConfig().GridSpacing {
		t.Errorf("grid spacing = %v, want default", cfg.GridSpacing)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	if err := os.WriteFile(path, []byte("server_url: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed YAML should error")
	}
}
