package viewer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the viewer configuration, loaded from an optional YAML file
// and overridable from the command line.
type Config struct {
	// ServerURL is the layout server base URL.
	ServerURL string `yaml:"server_url"`
	// Theme selects the color theme by name.
	Theme string `yaml:"theme"`
	// ZoomSpeed scales wheel zoom sensitivity.
	ZoomSpeed float64 `yaml:"zoom_speed"`
	// GridSpacing is the dot grid pitch in board units; 0 disables it.
	GridSpacing float64 `yaml:"grid_spacing"`
	// HiddenLayers lists concrete layers hidden at startup.
	HiddenLayers []string `yaml:"hidden_layers"`
	// MarkUnconnected draws pads on unconnected nets in outline mode.
	MarkUnconnected bool `yaml:"mark_unconnected"`
	// ColorByNet colors copper by net palette instead of by layer.
	ColorByNet bool `yaml:"color_by_net"`
	// LogLevel and LogFile configure logging.
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		ServerURL:   "http://127.0.0.1:8756",
		Theme:       "classic",
		ZoomSpeed:   0.01,
		GridSpacing: 1.0,
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file
// is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
