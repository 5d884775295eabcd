package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the daemon.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr                string `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel            string `json:"log_level" yaml:"log_level" toml:"log_level"`
	MaxFramesInFlight   int    `json:"max_frames_in_flight" yaml:"max_frames_in_flight" toml:"max_frames_in_flight"`
	MinFrameBuildTimeUS int    `json:"min_frame_build_time_us" yaml:"min_frame_build_time_us" toml:"min_frame_build_time_us"`
	VsyncHz             int    `json:"vsync_hz" yaml:"vsync_hz" toml:"vsync_hz"`
	ProducerFPS         int    `json:"producer_fps" yaml:"producer_fps" toml:"producer_fps"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
