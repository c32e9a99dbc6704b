// Package config handles engine configuration loading and management.
package config

import "fmt"

// Config holds all engine settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Warp     WarpConfig     `yaml:"warp"`
	Presets  PresetsConfig  `yaml:"presets"`
	Source   SourceConfig   `yaml:"source"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// WarpConfig holds warp-grid settings.
type WarpConfig struct {
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	HitRadiusPx float32 `yaml:"hit_radius_px"` // control-point grab distance
	Background  RGB     `yaml:"background"`
}

// RGB is a clear color with components in [0,1].
type RGB struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
}

// PresetsConfig holds preset persistence settings. An empty Dir means
// the default presets directory under the user config dir.
type PresetsConfig struct {
	Dir string `yaml:"dir"`
}

// SourceConfig selects the demo frame source.
type SourceConfig struct {
	Kind      string `yaml:"kind"` // "pattern" or "image"
	ImagePath string `yaml:"image_path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Warp: WarpConfig{
			Rows:        3,
			Cols:        3,
			HitRadiusPx: 16,
			Background:  RGB{R: 0, G: 0, B: 0},
		},
		Presets: PresetsConfig{
			Dir: "",
		},
		Source: SourceConfig{
			Kind: "pattern",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate rejects settings the engine cannot start with.
func (c *Config) Validate() error {
	if c.Graphics.Width < 1 || c.Graphics.Height < 1 {
		return fmt.Errorf("graphics: invalid window size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Warp.Rows < 1 || c.Warp.Cols < 1 {
		return fmt.Errorf("warp: grid size must be at least 1x1, got %dx%d", c.Warp.Rows, c.Warp.Cols)
	}
	if c.Warp.HitRadiusPx <= 0 {
		return fmt.Errorf("warp: hit_radius_px must be positive, got %v", c.Warp.HitRadiusPx)
	}
	switch c.Source.Kind {
	case "pattern":
	case "image":
		if c.Source.ImagePath == "" {
			return fmt.Errorf("source: image kind needs image_path")
		}
	default:
		return fmt.Errorf("source: unknown kind %q", c.Source.Kind)
	}
	return nil
}
