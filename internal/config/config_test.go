package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Warp.Rows != 3 || cfg.Warp.Cols != 3 {
		t.Errorf("expected 3x3 default grid, got %dx%d", cfg.Warp.Rows, cfg.Warp.Cols)
	}
	if cfg.Warp.HitRadiusPx != 16 {
		t.Errorf("expected hit radius 16, got %v", cfg.Warp.HitRadiusPx)
	}

	if cfg.Source.Kind != "pattern" {
		t.Errorf("expected pattern source, got %q", cfg.Source.Kind)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "lumiwarp.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

warp:
  rows: 5
  cols: 7
  hit_radius_px: 24
  background: {r: 0.1, g: 0.1, b: 0.15}

presets:
  dir: /tmp/warp-presets

source:
  kind: image
  image_path: test.png

logging:
  level: "debug"
  log_file: "warp.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Warp.Rows != 5 || cfg.Warp.Cols != 7 {
		t.Errorf("expected 5x7 grid, got %dx%d", cfg.Warp.Rows, cfg.Warp.Cols)
	}
	if cfg.Warp.HitRadiusPx != 24 {
		t.Errorf("expected hit radius 24, got %v", cfg.Warp.HitRadiusPx)
	}
	if cfg.Warp.Background.B != 0.15 {
		t.Errorf("expected background blue 0.15, got %v", cfg.Warp.Background.B)
	}

	if cfg.Presets.Dir != "/tmp/warp-presets" {
		t.Errorf("expected preset dir /tmp/warp-presets, got %q", cfg.Presets.Dir)
	}
	if cfg.Source.Kind != "image" || cfg.Source.ImagePath != "test.png" {
		t.Errorf("expected image source test.png, got %q %q", cfg.Source.Kind, cfg.Source.ImagePath)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "warp.log" {
		t.Errorf("expected log file 'warp.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/lumiwarp.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero rows", func(c *Config) { c.Warp.Rows = 0 }, false},
		{"negative cols", func(c *Config) { c.Warp.Cols = -2 }, false},
		{"zero hit radius", func(c *Config) { c.Warp.HitRadiusPx = 0 }, false},
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, false},
		{"unknown source", func(c *Config) { c.Source.Kind = "camera" }, false},
		{"image without path", func(c *Config) { c.Source.Kind = "image" }, false},
		{"image with path", func(c *Config) {
			c.Source.Kind = "image"
			c.Source.ImagePath = "x.png"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantOK && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.wantOK && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestPresetDir(t *testing.T) {
	cfg := Default()
	if cfg.PresetDir() == "" {
		t.Error("default PresetDir is empty")
	}

	cfg.Presets.Dir = "/data/presets"
	if cfg.PresetDir() != "/data/presets" {
		t.Errorf("PresetDir() = %q, want /data/presets", cfg.PresetDir())
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "grid flags",
			setup: func() {
				*flagRows = 8
				*flagCols = 6
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Warp.Rows != 8 || cfg.Warp.Cols != 6 {
					t.Errorf("expected 8x6 grid, got %dx%d", cfg.Warp.Rows, cfg.Warp.Cols)
				}
			},
			teardown: func() {
				*flagRows = 0
				*flagCols = 0
			},
		},
		{
			name:  "image flag switches source",
			setup: func() { *flagImage = "show.png" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Source.Kind != "image" || cfg.Source.ImagePath != "show.png" {
					t.Errorf("expected image source show.png, got %q %q", cfg.Source.Kind, cfg.Source.ImagePath)
				}
			},
			teardown: func() { *flagImage = "" },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "lumiwarp.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag (1920), not file (1600); height from file.
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Warp.Rows = 9
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Warp.Rows != 9 {
		t.Errorf("round-tripped rows = %d, want 9", loaded.Warp.Rows)
	}
}
