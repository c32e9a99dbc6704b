package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagRows       = flag.Int("rows", 0, "Warp grid rows")
	flagCols       = flag.Int("cols", 0, "Warp grid columns")
	flagImage      = flag.String("image", "", "Warp a still image instead of the test pattern")
	flagPresets    = flag.String("presets", "", "Preset directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagRows > 0 {
		cfg.Warp.Rows = *flagRows
	}
	if *flagCols > 0 {
		cfg.Warp.Cols = *flagCols
	}
	if *flagImage != "" {
		cfg.Source.Kind = "image"
		cfg.Source.ImagePath = *flagImage
	}
	if *flagPresets != "" {
		cfg.Presets.Dir = *flagPresets
	}
}
