package config

import "flag"

var (
	flagConfig         = flag.String("config", "", "Path to config file")
	flagDebug          = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed       = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen     = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth          = flag.Int("width", 0, "Window width")
	flagHeight         = flag.Int("height", 0, "Window height")
	flagFOV            = flag.Float64("fov", 0, "Field of view in degrees")
	flagRenderDistance = flag.Float64("render-distance", 0, "Star generation depth in world units")
	flagAddr           = flag.String("addr", "", "SSH listen address")
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
		cfg.Starfield.VerifyChunkOrder = true
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
	if *flagFOV > 0 {
		cfg.Starfield.FOVDegrees = float32(*flagFOV)
	}
	if *flagRenderDistance > 0 {
		cfg.Starfield.RenderDistance = float32(*flagRenderDistance)
	}
	if *flagAddr != "" {
		cfg.SSH.Addr = *flagAddr
	}
}
