// Package config handles starfield configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/starfield/internal/controls"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all starfield settings.
type Config struct {
	Starfield StarfieldConfig `yaml:"starfield"`
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Controls  controls.Scheme `yaml:"controls"`
	Terminal  TerminalConfig  `yaml:"terminal"`
	SSH       SSHConfig       `yaml:"ssh"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// StarfieldConfig holds the simulation settings.
type StarfieldConfig struct {
	FOVDegrees       float32       `yaml:"fov_degrees"`
	RenderDistance   float32       `yaml:"render_distance"`
	TickRate         float32       `yaml:"tick_rate"`         // Ticks per second of wall time
	RenormalizeEvery int           `yaml:"renormalize_every"` // 0 disables
	VerifyChunkOrder bool          `yaml:"verify_chunk_order"`
	SlowTick         time.Duration `yaml:"slow_tick"`
}

// GraphicsConfig holds display settings for the desktop host.
type GraphicsConfig struct {
	Width       int  `yaml:"width"`
	Height      int  `yaml:"height"`
	Fullscreen  bool `yaml:"fullscreen"`
	VSync       bool `yaml:"vsync"`
	ShowFPS     bool `yaml:"show_fps"`
	ShowCompass bool `yaml:"show_compass"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// TerminalConfig holds settings for the terminal host.
type TerminalConfig struct {
	FrameInterval time.Duration `yaml:"frame_interval"`
	HoldWindow    time.Duration `yaml:"hold_window"` // How long a key press counts as held
}

// SSHConfig holds settings for the SSH server.
type SSHConfig struct {
	Addr        string        `yaml:"addr"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxSessions int           `yaml:"max_sessions"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Starfield: StarfieldConfig{
			FOVDegrees:       75,
			RenderDistance:   1536,
			TickRate:         60,
			RenormalizeEvery: 0,
			VerifyChunkOrder: false,
			SlowTick:         16 * time.Millisecond,
		},
		Graphics: GraphicsConfig{
			Width:       1280,
			Height:      720,
			Fullscreen:  false,
			VSync:       true,
			ShowFPS:     true,
			ShowCompass: true,

			ScreenshotDir: "screenshots",
		},
		Controls: controls.DefaultScheme(),
		Terminal: TerminalConfig{
			FrameInterval: time.Second / 30,
			HoldWindow:    300 * time.Millisecond,
		},
		SSH: SSHConfig{
			Addr:        ":2323",
			HostKey:     "",
			IdleTimeout: 10 * time.Minute,
			MaxSessions: 16,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	s := c.Starfield
	switch {
	case s.FOVDegrees <= 0 || s.FOVDegrees >= 180:
		return fmt.Errorf("%w: fov_degrees %v outside (0, 180)", ErrInvalidConfig, s.FOVDegrees)
	case s.RenderDistance <= 0:
		return fmt.Errorf("%w: render_distance %v must be positive", ErrInvalidConfig, s.RenderDistance)
	case s.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate %v must be positive", ErrInvalidConfig, s.TickRate)
	case s.RenormalizeEvery < 0:
		return fmt.Errorf("%w: renormalize_every %d is negative", ErrInvalidConfig, s.RenormalizeEvery)
	case c.Graphics.Width <= 0 || c.Graphics.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Graphics.Width, c.Graphics.Height)
	case c.Terminal.FrameInterval <= 0:
		return fmt.Errorf("%w: frame_interval %v must be positive", ErrInvalidConfig, c.Terminal.FrameInterval)
	case c.SSH.MaxSessions < 0:
		return fmt.Errorf("%w: max_sessions %d is negative", ErrInvalidConfig, c.SSH.MaxSessions)
	}
	if err := c.Controls.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// FOV returns the field of view in radians.
func (s StarfieldConfig) FOV() float32 {
	return s.FOVDegrees * math32.Pi / 180
}

// Delta converts elapsed wall time to simulation ticks.
func (s StarfieldConfig) Delta(elapsed time.Duration) float32 {
	return float32(elapsed.Seconds()) * s.TickRate
}
