package ludo

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

// RunConfig configures the window and frame loop started by Game.Run.
type RunConfig struct {
	// Title is the window title.
	Title string `toml:"title"`
	// Width and Height are the logical screen size in pixels. The window is
	// created at this size and the scene viewport uses it.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// ClearColor fills the screen before each draw.
	ClearColor Color `toml:"clear_color"`
	// LogLevel is one of debug, info, warn, error, fatal. Empty keeps the
	// current level.
	LogLevel string `toml:"log_level"`
	// Debug turns on per-frame stats and an FPS counter for every scene the
	// game installs.
	Debug bool `toml:"debug"`
	// ScreenshotDir receives the PNGs written by Game.Screenshot.
	ScreenshotDir string `toml:"screenshot_dir"`
}

// DefaultRunConfig returns a 640x480 configuration with a black clear color.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Title:         "ludo",
		Width:         640,
		Height:        480,
		ClearColor:    ColorBlack,
		LogLevel:      "info",
		ScreenshotDir: "screenshots",
	}
}

// Viewport returns the logical screen size.
func (c RunConfig) Viewport() Viewport {
	return Viewport{Width: c.Width, Height: c.Height}
}

// Validate reports the first problem with c, wrapping ErrInvalidConfig.
func (c RunConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.ScreenshotDir == "" {
		return fmt.Errorf("%w: empty screenshot dir", ErrInvalidConfig)
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
		}
	}
	return nil
}

// LoadRunConfig reads a TOML file on top of DefaultRunConfig and validates
// the result.
func LoadRunConfig(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("read config: %w", err)
	}
	return ParseRunConfig(data)
}

// ParseRunConfig decodes TOML data on top of DefaultRunConfig and validates
// the result.
func ParseRunConfig(data []byte) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}
