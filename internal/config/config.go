// Package config loads the sketch pad settings from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
	colorful "github.com/lucasb-eyer/go-colorful"

	"drawomatic/internal/state"
)

var (
	ErrInvalidSize  = errors.New("config: canvas size must be positive")
	ErrInvalidScale = errors.New("config: export scale must be positive")
)

// Preset is a named thickness button.
type Preset struct {
	Name  string  `toml:"name"`
	Width float64 `toml:"width"`
}

// Config holds every tunable of a session.
type Config struct {
	Width            int      `toml:"width"`
	Height           int      `toml:"height"`
	ExportScale      int      `toml:"export_scale"`
	ThicknessPresets []Preset `toml:"thickness_presets"`
	DefaultThickness float64  `toml:"default_thickness"`
	DefaultHue       float64  `toml:"default_hue"`
	Saturation       float64  `toml:"saturation"`
	Lightness        float64  `toml:"lightness"`
	Stickers         []string `toml:"stickers"`
	StickerSize      float64  `toml:"sticker_size"`
	StickerFont      string   `toml:"sticker_font"`
	Background       string   `toml:"background"`
	LogLevel         string   `toml:"log_level"`
}

// Default returns the built-in settings: a 256x256 board exported at 4x.
func Default() Config {
	return Config{
		Width:       256,
		Height:      256,
		ExportScale: 4,
		ThicknessPresets: []Preset{
			{Name: "thin", Width: 2},
			{Name: "thick", Width: 5},
		},
		DefaultThickness: 2,
		DefaultHue:       0,
		Saturation:       state.DefaultPalette.Saturation,
		Lightness:        state.DefaultPalette.Lightness,
		Stickers:         []string{"🎃", "👻", "🦇"},
		StickerSize:      24,
		Background:       "#ffffff",
		LogLevel:         "info",
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config: %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if !md.IsDefined("default_thickness") && len(cfg.ThicknessPresets) > 0 {
		cfg.DefaultThickness = cfg.ThicknessPresets[0].Width
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return ErrInvalidSize
	}
	if c.ExportScale <= 0 {
		return ErrInvalidScale
	}
	if len(c.ThicknessPresets) == 0 {
		return errors.New("config: at least one thickness preset is required")
	}
	for _, p := range c.ThicknessPresets {
		if p.Width <= 0 {
			return fmt.Errorf("config: preset %q: width must be positive", p.Name)
		}
	}
	if c.DefaultThickness <= 0 {
		return errors.New("config: default_thickness must be positive")
	}
	if c.Saturation < 0 || c.Saturation > 1 || c.Lightness < 0 || c.Lightness > 1 {
		return errors.New("config: saturation and lightness must be within [0,1]")
	}
	if c.StickerSize <= 0 {
		return errors.New("config: sticker_size must be positive")
	}
	if _, err := colorful.Hex(c.Background); err != nil {
		return fmt.Errorf("config: background: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Palette returns the stroke palette.
func (c Config) Palette() state.Palette {
	return state.Palette{Saturation: c.Saturation, Lightness: c.Lightness}
}

// BackgroundColor returns the parsed background, white if unparsable.
func (c Config) BackgroundColor() color.Color {
	bg, err := colorful.Hex(c.Background)
	if err != nil {
		return color.White
	}
	r, g, b := bg.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: log_level: %w", err)
	}
	return l, nil
}

// ToolsConfig seeds the session tool state.
func (c Config) ToolsConfig(l *slog.Logger) state.ToolsConfig {
	return state.ToolsConfig{
		Thickness:   c.DefaultThickness,
		Hue:         c.DefaultHue,
		StickerSize: c.StickerSize,
		Stickers:    c.Stickers,
		Logger:      l,
	}
}
