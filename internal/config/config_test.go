package config

import (
	"errors"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drawomatic.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(Default(), cfg); d != "" {
		t.Errorf("Load(\"\") (-want +got):\n%s", d)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
width = 128
height = 96
export_scale = 2
stickers = ["*", "+"]
background = "#102030"
log_level = "debug"

[[thickness_presets]]
name = "hair"
width = 1

[[thickness_presets]]
name = "marker"
width = 8
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 128 || cfg.Height != 96 || cfg.ExportScale != 2 {
		t.Errorf("size/scale = %dx%d/%d", cfg.Width, cfg.Height, cfg.ExportScale)
	}
	want := []Preset{{Name: "hair", Width: 1}, {Name: "marker", Width: 8}}
	if d := cmp.Diff(want, cfg.ThicknessPresets); d != "" {
		t.Errorf("presets (-want +got):\n%s", d)
	}
	if cfg.DefaultThickness != 1 {
		t.Errorf("default thickness = %v, want first preset", cfg.DefaultThickness)
	}
	if cfg.StickerSize != 24 {
		t.Errorf("unset sticker_size = %v, want default", cfg.StickerSize)
	}
	if got := cfg.BackgroundColor(); got != (color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}) {
		t.Errorf("background = %v", got)
	}
	if l, _ := cfg.Level(); l != slog.LevelDebug {
		t.Errorf("level = %v", l)
	}
	tc := cfg.ToolsConfig(nil)
	if tc.Thickness != 1 || len(tc.Stickers) != 2 {
		t.Errorf("tools config = %+v", tc)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name, body string
		want       error
		contains   string
	}{
		{name: "size", body: "width = 0", want: ErrInvalidSize},
		{name: "scale", body: "export_scale = -2", want: ErrInvalidScale},
		{name: "unknown key", body: "colour = 1", contains: "unknown keys colour"},
		{name: "syntax", body: "width = ", contains: "decode"},
		{name: "background", body: `background = "teal"`, contains: "background"},
		{name: "level", body: `log_level = "loud"`, contains: "log_level"},
		{name: "lightness", body: "lightness = 2", contains: "lightness"},
		{name: "preset", body: "[[thickness_presets]]\nname = \"bad\"\nwidth = 0", contains: "bad"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("err = %v, want it to mention %q", err, tt.contains)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
