package state

import (
	"log/slog"
	"slices"
	"strings"
)

// Mode is the active drawing tool.
type Mode int

const (
	ModeFreehand Mode = iota
	ModeSticker
)

func (m Mode) String() string {
	switch m {
	case ModeFreehand:
		return "freehand"
	case ModeSticker:
		return "sticker"
	}
	return "unknown"
}

// Tools is the session-wide tool state. It never resets on its own;
// only the explicit selection methods change mode, thickness or glyph.
type Tools struct {
	mode      Mode
	thickness float64
	hue       float64
	glyph     string
	size      float64
	stickers  []string

	cursor  Point
	active  bool
	visible bool

	notify func(Trigger)
	log    *slog.Logger
}

// ToolsConfig seeds a Tools value.
type ToolsConfig struct {
	Thickness   float64
	Hue         float64
	StickerSize float64
	Stickers    []string
	Logger      *slog.Logger
}

// NewTools returns tool state in freehand mode. notify receives
// ToolMoved whenever the preview overlay may have changed.
func NewTools(cfg ToolsConfig, notify func(Trigger)) *Tools {
	l := cfg.Logger
	if l == nil {
		l = discardLogger()
	}
	t := &Tools{
		mode:      ModeFreehand,
		thickness: cfg.Thickness,
		hue:       normalizeHue(cfg.Hue),
		size:      cfg.StickerSize,
		notify:    notify,
		log:       l.With("component", "tools"),
	}
	for _, g := range cfg.Stickers {
		if g = strings.TrimSpace(g); g != "" && !slices.Contains(t.stickers, g) {
			t.stickers = append(t.stickers, g)
		}
	}
	return t
}

// Mode returns the active tool.
func (t *Tools) Mode() Mode { return t.mode }

// Thickness returns the width applied to new strokes.
func (t *Tools) Thickness() float64 { return t.thickness }

// Hue returns the hue applied to new strokes.
func (t *Tools) Hue() float64 { return t.hue }

// PendingGlyph returns the selected sticker glyph, or "" in freehand mode.
func (t *Tools) PendingGlyph() string { return t.glyph }

// StickerSize returns the size applied to new stickers.
func (t *Tools) StickerSize() float64 { return t.size }

// Stickers returns the available sticker glyphs in palette order.
func (t *Tools) Stickers() []string { return slices.Clone(t.stickers) }

// Cursor returns the last known pointer position.
func (t *Tools) Cursor() Point { return t.cursor }

// Active reports whether the pointer is pressed.
func (t *Tools) Active() bool { return t.active }

// Visible reports whether the pointer is over the surface.
func (t *Tools) Visible() bool { return t.visible }

// SelectThickness switches to freehand mode with width w and drops any
// pending sticker selection. It reports false and changes nothing when
// w <= 0.
func (t *Tools) SelectThickness(w float64) bool {
	if w <= 0 {
		return false
	}
	t.mode = ModeFreehand
	t.thickness = w
	t.glyph = ""
	t.log.Debug("select thickness", "width", w)
	t.moved()
	return true
}

// SetHue sets the hue for strokes created from now on.
func (t *Tools) SetHue(h float64) {
	t.hue = normalizeHue(h)
	t.moved()
}

// SelectSticker switches to sticker mode with glyph. It reports false
// for an empty glyph.
func (t *Tools) SelectSticker(glyph string) bool {
	glyph = strings.TrimSpace(glyph)
	if glyph == "" {
		return false
	}
	t.mode = ModeSticker
	t.glyph = glyph
	t.log.Debug("select sticker", "glyph", glyph)
	t.moved()
	return true
}

// AddSticker adds glyph to the palette and selects it. Empty input is
// rejected with ErrEmptyGlyph and leaves the state untouched.
func (t *Tools) AddSticker(glyph string) error {
	glyph = strings.TrimSpace(glyph)
	if glyph == "" {
		return ErrEmptyGlyph
	}
	if !slices.Contains(t.stickers, glyph) {
		t.stickers = append(t.stickers, glyph)
	}
	t.SelectSticker(glyph)
	return nil
}

// Press records a pointer-down at p.
func (t *Tools) Press(p Point) {
	t.cursor, t.active, t.visible = p, true, true
	t.moved()
}

// Move records a pointer-move to p.
func (t *Tools) Move(p Point) {
	t.cursor, t.visible = p, true
	t.moved()
}

// Release records a pointer-up at p.
func (t *Tools) Release(p Point) {
	t.cursor, t.active = p, false
	t.moved()
}

// Leave hides the cursor preview. A stroke in progress keeps going.
func (t *Tools) Leave() {
	t.visible = false
	t.moved()
}

func (t *Tools) moved() {
	if t.notify != nil {
		t.notify(ToolMoved)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
