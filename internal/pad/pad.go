// Package pad ties the scene history, the tool state and the renderer
// into one sketch session. Front-ends translate raw input into calls on
// a Pad and repaint whenever OnRedraw fires.
package pad

import (
	"fmt"
	"io"
	"log/slog"

	"drawomatic/internal/config"
	"drawomatic/internal/export"
	"drawomatic/internal/render"
	"drawomatic/internal/state"
)

// Pad is a single-user drawing session. It is not safe for concurrent
// use; every call runs to completion before the next input is handled.
type Pad struct {
	cfg      config.Config
	history  *state.History
	tools    *state.Tools
	renderer *render.Renderer
	fonts    *render.Fonts
	log      *slog.Logger

	stroke  *state.StrokeHandle
	sticker *state.PendingSticker

	// OnRedraw is called after every repaint of the surface.
	OnRedraw func(state.Trigger)
}

// New creates a session drawing onto surface. fonts may be nil; it is
// only used by exports.
func New(cfg config.Config, surface render.Surface, fonts *render.Fonts, logger *slog.Logger) *Pad {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := &Pad{
		cfg:   cfg,
		fonts: fonts,
		log:   logger.With("component", "pad"),
	}
	palette := cfg.Palette()
	p.renderer = render.NewRenderer(surface, render.Options{
		Background: cfg.BackgroundColor(),
		Palette:    &palette,
		Logger:     logger,
	})
	p.history = state.NewHistory(p.redraw, state.WithPalette(palette), state.WithLogger(logger))
	p.tools = state.NewTools(cfg.ToolsConfig(logger), p.redraw)
	p.redraw(state.SceneChanged)
	return p
}

// History exposes the scene for read access.
func (p *Pad) History() *state.History { return p.history }

// Tools exposes the tool state for read access.
func (p *Pad) Tools() *state.Tools { return p.tools }

// Config returns the session settings.
func (p *Pad) Config() config.Config { return p.cfg }

func (p *Pad) redraw(t state.Trigger) {
	p.renderer.Redraw(t, p.history.Scene(), p.tools)
	if p.OnRedraw != nil {
		p.OnRedraw(t)
	}
}

// PointerDown starts a stroke in freehand mode or picks up a new
// sticker in sticker mode.
func (p *Pad) PointerDown(x, y float64) {
	pt := state.Point{X: x, Y: y}
	p.tools.Press(pt)
	switch p.tools.Mode() {
	case state.ModeFreehand:
		p.stroke = p.history.BeginStroke(pt, p.tools.Thickness(), p.tools.Hue())
	case state.ModeSticker:
		s, err := p.history.PlaceSticker(pt, p.tools.PendingGlyph(), p.tools.StickerSize())
		if err != nil {
			p.log.Warn("place sticker", "err", err)
			return
		}
		p.sticker = s
	}
}

// PointerMove updates the preview and, while pressed, extends the
// stroke or drags the pending sticker.
func (p *Pad) PointerMove(x, y float64) {
	pt := state.Point{X: x, Y: y}
	if p.sticker != nil {
		p.history.MoveSticker(p.sticker, pt)
	}
	p.tools.Move(pt)
	if p.tools.Active() && p.stroke != nil {
		p.history.ExtendStroke(p.stroke, pt)
	}
}

// PointerUp finishes the stroke or commits the pending sticker.
func (p *Pad) PointerUp(x, y float64) {
	pt := state.Point{X: x, Y: y}
	p.tools.Release(pt)
	if p.stroke != nil {
		p.history.EndStroke(p.stroke)
		p.stroke = nil
	}
	if p.sticker != nil {
		p.history.MoveSticker(p.sticker, pt)
		p.history.CommitSticker(p.sticker)
		p.sticker = nil
	}
}

// PointerLeave hides the tool preview.
func (p *Pad) PointerLeave() { p.tools.Leave() }

// SelectPreset switches to freehand mode with the i-th thickness preset.
func (p *Pad) SelectPreset(i int) bool {
	presets := p.cfg.ThicknessPresets
	if i < 0 || i >= len(presets) {
		return false
	}
	return p.SelectThickness(presets[i].Width)
}

// SelectThickness switches to freehand mode with width w. Widths <= 0
// are ignored and leave a picked-up sticker in hand.
func (p *Pad) SelectThickness(w float64) bool {
	if !p.tools.SelectThickness(w) {
		return false
	}
	p.dropSticker()
	return true
}

// SetHue changes the hue of strokes drawn from now on.
func (p *Pad) SetHue(h float64) { p.tools.SetHue(h) }

// SelectSticker switches to sticker mode with glyph.
func (p *Pad) SelectSticker(glyph string) bool {
	p.dropSticker()
	return p.tools.SelectSticker(glyph)
}

// AddSticker adds a custom glyph to the palette and selects it. Empty
// input is ignored and reported as state.ErrEmptyGlyph.
func (p *Pad) AddSticker(glyph string) error {
	if err := p.tools.AddSticker(glyph); err != nil {
		p.log.Debug("add sticker skipped", "err", err)
		return err
	}
	p.dropSticker()
	return nil
}

// Undo reverts the last scene entry.
func (p *Pad) Undo() bool {
	_, ok := p.history.Undo()
	return ok
}

// Redo restores the most recently undone entry.
func (p *Pad) Redo() bool {
	_, ok := p.history.Redo()
	return ok
}

// Clear discards the drawing and its redo history.
func (p *Pad) Clear() {
	p.stroke = nil
	p.sticker = nil
	p.history.Clear()
}

// ExportPNG writes the committed scene upscaled by the configured export
// scale.
func (p *Pad) ExportPNG(w io.Writer) error {
	return p.ExportPNGScale(w, p.cfg.ExportScale)
}

// ExportPNGScale writes the committed scene upscaled by scale.
func (p *Pad) ExportPNGScale(w io.Writer, scale int) error {
	if err := export.PNG(w, p.history.Scene(), scale, p.exportOptions()); err != nil {
		p.log.Warn("export png", "err", err)
		return err
	}
	p.log.Info("exported png", "entries", p.history.Len(), "scale", scale,
		"size", fmt.Sprintf("%dx%d", p.cfg.Width*scale, p.cfg.Height*scale))
	return nil
}

// ExportPDF writes the committed scene as a single page PDF.
func (p *Pad) ExportPDF(w io.Writer) error {
	if err := export.PDF(w, p.history.Scene(), p.exportOptions()); err != nil {
		p.log.Warn("export pdf", "err", err)
		return err
	}
	p.log.Info("exported pdf", "entries", p.history.Len())
	return nil
}

func (p *Pad) exportOptions() export.Options {
	return export.Options{
		Width:      p.cfg.Width,
		Height:     p.cfg.Height,
		Background: p.cfg.BackgroundColor(),
		Fonts:      p.fonts,
	}
}

// dropSticker forgets a sticker that was picked up but not committed.
func (p *Pad) dropSticker() {
	p.sticker = nil
}
