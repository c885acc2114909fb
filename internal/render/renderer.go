package render

import (
	"image/color"
	"log/slog"

	"drawomatic/internal/state"
)

// PaintScene renders every entry of scene onto s in paint order.
func PaintScene(s state.Surface, scene []state.Drawable) {
	for _, d := range scene {
		d.Render(s)
	}
}

// Options configures a Renderer.
type Options struct {
	Background color.Color
	// Palette colors the hover dot. Nil means state.DefaultPalette.
	Palette *state.Palette
	Logger  *slog.Logger
}

// Renderer repaints a Surface from the scene and the tool state. Both
// triggers are full redraws; nothing is diffed between frames.
type Renderer struct {
	surface    Surface
	background color.Color
	palette    state.Palette
	log        *slog.Logger
	frames     int
}

// NewRenderer returns a renderer drawing onto s.
func NewRenderer(s Surface, opts Options) *Renderer {
	if opts.Background == nil {
		opts.Background = color.White
	}
	palette := state.DefaultPalette
	if opts.Palette != nil {
		palette = *opts.Palette
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{
		surface:    s,
		background: opts.Background,
		palette:    palette,
		log:        opts.Logger.With("component", "renderer"),
	}
}

// Frames returns how many redraws have been performed.
func (r *Renderer) Frames() int { return r.frames }

// Redraw dispatches on the trigger.
func (r *Renderer) Redraw(t state.Trigger, scene []state.Drawable, tools *state.Tools) {
	switch t {
	case state.SceneChanged:
		r.SceneChanged(scene)
	case state.ToolMoved:
		r.ToolMoved(scene, tools)
	}
}

// SceneChanged repaints the committed scene without any overlay.
func (r *Renderer) SceneChanged(scene []state.Drawable) {
	r.surface.Clear(r.background)
	PaintScene(r.surface, scene)
	r.frames++
	r.log.Debug("redraw", "trigger", state.SceneChanged, "entries", len(scene))
}

// ToolMoved repaints the scene and overlays the tool preview: a dot
// sized to the current thickness while hovering in freehand mode, or
// the selected glyph in sticker mode.
func (r *Renderer) ToolMoved(scene []state.Drawable, tools *state.Tools) {
	r.surface.Clear(r.background)
	PaintScene(r.surface, scene)
	if tools != nil {
		r.overlay(tools)
	}
	r.frames++
	r.log.Debug("redraw", "trigger", state.ToolMoved, "entries", len(scene))
}

func (r *Renderer) overlay(tools *state.Tools) {
	if !tools.Visible() {
		return
	}
	p := tools.Cursor()
	switch tools.Mode() {
	case state.ModeFreehand:
		if tools.Active() {
			return
		}
		r.surface.SetColor(r.palette.Color(tools.Hue()))
		r.surface.DrawDot(p.X, p.Y, tools.Thickness()/2)
	case state.ModeSticker:
		if g := tools.PendingGlyph(); g != "" {
			r.surface.SetColor(state.StickerColor)
			r.surface.DrawGlyph(g, p.X, p.Y, tools.StickerSize())
		}
	}
}
