package state

import (
	"errors"
	"log/slog"
	"strings"
)

// ErrEmptyGlyph is returned when a sticker glyph is empty after trimming.
var ErrEmptyGlyph = errors.New("state: empty sticker glyph")

// Trigger names the redraw a mutation asks for.
type Trigger int

const (
	// SceneChanged repaints the committed scene only.
	SceneChanged Trigger = iota
	// ToolMoved repaints the scene plus the tool preview overlay.
	ToolMoved
)

func (t Trigger) String() string {
	switch t {
	case SceneChanged:
		return "scene-changed"
	case ToolMoved:
		return "tool-moved"
	}
	return "unknown"
}

// StrokeHandle is the mutable side of an in-progress stroke.
type StrokeHandle struct {
	stroke *Stroke
	done   bool
}

// Stroke returns the stroke the handle builds.
func (h *StrokeHandle) Stroke() *Stroke {
	if h == nil {
		return nil
	}
	return h.stroke
}

// Done reports whether the handle no longer accepts points.
func (h *StrokeHandle) Done() bool { return h == nil || h.done }

// PendingSticker is a sticker that follows the cursor until committed.
type PendingSticker struct {
	pos       Point
	glyph     string
	size      float64
	committed bool
}

// Position returns the current placement.
func (p *PendingSticker) Position() Point { return p.pos }

// Glyph returns the sticker text.
func (p *PendingSticker) Glyph() string { return p.glyph }

// Committed reports whether the sticker was already appended to the scene.
func (p *PendingSticker) Committed() bool { return p == nil || p.committed }

// History owns the scene and the redo buffer. Every mutation calls the
// notify function with SceneChanged before it returns.
type History struct {
	scene   []Drawable
	redo    []Drawable
	active  *StrokeHandle
	palette Palette
	notify  func(Trigger)
	log     *slog.Logger
}

// HistoryOption configures a History.
type HistoryOption func(*History)

// WithPalette sets the palette used to resolve stroke hues.
func WithPalette(p Palette) HistoryOption {
	return func(h *History) { h.palette = p }
}

// WithLogger sets the logger for history operations.
func WithLogger(l *slog.Logger) HistoryOption {
	return func(h *History) {
		if l != nil {
			h.log = l
		}
	}
}

// NewHistory creates an empty history. notify may be nil.
func NewHistory(notify func(Trigger), opts ...HistoryOption) *History {
	h := &History{
		scene:   make([]Drawable, 0),
		redo:    make([]Drawable, 0),
		palette: DefaultPalette,
		notify:  notify,
		log:     discardLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.With("component", "history")
	return h
}

// BeginStroke starts a stroke with a single point and appends it to the
// scene right away so it is visible while drawn. The redo buffer is
// cleared here rather than at EndStroke.
func (h *History) BeginStroke(p Point, thickness, hue float64) *StrokeHandle {
	h.invalidateActive()
	s := &Stroke{
		id:        newID(),
		points:    []Point{p},
		thickness: thickness,
		hue:       normalizeHue(hue),
		color:     h.palette.Color(hue),
	}
	h.scene = append(h.scene, s)
	h.redo = h.redo[:0]
	h.active = &StrokeHandle{stroke: s}
	h.log.Debug("begin stroke", "id", s.id, "thickness", thickness, "hue", s.hue, "scene", len(h.scene))
	h.changed()
	return h.active
}

// ExtendStroke appends p to the stroke behind handle. It reports false
// and does nothing when the handle is finished or no longer live.
func (h *History) ExtendStroke(handle *StrokeHandle, p Point) bool {
	if handle == nil || handle.done || handle != h.active {
		return false
	}
	handle.stroke.points = append(handle.stroke.points, p)
	h.changed()
	return true
}

// EndStroke finalizes the stroke behind handle.
func (h *History) EndStroke(handle *StrokeHandle) bool {
	if handle == nil || handle.done || handle != h.active {
		return false
	}
	handle.done = true
	h.active = nil
	h.log.Debug("end stroke", "id", handle.stroke.id, "points", len(handle.stroke.points))
	h.changed()
	return true
}

// PlaceSticker creates a sticker that tracks p until committed. The
// glyph is trimmed; an empty glyph yields ErrEmptyGlyph.
func (h *History) PlaceSticker(p Point, glyph string, size float64) (*PendingSticker, error) {
	glyph = strings.TrimSpace(glyph)
	if glyph == "" {
		return nil, ErrEmptyGlyph
	}
	return &PendingSticker{pos: p, glyph: glyph, size: size}, nil
}

// MoveSticker repositions a sticker that is not yet committed.
func (h *History) MoveSticker(pending *PendingSticker, p Point) bool {
	if pending.Committed() {
		return false
	}
	pending.pos = p
	return true
}

// CommitSticker appends the pending sticker to the scene and clears the
// redo buffer.
func (h *History) CommitSticker(pending *PendingSticker) (*Sticker, bool) {
	if pending.Committed() {
		return nil, false
	}
	pending.committed = true
	s := &Sticker{
		id:    newID(),
		pos:   pending.pos,
		glyph: pending.glyph,
		size:  pending.size,
	}
	h.scene = append(h.scene, s)
	h.redo = h.redo[:0]
	h.log.Debug("commit sticker", "id", s.id, "glyph", s.glyph, "scene", len(h.scene))
	h.changed()
	return s, true
}

// Undo moves the last scene entry onto the redo buffer. It reports false
// when the scene is empty.
func (h *History) Undo() (Drawable, bool) {
	if len(h.scene) == 0 {
		return nil, false
	}
	last := h.scene[len(h.scene)-1]
	h.scene = h.scene[:len(h.scene)-1]
	h.redo = append(h.redo, last)
	if h.active != nil && h.active.stroke == last {
		h.invalidateActive()
	}
	h.log.Debug("undo", "id", last.ID(), "scene", len(h.scene), "redo", len(h.redo))
	h.changed()
	return last, true
}

// Redo moves the most recently undone entry back to the end of the
// scene. It reports false when there is nothing to redo.
func (h *History) Redo() (Drawable, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.scene = append(h.scene, top)
	h.log.Debug("redo", "id", top.ID(), "scene", len(h.scene), "redo", len(h.redo))
	h.changed()
	return top, true
}

// Clear discards the scene and the redo buffer.
func (h *History) Clear() {
	h.invalidateActive()
	h.scene = h.scene[:0]
	h.redo = h.redo[:0]
	h.log.Debug("clear")
	h.changed()
}

// Scene returns a snapshot of the committed entries in paint order.
func (h *History) Scene() []Drawable {
	out := make([]Drawable, len(h.scene))
	copy(out, h.scene)
	return out
}

// RedoStack returns a snapshot of the redo buffer, bottom first.
func (h *History) RedoStack() []Drawable {
	out := make([]Drawable, len(h.redo))
	copy(out, h.redo)
	return out
}

// Len returns the number of scene entries.
func (h *History) Len() int { return len(h.scene) }

// RedoLen returns the number of undone entries available to Redo.
func (h *History) RedoLen() int { return len(h.redo) }

// Drawing reports whether a stroke is in progress.
func (h *History) Drawing() bool { return h.active != nil }

func (h *History) invalidateActive() {
	if h.active != nil {
		h.active.done = true
		h.active = nil
	}
}

func (h *History) changed() {
	if h.notify != nil {
		h.notify(SceneChanged)
	}
}
