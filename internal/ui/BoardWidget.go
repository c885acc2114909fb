package ui

import (
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"drawomatic/internal/pad"
	"drawomatic/internal/render"
	"drawomatic/internal/state"
)

// BoardWidget shows the sketch surface and forwards pointer input to
// the pad. Positions are mapped from widget units to canvas pixels so
// the board can be shown larger than the base canvas.
type BoardWidget struct {
	widget.BaseWidget
	pad       *pad.Pad
	surface   *render.Canvas
	image     *canvas.Image
	statusBar *widget.Label
	log       *slog.Logger
	pressed   bool
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

// NewBoardWidget wraps p, whose renderer paints onto surface.
func NewBoardWidget(p *pad.Pad, surface *render.Canvas, logger *slog.Logger) *BoardWidget {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &BoardWidget{
		pad:       p,
		surface:   surface,
		statusBar: widget.NewLabel("Ready"),
		log:       logger.With("component", "ui"),
	}
	b.image = canvas.NewImageFromImage(surface.Image())
	b.image.FillMode = canvas.ImageFillStretch
	b.image.ScaleMode = canvas.ImageScalePixels
	p.OnRedraw = func(state.Trigger) {
		b.image.Image = b.surface.Image()
		b.image.Refresh()
	}
	b.ExtendBaseWidget(b)
	return b
}

// Pad returns the session behind the widget.
func (b *BoardWidget) Pad() *pad.Pad { return b.pad }

// StatusBar returns the label used for feedback messages.
func (b *BoardWidget) StatusBar() *widget.Label { return b.statusBar }

// SetStatus shows text on the status bar.
func (b *BoardWidget) SetStatus(text string) {
	b.statusBar.SetText(text)
}

func (b *BoardWidget) toCanvas(pos fyne.Position) (float64, float64) {
	cfg := b.pad.Config()
	size := b.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return float64(pos.X), float64(pos.Y)
	}
	return float64(pos.X) * float64(cfg.Width) / float64(size.Width),
		float64(pos.Y) * float64(cfg.Height) / float64(size.Height)
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.pressed = true
	b.pad.PointerDown(b.toCanvas(e.Position))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || !b.pressed {
		return
	}
	b.pressed = false
	b.pad.PointerUp(b.toCanvas(e.Position))
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if b.pressed {
		b.pad.PointerMove(b.toCanvas(e.Position))
	}
}

func (b *BoardWidget) DragEnd() {}

func (b *BoardWidget) MouseIn(e *desktop.MouseEvent) {
	b.pad.PointerMove(b.toCanvas(e.Position))
}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.pad.PointerMove(b.toCanvas(e.Position))
}

func (b *BoardWidget) MouseOut() {
	b.pad.PointerLeave()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.border = canvas.NewRectangle(color.Transparent)
	r.border.StrokeColor = color.Gray{Y: 150}
	r.border.StrokeWidth = 1
	return r
}

type boardWidgetRenderer struct {
	board  *BoardWidget
	border *canvas.Rectangle
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.board.image, r.border}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.board.image.Resize(size)
	r.border.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	cfg := r.board.pad.Config()
	return fyne.NewSize(float32(cfg.Width*viewScale), float32(cfg.Height*viewScale))
}

func (r *boardWidgetRenderer) Refresh() {
	r.board.image.Refresh()
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Destroy() {}
