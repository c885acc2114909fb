package state

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Point is a position in surface-local canvas coordinates.
type Point struct{ X, Y float64 }

// Surface is the drawing target a Drawable renders onto.
// Implementations must not retain any style between calls that the
// caller did not set explicitly.
type Surface interface {
	SetColor(c color.Color)
	SetLineWidth(w float64)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
	// DrawDot fills a circle of radius r centered on (x, y).
	DrawDot(x, y, r float64)
	// DrawGlyph draws text centered on (x, y) with the given pixel size.
	DrawGlyph(glyph string, x, y, size float64)
}

// Drawable is an entry of the Scene. The set of implementations is
// closed: *Stroke and *Sticker.
type Drawable interface {
	ID() string
	Render(s Surface)
	drawable()
}

var (
	_ Drawable = (*Stroke)(nil)
	_ Drawable = (*Sticker)(nil)
)

// Palette maps a hue onto a concrete stroke color.
type Palette struct {
	Saturation float64
	Lightness  float64
}

// DefaultPalette is used when no palette is configured.
var DefaultPalette = Palette{Saturation: 0.9, Lightness: 0.45}

// Color returns the color for hue h in degrees.
func (p Palette) Color(h float64) color.Color {
	return colorful.Hsl(normalizeHue(h), p.Saturation, p.Lightness).Clamped()
}

// Stroke is a freehand polyline. Its points can only grow through the
// StrokeHandle returned by History.BeginStroke; once the handle is
// ended the stroke never changes again.
type Stroke struct {
	id        string
	points    []Point
	thickness float64
	hue       float64
	color     color.Color
}

func (s *Stroke) drawable() {}

// ID returns the stroke identity.
func (s *Stroke) ID() string { return s.id }

// Thickness returns the line width the stroke was created with.
func (s *Stroke) Thickness() float64 { return s.thickness }

// Hue returns the hue the stroke was created with.
func (s *Stroke) Hue() float64 { return s.hue }

// Color returns the resolved stroke color.
func (s *Stroke) Color() color.Color { return s.color }

// Points returns a copy of the recorded points.
func (s *Stroke) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// Len returns the number of recorded points.
func (s *Stroke) Len() int { return len(s.points) }

// Render draws the stroke with its own width and color. A stroke with a
// single point is drawn as a dot, one without points draws nothing.
func (s *Stroke) Render(dst Surface) {
	switch len(s.points) {
	case 0:
		return
	case 1:
		p := s.points[0]
		dst.SetColor(s.color)
		dst.DrawDot(p.X, p.Y, s.thickness/2)
		return
	}
	dst.SetColor(s.color)
	dst.SetLineWidth(s.thickness)
	dst.MoveTo(s.points[0].X, s.points[0].Y)
	for _, p := range s.points[1:] {
		dst.LineTo(p.X, p.Y)
	}
	dst.Stroke()
}

// StickerColor is the ink used for sticker glyphs.
var StickerColor color.Color = color.Black

// Sticker is a committed glyph placed on the scene.
type Sticker struct {
	id    string
	pos   Point
	glyph string
	size  float64
}

func (s *Sticker) drawable() {}

// ID returns the sticker identity.
func (s *Sticker) ID() string { return s.id }

// Position returns where the glyph is centered.
func (s *Sticker) Position() Point { return s.pos }

// Glyph returns the sticker text.
func (s *Sticker) Glyph() string { return s.glyph }

// Size returns the glyph size in canvas pixels.
func (s *Sticker) Size() float64 { return s.size }

// Render draws the glyph centered on its position.
func (s *Sticker) Render(dst Surface) {
	dst.SetColor(StickerColor)
	dst.DrawGlyph(s.glyph, s.pos.X, s.pos.Y, s.size)
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
