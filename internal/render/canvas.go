package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"drawomatic/internal/state"
)

// Surface is a state.Surface that can also be wiped for a full redraw.
type Surface interface {
	state.Surface
	Clear(bg color.Color)
}

var _ Surface = (*Canvas)(nil)

// Canvas is a raster Surface backed by a gg context. Coordinates passed
// to it are canvas coordinates; a uniform scale maps them to pixels.
type Canvas struct {
	dc    *gg.Context
	m     gg.Matrix
	scale float64
	fonts *Fonts
	err   error
}

// NewCanvas allocates a width x height pixel canvas drawing canvas
// coordinates multiplied by scale. fonts may be nil, in which case
// glyphs are skipped.
func NewCanvas(width, height int, scale float64, fonts *Fonts) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	dc := gg.NewContext(width, height)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	return &Canvas{
		dc:    dc,
		m:     gg.Scale(scale, scale),
		scale: scale,
		fonts: fonts,
	}
}

// Scale returns the canvas to pixel factor.
func (c *Canvas) Scale() float64 { return c.scale }

// Bounds returns the pixel bounds of the canvas.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.dc.Width(), c.dc.Height())
}

func (c *Canvas) SetColor(col color.Color) { c.dc.SetColor(col) }

func (c *Canvas) SetLineWidth(w float64) { c.dc.SetLineWidth(w * c.scale) }

func (c *Canvas) MoveTo(x, y float64) {
	p := c.m.TransformPoint(gg.Pt(x, y))
	c.dc.MoveTo(p.X, p.Y)
}

func (c *Canvas) LineTo(x, y float64) {
	p := c.m.TransformPoint(gg.Pt(x, y))
	c.dc.LineTo(p.X, p.Y)
}

func (c *Canvas) Stroke() {
	if err := c.dc.Stroke(); err != nil {
		c.fail("stroke", err)
	}
}

func (c *Canvas) DrawDot(x, y, r float64) {
	p := c.m.TransformPoint(gg.Pt(x, y))
	c.dc.DrawCircle(p.X, p.Y, r*c.scale)
	if err := c.dc.Fill(); err != nil {
		c.fail("fill dot", err)
	}
}

func (c *Canvas) DrawGlyph(glyph string, x, y, size float64) {
	if c.fonts == nil || glyph == "" {
		return
	}
	face := c.fonts.Face(size * c.scale)
	if face == nil {
		return
	}
	p := c.m.TransformPoint(gg.Pt(x, y))
	c.dc.SetFont(face)
	c.dc.DrawStringAnchored(glyph, p.X, p.Y, 0.5, 0.5)
}

// Clear fills the whole canvas with bg and drops any pending path.
func (c *Canvas) Clear(bg color.Color) {
	c.dc.ClearPath()
	c.dc.ClearWithColor(gg.FromColor(bg))
}

// Image returns a copy of the current pixels.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// EncodePNG writes the current pixels as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

// Err returns the first rasterizer error since the canvas was created.
func (c *Canvas) Err() error { return c.err }

// Close releases the gg context.
func (c *Canvas) Close() error { return c.dc.Close() }

func (c *Canvas) fail(op string, err error) {
	if c.err == nil {
		c.err = fmt.Errorf("render: %s: %w", op, err)
	}
}
