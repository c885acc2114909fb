package export

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"

	"drawomatic/internal/render"
	"drawomatic/internal/state"
)

// stickerRaster is the pixel density of sticker images embedded in PDF.
const stickerRaster = 4

// PDF writes scene as a single page the size of the base canvas, one
// point per canvas pixel. Strokes stay vector paths; sticker glyphs are
// embedded as transparent PNG images when fonts are available.
func PDF(w io.Writer, scene []state.Drawable, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("export: invalid canvas size %dx%d", opts.Width, opts.Height)
	}
	p := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(opts.Width), Ht: float64(opts.Height)},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	if bg := opts.background(); !isWhite(bg) {
		setFill(p, bg)
		p.Rect(0, 0, float64(opts.Width), float64(opts.Height), "F")
	}

	for _, d := range scene {
		switch d := d.(type) {
		case *state.Stroke:
			pdfStroke(p, d)
		case *state.Sticker:
			if err := pdfSticker(p, d, opts.Fonts); err != nil {
				return err
			}
		}
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	return nil
}

func pdfStroke(p *gofpdf.Fpdf, s *state.Stroke) {
	pts := s.Points()
	switch len(pts) {
	case 0:
		return
	case 1:
		setFill(p, s.Color())
		p.Circle(pts[0].X, pts[0].Y, s.Thickness()/2, "F")
		return
	}
	setDraw(p, s.Color())
	p.SetLineWidth(s.Thickness())
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	p.DrawPath("D")
}

func pdfSticker(p *gofpdf.Fpdf, s *state.Sticker, fonts *render.Fonts) error {
	if fonts == nil {
		return nil
	}
	side := 2 * s.Size()
	px := max(1, int(math.Ceil(side*stickerRaster)))
	c := render.NewCanvas(px, px, stickerRaster, fonts)
	defer c.Close()
	c.Clear(color.Transparent)
	c.SetColor(state.StickerColor)
	c.DrawGlyph(s.Glyph(), s.Size(), s.Size(), s.Size())

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return fmt.Errorf("export: sticker %s: %w", s.ID(), err)
	}
	name := "sticker-" + s.ID()
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader(name, opt, &buf)
	pos := s.Position()
	p.ImageOptions(name, pos.X-s.Size(), pos.Y-s.Size(), side, side, false, opt, 0, "")
	if err := p.Error(); err != nil {
		return fmt.Errorf("export: sticker %s: %w", s.ID(), err)
	}
	return nil
}

func rgb8(c color.Color) (int, int, int) {
	r, g, b, _ := c.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}

func setDraw(p *gofpdf.Fpdf, c color.Color) { p.SetDrawColor(rgb8(c)) }

func setFill(p *gofpdf.Fpdf, c color.Color) { p.SetFillColor(rgb8(c)) }

func isWhite(c color.Color) bool {
	r, g, b, a := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff && a == 0xffff
}
