// Package export writes the committed scene to standalone files. The
// tool preview overlay never reaches an export.
package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"drawomatic/internal/render"
	"drawomatic/internal/state"
)

// ErrInvalidScale is returned for a non-positive upscale factor.
var ErrInvalidScale = errors.New("export: scale must be positive")

// DefaultScale is the upscale factor applied by front-ends.
const DefaultScale = 4

// Options describes the base canvas an export reproduces.
type Options struct {
	Width, Height int
	Background    color.Color
	Fonts         *render.Fonts
}

func (o Options) background() color.Color {
	if o.Background == nil {
		return color.White
	}
	return o.Background
}

// PNG rasterizes scene at Width*scale x Height*scale pixels and writes
// it to w as PNG.
func PNG(w io.Writer, scene []state.Drawable, scale int, opts Options) error {
	if scale <= 0 {
		return ErrInvalidScale
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("export: invalid canvas size %dx%d", opts.Width, opts.Height)
	}
	c := render.NewCanvas(opts.Width*scale, opts.Height*scale, float64(scale), opts.Fonts)
	defer c.Close()

	c.Clear(opts.background())
	render.PaintScene(c, scene)
	if err := c.Err(); err != nil {
		return fmt.Errorf("export: png: %w", err)
	}
	if err := c.EncodePNG(w); err != nil {
		return fmt.Errorf("export: encode png: %w", err)
	}
	return nil
}
