package term

import (
	"image"
	"image/color"
)

// grid maps terminal cells onto the canvas. Every cell shows two
// vertically stacked pixels using an upper half block.
type grid struct {
	cols, rows    int
	width, height int
}

// newGrid fits the largest square pixel area into a cols x rows screen,
// keeping the last row for the status line.
func newGrid(screenCols, screenRows, width, height int) grid {
	px := screenCols
	if h := 2 * (screenRows - 1); h < px {
		px = h
	}
	if px < 2 {
		px = 2
	}
	return grid{cols: px, rows: px / 2, width: width, height: height}
}

func (g grid) contains(cx, cy int) bool {
	return cx >= 0 && cy >= 0 && cx < g.cols && cy < g.rows
}

// toCanvas returns the canvas position at the center of cell (cx, cy).
func (g grid) toCanvas(cx, cy int) (float64, float64) {
	x := (float64(cx) + 0.5) * float64(g.width) / float64(g.cols)
	y := (float64(cy) + 0.5) * float64(g.height) / float64(g.rows)
	return x, y
}

// sample returns the colors of the upper and lower half of cell (cx, cy)
// taken from img, which covers the whole canvas.
func (g grid) sample(img image.Image, cx, cy int) (top, bottom color.Color) {
	b := img.Bounds()
	px := b.Min.X + int((float64(cx)+0.5)*float64(b.Dx())/float64(g.cols))
	rowsPx := 2 * g.rows
	ty := b.Min.Y + int((float64(2*cy)+0.5)*float64(b.Dy())/float64(rowsPx))
	by := b.Min.Y + int((float64(2*cy+1)+0.5)*float64(b.Dy())/float64(rowsPx))
	return img.At(px, ty), img.At(px, by)
}
