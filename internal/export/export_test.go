package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"drawomatic/internal/render"
	"drawomatic/internal/state"
)

func testScene(t *testing.T) []state.Drawable {
	t.Helper()
	h := state.NewHistory(nil)
	handle := h.BeginStroke(state.Point{X: 0, Y: 0}, 2, 0)
	h.ExtendStroke(handle, state.Point{X: 10, Y: 10})
	h.EndStroke(handle)
	return h.Scene()
}

func painted(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r != 0xffff || g != 0xffff || b != 0xffff
}

func TestPNGScale(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Width: 256, Height: 256}
	if err := PNG(&buf, testScene(t), DefaultScale, opts); err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := img.Bounds(), image.Rect(0, 0, 1024, 1024); got != want {
		t.Fatalf("bounds = %v, want %v", got, want)
	}

	for _, p := range []image.Point{{2, 2}, {20, 20}, {38, 38}} {
		if !painted(img.At(p.X, p.Y)) {
			t.Errorf("pixel %v on the scaled path is blank", p)
		}
	}
	for _, p := range []image.Point{{60, 60}, {40, 4}, {4, 40}, {512, 512}} {
		if painted(img.At(p.X, p.Y)) {
			t.Errorf("pixel %v off the scaled path is painted", p)
		}
	}
}

func TestPNGEmptyScene(t *testing.T) {
	var buf bytes.Buffer
	if err := PNG(&buf, nil, 2, Options{Width: 8, Height: 4}); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if painted(img.At(3, 3)) {
		t.Error("empty scene export is not blank")
	}
}

func TestPNGInvalid(t *testing.T) {
	var buf bytes.Buffer
	for _, scale := range []int{0, -1} {
		if err := PNG(&buf, nil, scale, Options{Width: 1, Height: 1}); !errors.Is(err, ErrInvalidScale) {
			t.Errorf("scale %d: err = %v, want ErrInvalidScale", scale, err)
		}
	}
	if err := PNG(&buf, nil, 1, Options{}); err == nil {
		t.Error("expected error for zero canvas size")
	}
	if buf.Len() != 0 {
		t.Error("failed export wrote output")
	}
}

func TestPDF(t *testing.T) {
	fonts, err := render.LoadFonts("")
	if err != nil {
		t.Fatal(err)
	}
	defer fonts.Close()

	h := state.NewHistory(nil)
	handle := h.BeginStroke(state.Point{X: 1, Y: 1}, 3, 90)
	h.ExtendStroke(handle, state.Point{X: 100, Y: 50})
	h.EndStroke(handle)
	dot := h.BeginStroke(state.Point{X: 20, Y: 20}, 4, 0)
	h.EndStroke(dot)
	p, _ := h.PlaceSticker(state.Point{X: 64, Y: 64}, "A", 24)
	h.CommitSticker(p)

	var buf bytes.Buffer
	opts := Options{Width: 256, Height: 256, Fonts: fonts, Background: color.RGBA{R: 250, G: 240, B: 200, A: 255}}
	if err := PDF(&buf, h.Scene(), opts); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:min(8, buf.Len())])
	}
	if !bytes.Contains(buf.Bytes(), []byte("/Image")) {
		t.Error("sticker image missing from PDF")
	}
}

func TestPDFTinySticker(t *testing.T) {
	fonts, err := render.LoadFonts("")
	if err != nil {
		t.Fatal(err)
	}
	defer fonts.Close()

	h := state.NewHistory(nil)
	p, err := h.PlaceSticker(state.Point{X: 10, Y: 10}, "A", 0.1)
	if err != nil {
		t.Fatal(err)
	}
	h.CommitSticker(p)

	var buf bytes.Buffer
	if err := PDF(&buf, h.Scene(), Options{Width: 32, Height: 32, Fonts: fonts}); err != nil {
		t.Fatalf("PDF with a 0.1 sticker: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("not a PDF")
	}
}

func TestPDFInvalidSize(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, nil, Options{Width: 0, Height: 10}); err == nil {
		t.Error("expected error for zero width")
	}
}
