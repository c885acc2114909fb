package term

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"drawomatic/internal/config"
	"drawomatic/internal/state"
)

func newTestSession(t *testing.T) (*Session, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 25)

	s := NewSession(screen, config.Default(), nil, nil)
	t.Cleanup(func() { s.Close() })
	s.ExportDir = t.TempDir()
	return s, screen
}

func mouse(x, y int, b tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, b, tcell.ModNone)
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestGrid(t *testing.T) {
	g := newGrid(80, 25, 256, 256)
	if g.cols != 48 || g.rows != 24 {
		t.Fatalf("grid = %dx%d, want 48x24", g.cols, g.rows)
	}
	x, y := g.toCanvas(0, 0)
	if d := cmp.Diff([]float64{256.0 / 96, 256.0 / 48}, []float64{x, y}); d != "" {
		t.Errorf("toCanvas(0,0) (-want +got):\n%s", d)
	}
	if g.contains(48, 0) || g.contains(0, 24) || !g.contains(47, 23) {
		t.Error("contains disagrees with grid size")
	}
}

func TestGridSample(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	red := color.RGBA{R: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}
	for x := 0; x < 4; x++ {
		img.Set(x, 0, red)
		img.Set(x, 1, blue)
	}
	g := grid{cols: 4, rows: 2, width: 4, height: 4}
	top, bottom := g.sample(img, 1, 0)
	if top != red || bottom != blue {
		t.Errorf("sample = %v %v, want red over blue", top, bottom)
	}
}

func TestSessionDraws(t *testing.T) {
	s, _ := newTestSession(t)
	s.Handle(mouse(3, 3, tcell.Button1))
	s.Handle(mouse(10, 6, tcell.Button1))
	s.Handle(mouse(10, 6, tcell.ButtonNone))

	scene := s.Pad().History().Scene()
	if len(scene) != 1 {
		t.Fatalf("scene length = %d, want 1", len(scene))
	}
	stroke := scene[0].(*state.Stroke)
	want := []state.Point{{X: 3.5 * 256 / 48, Y: 3.5 * 256 / 24}, {X: 10.5 * 256 / 48, Y: 6.5 * 256 / 24}}
	if d := cmp.Diff(want, stroke.Points()); d != "" {
		t.Errorf("points (-want +got):\n%s", d)
	}
	if s.Pad().History().Drawing() {
		t.Error("stroke still open after release")
	}
}

func TestSessionPressOutsideIgnored(t *testing.T) {
	s, _ := newTestSession(t)
	s.Handle(mouse(70, 3, tcell.Button1))
	s.Handle(mouse(70, 3, tcell.ButtonNone))
	if s.Pad().History().Len() != 0 {
		t.Error("press outside the canvas started a stroke")
	}
	s.Handle(mouse(5, 5, tcell.ButtonNone))
	if !s.Pad().Tools().Visible() {
		t.Error("hover over the canvas did not show the cursor")
	}
	s.Handle(mouse(70, 5, tcell.ButtonNone))
	if s.Pad().Tools().Visible() {
		t.Error("cursor still visible outside the canvas")
	}
}

func TestSessionKeys(t *testing.T) {
	s, _ := newTestSession(t)
	p := s.Pad()
	s.Handle(mouse(1, 1, tcell.Button1))
	s.Handle(mouse(1, 1, tcell.ButtonNone))

	s.Handle(key('u'))
	if p.History().Len() != 0 {
		t.Error("u did not undo")
	}
	s.Handle(key('r'))
	if p.History().Len() != 1 {
		t.Error("r did not redo")
	}

	s.Handle(key(']'))
	if p.Tools().Hue() != 15 {
		t.Errorf("hue = %v, want 15", p.Tools().Hue())
	}
	s.Handle(key('['))
	s.Handle(key('['))
	if p.Tools().Hue() != 345 {
		t.Errorf("hue = %v, want 345", p.Tools().Hue())
	}

	s.Handle(key('2'))
	if p.Tools().Thickness() != 5 {
		t.Errorf("thickness = %v, want 5", p.Tools().Thickness())
	}
	s.Handle(key('s'))
	s.Handle(key('s'))
	if p.Tools().Mode() != state.ModeSticker || p.Tools().PendingGlyph() != "👻" {
		t.Errorf("after two s: %v %q", p.Tools().Mode(), p.Tools().PendingGlyph())
	}
	s.Handle(key('1'))
	if p.Tools().Mode() != state.ModeFreehand || p.Tools().Thickness() != 2 {
		t.Errorf("after 1: %v %v", p.Tools().Mode(), p.Tools().Thickness())
	}

	s.Handle(key('c'))
	if p.History().Len() != 0 || p.Redo() {
		t.Error("c did not clear")
	}
	if s.Handle(key('q')) {
		t.Error("q did not end the session")
	}
	if s.Handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape did not end the session")
	}
}

func TestSessionStickerPrompt(t *testing.T) {
	s, _ := newTestSession(t)
	p := s.Pad()

	s.Handle(key('a'))
	for _, r := range "x⭐" {
		s.Handle(key(r))
	}
	s.Handle(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	s.Handle(key('⭐'))
	if !s.Handle(key('q')) {
		t.Fatal("q while typing ended the session")
	}
	s.Handle(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	s.Handle(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if p.Tools().Mode() != state.ModeSticker || p.Tools().PendingGlyph() != "x⭐" {
		t.Errorf("after prompt: %v %q", p.Tools().Mode(), p.Tools().PendingGlyph())
	}

	s.Handle(key('a'))
	s.Handle(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if p.Tools().PendingGlyph() != "x⭐" {
		t.Error("empty prompt changed the sticker")
	}
}

func TestSessionExport(t *testing.T) {
	s, _ := newTestSession(t)
	s.Handle(mouse(2, 2, tcell.Button1))
	s.Handle(mouse(9, 9, tcell.Button1))
	s.Handle(mouse(9, 9, tcell.ButtonNone))

	s.Handle(key('e'))
	s.Handle(key('p'))
	for _, pattern := range []string{"*.png", "*.pdf"} {
		matches, err := filepath.Glob(filepath.Join(s.ExportDir, pattern))
		if err != nil {
			t.Fatal(err)
		}
		if len(matches) != 1 {
			t.Errorf("%s exports = %v, want one file", pattern, matches)
		}
	}
	if !strings.HasPrefix(s.status, "saved ") {
		t.Errorf("status = %q", s.status)
	}
}

func TestSessionRender(t *testing.T) {
	s, screen := newTestSession(t)
	s.Handle(key('2'))
	s.Handle(mouse(4, 2, tcell.Button1))
	s.Handle(mouse(4, 10, tcell.Button1))
	s.Handle(mouse(4, 10, tcell.ButtonNone))
	s.draw()

	r, _, style, _ := screen.GetContent(4, 6)
	if r != halfBlock {
		t.Fatalf("cell rune = %q, want half block", r)
	}
	fg, bg, _ := style.Decompose()
	white := tcell.FromImageColor(color.White)
	if fg == white && bg == white {
		t.Error("cell on the stroke shows only background")
	}

	var status strings.Builder
	for x := 0; x < 80; x++ {
		r, _, _, _ := screen.GetContent(x, 24)
		status.WriteRune(r)
	}
	if !strings.Contains(status.String(), "freehand") {
		t.Errorf("status line = %q", status.String())
	}
}
