// Package term is a terminal front-end for the sketch pad. Drawing uses
// the mouse; tools and history are bound to single keys.
package term

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"drawomatic/internal/config"
	"drawomatic/internal/pad"
	"drawomatic/internal/render"
	"drawomatic/internal/state"
)

const (
	halfBlock = '▀'
	hueStep   = 15
	help      = "1-9 pen  [ ] hue  s sticker  a add  u undo  r redo  c clear  e png  p pdf  q quit"
)

// Session drives a pad from terminal events.
type Session struct {
	screen  tcell.Screen
	pad     *pad.Pad
	surface *render.Canvas
	grid    grid
	log     *slog.Logger

	pressed bool
	dirty   bool
	status  string
	prompt  []rune
	typing  bool
	sticker int

	// ExportDir receives exported files.
	ExportDir string
}

// NewSession binds an initialized screen to a new pad.
func NewSession(screen tcell.Screen, cfg config.Config, fonts *render.Fonts, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	surface := render.NewCanvas(cfg.Width, cfg.Height, 1, fonts)
	s := &Session{
		screen:    screen,
		surface:   surface,
		log:       logger.With("component", "term"),
		status:    help,
		ExportDir: ".",
	}
	s.pad = pad.New(cfg, surface, fonts, logger)
	s.pad.OnRedraw = func(state.Trigger) { s.dirty = true }
	s.resize()
	return s
}

// Run opens the terminal and blocks until the user quits.
func Run(cfg config.Config, fonts *render.Fonts, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("term: open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("term: init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	s := NewSession(screen, cfg, fonts, logger)
	defer s.Close()
	s.draw()
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !s.Handle(ev) {
			return nil
		}
		s.draw()
	}
}

// Pad returns the session behind the terminal.
func (s *Session) Pad() *pad.Pad { return s.pad }

// Close releases the drawing surface.
func (s *Session) Close() error { return s.surface.Close() }

// Handle applies one event. It returns false when the session should end.
func (s *Session) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.resize()
		s.screen.Sync()
	case *tcell.EventMouse:
		s.handleMouse(ev)
	case *tcell.EventKey:
		if s.typing {
			s.handlePrompt(ev)
			return true
		}
		return s.handleKey(ev)
	}
	return true
}

func (s *Session) resize() {
	cols, rows := s.screen.Size()
	cfg := s.pad.Config()
	s.grid = newGrid(cols, rows, cfg.Width, cfg.Height)
	s.dirty = true
}

func (s *Session) handleMouse(ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	x, y := s.grid.toCanvas(cx, cy)
	down := ev.Buttons()&tcell.Button1 != 0
	switch {
	case down && !s.pressed:
		if !s.grid.contains(cx, cy) {
			return
		}
		s.pressed = true
		s.pad.PointerDown(x, y)
	case down:
		s.pad.PointerMove(x, y)
	case s.pressed:
		s.pressed = false
		s.pad.PointerUp(x, y)
	case s.grid.contains(cx, cy):
		s.pad.PointerMove(x, y)
	default:
		s.pad.PointerLeave()
	}
}

func (s *Session) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}
	p := s.pad
	r := ev.Rune()
	switch {
	case r == 'q':
		return false
	case r >= '1' && r <= '9':
		if p.SelectPreset(int(r - '1')) {
			preset := p.Config().ThicknessPresets[r-'1']
			s.setStatus("pen %s (%g px)", preset.Name, preset.Width)
		}
	case r == '[':
		p.SetHue(p.Tools().Hue() - hueStep)
	case r == ']':
		p.SetHue(p.Tools().Hue() + hueStep)
	case r == 's':
		glyphs := p.Tools().Stickers()
		if len(glyphs) == 0 {
			s.setStatus("no stickers, press a to add one")
			break
		}
		g := glyphs[s.sticker%len(glyphs)]
		s.sticker++
		p.SelectSticker(g)
		s.setStatus("sticker %s", g)
	case r == 'a':
		s.typing = true
		s.prompt = s.prompt[:0]
		s.dirty = true
	case r == 'u':
		if !p.Undo() {
			s.setStatus("nothing to undo")
		}
	case r == 'r':
		if !p.Redo() {
			s.setStatus("nothing to redo")
		}
	case r == 'c':
		p.Clear()
		s.setStatus("cleared")
	case r == 'e':
		s.export("png", p.ExportPNG)
	case r == 'p':
		s.export("pdf", p.ExportPDF)
	}
	return true
}

func (s *Session) handlePrompt(ev *tcell.EventKey) {
	s.dirty = true
	switch ev.Key() {
	case tcell.KeyEscape:
		s.typing = false
		s.setStatus(help)
	case tcell.KeyEnter:
		s.typing = false
		err := s.pad.AddSticker(string(s.prompt))
		switch {
		case errors.Is(err, state.ErrEmptyGlyph):
			s.setStatus(help)
		case err != nil:
			s.setStatus("sticker rejected: %v", err)
		default:
			s.setStatus("sticker %s", s.pad.Tools().PendingGlyph())
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := len(s.prompt); n > 0 {
			s.prompt = s.prompt[:n-1]
		}
	case tcell.KeyRune:
		s.prompt = append(s.prompt, ev.Rune())
	}
}

func (s *Session) export(ext string, write func(io.Writer) error) {
	name := filepath.Join(s.ExportDir, fmt.Sprintf("drawomatic-%s.%s", time.Now().Format("20060102-150405"), ext))
	f, err := os.Create(name)
	if err != nil {
		s.setStatus("export failed: %v", err)
		return
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		s.log.Warn("export", "file", name, "err", err)
		s.setStatus("export failed: %v", err)
		return
	}
	s.log.Debug("export", "file", name)
	s.setStatus("saved %s", name)
}

func (s *Session) setStatus(format string, args ...any) {
	s.status = fmt.Sprintf(format, args...)
	s.dirty = true
}

func (s *Session) draw() {
	if !s.dirty {
		return
	}
	s.dirty = false
	s.screen.Clear()

	img := s.surface.Image()
	for cy := 0; cy < s.grid.rows; cy++ {
		for cx := 0; cx < s.grid.cols; cx++ {
			top, bottom := s.grid.sample(img, cx, cy)
			style := tcell.StyleDefault.
				Foreground(tcell.FromImageColor(top)).
				Background(tcell.FromImageColor(bottom))
			s.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
	s.drawStatus()
	s.screen.Show()
}

func (s *Session) drawStatus() {
	_, rows := s.screen.Size()
	y := rows - 1
	tools := s.pad.Tools()
	palette := s.pad.Config().Palette()

	x := 0
	swatch := tcell.StyleDefault.Background(tcell.FromImageColor(palette.Color(tools.Hue())))
	s.screen.SetContent(x, y, ' ', nil, swatch)
	s.screen.SetContent(x+1, y, ' ', nil, swatch)
	x += 3

	var line string
	if s.typing {
		line = "sticker: " + string(s.prompt) + "_"
	} else {
		mode := tools.Mode().String()
		if tools.Mode() == state.ModeSticker {
			mode += " " + tools.PendingGlyph()
		}
		line = fmt.Sprintf("%s %gpx hue %.0f | %d items | %s", mode, tools.Thickness(), tools.Hue(),
			s.pad.History().Len(), s.status)
	}
	line = strings.ReplaceAll(line, "\n", " ")
	for _, r := range line {
		s.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		x++
	}
}
