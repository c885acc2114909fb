package ui

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"drawomatic/internal/state"
)

// --- Hue swatch shown next to the slider ---
type hueSwatch struct {
	widget.BaseWidget
	rect *canvas.Rectangle
}

func newHueSwatch(c color.Color) *hueSwatch {
	s := &hueSwatch{rect: canvas.NewRectangle(c)}
	s.rect.SetMinSize(fyne.NewSize(24, 24))
	s.rect.StrokeColor = color.Gray{Y: 150}
	s.rect.StrokeWidth = 1
	s.ExtendBaseWidget(s)
	return s
}

func (s *hueSwatch) SetColor(c color.Color) {
	s.rect.FillColor = c
	s.rect.Refresh()
}

func (s *hueSwatch) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.rect)
}

// Toolbar holds the buttons that drive the board.
type Toolbar struct {
	board      *BoardWidget
	window     fyne.Window
	stickerBox *fyne.Container
	glyphs     map[string]bool
}

// NewToolbar builds the tool, sticker and history controls for board.
func NewToolbar(board *BoardWidget, w fyne.Window) (*Toolbar, fyne.CanvasObject) {
	p := board.Pad()
	cfg := p.Config()
	t := &Toolbar{
		board:      board,
		window:     w,
		stickerBox: container.NewHBox(),
		glyphs:     make(map[string]bool),
	}

	// --- Thickness presets ---
	presets := container.NewHBox()
	for i, preset := range cfg.ThicknessPresets {
		presets.Add(widget.NewButton(preset.Name, func() {
			p.SelectPreset(i)
			board.SetStatus(fmt.Sprintf("Pen: %s (%g px)", preset.Name, preset.Width))
		}))
	}

	// --- Hue ---
	palette := cfg.Palette()
	swatch := newHueSwatch(palette.Color(p.Tools().Hue()))
	hueSlider := widget.NewSlider(0, 359)
	hueSlider.SetValue(p.Tools().Hue())
	hueSlider.OnChanged = func(v float64) {
		p.SetHue(v)
		swatch.SetColor(palette.Color(v))
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), hueSlider)

	// --- Stickers ---
	for _, g := range p.Tools().Stickers() {
		t.addStickerButton(g)
	}
	custom := widget.NewButtonWithIcon("", theme.ContentAddIcon(), t.promptSticker)

	// --- History ---
	history := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() {
			if !p.Undo() {
				board.SetStatus("Nothing to undo")
			}
		}),
		widget.NewToolbarAction(theme.ContentRedoIcon(), func() {
			if !p.Redo() {
				board.SetStatus("Nothing to redo")
			}
		}),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			p.Clear()
			board.SetStatus("Cleared")
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { t.export("png") }),
		widget.NewToolbarAction(theme.FileIcon(), func() { t.export("pdf") }),
	)

	// --- Assemble everything ---
	top := container.NewHBox(
		widget.NewLabel("Pen:"),
		presets,
		widget.NewSeparator(),
		widget.NewLabel("Hue:"),
		swatch,
		sliderContainer,
		layout.NewSpacer(),
		history,
	)
	bottom := container.NewHBox(
		widget.NewLabel("Stickers:"),
		t.stickerBox,
		custom,
	)
	return t, container.NewVBox(top, bottom)
}

func (t *Toolbar) addStickerButton(glyph string) {
	if t.glyphs[glyph] {
		return
	}
	t.glyphs[glyph] = true
	p := t.board.Pad()
	t.stickerBox.Add(widget.NewButton(glyph, func() {
		p.SelectSticker(glyph)
		t.board.SetStatus("Sticker: " + glyph)
	}))
}

// promptSticker asks for a custom glyph. Cancelled or empty input adds
// nothing.
func (t *Toolbar) promptSticker() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("🙂")
	items := []*widget.FormItem{widget.NewFormItem("Sticker", entry)}
	dialog.ShowForm("Custom sticker", "Add", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		if err := t.board.Pad().AddSticker(entry.Text); err != nil {
			if !errors.Is(err, state.ErrEmptyGlyph) {
				t.board.SetStatus("Sticker rejected: " + err.Error())
			}
			return
		}
		glyph := t.board.Pad().Tools().PendingGlyph()
		t.addStickerButton(glyph)
		t.board.SetStatus("Sticker: " + glyph)
	}, t.window)
}

func (t *Toolbar) export(kind string) {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			t.board.log.Warn("export dialog", "err", err)
			t.board.SetStatus("Export failed")
			return
		}
		if writer == nil {
			return
		}
		t.writeExport(kind, writer)
	}, t.window)
	save.SetFileName("drawing." + kind)
	save.SetFilter(storage.NewExtensionFileFilter([]string{"." + kind}))
	save.Show()
}

func (t *Toolbar) writeExport(kind string, writer io.WriteCloser) {
	defer func() {
		if err := writer.Close(); err != nil {
			t.board.log.Warn("close export", "err", err)
		}
	}()
	p := t.board.Pad()
	var err error
	switch kind {
	case "png":
		err = p.ExportPNG(writer)
	case "pdf":
		err = p.ExportPDF(writer)
	}
	if err != nil {
		t.board.SetStatus("Export failed: " + err.Error())
		return
	}
	t.board.SetStatus(fmt.Sprintf("Exported %d item(s) as %s", p.History().Len(), kind))
}
