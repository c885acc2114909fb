package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"drawomatic/internal/config"
	"drawomatic/internal/pad"
	"drawomatic/internal/render"
)

// viewScale is the on-screen pixel density relative to the base canvas.
const viewScale = 2

// RunApp opens the desktop window and blocks until it is closed.
func RunApp(title string, cfg config.Config, fonts *render.Fonts, logger *slog.Logger) {
	surface := render.NewCanvas(cfg.Width*viewScale, cfg.Height*viewScale, viewScale, fonts)
	defer surface.Close()
	p := pad.New(cfg, surface, fonts, logger)

	myApp := app.New()
	myWindow := myApp.NewWindow(title)

	board := NewBoardWidget(p, surface, logger)
	_, toolbar := NewToolbar(board, myWindow)

	content := container.NewBorder(toolbar, board.StatusBar(), nil, nil, container.NewCenter(board))
	myWindow.SetContent(content)
	myWindow.Resize(fyne.NewSize(float32(cfg.Width)*viewScale+40, float32(cfg.Height)*viewScale+160))
	myWindow.ShowAndRun()
}
