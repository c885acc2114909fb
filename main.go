package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"drawomatic/internal/config"
	"drawomatic/internal/render"
	"drawomatic/internal/term"
	"drawomatic/internal/ui"
)

const appTitle = "Draw-O-Matic"

func main() {
	configPath := flag.String("config", "", "path to a TOML settings file")
	terminal := flag.Bool("term", false, "run in the terminal instead of a window")
	verbose := flag.Bool("v", false, "log at debug level")
	flag.Parse()

	if err := run(*configPath, *terminal, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "drawomatic:", err)
		os.Exit(1)
	}
}

func run(configPath string, terminal, verbose bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}
	// The terminal owns stdout and stderr while the session runs.
	out := os.Stderr
	if terminal {
		f, err := os.OpenFile("drawomatic.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	gg.SetLogger(logger)

	fonts, err := render.LoadFonts(cfg.StickerFont)
	if err != nil {
		return err
	}
	defer fonts.Close()

	logger.Info("starting", "terminal", terminal, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))
	if terminal {
		return term.Run(cfg, fonts, logger)
	}
	ui.RunApp(appTitle, cfg, fonts, logger)
	return nil
}
