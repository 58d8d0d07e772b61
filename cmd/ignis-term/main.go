package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"ignis/internal/app"
	"ignis/internal/logging"
	"ignis/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.Preset = "low"
	cfg.TPS = 30
	logFile := flag.String("log-file", "ignis-term.log", "log destination; the terminal is busy drawing")
	if err := cfg.Parse(flag.CommandLine, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := newLogger(cfg, *logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal("open terminal", zap.Error(err))
	}
	if err := screen.Init(); err != nil {
		log.Fatal("init terminal", zap.Error(err))
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = term.New(screen, cfg, log).Run(ctx)
	screen.Fini()
	if err != nil {
		log.Fatal("run", zap.Error(err))
	}
}

func newLogger(cfg *app.Config, path string) (*zap.Logger, error) {
	return logging.New(logging.Config{
		Level:       cfg.LogLevel,
		JSON:        cfg.LogJSON,
		OutputPaths: []string{path},
	})
}
