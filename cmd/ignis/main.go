//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"ignis/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	if err := cfg.Parse(flag.CommandLine, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log, err := cfg.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	game, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("start benchmark", zap.Error(err))
	}
	defer game.Close()

	w, h := app.ScreenSize()
	ebiten.SetWindowTitle("ignis")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetVsyncEnabled(false)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal("run game", zap.Error(err))
	}
}
