//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"lifeboard/internal/app"
	"lifeboard/internal/core"
	"lifeboard/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	sched := core.NewFrameScheduler()
	board, err := session.New(cfg.SessionOptions(sched))
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(board, sched, cfg.Scale)
	size := board.Size()

	ebiten.SetWindowTitle("lifeboard: Game of Life")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+app.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
