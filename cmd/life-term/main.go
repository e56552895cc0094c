package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"lifeboard/internal/app"
	"lifeboard/internal/core"
	"lifeboard/internal/session"
	"lifeboard/internal/term"

	"github.com/gdamore/tcell/v2"
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

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("initializing screen: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = term.New(screen, board, sched, cfg.TPS).Run(ctx)
	stop()
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
