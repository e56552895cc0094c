package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"lifeboard/internal/app"
	"lifeboard/internal/core"
	"lifeboard/internal/report"
	"lifeboard/internal/session"
	"lifeboard/internal/viewport"
	cell "lifeboard/pkg/core"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	steps := flag.Int("steps", 50, "generations to simulate")
	pans := flag.String("pan", "", "comma-separated pans applied before rendering, e.g. up,up,left")
	chart := flag.Bool("chart", true, "plot the population history")
	cells := flag.String("cells", "", "semicolon-separated cell keys loaded instead of the seed, e.g. 9,0;10,0;11,0")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if *steps < 0 {
		log.Fatalf("steps must not be negative, got %d", *steps)
	}

	board, err := session.New(cfg.SessionOptions(core.NewFrameScheduler()))
	if err != nil {
		log.Fatal(err)
	}
	if *cells != "" {
		var pattern []cell.Coord
		for _, key := range strings.Split(*cells, ";") {
			c, err := cell.Decode(strings.TrimSpace(key))
			if err != nil {
				log.Fatal(err)
			}
			pattern = append(pattern, c)
		}
		board.Load(pattern...)
	}
	if *pans != "" {
		for _, name := range strings.Split(*pans, ",") {
			dir, err := viewport.ParseDirection(name)
			if err != nil {
				log.Fatal(err)
			}
			board.Pan(dir)
		}
	}

	history := report.Simulate(board, *steps)
	fmt.Println(report.Render(board, history, report.Options{Chart: *chart}))
}
