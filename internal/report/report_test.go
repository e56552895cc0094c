package report

import (
	"strings"
	"testing"

	"lifeboard/internal/core"
	"lifeboard/internal/session"
	cell "lifeboard/pkg/core"
)

func newBoard(t *testing.T, opts session.Options) *session.Session {
	t.Helper()
	opts.Scheduler = core.NewFrameScheduler()
	s, err := session.New(opts)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestGridText(t *testing.T) {
	board := newBoard(t, session.Options{Size: core.Size{W: 4, H: 3}, Empty: true})
	board.Toggle(cell.C(0, 1))
	board.Toggle(cell.C(2, 3))
	board.Toggle(cell.C(5, 5))
	want := "·█··\n····\n···█"
	if got := Grid(board); got != want {
		t.Fatalf("grid =\n%s\nexpected\n%s", got, want)
	}
}

func TestSimulateRecordsHistory(t *testing.T) {
	board := newBoard(t, session.Options{})
	h := Simulate(board, 2)
	if len(h.Population) != 3 {
		t.Fatalf("history length = %d, expected 3", len(h.Population))
	}
	if h.Population[0] != 9 || h.Population[2] != 11 {
		t.Fatalf("history = %v", h.Population)
	}
	if h.Peak < 11 {
		t.Fatalf("peak = %d", h.Peak)
	}
	if board.Generation() != 2 {
		t.Fatalf("generation = %d", board.Generation())
	}
}

func TestRenderIncludesStatsAndChart(t *testing.T) {
	board := newBoard(t, session.Options{Size: core.Size{W: 30, H: 15}})
	h := Simulate(board, 10)
	out := Render(board, h, Options{Chart: true, ChartHeight: 4, ChartWidth: 30})
	for _, want := range []string{"generation", "population", "peak", "Game of Life", "population", string(aliveGlyph)} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}

	plain := Render(board, h, Options{})
	if strings.Count(plain, "\n") >= strings.Count(out, "\n") {
		t.Fatal("chart should add lines to the report")
	}
}

func TestChartHandlesEmptyHistory(t *testing.T) {
	if out := Chart(History{}, Options{}); out == "" {
		t.Fatal("chart of empty history should still render")
	}
}
