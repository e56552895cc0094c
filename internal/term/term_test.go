package term

import (
	"context"
	"strings"
	"testing"
	"time"

	"lifeboard/internal/core"
	"lifeboard/internal/session"
	cell "lifeboard/pkg/core"

	"github.com/gdamore/tcell/v2"
)

func newUI(t *testing.T, opts session.Options) (*UI, tcell.SimulationScreen, *session.Session) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(120, 40)

	sched := core.NewFrameScheduler()
	opts.Scheduler = sched
	board, err := session.New(opts)
	if err != nil {
		t.Fatal(err)
	}
	return New(screen, board, sched, 60), screen, board
}

func runeAt(screen tcell.SimulationScreen, x, y int) rune {
	cells, w, _ := screen.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return 0
	}
	return c.Runes[0]
}

func rowText(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func key(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func TestDrawShowsSeed(t *testing.T) {
	ui, screen, _ := newUI(t, session.Options{Size: core.Size{W: 30, H: 15}})
	ui.Draw()
	// (10,10) is alive in the seed; (0,0) is not.
	if r := runeAt(screen, 10*cellWidth, 10); r != aliveRune {
		t.Fatalf("rune at seed cell = %q", r)
	}
	if r := runeAt(screen, 10*cellWidth+1, 10); r != aliveRune {
		t.Fatalf("second column of seed cell = %q", r)
	}
	if r := runeAt(screen, 0, 0); r == aliveRune {
		t.Fatal("dead cell drawn alive")
	}
	status := rowText(screen, 15)
	if !strings.Contains(status, "gen 0") || !strings.Contains(status, "pop 9") || !strings.Contains(status, "paused") {
		t.Fatalf("status line = %q", status)
	}
}

func TestKeysDriveSession(t *testing.T) {
	ui, _, board := newUI(t, session.Options{})

	ui.HandleEvent(key('n'))
	if board.Generation() != 1 {
		t.Fatalf("generation = %d after n", board.Generation())
	}
	ui.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	ui.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if off := board.Offset(); off.Top != 5 || off.Left != -5 {
		t.Fatalf("offset = %+v", off)
	}
	ui.HandleEvent(key('+'))
	ui.HandleEvent(key('+'))
	ui.HandleEvent(key('+'))
	ui.HandleEvent(key('+'))
	if board.Speed() != 10 {
		t.Fatalf("speed = %d, expected clamp at 10", board.Speed())
	}
	ui.HandleEvent(key('-'))
	if board.Speed() != 9 {
		t.Fatalf("speed = %d", board.Speed())
	}
	ui.HandleEvent(key(' '))
	if !board.Running() {
		t.Fatal("space should start the loop")
	}
	ui.HandleEvent(key('c'))
	if board.Running() || board.Population() != 0 || board.Offset().Top != 0 {
		t.Fatal("c should clear, stop and recentre")
	}
	ui.HandleEvent(key('r'))
	if board.Population() != 9 {
		t.Fatalf("population after reset = %d", board.Population())
	}
	if !ui.HandleEvent(key('q')) {
		t.Fatal("q should quit")
	}
	if !ui.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape should quit")
	}
}

func TestMouseTogglesCell(t *testing.T) {
	ui, _, board := newUI(t, session.Options{Empty: true})
	ui.HandleEvent(tcell.NewEventMouse(7, 4, tcell.Button1, tcell.ModNone))
	if !board.IsAlive(cell.C(4, 3)) {
		t.Fatalf("expected (4,3) alive, have %v", board.Engine().Alive())
	}
	ui.HandleEvent(tcell.NewEventMouse(7, 4, tcell.ButtonNone, tcell.ModNone))
	if board.Population() != 1 {
		t.Fatal("mouse motion without a button must not toggle")
	}
}

func TestMouseDragTogglesOnce(t *testing.T) {
	ui, _, board := newUI(t, session.Options{Empty: true})
	ui.HandleEvent(tcell.NewEventMouse(6, 2, tcell.Button1, tcell.ModNone))
	ui.HandleEvent(tcell.NewEventMouse(7, 2, tcell.Button1, tcell.ModNone))
	ui.HandleEvent(tcell.NewEventMouse(9, 2, tcell.Button1, tcell.ModNone))
	ui.HandleEvent(tcell.NewEventMouse(9, 2, tcell.ButtonNone, tcell.ModNone))
	if got := board.Engine().Keys(); len(got) != 1 || got[0] != "2,3" {
		t.Fatalf("alive after drag = %v, expected only 2,3", got)
	}

	ui.HandleEvent(tcell.NewEventMouse(6, 2, tcell.Button1, tcell.ModNone))
	ui.HandleEvent(tcell.NewEventMouse(6, 2, tcell.ButtonNone, tcell.ModNone))
	if board.Population() != 0 {
		t.Fatalf("second click should toggle 2,3 back, have %v", board.Engine().Keys())
	}
}

func TestStatusShowsNextStep(t *testing.T) {
	ui, screen, board := newUI(t, session.Options{Size: core.Size{W: 20, H: 10}, Speed: 8})
	ui.Draw()
	if strings.Contains(rowText(screen, 10), "next") {
		t.Fatal("paused board should not show a next step")
	}
	board.Start()
	ui.Draw()
	if status := rowText(screen, 10); !strings.Contains(status, "next 300ms") || !strings.Contains(status, "running") {
		t.Fatalf("status line = %q", status)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	ui, screen, board := newUI(t, session.Options{Speed: 10})
	board.Start()

	done := make(chan error, 1)
	go func() { done <- ui.Run(context.Background()) }()

	deadline := time.Now().Add(3 * time.Second)
	for board.Generation() < 3 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after q")
	}
	if board.Generation() < 3 {
		t.Fatalf("frame loop did not advance the run loop: generation %d", board.Generation())
	}
}

func TestRunStopsOnContext(t *testing.T) {
	ui, _, _ := newUI(t, session.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ui.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run returned %v, expected context.Canceled", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run ignored cancellation")
	}
}
