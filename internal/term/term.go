// Package term is a terminal front-end for a session, drawn with tcell.
package term

import (
	"context"
	"fmt"
	"time"

	"lifeboard/internal/core"
	"lifeboard/internal/session"

	"github.com/gdamore/tcell/v2"
)

const (
	aliveRune = '█'
	deadRune  = ' '
	// cellWidth is how many terminal columns one board cell takes.
	cellWidth = 2
)

var (
	styleAlive  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack)
	styleDead   = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHelp   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

const helpLine = "space start/stop  n next  c clear  r reset  arrows pan  +/- speed  click toggle  q quit"

// UI renders a session onto a tcell screen and turns key and mouse events
// into session commands.
type UI struct {
	screen  tcell.Screen
	board   *session.Session
	sched   *core.FrameScheduler
	frame   time.Duration
	buttons tcell.ButtonMask // as of the previous mouse event
}

// New creates a UI. sched must be the scheduler the session was built with;
// Run advances it once per frame so every step happens on the UI goroutine.
func New(screen tcell.Screen, board *session.Session, sched *core.FrameScheduler, fps int) *UI {
	if fps <= 0 {
		fps = 30
	}
	return &UI{screen: screen, board: board, sched: sched, frame: time.Second / time.Duration(fps)}
}

// Run draws and processes events until the user quits or ctx is done.
func (u *UI) Run(ctx context.Context) error {
	u.screen.EnableMouse()
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go u.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(u.frame)
	defer ticker.Stop()

	u.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if u.HandleEvent(ev) {
				return nil
			}
			u.Draw()
		case <-ticker.C:
			if u.sched.Update() > 0 {
				u.Draw()
			}
		}
	}
}

// HandleEvent applies one terminal event. It reports true when the user
// asked to quit.
func (u *UI) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		u.screen.Sync()
	case *tcell.EventKey:
		return u.handleKey(ev)
	case *tcell.EventMouse:
		buttons := ev.Buttons()
		if buttons&tcell.Button1 != 0 && u.buttons&tcell.Button1 == 0 {
			x, y := ev.Position()
			u.board.ToggleAt(x/cellWidth, y)
		}
		u.buttons = buttons
	}
	return false
}

func (u *UI) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		u.board.Pan(core.Up)
	case tcell.KeyDown:
		u.board.Pan(core.Down)
	case tcell.KeyLeft:
		u.board.Pan(core.Left)
	case tcell.KeyRight:
		u.board.Pan(core.Right)
	case tcell.KeyEnter:
		u.board.ToggleRunning()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case ' ':
			u.board.ToggleRunning()
		case 'n', 'N':
			u.board.Step()
		case 'c', 'C':
			u.board.Clear()
		case 'r', 'R':
			u.board.Reset()
		case '+', '=':
			_ = u.board.SetSpeed(u.board.Speed() + 1)
		case '-', '_':
			_ = u.board.SetSpeed(u.board.Speed() - 1)
		}
	}
	return false
}

// Draw paints the window, a status line and a help line, then shows them.
func (u *UI) Draw() {
	u.screen.Clear()
	size := u.board.Size()
	visible := u.board.Visible()
	for i, c := range visible {
		x, y := (i%size.W)*cellWidth, i/size.W
		r, style := deadRune, styleDead
		if u.board.IsAlive(c) {
			r, style = aliveRune, styleAlive
		}
		for dx := 0; dx < cellWidth; dx++ {
			u.screen.SetContent(x+dx, y, r, nil, style)
		}
	}
	status := StatusLine(u.board)
	if next, ok := u.sched.NextDue(); ok {
		status += fmt.Sprintf("  next %v", next.Round(10*time.Millisecond))
	}
	u.drawText(0, size.H, status, styleStatus)
	u.drawText(0, size.H+1, helpLine, styleHelp)
	u.screen.Show()
}

func (u *UI) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		u.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// StatusLine summarises the run state for display.
func StatusLine(board *session.Session) string {
	state := "paused"
	if board.Running() {
		state = "running"
	}
	off := board.Offset()
	return fmt.Sprintf("gen %d  pop %d  speed %d (%v)  %s  offset %d,%d",
		board.Generation(), board.Population(), board.Speed(), board.Delay(), state, off.Top, off.Left)
}
