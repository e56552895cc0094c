// Package session ties the engine, viewport and run loop together into the
// surface a presentation layer talks to.
package session

import (
	"strconv"
	"sync"
	"time"

	"lifeboard/internal/core"
	"lifeboard/internal/runloop"
	"lifeboard/internal/viewport"
	cell "lifeboard/pkg/core"
	"lifeboard/pkg/sims/life"
)

// Event identifies what changed.
type Event int

const (
	// EventCells fires after the live-cell set changes.
	EventCells Event = iota
	// EventViewport fires after the window pans or returns to the origin.
	EventViewport
	// EventRunState fires when the loop starts or stops.
	EventRunState
	// EventSpeed fires after a speed change.
	EventSpeed
)

func (e Event) String() string {
	switch e {
	case EventCells:
		return "cells"
	case EventViewport:
		return "viewport"
	case EventRunState:
		return "run-state"
	case EventSpeed:
		return "speed"
	default:
		return "unknown"
	}
}

// Options configures a Session.
type Options struct {
	Size      core.Size
	Speed     int
	Scheduler core.Scheduler
	// Empty starts with a cleared board instead of the seed pattern.
	Empty bool
}

// Session owns one simulation: its board, its window and its run loop.
type Session struct {
	engine *life.Engine
	view   *viewport.Viewport
	loop   *runloop.Controller

	mu     sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

var _ core.Board = (*Session)(nil)

// New builds a session. Unless opts.Empty is set the board starts from the
// seed pattern.
func New(opts Options) (*Session, error) {
	s := &Session{
		engine: life.New(),
		view:   viewport.New(opts.Size),
		subs:   map[int]func(Event){},
	}
	s.loop = runloop.New(s.engine, opts.Scheduler)
	if opts.Speed != 0 {
		if err := s.loop.SetSpeed(opts.Speed); err != nil {
			return nil, err
		}
	}
	s.loop.OnStep(func() { s.publish(EventCells) })
	s.loop.OnStateChange(func(bool) { s.publish(EventRunState) })
	if !opts.Empty {
		s.engine.Reset()
	}
	return s, nil
}

// Engine exposes the underlying board.
func (s *Session) Engine() *life.Engine { return s.engine }

// Viewport exposes the window.
func (s *Session) Viewport() *viewport.Viewport { return s.view }

// Subscribe registers fn for change notifications and returns a function
// that removes it. Callbacks run synchronously after the change completes.
func (s *Session) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Session) publish(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// Size returns the viewport dimensions.
func (s *Session) Size() core.Size { return s.view.Size() }

// Offset returns the viewport offset.
func (s *Session) Offset() viewport.Offset { return s.view.Offset() }

// IsAlive reports whether c is alive.
func (s *Session) IsAlive(c cell.Coord) bool { return s.engine.IsAlive(c) }

// Visible returns the window's logical coordinates in row-major order.
func (s *Session) Visible() []cell.Coord { return s.view.Coordinates() }

// VisibleAlive returns the live cells inside the window in row-major order.
func (s *Session) VisibleAlive() []cell.Coord { return s.view.VisibleAlive(s.engine.IsAlive) }

// Raster fills grid with the window's cells.
func (s *Session) Raster(grid *core.ByteGrid) { s.view.Raster(grid, s.engine.IsAlive) }

// Running reports whether the loop is active.
func (s *Session) Running() bool { return s.loop.Running() }

// Speed returns the current speed level.
func (s *Session) Speed() int { return s.loop.Speed() }

// Delay returns the pause between steps at the current speed.
func (s *Session) Delay() time.Duration { return s.loop.Delay() }

// Pending reports how many scheduled steps are outstanding (0 or 1).
func (s *Session) Pending() int { return s.loop.Pending() }

// Population returns the number of live cells on the whole board.
func (s *Session) Population() int { return s.engine.Population() }

// Generation counts steps since the last clear or reset.
func (s *Session) Generation() uint64 { return s.engine.Generation() }

// Toggle flips the cell at c.
func (s *Session) Toggle(c cell.Coord) {
	s.engine.Toggle(c)
	s.publish(EventCells)
}

// ToggleAt flips the cell shown at window column x, row y. It reports false
// when (x, y) is outside the window.
func (s *Session) ToggleAt(x, y int) bool {
	c, ok := s.view.ToLogical(x, y)
	if !ok {
		return false
	}
	s.Toggle(c)
	return true
}

// Step advances one generation without changing the run state.
func (s *Session) Step() { s.loop.Step() }

// Start begins continuous stepping.
func (s *Session) Start() { s.loop.Start() }

// Stop pauses continuous stepping.
func (s *Session) Stop() { s.loop.Stop() }

// ToggleRunning starts or stops continuous stepping.
func (s *Session) ToggleRunning() { s.loop.ToggleRunning() }

// SetSpeed changes the speed, rejecting levels outside [1, 10].
func (s *Session) SetSpeed(level int) error {
	if err := s.loop.SetSpeed(level); err != nil {
		return err
	}
	s.publish(EventSpeed)
	return nil
}

// Pan moves the window.
func (s *Session) Pan(d core.Direction) {
	s.view.Pan(d)
	s.publish(EventViewport)
}

// Clear stops the loop, kills every cell and returns the window to the
// origin.
func (s *Session) Clear() {
	s.loop.Halt()
	s.view.ResetOffset()
	s.engine.Clear()
	s.publish(EventViewport)
	s.publish(EventCells)
}

// Load stops the loop and replaces the board with cells. The window and the
// generation count are left alone.
func (s *Session) Load(cells ...cell.Coord) {
	s.loop.Halt()
	s.engine.Load(cells...)
	s.publish(EventCells)
}

// Reset clears the session and loads the seed pattern.
func (s *Session) Reset() {
	s.loop.Halt()
	s.view.ResetOffset()
	s.engine.Reset()
	s.publish(EventViewport)
	s.publish(EventCells)
}

// Parameters reports the values shown on the HUD.
func (s *Session) Parameters() core.ParameterSnapshot {
	off := s.view.Offset()
	state := "paused"
	if s.Running() {
		state = "running"
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Run",
			Params: []core.Parameter{
				{Key: "state", Label: "State", Type: core.ParamTypeText, Value: state},
				{Key: "speed", Label: "Speed", Type: core.ParamTypeInt, Value: strconv.Itoa(s.Speed())},
				{Key: "delay", Label: "Delay", Type: core.ParamTypeText, Value: s.Delay().String()},
			},
		},
		{
			Name: "Board",
			Params: []core.Parameter{
				{Key: "generation", Label: "Generation", Type: core.ParamTypeInt, Value: strconv.FormatUint(s.Generation(), 10)},
				{Key: "population", Label: "Population", Type: core.ParamTypeInt, Value: strconv.Itoa(s.Population())},
				{Key: "offset", Label: "Offset", Type: core.ParamTypeText, Value: strconv.Itoa(off.Top) + "," + strconv.Itoa(off.Left)},
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable values.
func (s *Session) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "speed", Label: "Speed", Step: 1, Min: runloop.MinSpeed, Max: runloop.MaxSpeed},
	}
}

// SetIntParameter applies a HUD adjustment.
func (s *Session) SetIntParameter(key string, value int) bool {
	switch key {
	case "speed":
		return s.SetSpeed(value) == nil
	default:
		return false
	}
}
