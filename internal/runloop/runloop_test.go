package runloop

import (
	"errors"
	"sync"
	"testing"
	"time"

	"lifeboard/internal/core"
	cell "lifeboard/pkg/core"
)

type countingStepper struct {
	mu    sync.Mutex
	steps int
}

func (s *countingStepper) Step() []cell.Coord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps++
	return nil
}

func (s *countingStepper) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}

func newLoop() (*Controller, *countingStepper, *core.FrameScheduler) {
	stepper := &countingStepper{}
	sched := core.NewFrameScheduler()
	return New(stepper, sched), stepper, sched
}

func TestDelayTable(t *testing.T) {
	if DelayFor(1) != time.Second {
		t.Fatalf("speed 1 delay = %v", DelayFor(1))
	}
	if DelayFor(10) != 100*time.Millisecond {
		t.Fatalf("speed 10 delay = %v", DelayFor(10))
	}
	if DelayFor(DefaultSpeed) != 400*time.Millisecond {
		t.Fatalf("default delay = %v", DelayFor(DefaultSpeed))
	}
}

func TestSetSpeedBounds(t *testing.T) {
	loop, _, _ := newLoop()
	for _, bad := range []int{0, 11, -1, 100} {
		err := loop.SetSpeed(bad)
		var se *InvalidSpeedError
		if !errors.As(err, &se) {
			t.Fatalf("SetSpeed(%d) error = %v, expected InvalidSpeedError", bad, err)
		}
		if se.Speed != bad {
			t.Fatalf("error speed = %d, expected %d", se.Speed, bad)
		}
		if loop.Speed() != DefaultSpeed {
			t.Fatalf("speed changed to %d after rejected SetSpeed(%d)", loop.Speed(), bad)
		}
	}

	prev := time.Duration(1 << 62)
	for level := MinSpeed; level <= MaxSpeed; level++ {
		if err := loop.SetSpeed(level); err != nil {
			t.Fatalf("SetSpeed(%d): %v", level, err)
		}
		if loop.Speed() != level {
			t.Fatalf("speed = %d, expected %d", loop.Speed(), level)
		}
		if d := loop.Delay(); d >= prev {
			t.Fatalf("delay at speed %d = %v, not below %v", level, d, prev)
		} else {
			prev = d
		}
	}
}

func TestStartStepsImmediatelyAndReschedules(t *testing.T) {
	loop, stepper, sched := newLoop()
	if loop.Running() {
		t.Fatal("controller must start paused")
	}
	loop.Start()
	if !loop.Running() || stepper.count() != 1 {
		t.Fatalf("running=%v steps=%d after Start", loop.Running(), stepper.count())
	}
	if loop.Pending() != 1 || sched.Pending() != 1 {
		t.Fatalf("pending = %d/%d, expected one continuation", loop.Pending(), sched.Pending())
	}

	sched.Advance(399 * time.Millisecond)
	if stepper.count() != 1 {
		t.Fatalf("stepped early: %d", stepper.count())
	}
	sched.Advance(time.Millisecond)
	if stepper.count() != 2 {
		t.Fatalf("steps = %d after one interval", stepper.count())
	}
	sched.Advance(1200 * time.Millisecond)
	if stepper.count() != 5 {
		t.Fatalf("steps = %d after four intervals", stepper.count())
	}
}

func TestStartIsSingleFlight(t *testing.T) {
	loop, stepper, sched := newLoop()
	loop.Start()
	loop.Start()
	if sched.Pending() != 1 {
		t.Fatalf("pending continuations = %d, expected 1", sched.Pending())
	}
	if stepper.count() != 1 {
		t.Fatalf("second Start stepped again: %d", stepper.count())
	}
	sched.Advance(10 * time.Second)
	if sched.Pending() != 1 {
		t.Fatalf("pending continuations = %d after running a while", sched.Pending())
	}
}

func TestStopCancelsPending(t *testing.T) {
	loop, stepper, sched := newLoop()
	loop.Start()
	loop.Stop()
	if loop.Running() || loop.Pending() != 0 || sched.Pending() != 0 {
		t.Fatalf("running=%v pending=%d/%d after Stop", loop.Running(), loop.Pending(), sched.Pending())
	}
	sched.Advance(10 * time.Second)
	if stepper.count() != 1 {
		t.Fatalf("stale step fired after Stop: %d", stepper.count())
	}
}

func TestRestartAfterStop(t *testing.T) {
	loop, stepper, sched := newLoop()
	loop.Start()
	loop.Stop()
	loop.Start()
	if sched.Pending() != 1 || stepper.count() != 2 {
		t.Fatalf("pending=%d steps=%d after restart", sched.Pending(), stepper.count())
	}
}

func TestSpeedChangeAppliesOnNextSchedule(t *testing.T) {
	loop, stepper, sched := newLoop()
	loop.Start() // next step due at 400ms
	if err := loop.SetSpeed(10); err != nil {
		t.Fatal(err)
	}
	sched.Advance(400 * time.Millisecond)
	if stepper.count() != 2 {
		t.Fatalf("steps = %d, expected the already scheduled step to keep its time", stepper.count())
	}
	sched.Advance(100 * time.Millisecond)
	if stepper.count() != 3 {
		t.Fatalf("steps = %d, expected new speed on the following tick", stepper.count())
	}
}

func TestToggleRunning(t *testing.T) {
	loop, _, sched := newLoop()
	loop.ToggleRunning()
	if !loop.Running() {
		t.Fatal("toggle from paused should run")
	}
	loop.ToggleRunning()
	if loop.Running() || sched.Pending() != 0 {
		t.Fatal("toggle from running should stop and cancel")
	}
}

func TestManualStepKeepsState(t *testing.T) {
	loop, stepper, sched := newLoop()
	loop.Step()
	loop.Step()
	if loop.Running() || sched.Pending() != 0 || stepper.count() != 2 {
		t.Fatalf("running=%v pending=%d steps=%d", loop.Running(), sched.Pending(), stepper.count())
	}
	loop.Start()
	loop.Step()
	if !loop.Running() || sched.Pending() != 1 {
		t.Fatal("manual step while running must leave the loop alone")
	}
}

func TestHooks(t *testing.T) {
	loop, _, sched := newLoop()
	steps := 0
	var states []bool
	loop.OnStep(func() {
		steps++
		_ = loop.Running()
	})
	loop.OnStateChange(func(running bool) { states = append(states, running) })

	loop.Start()
	sched.Advance(400 * time.Millisecond)
	loop.Stop()
	loop.Stop()
	loop.Step()

	if steps != 3 {
		t.Fatalf("OnStep called %d times, expected 3", steps)
	}
	if len(states) != 2 || !states[0] || states[1] {
		t.Fatalf("state changes = %v", states)
	}
}

func TestHaltFromPausedIsQuiet(t *testing.T) {
	loop, _, _ := newLoop()
	called := false
	loop.OnStateChange(func(bool) { called = true })
	loop.Halt()
	if called || loop.Running() {
		t.Fatal("halting a paused loop should not report a change")
	}
}

func TestWallClockScheduler(t *testing.T) {
	stepper := &countingStepper{}
	loop := New(stepper, nil)
	if err := loop.SetSpeed(MaxSpeed); err != nil {
		t.Fatal(err)
	}
	loop.Start()
	deadline := time.Now().Add(3 * time.Second)
	for stepper.count() < 3 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	loop.Stop()
	n := stepper.count()
	if n < 3 {
		t.Fatalf("only %d steps on the wall clock", n)
	}
	time.Sleep(250 * time.Millisecond)
	if stepper.count() != n {
		t.Fatalf("steps continued after Stop: %d -> %d", n, stepper.count())
	}
}
