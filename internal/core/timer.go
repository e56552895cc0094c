package core

import (
	"sync"
	"time"
)

// Timer is a cancellable handle to a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped a pending callback.
	Stop() bool
}

// Scheduler runs a callback once after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// TimerScheduler schedules on the wall clock via time.AfterFunc. Callbacks run
// on their own goroutines.
type TimerScheduler struct{}

// AfterFunc implements Scheduler.
func (TimerScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// FrameScheduler runs callbacks from the goroutine that advances it, which
// lets a frame loop own all simulation work. Time only moves when Advance or
// Update is called.
type FrameScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	last  time.Time
	seq   uint64
	tasks []*frameTask
}

type frameTask struct {
	s   *FrameScheduler
	due time.Duration
	seq uint64
	f   func()
}

// NewFrameScheduler returns a scheduler whose virtual clock starts at zero.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// AfterFunc implements Scheduler. Non-positive delays fire on the next
// Advance or Update.
func (s *FrameScheduler) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &frameTask{s: s, due: s.now + d, seq: s.seq, f: f}
	s.tasks = append(s.tasks, t)
	return t
}

// Stop implements Timer.
func (t *frameTask) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.s.remove(t)
}

func (s *FrameScheduler) remove(t *frameTask) bool {
	for i, task := range s.tasks {
		if task == t {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the virtual clock forward by d and runs every callback that
// falls due, in due order. Callbacks scheduled while advancing run in the
// same call if they fall due before the new time. It returns how many
// callbacks ran.
func (s *FrameScheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	target := s.now + d
	ran := 0
	for {
		next := s.earliest(target)
		if next == nil {
			break
		}
		s.remove(next)
		s.now = next.due
		s.mu.Unlock()
		next.f()
		ran++
		s.mu.Lock()
	}
	s.now = target
	s.mu.Unlock()
	return ran
}

// Update advances by the wall-clock time elapsed since the previous Update.
// The first call only records the starting instant, apart from running
// callbacks that are already due.
func (s *FrameScheduler) Update() int {
	now := time.Now()
	s.mu.Lock()
	if s.last.IsZero() {
		s.last = now
	}
	delta := now.Sub(s.last)
	s.last = now
	s.mu.Unlock()
	return s.Advance(delta)
}

// Pending returns the number of scheduled callbacks that have not run.
func (s *FrameScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Now returns the virtual time elapsed since construction.
func (s *FrameScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// NextDue returns the delay until the earliest pending callback.
func (s *FrameScheduler) NextDue() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best *frameTask
	for _, t := range s.tasks {
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	if best == nil {
		return 0, false
	}
	return best.due - s.now, true
}

func (s *FrameScheduler) earliest(limit time.Duration) *frameTask {
	var best *frameTask
	for _, t := range s.tasks {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}
