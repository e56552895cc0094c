// Package runloop drives repeated stepping of a board at a user-selected
// speed.
package runloop

import (
	"fmt"
	"sync"
	"time"

	"lifeboard/internal/core"
	cell "lifeboard/pkg/core"
)

const (
	MinSpeed     = 1
	MaxSpeed     = 10
	DefaultSpeed = 7

	// BaseInterval and StepUnit define the delay between steps:
	// BaseInterval - speed*StepUnit.
	BaseInterval = 1100 * time.Millisecond
	StepUnit     = 100 * time.Millisecond
)

// InvalidSpeedError is returned by SetSpeed for levels outside
// [MinSpeed, MaxSpeed].
type InvalidSpeedError struct {
	Speed int
}

func (e *InvalidSpeedError) Error() string {
	return fmt.Sprintf("invalid speed %d: must be between %d and %d", e.Speed, MinSpeed, MaxSpeed)
}

// ValidSpeed reports whether level is an accepted speed.
func ValidSpeed(level int) bool { return level >= MinSpeed && level <= MaxSpeed }

// DelayFor returns the pause between steps at the given speed.
func DelayFor(speed int) time.Duration {
	return BaseInterval - time.Duration(speed)*StepUnit
}

// Stepper advances a board by one generation.
type Stepper interface {
	Step() []cell.Coord
}

// Controller runs a Stepper repeatedly while running. At most one scheduled
// continuation exists at any time, and stopping cancels it before returning.
type Controller struct {
	stepper Stepper
	sched   core.Scheduler

	mu      sync.Mutex
	running bool
	speed   int
	pending core.Timer
	epoch   uint64
	onStep  func()
	onState func(running bool)
}

// New returns a paused controller at DefaultSpeed.
func New(stepper Stepper, sched core.Scheduler) *Controller {
	if sched == nil {
		sched = core.TimerScheduler{}
	}
	return &Controller{stepper: stepper, sched: sched, speed: DefaultSpeed}
}

// OnStep registers fn to run after every step, manual or scheduled. It is
// called without any controller lock held.
func (c *Controller) OnStep(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStep = fn
}

// OnStateChange registers fn to run whenever the controller starts or stops.
func (c *Controller) OnStateChange(fn func(running bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onState = fn
}

// Running reports whether the loop is active.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Speed returns the current speed level.
func (c *Controller) Speed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// Delay returns the pause between steps at the current speed.
func (c *Controller) Delay() time.Duration { return DelayFor(c.Speed()) }

// Pending returns 1 while a continuation is scheduled and 0 otherwise.
func (c *Controller) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		return 1
	}
	return 0
}

// SetSpeed changes the speed. The new delay applies from the next time the
// loop schedules itself; an already scheduled step keeps its time.
func (c *Controller) SetSpeed(level int) error {
	if !ValidSpeed(level) {
		return &InvalidSpeedError{Speed: level}
	}
	c.mu.Lock()
	c.speed = level
	c.mu.Unlock()
	return nil
}

// Start steps once immediately and keeps stepping until stopped. Calling it
// while running does nothing.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.epoch++
	epoch := c.epoch
	onState := c.onState
	c.mu.Unlock()

	if onState != nil {
		onState(true)
	}
	c.tick(epoch)
}

// Stop pauses the loop and cancels the scheduled continuation. A step that
// is already executing finishes before Stop returns.
func (c *Controller) Stop() {
	if c.halt() {
		c.notifyState(false)
	}
}

// Halt forces the paused state regardless of the current one. Callers about
// to replace the board use it so no scheduled step lands on the new board.
func (c *Controller) Halt() { c.Stop() }

// ToggleRunning starts a paused loop or stops a running one.
func (c *Controller) ToggleRunning() {
	if c.Running() {
		c.Stop()
		return
	}
	c.Start()
}

// Step advances the board once without changing the run state.
func (c *Controller) Step() {
	c.mu.Lock()
	c.stepper.Step()
	onStep := c.onStep
	c.mu.Unlock()
	if onStep != nil {
		onStep()
	}
}

func (c *Controller) halt() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	wasRunning := c.running
	c.running = false
	c.epoch++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	return wasRunning
}

func (c *Controller) notifyState(running bool) {
	c.mu.Lock()
	onState := c.onState
	c.mu.Unlock()
	if onState != nil {
		onState(running)
	}
}

// tick runs one scheduled step for the loop identified by epoch and then
// schedules the next one using the speed at that moment.
func (c *Controller) tick(epoch uint64) {
	c.mu.Lock()
	if !c.running || c.epoch != epoch {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.stepper.Step()
	c.pending = c.sched.AfterFunc(DelayFor(c.speed), func() { c.tick(epoch) })
	onStep := c.onStep
	c.mu.Unlock()

	if onStep != nil {
		onStep()
	}
}
