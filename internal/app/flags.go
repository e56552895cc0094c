package app

import (
	"flag"
	"fmt"

	"lifeboard/internal/core"
	"lifeboard/internal/runloop"
	"lifeboard/internal/session"
	"lifeboard/internal/viewport"
)

// HUDWidth is the width in pixels of the control panel right of the board.
const HUDWidth = 220

// Config represents the command-line parameters shared by the front-ends.
type Config struct {
	Width  int
	Height int
	Scale  int
	Speed  int
	TPS    int
	Empty  bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width:  viewport.DefaultWidth,
		Height: viewport.DefaultHeight,
		Scale:  16,
		Speed:  runloop.DefaultSpeed,
		TPS:    60,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "visible columns")
	fs.IntVar(&c.Height, "height", c.Height, "visible rows")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.IntVar(&c.Speed, "speed", c.Speed, "initial speed (1-10)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.BoolVar(&c.Empty, "empty", c.Empty, "start with a cleared board instead of the seed pattern")
}

// Validate checks the values after parsing.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %d", c.Scale)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	}
	if !runloop.ValidSpeed(c.Speed) {
		return &runloop.InvalidSpeedError{Speed: c.Speed}
	}
	return nil
}

// Size returns the configured viewport dimensions.
func (c *Config) Size() core.Size { return core.Size{W: c.Width, H: c.Height} }

// SessionOptions converts the configuration into session options using the
// given scheduler.
func (c *Config) SessionOptions(sched core.Scheduler) session.Options {
	return session.Options{
		Size:      c.Size(),
		Speed:     c.Speed,
		Scheduler: sched,
		Empty:     c.Empty,
	}
}
