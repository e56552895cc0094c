package core

import (
	"time"

	cell "lifeboard/pkg/core"
)

// Size describes the dimensions of the visible window, in cells.
type Size struct {
	W int
	H int
}

// Direction names a pan of the viewport.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Board is the query and command surface a presentation layer drives.
type Board interface {
	Size() Size

	IsAlive(c cell.Coord) bool
	Visible() []cell.Coord
	Running() bool
	Speed() int
	Delay() time.Duration
	Population() int
	Generation() uint64

	Toggle(c cell.Coord)
	ToggleAt(x, y int) bool
	Step()
	Clear()
	Reset()
	ToggleRunning()
	SetSpeed(level int) error
	Pan(d Direction)
}
