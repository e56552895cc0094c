// Package viewport maps a fixed-size window, panned over the unbounded board,
// to the logical cell coordinates it shows.
package viewport

import (
	"fmt"
	"strings"
	"sync"

	"lifeboard/internal/core"
	cell "lifeboard/pkg/core"
)

const (
	// DefaultWidth and DefaultHeight size the window when none is given.
	DefaultWidth  = 40
	DefaultHeight = 30
	// PanStep is how many cells a single pan moves the window.
	PanStep = 5
)

// Offset is how far the window has been panned from the origin.
type Offset struct {
	Top  int
	Left int
}

// Viewport is a fixed-size window into the board. It never stores cell state.
type Viewport struct {
	size core.Size

	mu     sync.RWMutex
	offset Offset
}

// New creates a viewport of the given size at offset (0, 0). Non-positive
// dimensions fall back to the defaults.
func New(size core.Size) *Viewport {
	if size.W <= 0 {
		size.W = DefaultWidth
	}
	if size.H <= 0 {
		size.H = DefaultHeight
	}
	return &Viewport{size: size}
}

// Size returns the window dimensions.
func (v *Viewport) Size() core.Size { return v.size }

// Offset returns the current pan offset.
func (v *Viewport) Offset() Offset {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.offset
}

// Pan moves the window by PanStep cells. Up raises Top and Left raises Left,
// so "up" reveals rows with smaller indices.
func (v *Viewport) Pan(d core.Direction) {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch d {
	case core.Up:
		v.offset.Top += PanStep
	case core.Down:
		v.offset.Top -= PanStep
	case core.Left:
		v.offset.Left += PanStep
	case core.Right:
		v.offset.Left -= PanStep
	}
}

// ResetOffset returns the window to the origin.
func (v *Viewport) ResetOffset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset = Offset{}
}

// All calls yield with every visible coordinate in row-major order, stopping
// early if yield returns false. Each call starts from the top-left again.
func (v *Viewport) All(yield func(cell.Coord) bool) {
	All(v.Offset(), v.size, yield)
}

// Coordinates returns the visible coordinates in row-major order.
func (v *Viewport) Coordinates() []cell.Coord {
	return VisibleCoordinates(v.Offset(), v.size)
}

// VisibleAlive returns the visible coordinates for which alive reports true,
// in row-major order.
func (v *Viewport) VisibleAlive(alive func(cell.Coord) bool) []cell.Coord {
	var out []cell.Coord
	v.All(func(c cell.Coord) bool {
		if alive(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// ToLogical maps the window cell at column x, row y to its board coordinate.
func (v *Viewport) ToLogical(x, y int) (cell.Coord, bool) {
	if x < 0 || y < 0 || x >= v.size.W || y >= v.size.H {
		return cell.Coord{}, false
	}
	off := v.Offset()
	return cell.Coord{Row: y - off.Top, Col: x - off.Left}, true
}

// ToScreen maps a board coordinate to its window cell, if visible.
func (v *Viewport) ToScreen(c cell.Coord) (x, y int, ok bool) {
	off := v.Offset()
	x, y = c.Col+off.Left, c.Row+off.Top
	if x < 0 || y < 0 || x >= v.size.W || y >= v.size.H {
		return 0, 0, false
	}
	return x, y, true
}

// Raster writes 1 for alive and 0 for dead cells of the window into grid,
// which must match the viewport size.
func (v *Viewport) Raster(grid *core.ByteGrid, alive func(cell.Coord) bool) {
	if grid.W != v.size.W || grid.H != v.size.H {
		return
	}
	cells := grid.Cells()
	i := 0
	v.All(func(c cell.Coord) bool {
		if alive(c) {
			cells[i] = 1
		} else {
			cells[i] = 0
		}
		i++
		return true
	})
}

// All yields the logical coordinates covered by a window of the given size
// at off, row-major.
func All(off Offset, size core.Size, yield func(cell.Coord) bool) {
	for r := 0; r < size.H; r++ {
		for c := 0; c < size.W; c++ {
			if !yield(cell.Coord{Row: r - off.Top, Col: c - off.Left}) {
				return
			}
		}
	}
}

// VisibleCoordinates returns the logical coordinates covered by a window of
// the given size at off, row-major.
func VisibleCoordinates(off Offset, size core.Size) []cell.Coord {
	if size.W <= 0 || size.H <= 0 {
		return nil
	}
	out := make([]cell.Coord, 0, size.W*size.H)
	All(off, size, func(c cell.Coord) bool {
		out = append(out, c)
		return true
	})
	return out
}

// ParseDirection accepts "up", "down", "left" or "right", case-insensitively.
func ParseDirection(s string) (core.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return core.Up, nil
	case "down":
		return core.Down, nil
	case "left":
		return core.Left, nil
	case "right":
		return core.Right, nil
	}
	return 0, fmt.Errorf("unknown pan direction %q", s)
}
