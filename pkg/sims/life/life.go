package life

import (
	"slices"
	"sync"

	"lifeboard/pkg/core"
)

// neighborhood lists the Moore offsets as (dRow, dCol).
var neighborhood = [8][2]int{
	{-1, -1}, {1, 1}, {1, -1}, {-1, 1},
	{0, -1}, {0, 1}, {-1, 0}, {1, 0},
}

// seed is the pattern loaded by Reset.
var seed = []core.Coord{
	core.MustDecode("11,22"), core.MustDecode("10,22"), core.MustDecode("11,23"),
	core.MustDecode("11,24"), core.MustDecode("9,23"), core.MustDecode("10,10"),
	core.MustDecode("10,11"), core.MustDecode("10,12"), core.MustDecode("11,10"),
}

// Set is a sparse set of live cells.
type Set map[core.Coord]struct{}

// NewSet builds a Set from the given coordinates, collapsing duplicates.
func NewSet(cells ...core.Coord) Set {
	s := make(Set, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether c is in the set.
func (s Set) Has(c core.Coord) bool {
	_, ok := s[c]
	return ok
}

// Sorted returns the members in row-major order.
func (s Set) Sorted() []core.Coord {
	out := make([]core.Coord, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	slices.SortFunc(out, core.Compare)
	return out
}

// Equal reports whether both sets hold exactly the same coordinates.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for c := range s {
		if !o.Has(c) {
			return false
		}
	}
	return true
}

// NextGeneration applies Conway's rule to alive and returns a new set. Only
// cells with at least one live neighbor are considered, so the cost tracks
// the population rather than any bounding box.
func NextGeneration(alive Set) Set {
	counts := make(map[core.Coord]int, len(alive)*4)
	for c := range alive {
		for _, d := range neighborhood {
			counts[c.Add(d[0], d[1])]++
		}
	}
	next := make(Set, len(alive))
	for c, n := range counts {
		if n == 3 || (n == 2 && alive.Has(c)) {
			next[c] = struct{}{}
		}
	}
	return next
}

// Engine owns the live-cell set of an unbounded Game of Life board. All
// methods are safe for concurrent use; readers never see a half-built
// generation.
type Engine struct {
	mu         sync.RWMutex
	alive      Set
	generation uint64
}

// New returns an empty engine.
func New() *Engine {
	return &Engine{alive: Set{}}
}

// NewFrom returns an engine whose board holds exactly cells.
func NewFrom(cells ...core.Coord) *Engine {
	return &Engine{alive: NewSet(cells...)}
}

// Toggle flips the state of c.
func (e *Engine) Toggle(c core.Coord) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.alive.Has(c) {
		delete(e.alive, c)
		return
	}
	e.alive[c] = struct{}{}
}

// Set forces c alive or dead.
func (e *Engine) Set(c core.Coord, alive bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if alive {
		e.alive[c] = struct{}{}
		return
	}
	delete(e.alive, c)
}

// Clear kills every cell and resets the generation counter.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.alive = Set{}
	e.generation = 0
}

// Reset clears the board and loads the seed pattern.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.alive = NewSet(seed...)
	e.generation = 0
}

// Load replaces the board with cells without touching the generation count.
func (e *Engine) Load(cells ...core.Coord) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.alive = NewSet(cells...)
}

// Step advances the board by one generation and returns the new live cells
// in row-major order.
func (e *Engine) Step() []core.Coord {
	e.mu.Lock()
	next := NextGeneration(e.alive)
	e.alive = next
	e.generation++
	out := next.Sorted()
	e.mu.Unlock()
	return out
}

// IsAlive reports whether c is currently alive.
func (e *Engine) IsAlive(c core.Coord) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.alive.Has(c)
}

// Alive returns a row-major snapshot of the live cells.
func (e *Engine) Alive() []core.Coord {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.alive.Sorted()
}

// Snapshot returns a copy of the live-cell set.
func (e *Engine) Snapshot() Set {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(Set, len(e.alive))
	for c := range e.alive {
		out[c] = struct{}{}
	}
	return out
}

// Keys returns the canonical keys of the live cells in row-major order.
func (e *Engine) Keys() []string {
	cells := e.Alive()
	keys := make([]string, len(cells))
	for i, c := range cells {
		keys[i] = c.Key()
	}
	return keys
}

// Population returns the number of live cells.
func (e *Engine) Population() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.alive)
}

// Generation counts steps since the last Clear or Reset.
func (e *Engine) Generation() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.generation
}
