package core

import "math/rand/v2"

// RNG is a thin wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Intn returns a value in [-span, span].
func (r *RNG) Intn(span int) int {
	if span <= 0 {
		return 0
	}
	return r.r.IntN(2*span+1) - span
}

// Int returns an arbitrary int across the full range, negatives included.
func (r *RNG) Int() int {
	return int(r.r.Uint64())
}

// Coord returns a coordinate with both components in [-span, span].
func (r *RNG) Coord(span int) Coord {
	return Coord{Row: r.Intn(span), Col: r.Intn(span)}
}

// Soup returns n coordinates scattered within [-span, span]. Duplicates are
// possible, which is useful when exercising set semantics.
func (r *RNG) Soup(n, span int) []Coord {
	out := make([]Coord, n)
	for i := range out {
		out[i] = r.Coord(span)
	}
	return out
}
