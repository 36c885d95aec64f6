// Package dist provides the skewed random generators used to pick
// non-uniform I/O target offsets: Zipf (rank power law) and Pareto
// (heavy tail), each discretized onto a configurable range of
// indices.
package dist

import (
	"golang.org/x/exp/rand"
)

// A Substream is an independent, seedable uniform-fraction source.
// Each workload stream owns exactly one, so streams never interfere
// and a stream's draw sequence depends only on its own seed. Not
// safe for concurrent use; ownership belongs to a single stream.
type Substream struct {
	rng *rand.Rand
}

func NewSubstream(seed uint64) *Substream {
	return &Substream{rng: rand.New(rand.NewSource(seed))}
}

// Seed restarts the substream; the draw sequence after reseeding
// matches a fresh substream with the same seed.
func (s *Substream) Seed(seed uint64) {
	s.rng.Seed(seed)
}

// Fraction returns the next uniform value in [0, 1).
func (s *Substream) Fraction() float64 {
	return s.rng.Float64()
}
