package reward

import (
	"math/rand"
)

// Sampler performs weighted random draws over a pool. Two independent
// samplers exist in practice: one over the real-reward pool and one over the
// decorative display pool.
type Sampler struct {
	entries []Entry
	total   int
	rng     func(int) int // returns uniform value in [0, n); injectable for testing
}

// NewSampler creates a Sampler over the given pool. Entries with
// non-positive weight are skipped.
func NewSampler(pool []Entry) *Sampler {
	s := &Sampler{
		rng: func(n int) int { return rand.Intn(n) }, //nolint:gosec // game outcome randomness, not security critical
	}
	for _, e := range pool {
		if e.Weight <= 0 {
			continue
		}
		s.entries = append(s.entries, e)
		s.total += e.Weight
	}
	return s
}

// Draw returns one weighted entry: a uniform roll in [0, total weight) picks
// the first entry whose cumulative weight exceeds the roll.
func (s *Sampler) Draw() Entry {
	if len(s.entries) == 0 {
		return Entry{}
	}

	roll := s.rng(s.total)

	cumulative := 0
	for _, e := range s.entries {
		cumulative += e.Weight
		if roll < cumulative {
			return e
		}
	}

	// Fallback (should never happen)
	return s.entries[len(s.entries)-1]
}

// TotalWeight returns the sum of usable entry weights.
func (s *Sampler) TotalWeight() int {
	return s.total
}
