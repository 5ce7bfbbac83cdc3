package market

import (
	"hash/fnv"
	"math/rand"
)

// Stream produces a deterministic sequence of uniform deviates in [0,1)
// from an integer seed. Two streams built with the same seed and called
// the same number of times yield identical sequences.
//
// A Stream is not safe for concurrent use; each generation call owns a
// private instance.
type Stream struct {
	rng *rand.Rand
}

// NewStream creates a stream seeded with the given value.
func NewStream(seed int64) *Stream {
	return &Stream{rng: rand.New(rand.NewSource(seed))}
}

// Float64 returns the next uniform deviate in [0,1).
func (s *Stream) Float64() float64 { return s.rng.Float64() }

// Signed returns the next deviate scaled into [-1,1).
func (s *Stream) Signed() float64 { return s.rng.Float64()*2 - 1 }

// Range returns the next deviate scaled into [lo,hi).
func (s *Stream) Range(lo, hi float64) float64 { return lo + s.rng.Float64()*(hi-lo) }

// SeedFor derives a stable per-symbol seed from a base seed. Used by
// multi-symbol generation so each symbol's path is independent of the
// symbol set and of iteration order.
func SeedFor(symbol string, base int64) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	return base + int64(h.Sum32())
}
