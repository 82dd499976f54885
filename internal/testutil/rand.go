package testutil

import "math/rand"

// DefaultSeed is used when a test asks for seed 0.
const DefaultSeed int64 = 1

// NewRand returns a deterministic *rand.Rand. Seed 0 maps to DefaultSeed so
// a zero-valued fixture still produces a reproducible stream.
//
// The returned source is not safe for concurrent use.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}
