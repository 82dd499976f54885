package gen

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// NewSeed returns a high-entropy seed from crypto/rand, falling back to the
// wall clock if the system source fails.
func NewSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// rngFromSeed returns a deterministic *rand.Rand for seed. Seed 0 means
// "pick one": a fresh seed from NewSeed is used.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = NewSeed()
	}
	return rand.New(rand.NewSource(seed))
}
