package gen

import (
	"errors"
	"fmt"
)

var (
	// ErrGenerationExhausted is matched (via errors.Is) by every *ExhaustedError.
	ErrGenerationExhausted = errors.New("generation exhausted")

	// ErrStaleWeights is returned when the weight map changed since the last
	// Recompute. The probability table is never refreshed implicitly.
	ErrStaleWeights = errors.New("weights changed since last recompute")

	// ErrInvalidSyllableCount is returned for a syllable count below 1.
	ErrInvalidSyllableCount = errors.New("syllable count must be at least 1")

	// ErrInvalidWeight is returned for negative, NaN or infinite weights.
	ErrInvalidWeight = errors.New("weight must be a finite non-negative number")

	// ErrUnknownSymbol is returned when a weight names a symbol outside the
	// alphabet.
	ErrUnknownSymbol = errors.New("unknown symbol")
)

// ExhaustedError is returned when Generate gives up without finding an
// acceptable wordform.
//
// This happens when the weights leave no valid, non-forbidden wordform of the
// requested length, or when such wordforms are too unlikely to be drawn
// within the attempt limit. There is no fallback wordform; callers may retry
// with other weights or a smaller forbidden set.
type ExhaustedError struct {
	Syllables int  // requested syllable count
	Attempts  int  // candidates drawn
	Limit     int  // attempt cap in effect
	Forbidden int  // size of the forbidden set
	ZeroTotal bool // every inventory syllable had probability 0
}

func (e *ExhaustedError) Error() string {
	if e.ZeroTotal {
		return fmt.Sprintf("%v: every syllable has probability 0 (syllables=%d)", ErrGenerationExhausted, e.Syllables)
	}
	return fmt.Sprintf("%v: no acceptable wordform after %d attempts (syllables=%d, limit=%d, forbidden=%d)",
		ErrGenerationExhausted, e.Attempts, e.Syllables, e.Limit, e.Forbidden)
}

// Is makes errors.Is(err, ErrGenerationExhausted) succeed.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrGenerationExhausted
}

// IsExhausted returns true if the error is a generation exhausted error.
// Uses errors.As to handle wrapped errors.
func IsExhausted(err error) bool {
	var ee *ExhaustedError
	return errors.As(err, &ee)
}
