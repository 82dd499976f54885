package gen

import (
	"fmt"
	"math"
	"sort"

	"github.com/roach88/novan/internal/phon"
)

// DefaultWeight is the weight every symbol starts with.
const DefaultWeight = 1.0

// DefaultPresetName names the generator created when none is stored.
const DefaultPresetName = "Custom"

// WeightMap assigns a non-negative weight to every symbol of an alphabet.
type WeightMap map[phon.Symbol]float64

// DefaultWeights returns a map with DefaultWeight for every symbol of a.
func DefaultWeights(a *phon.Alphabet) WeightMap {
	w := make(WeightMap, a.Len())
	for _, s := range a.Symbols() {
		w[s] = DefaultWeight
	}
	return w
}

// Clone returns an independent copy of w.
func (w WeightMap) Clone() WeightMap {
	out := make(WeightMap, len(w))
	for s, v := range w {
		out[s] = v
	}
	return out
}

// Strings returns w keyed by one-character strings, the form used in preset
// files and the store.
func (w WeightMap) Strings() map[string]float64 {
	out := make(map[string]float64, len(w))
	for s, v := range w {
		out[s.String()] = v
	}
	return out
}

// ParseWeights converts a string-keyed map into a WeightMap over a. Symbols
// missing from m get DefaultWeight.
func ParseWeights(a *phon.Alphabet, m map[string]float64) (WeightMap, error) {
	w := DefaultWeights(a)

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		sym, err := a.ParseSymbol(k)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnknownSymbol, err)
		}
		if err := checkWeight(sym, m[k]); err != nil {
			return nil, err
		}
		w[sym] = m[k]
	}
	return w, nil
}

func checkWeight(sym phon.Symbol, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %q = %v", ErrInvalidWeight, sym, v)
	}
	return nil
}

// Preset is a weight map stored under a generator name.
type Preset struct {
	Name    string
	Weights WeightMap
}

// WordSet is a set of wordforms, used as the forbidden set of Generate.
// The zero value is an empty set.
type WordSet map[string]struct{}

// NewWordSet returns a set holding words.
func NewWordSet(words ...string) WordSet {
	s := make(WordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Add inserts w.
func (s WordSet) Add(w string) {
	s[w] = struct{}{}
}

// Contains reports whether w is in the set.
func (s WordSet) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

// Words returns the members in sorted order.
func (s WordSet) Words() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
