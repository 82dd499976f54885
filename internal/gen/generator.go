package gen

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/roach88/novan/internal/phon"
)

// DefaultMaxAttempts bounds the rejection-sampling loop of Generate.
const DefaultMaxAttempts = 100000

// State tells whether the probability table matches the weight map.
type State uint8

const (
	// Fresh means the probability table reflects the current weights.
	Fresh State = iota
	// Dirty means weights changed and Recompute has not run yet.
	Dirty
)

func (s State) String() string {
	if s == Dirty {
		return "dirty"
	}
	return "fresh"
}

// Generator draws random wordforms from the syllable inventory, biased by a
// per-symbol weight map.
//
// Mutating the weights marks the generator Dirty. Generate and Probabilities
// refuse to run until Recompute rebuilds the table and marks it Fresh again.
//
// Thread-safety: all methods serialize on an internal mutex, so one
// Generator may be shared. Its random source is private to it.
type Generator struct {
	mu sync.Mutex

	alpha *phon.Alphabet
	inv   *phon.Inventory

	weights    WeightMap
	probs      []float64 // per inventory entry
	cumulative []float64 // running sum of probs, scaled to stay finite
	state      State

	maxAttempts int
	rng         *rand.Rand
	logger      *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithMaxAttempts sets the number of candidates Generate draws before
// returning an *ExhaustedError. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n >= 1 {
			g.maxAttempts = n
		}
	}
}

// WithSeed makes the generator deterministic. Seed 0 picks a random seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rngFromSeed(seed)
	}
}

// WithRand installs r as the random source. r must not be shared with
// other goroutines.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithLogger sets the logger used for debug output. Generators are silent
// by default.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a generator over a with every weight at DefaultWeight.
// The returned generator is Fresh.
func New(a *phon.Alphabet, opts ...Option) *Generator {
	g := &Generator{
		alpha:       a,
		inv:         a.Inventory(),
		weights:     DefaultWeights(a),
		maxAttempts: DefaultMaxAttempts,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rngFromSeed(0)
	}
	g.recompute()
	return g
}

// NewFromWeights creates a generator with the given weights. Symbols absent
// from w keep DefaultWeight. The returned generator is Fresh.
func NewFromWeights(a *phon.Alphabet, w WeightMap, opts ...Option) (*Generator, error) {
	g := New(a, opts...)
	if err := g.SetWeights(w); err != nil {
		return nil, err
	}
	g.Recompute()
	return g, nil
}

// Alphabet returns the alphabet the generator draws from.
func (g *Generator) Alphabet() *phon.Alphabet {
	return g.alpha
}

// State reports whether the probability table is up to date.
func (g *Generator) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// MaxAttempts returns the attempt cap of Generate.
func (g *Generator) MaxAttempts() int {
	return g.maxAttempts
}

// Weight returns the weight of s.
func (g *Generator) Weight(s phon.Symbol) (float64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	v, ok := g.weights[s]
	return v, ok
}

// Weights returns a copy of the weight map.
func (g *Generator) Weights() WeightMap {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.weights.Clone()
}

// SetWeight changes the weight of one symbol and marks the generator Dirty.
func (g *Generator) SetWeight(s phon.Symbol, v float64) error {
	if !g.alpha.Contains(s) {
		return fmt.Errorf("%w: %q", ErrUnknownSymbol, s)
	}
	if err := checkWeight(s, v); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.weights[s] = v
	g.state = Dirty
	return nil
}

// SetWeights applies every entry of w. Nothing is changed if any entry is
// rejected.
func (g *Generator) SetWeights(w WeightMap) error {
	for s, v := range w {
		if !g.alpha.Contains(s) {
			return fmt.Errorf("%w: %q", ErrUnknownSymbol, s)
		}
		if err := checkWeight(s, v); err != nil {
			return err
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for s, v := range w {
		g.weights[s] = v
	}
	g.state = Dirty
	return nil
}

// Recompute rebuilds the per-syllable probability table from the current
// weights and marks the generator Fresh.
func (g *Generator) Recompute() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.recompute()
}

func (g *Generator) recompute() {
	n := g.inv.Len()
	if g.probs == nil {
		g.probs = make([]float64, n)
		g.cumulative = make([]float64, n)
	}

	// Sampling depends only on ratios, so the cumulative table is built from
	// weights divided by the largest one. Every scaled product is then at
	// most 1 and the total cannot overflow.
	scale := 0.0
	for _, v := range g.weights {
		scale = max(scale, v)
	}

	total := 0.0
	for i := 0; i < n; i++ {
		syl := g.inv.At(i)
		g.probs[i] = g.probability(syl)
		if scale > 0 {
			p := 1.0
			for _, r := range syl {
				p *= g.weights[phon.Symbol(r)] / scale
			}
			total += p
		}
		g.cumulative[i] = total
	}
	g.state = Fresh

	g.logger.Debug("recomputed syllable weights", "syllables", n, "total", total)
}

// Probability returns the product of the weights of every symbol in syl.
// Symbols outside the alphabet count as weight 0.
//
// The value comes from the weight map, not from the probability table, so
// it reflects uncommitted changes.
func (g *Generator) Probability(syl string) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.probability(syl)
}

func (g *Generator) probability(syl string) float64 {
	p := 1.0
	for _, r := range syl {
		p *= g.weights[phon.Symbol(r)]
	}
	return p
}

// Probabilities returns a copy of the per-syllable table, in inventory
// order. It fails with ErrStaleWeights when the generator is Dirty.
func (g *Generator) Probabilities() ([]float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == Dirty {
		return nil, ErrStaleWeights
	}
	return append([]float64(nil), g.probs...), nil
}

// Generate draws n syllables with replacement, weighted by the probability
// table, and concatenates them. Candidates that are invalid or forbidden are
// discarded and a fresh set of syllables is drawn.
//
// After MaxAttempts rejected candidates, or immediately if every syllable has
// probability 0, Generate returns an *ExhaustedError.
func (g *Generator) Generate(n int, forbidden WordSet) (string, error) {
	if n < 1 {
		return "", ErrInvalidSyllableCount
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == Dirty {
		return "", ErrStaleWeights
	}

	total := g.cumulative[len(g.cumulative)-1]
	if total <= 0 {
		g.logger.Debug("generation impossible", "syllables", n, "reason", "zero total weight")
		return "", &ExhaustedError{Syllables: n, Limit: g.maxAttempts, Forbidden: len(forbidden), ZeroTotal: true}
	}

	var b strings.Builder
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		b.Reset()
		for k := 0; k < n; k++ {
			b.WriteString(g.inv.At(g.draw(total)))
		}
		candidate := b.String()

		if candidate == "" || !g.alpha.IsValid(candidate) || forbidden.Contains(candidate) {
			continue
		}

		g.logger.Debug("generated wordform", "wordform", candidate, "syllables", n, "attempts", attempt)
		return candidate, nil
	}

	g.logger.Debug("generation exhausted", "syllables", n, "attempts", g.maxAttempts, "forbidden", len(forbidden))
	return "", &ExhaustedError{
		Syllables: n,
		Attempts:  g.maxAttempts,
		Limit:     g.maxAttempts,
		Forbidden: len(forbidden),
	}
}

// draw returns the inventory index of one weighted sample. Entries that add
// nothing to the cumulative table are never returned.
func (g *Generator) draw(total float64) int {
	x := g.rng.Float64() * total
	i := sort.Search(len(g.cumulative), func(i int) bool {
		return g.cumulative[i] > x
	})
	if i == len(g.cumulative) {
		// rounding pushed x onto total; take the last drawable entry
		for i = len(g.cumulative) - 1; i > 0 && g.cumulative[i] == g.cumulative[i-1]; i-- {
		}
	}
	return i
}
