package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/novan/internal/gen"
	"github.com/roach88/novan/internal/phon"
	"github.com/roach88/novan/internal/testutil"
)

// Harness is the test execution engine.
// It runs scenario steps against one alphabet with a logical clock.
type Harness struct {
	alpha   *phon.Alphabet
	weights gen.WeightMap
	seq     int64
	logger  *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
//  1. Parse the scenario weights
//  2. Check every case
//  3. Run every generate step with its own seeded generator
//  4. Return result with pass/fail, trace, and errors
//
// An error is returned only when the scenario cannot run at all, such as
// weights naming a symbol outside the alphabet.
func Run(scenario *Scenario) (*Result, error) {
	alpha := phon.Novan()

	weights, err := gen.ParseWeights(alpha, scenario.Weights)
	if err != nil {
		return nil, fmt.Errorf("failed to parse weights: %w", err)
	}

	h := &Harness{
		alpha:   alpha,
		weights: weights,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	result := NewResult()
	for i, c := range scenario.Cases {
		h.executeCase(i, c, result)
	}
	for i, step := range scenario.Generate {
		if err := h.executeGenerate(i, step, scenario.MaxAttempts, result); err != nil {
			return nil, fmt.Errorf("generate step %d: %w", i, err)
		}
	}
	return result, nil
}

// next returns the next logical sequence number.
func (h *Harness) next() int64 {
	h.seq++
	return h.seq
}

func (h *Harness) executeCase(i int, c Case, result *Result) {
	violations := h.alpha.Check(c.Word)
	valid := len(violations) == 0

	rules := make([]string, 0, len(violations))
	for _, v := range violations {
		rules = append(rules, string(v.Rule))
	}

	var syllables []string
	if valid && c.Word != "" {
		syllables = h.alpha.Syllabify(c.Word)
	}

	result.AddCheckTrace(c.Word, valid, rules, syllables, h.next())

	if c.Valid != nil && *c.Valid != valid {
		result.AddError(fmt.Sprintf("cases[%d] %q: valid = %v, want %v", i, c.Word, valid, *c.Valid))
	}
	if c.Violations != nil && !slices.Equal(rules, c.Violations) {
		result.AddError(fmt.Sprintf("cases[%d] %q: violations = %v, want %v", i, c.Word, rules, c.Violations))
	}
	if c.Syllables != nil && !slices.Equal(syllables, c.Syllables) {
		result.AddError(fmt.Sprintf("cases[%d] %q: syllables = %v, want %v", i, c.Word, syllables, c.Syllables))
	}
}

func (h *Harness) executeGenerate(i int, step GenerateStep, defaultAttempts int, result *Result) error {
	attempts := step.MaxAttempts
	if attempts == 0 {
		attempts = defaultAttempts
	}

	g, err := gen.NewFromWeights(h.alpha, h.weights,
		gen.WithRand(testutil.NewRand(step.Seed)),
		gen.WithMaxAttempts(attempts),
		gen.WithLogger(h.logger),
	)
	if err != nil {
		return err
	}

	forbidden := gen.NewWordSet(step.Forbidden...)
	var produced []string
	for k := 0; k < step.count(); k++ {
		word, err := g.Generate(step.Syllables, forbidden)
		outcome := outcomeOf(err)
		result.AddGenerateTrace(word, step.Syllables, outcome, h.next())

		if err != nil {
			if step.ExpectError == "" {
				result.AddError(fmt.Sprintf("generate[%d] draw %d: unexpected error: %v", i, k, err))
			} else if outcome != step.ExpectError {
				result.AddError(fmt.Sprintf("generate[%d] draw %d: outcome = %s, want %s", i, k, outcome, step.ExpectError))
			}
			continue
		}

		if !h.alpha.IsValid(word) {
			result.AddError(fmt.Sprintf("generate[%d] draw %d: %q is not a valid wordform", i, k, word))
		}
		if forbidden.Contains(word) {
			result.AddError(fmt.Sprintf("generate[%d] draw %d: %q is forbidden", i, k, word))
		}
		produced = append(produced, word)
		if step.AvoidPrevious {
			forbidden.Add(word)
		}
	}

	if step.Expect != nil && !slices.Equal(produced, step.Expect) {
		result.AddError(fmt.Sprintf("generate[%d]: produced %v, want %v", i, produced, step.Expect))
	}
	if step.ExpectError != "" && len(produced) == step.count() {
		result.AddError(fmt.Sprintf("generate[%d]: expected %s, every draw succeeded", i, step.ExpectError))
	}
	return nil
}

// outcomeOf maps a Generate error to its trace outcome code.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case gen.IsExhausted(err):
		return OutcomeExhausted
	case errors.Is(err, gen.ErrInvalidSyllableCount):
		return OutcomeInvalidSyllableCount
	case errors.Is(err, gen.ErrStaleWeights):
		return OutcomeStaleWeights
	default:
		return OutcomeError
	}
}
