package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/novan/internal/phon"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Weights overrides generator weights by symbol. Missing symbols keep
	// the default weight.
	Weights map[string]float64 `yaml:"weights,omitempty"`

	// MaxAttempts is the attempt cap of every generate step that does not
	// set its own. Zero means gen.DefaultMaxAttempts.
	MaxAttempts int `yaml:"max_attempts,omitempty"`

	// Cases are wordforms to check and syllabify.
	Cases []Case `yaml:"cases,omitempty"`

	// Generate are generation steps, run after the cases.
	Generate []GenerateStep `yaml:"generate,omitempty"`
}

// Case checks one wordform.
type Case struct {
	Word string `yaml:"word"`

	// Valid is the expected validity. Nil means not checked.
	Valid *bool `yaml:"valid,omitempty"`

	// Violations are the expected rule codes, in scan order.
	Violations []string `yaml:"violations,omitempty"`

	// Syllables is the expected syllabification of a valid wordform.
	Syllables []string `yaml:"syllables,omitempty"`
}

// GenerateStep draws Count wordforms from one seeded generator.
type GenerateStep struct {
	Syllables   int      `yaml:"syllables"`
	Seed        int64    `yaml:"seed,omitempty"`
	Count       int      `yaml:"count,omitempty"` // default 1
	MaxAttempts int      `yaml:"max_attempts,omitempty"`
	Forbidden   []string `yaml:"forbidden,omitempty"`

	// AvoidPrevious adds every generated wordform to the forbidden set of
	// the following draws, the way a growing lexicon does.
	AvoidPrevious bool `yaml:"avoid_previous,omitempty"`

	// Expect lists the exact wordforms the step must produce.
	Expect []string `yaml:"expect,omitempty"`

	// ExpectError is the outcome every draw after the successful ones must
	// end with, e.g. "exhausted". Empty means every draw must succeed.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Outcome codes recorded in the trace for generate events.
const (
	OutcomeOK                   = "ok"
	OutcomeExhausted            = "exhausted"
	OutcomeInvalidSyllableCount = "invalid_syllable_count"
	OutcomeStaleWeights         = "stale_weights"
	OutcomeError                = "error"
)

var knownOutcomes = map[string]bool{
	OutcomeExhausted:            true,
	OutcomeInvalidSyllableCount: true,
	OutcomeStaleWeights:         true,
	OutcomeError:                true,
}

var knownRules = map[string]bool{
	string(phon.RuleUnknownSymbol):    true,
	string(phon.RuleSingleConsonant):  true,
	string(phon.RuleIncompatiblePair): true,
	string(phon.RuleConsonantRun):     true,
	string(phon.RuleInitialCluster):   true,
	string(phon.RuleFinalCluster):     true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Cases) == 0 && len(s.Generate) == 0 {
		return fmt.Errorf("at least one case or generate step is required")
	}

	if s.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts must not be negative")
	}

	for i, c := range s.Cases {
		if c.Valid == nil && c.Violations == nil && c.Syllables == nil {
			return fmt.Errorf("cases[%d]: one of valid, violations or syllables is required", i)
		}
		for _, rule := range c.Violations {
			if !knownRules[rule] {
				return fmt.Errorf("cases[%d]: unknown rule %q", i, rule)
			}
		}
	}

	for i, g := range s.Generate {
		if g.Count < 0 {
			return fmt.Errorf("generate[%d]: count must not be negative", i)
		}
		if g.MaxAttempts < 0 {
			return fmt.Errorf("generate[%d]: max_attempts must not be negative", i)
		}
		if g.ExpectError != "" && !knownOutcomes[g.ExpectError] {
			return fmt.Errorf("generate[%d]: unknown expect_error %q", i, g.ExpectError)
		}
		if count := g.count(); len(g.Expect) > count {
			return fmt.Errorf("generate[%d]: expects %d wordforms but count is %d", i, len(g.Expect), count)
		}
	}

	return nil
}

func (g GenerateStep) count() int {
	if g.Count == 0 {
		return 1
	}
	return g.Count
}
