package phon

import "fmt"

// Rule identifies a phonotactic rule a wordform can break.
type Rule string

const (
	RuleUnknownSymbol    Rule = "unknown_symbol"
	RuleSingleConsonant  Rule = "single_consonant"
	RuleIncompatiblePair Rule = "incompatible_pair"
	RuleConsonantRun     Rule = "consonant_run"
	RuleInitialCluster   Rule = "initial_cluster"
	RuleFinalCluster     Rule = "final_cluster"
)

// Violation describes one broken rule. Pos is the index (in symbols, not
// bytes) of the first symbol involved.
type Violation struct {
	Rule    Rule   `json:"rule"`
	Pos     int    `json:"pos"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s at %d: %s", v.Rule, v.Pos, v.Message)
}

// IsValid reports whether word is a well-formed Novan wordform.
// The empty wordform is valid.
func (a *Alphabet) IsValid(word string) bool {
	return len(a.check([]rune(word), false)) == 0
}

// Check returns every rule word breaks, in scan order. A nil result means
// the wordform is valid.
func (a *Alphabet) Check(word string) []Violation {
	return a.check([]rune(word), true)
}

// Validate returns an *InvalidWordformError when word is not valid.
func (a *Alphabet) Validate(word string) error {
	if vs := a.Check(word); len(vs) > 0 {
		return &InvalidWordformError{Word: word, Violations: vs}
	}
	return nil
}

// check runs every rule over w. When all is false it stops at the first
// violation.
func (a *Alphabet) check(w []rune, all bool) []Violation {
	var out []Violation
	report := func(rule Rule, pos int, format string, args ...any) bool {
		out = append(out, Violation{Rule: rule, Pos: pos, Message: fmt.Sprintf(format, args...)})
		return !all
	}

	for i, r := range w {
		if !a.Contains(Symbol(r)) {
			if report(RuleUnknownSymbol, i, "%q is not in the alphabet", r) {
				return out
			}
		}
	}

	if len(w) == 1 && a.IsConsonant(Symbol(w[0])) {
		if report(RuleSingleConsonant, 0, "a lone consonant %q is not a wordform", w[0]) {
			return out
		}
	}

	for i := 0; i+1 < len(w); i++ {
		if !a.Compatible(Symbol(w[i]), Symbol(w[i+1])) {
			if report(RuleIncompatiblePair, i, "%q cannot be followed by %q", w[i], w[i+1]) {
				return out
			}
		}
	}

	for i := 0; i+2 < len(w); i++ {
		if a.IsConsonant(Symbol(w[i])) && a.IsConsonant(Symbol(w[i+1])) && a.IsConsonant(Symbol(w[i+2])) {
			if report(RuleConsonantRun, i, "three consonants in a row %q", string(w[i:i+3])) {
				return out
			}
		}
	}

	if n := len(w); n >= 2 {
		if a.IsConsonant(Symbol(w[0])) && a.IsConsonant(Symbol(w[1])) {
			if report(RuleInitialCluster, 0, "wordform starts with two consonants %q", string(w[:2])) {
				return out
			}
		}
		if a.IsConsonant(Symbol(w[n-2])) && a.IsConsonant(Symbol(w[n-1])) {
			if report(RuleFinalCluster, n-2, "wordform ends with two consonants %q", string(w[n-2:])) {
				return out
			}
		}
	}

	return out
}
