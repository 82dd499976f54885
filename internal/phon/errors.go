package phon

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyWordform is returned by SyllabifyChecked for the empty wordform,
// which is valid but has no syllables.
var ErrEmptyWordform = errors.New("empty wordform has no syllables")

// InvalidWordformError is returned when a caller tries to commit a wordform
// that fails validation. Violations lists every broken rule.
type InvalidWordformError struct {
	Word       string
	Violations []Violation
}

func (e *InvalidWordformError) Error() string {
	if len(e.Violations) == 0 {
		return fmt.Sprintf("invalid wordform %q", e.Word)
	}
	rules := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		rules[i] = v.String()
	}
	return fmt.Sprintf("invalid wordform %q: %s", e.Word, strings.Join(rules, "; "))
}

// IsInvalidWordform returns true if err is or wraps an InvalidWordformError.
func IsInvalidWordform(err error) bool {
	var iw *InvalidWordformError
	return errors.As(err, &iw)
}
