package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/novan/internal/lexicon"
	"github.com/roach88/novan/internal/phon"
)

// SyllableSeparator joins syllables in text output.
const SyllableSeparator = "|"

// WordCheck is the validation result of one wordform.
type WordCheck struct {
	Word       string           `json:"word"`
	Valid      bool             `json:"valid"`
	Violations []phon.Violation `json:"violations,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool        `json:"valid"`
	Words []WordCheck `json:"words"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <word>...",
		Short: "Check wordforms against the phonotactic rules",
		Long: `Check each wordform against the Novan phonotactic rules and report
every rule it breaks.

Input is normalized (NFC, trimmed, lower-cased) before checking.

Exit codes:
  0 - All wordforms valid
  1 - One or more wordforms invalid

Examples:
  novan validate natal kitanu
  novan validate hh --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, words []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	alpha := phon.Novan()

	result := ValidationResult{Valid: true, Words: make([]WordCheck, 0, len(words))}
	invalid := 0
	for _, raw := range words {
		w := lexicon.NormalizeWordform(raw)
		check := WordCheck{Word: w, Violations: alpha.Check(w)}
		check.Valid = len(check.Violations) == 0
		if !check.Valid {
			result.Valid = false
			invalid++
		}
		formatter.VerboseLog("checked %q: %d violation(s)", w, len(check.Violations))
		result.Words = append(result.Words, check)
	}

	if formatter.IsJSON() {
		if result.Valid {
			return formatter.Success(result)
		}
		if err := formatter.Failure(ErrCodeInvalidWordform, fmt.Sprintf("%d invalid wordform(s)", invalid), result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d invalid wordform(s)", invalid))
	}

	w := formatter.Writer
	for _, check := range result.Words {
		if check.Valid {
			fmt.Fprintf(w, "✓ %s\n", check.Word)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", check.Word)
		for _, v := range check.Violations {
			fmt.Fprintf(w, "  %s: %s (at %d)\n", v.Rule, v.Message, v.Pos)
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d invalid wordform(s)", invalid))
	}
	return nil
}

// SyllabifiedWord is the syllabification of one wordform.
type SyllabifiedWord struct {
	Word      string   `json:"word"`
	Syllables []string `json:"syllables,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// NewSyllabifyCommand creates the syllabify command.
func NewSyllabifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "syllabify <word>...",
		Short: "Split valid wordforms into syllables",
		Long: `Split each wordform into syllables, printed joined by "|".

Wordforms are validated first; invalid or empty ones are reported and
make the command exit with status 1.

Examples:
  novan syllabify kitanu     # ki|ta|nu
  novan syllabify aeo ostal  # a|e|o  os|tal`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSyllabify(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runSyllabify(opts *RootOptions, words []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	alpha := phon.Novan()

	results := make([]SyllabifiedWord, 0, len(words))
	failed := 0
	for _, raw := range words {
		w := lexicon.NormalizeWordform(raw)
		sw := SyllabifiedWord{Word: w}

		syllables, err := alpha.SyllabifyChecked(w)
		if err != nil {
			sw.Error = err.Error()
			failed++
		} else {
			sw.Syllables = syllables
		}
		results = append(results, sw)
	}

	if formatter.IsJSON() {
		if failed == 0 {
			return formatter.Success(results)
		}
		if err := formatter.Failure(ErrCodeInvalidWordform, fmt.Sprintf("%d wordform(s) could not be syllabified", failed), results); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d wordform(s) could not be syllabified", failed))
	}

	w := formatter.Writer
	for _, sw := range results {
		if sw.Error != "" {
			fmt.Fprintf(w, "✗ %s\n", sw.Error)
			continue
		}
		fmt.Fprintln(w, strings.Join(sw.Syllables, SyllableSeparator))
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d wordform(s) could not be syllabified", failed))
	}
	return nil
}
