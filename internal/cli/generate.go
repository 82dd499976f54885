package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/novan/internal/gen"
	"github.com/roach88/novan/internal/lexicon"
	"github.com/roach88/novan/internal/phon"
	"github.com/roach88/novan/internal/preset"
	"github.com/roach88/novan/internal/store"
)

// Generator sources reported by resolveGenerator.
const (
	SourceDatabase = "database"
	SourcePresets  = "presets"
	SourceDefault  = "default"
)

// resolveGenerator finds the weight preset called name: first in the
// database, then in the configured presets file, and finally the built-in
// default preset. The returned error wraps store.ErrNotFound when no source
// knows the name.
func resolveGenerator(ctx context.Context, s *session, name string) (gen.Preset, string, error) {
	p, err := s.store.Generator(ctx, name)
	if err == nil {
		return p, SourceDatabase, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return gen.Preset{}, "", err
	}

	if s.cfg.Presets != "" {
		presets, err := preset.Load(s.cfg.Presets)
		if err != nil {
			return gen.Preset{}, "", err
		}
		for _, p := range presets {
			if p.Name == name {
				s.logger.Debug("generator from presets file", "name", name, "path", s.cfg.Presets)
				return p, SourcePresets, nil
			}
		}
	}

	if name == gen.DefaultPresetName {
		return preset.Default(), SourceDefault, nil
	}
	return gen.Preset{}, "", fmt.Errorf("generator %q: %w", name, store.ErrNotFound)
}

// reportResolveError writes a resolveGenerator failure with the right codes.
func reportResolveError(out *OutputFormatter, name string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fail(out, ExitCommandError, ErrCodeNotFound, fmt.Sprintf("generator %q not found", name), nil)
	}
	if errors.Is(err, preset.ErrUnsupportedFormat) {
		return fail(out, ExitCommandError, ErrCodePreset, "failed to load presets", err)
	}
	return fail(out, ExitCommandError, ErrCodeStore, "failed to load generator", err)
}

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Syllables    int      // 0 means the configured default
	Generator    string   // empty means the configured default
	Count        int      // wordforms to produce
	Seed         int64    // only used when the flag is set
	MaxAttempts  int      // 0 means the configured default
	AvoidLexicon bool     // forbid wordforms already in the lexicon
	Unique       bool     // forbid repeats within this run
	Forbid       []string // extra forbidden wordforms
}

// GeneratedWord is one generated wordform with its syllables.
type GeneratedWord struct {
	Word      string   `json:"word"`
	Syllables []string `json:"syllables"`
}

// GenerateResult is the output of the generate command.
type GenerateResult struct {
	Generator string          `json:"generator"`
	Source    string          `json:"source"`
	Syllables int             `json:"syllables"`
	Seed      int64           `json:"seed"`
	Words     []GeneratedWord `json:"words"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random valid wordforms",
		Long: `Generate wordforms by drawing syllables from the inventory, weighted
by a generator's per-symbol weights.

Only valid wordforms are produced. Wordforms in the forbidden set
(--forbid, plus the lexicon with --avoid-lexicon) are never returned.
When no acceptable wordform turns up within --max-attempts candidates
the command fails with exit status 1.

The seed is printed with --verbose (and always in JSON output) so a
run can be reproduced with --seed.

Examples:
  novan generate -n 2 -c 10
  novan generate -g Harsh --avoid-lexicon --unique -c 20
  novan generate --seed 42 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Syllables, "syllables", "n", 0, "syllables per wordform (default from config)")
	cmd.Flags().StringVarP(&opts.Generator, "generator", "g", "", "generator name (default from config)")
	cmd.Flags().IntVarP(&opts.Count, "count", "c", 1, "number of wordforms")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().IntVar(&opts.MaxAttempts, "max-attempts", 0, "candidates per wordform before giving up (default from config)")
	cmd.Flags().BoolVar(&opts.AvoidLexicon, "avoid-lexicon", false, "never produce wordforms already in the lexicon")
	cmd.Flags().BoolVar(&opts.Unique, "unique", false, "never produce the same wordform twice in one run")
	cmd.Flags().StringSliceVar(&opts.Forbid, "forbid", nil, "wordforms never to produce")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	s, err := openSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := commandContext(cmd)

	if opts.Count < 1 {
		return fail(s.out, ExitCommandError, ErrCodeInvalidArgument, fmt.Sprintf("count must be at least 1, got %d", opts.Count), nil)
	}

	name := firstNonEmpty(opts.Generator, s.cfg.Generator)
	syllables := opts.Syllables
	if syllables == 0 {
		syllables = s.cfg.Syllables
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = s.cfg.MaxAttempts
	}
	seed := s.cfg.Seed
	if cmd.Flags().Changed("seed") {
		seed = opts.Seed
	}
	if seed == 0 {
		seed = gen.NewSeed()
	}
	s.out.VerboseLog("seed: %d", seed)

	p, source, err := resolveGenerator(ctx, s, name)
	if err != nil {
		return reportResolveError(s.out, name, err)
	}

	alpha := phon.Novan()
	g, err := gen.NewFromWeights(alpha, p.Weights,
		gen.WithSeed(seed),
		gen.WithMaxAttempts(maxAttempts),
		gen.WithLogger(s.logger),
	)
	if err != nil {
		return fail(s.out, ExitCommandError, ErrCodeInvalidWeight, fmt.Sprintf("generator %q", name), err)
	}

	forbidden := gen.NewWordSet()
	for _, w := range opts.Forbid {
		forbidden.Add(lexicon.NormalizeWordform(w))
	}
	if opts.AvoidLexicon {
		words, err := s.store.Wordforms(ctx)
		if err != nil {
			return fail(s.out, ExitCommandError, ErrCodeStore, "failed to read lexicon", err)
		}
		for w := range words {
			forbidden.Add(w)
		}
		s.logger.Debug("avoiding lexicon", "wordforms", len(words))
	}

	result := GenerateResult{
		Generator: p.Name,
		Source:    source,
		Syllables: syllables,
		Seed:      seed,
		Words:     make([]GeneratedWord, 0, opts.Count),
	}

	var genErr error
	for i := 0; i < opts.Count; i++ {
		word, err := g.Generate(syllables, forbidden)
		if err != nil {
			genErr = err
			break
		}
		result.Words = append(result.Words, GeneratedWord{Word: word, Syllables: alpha.Syllabify(word)})
		if opts.Unique {
			forbidden.Add(word)
		}
	}

	if genErr != nil {
		return reportGenerateError(s.out, result, genErr)
	}

	if s.out.IsJSON() {
		return s.out.Success(result)
	}
	writeGenerated(s.out, result)
	return nil
}

func writeGenerated(out *OutputFormatter, result GenerateResult) {
	for _, w := range result.Words {
		if out.Verbose {
			fmt.Fprintf(out.Writer, "%s\t%s\n", w.Word, strings.Join(w.Syllables, SyllableSeparator))
			continue
		}
		fmt.Fprintln(out.Writer, w.Word)
	}
}

// reportGenerateError prints what was produced before the failure, then the
// failure itself.
func reportGenerateError(out *OutputFormatter, result GenerateResult, err error) error {
	code, exit := ErrCodeGeneric, ExitCommandError
	switch {
	case gen.IsExhausted(err):
		code, exit = ErrCodeExhausted, ExitFailure
	case errors.Is(err, gen.ErrInvalidSyllableCount):
		code = ErrCodeInvalidArgument
	}

	if out.IsJSON() {
		if writeErr := out.Failure(code, err.Error(), result); writeErr != nil {
			return writeErr
		}
		return WrapExitError(exit, "generation failed", err)
	}

	writeGenerated(out, result)
	_ = out.Error(code, err.Error(), nil)
	return WrapExitError(exit, "generation failed", err)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
