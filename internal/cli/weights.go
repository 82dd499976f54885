package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/novan/internal/gen"
	"github.com/roach88/novan/internal/phon"
	"github.com/roach88/novan/internal/preset"
	"github.com/roach88/novan/internal/store"
)

// WeightRow is one symbol's weight.
type WeightRow struct {
	Symbol string  `json:"symbol"`
	Class  string  `json:"class"`
	Weight float64 `json:"weight"`
}

// WeightsResult describes one generator.
type WeightsResult struct {
	Generator string      `json:"generator"`
	Source    string      `json:"source"`
	Percent   bool        `json:"percent"`
	Weights   []WeightRow `json:"weights"`
}

// GeneratorInfo is one row of weights list.
type GeneratorInfo struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// NewWeightsCommand creates the weights command and its subcommands.
func NewWeightsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Manage generator weights",
		Long: `Manage named generators: per-symbol weight maps stored in the database.

A generator not found in the database is looked up in the configured
presets file; the default generator "Custom" (every weight 1) always
exists.`,
	}

	cmd.AddCommand(newWeightsListCommand(rootOpts))
	cmd.AddCommand(newWeightsShowCommand(rootOpts))
	cmd.AddCommand(newWeightsSetCommand(rootOpts))
	cmd.AddCommand(newWeightsNewCommand(rootOpts))
	cmd.AddCommand(newWeightsDeleteCommand(rootOpts))

	return cmd
}

func newWeightsListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List known generators",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeightsList(rootOpts, cmd)
		},
	}
}

func runWeightsList(opts *RootOptions, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	stored, err := s.store.Generators(commandContext(cmd))
	if err != nil {
		return fail(s.out, ExitCommandError, ErrCodeStore, "failed to list generators", err)
	}

	seen := make(map[string]bool)
	var infos []GeneratorInfo
	for _, p := range stored {
		seen[p.Name] = true
		infos = append(infos, GeneratorInfo{Name: p.Name, Source: SourceDatabase})
	}
	if s.cfg.Presets != "" {
		presets, err := preset.Load(s.cfg.Presets)
		if err != nil {
			return fail(s.out, ExitCommandError, ErrCodePreset, "failed to load presets", err)
		}
		for _, p := range presets {
			if !seen[p.Name] {
				seen[p.Name] = true
				infos = append(infos, GeneratorInfo{Name: p.Name, Source: SourcePresets})
			}
		}
	}
	if !seen[gen.DefaultPresetName] {
		infos = append(infos, GeneratorInfo{Name: gen.DefaultPresetName, Source: SourceDefault})
	}
	sort.SliceStable(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	if s.out.IsJSON() {
		return s.out.Success(infos)
	}
	for _, info := range infos {
		fmt.Fprintf(s.out.Writer, "%s (%s)\n", info.Name, info.Source)
	}
	return nil
}

func newWeightsShowCommand(rootOpts *RootOptions) *cobra.Command {
	var percent bool
	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show the weights of a generator",
		Long: `Show the weight of every symbol, in alphabet order.

With --percent weights are shown multiplied by 100, the scale of the
editor sliders.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runWeightsShow(rootOpts, name, percent, cmd)
		},
	}
	cmd.Flags().BoolVar(&percent, "percent", false, "show weights as percentages")
	return cmd
}

func runWeightsShow(opts *RootOptions, name string, percent bool, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	name = firstNonEmpty(name, s.cfg.Generator)
	p, source, err := resolveGenerator(commandContext(cmd), s, name)
	if err != nil {
		return reportResolveError(s.out, name, err)
	}
	return writeWeights(s.out, p, source, percent)
}

func writeWeights(out *OutputFormatter, p gen.Preset, source string, percent bool) error {
	alpha := phon.Novan()
	result := WeightsResult{Generator: p.Name, Source: source, Percent: percent}
	for _, sym := range alpha.Symbols() {
		v := p.Weights[sym]
		if percent {
			v *= 100
		}
		result.Weights = append(result.Weights, WeightRow{
			Symbol: sym.String(),
			Class:  alpha.Class(sym).String(),
			Weight: v,
		})
	}

	if out.IsJSON() {
		return out.Success(result)
	}
	fmt.Fprintf(out.Writer, "%s (%s)\n", result.Generator, result.Source)
	for _, row := range result.Weights {
		fmt.Fprintf(out.Writer, "  %s  %-10s %g\n", row.Symbol, row.Class, row.Weight)
	}
	return nil
}

func newWeightsSetCommand(rootOpts *RootOptions) *cobra.Command {
	var percent bool
	cmd := &cobra.Command{
		Use:   "set <name> <symbol=weight>...",
		Short: "Change weights and store the generator",
		Long: `Change one or more weights of a generator and save it to the database.

The starting weights come from wherever the generator is found (database,
presets file or the default). Weights must be finite and non-negative; a
single bad assignment leaves the generator unchanged.

Examples:
  novan weights set Custom h=0 x=0.25
  novan weights set Soft --percent k=40 g=40`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeightsSet(rootOpts, args[0], args[1:], percent, cmd)
		},
	}
	cmd.Flags().BoolVar(&percent, "percent", false, "weights are percentages (divided by 100)")
	return cmd
}

// parseAssignment parses "symbol=weight".
func parseAssignment(alpha *phon.Alphabet, s string, percent bool) (phon.Symbol, float64, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, fmt.Errorf("expected symbol=weight, got %q", s)
	}
	sym, err := alpha.ParseSymbol(strings.TrimSpace(key))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", gen.ErrUnknownSymbol, err)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", gen.ErrInvalidWeight, value)
	}
	if percent {
		v /= 100
	}
	return sym, v, nil
}

func runWeightsSet(opts *RootOptions, name string, assignments []string, percent bool, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := commandContext(cmd)

	p, _, err := resolveGenerator(ctx, s, name)
	if err != nil {
		return reportResolveError(s.out, name, err)
	}

	alpha := phon.Novan()
	g, err := gen.NewFromWeights(alpha, p.Weights, gen.WithLogger(s.logger))
	if err != nil {
		return fail(s.out, ExitCommandError, ErrCodeInvalidWeight, fmt.Sprintf("generator %q", name), err)
	}

	updates := make(gen.WeightMap, len(assignments))
	for _, a := range assignments {
		sym, v, err := parseAssignment(alpha, a, percent)
		if err != nil {
			return fail(s.out, ExitCommandError, ErrCodeInvalidWeight, "invalid assignment", err)
		}
		updates[sym] = v
	}
	if err := g.SetWeights(updates); err != nil {
		return fail(s.out, ExitCommandError, ErrCodeInvalidWeight, "invalid assignment", err)
	}
	g.Recompute()

	updated := gen.Preset{Name: name, Weights: g.Weights()}
	if err := s.store.PutGenerator(ctx, updated); err != nil {
		return fail(s.out, ExitCommandError, ErrCodeStore, "failed to save generator", err)
	}
	s.logger.Debug("generator saved", "name", name, "changed", len(updates))
	return writeWeights(s.out, updated, SourceDatabase, percent)
}

func newWeightsNewCommand(rootOpts *RootOptions) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a generator",
		Long: `Create a generator in the database with every weight at 1, or as a
copy of another generator with --from.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeightsNew(rootOpts, args[0], from, cmd)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "copy the weights of this generator")
	return cmd
}

func runWeightsNew(opts *RootOptions, name, from string, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := commandContext(cmd)

	if strings.TrimSpace(name) == "" {
		return fail(s.out, ExitCommandError, ErrCodeInvalidArgument, "generator name must not be empty", nil)
	}
	_, err = s.store.Generator(ctx, name)
	switch {
	case err == nil:
		return fail(s.out, ExitCommandError, ErrCodeExists, fmt.Sprintf("generator %q already exists", name), nil)
	case !errors.Is(err, store.ErrNotFound):
		return fail(s.out, ExitCommandError, ErrCodeStore, "failed to look up generator", err)
	}

	base := preset.Default()
	if from != "" {
		base, _, err = resolveGenerator(ctx, s, from)
		if err != nil {
			return reportResolveError(s.out, from, err)
		}
	}

	created := gen.Preset{Name: name, Weights: base.Weights.Clone()}
	if err := s.store.PutGenerator(ctx, created); err != nil {
		return fail(s.out, ExitCommandError, ErrCodeStore, "failed to save generator", err)
	}
	return writeWeights(s.out, created, SourceDatabase, false)
}

func newWeightsDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <name>",
		Short:         "Delete a stored generator",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeightsDelete(rootOpts, args[0], cmd)
		},
	}
}

func runWeightsDelete(opts *RootOptions, name string, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.store.DeleteGenerator(commandContext(cmd), name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(s.out, ExitCommandError, ErrCodeNotFound, fmt.Sprintf("generator %q not found", name), nil)
		}
		return fail(s.out, ExitCommandError, ErrCodeStore, "failed to delete generator", err)
	}

	if s.out.IsJSON() {
		return s.out.Success(map[string]string{"deleted": name})
	}
	fmt.Fprintf(s.out.Writer, "✓ deleted %s\n", name)
	return nil
}
