package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/novan/internal/gen"
	"github.com/roach88/novan/internal/phon"
)

// InventoryOptions holds flags for the inventory command.
type InventoryOptions struct {
	*RootOptions
	Generator string
	Shape     string // V, CV, VC or CVC; empty lists all
	NonZero   bool   // hide syllables with probability 0
}

// InventoryRow is one syllable of the inventory.
type InventoryRow struct {
	Syllable    string     `json:"syllable"`
	Shape       phon.Shape `json:"shape"`
	Probability float64    `json:"probability"`
}

// InventoryResult is the output of the inventory command.
type InventoryResult struct {
	Generator string         `json:"generator"`
	Size      int            `json:"size"`
	Rows      []InventoryRow `json:"rows"`
}

// NewInventoryCommand creates the inventory command.
func NewInventoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InventoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "List the syllable inventory with weights",
		Long: `List every syllable of shape V, CV, VC and CVC in inventory order,
with its unnormalized probability under a generator: the product of the
weights of its symbols.

Examples:
  novan inventory --shape CV
  novan inventory -g Soft --nonzero`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInventory(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Generator, "generator", "g", "", "generator name (default from config)")
	cmd.Flags().StringVar(&opts.Shape, "shape", "", "only list syllables of this shape (V|CV|VC|CVC)")
	cmd.Flags().BoolVar(&opts.NonZero, "nonzero", false, "hide syllables with probability 0")

	return cmd
}

func runInventory(opts *InventoryOptions, cmd *cobra.Command) error {
	s, err := openSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	shape := phon.Shape(strings.ToUpper(opts.Shape))
	if shape != "" && !isShape(shape) {
		return fail(s.out, ExitCommandError, ErrCodeInvalidArgument, fmt.Sprintf("unknown shape %q: must be one of %v", opts.Shape, phon.Shapes), nil)
	}

	name := firstNonEmpty(opts.Generator, s.cfg.Generator)
	p, _, err := resolveGenerator(commandContext(cmd), s, name)
	if err != nil {
		return reportResolveError(s.out, name, err)
	}

	alpha := phon.Novan()
	g, err := gen.NewFromWeights(alpha, p.Weights, gen.WithLogger(s.logger))
	if err != nil {
		return fail(s.out, ExitCommandError, ErrCodeInvalidWeight, fmt.Sprintf("generator %q", name), err)
	}
	probs, err := g.Probabilities()
	if err != nil {
		return fail(s.out, ExitCommandError, ErrCodeGeneric, "failed to compute probabilities", err)
	}

	inv := alpha.Inventory()
	result := InventoryResult{Generator: p.Name, Size: inv.Len(), Rows: []InventoryRow{}}
	for i := 0; i < inv.Len(); i++ {
		if shape != "" && inv.ShapeAt(i) != shape {
			continue
		}
		if opts.NonZero && probs[i] == 0 {
			continue
		}
		result.Rows = append(result.Rows, InventoryRow{
			Syllable:    inv.At(i),
			Shape:       inv.ShapeAt(i),
			Probability: probs[i],
		})
	}

	if s.out.IsJSON() {
		return s.out.Success(result)
	}

	w := s.out.Writer
	for _, row := range result.Rows {
		fmt.Fprintf(w, "%-4s %-4s %g\n", row.Syllable, row.Shape, row.Probability)
	}
	fmt.Fprintf(w, "\n%d of %d syllable(s)\n", len(result.Rows), result.Size)
	return nil
}

func isShape(s phon.Shape) bool {
	for _, shape := range phon.Shapes {
		if shape == s {
			return true
		}
	}
	return false
}
