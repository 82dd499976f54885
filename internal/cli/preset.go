package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/novan/internal/gen"
	"github.com/roach88/novan/internal/preset"
)

// PresetTransfer reports which generators an import or export moved.
type PresetTransfer struct {
	File       string   `json:"file"`
	Generators []string `json:"generators"`
}

// NewPresetCommand creates the preset command and its subcommands.
func NewPresetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Import and export generator presets",
		Long: `Move generators between preset files and the database.

Preset files are YAML (.yaml, .yml) or CUE (.cue, import only):

  presets:
    - name: Soft
      weights: {h: 0, x: 0.2, k: 0.5}

Symbols left out keep weight 1. Every file is checked against the
preset schema: weights are non-negative numbers keyed by Novan symbols
and names are unique.`,
	}

	cmd.AddCommand(newPresetImportCommand(rootOpts))
	cmd.AddCommand(newPresetExportCommand(rootOpts))

	return cmd
}

func newPresetImportCommand(rootOpts *RootOptions) *cobra.Command {
	var keep bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Store every preset of a file",
		Long: `Store every preset of a file in the database. Existing generators with
the same name are replaced unless --keep is given.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresetImport(rootOpts, args[0], keep, cmd)
		},
	}
	cmd.Flags().BoolVar(&keep, "keep", false, "skip presets whose name is already stored")
	return cmd
}

func runPresetImport(opts *RootOptions, path string, keep bool, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := commandContext(cmd)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return fail(s.out, ExitCommandError, ErrCodeNotFound, fmt.Sprintf("preset file not found: %s", path), nil)
	}
	presets, err := preset.Load(path)
	if err != nil {
		return fail(s.out, ExitCommandError, ErrCodePreset, "failed to load presets", err)
	}

	result := PresetTransfer{File: path, Generators: []string{}}
	for _, p := range presets {
		if keep {
			if _, err := s.store.Generator(ctx, p.Name); err == nil {
				s.out.VerboseLog("skipping %s: already stored", p.Name)
				continue
			}
		}
		if err := s.store.PutGenerator(ctx, p); err != nil {
			return fail(s.out, ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to store %q", p.Name), err)
		}
		result.Generators = append(result.Generators, p.Name)
	}
	s.logger.Debug("presets imported", "file", path, "count", len(result.Generators))

	if s.out.IsJSON() {
		return s.out.Success(result)
	}
	fmt.Fprintf(s.out.Writer, "✓ imported %d preset(s) from %s\n", len(result.Generators), path)
	return nil
}

func newPresetExportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file> [name...]",
		Short: "Write stored generators to a YAML preset file",
		Long: `Write stored generators to a YAML preset file. With no names every
stored generator is exported; the default generator is exported when
nothing is stored.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresetExport(rootOpts, args[0], args[1:], cmd)
		},
	}
}

func runPresetExport(opts *RootOptions, path string, names []string, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := commandContext(cmd)

	var presets []gen.Preset
	if len(names) == 0 {
		presets, err = s.store.Generators(ctx)
		if err != nil {
			return fail(s.out, ExitCommandError, ErrCodeStore, "failed to list generators", err)
		}
		if len(presets) == 0 {
			presets = []gen.Preset{preset.Default()}
		}
	} else {
		for _, name := range names {
			p, _, err := resolveGenerator(ctx, s, name)
			if err != nil {
				return reportResolveError(s.out, name, err)
			}
			presets = append(presets, p)
		}
	}

	if err := preset.Save(path, presets); err != nil {
		return fail(s.out, ExitCommandError, ErrCodePreset, "failed to save presets", err)
	}

	result := PresetTransfer{File: path, Generators: preset.Names(presets)}
	if s.out.IsJSON() {
		return s.out.Success(result)
	}
	fmt.Fprintf(s.out.Writer, "✓ exported %d preset(s) to %s\n", len(presets), path)
	return nil
}
