package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/novan/internal/config"
	"github.com/roach88/novan/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string // explicit config file; empty means ./novan.yaml if present
	Database   string // overrides the configured database path
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the novan CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "novan",
		Short: "Novan phonology toolkit",
		Long: `Validate, syllabify and generate wordforms of the Novan conlang,
and keep a lexicon of accepted words.

Configuration is read from novan.yaml (or --config), then NOVAN_*
environment variables, then command-line flags.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (default ./novan.yaml)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewSyllabifyCommand(opts))
	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewInventoryCommand(opts))
	cmd.AddCommand(NewWeightsCommand(opts))
	cmd.AddCommand(NewPresetCommand(opts))
	cmd.AddCommand(NewEntryCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// newLogger returns a text logger on w. Debug output is enabled by --verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// newFormatter builds the output formatter for cmd.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// loadConfig layers the config file and environment, then applies the
// global flag overrides.
func loadConfig(opts *RootOptions, logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath, logger)
	if err != nil {
		return nil, err
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	return cfg, nil
}

// openStore opens (creating if needed) the configured database.
func openStore(cfg *config.Config, logger *slog.Logger) (*store.Store, error) {
	logger.Debug("opening database", "path", cfg.Database)
	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// closeStore closes st, logging rather than returning the error.
func closeStore(st *store.Store, logger *slog.Logger) {
	if closeErr := st.Close(); closeErr != nil {
		logger.Error("error closing database", "error", closeErr)
	}
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// session bundles what store-backed commands need after flag parsing.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
	out    *OutputFormatter
}

// openSession loads config and opens the store. On failure the error has
// already been written to the formatter.
func openSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	out := newFormatter(opts, cmd)
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	cfg, err := loadConfig(opts, logger)
	if err != nil {
		return nil, fail(out, ExitCommandError, ErrCodeConfig, "failed to load config", err)
	}
	st, err := openStore(cfg, logger)
	if err != nil {
		return nil, fail(out, ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	return &session{cfg: cfg, logger: logger, store: st, out: out}, nil
}

func (s *session) Close() {
	closeStore(s.store, s.logger)
}
