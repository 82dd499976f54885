package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/novan/internal/lexicon"
	"github.com/roach88/novan/internal/phon"
	"github.com/roach88/novan/internal/store"
)

// EntryFlags holds the editable fields of an entry.
type EntryFlags struct {
	English      string
	WordformDesc string
	EnglishDesc  string
	Prime        string
	Classes      []string
	Syllables    string // syllables joined by "|"
}

func (f *EntryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.English, "english", "", "English gloss")
	cmd.Flags().StringVar(&f.WordformDesc, "wordform-desc", "", "description of the wordform")
	cmd.Flags().StringVar(&f.EnglishDesc, "english-desc", "", "description of the English gloss")
	cmd.Flags().StringVar(&f.Prime, "prime", "", "semantic prime the entry expresses")
	cmd.Flags().StringSliceVar(&f.Classes, "class", nil, "verb classes (generic|state|process|cognition|transfer)")
	cmd.Flags().StringVar(&f.Syllables, "syllables", "", `override the syllabification, e.g. "kit|a"`)
}

func (f *EntryFlags) verbClasses() ([]lexicon.VerbClass, error) {
	classes := make([]lexicon.VerbClass, 0, len(f.Classes))
	for _, s := range f.Classes {
		c, err := lexicon.ParseVerbClass(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, nil
}

// NewEntryCommand creates the entry command and its subcommands.
func NewEntryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage lexicon entries",
		Long: `Manage the lexicon: wordforms with their English gloss, descriptions,
semantic prime and verb classes. Wordforms are validated before they are
stored.`,
	}

	cmd.AddCommand(newEntryAddCommand(rootOpts))
	cmd.AddCommand(newEntryUpdateCommand(rootOpts))
	cmd.AddCommand(newEntryListCommand(rootOpts))
	cmd.AddCommand(newEntryShowCommand(rootOpts))
	cmd.AddCommand(newEntryRemoveCommand(rootOpts))

	return cmd
}

func newEntryAddCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &EntryFlags{}
	cmd := &cobra.Command{
		Use:   "add <wordform>",
		Short: "Add an entry",
		Long: `Add an entry. The wordform is normalized and must be valid; an empty
wordform ("") is allowed for entries still waiting for one.

Examples:
  novan entry add natal --english "to be born" --class process
  novan entry add "" --english "to think" --prime THINK`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntryAdd(rootOpts, args[0], flags, cmd)
		},
	}
	flags.register(cmd)
	return cmd
}

func runEntryAdd(opts *RootOptions, wordform string, flags *EntryFlags, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	classes, err := flags.verbClasses()
	if err != nil {
		return fail(s.out, ExitCommandError, ErrCodeInvalidArgument, "invalid verb class", err)
	}

	entryOpts := []lexicon.EntryOption{
		lexicon.WithEnglish(flags.English),
		lexicon.WithDescriptions(flags.WordformDesc, flags.EnglishDesc),
		lexicon.WithPrime(flags.Prime),
		lexicon.WithVerbClasses(classes...),
	}
	if flags.Syllables != "" {
		entryOpts = append(entryOpts, lexicon.WithSyllables(strings.Split(flags.Syllables, SyllableSeparator)...))
	}

	e, err := lexicon.NewEntry(phon.Novan(), wordform, entryOpts...)
	if err != nil {
		return reportEntryError(s.out, err)
	}
	if err := s.store.PutEntry(commandContext(cmd), e); err != nil {
		return fail(s.out, ExitCommandError, ErrCodeStore, "failed to save entry", err)
	}
	s.logger.Debug("entry added", "uri", e.URI, "wordform", e.Wordform)
	return writeEntry(s.out, e)
}

// reportEntryError maps entry construction errors to exit codes: invalid
// wordforms are domain failures, the rest are bad input.
func reportEntryError(out *OutputFormatter, err error) error {
	var iw *phon.InvalidWordformError
	if errors.As(err, &iw) {
		_ = out.Error(ErrCodeInvalidWordform, err.Error(), iw.Violations)
		return WrapExitError(ExitFailure, "invalid wordform", err)
	}
	return fail(out, ExitCommandError, ErrCodeInvalidArgument, "invalid entry", err)
}

func writeEntry(out *OutputFormatter, e *lexicon.Entry) error {
	if out.IsJSON() {
		return out.Success(e)
	}

	w := out.Writer
	done, total := e.Completion()
	fmt.Fprintf(w, "%s [%d/%d]\n", e.URI, done, total)
	fmt.Fprintf(w, "  wordform:  %s\n", e.Wordform)
	fmt.Fprintf(w, "  syllables: %s\n", strings.Join(e.Syllables, SyllableSeparator))
	fmt.Fprintf(w, "  english:   %s\n", e.English)
	if e.WordformDesc != "" {
		fmt.Fprintf(w, "  wordform description: %s\n", e.WordformDesc)
	}
	if e.EnglishDesc != "" {
		fmt.Fprintf(w, "  english description:  %s\n", e.EnglishDesc)
	}
	if e.Prime != "" {
		fmt.Fprintf(w, "  prime:     %s\n", e.Prime)
	}
	if classes := e.VerbClasses(); len(classes) > 0 {
		names := make([]string, len(classes))
		for i, c := range classes {
			names[i] = string(c)
		}
		fmt.Fprintf(w, "  classes:   %s\n", strings.Join(names, ", "))
	}
	return nil
}

func newEntryUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &EntryFlags{}
	var wordform string
	var clearClasses bool
	cmd := &cobra.Command{
		Use:   "update <uri>",
		Short: "Change fields of an entry",
		Long: `Change the fields of an entry given on the command line; other fields
keep their value. A new wordform is validated and re-syllabified.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntryUpdate(rootOpts, args[0], wordform, clearClasses, flags, cmd)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&wordform, "wordform", "", "new wordform")
	cmd.Flags().BoolVar(&clearClasses, "clear-classes", false, "unset every verb class before applying --class")
	return cmd
}

func runEntryUpdate(opts *RootOptions, uri, wordform string, clearClasses bool, flags *EntryFlags, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := commandContext(cmd)

	e, err := s.store.Entry(ctx, uri)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(s.out, ExitCommandError, ErrCodeNotFound, fmt.Sprintf("entry %q not found", uri), nil)
		}
		return fail(s.out, ExitCommandError, ErrCodeStore, "failed to load entry", err)
	}

	changed := cmd.Flags().Changed
	if changed("wordform") {
		if err := e.SetWordform(phon.Novan(), wordform); err != nil {
			return reportEntryError(s.out, err)
		}
	}
	if changed("syllables") {
		if err := e.SetSyllables(strings.Split(flags.Syllables, SyllableSeparator)); err != nil {
			return reportEntryError(s.out, err)
		}
	}
	if changed("english") {
		e.English = flags.English
	}
	if changed("wordform-desc") {
		e.WordformDesc = flags.WordformDesc
	}
	if changed("english-desc") {
		e.EnglishDesc = flags.EnglishDesc
	}
	if changed("prime") {
		e.Prime = flags.Prime
	}
	if clearClasses {
		for _, c := range lexicon.VerbClasses {
			e.SetVerbClass(c, false)
		}
	}
	classes, err := flags.verbClasses()
	if err != nil {
		return fail(s.out, ExitCommandError, ErrCodeInvalidArgument, "invalid verb class", err)
	}
	for _, c := range classes {
		e.SetVerbClass(c, true)
	}

	if err := s.store.PutEntry(ctx, e); err != nil {
		return fail(s.out, ExitCommandError, ErrCodeStore, "failed to save entry", err)
	}
	return writeEntry(s.out, e)
}

// EntryListRow is one row of entry list.
type EntryListRow struct {
	Label string         `json:"label"`
	Entry *lexicon.Entry `json:"entry"`
}

func newEntryListCommand(rootOpts *RootOptions) *cobra.Command {
	var filter lexicon.FilterOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries",
		Long: `List entries labelled by wordform (or English gloss with --english),
sorted by label.

--search keeps rows whose label contains the text, ignoring case.
--completion prefixes each label with how many of the six editorial
criteria are met, and --prime with the entry's prime tag ("-" for none).

Examples:
  novan entry list --search ta
  novan entry list --english --completion`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntryList(rootOpts, filter, cmd)
		},
	}
	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "only list labels containing this text")
	cmd.Flags().BoolVar(&filter.ByEnglish, "english", false, "label entries by English gloss")
	cmd.Flags().BoolVar(&filter.ShowCompletion, "completion", false, "prefix labels with completion")
	cmd.Flags().BoolVar(&filter.ShowPrime, "prime", false, "prefix labels with the prime tag")
	return cmd
}

func runEntryList(opts *RootOptions, filter lexicon.FilterOptions, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	lex, err := s.store.Lexicon(commandContext(cmd))
	if err != nil {
		return fail(s.out, ExitCommandError, ErrCodeStore, "failed to load lexicon", err)
	}

	matches := lex.Filter(filter)
	if s.out.IsJSON() {
		rows := make([]EntryListRow, len(matches))
		for i, m := range matches {
			rows[i] = EntryListRow{Label: m.Label, Entry: m.Entry}
		}
		return s.out.Success(rows)
	}

	for _, m := range matches {
		if s.out.Verbose {
			fmt.Fprintf(s.out.Writer, "%s\t%s\n", m.Label, m.Entry.URI)
			continue
		}
		fmt.Fprintln(s.out.Writer, m.Label)
	}
	s.out.VerboseLog("%d of %d entries", len(matches), lex.Len())
	return nil
}

func newEntryShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <uri>",
		Short:         "Show one entry",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntryShow(rootOpts, args[0], cmd)
		},
	}
}

func runEntryShow(opts *RootOptions, uri string, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	e, err := s.store.Entry(commandContext(cmd), uri)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(s.out, ExitCommandError, ErrCodeNotFound, fmt.Sprintf("entry %q not found", uri), nil)
		}
		return fail(s.out, ExitCommandError, ErrCodeStore, "failed to load entry", err)
	}
	return writeEntry(s.out, e)
}

func newEntryRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "remove <uri>",
		Short:         "Remove an entry",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntryRemove(rootOpts, args[0], cmd)
		},
	}
}

func runEntryRemove(opts *RootOptions, uri string, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.store.DeleteEntry(commandContext(cmd), uri); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(s.out, ExitCommandError, ErrCodeNotFound, fmt.Sprintf("entry %q not found", uri), nil)
		}
		return fail(s.out, ExitCommandError, ErrCodeStore, "failed to remove entry", err)
	}

	if s.out.IsJSON() {
		return s.out.Success(map[string]string{"removed": uri})
	}
	fmt.Fprintf(s.out.Writer, "✓ removed %s\n", uri)
	return nil
}
