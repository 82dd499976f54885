package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/novan/internal/gen"
	"github.com/roach88/novan/internal/lexicon"
)

const entryColumns = `uri, wordform, syllables, english, wordform_desc, english_desc, prime,
	is_generic, is_state, is_process, is_cognition, is_transfer`

// PutEntry inserts e, or replaces every field of the entry with the same URI.
// A replaced entry keeps its position in listings.
func (s *Store) PutEntry(ctx context.Context, e *lexicon.Entry) error {
	if e.URI == "" {
		return fmt.Errorf("put entry: %w", lexicon.ErrMissingURI)
	}

	syllables, err := marshalSyllables(e.Syllables)
	if err != nil {
		return fmt.Errorf("put entry: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uri) DO UPDATE SET
			wordform = excluded.wordform,
			syllables = excluded.syllables,
			english = excluded.english,
			wordform_desc = excluded.wordform_desc,
			english_desc = excluded.english_desc,
			prime = excluded.prime,
			is_generic = excluded.is_generic,
			is_state = excluded.is_state,
			is_process = excluded.is_process,
			is_cognition = excluded.is_cognition,
			is_transfer = excluded.is_transfer
	`,
		e.URI,
		e.Wordform,
		syllables,
		e.English,
		e.WordformDesc,
		e.EnglishDesc,
		e.Prime,
		boolToInt(e.Generic),
		boolToInt(e.State),
		boolToInt(e.Process),
		boolToInt(e.Cognition),
		boolToInt(e.Transfer),
	)
	if err != nil {
		return fmt.Errorf("put entry: %w", err)
	}
	return nil
}

// DeleteEntry removes the entry with the given URI. It returns ErrNotFound
// if there is none.
func (s *Store) DeleteEntry(ctx context.Context, uri string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE uri = ?`, uri)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete entry %s: %w", uri, ErrNotFound)
	}
	return nil
}

// Entry returns the entry with the given URI.
func (s *Store) Entry(ctx context.Context, uri string) (*lexicon.Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE uri = ?`, uri)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("entry %s: %w", uri, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Entries returns every entry in insertion order. Returns an empty slice
// (not nil) if the lexicon is empty.
func (s *Store) Entries(ctx context.Context) ([]*lexicon.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []*lexicon.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// Lexicon loads every entry into a lexicon.Lexicon.
func (s *Store) Lexicon(ctx context.Context) (*lexicon.Lexicon, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return lexicon.New(entries...)
}

// Wordforms returns the set of non-empty wordforms in the lexicon.
func (s *Store) Wordforms(ctx context.Context) (gen.WordSet, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT wordform FROM entries WHERE wordform != ''`)
	if err != nil {
		return nil, fmt.Errorf("query wordforms: %w", err)
	}
	defer rows.Close()

	set := gen.NewWordSet()
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan wordform: %w", err)
		}
		set.Add(w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wordforms: %w", err)
	}
	return set, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*lexicon.Entry, error) {
	var (
		e         lexicon.Entry
		syllables string
		generic   int
		state     int
		process   int
		cognition int
		transfer  int
	)
	err := row.Scan(
		&e.URI,
		&e.Wordform,
		&syllables,
		&e.English,
		&e.WordformDesc,
		&e.EnglishDesc,
		&e.Prime,
		&generic,
		&state,
		&process,
		&cognition,
		&transfer,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan entry: %w", err)
	}

	e.Syllables, err = unmarshalSyllables(syllables)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", e.URI, err)
	}
	e.Generic = generic != 0
	e.State = state != 0
	e.Process = process != 0
	e.Cognition = cognition != 0
	e.Transfer = transfer != 0
	return &e, nil
}
