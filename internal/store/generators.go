package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/roach88/novan/internal/gen"
	"github.com/roach88/novan/internal/phon"
)

// PutGenerator stores p, replacing every weight of an existing generator
// with the same name. The write is a single transaction.
func (s *Store) PutGenerator(ctx context.Context, p gen.Preset) error {
	if p.Name == "" {
		return errors.New("put generator: empty name")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put generator: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO generators (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, p.Name); err != nil {
		return fmt.Errorf("put generator %q: %w", p.Name, err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM generators WHERE name = ?`, p.Name).Scan(&id); err != nil {
		return fmt.Errorf("put generator %q: %w", p.Name, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM generator_weights WHERE generator_id = ?`, id); err != nil {
		return fmt.Errorf("put generator %q: clear weights: %w", p.Name, err)
	}

	syms := make([]phon.Symbol, 0, len(p.Weights))
	for sym := range p.Weights {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })

	for _, sym := range syms {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO generator_weights (generator_id, symbol, weight) VALUES (?, ?, ?)`,
			id, sym.String(), p.Weights[sym]); err != nil {
			return fmt.Errorf("put generator %q: weight %q: %w", p.Name, sym, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put generator %q: commit: %w", p.Name, err)
	}
	return nil
}

// Generator returns the stored generator with the given name, or an error
// wrapping ErrNotFound.
func (s *Store) Generator(ctx context.Context, name string) (gen.Preset, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM generators WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return gen.Preset{}, fmt.Errorf("generator %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return gen.Preset{}, fmt.Errorf("query generator %q: %w", name, err)
	}

	w, err := s.weights(ctx, id)
	if err != nil {
		return gen.Preset{}, fmt.Errorf("generator %q: %w", name, err)
	}
	return gen.Preset{Name: name, Weights: w}, nil
}

// Generators returns every stored generator sorted by name.
func (s *Store) Generators(ctx context.Context) ([]gen.Preset, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM generators ORDER BY name COLLATE BINARY ASC`)
	if err != nil {
		return nil, fmt.Errorf("query generators: %w", err)
	}

	type ref struct {
		id   int64
		name string
	}
	var refs []ref
	for rows.Next() {
		var r ref
		if err := rows.Scan(&r.id, &r.name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan generator: %w", err)
		}
		refs = append(refs, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate generators: %w", err)
	}
	// release the single connection before querying weights
	rows.Close()

	presets := make([]gen.Preset, 0, len(refs))
	for _, r := range refs {
		w, err := s.weights(ctx, r.id)
		if err != nil {
			return nil, fmt.Errorf("generator %q: %w", r.name, err)
		}
		presets = append(presets, gen.Preset{Name: r.name, Weights: w})
	}
	return presets, nil
}

// DeleteGenerator removes a generator and its weights.
func (s *Store) DeleteGenerator(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM generators WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete generator %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete generator %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete generator %q: %w", name, ErrNotFound)
	}
	return nil
}

func (s *Store) weights(ctx context.Context, generatorID int64) (gen.WeightMap, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT symbol, weight FROM generator_weights WHERE generator_id = ? ORDER BY symbol`, generatorID)
	if err != nil {
		return nil, fmt.Errorf("query weights: %w", err)
	}
	defer rows.Close()

	w := make(gen.WeightMap)
	for rows.Next() {
		var (
			sym string
			v   float64
		)
		if err := rows.Scan(&sym, &v); err != nil {
			return nil, fmt.Errorf("scan weight: %w", err)
		}
		rs := []rune(sym)
		if len(rs) != 1 {
			return nil, fmt.Errorf("stored symbol %q is not a single character", sym)
		}
		w[phon.Symbol(rs[0])] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weights: %w", err)
	}
	return w, nil
}
