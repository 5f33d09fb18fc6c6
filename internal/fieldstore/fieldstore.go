// Package fieldstore persists computed ramification data in a local SQLite
// database, keyed by the prime and the generating polynomial, so repeated
// invocations of the tooling can skip the refinement search.
package fieldstore

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS jump_sets (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	p             INTEGER NOT NULL,
	poly          TEXT    NOT NULL,
	e             INTEGER NOT NULL,
	f             INTEGER NOT NULL,
	lower_jumps   TEXT    NOT NULL,
	upper_jumps   TEXT    NOT NULL,
	under_refined INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMP NOT NULL,
	UNIQUE (p, poly)
);`

// Record is one stored computation: the inputs (p, poly), the invariants of
// the weak splitting field, and the serialized jump sets.
type Record struct {
	P            uint64
	Poly         string
	E, F         int64
	Lower        string
	Upper        string
	UnderRefined bool
	CreatedAt    time.Time
}

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("fieldstore: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("fieldstore: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put inserts or replaces the record for (p, poly).
func (s *Store) Put(r Record) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO jump_sets (p, poly, e, f, lower_jumps, upper_jumps, under_refined, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (p, poly) DO UPDATE SET
			e = excluded.e,
			f = excluded.f,
			lower_jumps = excluded.lower_jumps,
			upper_jumps = excluded.upper_jumps,
			under_refined = excluded.under_refined,
			created_at = excluded.created_at`,
		r.P, r.Poly, r.E, r.F, r.Lower, r.Upper, r.UnderRefined, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("fieldstore: put (%d, %s): %w", r.P, r.Poly, err)
	}
	return nil
}

// Get returns the record for (p, poly); ok is false when none is stored.
func (s *Store) Get(p uint64, poly string) (Record, bool, error) {
	row := s.db.QueryRow(`
		SELECT p, poly, e, f, lower_jumps, upper_jumps, under_refined, created_at
		FROM jump_sets WHERE p = ? AND poly = ?`, p, poly)
	var r Record
	err := row.Scan(&r.P, &r.Poly, &r.E, &r.F, &r.Lower, &r.Upper, &r.UnderRefined, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("fieldstore: get (%d, %s): %w", p, poly, err)
	}
	return r, true, nil
}

// List returns every stored record for a prime, newest first.
func (s *Store) List(p uint64) ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT p, poly, e, f, lower_jumps, upper_jumps, under_refined, created_at
		FROM jump_sets WHERE p = ? ORDER BY created_at DESC`, p)
	if err != nil {
		return nil, fmt.Errorf("fieldstore: list p = %d: %w", p, err)
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.P, &r.Poly, &r.E, &r.F, &r.Lower, &r.Upper, &r.UnderRefined, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("fieldstore: scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
