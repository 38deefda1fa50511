// Package archive persists completed fills to a sqlite database, so
// batch runs and shell sessions leave a queryable record behind.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS fills (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT NOT NULL,
	structure TEXT NOT NULL,
	lexicon TEXT NOT NULL,
	lexicon_fp TEXT NOT NULL,
	seed TEXT NOT NULL,
	solution TEXT NOT NULL,
	nodes INTEGER NOT NULL,
	backtracks INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL
);`

// A Fill is one archived solution and the context it was found in.
type Fill struct {
	ID         int64
	CreatedAt  time.Time
	Structure  string
	Lexicon    string
	LexiconFP  string
	Seed       uint64
	Solution   string
	Nodes      uint64
	Backtracks uint64
	Duration   time.Duration
}

type Store struct {
	db *sql.DB
}

// Open opens or creates the archive at path. Use ":memory:" for a
// throwaway store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer; a single pooled connection also keeps
	// ":memory:" databases from vanishing between queries.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating fills table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Save(ctx context.Context, f *Fill) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO fills (created_at, structure, lexicon, lexicon_fp, seed,
			solution, nodes, backtracks, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.CreatedAt.UTC().Format(time.RFC3339Nano),
		f.Structure, f.Lexicon, f.LexiconFP,
		strconv.FormatUint(f.Seed, 10),
		f.Solution, int64(f.Nodes), int64(f.Backtracks),
		f.Duration.Milliseconds())
	if err != nil {
		return err
	}
	f.ID, err = res.LastInsertId()
	return err
}

// Recent returns the newest n fills, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]*Fill, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, structure, lexicon, lexicon_fp, seed,
			solution, nodes, backtracks, duration_ms
		FROM fills ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fills []*Fill
	for rows.Next() {
		var (
			f          Fill
			created    string
			seed       string
			nodes      int64
			backtracks int64
			durMs      int64
		)
		if err := rows.Scan(&f.ID, &created, &f.Structure, &f.Lexicon,
			&f.LexiconFP, &seed, &f.Solution, &nodes, &backtracks, &durMs); err != nil {
			return nil, err
		}
		if f.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, err
		}
		if f.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
			return nil, err
		}
		f.Nodes = uint64(nodes)
		f.Backtracks = uint64(backtracks)
		f.Duration = time.Duration(durMs) * time.Millisecond
		fills = append(fills, &f)
	}
	return fills, rows.Err()
}

// Count returns the number of archived fills.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fills`).Scan(&n)
	return n, err
}

func (s *Store) Close() error {
	return s.db.Close()
}
