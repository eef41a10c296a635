// Package store persists parsed evaluations in SQLite.
//
// The full record is stored as JSON alongside a few flattened columns for
// listing and filtering; the payload column is the source of truth and is
// returned verbatim, so stored records round-trip exactly.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/praxisprep/medeval/evalparse"
	"github.com/praxisprep/medeval/idgen"
)

// ErrNotFound is returned when no evaluation exists for the given ID.
var ErrNotFound = errors.New("evaluation not found")

const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
    id               TEXT PRIMARY KEY,
    created_at       TEXT NOT NULL DEFAULT '',
    summary          TEXT NOT NULL DEFAULT '',
    score_value      REAL NOT NULL DEFAULT 0,
    score_max        REAL NOT NULL DEFAULT 100,
    score_percentage INTEGER NOT NULL DEFAULT 0,
    raw_text         TEXT NOT NULL,
    payload          TEXT NOT NULL,
    stored_at        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_evaluations_stored ON evaluations(stored_at DESC);
`

// Open opens an SQLite database with the production pragmas applied:
// foreign keys on, WAL journaling, busy timeout, synchronous NORMAL.
// Parent directories are created as needed.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}
	return db, nil
}

// Store manages the evaluations table.
type Store struct {
	db    *sql.DB
	newID idgen.Generator
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator sets a custom generator for IDs assigned on Save.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(s *Store) { s.newID = gen }
}

// New creates a Store and applies the schema.
func New(db *sql.DB, opts ...Option) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("store: db is required")
	}
	s := &Store{
		db:    db,
		newID: idgen.Prefixed("ev_", idgen.Default),
	}
	for _, o := range opts {
		o(s)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("store schema: %w", err)
	}
	return s, nil
}

// Save persists an evaluation together with its raw source text. When the
// record carries no ID one is generated; an empty timestamp is filled with
// the current time in RFC 3339. The stored record is returned.
func (s *Store) Save(ctx context.Context, ev evalparse.Evaluation, rawText string) (evalparse.Evaluation, error) {
	if ev.ID == "" {
		ev.ID = s.newID()
	}
	if ev.Timestamp == "" {
		ev.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return ev, fmt.Errorf("marshal evaluation: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO evaluations (
			id, created_at, summary, score_value, score_max,
			score_percentage, raw_text, payload, stored_at
		) VALUES (?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
			created_at = excluded.created_at,
			summary = excluded.summary,
			score_value = excluded.score_value,
			score_max = excluded.score_max,
			score_percentage = excluded.score_percentage,
			raw_text = excluded.raw_text,
			payload = excluded.payload,
			stored_at = excluded.stored_at`,
		ev.ID, ev.Timestamp, ev.Summary, ev.Score.Value, ev.Score.Max,
		ev.Score.Percentage, rawText, string(payload), time.Now().Unix())
	if err != nil {
		return ev, fmt.Errorf("save evaluation: %w", err)
	}
	return ev, nil
}

// Get returns one stored evaluation, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (evalparse.Evaluation, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM evaluations WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return evalparse.Evaluation{}, ErrNotFound
	}
	if err != nil {
		return evalparse.Evaluation{}, fmt.Errorf("get evaluation %s: %w", id, err)
	}
	return decodePayload(payload)
}

// List returns stored evaluations, newest first. limit <= 0 means 50.
func (s *Store) List(ctx context.Context, limit int) ([]evalparse.Evaluation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM evaluations ORDER BY stored_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	evals := []evalparse.Evaluation{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		ev, err := decodePayload(payload)
		if err != nil {
			return nil, err
		}
		evals = append(evals, ev)
	}
	return evals, rows.Err()
}

// RawText returns the original unparsed text for a stored evaluation.
func (s *Store) RawText(ctx context.Context, id string) (string, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT raw_text FROM evaluations WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("raw text %s: %w", id, err)
	}
	return raw, nil
}

// Delete removes a stored evaluation. Deleting a missing ID returns
// ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM evaluations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete evaluation %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete evaluation %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func decodePayload(payload string) (evalparse.Evaluation, error) {
	var ev evalparse.Evaluation
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return ev, fmt.Errorf("decode evaluation payload: %w", err)
	}
	return ev, nil
}
