package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const kvTable = "kv"

// Store is a Port backed by a single SQLite table.
type Store struct {
	db *sql.DB
	sb *entsql.DialectBuilder
}

var (
	_ Port   = (*Store)(nil)
	_ Lister = (*Store)(nil)
)

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the key-value table.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	return &Store{db: db, sb: entsql.Dialect(dialect.SQLite)}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := s.sb.Select("value").
		From(s.sb.Table(kvTable)).
		Where(entsql.EQ("name", key)).
		Query()

	var value string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, opErr("get", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	query, args := s.sb.Insert(kvTable).
		Columns("name", "value", "updated_at").
		Values(key, value, time.Now().Unix()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	_, err := s.db.ExecContext(ctx, query, args...)
	return opErr("set", key, err)
}

func (s *Store) Remove(ctx context.Context, key string) error {
	query, args := s.sb.Delete(kvTable).
		Where(entsql.EQ("name", key)).
		Query()

	_, err := s.db.ExecContext(ctx, query, args...)
	return opErr("remove", key, err)
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	sel := s.sb.Select("name").From(s.sb.Table(kvTable))
	if prefix != "" {
		sel = sel.Where(entsql.HasPrefix("name", prefix))
	}
	query, args := sel.OrderBy(entsql.Asc("name")).Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, opErr("keys", prefix, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, opErr("keys", prefix, err)
		}
		keys = append(keys, k)
	}
	return keys, opErr("keys", prefix, rows.Err())
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
