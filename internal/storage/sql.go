package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const (
	schemaTimeout = 5 * time.Second
	queryTimeout  = 3 * time.Second
)

// SQLStore keeps keys in a single kv table over database/sql. The driver
// is registered by the caller (pgx stdlib or sqlite3).
type SQLStore struct {
	db *sql.DB
	q  queries
}

type queries struct {
	get string
	set string
	del string
}

func queriesFor(driver string) queries {
	if driver == "pgx" || driver == "postgres" {
		return queries{
			get: `SELECT value FROM kv WHERE key = $1`,
			set: `INSERT INTO kv (key, value) VALUES ($1, $2)
			      ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
			del: `DELETE FROM kv WHERE key = $1`,
		}
	}
	return queries{
		get: `SELECT value FROM kv WHERE key = ?`,
		set: `INSERT INTO kv (key, value) VALUES (?, ?)
		      ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		del: `DELETE FROM kv WHERE key = ?`,
	}
}

func OpenSQL(driver, dsn string) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	s := &SQLStore{db: db, q: queriesFor(driver)}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) ensureSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure kv schema: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error { return s.db.Close() }

func (s *SQLStore) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var v string
	err := s.db.QueryRowContext(ctx, s.q.get, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv get: %w", err)
	}
	return v, true, nil
}

func (s *SQLStore) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, s.q.set, key, value); err != nil {
		return fmt.Errorf("kv set: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, s.q.del, key); err != nil {
		return fmt.Errorf("kv delete: %w", err)
	}
	return nil
}
