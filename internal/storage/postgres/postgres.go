// Package postgres is the PostgreSQL document store. Values are kept as
// JSONB rows of the objects table, one row per namespace key.
package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/trainingkeeper/internal/dbx"
	migrations "github.com/dmitrijs2005/trainingkeeper/internal/migrations/postgres"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// jsonNull marks a row reserved by Update that was never written.
var jsonNull = []byte("null")

const reserveQuery = `INSERT INTO objects (namespace, value, updated_at)
	VALUES ($1, 'null'::jsonb, now())
	ON CONFLICT (namespace) DO NOTHING`

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects through the pgx driver and applies migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate postgres: %w", err)
	}
	return db, nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

func get(ctx context.Context, db dbx.DBTX, query, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if bytes.Equal(bytes.TrimSpace(value), jsonNull) {
		return nil, nil
	}
	return value, nil
}

func set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	query :=
		`INSERT INTO objects (namespace, value, updated_at)
		 VALUES ($1, $2::jsonb, now())
		 ON CONFLICT (namespace) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		 `

	if _, err := db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	return get(ctx, s.db, `SELECT value FROM objects WHERE namespace = $1`, key)
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return set(ctx, s.db, key, value)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM objects WHERE namespace = $1`, key); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Update locks the row for the duration of fn. A missing row is first
// created holding JSON null, which reads as absent, so there is always a row
// to lock and concurrent first writes serialize.
func (s *Store) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, reserveQuery, key); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		current, err := get(ctx, tx, `SELECT value FROM objects WHERE namespace = $1 FOR UPDATE`, key)
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil || next == nil {
			return err
		}
		return set(ctx, tx, key, next)
	})
}
