package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresBackend struct {
	db DB
}

func NewPostgresBackend(db DB) *PostgresBackend {
	return &PostgresBackend{db: db}
}

func AutoMigrate(ctx context.Context, db DB) error {
	_, err := db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS preferences(
            profile_id TEXT NOT NULL,
            key TEXT NOT NULL,
            value TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            PRIMARY KEY(profile_id, key)
        )
    `)
	if err != nil {
		return fmt.Errorf("migrate preferences: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Load(ctx context.Context, profile string, key Key) (string, bool, error) {
	var value string
	err := b.db.QueryRow(ctx, `
        SELECT value FROM preferences WHERE profile_id=$1 AND key=$2
    `, profile, string(key)).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (b *PostgresBackend) Save(ctx context.Context, profile string, key Key, value string) error {
	_, err := b.db.Exec(ctx, `
        INSERT INTO preferences(profile_id, key, value)
        VALUES($1,$2,$3)
        ON CONFLICT(profile_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
    `, profile, string(key), value)
	return err
}

var _ Backend = (*PostgresBackend)(nil)
