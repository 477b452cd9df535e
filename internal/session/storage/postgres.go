package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres keeps slots in a shared client_state table so several kiosk
// terminals can share one session slot.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a Postgres store. Call Init before use.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Init creates the client_state table when missing.
func (p *Postgres) Init(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS client_state (
		key TEXT PRIMARY KEY,
		value BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	if _, err := p.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create client_state table: %w", err)
	}
	return nil
}

// Load implements session.Storage.
func (p *Postgres) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.pool.QueryRow(ctx, `SELECT value FROM client_state WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load client state: %w", err)
	}
	return value, nil
}

// Save upserts inside a transaction so concurrent terminals see whole values.
func (p *Postgres) Save(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const stmt = `INSERT INTO client_state (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := tx.Exec(ctx, stmt, key, value); err != nil {
		return fmt.Errorf("save client state: %w", err)
	}
	return tx.Commit(ctx)
}

// Delete implements session.Storage.
func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM client_state WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete client state: %w", err)
	}
	return nil
}
