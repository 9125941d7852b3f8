package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"medpulse/internal/model"
	"medpulse/pkg/logging"
)

// Schema creates the key/value table the Postgres backend writes to.
const Schema = `CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// db is the slice of *pgxpool.Pool the backend uses; pgxmock satisfies it
// in tests.
type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Postgres struct {
	pool   db
	logger *logging.Logger
}

func NewPostgres(pool db, logger *logging.Logger) *Postgres {
	if logger == nil {
		logger = logging.Default()
	}
	return &Postgres{pool: pool, logger: logger}
}

func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context) (model.Snapshot, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT key, value FROM kv_store WHERE key = ANY($1)`, Keys,
	)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("store: load: %w", err)
	}
	defer rows.Close()

	raw := make(map[string][]byte, len(Keys))
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return model.Snapshot{}, fmt.Errorf("store: scan: %w", err)
		}
		raw[key] = value
	}
	if err := rows.Err(); err != nil {
		return model.Snapshot{}, fmt.Errorf("store: load: %w", err)
	}
	return decode(raw, p.logger), nil
}

// Save upserts every key in one transaction.
func (p *Postgres) Save(ctx context.Context, snap model.Snapshot) error {
	enc, err := encode(snap)
	if err != nil {
		return err
	}
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, key := range Keys {
		_, err = tx.Exec(ctx,
			`INSERT INTO kv_store (key, value) VALUES ($1, $2)
			 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
			key, enc[key],
		)
		if err != nil {
			return fmt.Errorf("store: upsert %s: %w", key, err)
		}
	}
	return tx.Commit(ctx)
}
