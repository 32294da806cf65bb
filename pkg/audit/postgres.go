package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres appends step records to the audit_trail table. An unconfigured
// writer (empty connection string) makes Append a silent no-op so partial
// deployments keep moving.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, url string) (*Postgres, error) {
	if url == "" {
		return &Postgres{}, nil
	}

	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	err = pool.Ping(ctx)
	if err != nil {
		return nil, err
	}

	return &Postgres{pool: pool}, nil
}

// The upsert keeps redelivered steps harmless: the same key with the same
// data leaves the trail observably unchanged.
const insertStep = `
INSERT INTO audit_trail (transaction_id, step, created_at, data)
VALUES ($1, $2, $3, $4)
ON CONFLICT (transaction_id, step)
DO UPDATE SET created_at = EXCLUDED.created_at, data = EXCLUDED.data`

func (p *Postgres) Append(ctx context.Context, transactionID, step string, data any) error {
	if p == nil || p.pool == nil {
		return nil
	}

	blob, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal step data: %w", err)
	}

	_, err = p.pool.Exec(ctx, insertStep, transactionID, step, time.Now().UTC(), blob)
	if err != nil {
		return fmt.Errorf("failed to append step record: %w", err)
	}

	return nil
}

func (p *Postgres) Close() {
	if p != nil && p.pool != nil {
		p.pool.Close()
	}
}
