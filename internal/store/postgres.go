package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id           SERIAL PRIMARY KEY,
	workspace_id VARCHAR(255) NOT NULL,
	message      TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS messages_workspace_created_idx
	ON messages (workspace_id, created_at DESC, id DESC);
`

// Postgres stores messages in the messages table.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect creates a pgx pool for dsn and verifies it with a ping. dsn is a
// postgres:// URL or a keyword/value string.
func Connect(ctx context.Context, dsn string, opts ...func(*pgxpool.Config)) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	if cfg.MaxConns == 0 {
		cfg.MaxConns = 4
	}
	if cfg.MaxConnIdleTime == 0 {
		cfg.MaxConnIdleTime = 5 * time.Minute
	}
	if cfg.MaxConnLifetime == 0 {
		cfg.MaxConnLifetime = 60 * time.Minute
	}
	if cfg.HealthCheckPeriod == 0 {
		cfg.HealthCheckPeriod = 1 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: new pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	return pool, nil
}

// WithMaxConns caps the pool size.
func WithMaxConns(n int32) func(*pgxpool.Config) {
	return func(cfg *pgxpool.Config) {
		if n > 0 {
			cfg.MaxConns = n
		}
	}
}

// NewPostgres wraps pool and creates the schema if missing.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (*Postgres, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("postgres: ensure schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Save inserts a message; the database assigns id and created_at.
func (p *Postgres) Save(ctx context.Context, workspaceID, message string) (Message, error) {
	msg := Message{WorkspaceID: workspaceID, Message: message}
	err := p.pool.QueryRow(ctx, `
INSERT INTO messages (workspace_id, message)
VALUES ($1, $2)
RETURNING id, created_at
`, workspaceID, message).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return Message{}, fmt.Errorf("%w: insert: %v", ErrUnavailable, err)
	}
	return msg, nil
}

// List returns the workspace's messages, newest first.
func (p *Postgres) List(ctx context.Context, workspaceID string) ([]Message, error) {
	rows, err := p.pool.Query(ctx, `
SELECT id, workspace_id, message, created_at
FROM messages
WHERE workspace_id = $1
ORDER BY created_at DESC, id DESC
`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrUnavailable, err)
	}

	msgs, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Message])
	if err != nil {
		return nil, fmt.Errorf("%w: scan: %v", ErrUnavailable, err)
	}
	return msgs, nil
}

// Close releases the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}
