package store

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable wraps failures of the backing engine.
var ErrUnavailable = errors.New("message store unavailable")

// Message is a stored feedback submission. Messages are never updated or deleted.
type Message struct {
	ID          int64     `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// Saver appends messages.
type Saver interface {
	Save(ctx context.Context, workspaceID, message string) (Message, error)
}

// Lister reads a workspace's messages, newest first.
type Lister interface {
	List(ctx context.Context, workspaceID string) ([]Message, error)
}

// Store is an append-only message log keyed by workspace.
type Store interface {
	Saver
	Lister
	Close()
}
