package store

import (
	"context"
	"sync"
	"time"
)

// Memory keeps messages in process. Used when no database is configured
// and in tests.
type Memory struct {
	mu          sync.RWMutex
	nextID      int64
	byWorkspace map[string][]Message
	now         func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		byWorkspace: make(map[string][]Message),
		now:         time.Now,
	}
}

// WithClock overrides the timestamp source.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

// Save appends a message and assigns its id and timestamp.
func (m *Memory) Save(ctx context.Context, workspaceID, message string) (Message, error) {
	if err := ctx.Err(); err != nil {
		return Message{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	msg := Message{
		ID:          m.nextID,
		WorkspaceID: workspaceID,
		Message:     message,
		CreatedAt:   m.now().UTC(),
	}
	m.byWorkspace[workspaceID] = append(m.byWorkspace[workspaceID], msg)
	return msg, nil
}

// List returns a copy of the workspace's messages in reverse insertion order.
func (m *Memory) List(ctx context.Context, workspaceID string) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.byWorkspace[workspaceID]
	out := make([]Message, len(stored))
	for i, msg := range stored {
		out[len(stored)-1-i] = msg
	}
	return out, nil
}

// Close is a no-op.
func (m *Memory) Close() {}
