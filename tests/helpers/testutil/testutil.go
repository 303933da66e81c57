// Package testutil provides testing utilities and helpers for relay tests.
package testutil

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bomorin-arch/intercom-webhook/internal/canvas"
	"github.com/bomorin-arch/intercom-webhook/internal/forwarder"
	"github.com/bomorin-arch/intercom-webhook/internal/store"
)

// MockForwarder is a mock implementation of the webhook forwarder.
type MockForwarder struct {
	mock.Mock
}

// Forward mocks the Forward method.
func (m *MockForwarder) Forward(ctx context.Context, p forwarder.Payload) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockSaver is a mock implementation of store.Saver.
type MockSaver struct {
	mock.Mock
}

// Save mocks the Save method.
func (m *MockSaver) Save(ctx context.Context, workspaceID, message string) (store.Message, error) {
	args := m.Called(ctx, workspaceID, message)
	return args.Get(0).(store.Message), args.Error(1)
}

// MockLister is a mock implementation of store.Lister.
type MockLister struct {
	mock.Mock
}

// List mocks the List method.
func (m *MockLister) List(ctx context.Context, workspaceID string) ([]store.Message, error) {
	args := m.Called(ctx, workspaceID)
	msgs, _ := args.Get(0).([]store.Message)
	return msgs, args.Error(1)
}

// NewMockForwarder creates a mock forwarder that accepts every payload.
func NewMockForwarder(t *testing.T) *MockForwarder {
	t.Helper()
	m := new(MockForwarder)
	m.On("Forward", mock.Anything, mock.Anything).Return(nil).Maybe()
	return m
}

// NewMockSaver creates a mock saver that accepts every message.
func NewMockSaver(t *testing.T) *MockSaver {
	t.Helper()
	m := new(MockSaver)
	m.On("Save", mock.Anything, mock.Anything, mock.Anything).
		Return(store.Message{ID: 1}, nil).
		Maybe()
	return m
}

// SubmitBody builds a /submit body.
func SubmitBody(t *testing.T, workspaceID, componentID string, inputs map[string]any) []byte {
	t.Helper()

	body := map[string]any{}
	if workspaceID != "" {
		body["workspace_id"] = workspaceID
	}
	if componentID != "" {
		body["component_id"] = componentID
	}
	if inputs != nil {
		body["input_values"] = inputs
	}

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return raw
}

// DecodeCanvas decodes a canvas response body.
func DecodeCanvas(t *testing.T, body []byte) canvas.Response {
	t.Helper()

	var resp canvas.Response
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

// ComponentIDs lists the ids of a canvas's components in order.
func ComponentIDs(resp canvas.Response) []string {
	var ids []string
	for _, c := range resp.Components() {
		if c.ID != "" {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// HasErrorBanner reports whether the canvas shows the muted error text.
func HasErrorBanner(resp canvas.Response) bool {
	for _, c := range resp.Components() {
		if c.Type == canvas.KindText && c.Style == "muted" {
			return true
		}
	}
	return false
}
