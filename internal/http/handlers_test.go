package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bomorin-arch/intercom-webhook/internal/api/middleware"
	"github.com/bomorin-arch/intercom-webhook/internal/app"
	"github.com/bomorin-arch/intercom-webhook/internal/canvas"
	"github.com/bomorin-arch/intercom-webhook/internal/forwarder"
	"github.com/bomorin-arch/intercom-webhook/internal/logging"
	"github.com/bomorin-arch/intercom-webhook/internal/store"
	helpers "github.com/bomorin-arch/intercom-webhook/tests/helpers/testutil"
)

func setupRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/initialize", h.Initialize)
	router.POST("/submit", h.Submit)
	router.GET("/health", h.Health)
	router.GET("/messages/:workspace_id", h.ListMessages)
	return router
}

func newHandlers(t *testing.T, fwd app.Forwarder, messages store.Store) *Handlers {
	t.Helper()
	d := app.NewDispatcher(fwd, messages, logging.NewNop())
	return NewHandlers(d, messages, logging.NewNop())
}

func post(router *gin.Engine, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestInitialize(t *testing.T) {
	router := setupRouter(newHandlers(t, helpers.NewMockForwarder(t), store.NewMemory()))

	w := post(router, "/initialize", []byte(`{"workspace_id":"ws_1","conversation_id":42}`))

	require.Equal(t, http.StatusOK, w.Code)
	resp := helpers.DecodeCanvas(t, w.Body.Bytes())
	assert.Equal(t, helpers.ComponentIDs(canvas.Render(canvas.ScreenLite, canvas.Options{})), helpers.ComponentIDs(resp))
	assert.Nil(t, resp.Event)
}

func TestInvalidBodies(t *testing.T) {
	router := setupRouter(newHandlers(t, helpers.NewMockForwarder(t), store.NewMemory()))

	bodies := map[string]string{
		"malformed json": `{"workspace_id":`,
		"array":          `[]`,
		"empty":          ``,
		"wrong type":     `{"component_id": 7}`,
	}

	for _, path := range []string{"/initialize", "/submit"} {
		for name, body := range bodies {
			t.Run(path+" "+name, func(t *testing.T) {
				w := post(router, path, []byte(body))

				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.JSONEq(t, `{"error":"Invalid request"}`, w.Body.String())
			})
		}
	}
}

func TestSubmitSendsLite(t *testing.T) {
	fwd := helpers.NewMockForwarder(t)
	messages := store.NewMemory()
	router := setupRouter(newHandlers(t, fwd, messages))

	body := helpers.SubmitBody(t, "ws_1", canvas.ButtonSendLite, map[string]any{canvas.FieldFeedback: "great tool"})
	w := post(router, "/submit", body)

	require.Equal(t, http.StatusOK, w.Code)
	resp := helpers.DecodeCanvas(t, w.Body.Bytes())
	require.NotNil(t, resp.Event)
	assert.Equal(t, "completed", resp.Event.Type)
	fwd.AssertNumberOfCalls(t, "Forward", 1)

	stored, err := messages.List(t.Context(), "ws_1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "great tool", stored[0].Message)
}

func TestSubmitBlankShowsError(t *testing.T) {
	fwd := helpers.NewMockForwarder(t)
	router := setupRouter(newHandlers(t, fwd, store.NewMemory()))

	body := helpers.SubmitBody(t, "ws_1", canvas.ButtonSendLite, map[string]any{canvas.FieldFeedback: "   "})
	w := post(router, "/submit", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, helpers.HasErrorBanner(helpers.DecodeCanvas(t, w.Body.Bytes())))
	fwd.AssertNotCalled(t, "Forward", mock.Anything, mock.Anything)
}

func TestHealth(t *testing.T) {
	h := newHandlers(t, helpers.NewMockForwarder(t), store.NewMemory()).
		WithClock(func() time.Time { return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC) })
	router := setupRouter(h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","timestamp":"2026-10-18T09:30:00.000Z"}`, w.Body.String())
}

func TestListMessages(t *testing.T) {
	messages := store.NewMemory()
	router := setupRouter(newHandlers(t, helpers.NewMockForwarder(t), messages))

	t.Run("empty workspace", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/messages/ws_none", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"workspace_id":"ws_none","messages":[]}`, w.Body.String())
	})

	t.Run("newest first", func(t *testing.T) {
		_, err := messages.Save(t.Context(), "ws_1", "first")
		require.NoError(t, err)
		_, err = messages.Save(t.Context(), "ws_1", "second")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/messages/ws_1", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var out struct {
			WorkspaceID string          `json:"workspace_id"`
			Messages    []store.Message `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, "ws_1", out.WorkspaceID)
		require.Len(t, out.Messages, 2)
		assert.Equal(t, "second", out.Messages[0].Message)
		assert.Equal(t, "first", out.Messages[1].Message)
	})
}

func TestListMessagesStoreFailure(t *testing.T) {
	lister := new(helpers.MockLister)
	lister.On("List", mock.Anything, "ws_1").Return(nil, store.ErrUnavailable)

	h := NewHandlers(app.NewDispatcher(helpers.NewMockForwarder(t), nil, nil), lister, nil)
	router := setupRouter(h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/messages/ws_1", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal error"}`, w.Body.String())
	lister.AssertExpectations(t)
}

func TestValidateWorkspaceID(t *testing.T) {
	assert.NoError(t, validateWorkspaceID("ws_1"))
	assert.ErrorIs(t, validateWorkspaceID(""), errInvalidWorkspaceID)
	assert.True(t, errors.Is(validateWorkspaceID(string(make([]byte, 256))), errInvalidWorkspaceID))
}

func TestSubmitToleratesLooseActorShapes(t *testing.T) {
	bodies := map[string]string{
		"admin string":      `{"workspace_id":"ws_1","admin":"bot","component_id":"send_lite_button","input_values":{"feedback_text":"hi"}}`,
		"nested user name":  `{"workspace_id":"ws_1","user":{"id":"u1","name":{"first":"Ada"}},"component_id":"send_lite_button","input_values":{"feedback_text":"hi"}}`,
		"admin email false": `{"workspace_id":"ws_1","admin":{"id":"7","email":false},"component_id":"send_lite_button","input_values":{"feedback_text":"hi"}}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			fwd := new(helpers.MockForwarder)
			fwd.On("Forward", mock.Anything, mock.MatchedBy(func(p forwarder.Payload) bool {
				return p.Feedback == "hi" && p.TriggeredBy.Email == forwarder.Unknown
			})).Return(nil).Once()
			router := setupRouter(newHandlers(t, fwd, store.NewMemory()))

			w := post(router, "/submit", []byte(body))

			require.Equal(t, http.StatusOK, w.Code)
			assert.NotNil(t, helpers.DecodeCanvas(t, w.Body.Bytes()).Event)
			fwd.AssertExpectations(t)
		})
	}
}

func TestSubmitCarriesRequestIDToSideEffects(t *testing.T) {
	fwd := new(helpers.MockForwarder)
	fwd.On("Forward", mock.MatchedBy(func(ctx context.Context) bool {
		return app.RequestIDFromContext(ctx) == "req-from-intercom"
	}), mock.Anything).Return(nil).Once()

	h := newHandlers(t, fwd, store.NewMemory())
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID(logging.NewNop()))
	router.POST("/submit", h.Submit)

	body := helpers.SubmitBody(t, "ws_1", canvas.ButtonSendLite, map[string]any{canvas.FieldFeedback: "hi"})
	req := httptest.NewRequest(http.MethodPost, "/submit", bytes.NewReader(body))
	req.Header.Set(middleware.RequestIDHeader, "req-from-intercom")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-from-intercom", w.Header().Get(middleware.RequestIDHeader))
	fwd.AssertExpectations(t)
}
