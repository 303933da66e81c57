package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bomorin-arch/intercom-webhook/internal/api/middleware"
	"github.com/bomorin-arch/intercom-webhook/internal/app"
	"github.com/bomorin-arch/intercom-webhook/internal/logging"
	"github.com/bomorin-arch/intercom-webhook/internal/store"
	"github.com/bomorin-arch/intercom-webhook/internal/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	dispatcher *app.Dispatcher
	messages   store.Lister
	logger     *logging.Logger
	now        func() time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(dispatcher *app.Dispatcher, messages store.Lister, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		dispatcher: dispatcher,
		messages:   messages,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the health timestamp source.
func (h *Handlers) WithClock(now func() time.Time) *Handlers {
	h.now = now
	return h
}

// Initialize serves the first canvas of a session.
func (h *Handlers) Initialize(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	h.log(c).Info("Canvas initialized",
		zap.String("workspace_id", req.WorkspaceID),
		zap.String("conversation_id", req.ResolvedConversationID()),
	)
	c.JSON(http.StatusOK, h.dispatcher.Initial())
}

// Submit handles a button press on the canvas.
func (h *Handlers) Submit(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	h.log(c).Info("Canvas submitted",
		zap.String("component_id", req.ComponentID),
		zap.String("workspace_id", req.WorkspaceID),
	)
	ctx := app.ContextWithRequestID(c.Request.Context(), middleware.GetRequestID(c))
	c.JSON(http.StatusOK, h.dispatcher.Dispatch(ctx, req))
}

// Health handles liveness checks
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": formatTimestamp(h.now()),
	})
}

// ListMessages returns the stored messages of a workspace, newest first
func (h *Handlers) ListMessages(c *gin.Context) {
	workspaceID := c.Param("workspace_id")
	if err := validateWorkspaceID(workspaceID); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(msgInvalidRequest))
		return
	}

	messages, err := h.messages.List(c.Request.Context(), workspaceID)
	if err != nil {
		h.log(c).Error("Failed to list messages",
			zap.String("workspace_id", workspaceID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, errorBody(msgInternal))
		return
	}
	if messages == nil {
		messages = []store.Message{}
	}

	c.JSON(http.StatusOK, gin.H{
		"workspace_id": workspaceID,
		"messages":     messages,
	})
}

// bind reads and validates the canvas request body. It writes the 400
// response itself and reports false when the body is unusable.
func (h *Handlers) bind(c *gin.Context) (*types.Request, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(msgInvalidRequest))
		return nil, false
	}

	h.log(c).Debug("Canvas request body", zap.ByteString("body", body))

	req, err := types.Parse(body)
	if err != nil {
		h.log(c).Warn("Rejected canvas request", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorBody(msgInvalidRequest))
		return nil, false
	}
	return req, true
}

func (h *Handlers) log(c *gin.Context) *logging.Logger {
	return middleware.Logger(c, h.logger)
}
