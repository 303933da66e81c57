package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bomorin-arch/intercom-webhook/internal/canvas"
	"github.com/bomorin-arch/intercom-webhook/internal/forwarder"
	"github.com/bomorin-arch/intercom-webhook/internal/infrastructure/monitoring"
	"github.com/bomorin-arch/intercom-webhook/internal/logging"
	"github.com/bomorin-arch/intercom-webhook/internal/store"
	"github.com/bomorin-arch/intercom-webhook/internal/types"
)

// Forwarder interface for dependency injection
type Forwarder interface {
	Forward(ctx context.Context, p forwarder.Payload) error
}

// Dispatcher maps a clicked component to the next canvas and runs the
// side effects of a send.
type Dispatcher struct {
	forwarder Forwarder
	store     store.Saver
	logger    *logging.Logger
	metrics   *monitoring.Metrics
	mode      canvas.Mode
	timeout   time.Duration
	now       func() time.Time
}

// NewDispatcher creates a dispatcher serving the wizard form. Either
// dependency may be nil to skip that side effect.
func NewDispatcher(fwd Forwarder, saver store.Saver, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Dispatcher{
		forwarder: fwd,
		store:     saver,
		logger:    logger,
		mode:      canvas.ModeWizard,
		timeout:   5 * time.Second,
		now:       time.Now,
	}
}

// WithMetrics attaches a metrics collector.
func (d *Dispatcher) WithMetrics(metrics *monitoring.Metrics) *Dispatcher {
	d.metrics = metrics
	return d
}

// WithMode selects the wizard or single-screen form.
func (d *Dispatcher) WithMode(mode canvas.Mode) *Dispatcher {
	d.mode = mode
	return d
}

// WithTimeout bounds the forward and save steps of a send.
func (d *Dispatcher) WithTimeout(timeout time.Duration) *Dispatcher {
	if timeout > 0 {
		d.timeout = timeout
	}
	return d
}

// WithClock overrides the payload timestamp source.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// Initial returns the canvas shown by /initialize.
func (d *Dispatcher) Initial() canvas.Response {
	return canvas.Render(d.mode.Initial(), canvas.Options{})
}

// Dispatch decides the next canvas for a /submit request. Unknown or
// missing component ids fall back to the initial screen.
func (d *Dispatcher) Dispatch(ctx context.Context, req *types.Request) canvas.Response {
	screen, opts := d.route(ctx, req)
	d.metrics.RecordSubmission(triggerLabel(req.ComponentID), string(screen))
	return canvas.Render(screen, opts)
}

func (d *Dispatcher) route(ctx context.Context, req *types.Request) (canvas.Screen, canvas.Options) {
	switch req.ComponentID {
	case canvas.ButtonSwitchToComplete:
		return canvas.ScreenComplete, canvas.Options{}

	case canvas.ButtonSwitchToLite:
		return canvas.ScreenLite, canvas.Options{}

	case canvas.ButtonSendLite:
		feedback := req.Input(canvas.FieldFeedback)
		if types.IsBlank(feedback) {
			return canvas.ScreenLite, canvas.Options{Error: true}
		}
		d.deliver(ctx, req, forwarder.BuildPayload(req, feedback, d.now()))
		return canvas.ScreenSuccess, canvas.Options{Message: feedback}

	case canvas.ButtonSendComplete:
		feedback := req.Input(canvas.FieldFeedback)
		if types.IsBlank(feedback) {
			return canvas.ScreenComplete, canvas.Options{}
		}
		d.deliver(ctx, req, forwarder.BuildPayload(req, feedback, d.now()).WithDetails(req))
		return canvas.ScreenSuccess, canvas.Options{Message: feedback}

	case canvas.ButtonSend:
		feedback := req.Input(canvas.FieldText)
		if types.IsBlank(feedback) {
			return canvas.ScreenInput, canvas.Options{Error: true}
		}
		d.deliver(ctx, req, forwarder.BuildPayload(req, feedback, d.now()))
		return canvas.ScreenSuccess, canvas.Options{Message: feedback}

	default:
		// reset_button, unknown ids and no id at all
		return d.mode.Initial(), canvas.Options{}
	}
}

// deliver forwards and persists a submission. Failures are logged and
// never change the canvas returned to the client.
func (d *Dispatcher) deliver(ctx context.Context, req *types.Request, p forwarder.Payload) {
	// Detach from client cancellation; the timeout still bounds the call.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	logger := d.logger.With(
		zap.String("request_id", RequestIDFromContext(ctx)),
		zap.String("workspace_id", req.WorkspaceID),
		zap.String("conversation_id", p.ConversationID),
		zap.String("component_id", req.ComponentID),
	)

	if d.forwarder != nil {
		if err := d.forwarder.Forward(ctx, p); err != nil {
			logger.Error("Webhook forward failed", zap.Error(err))
		}
	}

	if d.store == nil {
		return
	}
	// A missing workspace id is stored under "" so the forward and the
	// store record the same set of sends.
	msg, err := d.store.Save(ctx, req.WorkspaceID, p.Feedback)
	if err != nil {
		d.metrics.RecordStoreWrite("error")
		logger.Error("Failed to store message", zap.Error(err))
		return
	}
	d.metrics.RecordStoreWrite("success")
	logger.Debug("Message stored", zap.Int64("message_id", msg.ID))
}

// triggerLabel keeps client-supplied ids out of metric labels.
func triggerLabel(componentID string) string {
	switch componentID {
	case "", canvas.ButtonSwitchToComplete, canvas.ButtonSwitchToLite,
		canvas.ButtonSendLite, canvas.ButtonSendComplete,
		canvas.ButtonSend, canvas.ButtonReset:
		return componentID
	default:
		return "unknown"
	}
}
