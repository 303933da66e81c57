package forwarder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/bomorin-arch/intercom-webhook/internal/infrastructure/monitoring"
	"github.com/bomorin-arch/intercom-webhook/internal/logging"
	"github.com/bomorin-arch/intercom-webhook/internal/shared/id"
)

// DeliveryHeader carries a unique id per delivery so the receiver can
// spot duplicates.
const DeliveryHeader = "X-Delivery-ID"

var (
	// ErrTransport covers network failures and timeouts.
	ErrTransport = errors.New("webhook transport failed")
	// ErrRejected covers non-2xx responses.
	ErrRejected = errors.New("webhook rejected payload")
)

// Config defines forwarder behavior.
type Config struct {
	URL     string
	Timeout time.Duration
	Enabled bool
}

// Client posts payloads to the automation webhook. A call is made once;
// failures are returned for the caller to log, never retried.
type Client struct {
	resty   *resty.Client
	config  Config
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewClient creates a forwarder client.
func NewClient(cfg Config, logger *logging.Logger, metrics *monitoring.Metrics) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	// Only the pooled transport is borrowed; retrying stays off.
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	restyClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "canvas-relay/1.0").
		SetTransport(retryClient.HTTPClient.Transport)

	return &Client{
		resty:   restyClient,
		config:  cfg,
		logger:  logger,
		metrics: metrics,
	}
}

// Enabled reports whether payloads are sent at all.
func (c *Client) Enabled() bool {
	return c.config.Enabled
}

// Forward posts p to the webhook.
func (c *Client) Forward(ctx context.Context, p Payload) error {
	if !c.config.Enabled {
		c.logger.Debug("Webhook forwarding disabled, dropping payload",
			zap.String("conversation_id", p.ConversationID))
		return nil
	}

	deliveryID := id.NewDeliveryID()
	logger := c.logger.With(zap.Stringer("delivery_id", deliveryID))

	timer := monitoring.NewTimer()
	resp, err := c.resty.R().
		SetContext(ctx).
		SetHeader(DeliveryHeader, deliveryID.String()).
		SetBody(p).
		Post(c.config.URL)
	if err != nil {
		c.metrics.RecordForward("error", timer.Elapsed())
		logger.Debug("Webhook transport error", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if !resp.IsSuccess() {
		c.metrics.RecordForward("rejected", timer.Elapsed())
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode(), truncate(resp.String(), 512))
	}

	c.metrics.RecordForward("success", timer.Elapsed())
	logger.Info("Feedback forwarded",
		zap.String("conversation_id", p.ConversationID),
		zap.String("workspace_id", p.WorkspaceID),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", timer.Elapsed()),
	)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
