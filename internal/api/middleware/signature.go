package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bomorin-arch/intercom-webhook/internal/infrastructure/monitoring"
	"github.com/bomorin-arch/intercom-webhook/internal/logging"
	"github.com/bomorin-arch/intercom-webhook/internal/signature"
	"github.com/bomorin-arch/intercom-webhook/internal/types"
)

// Signature enforces the gate on the raw body. The body is buffered and
// restored so handlers can read it again.
func Signature(gate *signature.Gate, logger *logging.Logger, metrics *monitoring.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			var err error
			body, err = io.ReadAll(io.LimitReader(c.Request.Body, types.MaxBodySize+1))
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
				return
			}
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		d := gate.Evaluate(body, c.GetHeader(signature.HeaderName))
		metrics.RecordSignature(d.Verdict.String(), d.Allowed)

		if d.Verdict == signature.VerdictMismatch || !d.Allowed {
			Logger(c, logger).Warn("Invalid Intercom signature",
				zap.String("verdict", d.Verdict.String()),
				zap.Bool("production", gate.Production()),
				zap.Error(d.Err),
			)
		}

		if !d.Allowed {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Next()
	}
}
