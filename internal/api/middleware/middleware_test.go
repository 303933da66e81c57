package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bomorin-arch/intercom-webhook/internal/infrastructure/monitoring"
	"github.com/bomorin-arch/intercom-webhook/internal/logging"
	"github.com/bomorin-arch/intercom-webhook/internal/signature"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestCORS(t *testing.T) {
	router := setupTestRouter()
	router.Use(CORS(DefaultCORSConfig()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	tests := []struct {
		name           string
		method         string
		origin         string
		wantStatus     int
		wantCORSHeader bool
	}{
		{
			name:           "simple GET request with origin",
			method:         "GET",
			origin:         "http://localhost:3000",
			wantStatus:     http.StatusOK,
			wantCORSHeader: true,
		},
		{
			name:           "preflight OPTIONS request",
			method:         "OPTIONS",
			origin:         "http://localhost:3000",
			wantStatus:     http.StatusNoContent,
			wantCORSHeader: true,
		},
		{
			name:           "no origin header",
			method:         "GET",
			wantStatus:     http.StatusOK,
			wantCORSHeader: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.method == "OPTIONS" {
				req.Header.Set("Access-Control-Request-Method", "GET")
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCORSHeader {
				assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestCORSRestrictedOrigins(t *testing.T) {
	router := setupTestRouter()
	router.Use(CORS(DefaultCORSConfig("https://app.intercom.com")))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Origin", "https://app.intercom.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.intercom.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()

	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.Equal(t, []string{"GET", "POST", "OPTIONS"}, cfg.AllowMethods)
	assert.Contains(t, cfg.AllowHeaders, signature.HeaderName)
	assert.Contains(t, cfg.AllowHeaders, RequestIDHeader)
	assert.False(t, cfg.AllowCredentials)
}

func TestRequestID(t *testing.T) {
	router := setupTestRouter()
	router.Use(RequestID(logging.NewNop()))
	router.GET("/test", func(c *gin.Context) {
		assert.NotNil(t, Logger(c, nil))
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("reuses inbound id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", w.Body.String())
	})

	t.Run("replaces oversized id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	})
}

func TestLoggerFallback(t *testing.T) {
	router := setupTestRouter()
	fallback := logging.NewNop()
	router.GET("/test", func(c *gin.Context) {
		assert.Same(t, fallback, Logger(c, fallback))
		assert.Empty(t, GetRequestID(c))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccessLogPassesThrough(t *testing.T) {
	router := setupTestRouter()
	router.Use(RequestID(logging.NewNop()), AccessLog(logging.NewNop()))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for path, want := range map[string]int{"/ok": http.StatusOK, "/fail": http.StatusInternalServerError} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, want, w.Code)
	}
}

func signedRouter(gate *signature.Gate, metrics *monitoring.Metrics) *gin.Engine {
	router := setupTestRouter()
	router.POST("/submit", Signature(gate, logging.NewNop(), metrics), func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(body))
	})
	return router
}

func TestSignature(t *testing.T) {
	const secret = "shh"
	body := `{"workspace_id":"ws1"}`

	tests := []struct {
		name       string
		production bool
		secret     string
		header     string
		wantStatus int
		wantLabel  string
	}{
		{"valid signature in production", true, secret, signature.Sign(secret, []byte(body)), http.StatusOK, "valid"},
		{"prefixed signature", true, secret, "sha256=" + signature.Sign(secret, []byte(body)), http.StatusOK, "valid"},
		{"mismatch in production", true, secret, "deadbeef", http.StatusUnauthorized, "mismatch"},
		{"missing header in production", true, secret, "", http.StatusUnauthorized, "unsigned"},
		{"missing secret in production", true, "", "deadbeef", http.StatusUnauthorized, "unsigned"},
		{"mismatch in development", false, secret, "deadbeef", http.StatusOK, "mismatch"},
		{"missing header in development", false, secret, "", http.StatusOK, "unsigned"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := monitoring.NewMetrics()
			router := signedRouter(signature.NewGate(tt.secret, tt.production), metrics)

			req := httptest.NewRequest("POST", "/submit", strings.NewReader(body))
			if tt.header != "" {
				req.Header.Set(signature.HeaderName, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, body, w.Body.String(), "body must be readable downstream")
			} else {
				assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
			}

			allowed := "true"
			if tt.wantStatus != http.StatusOK {
				allowed = "false"
			}
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SignatureVerdicts.WithLabelValues(tt.wantLabel, allowed)))
		})
	}
}

func TestSignatureCoversRawBytes(t *testing.T) {
	const secret = "shh"
	signed := `{"workspace_id":"ws1"}`
	reformatted := `{ "workspace_id": "ws1" }`

	router := signedRouter(signature.NewGate(secret, true), nil)
	req := httptest.NewRequest("POST", "/submit", strings.NewReader(reformatted))
	req.Header.Set(signature.HeaderName, signature.Sign(secret, []byte(signed)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
