package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bomorin-arch/intercom-webhook/internal/api/middleware"
	"github.com/bomorin-arch/intercom-webhook/internal/app"
	"github.com/bomorin-arch/intercom-webhook/internal/canvas"
	"github.com/bomorin-arch/intercom-webhook/internal/config"
	"github.com/bomorin-arch/intercom-webhook/internal/forwarder"
	api "github.com/bomorin-arch/intercom-webhook/internal/http"
	"github.com/bomorin-arch/intercom-webhook/internal/infrastructure/monitoring"
	"github.com/bomorin-arch/intercom-webhook/internal/logging"
	"github.com/bomorin-arch/intercom-webhook/internal/signature"
	"github.com/bomorin-arch/intercom-webhook/internal/store"
)

// storeBudget is added to the forward timeout to bound a whole submission's
// side effects.
const storeBudget = 2 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	config  *config.Config
	router  *gin.Engine
	http    *http.Server
	logger  *logging.Logger
	metrics *monitoring.Metrics
	store   store.Store
}

// Deps are the collaborators Build wires together. Nil fields get defaults:
// a nop logger, fresh metrics, an in-memory store and the resty forwarder.
type Deps struct {
	Logger    *logging.Logger
	Metrics   *monitoring.Metrics
	Store     store.Store
	Forwarder app.Forwarder
}

// NewServer creates a server from configuration, opening the Postgres pool
// when DATABASE_URL is set.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	logger.Info("Initializing canvas relay",
		zap.String("port", cfg.Server.Port),
		zap.String("environment", cfg.App.Environment()),
		zap.String("canvas_mode", cfg.Canvas.Mode),
		zap.Bool("forward_enabled", cfg.Forwarder.Enabled),
	)

	st, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	return Build(cfg, Deps{Logger: logger, Store: st})
}

func openStore(ctx context.Context, cfg config.StoreConfig, logger *logging.Logger) (store.Store, error) {
	if cfg.DatabaseURL == "" {
		logger.Info("DATABASE_URL not set, using in-memory message store")
		return store.NewMemory(), nil
	}

	pool, err := store.Connect(ctx, cfg.DatabaseURL, store.WithMaxConns(cfg.MaxConns))
	if err != nil {
		return nil, fmt.Errorf("connect message store: %w", err)
	}
	pg, err := store.NewPostgres(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("prepare message store: %w", err)
	}
	logger.Info("Connected to Postgres message store", zap.Int32("max_conns", cfg.MaxConns))
	return pg, nil
}

// Build wires handlers, middleware and routes without touching the network.
func Build(cfg *config.Config, deps Deps) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := canvas.ParseMode(cfg.Canvas.Mode)
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = monitoring.NewMetrics()
	}
	st := deps.Store
	if st == nil {
		st = store.NewMemory()
	}
	fwd := deps.Forwarder
	if fwd == nil {
		client := forwarder.NewClient(forwarder.Config{
			URL:     cfg.Forwarder.URL,
			Timeout: cfg.Forwarder.Timeout,
			Enabled: cfg.Forwarder.Enabled,
		}, logger.Named("forwarder"), metrics)
		if !client.Enabled() {
			logger.Warn("Webhook forwarding disabled, feedback will only be stored")
		}
		fwd = client
	}

	production := cfg.App.IsProduction()
	if production && cfg.Intercom.ClientSecret == "" {
		logger.Warn("INTERCOM_CLIENT_SECRET is empty in production, every canvas request will be rejected")
	}
	gate := signature.NewGate(cfg.Intercom.ClientSecret, production)

	dispatcher := app.NewDispatcher(fwd, st, logger.Named("dispatcher")).
		WithMetrics(metrics).
		WithMode(mode).
		WithTimeout(cfg.Forwarder.Timeout + storeBudget)
	handlers := api.NewHandlers(dispatcher, st, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(logger))
	router.Use(middleware.AccessLog(logger))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORS.AllowOrigins...)))

	signed := router.Group("/", middleware.Signature(gate, logger, metrics))
	signed.POST("/initialize", handlers.Initialize)
	signed.POST("/submit", handlers.Submit)

	router.GET("/health", handlers.Health)
	router.GET("/messages/:workspace_id", handlers.ListMessages)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	return &Server{
		config:  cfg,
		router:  router,
		http:    &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 10 * time.Second},
		logger:  logger,
		metrics: metrics,
		store:   st,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server and blocks until it stops. A server stopped by
// Shutdown returns nil.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then releases resources.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.Close()
	return err
}

// Close releases the store and flushes the logger.
func (s *Server) Close() {
	s.store.Close()
	s.logger.Info("Server stopped")
	_ = s.logger.Sync()
}
