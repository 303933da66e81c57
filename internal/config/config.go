package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/bomorin-arch/intercom-webhook/internal/canvas"
)

// DefaultWebhookURL is used when CLAY_WEBHOOK_URL is not set.
const DefaultWebhookURL = "https://api.clay.com/v3/sources/webhook/pull-in-data-from-a-webhook-b22d6978-affc-4de2-a1f7-2a8be0555b2b"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	App       AppConfig
	Intercom  IntercomConfig
	Canvas    CanvasConfig
	Forwarder ForwarderConfig
	Store     StoreConfig
	Logging   LogConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"5000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// AppConfig holds the deployment environment.
type AppConfig struct {
	Env     string `envconfig:"APP_ENV"`
	NodeEnv string `envconfig:"NODE_ENV" default:"development"`
}

// IntercomConfig holds the shared secret used to sign canvas requests.
type IntercomConfig struct {
	ClientSecret string `envconfig:"INTERCOM_CLIENT_SECRET"`
}

// CanvasConfig selects which form the app renders.
type CanvasConfig struct {
	Mode string `envconfig:"CANVAS_MODE" default:"wizard"`
}

// ForwarderConfig holds outbound webhook configuration.
type ForwarderConfig struct {
	URL     string        `envconfig:"CLAY_WEBHOOK_URL"`
	Timeout time.Duration `envconfig:"FORWARD_TIMEOUT" default:"5s"`
	Enabled bool          `envconfig:"FORWARD_ENABLED" default:"true"`
}

// StoreConfig holds message store configuration. An empty DatabaseURL
// selects the in-memory store.
type StoreConfig struct {
	DatabaseURL string `envconfig:"DATABASE_URL"`
	MaxConns    int32  `envconfig:"DB_MAX_CONNS" default:"4"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// CORSConfig holds the origins allowed to read the message endpoint.
type CORSConfig struct {
	AllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
}

// Environment returns APP_ENV when set, NODE_ENV otherwise.
func (a AppConfig) Environment() string {
	if env := strings.TrimSpace(a.Env); env != "" {
		return strings.ToLower(env)
	}
	return strings.ToLower(strings.TrimSpace(a.NodeEnv))
}

// IsProduction reports whether the strict signature policy applies.
func (a AppConfig) IsProduction() bool {
	env := a.Environment()
	return env == "production" || env == "prod"
}

// Load loads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Forwarder.URL == "" {
		cfg.Forwarder.URL = DefaultWebhookURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "5000",
			Host:            "0.0.0.0",
			ShutdownTimeout: 10 * time.Second,
		},
		App: AppConfig{
			NodeEnv: "development",
		},
		Canvas: CanvasConfig{
			Mode: string(canvas.ModeWizard),
		},
		Forwarder: ForwarderConfig{
			URL:     DefaultWebhookURL,
			Timeout: 5 * time.Second,
			Enabled: true,
		},
		Store: StoreConfig{
			MaxConns: 4,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
		},
	}
}

// Validate checks values envconfig cannot check on its own.
func (c *Config) Validate() error {
	var errs []error

	if _, err := canvas.ParseMode(c.Canvas.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.Forwarder.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("FORWARD_TIMEOUT must be positive, got %s", c.Forwarder.Timeout))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.Server.ShutdownTimeout))
	}
	if c.Forwarder.Enabled {
		u, err := url.Parse(c.Forwarder.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("CLAY_WEBHOOK_URL must be an http(s) URL, got %q", c.Forwarder.URL))
		}
	}
	if c.Store.MaxConns <= 0 {
		errs = append(errs, fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.Store.MaxConns))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
