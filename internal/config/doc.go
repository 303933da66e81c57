// Package config provides 12-factor configuration management for the canvas relay.
//
// Configuration is loaded from environment variables with sensible defaults.
// A .env file in the working directory is read first when present.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, shutdown timeout)
//   - App: Deployment environment (production enables the strict signature gate)
//   - Intercom: Shared secret for X-Body-Signature
//   - Canvas: Wizard or single-screen form
//   - Forwarder: Outbound webhook URL and timeout
//   - Store: Postgres DSN (empty = in-memory)
//   - Logging: Log level and output format
//   - CORS: Origins allowed on the read endpoint
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//
// Environment Variables:
//   - PORT, HOST, SHUTDOWN_TIMEOUT
//   - APP_ENV, NODE_ENV
//   - INTERCOM_CLIENT_SECRET
//   - CANVAS_MODE
//   - CLAY_WEBHOOK_URL, FORWARD_TIMEOUT, FORWARD_ENABLED
//   - DATABASE_URL, DB_MAX_CONNS
//   - LOG_LEVEL, LOG_DEV
//   - CORS_ALLOW_ORIGINS
package config
