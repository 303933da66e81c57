// Package main is the entry point for the Intercom canvas relay.
//
// The server renders the feedback canvas inside Intercom conversations and
// relays each submitted note to the automation webhook.
//
//	Intercom Messenger → canvas relay → automation webhook
//	                               → message store (Postgres or memory)
//
// Configuration:
//   - Environment variables, optionally from a .env file
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	APP_ENV=production INTERCOM_CLIENT_SECRET=... ./server -port 5000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
