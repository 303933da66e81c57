// Package middleware provides the HTTP middleware stack for the canvas relay.
//
// Middleware stack includes:
//   - RequestID: X-Request-ID propagation and a request-scoped logger
//   - AccessLog: One structured log line per request
//   - Signature: X-Body-Signature gate on the canvas endpoints
//   - CORS: Cross-origin access to the read endpoint
//
// Example Usage:
//
//	router.Use(middleware.RequestID(logger), middleware.AccessLog(logger))
//	canvas := router.Group("/", middleware.Signature(gate, logger, metrics))
package middleware
