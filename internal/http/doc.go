// Package http provides the Gin handlers for the canvas relay.
//
// Endpoints:
//   - Canvas: POST /initialize and POST /submit
//   - Health: GET /health
//   - Messages: GET /messages/:workspace_id
//
// Every error body has the shape {"error": "<message>"} with a generic
// message; field-level validation detail is logged, never returned.
//
// Example Usage:
//
//	handlers := http.NewHandlers(dispatcher, store, logger)
//	router.POST("/submit", handlers.Submit)
//	router.GET("/health", handlers.Health)
package http
