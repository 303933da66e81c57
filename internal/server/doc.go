// Package server wires the canvas relay together.
//
// Server Lifecycle:
//  1. Load configuration from environment/flags
//  2. Initialize logger and metrics
//  3. Open the message store (Postgres or in-memory)
//  4. Build the forwarder, dispatcher and signature gate
//  5. Setup HTTP routes and middleware
//  6. Start HTTP server
//  7. Graceful shutdown on signal
//
// Example Usage:
//
//	cfg, err := config.Load()
//	srv, err := server.NewServer(ctx, cfg)
//	go srv.Run()
//	<-ctx.Done()
//	srv.Shutdown(shutdownCtx)
package server
