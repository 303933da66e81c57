/*
Package monitoring provides Prometheus metrics for the canvas relay.

# Overview

Each Metrics value owns its registry. The server exposes it on GET /metrics.

# Features

- HTTP request metrics (count, latency) labelled by route template
- Canvas submissions by clicked component and resulting screen
- Signature verdicts
- Outbound webhook attempts and latency
- Message store writes
- Go runtime and process collectors

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer()
	// ... call the webhook ...
	metrics.RecordForward("success", timer.Elapsed())
*/
package monitoring
