// Package logging provides structured logging using uber/zap.
//
// Production writes JSON lines with lowercase levels and ISO-8601 times.
// Development writes coloured console lines. Request-scoped loggers are
// derived with With, so every line written while handling a canvas request
// carries its request id.
//
//	logger, err := logging.New(logging.Config{Level: "info"})
//	logger.Error("Webhook forward failed", zap.Error(err))
package logging
