package http

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bomorin-arch/intercom-webhook/internal/forwarder"
)

const (
	msgInvalidRequest = "Invalid request"
	msgInternal       = "Internal error"
)

const maxWorkspaceIDLength = 255

var errInvalidWorkspaceID = errors.New("invalid workspace id")

func errorBody(msg string) gin.H {
	return gin.H{"error": msg}
}

// formatTimestamp renders ISO-8601 with millisecond precision in UTC.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(forwarder.TimestampLayout)
}

func validateWorkspaceID(id string) error {
	if id == "" || len(id) > maxWorkspaceIDLength {
		return errInvalidWorkspaceID
	}
	return nil
}
