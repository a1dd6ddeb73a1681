package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Export status values.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Export records one résumé generation attempt.
type Export struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	Locale     string    `json:"locale"`
	Channel    string    `json:"channel"` // "cli", "http" or "mcp"
	Filename   string    `json:"filename"`
	Pages      int       `json:"pages"`
	SizeBytes  int64     `json:"sizeBytes"`
	DurationMS int64     `json:"durationMs"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
}
