package scoredb

import "errors"

// Sentinel errors for the repository layer.
var (
	// ErrNotFound indicates no score was recorded for the participant on that day.
	ErrNotFound = errors.New("score not found")
)
