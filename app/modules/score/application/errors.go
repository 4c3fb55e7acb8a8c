package scoreservice

import "errors"

var (
	// ErrMalformedResult is returned when a game result payload is not the expected shape.
	ErrMalformedResult = errors.New("malformed game result")

	// ErrStoreUnavailable wraps storage failures. The caller may retry.
	ErrStoreUnavailable = errors.New("score store unavailable")
)
