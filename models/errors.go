package models

import "errors"

// Cipher errors are detected before any sample is processed. Callers match
// them with errors.Is; the wrapped message carries the offending value.
var (
	// ErrInvalidKey indicates a malformed key string or out-of-range parameter.
	ErrInvalidKey = errors.New("invalid key")

	// ErrDimensionMismatch indicates a buffer length inconsistent with the
	// declared width, height and channel count.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrUnsupportedFormat indicates a non-image input or an unsupported
	// channel count.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
