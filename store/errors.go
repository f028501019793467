package store

import "errors"

// Sentinel errors for connection operations.
var (
	ErrTransport      = errors.New("batch submission failed")
	ErrUnknownBackend = errors.New("unknown store backend")
)
