package progress

import "errors"

var (
	// ErrNotInitialized indicates an operation before Initialize succeeded.
	ErrNotInitialized = errors.New("progress not initialized")
)
