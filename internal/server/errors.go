package server

import "errors"

// Server-specific errors
var (
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrServerNotRunning     = errors.New("server is not running")
	ErrMaxSessionsReached   = errors.New("maximum sessions reached")
	ErrInvalidConfig        = errors.New("invalid server configuration")
	ErrUnknownQueryType     = errors.New("unknown query type")
	ErrMissingBox           = errors.New("intercept query requires a box")
	ErrEmptySweep           = errors.New("sweep query requires at least one segment")
)
