package database

import "errors"

var (
	// ErrNotReady is returned once the pool has been closed during shutdown.
	ErrNotReady = errors.New("database not ready")
	// ErrUnreachable wraps a failed connectivity check.
	ErrUnreachable = errors.New("database unreachable")
)
