package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoStore    = errors.New("no store configured")
	ErrNotStarted = errors.New("service not started")
)
