package probe

import "errors"

// Sentinel errors for probe runs.
var (
	ErrInvalidConfig = errors.New("invalid probe config")
	ErrUnhealthy     = errors.New("service unhealthy")
	ErrStatus        = errors.New("unexpected status")
	ErrInvariant     = errors.New("payload invariant violated")
)
