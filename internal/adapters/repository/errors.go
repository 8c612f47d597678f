package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrFetch        = errors.New("upstream fetch failed")
	ErrUnavailable  = errors.New("store unavailable")
	ErrInvalidTable = errors.New("invalid table name")
	ErrInsert       = errors.New("insert failed")
	ErrOpen         = errors.New("open store failed")
)
