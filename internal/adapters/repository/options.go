package repository

import (
	"time"

	"github.com/slen516-afk/fraudboard/pkg/logger"
)

// Option applies a configuration option to the SQLStore.
type Option func(*SQLStore)

// WithTable sets the postings table name.
func WithTable(name string) Option {
	return func(s *SQLStore) {
		if name != "" {
			s.table = name
		}
	}
}

// WithDriver sets the driver name, which selects the placeholder style.
func WithDriver(name string) Option {
	return func(s *SQLStore) {
		if name != "" {
			s.driver = name
		}
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(l logger.Logger) Option {
	return func(s *SQLStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBreakerThreshold sets how many consecutive upstream failures open the breaker.
func WithBreakerThreshold(n int) Option {
	return func(s *SQLStore) {
		if n > 0 {
			s.breakerThreshold = uint32(n)
		}
	}
}

// WithBreakerTimeout sets how long the breaker stays open before probing again.
func WithBreakerTimeout(d time.Duration) Option {
	return func(s *SQLStore) {
		if d > 0 {
			s.breakerTimeout = d
		}
	}
}

// WithInsertBatchSize sets how many rows go into one INSERT statement.
func WithInsertBatchSize(n int) Option {
	return func(s *SQLStore) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithMaxOpenConns caps the connection pool.
func WithMaxOpenConns(n int) Option {
	return func(s *SQLStore) {
		if n > 0 {
			s.maxOpenConns = n
		}
	}
}
