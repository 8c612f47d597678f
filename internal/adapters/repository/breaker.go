package repository

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/slen516-afk/fraudboard/internal/domain/model"
	"github.com/slen516-afk/fraudboard/pkg/logger"
	"github.com/slen516-afk/fraudboard/pkg/metrics"
)

// Breaker defaults.
const (
	defaultBreakerThreshold   = 5
	defaultBreakerTimeout     = 30 * time.Second
	defaultBreakerMaxRequests = 1
)

// newBreaker opens after threshold consecutive upstream failures and stays
// open for timeout. Schema errors and caller cancellations are not failures.
func newBreaker(name string, threshold uint32, timeout time.Duration, l logger.Logger) *gobreaker.CircuitBreaker[any] {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: defaultBreakerMaxRequests,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, model.ErrSchema) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.UpdateBreakerState(breakerStateValue(to))
			l.Warn(context.Background(), "circuit breaker state changed",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		},
	}
	return gobreaker.NewCircuitBreaker[any](settings)
}

func breakerStateValue(s gobreaker.State) int {
	switch s {
	case gobreaker.StateOpen:
		return metrics.BreakerOpen
	case gobreaker.StateHalfOpen:
		return metrics.BreakerHalfOpen
	default:
		return metrics.BreakerClosed
	}
}

// isRejection reports whether err came from the breaker refusing the call.
func isRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
