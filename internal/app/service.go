// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/slen516-afk/fraudboard/internal/adapters/repository"
	"github.com/slen516-afk/fraudboard/internal/domain/aggregate"
	"github.com/slen516-afk/fraudboard/internal/domain/liftscore"
	"github.com/slen516-afk/fraudboard/internal/domain/model"
	"github.com/slen516-afk/fraudboard/internal/domain/types"
	"github.com/slen516-afk/fraudboard/pkg/logger"
	"github.com/slen516-afk/fraudboard/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultFetchTimeout     = 20 * time.Second
	defaultMaxScatterPoints = 25
)

// Service builds dashboard payloads from the store.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	engine     *liftscore.Engine
	aggregator *aggregate.Aggregator

	// Configuration
	fetchTimeout     time.Duration
	maxScatterPoints int

	// State
	started  bool
	requests atomic.Int64
	last     buildStats

	// Logging
	logger logger.Logger
}

// buildStats describes the most recent successful build.
type buildStats struct {
	at       time.Time
	duration time.Duration
	rows     int
	fraud    int
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the postings store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFetchTimeout bounds each store fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithMaxScatterPoints caps the section7 scatter points.
func WithMaxScatterPoints(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxScatterPoints = n
		}
	}
}

// WithEngine sets the lift-score engine used for table2.
func WithEngine(e *liftscore.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		fetchTimeout:     defaultFetchTimeout,
		maxScatterPoints: defaultMaxScatterPoints,
		logger:           nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start prepares the aggregator. A store is required.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		return ErrNoStore
	}

	s.logger.Info(ctx, "starting dashboard service...")

	aggOpts := []aggregate.Option{aggregate.WithMaxScatterPoints(s.maxScatterPoints)}
	if s.engine != nil {
		aggOpts = append(aggOpts, aggregate.WithEngine(s.engine))
	}
	s.aggregator = aggregate.New(aggOpts...)

	s.started = true
	s.logger.Info(ctx, "dashboard service started",
		logger.Duration("fetchTimeout", s.fetchTimeout),
		logger.Int("maxScatterPoints", s.maxScatterPoints),
	)

	return nil
}

// Stop closes the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping dashboard service...")

	if err := s.store.Close(); err != nil {
		s.logger.Warn(context.Background(), "failed to close store", logger.Error(err))
	}

	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// Dashboard fetches the current snapshot and aggregates it.
// Schema and upstream errors are returned unchanged; nothing is retried.
func (s *Service) Dashboard(ctx context.Context) (*types.Payload, error) {
	s.mu.RLock()
	started, store, agg := s.started, s.store, s.aggregator
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}
	s.requests.Add(1)

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	start := time.Now()
	tbl, err := store.Fetch(fetchCtx)
	if err != nil {
		s.logFailure(ctx, "fetch", err)
		return nil, fmt.Errorf("fetch postings: %w", err)
	}

	payload, err := agg.Build(tbl)
	if err != nil {
		s.logFailure(ctx, "aggregate", err)
		return nil, fmt.Errorf("aggregate postings: %w", err)
	}

	took := time.Since(start)
	fraud := payload.Charts.Section1.Values
	fraudCount := 0
	if len(fraud) == 2 {
		fraudCount = fraud[1]
	}
	metrics.RecordPayloadBuilt(len(tbl.Records), fraudCount, float64(took.Microseconds())/1000)

	s.mu.Lock()
	s.last = buildStats{at: time.Now(), duration: took, rows: len(tbl.Records), fraud: fraudCount}
	s.mu.Unlock()

	s.logger.Debug(ctx, "dashboard payload built",
		logger.Int("rows", len(tbl.Records)),
		logger.Int("fraudulent", fraudCount),
		logger.Duration("took", took),
	)
	return payload, nil
}

func (s *Service) logFailure(ctx context.Context, stage string, err error) {
	fields := []logger.Field{logger.String("stage", stage), logger.Error(err)}
	if field, ok := schemaField(err); ok {
		fields = append(fields, logger.String("field", field))
	}
	s.logger.Error(ctx, "dashboard build failed", fields...)
}

// Health pings the store.
func (s *Service) Health(ctx context.Context) error {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()
	if store == nil {
		return ErrNoStore
	}
	return store.Ping(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"requestsServed":   s.requests.Load(),
		"fetchTimeoutMs":   s.fetchTimeout.Milliseconds(),
		"maxScatterPoints": s.maxScatterPoints,
		"lastRows":         s.last.rows,
		"lastFraudulent":   s.last.fraud,
		"lastBuildMs":      float64(s.last.duration.Microseconds()) / 1000,
		"lastBuildAt":      "",
	}
	if !s.last.at.IsZero() {
		stats["lastBuildAt"] = s.last.at.UTC().Format(time.RFC3339)
	}
	if b, ok := s.store.(interface{ BreakerState() string }); ok {
		stats["breakerState"] = b.BreakerState()
	}

	return stats
}

func schemaField(err error) (string, bool) {
	var se *model.SchemaError
	if errors.As(err, &se) {
		return se.Field, true
	}
	return "", false
}
