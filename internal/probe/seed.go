package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/slen516-afk/fraudboard/internal/domain/model"
	"github.com/slen516-afk/fraudboard/pkg/logger"
)

const defaultSeedBatch = 1000

// Inserter is the write side of the postings store.
type Inserter interface {
	Insert(ctx context.Context, records []model.Record) (int, error)
}

// Seed generates postings per cfg and writes them through ins in batches.
func Seed(ctx context.Context, ins Inserter, cfg SeedConfig) (SeedStats, error) {
	stats := SeedStats{RunID: RunID(cfg.Seed)}
	if cfg.Count <= 0 {
		return stats, fmt.Errorf("%w: count must be positive", ErrInvalidConfig)
	}
	if cfg.FraudRatio < 0 || cfg.FraudRatio > 1 {
		return stats, fmt.Errorf("%w: fraud ratio must be within [0, 1]", ErrInvalidConfig)
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultSeedBatch
	}

	start := time.Now()
	log := logger.Get()
	log.Info(ctx, "generating postings",
		logger.String("runID", stats.RunID),
		logger.Int("count", cfg.Count),
		logger.Float64("fraudRatio", cfg.FraudRatio),
	)

	records := Generate(cfg.Count, cfg.FraudRatio, cfg.Seed)
	stats.Generated = len(records)
	for _, r := range records {
		if r.Fraudulent {
			stats.Fraudulent++
		}
	}

	for lo := 0; lo < len(records); lo += batch {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("seed cancelled after %d rows: %w", stats.Inserted, err)
		}
		hi := min(lo+batch, len(records))
		n, err := ins.Insert(ctx, records[lo:hi])
		if err != nil {
			return stats, fmt.Errorf("insert rows %d-%d: %w", lo, hi, err)
		}
		stats.Inserted += n
	}

	stats.Duration = time.Since(start)
	log.Info(ctx, "seed completed",
		logger.String("runID", stats.RunID),
		logger.Int("inserted", stats.Inserted),
		logger.Int("fraudulent", stats.Fraudulent),
		logger.Duration("duration", stats.Duration),
	)
	return stats, nil
}
