// Package probe is the operator tool for seeding synthetic postings and
// verifying a running dashboard service.
package probe

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kong"
	"github.com/slen516-afk/fraudboard/internal/adapters/repository"
	"github.com/slen516-afk/fraudboard/internal/config"
	"github.com/slen516-afk/fraudboard/pkg/logger"
)

// CLI is the kong command tree of the probe binary.
type CLI struct {
	LogLevel  string `help:"Log level: debug, info, warn, error." default:"info"`
	LogFormat string `help:"Log format: console or json." enum:"console,json" default:"console"`

	VersionFlag kong.VersionFlag `name:"version" help:"Print version."`

	Seed   SeedCmd   `cmd:"" help:"Insert synthetic postings into the configured table."`
	Verify VerifyCmd `cmd:"" help:"Check a running service's dashboard payload."`
}

// Context is passed to every command's Run.
type Context struct {
	Ctx    context.Context
	Out    io.Writer
	Logger logger.Logger
}

// SeedCmd generates postings and writes them to the store named by the
// FRAUDBOARD_ configuration.
type SeedCmd struct {
	Count      int     `help:"Number of postings to generate." default:"1000"`
	FraudRatio float64 `name:"fraud-ratio" help:"Share of fraudulent postings." default:"0.05"`
	Seed       uint64  `help:"Generator seed." default:"1"`
	BatchSize  int     `name:"batch-size" help:"Postings per insert call." default:"1000"`
}

// Run loads the store configuration and seeds it.
func (c *SeedCmd) Run(kctx *Context) error {
	cfg, err := config.Load(kctx.Ctx)
	if err != nil {
		return err
	}
	store, err := repository.OpenConfig(cfg, repository.WithLogger(kctx.Logger.Named("repository")))
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := Seed(kctx.Ctx, store, SeedConfig{
		Count:      c.Count,
		FraudRatio: c.FraudRatio,
		Seed:       c.Seed,
		BatchSize:  c.BatchSize,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(kctx.Out, "Seeded %d postings (%d fraudulent) into %s in %s [run %s]\n",
		stats.Inserted, stats.Fraudulent, cfg.DBTable, stats.Duration.Round(time.Millisecond), stats.RunID)
	return err
}

// VerifyCmd checks the payload served by a running instance.
type VerifyCmd struct {
	URL     string        `help:"Base URL of the service." default:"http://localhost:8001"`
	Timeout time.Duration `help:"HTTP request timeout." default:"30s"`
}

// Run fetches and verifies the payload.
func (c *VerifyCmd) Run(kctx *Context) error {
	_, err := RunVerify(kctx.Ctx, VerifyConfig{BaseURL: c.URL, Timeout: c.Timeout}, kctx.Out)
	return err
}
