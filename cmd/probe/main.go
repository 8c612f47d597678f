package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/slen516-afk/fraudboard/internal/probe"
	"github.com/slen516-afk/fraudboard/pkg/logger"
)

var version = "dev"

// Exit codes.
const (
	exitFailure   = 1
	exitViolation = 2
)

func main() {
	cli := &probe.CLI{}
	parser, err := kong.New(cli,
		kong.Name("probe"),
		kong.Description("Seed and verify the fraud dashboard."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(exitFailure)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		parser.FatalIfErrorf(err)
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(exitFailure)
	}
	logger.SetOutput(os.Stderr)
	if err := logger.SetFormat(cli.LogFormat); err != nil {
		_ = logger.SetFormat(logger.FormatConsole)
	}
	if err := logger.SetLevelString(cli.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runCtx := &probe.Context{
		Ctx:    ctx,
		Out:    os.Stdout,
		Logger: logger.Get(),
	}
	if err := kctx.Run(runCtx); err != nil {
		logger.Get().Error(ctx, "probe failed", logger.Error(err))
		stop()
		if probe.IsViolation(err) {
			os.Exit(exitViolation)
		}
		os.Exit(exitFailure)
	}
}
