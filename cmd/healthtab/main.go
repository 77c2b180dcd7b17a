package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/healthtab/internal/cli"
	"github.com/alexanderramin/healthtab/internal/config"
	"github.com/alexanderramin/healthtab/internal/logging"
	"github.com/alexanderramin/healthtab/internal/metrics"
	"github.com/alexanderramin/healthtab/internal/service"
	"github.com/alexanderramin/healthtab/internal/store"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.Options{
		ConfigFile: os.Getenv("HEALTHTAB_CONFIG"),
		EnvFile:    os.Getenv("HEALTHTAB_ENV_FILE"),
	})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	st, closer, err := store.Open(cfg.Store, cfg.StatePath())
	if err != nil {
		return fmt.Errorf("opening %s store: %w", cfg.Store, err)
	}
	defer closer.Close()

	logger.Debug("starting",
		zap.String("store", cfg.Store),
		zap.String("path", cfg.StatePath()),
		zap.String("config_file", cfg.ConfigFile),
		zap.String("timezone", loc.String()),
	)

	var recorder metrics.Recorder = metrics.Noop{}
	if cfg.MetricsTextfile != "" {
		provider, err := metrics.NewProvider(cfg.MetricsTextfile)
		if err != nil {
			// Leave a damaged textfile alone rather than overwrite it with fresh counters.
			logger.Warn("metrics disabled", zap.Error(err))
		} else {
			recorder = provider
		}
	}

	ctx := context.Background()
	app := &cli.App{
		Wellness: service.NewWellnessService(ctx, st,
			service.WithLocation(loc),
			service.WithObserver(service.NewLogUseCaseObserver(logger)),
			service.WithMetrics(recorder),
		),
	}

	// Detect interactive terminal for the check-in form and chat view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
