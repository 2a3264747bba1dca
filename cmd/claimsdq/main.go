package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"claimsdq/internal/config"
	"claimsdq/internal/metrics"
	"claimsdq/internal/metrics/datadog"
	"claimsdq/internal/metrics/prompush"
	"claimsdq/internal/pipeline"

	// register all backends with the storage factory.
	// config specifies which to use but we need to build in support for all of them.
	_ "claimsdq/internal/storage/all"
)

// main is the entry point for the claimsdq binary. It assembles the run
// configuration from defaults, .env, environment, and flags (in that
// precedence order), optionally initializes a metrics backend, and executes
// the cleaning pipeline.
func main() {
	// .env participates in the environment overlay; a missing file is fine.
	_ = godotenv.Load()
	cfg := config.FromEnv(config.Default())

	flag.StringVar(&cfg.Input, "input", cfg.Input, "raw claims extract CSV path (required)")
	flag.StringVar(&cfg.Output, "output", cfg.Output, "golden dataset CSV path")
	flag.StringVar(&cfg.Report, "report", cfg.Report, "quality report JSON path")
	flag.StringVar(&cfg.Job, "job", cfg.Job, "job name for metrics and report metadata")
	flag.IntVar(&cfg.TargetRows, "target-rows", cfg.TargetRows, "golden sample size (0 disables trimming)")
	flag.StringVar(&cfg.Storage.Kind, "store", cfg.Storage.Kind, "optional database sink (sqlite, postgres)")
	flag.StringVar(&cfg.Storage.DSN, "dsn", cfg.Storage.DSN, "database sink connection string")
	flag.StringVar(&cfg.Storage.Table, "table", cfg.Storage.Table, "database sink table name")
	flag.StringVar(&cfg.Metrics.Backend, "metrics-backend", cfg.Metrics.Backend, "metrics backend to use (prompush, datadog, none)")
	flag.StringVar(&cfg.Metrics.PushgatewayURL, "pushgateway-url", cfg.Metrics.PushgatewayURL, "Pushgateway base URL")
	flag.StringVar(&cfg.Metrics.DogstatsdAddr, "dogstatsd-addr", cfg.Metrics.DogstatsdAddr, "DogStatsD address, e.g. 127.0.0.1:8125")
	comma := flag.String("comma", "", "field delimiter override (single character)")
	validateOnly := flag.Bool("validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	if *comma != "" {
		cfg.Comma = []rune(*comma)[0]
	}

	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		fatalf("configuration is invalid")
	}
	if *validateOnly {
		fmt.Fprintln(os.Stderr, "configuration is valid")
		return
	}

	logger := newLogger(*verbose)
	defer logger.Sync()

	setupMetrics(cfg, logger)
	defer func() {
		if err := metrics.Flush(); err != nil {
			logger.Warn("metrics flush failed", zap.Error(err))
		}
	}()

	ctx := context.Background()
	res, err := pipeline.Run(ctx, cfg, logger)
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("run complete",
		zap.String("run_id", res.RunID),
		zap.Int("input_rows", res.OriginalRows),
		zap.Int("output_rows", res.Table.Len()),
		zap.Duration("took", res.Duration.Truncate(time.Millisecond)),
	)
}

func newLogger(verbose bool) *zap.Logger {
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fatalf("init logger: %v", err)
		}
		return l
	}
	l, err := zap.NewProduction()
	if err != nil {
		fatalf("init logger: %v", err)
	}
	return l
}

// setupMetrics installs the configured metrics backend; the default no-op
// backend stays in place when metrics are disabled or setup fails.
func setupMetrics(cfg config.Config, logger *zap.Logger) {
	switch cfg.Metrics.Backend {
	case "prompush":
		b, err := prompush.NewBackend(cfg.Job, cfg.Metrics.PushgatewayURL)
		if err != nil {
			logger.Warn("metrics backend init failed; using nop", zap.Error(err))
			return
		}
		metrics.SetBackend(b)
		logger.Info("metrics enabled",
			zap.String("backend", cfg.Metrics.Backend),
			zap.String("url", cfg.Metrics.PushgatewayURL),
			zap.String("job", cfg.Job),
		)
	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{
			Addr:       cfg.Metrics.DogstatsdAddr,
			Namespace:  cfg.Job + ".",
			GlobalTags: []string{"service:" + cfg.Job},
		})
		if err != nil {
			logger.Warn("metrics backend init failed; using nop", zap.Error(err))
			return
		}
		metrics.SetBackend(b)
		logger.Info("metrics enabled",
			zap.String("backend", cfg.Metrics.Backend),
			zap.String("addr", cfg.Metrics.DogstatsdAddr),
		)
	case "", "none":
		// metrics disabled; nop backend remains
	default:
		logger.Warn("unknown metrics backend; metrics disabled",
			zap.String("backend", cfg.Metrics.Backend))
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
