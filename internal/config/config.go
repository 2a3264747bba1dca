// Package config defines the runtime configuration for the claims cleaning
// pipeline and its validation. The model is intentionally small and explicit:
// flags populate it, environment variables overlay defaults, and Validate
// reports every problem at once instead of failing on the first.
//
// Environment variables (loaded via a .env file when present) use the
// CLAIMSDQ_ prefix and override the built-in defaults but not explicit flags:
//
//	CLAIMSDQ_INPUT            input CSV path
//	CLAIMSDQ_OUTPUT           golden dataset CSV path
//	CLAIMSDQ_REPORT           quality report JSON path
//	CLAIMSDQ_TARGET_ROWS      golden sample size
//	CLAIMSDQ_STORE            storage kind (sqlite, postgres)
//	CLAIMSDQ_DSN              storage connection string
//	CLAIMSDQ_TABLE            storage table name
//	CLAIMSDQ_METRICS_BACKEND  metrics backend (prompush, datadog)
//	CLAIMSDQ_PUSHGATEWAY_URL  Pushgateway base URL
//	CLAIMSDQ_DOGSTATSD_ADDR   DogStatsD address
package config

import (
	"os"
	"strconv"
)

// DefaultTargetRows is the golden sample size when none is configured.
const DefaultTargetRows = 100

// Config is the full runtime configuration for one pipeline run.
type Config struct {
	// Job names the run for metrics labeling and report metadata.
	Job string `conf:"job"`

	// Input is the path of the raw claims extract (CSV).
	Input string `conf:"input" validate:"required"`

	// Output is the path the golden dataset CSV is written to.
	Output string `conf:"output" validate:"required"`

	// Report is the path the quality report JSON is written to.
	Report string `conf:"report" validate:"required"`

	// TargetRows is the golden sample size; 0 disables trimming.
	TargetRows int `conf:"target_rows" validate:"gte=0"`

	// Comma overrides the field delimiter; ',' when zero.
	Comma rune `conf:"comma"`

	Storage StorageConfig `conf:"storage"`
	Metrics MetricsConfig `conf:"metrics"`
}

// StorageConfig configures the optional database sink for the golden rows.
// An empty Kind disables the sink.
type StorageConfig struct {
	Kind  string `conf:"storage.kind" validate:"omitempty,oneof=sqlite postgres"`
	DSN   string `conf:"storage.dsn"`
	Table string `conf:"storage.table"`
}

// MetricsConfig selects the operational metrics backend. An empty Backend
// keeps the default no-op backend.
type MetricsConfig struct {
	Backend        string `conf:"metrics.backend" validate:"omitempty,oneof=prompush datadog"`
	PushgatewayURL string `conf:"metrics.pushgateway_url"`
	DogstatsdAddr  string `conf:"metrics.dogstatsd_addr"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Job:        "claimsdq",
		Output:     "golden_dataset.csv",
		Report:     "data_quality_report.json",
		TargetRows: DefaultTargetRows,
	}
}

// FromEnv overlays CLAIMSDQ_* environment variables onto c. Call after
// godotenv.Load so a .env file participates, and before flag parsing so
// explicit flags win.
func FromEnv(c Config) Config {
	set := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	set(&c.Job, "CLAIMSDQ_JOB")
	set(&c.Input, "CLAIMSDQ_INPUT")
	set(&c.Output, "CLAIMSDQ_OUTPUT")
	set(&c.Report, "CLAIMSDQ_REPORT")
	set(&c.Storage.Kind, "CLAIMSDQ_STORE")
	set(&c.Storage.DSN, "CLAIMSDQ_DSN")
	set(&c.Storage.Table, "CLAIMSDQ_TABLE")
	set(&c.Metrics.Backend, "CLAIMSDQ_METRICS_BACKEND")
	set(&c.Metrics.PushgatewayURL, "CLAIMSDQ_PUSHGATEWAY_URL")
	set(&c.Metrics.DogstatsdAddr, "CLAIMSDQ_DOGSTATSD_ADDR")

	if v, ok := os.LookupEnv("CLAIMSDQ_TARGET_ROWS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.TargetRows = n
		}
	}
	return c
}
