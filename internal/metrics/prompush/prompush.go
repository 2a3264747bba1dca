// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// This package adapts the generic metrics.Backend interface to Prometheus by:
//
//   - Using client_golang CounterVec and SummaryVec collectors.
//   - Mapping the common pipeline labels (job, phase, status) onto Prometheus
//     labels.
//   - Pushing collected metrics to a Prometheus Pushgateway instance instead of
//     exposing an HTTP scrape endpoint; a batch job has nothing to scrape once
//     it exits.
//
// The package intentionally contains all Prometheus-specific dependencies so
// that the rest of the project remains decoupled from Prometheus and can swap
// to alternative backends without changes to the core pipeline.
package prompush

import (
	"fmt"

	"claimsdq/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" group
	reg        *prometheus.Registry

	// Phase-level metrics
	phaseCounter  *prometheus.CounterVec // "claimsdq_phase_total"
	phaseDuration *prometheus.SummaryVec // "claimsdq_phase_duration_seconds"

	// Row- and finding-level metrics
	rowCounter   *prometheus.CounterVec // "claimsdq_rows_total"
	fixCounter   prometheus.Counter     // "claimsdq_fixes_total"
	issueCounter *prometheus.CounterVec // "claimsdq_issues_total"
}

// NewBackend constructs a Prometheus Pushgateway backend.
// jobName: the Pushgateway "job" name (often same as pipeline job).
// gatewayURL: base URL of the Pushgateway server.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "claimsdq"
	}

	reg := prometheus.NewRegistry()

	// job is the Pushgateway grouping key; phase and status are dynamic labels.
	phaseCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimsdq_phase_total",
			Help: "Total number of pipeline phase executions, partitioned by phase and status.",
		},
		[]string{"phase", "status"},
	)
	phaseDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "claimsdq_phase_duration_seconds",
			Help:       "Duration of pipeline phases in seconds, partitioned by phase and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"phase", "status"},
	)

	rowCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimsdq_rows_total",
			Help: "Row-level counts per kind (input, removed, output).",
		},
		[]string{"kind"},
	)
	fixCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "claimsdq_fixes_total",
			Help: "Total number of automatic fixes applied during this run.",
		},
	)
	issueCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimsdq_issues_total",
			Help: "Quality findings per severity (critical, errors, warnings).",
		},
		[]string{"severity"},
	)

	if err := reg.Register(phaseCounter); err != nil {
		return nil, fmt.Errorf("prompush: register phase counter: %w", err)
	}
	if err := reg.Register(phaseDuration); err != nil {
		return nil, fmt.Errorf("prompush: register phase summary: %w", err)
	}
	if err := reg.Register(rowCounter); err != nil {
		return nil, fmt.Errorf("prompush: register row counter: %w", err)
	}
	if err := reg.Register(fixCounter); err != nil {
		return nil, fmt.Errorf("prompush: register fix counter: %w", err)
	}
	if err := reg.Register(issueCounter); err != nil {
		return nil, fmt.Errorf("prompush: register issue counter: %w", err)
	}

	return &Backend{
		gatewayURL:    gatewayURL,
		jobName:       jobName,
		reg:           reg,
		phaseCounter:  phaseCounter,
		phaseDuration: phaseDuration,
		rowCounter:    rowCounter,
		fixCounter:    fixCounter,
		issueCounter:  issueCounter,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "claimsdq_phase_total":
		if b.phaseCounter == nil {
			return
		}
		b.phaseCounter.WithLabelValues(labels["phase"], labels["status"]).Add(delta)

	case "claimsdq_rows_total":
		if b.rowCounter == nil {
			return
		}
		b.rowCounter.WithLabelValues(labels["kind"]).Add(delta)

	case "claimsdq_fixes_total":
		if b.fixCounter == nil {
			return
		}
		b.fixCounter.Add(delta)

	case "claimsdq_issues_total":
		if b.issueCounter == nil {
			return
		}
		b.issueCounter.WithLabelValues(labels["severity"]).Add(delta)

	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name != "claimsdq_phase_duration_seconds" || b.phaseDuration == nil {
		return
	}
	b.phaseDuration.WithLabelValues(labels["phase"], labels["status"]).Observe(value)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
