// Package metrics is a small, backend-agnostic layer for operational metrics
// from the cleaning pipeline. A global pluggable Backend defaults to a no-op,
// so the Record helpers are always safe to call; concrete systems (Prometheus
// Pushgateway, Datadog) live in subpackages the core never imports.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
// It is intentionally generic so we can plug in Prometheus, Datadog, etc.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordPhase is a convenience for the common pattern:
// measure latency + success/failure per pipeline phase.
func RecordPhase(job, phase string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"phase":  phase,
		"status": status,
	}

	backend.IncCounter("claimsdq_phase_total", 1, lbls)
	backend.ObserveHistogram("claimsdq_phase_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a row-level counter for the given job and kind.
//
// Typical kinds mirror the quality-report counters, e.g.:
//   - "input"
//   - "removed"
//   - "output"
func RecordRows(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("claimsdq_rows_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordFixes increments the applied-fix counter for the given job.
func RecordFixes(job string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("claimsdq_fixes_total", float64(delta), Labels{
		"job": job,
	})
}

// RecordIssues increments the issue counter for the given job and severity
// ("critical", "errors", "warnings").
func RecordIssues(job, severity string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("claimsdq_issues_total", float64(delta), Labels{
		"job":      job,
		"severity": severity,
	})
}
