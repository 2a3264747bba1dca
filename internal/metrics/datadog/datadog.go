// Package datadog emits pipeline metrics over the DogStatsD protocol using
// the official Datadog statsd client. Labels become "key:value" tags; counters
// map to Count and histograms to Histogram. Nothing outside this package
// imports the Datadog client.
package datadog

import (
	"fmt"
	"sort"

	"claimsdq/internal/metrics"

	"github.com/DataDog/datadog-go/v5/statsd"
)

// sampleRate for all submissions. Batch runs emit few enough points that
// sampling would only lose data.
const sampleRate = 1

// Config holds the DogStatsD connection settings.
type Config struct {
	// Addr is the agent address, e.g. "127.0.0.1:8125" or "unix:///var/run/datadog/dsd.socket".
	Addr string

	// Namespace prefixes every metric name, e.g. "claimsdq.".
	Namespace string

	// GlobalTags apply to every metric, e.g. []string{"service:claimsdq"}.
	GlobalTags []string
}

// Backend sends metrics to a Datadog agent. Install it with metrics.SetBackend.
type Backend struct {
	client statsd.ClientInterface
}

// NewBackend dials the DogStatsD agent described by cfg. Addr is required.
func NewBackend(cfg Config) (*Backend, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("datadog: Addr is required")
	}

	var opts []statsd.Option
	if cfg.Namespace != "" {
		opts = append(opts, statsd.WithNamespace(cfg.Namespace))
	}
	if len(cfg.GlobalTags) > 0 {
		opts = append(opts, statsd.WithTags(cfg.GlobalTags))
	}

	c, err := statsd.New(cfg.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("datadog: create client: %w", err)
	}
	return &Backend{client: c}, nil
}

// IncCounter submits a Count. Fractional deltas are truncated; DogStatsD
// counts are integral.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	if b.client == nil {
		return
	}
	b.client.Count(name, int64(delta), tagList(labels), sampleRate)
}

// ObserveHistogram submits a Histogram observation.
func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if b.client == nil {
		return
	}
	b.client.Histogram(name, value, tagList(labels), sampleRate)
}

// Flush closes the client, which flushes any buffered datagrams. Call once at
// process shutdown.
func (b *Backend) Flush() error {
	if b.client == nil {
		return nil
	}
	return b.client.Close()
}

// tagList renders labels as sorted "key:value" tags. Sorting keeps the tag
// order stable for tests and log output.
func tagList(lbls metrics.Labels) []string {
	if len(lbls) == 0 {
		return nil
	}
	out := make([]string, 0, len(lbls))
	for k, v := range lbls {
		out = append(out, k+":"+v)
	}
	sort.Strings(out)
	return out
}
