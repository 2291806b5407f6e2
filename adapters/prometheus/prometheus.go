// Package prometheus provides Prometheus implementations of the metrics
// interfaces defined by the core packages.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/evict-go/core/metrics"
)

// timer wraps a Prometheus histogram to implement the Timer interface.
type timer struct {
	h     prometheus.Observer
	start time.Time
}

func newTimer(h prometheus.Observer) metrics.Timer {
	return &timer{h: h, start: time.Now()}
}

func (t *timer) ObserveDuration() {
	t.h.Observe(time.Since(t.start).Seconds())
}

// Victim selection scans are in-memory and usually take micro- to milliseconds.
var scanBuckets = prometheus.ExponentialBuckets(0.000001, 4, 10)
