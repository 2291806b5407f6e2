package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/evict-go/core/evict"
	"github.com/codewandler/evict-go/core/metrics"
)

// evictMetrics implements evict.Metrics using Prometheus.
type evictMetrics struct {
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	evictions *prometheus.CounterVec

	size     *prometheus.GaugeVec
	capacity *prometheus.GaugeVec

	scanDuration *prometheus.HistogramVec
}

// NewEvictMetrics creates a new Prometheus implementation of evict.Metrics.
// All series carry a "map" label with the map name.
func NewEvictMetrics(reg prometheus.Registerer) evict.Metrics {
	m := &evictMetrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "evict_map_hits_total",
			Help: "Total number of Get calls that found the key",
		}, []string{"map"}),

		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "evict_map_misses_total",
			Help: "Total number of Get calls that did not find the key",
		}, []string{"map"}),

		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "evict_map_evictions_total",
			Help: "Total number of entries removed by the eviction policy",
		}, []string{"map"}),

		size: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "evict_map_entries",
			Help: "Current number of entries",
		}, []string{"map"}),

		capacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "evict_map_capacity",
			Help: "Configured maximum number of entries",
		}, []string{"map"}),

		scanDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "evict_map_eviction_scan_duration_seconds",
			Help:    "Victim selection scan latency in seconds",
			Buckets: scanBuckets,
		}, []string{"map"}),
	}

	reg.MustRegister(
		m.hits,
		m.misses,
		m.evictions,
		m.size,
		m.capacity,
		m.scanDuration,
	)

	return m
}

func (m *evictMetrics) Hit(name string) {
	m.hits.WithLabelValues(name).Inc()
}

func (m *evictMetrics) Miss(name string) {
	m.misses.WithLabelValues(name).Inc()
}

func (m *evictMetrics) Evicted(name string) {
	m.evictions.WithLabelValues(name).Inc()
}

func (m *evictMetrics) Size(name string, size, capacity int) {
	m.size.WithLabelValues(name).Set(float64(size))
	m.capacity.WithLabelValues(name).Set(float64(capacity))
}

func (m *evictMetrics) EvictionScan(name string) metrics.Timer {
	return newTimer(m.scanDuration.WithLabelValues(name))
}

var _ evict.Metrics = (*evictMetrics)(nil)
