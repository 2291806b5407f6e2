package evict

import "github.com/codewandler/evict-go/core/metrics"

// Metrics defines the instrumentation hooks of a Map. The name argument is the
// map name from Options.Name; implementations should be thread-safe when used
// with Sharded maps.
type Metrics interface {
	Hit(name string)
	Miss(name string)
	Evicted(name string)
	Size(name string, size, capacity int)

	// EvictionScan times a single victim selection scan.
	EvictionScan(name string) metrics.Timer
}

type nopMetrics struct{}

func (nopMetrics) Hit(string)                        {}
func (nopMetrics) Miss(string)                       {}
func (nopMetrics) Evicted(string)                    {}
func (nopMetrics) Size(string, int, int)             {}
func (nopMetrics) EvictionScan(string) metrics.Timer { return metrics.NopTimer() }

// NopMetrics returns a no-op Metrics implementation.
func NopMetrics() Metrics { return nopMetrics{} }
