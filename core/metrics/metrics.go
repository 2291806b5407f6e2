// Package metrics provides backend-agnostic instrumentation primitives so the
// core packages stay decoupled from a specific metrics library.
package metrics

// Timer measures the duration of an operation. Call ObserveDuration when
// the operation completes to record the elapsed time.
//
//	defer m.EvictionScan("sessions").ObserveDuration()
type Timer interface {
	// ObserveDuration records the elapsed time since the timer was created.
	ObserveDuration()
}
