package sf

import "golang.org/x/sync/singleflight"

// Singleflight deduplicates concurrent function calls with the same key.
// Only the first caller executes the function; others wait and receive
// the same result.
type Singleflight[T any] struct {
	group singleflight.Group
}

// Do executes fn for the given key, deduplicating concurrent calls.
// If a call is already in-flight for this key, Do blocks until it completes
// and returns the same result. shared reports whether the result was handed
// to more than one caller.
func (s *Singleflight[T]) Do(key string, fn func() (T, error)) (out T, shared bool, err error) {
	v, err, shared := s.group.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		return out, shared, err
	}
	// v is a nil interface when T is an interface type and fn returned nil
	out, _ = v.(T)
	return out, shared, nil
}

// New creates a new Singleflight instance for type T.
func New[T any]() *Singleflight[T] {
	return &Singleflight[T]{}
}
