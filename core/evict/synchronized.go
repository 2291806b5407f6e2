package evict

import (
	"sync"

	"github.com/codewandler/evict-go/core/ds"
	"github.com/codewandler/evict-go/core/sf"
)

// Synchronized guards every operation of a Map with a single mutex.
// OnEvict runs while the mutex is held and must not call back into s.
type Synchronized[K comparable, V any] struct {
	mu    sync.Mutex
	m     *Map[K, V]
	loads *sf.Singleflight[V]
}

// NewSynchronized creates a Map from opts and wraps it.
func NewSynchronized[K comparable, V any](opts Options[K, V]) (*Synchronized[K, V], error) {
	m, err := New(opts)
	if err != nil {
		return nil, err
	}
	return Synchronize(m), nil
}

// Synchronize wraps m. The caller must not use m directly afterwards.
func Synchronize[K comparable, V any](m *Map[K, V]) *Synchronized[K, V] {
	return &Synchronized[K, V]{m: m, loads: sf.New[V]()}
}

// Do runs fn with exclusive access to the underlying map, for compound
// operations that must not interleave with other callers.
func (s *Synchronized[K, V]) Do(fn func(m *Map[K, V])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.m)
}

func (s *Synchronized[K, V]) Get(key Key[K]) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Get(key)
}

func (s *Synchronized[K, V]) Peek(key Key[K]) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Peek(key)
}

func (s *Synchronized[K, V]) Put(key Key[K], value V) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Put(key, value)
}

func (s *Synchronized[K, V]) Remove(key Key[K]) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Remove(key)
}

func (s *Synchronized[K, V]) ContainsKey(key Key[K]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.ContainsKey(key)
}

func (s *Synchronized[K, V]) ContainsValue(value V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.ContainsValue(value)
}

func (s *Synchronized[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Len()
}

func (s *Synchronized[K, V]) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Capacity()
}

func (s *Synchronized[K, V]) SetCapacity(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.SetCapacity(n)
}

func (s *Synchronized[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m.Clear()
}

func (s *Synchronized[K, V]) EvictOne() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.EvictOne()
}

func (s *Synchronized[K, V]) EvictN(count int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.EvictN(count)
}

func (s *Synchronized[K, V]) Keys() *ds.Set[Key[K]] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Keys()
}

func (s *Synchronized[K, V]) Entries() []Item[K, V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Entries()
}

func (s *Synchronized[K, V]) Info(key Key[K]) (EntryInfo[K], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Info(key)
}

func (s *Synchronized[K, V]) Hash() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Hash()
}

func (s *Synchronized[K, V]) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.String()
}

// GetOrLoad returns the value for key, calling load on a miss and storing its
// result. Concurrent misses for the same key share a single load call. The
// lock is not held while load runs. Load errors are returned as-is and
// nothing is stored.
func (s *Synchronized[K, V]) GetOrLoad(key Key[K], load func() (V, error)) (V, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	v, _, err := s.loads.Do(key.GoString(), func() (V, error) {
		if v, ok := s.Peek(key); ok {
			return v, nil
		}
		v, err := load()
		if err != nil {
			return v, err
		}
		s.Put(key, v)
		return v, nil
	})
	return v, err
}
