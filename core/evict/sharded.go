package evict

import (
	"fmt"

	"github.com/codewandler/evict-go/core/ds"
	"github.com/codewandler/evict-go/internal/shard"
)

const defaultShards = 16

type ShardedOptions[K comparable, V any] struct {
	// Options configures the shards. Capacity is the total across all shards.
	Options[K, V]
	// Shards is the number of independent maps. Defaults to 16 and is capped
	// at Capacity so every shard holds at least one entry.
	Shards int
}

// Sharded spreads keys over independent Synchronized maps to reduce lock
// contention. Each shard enforces its own share of the capacity and runs its
// own victim selection, so the policy order holds per shard, not globally.
type Sharded[K comparable, V any] struct {
	shards  []*Synchronized[K, V]
	sharder shard.Sharder
}

func NewSharded[K comparable, V any](opts ShardedOptions[K, V]) (*Sharded[K, V], error) {
	if opts.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be greater than zero, got %d", ErrInvalidArgument, opts.Capacity)
	}
	n := opts.Shards
	if n <= 0 {
		n = defaultShards
	}
	n = min(n, opts.Capacity)

	s := &Sharded[K, V]{
		shards:  make([]*Synchronized[K, V], n),
		sharder: newSharder(n),
	}
	for i, capacity := range splitCapacity(opts.Capacity, n) {
		shardOpts := opts.Options
		shardOpts.Capacity = capacity
		if opts.Name != "" {
			shardOpts.Name = fmt.Sprintf("%s/%d", opts.Name, i)
		}
		m, err := NewSynchronized(shardOpts)
		if err != nil {
			return nil, err
		}
		s.shards[i] = m
	}
	return s, nil
}

// newSharder skips hashing when there is only one shard.
func newSharder(n int) shard.Sharder {
	if n == 1 {
		return shard.Const(0)
	}
	return shard.Distributed(n)
}

// splitCapacity divides total evenly, giving the remainder to the first shards.
func splitCapacity(total, n int) []int {
	out := make([]int, n)
	base, rem := total/n, total%n
	for i := range out {
		out[i] = base
		if i < rem {
			out[i]++
		}
	}
	return out
}

func (s *Sharded[K, V]) shardFor(key Key[K]) *Synchronized[K, V] {
	return s.shards[s.sharder.GetShardForKey(key.GoString())]
}

// NumShards returns the number of shards.
func (s *Sharded[K, V]) NumShards() int { return len(s.shards) }

func (s *Sharded[K, V]) Get(key Key[K]) (V, bool)  { return s.shardFor(key).Get(key) }
func (s *Sharded[K, V]) Peek(key Key[K]) (V, bool) { return s.shardFor(key).Peek(key) }
func (s *Sharded[K, V]) Put(key Key[K], value V) (V, bool) {
	return s.shardFor(key).Put(key, value)
}
func (s *Sharded[K, V]) Remove(key Key[K]) (V, bool) { return s.shardFor(key).Remove(key) }
func (s *Sharded[K, V]) ContainsKey(key Key[K]) bool { return s.shardFor(key).ContainsKey(key) }

func (s *Sharded[K, V]) GetOrLoad(key Key[K], load func() (V, error)) (V, error) {
	return s.shardFor(key).GetOrLoad(key, load)
}

func (s *Sharded[K, V]) ContainsValue(value V) bool {
	for _, m := range s.shards {
		if m.ContainsValue(value) {
			return true
		}
	}
	return false
}

func (s *Sharded[K, V]) Len() (n int) {
	for _, m := range s.shards {
		n += m.Len()
	}
	return n
}

func (s *Sharded[K, V]) Capacity() (n int) {
	for _, m := range s.shards {
		n += m.Capacity()
	}
	return n
}

// SetCapacity redistributes n over the shards. n must be at least the number
// of shards.
func (s *Sharded[K, V]) SetCapacity(n int) error {
	if n < len(s.shards) {
		return fmt.Errorf("%w: capacity must be at least %d (one per shard), got %d", ErrInvalidArgument, len(s.shards), n)
	}
	for i, capacity := range splitCapacity(n, len(s.shards)) {
		if err := s.shards[i].SetCapacity(capacity); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sharded[K, V]) Clear() {
	for _, m := range s.shards {
		m.Clear()
	}
}

// Keys returns a snapshot of all keys, grouped by shard.
func (s *Sharded[K, V]) Keys() *ds.Set[Key[K]] {
	keys := ds.NewSet[Key[K]]()
	for _, m := range s.shards {
		m.Keys().ForEach(keys.Add)
	}
	return keys
}

// Hash equals the Hash of a single Map holding the same associations.
func (s *Sharded[K, V]) Hash() (h uint64) {
	for _, m := range s.shards {
		h += m.Hash()
	}
	return h
}
