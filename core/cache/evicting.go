package cache

import (
	"log/slog"

	"github.com/codewandler/evict-go/core/evict"
)

const defaultSize = 128

// Opts configures an Evicting cache.
type Opts struct {
	// Size is the maximum number of entries (default: 128).
	Size int
	// Shards splits the cache into independently locked partitions when > 1.
	Shards int

	Name    string
	Log     *slog.Logger
	Metrics evict.Metrics
}

type store interface {
	Get(key evict.Key[string]) (any, bool)
	Put(key evict.Key[string], val any) (any, bool)
	Remove(key evict.Key[string]) (any, bool)
	Len() int
	Capacity() int
}

// Evicting is a Cache backed by an evict map. It is safe for concurrent use.
type Evicting struct {
	s store
}

// NewLRU creates a cache evicting the least recently used entry.
func NewLRU(opts Opts) *Evicting { return newEvicting(opts, evict.LRU[string]()) }

// NewLFU creates a cache evicting the least frequently used entry. Entries
// with equal counts fall back to LRU order.
func NewLFU(opts Opts) *Evicting {
	return newEvicting(opts, evict.Chain(evict.LFU[string](), evict.LRU[string]()))
}

// NewFIFO creates a cache evicting the oldest inserted entry.
func NewFIFO(opts Opts) *Evicting { return newEvicting(opts, evict.FIFO[string]()) }

func newEvicting(opts Opts, policy evict.Policy[string]) *Evicting {
	if opts.Size <= 0 {
		opts.Size = defaultSize
	}

	mapOpts := evict.Options[string, any]{
		Capacity: opts.Size,
		Policy:   policy,
		Name:     opts.Name,
		Log:      opts.Log,
		Metrics:  opts.Metrics,
	}

	var (
		s   store
		err error
	)
	if opts.Shards > 1 {
		s, err = evict.NewSharded(evict.ShardedOptions[string, any]{Options: mapOpts, Shards: opts.Shards})
	} else {
		s, err = evict.NewSynchronized(mapOpts)
	}
	if err != nil {
		// capacity and policy are always valid here
		panic(err)
	}
	return &Evicting{s: s}
}

func (e *Evicting) Get(key string) (any, bool) {
	return e.s.Get(evict.KeyOf(key))
}

func (e *Evicting) Put(key string, val any) {
	e.s.Put(evict.KeyOf(key), val)
}

func (e *Evicting) Delete(key string) {
	e.s.Remove(evict.KeyOf(key))
}

func (e *Evicting) Len() int      { return e.s.Len() }
func (e *Evicting) Capacity() int { return e.s.Capacity() }

var _ Cache = (*Evicting)(nil)
