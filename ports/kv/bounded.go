package kv

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/codewandler/evict-go/core/evict"
)

type BoundedOpts struct {
	// Capacity is the maximum number of keys held.
	Capacity int
	// Policy defaults to LRU.
	Policy  evict.Policy[string]
	Name    string
	Log     *slog.Logger
	Metrics evict.Metrics
}

// BoundedStore is an in-memory Store that evicts keys through an evict policy
// once Capacity is reached.
type BoundedStore struct {
	m *evict.Synchronized[string, Entry]
}

func NewBoundedStore(opts BoundedOpts) (*BoundedStore, error) {
	if opts.Policy == nil {
		opts.Policy = evict.LRU[string]()
	}
	m, err := evict.NewSynchronized(evict.Options[string, Entry]{
		Capacity: opts.Capacity,
		Policy:   opts.Policy,
		Name:     opts.Name,
		Log:      opts.Log,
		Metrics:  opts.Metrics,
		ValueEqual: func(a, b Entry) bool {
			return bytes.Equal(a.Data, b.Data)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("kv: %w", err)
	}
	return &BoundedStore{m: m}, nil
}

func (s *BoundedStore) Put(ctx context.Context, key string, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.m.Put(evict.KeyOf(key), entry)
	return nil
}

func (s *BoundedStore) Get(ctx context.Context, key string) (entry Entry, err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	entry, ok := s.m.Get(evict.KeyOf(key))
	if !ok {
		return entry, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return entry, nil
}

func (s *BoundedStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.m.Remove(evict.KeyOf(key))
	return nil
}

func (s *BoundedStore) Len() int { return s.m.Len() }

var _ Store = (*BoundedStore)(nil)
