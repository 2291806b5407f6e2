// Package kv is a byte-oriented key-value port with typed helpers on top.
package kv

import (
	"context"
	"errors"

	"github.com/codewandler/evict-go/internal/codec"
)

var (
	ErrNotFound = errors.New("not found")
)

type Entry struct {
	Data []byte
	Meta map[string]any
}

type Store interface {
	Put(ctx context.Context, key string, entry Entry) error
	Get(ctx context.Context, key string) (entry Entry, err error)
	Delete(ctx context.Context, key string) error
}

var defaultCodec codec.Codec = codec.JSONCodec{}

func Put[T any](ctx context.Context, store Store, key string, v T) error {
	data, err := defaultCodec.Marshal(v)
	if err != nil {
		return err
	}
	return store.Put(ctx, key, Entry{Data: data})
}

func Get[T any](ctx context.Context, store Store, key string) (out T, err error) {
	entry, err := store.Get(ctx, key)
	if err != nil {
		return
	}
	err = defaultCodec.Unmarshal(entry.Data, &out)
	return
}
