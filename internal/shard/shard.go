package shard

import "github.com/cespare/xxhash/v2"

type Func func(key string) int

func ForKey(key string, shardCount int) int {
	return int(xxhash.Sum64String(key) % uint64(shardCount))
}

type Sharder interface {
	GetShardForKey(key string) int
}

type fnSharder struct {
	fn Func
}

func NewSharder(fn Func) Sharder {
	return &fnSharder{fn: fn}
}

func (s *fnSharder) GetShardForKey(key string) int { return s.fn(key) }

// Distributed spreads keys evenly over count shards.
func Distributed(count int) Sharder {
	return NewSharder(func(key string) int {
		return ForKey(key, count)
	})
}

// Const routes every key to the same shard.
func Const(shard int) Sharder {
	return NewSharder(func(string) int {
		return shard
	})
}
