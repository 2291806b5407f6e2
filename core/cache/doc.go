// Package cache provides a string-keyed cache interface on top of the evict
// package.
//
// The package defines two interfaces:
//
//   - [Cache]: Untyped cache storing values as any
//   - [TypedCache]: Generic type-safe wrapper via [NewTyped]
//
// # Implementations
//
// [Evicting] is safe for concurrent use and is created with one of the
// policy constructors:
//
//	c := cache.NewLRU(cache.Opts{Size: 1000})
//	c.Put("key", value)
//	if val, ok := c.Get("key"); ok {
//	    // Use val
//	}
//
// [NewLFU] and [NewFIFO] select different victims; set [Opts.Shards] to
// partition the cache across several locks. [Nop] stores nothing.
//
// # Type-Safe Usage
//
// Use [NewTyped] for compile-time type safety:
//
//	userCache := cache.NewTyped[*User](c)
//	userCache.Put("user:123", user)
//	if user, ok := userCache.Get("user:123"); ok {
//	    // user is *User, no type assertion needed
//	}
package cache
