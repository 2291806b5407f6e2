// Package evict provides a generic bounded map that evicts entries through a
// pluggable policy once its capacity is reached.
//
// # Policies
//
// A [Policy] is a total order over [Entry] metadata (creation time, access
// count, last access). The entry ranked lowest is the victim. Presets:
//
//   - [LFU]: fewest accesses first
//   - [LRU]: oldest last access first
//   - [FIFO]: oldest insertion first
//
// Custom orders are plain functions via [PolicyFunc], and [Chain] composes
// tie-breaks. When the policy ranks candidates equally the engine evicts the
// one created first.
//
//	m, _ := evict.New(evict.Options[string, int]{
//	    Capacity: 1000,
//	    Policy:   evict.Chain(evict.LFU[string](), evict.LRU[string]()),
//	})
//	m.Put(evict.KeyOf("a"), 1)
//	v, ok := m.Get(evict.KeyOf("a"))
//
// # Null Keys
//
// Keys are wrapped in [Key] so a map may hold one entry under [NullKey]
// alongside present keys, including K's zero value.
//
// # Accesses
//
// Get and Put count as accesses. Peek, Info, ContainsKey and the snapshot
// views (Keys, Values, Entries, All) do not. Timestamps come from the
// configured [Clock]; [ManualClock] makes recency ordering deterministic in
// tests.
//
// # Concurrency
//
// [Map] is single-threaded. [Synchronized] serializes all calls behind one
// mutex and adds [Synchronized.GetOrLoad]; [Sharded] partitions keys over
// several synchronized maps.
package evict
