package evict

import "time"

// Entry is the per-key usage bookkeeping the engine hands to a Policy.
//
// Entries are owned by the Map. Policies must treat them as read-only and must
// not retain them past a single Compare call.
type Entry[K comparable] struct {
	key           Key[K]
	createdAt     time.Time
	accessedAt    time.Time
	accessedCount int
	seq           uint64
	accessSeq     uint64
}

// newEntry counts construction as the first access.
func newEntry[K comparable](key Key[K], now time.Time, seq uint64) *Entry[K] {
	e := &Entry[K]{key: key, createdAt: now, seq: seq}
	e.touch(now, seq)
	return e
}

func (e *Entry[K]) touch(now time.Time, seq uint64) {
	e.accessedCount++
	e.accessedAt = now
	e.accessSeq = seq
}

func (e *Entry[K]) Key() Key[K]           { return e.key }
func (e *Entry[K]) CreatedAt() time.Time  { return e.createdAt }
func (e *Entry[K]) AccessedAt() time.Time { return e.accessedAt }
func (e *Entry[K]) AccessedCount() int    { return e.accessedCount }

// Seq is the creation sequence number, unique and increasing within one Map.
func (e *Entry[K]) Seq() uint64 { return e.seq }

// AccessSeq is the sequence number of the most recent access. It orders
// accesses that share a clock reading.
func (e *Entry[K]) AccessSeq() uint64 { return e.accessSeq }

func (e *Entry[K]) info() EntryInfo[K] {
	return EntryInfo[K]{
		Key:           e.key,
		CreatedAt:     e.createdAt,
		AccessedAt:    e.accessedAt,
		AccessedCount: e.accessedCount,
		Seq:           e.seq,
		AccessSeq:     e.accessSeq,
	}
}

// EntryInfo is a detached snapshot of an entry's metadata.
type EntryInfo[K comparable] struct {
	Key           Key[K]
	CreatedAt     time.Time
	AccessedAt    time.Time
	AccessedCount int
	Seq           uint64
	AccessSeq     uint64
}
