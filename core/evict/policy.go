package evict

import "cmp"

// Policy orders entries by eviction priority. The minimum under Compare is the
// next victim.
//
// Compare returns a negative number if a should be evicted before b, zero if
// both rank equally and a positive number otherwise. It is evaluated fresh at
// every eviction and may depend on counters and timestamps that change between
// calls, but it must not keep ranking state of its own.
type Policy[K comparable] interface {
	Compare(a, b *Entry[K]) int
}

// PolicyFunc adapts an ordinary function to a Policy.
type PolicyFunc[K comparable] func(a, b *Entry[K]) int

func (f PolicyFunc[K]) Compare(a, b *Entry[K]) int { return f(a, b) }

// LFU evicts the entry with the fewest accesses first.
func LFU[K comparable]() Policy[K] {
	return PolicyFunc[K](func(a, b *Entry[K]) int {
		return cmp.Compare(a.accessedCount, b.accessedCount)
	})
}

// LRU evicts the entry with the oldest last access first. Accesses that share
// a clock reading are ordered by their access sequence.
func LRU[K comparable]() Policy[K] {
	return PolicyFunc[K](func(a, b *Entry[K]) int {
		if c := a.accessedAt.Compare(b.accessedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.accessSeq, b.accessSeq)
	})
}

// FIFO evicts the oldest inserted entry first, ignoring accesses.
func FIFO[K comparable]() Policy[K] {
	return PolicyFunc[K](func(a, b *Entry[K]) int {
		if c := a.createdAt.Compare(b.createdAt); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
}

// Chain orders by the first policy and falls through to the next one on ties.
func Chain[K comparable](policies ...Policy[K]) Policy[K] {
	return PolicyFunc[K](func(a, b *Entry[K]) int {
		for _, p := range policies {
			if c := p.Compare(a, b); c != 0 {
				return c
			}
		}
		return 0
	})
}

func isNilPolicy[K comparable](p Policy[K]) bool {
	if p == nil {
		return true
	}
	f, ok := p.(PolicyFunc[K])
	return ok && f == nil
}
