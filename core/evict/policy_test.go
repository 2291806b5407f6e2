package evict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func evictionOrder[V any](t *testing.T, m *Map[int, V]) []int {
	t.Helper()
	var order []int
	for !m.IsEmpty() {
		before := m.Keys()
		require.True(t, m.EvictOne())
		after := m.Keys()
		require.Equal(t, before.Len()-1, after.Len())
		before.ForEach(func(k Key[int]) {
			if !after.Contains(k) {
				v, _ := k.Value()
				order = append(order, v)
			}
		})
	}
	require.False(t, m.EvictOne())
	return order
}

func TestLFU_Scenario(t *testing.T) {
	m := newTestMap[int](t, 10, LFU[int]())
	m.Put(KeyOf(1), 1)
	m.Put(KeyOf(2), 4)
	m.Put(KeyOf(3), 6)

	m.Get(KeyOf(3))
	m.Get(KeyOf(1))
	m.Get(KeyOf(3))

	for k, want := range map[int]int{1: 2, 2: 1, 3: 3} {
		info, ok := m.Info(KeyOf(k))
		require.True(t, ok)
		require.Equal(t, want, info.AccessedCount, "key %d", k)
	}

	require.Equal(t, 3, m.Len())
	require.True(t, m.EvictOne())
	require.Equal(t, 2, m.Len())
	require.False(t, m.ContainsKey(KeyOf(2)))

	require.True(t, m.EvictOne())
	require.Equal(t, 1, m.Len())
	require.False(t, m.ContainsKey(KeyOf(1)))

	require.True(t, m.EvictOne())
	require.Equal(t, 0, m.Len())
}

func TestLFU_DistinctCounts(t *testing.T) {
	m := newTestMap[string](t, 10, LFU[int]())
	// c < a < b by access count, inserted in a different order
	m.Put(KeyOf(1), "a")
	m.Put(KeyOf(2), "b")
	m.Put(KeyOf(3), "c")
	for range 2 {
		m.Get(KeyOf(1))
	}
	for range 5 {
		m.Get(KeyOf(2))
	}
	require.Equal(t, []int{3, 1, 2}, evictionOrder(t, m))
}

func TestLFU_OverflowKeepsHotEntries(t *testing.T) {
	m := newTestMap[int](t, 3, LFU[int]())
	m.Put(KeyOf(1), 1)
	m.Put(KeyOf(2), 2)
	m.Put(KeyOf(3), 3)
	m.Get(KeyOf(1))
	m.Get(KeyOf(3))

	m.Put(KeyOf(4), 4)
	require.False(t, m.ContainsKey(KeyOf(2)))
	require.True(t, m.Keys().EqValues(KeyOf(1), KeyOf(3), KeyOf(4)))
}

func TestLRU_Scenario(t *testing.T) {
	m := newTestMap[int](t, 10, LRU[int]())
	m.Put(KeyOf(1), 1)
	m.Put(KeyOf(2), 4)
	m.Put(KeyOf(3), 6)

	m.Get(KeyOf(3))
	m.Get(KeyOf(2))
	m.Get(KeyOf(1))

	require.Equal(t, 3, m.Len())
	require.Equal(t, []int{3, 2, 1}, evictionOrder(t, m))
}

func TestLRU_AccessOrder(t *testing.T) {
	m := newTestMap[string](t, 10, LRU[int]())
	for _, k := range []int{7, 8, 9} {
		m.Put(KeyOf(k), "")
	}
	// X, Y, Z accessed in order
	m.Get(KeyOf(9))
	m.Get(KeyOf(7))
	m.Get(KeyOf(8))
	require.Equal(t, []int{9, 7, 8}, evictionOrder(t, m))
}

func TestLRU_SameClockReading(t *testing.T) {
	m, err := New(Options[int, int]{
		Capacity: 10,
		Policy:   LRU[int](),
		Clock:    fixedClock{t: epoch},
	})
	require.NoError(t, err)

	m.Put(KeyOf(1), 1)
	m.Put(KeyOf(2), 2)
	m.Put(KeyOf(3), 3)
	m.Get(KeyOf(1))

	require.Equal(t, []int{2, 3, 1}, evictionOrder(t, m))
}

func TestLRU_WallClock(t *testing.T) {
	m, err := NewLRU[int, int](10)
	require.NoError(t, err)

	m.Put(KeyOf(1), 1)
	m.Put(KeyOf(2), 4)
	m.Put(KeyOf(3), 6)

	m.Get(KeyOf(3))
	time.Sleep(5 * time.Millisecond)
	m.Get(KeyOf(2))
	time.Sleep(5 * time.Millisecond)
	m.Get(KeyOf(1))

	require.Equal(t, []int{3, 2, 1}, evictionOrder(t, m))
}

func TestFIFO_IgnoresAccess(t *testing.T) {
	m := newTestMap[int](t, 3, FIFO[int]())
	m.Put(KeyOf(1), 1)
	m.Put(KeyOf(2), 2)
	m.Put(KeyOf(3), 3)
	for range 10 {
		m.Get(KeyOf(1))
	}
	m.Put(KeyOf(1), 10)

	m.Put(KeyOf(4), 4)
	require.False(t, m.ContainsKey(KeyOf(1)))
	require.Equal(t, []int{2, 3, 4}, evictionOrder(t, m))
}

func TestChain_BreaksTies(t *testing.T) {
	m := newTestMap[int](t, 10, Chain(LFU[int](), LRU[int]()))
	m.Put(KeyOf(1), 1)
	m.Put(KeyOf(2), 2)
	m.Put(KeyOf(3), 3)
	m.Put(KeyOf(4), 4)

	// 1 and 3 share count 2; 3 was used more recently
	m.Get(KeyOf(1))
	m.Get(KeyOf(3))
	m.Get(KeyOf(4))
	m.Get(KeyOf(4))
	m.Get(KeyOf(4))

	require.Equal(t, []int{2, 1, 3, 4}, evictionOrder(t, m))
}

func TestChain_Empty(t *testing.T) {
	m := newTestMap[int](t, 3, Chain[int]())
	m.Put(KeyOf(2), 2)
	m.Put(KeyOf(1), 1)
	m.Put(KeyOf(3), 3)
	require.Equal(t, []int{2, 1, 3}, evictionOrder(t, m))
}

func TestPolicyFunc_Custom(t *testing.T) {
	// evict the largest key first
	byKeyDesc := PolicyFunc[int](func(a, b *Entry[int]) int {
		ak, _ := a.Key().Value()
		bk, _ := b.Key().Value()
		return bk - ak
	})
	m := newTestMap[int](t, 3, byKeyDesc)
	m.Put(KeyOf(5), 5)
	m.Put(KeyOf(9), 9)
	m.Put(KeyOf(1), 1)
	m.Put(KeyOf(4), 4)

	require.False(t, m.ContainsKey(KeyOf(9)))
	require.Equal(t, []int{5, 4, 1}, evictionOrder(t, m))
}

func TestPolicy_SeesFreshMetadata(t *testing.T) {
	calls := 0
	p := PolicyFunc[int](func(a, b *Entry[int]) int {
		calls++
		return LFU[int]().Compare(a, b)
	})
	m := newTestMap[int](t, 2, p)
	m.Put(KeyOf(1), 1)
	m.Put(KeyOf(2), 2)
	require.Equal(t, 0, calls)

	m.Get(KeyOf(1))
	m.Put(KeyOf(3), 3)
	require.Positive(t, calls)
	require.False(t, m.ContainsKey(KeyOf(2)))

	// key 3 is now the only count-1 entry
	m.Put(KeyOf(4), 4)
	require.False(t, m.ContainsKey(KeyOf(3)))
	require.True(t, m.ContainsKey(KeyOf(1)))
}
