package evict

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/codewandler/evict-go/core/ds"
)

var (
	// ErrInvalidArgument is returned for a non-positive capacity or a missing
	// policy. The map is left unchanged.
	ErrInvalidArgument = errors.New("invalid argument")
)

type Options[K comparable, V any] struct {
	// Capacity is the maximum number of entries. Must be >= 1.
	Capacity int
	// Policy selects eviction victims. Required.
	Policy Policy[K]

	// Name identifies the map in logs and metrics. Defaults to a random id.
	Name    string
	Clock   Clock
	Log     *slog.Logger
	Metrics Metrics

	// OnEvict is called after an entry was removed by the eviction policy.
	// It is not called for Remove or Clear.
	OnEvict func(key Key[K], value V)

	// ValueEqual is used by ContainsValue and Equal. Defaults to reflect.DeepEqual.
	ValueEqual func(a, b V) bool
}

// Item is a key/value pair of a snapshot view.
type Item[K comparable, V any] struct {
	Key   Key[K]
	Value V
}

type slot[K comparable, V any] struct {
	entry *Entry[K]
	value V
}

// Map is a bounded key-value container. When a new key is inserted into a full
// map, one entry chosen by the Policy is evicted first.
//
// Victim selection scans all live entries, so eviction is O(n). Entries the
// policy ranks equally are evicted in creation order.
//
// Map is not safe for concurrent use; see Synchronized and Sharded.
type Map[K comparable, V any] struct {
	data     map[Key[K]]*slot[K, V]
	capacity int
	policy   Policy[K]
	seq      uint64

	name       string
	clock      Clock
	log        *slog.Logger
	metrics    Metrics
	onEvict    func(Key[K], V)
	valueEqual func(a, b V) bool
}

func New[K comparable, V any](opts Options[K, V]) (*Map[K, V], error) {
	if opts.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be greater than zero, got %d", ErrInvalidArgument, opts.Capacity)
	}
	if isNilPolicy(opts.Policy) {
		return nil, fmt.Errorf("%w: eviction policy is required", ErrInvalidArgument)
	}

	if opts.Name == "" {
		opts.Name = fmt.Sprintf("map-%s", gonanoid.Must(6))
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = NopMetrics()
	}
	if opts.ValueEqual == nil {
		opts.ValueEqual = func(a, b V) bool { return reflect.DeepEqual(a, b) }
	}

	return &Map[K, V]{
		data:       make(map[Key[K]]*slot[K, V], opts.Capacity),
		capacity:   opts.Capacity,
		policy:     opts.Policy,
		name:       opts.Name,
		clock:      opts.Clock,
		log:        opts.Log.With(slog.String("map", opts.Name)),
		metrics:    opts.Metrics,
		onEvict:    opts.OnEvict,
		valueEqual: opts.ValueEqual,
	}, nil
}

// NewLFU creates a map evicting the least frequently used entry.
func NewLFU[K comparable, V any](capacity int) (*Map[K, V], error) {
	return New(Options[K, V]{Capacity: capacity, Policy: LFU[K]()})
}

// NewLRU creates a map evicting the least recently used entry.
func NewLRU[K comparable, V any](capacity int) (*Map[K, V], error) {
	return New(Options[K, V]{Capacity: capacity, Policy: LRU[K]()})
}

func (m *Map[K, V]) Name() string { return m.name }

func (m *Map[K, V]) nextSeq() uint64 {
	m.seq++
	return m.seq
}

// Get returns the value stored for key and counts the lookup as an access.
func (m *Map[K, V]) Get(key Key[K]) (v V, ok bool) {
	s, ok := m.data[key]
	if !ok {
		m.metrics.Miss(m.name)
		return v, false
	}
	s.entry.touch(m.clock.Now(), m.nextSeq())
	m.metrics.Hit(m.name)
	return s.value, true
}

// Peek is like Get but leaves the entry's usage statistics untouched.
func (m *Map[K, V]) Peek(key Key[K]) (v V, ok bool) {
	s, ok := m.data[key]
	if !ok {
		return v, false
	}
	return s.value, true
}

// Put stores value under key. Overwriting an existing key counts as an access
// and returns the previous value with replaced=true; it never evicts. Inserting
// a new key into a full map evicts exactly one entry first.
func (m *Map[K, V]) Put(key Key[K], value V) (prev V, replaced bool) {
	if s, ok := m.data[key]; ok {
		s.entry.touch(m.clock.Now(), m.nextSeq())
		prev, s.value = s.value, value
		return prev, true
	}

	if len(m.data) >= m.capacity {
		m.EvictOne()
	}

	m.data[key] = &slot[K, V]{
		entry: newEntry(key, m.clock.Now(), m.nextSeq()),
		value: value,
	}
	m.metrics.Size(m.name, len(m.data), m.capacity)
	return prev, false
}

// PutAll calls Put for every item.
func (m *Map[K, V]) PutAll(items map[Key[K]]V) {
	for k, v := range items {
		m.Put(k, v)
	}
}

// Remove deletes key and returns its value.
func (m *Map[K, V]) Remove(key Key[K]) (v V, ok bool) {
	s, ok := m.data[key]
	if !ok {
		return v, false
	}
	delete(m.data, key)
	m.metrics.Size(m.name, len(m.data), m.capacity)
	return s.value, true
}

func (m *Map[K, V]) ContainsKey(key Key[K]) bool {
	_, ok := m.data[key]
	return ok
}

func (m *Map[K, V]) ContainsValue(value V) bool {
	for _, s := range m.data {
		if m.valueEqual(s.value, value) {
			return true
		}
	}
	return false
}

func (m *Map[K, V]) Len() int      { return len(m.data) }
func (m *Map[K, V]) IsEmpty() bool { return len(m.data) == 0 }
func (m *Map[K, V]) Capacity() int { return m.capacity }

// Clear removes all entries. OnEvict is not called.
func (m *Map[K, V]) Clear() {
	clear(m.data)
	m.metrics.Size(m.name, 0, m.capacity)
}

// SetCapacity changes the capacity. When the map holds more than n entries,
// the surplus is evicted one victim at a time before the new capacity applies.
func (m *Map[K, V]) SetCapacity(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: capacity must be greater than zero, got %d", ErrInvalidArgument, n)
	}
	if n == m.capacity {
		return nil
	}

	evicted := 0
	if over := len(m.data) - n; over > 0 {
		evicted = m.EvictN(over)
	}

	m.log.Debug("capacity changed",
		slog.Int("from", m.capacity),
		slog.Int("to", n),
		slog.Int("evicted", evicted),
	)
	m.capacity = n
	m.metrics.Size(m.name, len(m.data), m.capacity)
	return nil
}

// EvictOne removes the entry the policy ranks lowest. It reports false when
// the map is empty.
func (m *Map[K, V]) EvictOne() bool {
	victim := m.victim()
	if victim == nil {
		return false
	}

	key := victim.entry.key
	delete(m.data, key)

	m.metrics.Evicted(m.name)
	m.metrics.Size(m.name, len(m.data), m.capacity)
	m.log.Debug("evicted entry",
		slog.String("key", key.String()),
		slog.Int("accessed_count", victim.entry.accessedCount),
		slog.Time("accessed_at", victim.entry.accessedAt),
	)

	if m.onEvict != nil {
		m.onEvict(key, victim.value)
	}
	return true
}

// EvictN calls EvictOne count times and returns how many entries were evicted.
func (m *Map[K, V]) EvictN(count int) int {
	n := 0
	for ; n < count; n++ {
		if !m.EvictOne() {
			break
		}
	}
	return n
}

// victim scans all live entries for the policy minimum.
func (m *Map[K, V]) victim() *slot[K, V] {
	if len(m.data) == 0 {
		return nil
	}
	defer m.metrics.EvictionScan(m.name).ObserveDuration()

	var best *slot[K, V]
	for _, s := range m.data {
		if best == nil || m.evictsBefore(s.entry, best.entry) {
			best = s
		}
	}
	return best
}

func (m *Map[K, V]) evictsBefore(a, b *Entry[K]) bool {
	if c := m.policy.Compare(a, b); c != 0 {
		return c < 0
	}
	return a.seq < b.seq
}

// Info returns a snapshot of the metadata stored for key without touching it.
func (m *Map[K, V]) Info(key Key[K]) (EntryInfo[K], bool) {
	s, ok := m.data[key]
	if !ok {
		return EntryInfo[K]{}, false
	}
	return s.entry.info(), true
}

// === snapshot views ===

// sorted returns the live slots in creation order.
func (m *Map[K, V]) sorted() []*slot[K, V] {
	out := make([]*slot[K, V], 0, len(m.data))
	for _, s := range m.data {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *slot[K, V]) int {
		return cmp.Compare(a.entry.seq, b.entry.seq)
	})
	return out
}

// Keys returns a snapshot of the keys in creation order.
func (m *Map[K, V]) Keys() *ds.Set[Key[K]] {
	keys := ds.NewSet[Key[K]]()
	for _, s := range m.sorted() {
		keys.Add(s.entry.key)
	}
	return keys
}

// Values returns a snapshot of the values in key creation order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, len(m.data))
	for _, s := range m.sorted() {
		values = append(values, s.value)
	}
	return values
}

// Entries returns a snapshot of the key/value pairs in creation order.
func (m *Map[K, V]) Entries() []Item[K, V] {
	items := make([]Item[K, V], 0, len(m.data))
	for _, s := range m.sorted() {
		items = append(items, Item[K, V]{Key: s.entry.key, Value: s.value})
	}
	return items
}

// All iterates over a snapshot taken when iteration starts. Mutating the map
// during iteration does not affect the sequence.
func (m *Map[K, V]) All() iter.Seq2[Key[K], V] {
	return func(yield func(Key[K], V) bool) {
		for _, it := range m.Entries() {
			if !yield(it.Key, it.Value) {
				return
			}
		}
	}
}

// === equality ===

// Equal reports whether both maps hold the same key/value associations.
// Usage statistics, capacity and policy are ignored.
func (m *Map[K, V]) Equal(other *Map[K, V]) bool {
	if other == nil {
		return false
	}
	if m == other {
		return true
	}
	return m.equalAssoc(len(other.data), other.Peek)
}

// EqualMap is like Equal but compares against a plain Go map.
func (m *Map[K, V]) EqualMap(other map[Key[K]]V) bool {
	return m.equalAssoc(len(other), func(k Key[K]) (v V, ok bool) {
		v, ok = other[k]
		return
	})
}

func (m *Map[K, V]) equalAssoc(n int, lookup func(Key[K]) (V, bool)) bool {
	if n != len(m.data) {
		return false
	}
	for k, s := range m.data {
		v, ok := lookup(k)
		if !ok || !m.valueEqual(s.value, v) {
			return false
		}
	}
	return true
}

// Hash returns an order-independent digest of the key/value associations.
// Maps that are Equal under the default value equality hash identically.
func (m *Map[K, V]) Hash() uint64 {
	var h uint64
	for k, s := range m.data {
		h += fingerprint(k, s.value)
	}
	return h
}

func (m *Map[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, s := range m.sorted() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v: %v", s.entry.key, s.value)
	}
	b.WriteByte('}')
	return b.String()
}
