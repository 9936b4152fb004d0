// Package omap implements an insertion-ordered associative container. It
// combines list style positional access and iteration with hashmap style
// keyed lookup: lookup, append, membership and in-place value update run in
// O(1) average time, while positional insert, positional remove and IndexOf
// cost O(n) because the ordered sequence must be shifted or scanned. That
// trade-off is the point of the container and callers should pick it with
// that in mind.
//
// An OrderedMap is not safe for concurrent use, and it is not safe to
// mutate the map while ranging over it.
package omap

import (
	"iter"
	"slices"
)

// Entry is a key value pair held at a position in the map's ordering
type Entry[K comparable, V any] struct {
	Key K
	Val V
}

// OrderedMap keeps a dense ordered sequence of entries in lockstep with a
// key index over the same entries. The index holds the same *Entry values
// the sequence does, so the two structures can never disagree about what a
// key maps to; every mutating operation either updates both or neither.
type OrderedMap[K comparable, V any] struct {
	entries []*Entry[K, V]
	index   keyIndex[K, V]
}

// New returns an empty OrderedMap using the key type's built-in equality
func New[K comparable, V any]() *OrderedMap[K, V] {
	return NewWithCapacity[K, V](0)
}

// NewWithCapacity returns an empty OrderedMap pre-sized to hold capacity
// entries before needing to grow
func NewWithCapacity[K comparable, V any](capacity int) *OrderedMap[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	return &OrderedMap[K, V]{
		entries: make([]*Entry[K, V], 0, capacity),
		index:   newNativeIndex[K, V](capacity),
	}
}

// NewWithHasher returns an empty OrderedMap whose key equality is governed
// by the supplied Hasher instead of the key type's built-in equality. The
// hasher is fixed for the lifetime of the map. A nil hasher falls back to
// the built-in equality.
func NewWithHasher[K comparable, V any](capacity int, hasher Hasher[K]) *OrderedMap[K, V] {
	if hasher == nil {
		return NewWithCapacity[K, V](capacity)
	}
	if capacity < 0 {
		capacity = 0
	}
	return &OrderedMap[K, V]{
		entries: make([]*Entry[K, V], 0, capacity),
		index:   newHashedIndex[K, V](capacity, hasher),
	}
}

// NewFromPairs returns an OrderedMap seeded with the provided pairs, added
// front to back through the same path as Add. Seeding is not atomic: on the
// first duplicate key it stops and returns the partially seeded map along
// with ErrDuplicateKey, keeping every pair added before the conflict.
func NewFromPairs[K comparable, V any](pairs []Entry[K, V]) (*OrderedMap[K, V], error) {
	m := NewWithCapacity[K, V](len(pairs))
	if _, err := m.AddRange(pairs); err != nil {
		return m, err
	}
	return m, nil
}

// Len returns the number of entries currently in the map
func (m *OrderedMap[K, V]) Len() int {
	return len(m.entries)
}

// Get returns the value stored for the given key, or ErrKeyNotFound if the
// key is absent. Callers that expect missing keys should use Lookup.
func (m *OrderedMap[K, V]) Get(key K) (V, error) {
	ent, ok := m.index.lookup(key)
	if !ok {
		return *new(V), ErrKeyNotFound
	}
	return ent.Val, nil
}

// Lookup returns a value for a given key, or returns false if none could
// be found
func (m *OrderedMap[K, V]) Lookup(key K) (V, bool) {
	ent, ok := m.index.lookup(key)
	if !ok {
		return *new(V), false
	}
	return ent.Val, true
}

// Has reports whether the given key is present
func (m *OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.index.lookup(key)
	return ok
}

// IndexOf returns the position of the given key in iteration order, or -1
// if the key is absent. It runs in O(n); callers needing frequent position
// lookups should cache the result.
func (m *OrderedMap[K, V]) IndexOf(key K) int {
	ent, ok := m.index.lookup(key)
	if !ok {
		return -1
	}
	// the index and the sequence share entries, so scan for the pointer
	for i, e := range m.entries {
		if e == ent {
			return i
		}
	}
	return -1
}

// GetAt returns the key and value at the given position, or
// ErrIndexOutOfRange if the position is outside [0, Len)
func (m *OrderedMap[K, V]) GetAt(position int) (K, V, error) {
	if position < 0 || position >= len(m.entries) {
		return *new(K), *new(V), ErrIndexOutOfRange
	}
	ent := m.entries[position]
	return ent.Key, ent.Val, nil
}

// EntryAt returns a copy of the entry at the given position, or
// ErrIndexOutOfRange if the position is outside [0, Len)
func (m *OrderedMap[K, V]) EntryAt(position int) (Entry[K, V], error) {
	if position < 0 || position >= len(m.entries) {
		return Entry[K, V]{}, ErrIndexOutOfRange
	}
	return *m.entries[position], nil
}

// Add appends a new entry for the given key and value. It fails with
// ErrDuplicateKey if the key is already present, in which case nothing
// changes.
func (m *OrderedMap[K, V]) Add(key K, value V) error {
	if _, ok := m.index.lookup(key); ok {
		return ErrDuplicateKey
	}
	ent := &Entry[K, V]{Key: key, Val: value}
	m.entries = append(m.entries, ent)
	m.index.insert(key, ent)
	return nil
}

// TryAdd appends a new entry for the given key and value, reporting whether
// the entry was added. A false return means the key was already present and
// nothing changed.
func (m *OrderedMap[K, V]) TryAdd(key K, value V) bool {
	return m.Add(key, value) == nil
}

// AddRange applies Add to each pair in order. It is not atomic: it stops at
// the first duplicate key, keeping everything added before the conflict,
// and returns the number of pairs applied along with the error.
func (m *OrderedMap[K, V]) AddRange(pairs []Entry[K, V]) (int, error) {
	for i, pair := range pairs {
		if err := m.Add(pair.Key, pair.Val); err != nil {
			return i, err
		}
	}
	return len(pairs), nil
}

// Set inserts or replaces the value for the given key and returns the
// previous value, or false. Replacing a value never moves the key: it keeps
// the position it had when it was first added.
func (m *OrderedMap[K, V]) Set(key K, value V) (V, bool) {
	if ent, ok := m.index.lookup(key); ok {
		prev := ent.Val
		ent.Val = value
		return prev, true
	}
	ent := &Entry[K, V]{Key: key, Val: value}
	m.entries = append(m.entries, ent)
	m.index.insert(key, ent)
	return *new(V), false
}

// Insert places a new entry at the given position, shifting subsequent
// entries up by one. Position Len is valid and appends. It fails with
// ErrIndexOutOfRange for positions outside [0, Len] and with
// ErrDuplicateKey if the key is already present; on failure nothing
// changes.
func (m *OrderedMap[K, V]) Insert(position int, key K, value V) error {
	if position < 0 || position > len(m.entries) {
		return ErrIndexOutOfRange
	}
	if _, ok := m.index.lookup(key); ok {
		return ErrDuplicateKey
	}
	ent := &Entry[K, V]{Key: key, Val: value}
	m.entries = slices.Insert(m.entries, position, ent)
	m.index.insert(key, ent)
	return nil
}

// Remove removes the entry for the given key if present, shifting
// subsequent entries down by one, and reports whether a removal occurred
func (m *OrderedMap[K, V]) Remove(key K) bool {
	ent, ok := m.index.lookup(key)
	if !ok {
		return false
	}
	for i, e := range m.entries {
		if e == ent {
			m.entries = slices.Delete(m.entries, i, i+1)
			break
		}
	}
	m.index.delete(key)
	return true
}

// RemoveAt removes and returns the entry at the given position, shifting
// subsequent entries down by one. It fails with ErrIndexOutOfRange if the
// position is outside [0, Len).
func (m *OrderedMap[K, V]) RemoveAt(position int) (Entry[K, V], error) {
	if position < 0 || position >= len(m.entries) {
		return Entry[K, V]{}, ErrIndexOutOfRange
	}
	ent := m.entries[position]
	m.entries = slices.Delete(m.entries, position, position+1)
	m.index.delete(ent.Key)
	return *ent, nil
}

// Clear empties the map, retaining allocated capacity where the backing
// structures allow it
func (m *OrderedMap[K, V]) Clear() {
	m.entries = m.entries[:0]
	m.index.clear()
}

// Reserve hints the map to pre-allocate room for at least capacity entries
// and returns the resulting effective capacity. It fails with
// ErrInvalidArgument if capacity is negative and never changes observable
// state.
func (m *OrderedMap[K, V]) Reserve(capacity int) (int, error) {
	if capacity < 0 {
		return 0, ErrInvalidArgument
	}
	if capacity > cap(m.entries) {
		m.entries = slices.Grow(m.entries, capacity-len(m.entries))
	}
	m.index.reserve(capacity)
	return cap(m.entries), nil
}

// CopyRange copies count entries starting at sourcePosition into dst
// starting at destinationOffset, leaving dst outside the copied range
// untouched. It fails with ErrIndexOutOfRange if the source range exceeds
// the map's bounds and with ErrInvalidArgument for a negative count or a
// destination range exceeding dst.
func (m *OrderedMap[K, V]) CopyRange(sourcePosition int, dst []Entry[K, V], destinationOffset, count int) error {
	if count < 0 || destinationOffset < 0 {
		return ErrInvalidArgument
	}
	if sourcePosition < 0 || sourcePosition+count > len(m.entries) {
		return ErrIndexOutOfRange
	}
	if destinationOffset+count > len(dst) {
		return ErrInvalidArgument
	}
	for i := 0; i < count; i++ {
		dst[destinationOffset+i] = *m.entries[sourcePosition+i]
	}
	return nil
}

// CopyTo copies every entry in order into dst starting at position zero.
// It fails with ErrInvalidArgument if dst cannot hold Len entries.
func (m *OrderedMap[K, V]) CopyTo(dst []Entry[K, V]) error {
	if len(dst) < len(m.entries) {
		return ErrInvalidArgument
	}
	return m.CopyRange(0, dst, 0, len(m.entries))
}

// Snapshot returns an owned copy of the entries in iteration order. Unlike
// the iterator views it does not reflect later mutation.
func (m *OrderedMap[K, V]) Snapshot() []Entry[K, V] {
	out := make([]Entry[K, V], len(m.entries))
	for i, ent := range m.entries {
		out[i] = *ent
	}
	return out
}

// All returns an iterator over key value pairs in insertion order. Each
// fresh iteration restarts from position zero and sees the map's current
// contents; mutating the map while iterating is not safe.
func (m *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, ent := range m.entries {
			if !yield(ent.Key, ent.Val) {
				return
			}
		}
	}
}

// Keys returns an iterator over the keys in insertion order. Like All it
// reads the map's current contents on every fresh iteration.
func (m *OrderedMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, ent := range m.entries {
			if !yield(ent.Key) {
				return
			}
		}
	}
}

// Values returns an iterator over the values in insertion order. Like All
// it reads the map's current contents on every fresh iteration.
func (m *OrderedMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, ent := range m.entries {
			if !yield(ent.Val) {
				return
			}
		}
	}
}

// Range takes an iterator function and ranges the map in insertion order
// for as long as the function continues to return true. Range is not safe
// to perform an insert or remove operation while ranging!
func (m *OrderedMap[K, V]) Range(it func(key K, value V) bool) {
	for _, ent := range m.entries {
		if !it(ent.Key, ent.Val) {
			return
		}
	}
}

// Contains reports whether the map holds the given key with the given
// value. Key identity follows the map's configured equality; value equality
// is the value type's built-in equality.
func Contains[K, V comparable](m *OrderedMap[K, V], key K, value V) bool {
	ent, ok := m.index.lookup(key)
	return ok && ent.Val == value
}

// RemoveEntry removes the entry for the given key only if its current value
// equals the given value, reporting whether a removal occurred
func RemoveEntry[K, V comparable](m *OrderedMap[K, V], key K, value V) bool {
	if !Contains(m, key, value) {
		return false
	}
	return m.Remove(key)
}
