package omap

const (
	loadFactor       = 0.85 // load factor must exceed 50%
	defaultTableSize = 16
)

// keyIndex is the fast key lookup half of an OrderedMap. It maps each key
// to the same *Entry the ordered sequence holds, so a value written through
// one structure is visible through the other.
type keyIndex[K comparable, V any] interface {
	lookup(key K) (*Entry[K, V], bool)
	insert(key K, ent *Entry[K, V])
	delete(key K)
	length() int
	clear()
	reserve(size int)
}

// nativeIndex is the default keyIndex, backed by the built-in map and the
// key type's built-in equality
type nativeIndex[K comparable, V any] struct {
	items map[K]*Entry[K, V]
}

func newNativeIndex[K comparable, V any](size int) *nativeIndex[K, V] {
	return &nativeIndex[K, V]{
		items: make(map[K]*Entry[K, V], size),
	}
}

func (n *nativeIndex[K, V]) lookup(key K) (*Entry[K, V], bool) {
	ent, ok := n.items[key]
	return ent, ok
}

func (n *nativeIndex[K, V]) insert(key K, ent *Entry[K, V]) {
	n.items[key] = ent
}

func (n *nativeIndex[K, V]) delete(key K) {
	delete(n.items, key)
}

func (n *nativeIndex[K, V]) length() int {
	return len(n.items)
}

func (n *nativeIndex[K, V]) clear() {
	clear(n.items)
}

func (n *nativeIndex[K, V]) reserve(size int) {
	// the built-in map only takes a size hint at make time, so there is
	// nothing useful to do for an already populated index
}

// indexNode is a node in a bucket's chain
type indexNode[K comparable, V any] struct {
	hashkey uint64
	ent     *Entry[K, V]
	next    *indexNode[K, V]
}

// indexBucket represents a single slot in the hashedIndex table
type indexBucket[K comparable, V any] struct {
	head *indexNode[K, V]
}

// search walks the chain for a node matching the specified hashkey and key
func (b *indexBucket[K, V]) search(hashkey uint64, key K, hasher Hasher[K]) *indexNode[K, V] {
	current := b.head
	for current != nil {
		if current.hashkey == hashkey && hasher.Equal(current.ent.Key, key) {
			return current
		}
		current = current.next
	}
	return nil
}

// delete unlinks and returns the node matching the specified hashkey and key
func (b *indexBucket[K, V]) delete(hashkey uint64, key K, hasher Hasher[K]) *indexNode[K, V] {
	if b.head == nil {
		return nil
	}
	if b.head.hashkey == hashkey && hasher.Equal(b.head.ent.Key, key) {
		node := b.head
		b.head = b.head.next
		return node
	}
	previous := b.head
	for previous.next != nil {
		if previous.next.hashkey == hashkey && hasher.Equal(previous.next.ent.Key, key) {
			node := previous.next
			previous.next = node.next
			return node
		}
		previous = previous.next
	}
	return nil
}

// hashedIndex is a chained hashtable keyIndex governed by a caller
// supplied Hasher instead of the key type's built-in equality
type hashedIndex[K comparable, V any] struct {
	hasher  Hasher[K]
	mask    uint64
	expand  uint
	shrink  uint
	keys    uint
	size    uint
	buckets []indexBucket[K, V]
}

// alignBucketCount aligns buckets to ensure all sizes are powers of two
func alignBucketCount(size uint) uint64 {
	count := uint(defaultTableSize)
	for count < size {
		count *= 2
	}
	return uint64(count)
}

func newHashedIndex[K comparable, V any](size int, hasher Hasher[K]) *hashedIndex[K, V] {
	bukCnt := alignBucketCount(uint(size))
	h := &hashedIndex[K, V]{
		hasher:  hasher,
		mask:    bukCnt - 1, // this minus one is extremely important for using a mask over modulo
		expand:  uint(float64(bukCnt) * loadFactor),
		shrink:  uint(float64(bukCnt) * (1 - loadFactor)),
		keys:    0,
		size:    uint(size),
		buckets: make([]indexBucket[K, V], bukCnt),
	}
	return h
}

// resize grows or shrinks the hashedIndex to the newSize provided. It makes
// a new table with the new size, relinks every node, and frees the old table
func (h *hashedIndex[K, V]) resize(newSize uint) {
	newHI := newHashedIndex[K, V](int(newSize), h.hasher)
	for i := 0; i < len(h.buckets); i++ {
		current := h.buckets[i].head
		for current != nil {
			next := current.next
			// relink the node into the new table, reusing the
			// hashkey computed at insert time
			j := current.hashkey & newHI.mask
			current.next = newHI.buckets[j].head
			newHI.buckets[j].head = current
			newHI.keys++
			current = next
		}
	}
	tsize := h.size
	*h = *newHI
	h.size = tsize
}

func (h *hashedIndex[K, V]) lookup(key K) (*Entry[K, V], bool) {
	hashkey := h.hasher.Hash(key)
	i := hashkey & h.mask
	node := h.buckets[i].search(hashkey, key, h.hasher)
	if node == nil {
		return nil, false
	}
	return node.ent, true
}

func (h *hashedIndex[K, V]) insert(key K, ent *Entry[K, V]) {
	// check and see if we need to resize
	if h.keys >= h.expand {
		// if we do, then double the table size
		h.resize(uint(len(h.buckets)) * 2)
	}
	hashkey := h.hasher.Hash(key)
	i := hashkey & h.mask
	if node := h.buckets[i].search(hashkey, key, h.hasher); node != nil {
		// key already indexed, re-point the node
		node.ent = ent
		return
	}
	h.buckets[i].head = &indexNode[K, V]{
		hashkey: hashkey,
		ent:     ent,
		next:    h.buckets[i].head,
	}
	h.keys++
}

func (h *hashedIndex[K, V]) delete(key K) {
	hashkey := h.hasher.Hash(key)
	i := hashkey & h.mask
	if node := h.buckets[i].delete(hashkey, key, h.hasher); node != nil {
		h.keys--
	}
	// check and see if we need to resize
	if h.keys <= h.shrink && uint64(len(h.buckets)) > alignBucketCount(h.size) {
		// if it checks out, then resize down
		h.resize(h.keys)
	}
}

func (h *hashedIndex[K, V]) length() int {
	return int(h.keys)
}

func (h *hashedIndex[K, V]) clear() {
	*h = *newHashedIndex[K, V](int(h.size), h.hasher)
}

func (h *hashedIndex[K, V]) reserve(size int) {
	if alignBucketCount(uint(size)) > uint64(len(h.buckets)) {
		h.resize(uint(size))
	}
}
