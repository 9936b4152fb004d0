package omap

import (
	"fmt"
	"reflect"
	"testing"
)

func assertExpected(t *testing.T, expected, got interface{}) bool {
	t.Helper()
	if !reflect.DeepEqual(expected, got) {
		t.Errorf("error, expected: %v, got: %v\n", expected, got)
		return false
	}
	return true
}

var words = []string{
	"reproducibility", "eruct", "acids", "flyspecks", "driveshafts",
	"volcanically", "discouraging", "acapnia", "phenazines", "hoarser",
	"abusing", "samara", "thromboses", "impolite", "keshes",
	"multipart", "unrevealed", "bashes", "tolerably", "owners",
	"heinousness", "yearend", "bipeds", "shapeless", "bauds",
}

func Test_HashedIndex_InsertAndLookup(t *testing.T) {
	m := NewWithHasher[string, int](0, StringHasher{})
	for i, word := range words {
		if err := m.Add(word, i); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	assertExpected(t, len(words), m.Len())
	for i, word := range words {
		got, ok := m.Lookup(word)
		assertExpected(t, true, ok)
		assertExpected(t, i, got)
	}
	_, ok := m.Lookup("missing")
	assertExpected(t, false, ok)
}

func Test_HashedIndex_GrowsAcrossResize(t *testing.T) {
	// enough keys to force the chained table through several doublings
	m := NewWithHasher[string, int](0, StringHasher{})
	n := 1000
	for i := 0; i < n; i++ {
		if err := m.Add(fmt.Sprintf("key-%0.6d", i), i); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	assertExpected(t, n, m.Len())
	for i := 0; i < n; i++ {
		got, ok := m.Lookup(fmt.Sprintf("key-%0.6d", i))
		assertExpected(t, true, ok)
		assertExpected(t, i, got)
	}
	// order must have survived every resize
	assertExpected(t, 0, m.IndexOf("key-000000"))
	assertExpected(t, n-1, m.IndexOf(fmt.Sprintf("key-%0.6d", n-1)))
}

func Test_HashedIndex_Delete(t *testing.T) {
	m := NewWithHasher[string, int](128, StringHasher{})
	for i, word := range words {
		if err := m.Add(word, i); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	for _, word := range words {
		ok := m.Remove(word)
		assertExpected(t, true, ok)
	}
	assertExpected(t, 0, m.Len())
	for _, word := range words {
		assertExpected(t, false, m.Has(word))
	}
}

func Test_HashedIndex_FoldedEquality(t *testing.T) {
	m := NewWithHasher[string, string](0, FoldedStringHasher{})
	if err := m.Add("Content-Type", "text/plain"); err != nil {
		t.Fatalf("add: %v", err)
	}

	// the folded strategy governs key identity everywhere
	assertExpected(t, true, m.Has("content-type"))
	assertExpected(t, true, m.Has("CONTENT-TYPE"))
	assertExpected(t, 0, m.IndexOf("content-TYPE"))
	assertExpected(t, ErrDuplicateKey, m.Add("CONTENT-type", "nope"))

	got, ok := m.Lookup("content-type")
	assertExpected(t, true, ok)
	assertExpected(t, "text/plain", got)

	// replacing through a differently cased key keeps the original key
	prev, replaced := m.Set("content-type", "text/html")
	assertExpected(t, true, replaced)
	assertExpected(t, "text/plain", prev)
	k, v, err := m.GetAt(0)
	assertExpected(t, nil, err)
	assertExpected(t, "Content-Type", k)
	assertExpected(t, "text/html", v)

	assertExpected(t, true, m.Remove("CONTENT-TYPE"))
	assertExpected(t, 0, m.Len())
}

func Test_HashedIndex_FoldedEqualityUnicode(t *testing.T) {
	// runes outside ASCII that fold equal without lowering equal: U+017F
	// long s folds to s, U+03C2 final sigma folds to U+03C3 sigma
	folded := FoldedStringHasher{}
	assertExpected(t, true, folded.Equal("ſ", "s"))
	assertExpected(t, folded.Hash("s"), folded.Hash("ſ"))
	assertExpected(t, true, folded.Equal("ς", "σ"))
	assertExpected(t, folded.Hash("σ"), folded.Hash("ς"))
	assertExpected(t, folded.Hash("σ"), folded.Hash("Σ"))

	m := NewWithHasher[string, int](0, folded)
	if err := m.Add("ſ", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	assertExpected(t, ErrDuplicateKey, m.Add("s", 2))
	assertExpected(t, ErrDuplicateKey, m.Add("S", 2))
	assertExpected(t, 1, m.Len())
	got, ok := m.Lookup("S")
	assertExpected(t, true, ok)
	assertExpected(t, 1, got)
}

func Test_HashedIndex_InsertRepointsExistingKey(t *testing.T) {
	h := newHashedIndex[string, int](0, StringHasher{})
	first := &Entry[string, int]{Key: "foo", Val: 1}
	h.insert("foo", first)
	second := &Entry[string, int]{Key: "foo", Val: 2}
	h.insert("foo", second)

	// inserting an already indexed key re-points the node, not chains it
	assertExpected(t, 1, h.length())
	ent, ok := h.lookup("foo")
	assertExpected(t, true, ok)
	assertExpected(t, true, ent == second)
}

func Test_HashedIndex_Clear(t *testing.T) {
	m := NewWithHasher[string, int](0, FoldedStringHasher{})
	for i, word := range words {
		if err := m.Add(word, i); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	m.Clear()
	assertExpected(t, 0, m.Len())

	// the folded strategy survives a clear
	if err := m.Add("Foo", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	assertExpected(t, true, m.Has("foo"))
}

func Test_HashedIndex_Reserve(t *testing.T) {
	m := NewWithHasher[string, int](0, StringHasher{})
	if err := m.Add("foo", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	capacity, err := m.Reserve(512)
	assertExpected(t, nil, err)
	assertExpected(t, true, capacity >= 512)
	assertExpected(t, 1, m.Len())
	got, ok := m.Lookup("foo")
	assertExpected(t, true, ok)
	assertExpected(t, 1, got)
}

func BenchmarkOrderedMap_Add(b *testing.B) {
	benchAdd(b, func() *OrderedMap[string, int] {
		return NewWithCapacity[string, int](128)
	})
}

func BenchmarkOrderedMap_AddHashed(b *testing.B) {
	benchAdd(b, func() *OrderedMap[string, int] {
		return NewWithHasher[string, int](128, StringHasher{})
	})
}

func benchAdd(b *testing.B, newMap func() *OrderedMap[string, int]) {
	keys := make([]string, 1024)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%0.6d", i)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for n := 0; n < b.N; n++ {
		m := newMap()
		for i, key := range keys {
			m.TryAdd(key, i)
		}
	}
}

func BenchmarkOrderedMap_Remove(b *testing.B) {
	benchRemove(b, func() *OrderedMap[string, int] {
		return NewWithCapacity[string, int](1024)
	})
}

func BenchmarkOrderedMap_RemoveHashed(b *testing.B) {
	benchRemove(b, func() *OrderedMap[string, int] {
		return NewWithHasher[string, int](1024, StringHasher{})
	})
}

func benchRemove(b *testing.B, newMap func() *OrderedMap[string, int]) {
	keys := make([]string, 1024)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%0.6d", i)
	}
	b.ReportAllocs()
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		m := newMap()
		for i, key := range keys {
			m.TryAdd(key, i)
		}
		b.StartTimer()
		// drain back to front so each removal shifts as little as possible
		for i := len(keys) - 1; i >= 0; i-- {
			m.Remove(keys[i])
		}
	}
}

var result int

func BenchmarkOrderedMap_Lookup(b *testing.B) {
	benchLookup(b, NewWithCapacity[string, int](1024))
}

func BenchmarkOrderedMap_LookupHashed(b *testing.B) {
	benchLookup(b, NewWithHasher[string, int](1024, StringHasher{}))
}

func benchLookup(b *testing.B, m *OrderedMap[string, int]) {
	keys := make([]string, 1024)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%0.6d", i)
		m.TryAdd(keys[i], i)
	}
	b.ResetTimer()
	b.ReportAllocs()
	var val int
	for n := 0; n < b.N; n++ {
		val, _ = m.Lookup(keys[n%len(keys)])
	}
	result = val
}
