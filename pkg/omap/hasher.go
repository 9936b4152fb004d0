package omap

import (
	"hash/maphash"
	"strings"
	"unicode"
)

// Hasher is the key-equality strategy for an OrderedMap. It is supplied
// once at construction and held for the lifetime of the map; two keys are
// treated as the same key iff Equal reports true, and Equal keys must
// produce the same Hash value.
type Hasher[K comparable] interface {
	Hash(key K) uint64
	Equal(a, b K) bool
}

// hashSeed is shared by the provided string hashers so that equal strings
// hash equally across maps within the same process
var hashSeed = maphash.MakeSeed()

// StringHasher is a Hasher for string keys using the natural string
// equality. It exists mainly as a baseline and as an example of the
// Hasher contract.
type StringHasher struct{}

func (StringHasher) Hash(key string) uint64 {
	return maphash.String(hashSeed, key)
}

func (StringHasher) Equal(a, b string) bool {
	return a == b
}

// FoldedStringHasher is a Hasher for string keys that treats keys
// differing only in letter case as the same key, under the same simple
// Unicode case folding strings.EqualFold uses
type FoldedStringHasher struct{}

func (FoldedStringHasher) Hash(key string) uint64 {
	return maphash.String(hashSeed, foldCanonical(key))
}

func (FoldedStringHasher) Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

// foldCanonical maps every rune to the smallest rune in its case folding
// orbit, so two strings canonicalize identically iff strings.EqualFold
// reports them equal. strings.ToLower is not good enough here: runes like
// U+017F long s or U+03C2 final sigma fold equal to their plain forms but
// are already lowercase, so lowering leaves them distinct.
func foldCanonical(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		least := r
		for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
			if f < least {
				least = f
			}
		}
		b.WriteRune(least)
	}
	return b.String()
}
