// Package collections is a small library of in-memory generic containers.
// Each container lives in its own package under pkg; this root package only
// declares the behavior they share.
package collections

import "github.com/scottcagno/collections/pkg/omap"

// Map is the common surface of the keyed containers in this library
type Map[K comparable, V any] interface {
	Len() int
	Has(key K) bool
	Lookup(key K) (V, bool)
	Set(key K, value V) (V, bool)
	Remove(key K) bool
	Clear()
}

var _ Map[string, int] = (*omap.OrderedMap[string, int])(nil)
