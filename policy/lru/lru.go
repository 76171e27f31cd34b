// Package lru implements the LRU eviction policy.
package lru

import "github.com/IvanBrykalov/weakcache/policy"

// lru removes the entry with the oldest LastAccessedAt.
//
// It keeps no ordered structure of its own: each Evict is an O(n) scan over
// the table. That is fine for caches of a few thousand entries and keeps the
// policy replaceable without hooks into the cache internals.
type lru[K comparable] struct{}

// New returns a Least-Recently-Used policy.
func New[K comparable]() policy.Policy[K] { return lru[K]{} }

// Evict removes the least recently used entry. Ties on the timestamp are
// broken by AccessSeq, so the older touch loses.
func (lru[K]) Evict(t policy.Table[K]) { policy.EvictMin(t, Less[K]) }

// Less orders nodes from least to most recently used.
func Less[K comparable](a, b policy.Node[K]) bool {
	if a.LastAccessedAt() != b.LastAccessedAt() {
		return a.LastAccessedAt() < b.LastAccessedAt()
	}
	return a.AccessSeq() < b.AccessSeq()
}
