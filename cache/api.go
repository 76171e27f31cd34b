package cache

import (
	"context"

	"github.com/IvanBrykalov/weakcache/policy"
)

// Cache is an in-process object cache holding non-owning references to
// values owned elsewhere. All methods are safe for concurrent use.
//
// Both *ObjectCache and *Sharded implement it.
type Cache[K comparable, V any] interface {
	// Put stores a weak reference to v under k, evicting one entry by policy
	// if the cache is full. Put never extends v's lifetime.
	Put(k K, v *V)

	// Get returns a strong pointer to the value for k if it is cached and
	// still alive. On hit the entry's recency is refreshed.
	Get(k K) (*V, bool)

	// Contains reports whether k is cached and alive, without touching recency.
	Contains(k K) bool

	// Remove deletes k and reports whether it was present.
	Remove(k K) bool

	// Size returns the number of entries, including expired ones that have
	// not been swept yet.
	Size() int

	// Clear removes every entry.
	Clear()

	// CleanupExpired removes entries whose value was reclaimed and returns
	// how many were removed.
	CleanupExpired() int

	// SetPolicy replaces the eviction policy; nil restores LRU.
	SetPolicy(p policy.Policy[K])

	// GetOrLoad returns the cached value for k or loads it via Options.Loader,
	// coalescing concurrent loads of the same key.
	GetOrLoad(ctx context.Context, k K) (*V, error)

	// Stats returns a snapshot of hit/miss/eviction counters.
	Stats() Stats

	// Close stops background work and turns later operations into no-ops.
	Close() error
}
