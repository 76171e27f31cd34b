// Package cache provides a generic in-process object cache that never owns
// the values it caches.
//
// Design
//
//   - Ownership: the cache stores a weak reference (see package weakref) to
//     each value. Callers keep values alive by holding pointers to them; once
//     the last pointer is dropped and the garbage collector reclaims the
//     value, the entry is treated as gone. Get hands back a strong pointer
//     that keeps the value alive only while the caller holds it.
//
//   - Expiry: an entry expires when its value is reclaimed, never by time.
//     Expired entries are removed lazily on Get, on every Put (a full sweep
//     before any eviction), by CleanupExpired, and optionally by a background
//     janitor (Options.CleanupInterval).
//
//   - Eviction: when a Put of a new key finds the cache at Capacity, the
//     active policy removes exactly one entry. Policies are pluggable and
//     stateless (package policy): LRU by default, LFU and FIFO are provided.
//     A policy that removes anything other than one entry is a programming
//     error and makes Put panic.
//
//   - Concurrency: an ObjectCache guards its table and policy with a single
//     mutex held for the whole of each call; operations are linearizable.
//     Sharded splits keys across N ObjectCaches to reduce contention.
//
//   - Observability: Options.Metrics receives Hit/Miss/Evict/Size signals
//     (NoopMetrics by default, metrics/prom for Prometheus), OnEvict is
//     called with the reason, and Options.Logger (log/slog) gets debug
//     records for evictions and janitor sweeps.
//
// Basic usage
//
//	c, err := cache.New[string, Resource](cache.Options[string, Resource]{Capacity: 1000})
//	if err != nil {
//	    return err
//	}
//	res := &Resource{Name: "config"}
//	c.Put("config", res)
//	if r, ok := c.Get("config"); ok {
//	    _ = r // strong pointer, valid while held
//	}
//
// After the last reference to res is dropped and a GC cycle runs,
// c.Get("config") misses and c.Contains("config") is false.
//
// Choosing a policy
//
//	c.SetPolicy(lfu.New[string]())
//
// Sharding
//
//	s, err := cache.NewSharded[string, Resource](cache.Options[string, Resource]{
//	    Capacity: 50_000,
//	    Shards:   16,
//	})
package cache
