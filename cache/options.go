package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/IvanBrykalov/weakcache/policy"
)

// EvictReason explains why an entry was removed.
type EvictReason int

const (
	// EvictPolicy: removed by the eviction policy to make room for a Put.
	EvictPolicy EvictReason = iota
	// EvictExpired: the cached value was reclaimed by its owner, found by a
	// sweep or a lookup.
	EvictExpired
)

func (r EvictReason) String() string {
	switch r {
	case EvictPolicy:
		return "policy"
	case EvictExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Metrics exposes cache-level observability hooks.
// NoopMetrics is used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Size(entries int)
}

// Clock provides time in nanoseconds; useful for deterministic tests.
// Only differences between readings matter to the cache.
type Clock interface{ NowUnixNano() int64 }

// Options configures a cache. Zero values are safe; New applies defaults:
//   - nil Policy   => LRU
//   - nil Metrics  => NoopMetrics
//   - nil Clock    => monotonic clock
//   - nil Logger   => discard
type Options[K comparable, V any] struct {
	// Capacity is the entry count limit. Must be > 0.
	Capacity int

	// Shards is the number of partitions used by NewSharded (0 = auto).
	// It is rounded up to a power of two and clamped to Capacity.
	// New ignores it.
	Shards int

	// Hash maps keys to shards for NewSharded. Nil => xxhash over common
	// key types; other key types must set it.
	Hash func(K) uint64

	// Policy picks the victim when a Put finds the cache full.
	Policy policy.Policy[K]

	// Loader produces a value on a GetOrLoad miss. The loader's result is
	// returned to the caller, who becomes its owner; the cache keeps only a
	// weak reference to it like any other Put.
	Loader func(ctx context.Context, k K) (*V, error)

	// CleanupInterval > 0 runs CleanupExpired in the background on this period.
	CleanupInterval time.Duration

	// OnEvict is called for every policy eviction and every expired entry
	// dropped, under the cache lock; keep it lightweight and do not call back
	// into the cache.
	OnEvict func(k K, reason EvictReason)

	Metrics Metrics
	Logger  *slog.Logger

	// Clock overrides the time source (tests).
	Clock Clock
}

// monoClock reads wall time once and advances with the monotonic clock, so
// recency ordering is immune to wall-clock jumps.
type monoClock struct{ base time.Time }

func (c monoClock) NowUnixNano() int64 {
	return c.base.UnixNano() + int64(time.Since(c.base))
}

func (opt Options[K, V]) withDefaults() Options[K, V] {
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Clock == nil {
		opt.Clock = monoClock{base: time.Now()}
	}
	if opt.Logger == nil {
		opt.Logger = slog.New(slog.DiscardHandler)
	}
	return opt
}
