package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/IvanBrykalov/weakcache/internal/singleflight"
	"github.com/IvanBrykalov/weakcache/internal/util"
	"github.com/IvanBrykalov/weakcache/policy"
	"github.com/IvanBrykalov/weakcache/policy/lru"
)

// ObjectCache is a single-lock object cache. One mutex guards the entry
// table and the policy; every public method holds it for its full duration,
// so operations on one ObjectCache are linearizable.
type ObjectCache[K comparable, V any] struct {
	// ---- guarded by mu ----
	mu  sync.Mutex
	tbl table[K, V]
	pol policy.Policy[K]
	seq uint64 // last stamp handed to an entry

	capacity int
	opt      Options[K, V]
	log      *slog.Logger
	closed   atomic.Bool
	jan      *janitor

	sf singleflight.Group[K, *V]

	_           util.CacheLinePad
	hits        util.Counter
	misses      util.Counter
	evictions   util.Counter
	expirations util.Counter
}

// New constructs an ObjectCache. It fails with ErrInvalidCapacity when
// opt.Capacity is not positive.
func New[K comparable, V any](opt Options[K, V]) (*ObjectCache[K, V], error) {
	if opt.Capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, opt.Capacity)
	}
	c := newObjectCache(opt.withDefaults())
	c.jan = startJanitor(opt.CleanupInterval, c.CleanupExpired, c.log)
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew[K comparable, V any](opt Options[K, V]) *ObjectCache[K, V] {
	c, err := New(opt)
	if err != nil {
		panic(err)
	}
	return c
}

// newObjectCache builds a cache without a janitor; opt must carry defaults.
func newObjectCache[K comparable, V any](opt Options[K, V]) *ObjectCache[K, V] {
	pol := opt.Policy
	if pol == nil {
		pol = lru.New[K]()
	}
	return &ObjectCache[K, V]{
		tbl:      newTable[K, V](opt.Capacity),
		pol:      pol,
		capacity: opt.Capacity,
		opt:      opt,
		log:      opt.Logger,
	}
}

// SetPolicy replaces the eviction policy. It takes effect on the next Put
// that needs room. A nil policy restores LRU.
func (c *ObjectCache[K, V]) SetPolicy(p policy.Policy[K]) {
	if p == nil {
		p = lru.New[K]()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pol = p
}

// Put stores a weak reference to v under k.
//
// Expired entries are swept first; then, if k is new and the cache is at
// capacity, the policy evicts one entry. An existing k is overwritten with a
// fresh entry (new timestamps, zero hits) without evicting anything. After
// Put returns, Size() <= Capacity.
//
// A nil v can never be alive, so Put(k, nil) removes k.
func (c *ObjectCache[K, V]) Put(k K, v *V) {
	if c.closed.Load() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if v == nil {
		delete(c.tbl.m, k)
		c.opt.Metrics.Size(len(c.tbl.m))
		return
	}

	c.sweepLocked()
	if _, exists := c.tbl.m[k]; !exists && len(c.tbl.m) >= c.capacity {
		c.evictLocked()
	}
	c.seq++
	c.tbl.m[k] = newEntry(k, v, c.opt.Clock.NowUnixNano(), c.seq)
	c.opt.Metrics.Size(len(c.tbl.m))
}

// Get returns a strong pointer to the value for k.
// An entry whose value was reclaimed is removed and reported as a miss.
func (c *ObjectCache[K, V]) Get(k K) (*V, bool) {
	if c.closed.Load() {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.tbl.m[k]
	if !ok {
		c.missLocked()
		return nil, false
	}
	// Check and acquire in one step: a separate Expired() check could pass
	// and then lose the value before it is dereferenced.
	v, alive := e.ref.Acquire()
	if !alive {
		delete(c.tbl.m, k)
		c.droppedLocked(e, EvictExpired)
		c.opt.Metrics.Size(len(c.tbl.m))
		c.missLocked()
		return nil, false
	}

	c.seq++
	e.touch(c.opt.Clock.NowUnixNano(), c.seq)
	c.hits.Add(1)
	c.opt.Metrics.Hit()
	return v, true
}

// Contains reports whether k is present and alive.
// It neither refreshes recency nor removes expired entries.
func (c *ObjectCache[K, V]) Contains(k K) bool {
	if c.closed.Load() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.tbl.m[k]
	return ok && !e.ref.Expired()
}

// Remove deletes k and reports whether it was present.
// Explicit removal is not counted as an eviction.
func (c *ObjectCache[K, V]) Remove(k K) bool {
	if c.closed.Load() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.tbl.m[k]; !ok {
		return false
	}
	delete(c.tbl.m, k)
	c.opt.Metrics.Size(len(c.tbl.m))
	return true
}

// CleanupExpired removes every entry whose value was reclaimed and returns
// the number removed. A second call with no intervening change returns 0
// unless more values were reclaimed in between.
func (c *ObjectCache[K, V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.sweepLocked()
	if n > 0 {
		c.opt.Metrics.Size(len(c.tbl.m))
	}
	return n
}

// Size returns the number of entries, counting expired entries that have
// not been swept yet. Call CleanupExpired first for a live count.
func (c *ObjectCache[K, V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tbl.m)
}

// Capacity returns the configured entry limit.
func (c *ObjectCache[K, V]) Capacity() int { return c.capacity }

// Clear removes every entry. Cleared entries are not reported to OnEvict.
func (c *ObjectCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.tbl.m)
	c.opt.Metrics.Size(0)
}

// Stats returns a snapshot of the cache counters.
func (c *ObjectCache[K, V]) Stats() Stats {
	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evictions.Load(),
		Expirations: c.expirations.Load(),
	}
}

// GetOrLoad returns the value for k; on miss it calls Options.Loader and
// caches the result. Concurrent loads of one key run the Loader once.
//
// The cache does not own loaded values either: the returned pointer is the
// only strong reference, so the entry expires once callers drop it.
func (c *ObjectCache[K, V]) GetOrLoad(ctx context.Context, k K) (*V, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	if c.opt.Loader == nil {
		return nil, ErrNoLoader
	}

	v, _, err := c.sf.Do(ctx, k, func() (*V, error) {
		// A concurrent leader may have stored it between our miss and the flight.
		if v, ok := c.Get(k); ok {
			return v, nil
		}
		v, err := c.opt.Loader(ctx, k)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, ErrNilValue
		}
		c.Put(k, v)
		return v, nil
	})
	return v, err
}

// Close stops the janitor and marks the cache closed; later Put/Get/Contains/
// Remove calls are no-ops. Close is idempotent and always returns nil.
func (c *ObjectCache[K, V]) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.jan.stop()
	return nil
}

// -------------------- internals (mu held) --------------------

// sweepLocked removes expired entries and returns how many it removed.
func (c *ObjectCache[K, V]) sweepLocked() int {
	n := 0
	for k, e := range c.tbl.m {
		if e.ref.Expired() {
			delete(c.tbl.m, k)
			c.droppedLocked(e, EvictExpired)
			n++
		}
	}
	return n
}

// evictLocked asks the policy for exactly one victim. The table is never
// empty here: Put only evicts at capacity, and capacity is positive.
func (c *ObjectCache[K, V]) evictLocked() {
	before := len(c.tbl.m)
	c.tbl.victims = nil
	c.pol.Evict(&c.tbl)
	victims := c.tbl.takeVictims()
	if len(victims) != 1 || len(c.tbl.m) != before-1 {
		panic(fmt.Sprintf("cache: policy %T removed %d of %d entries, want exactly 1",
			c.pol, before-len(c.tbl.m), before))
	}
	c.droppedLocked(victims[0], EvictPolicy)
}

// droppedLocked accounts for an entry already deleted from the table.
func (c *ObjectCache[K, V]) droppedLocked(e *entry[K, V], reason EvictReason) {
	switch reason {
	case EvictPolicy:
		c.evictions.Add(1)
	case EvictExpired:
		c.expirations.Add(1)
	}
	c.opt.Metrics.Evict(reason)
	if reason == EvictPolicy && c.log.Enabled(context.Background(), slog.LevelDebug) {
		c.log.Debug("evicted entry", "key", e.key, "hits", e.hits, "policy", fmt.Sprintf("%T", c.pol))
	}
	if cb := c.opt.OnEvict; cb != nil {
		cb(e.key, reason)
	}
}

func (c *ObjectCache[K, V]) missLocked() {
	c.misses.Add(1)
	c.opt.Metrics.Miss()
}

var _ Cache[string, int] = (*ObjectCache[string, int])(nil)
