package cache

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/IvanBrykalov/weakcache/internal/util"
	"github.com/IvanBrykalov/weakcache/policy"
)

// Sharded partitions the key space across independently locked ObjectCache
// shards. Each shard enforces its own share of the capacity and runs its own
// policy, so the global LRU order is only approximate; the shard budgets sum
// to Capacity, so the total size never exceeds it.
type Sharded[K comparable, V any] struct {
	shards []*ObjectCache[K, V]
	hash   func(K) uint64
	closed atomic.Bool
	jan    *janitor
}

// NewSharded constructs a sharded cache. Capacity is split across shards as
// evenly as possible; see Options.Shards and Options.Hash.
func NewSharded[K comparable, V any](opt Options[K, V]) (*Sharded[K, V], error) {
	if opt.Capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, opt.Capacity)
	}
	if opt.Hash == nil && !util.Hashable[K]() {
		var k K
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKey, k)
	}
	opt = opt.withDefaults()

	// n <= Capacity, so every shard gets at least one slot.
	n := util.ShardCount(opt.Shards, opt.Capacity)
	base, extra := opt.Capacity/n, opt.Capacity%n

	s := &Sharded[K, V]{
		shards: make([]*ObjectCache[K, V], n),
		hash:   opt.Hash,
	}
	if s.hash == nil {
		s.hash = util.Hash[K]
	}

	sizes := make([]atomic.Int64, n)
	for i := range s.shards {
		so := opt
		so.Capacity = base
		if i < extra {
			so.Capacity++
		}
		so.Logger = opt.Logger.With("shard", i)
		so.Metrics = &shardMetrics{Metrics: opt.Metrics, sizes: sizes, idx: i}
		s.shards[i] = newObjectCache(so)
	}
	s.jan = startJanitor(opt.CleanupInterval, s.CleanupExpired, opt.Logger)
	return s, nil
}

// shardMetrics forwards to the user's Metrics but reports the total size
// across shards rather than one shard's size.
type shardMetrics struct {
	Metrics
	sizes []atomic.Int64
	idx   int
}

func (m *shardMetrics) Size(entries int) {
	m.sizes[m.idx].Store(int64(entries))
	var total int64
	for i := range m.sizes {
		total += m.sizes[i].Load()
	}
	m.Metrics.Size(int(total))
}

func (s *Sharded[K, V]) shard(k K) *ObjectCache[K, V] {
	return s.shards[util.ShardIndex(s.hash(k), len(s.shards))]
}

// Shards returns the number of partitions.
func (s *Sharded[K, V]) Shards() int { return len(s.shards) }

func (s *Sharded[K, V]) Put(k K, v *V)      { s.shard(k).Put(k, v) }
func (s *Sharded[K, V]) Get(k K) (*V, bool) { return s.shard(k).Get(k) }
func (s *Sharded[K, V]) Contains(k K) bool  { return s.shard(k).Contains(k) }
func (s *Sharded[K, V]) Remove(k K) bool    { return s.shard(k).Remove(k) }

// GetOrLoad delegates to the key's shard; coalescing is per shard, which is
// equivalent since a key always maps to the same shard.
func (s *Sharded[K, V]) GetOrLoad(ctx context.Context, k K) (*V, error) {
	return s.shard(k).GetOrLoad(ctx, k)
}

// Size sums the shard sizes. Shards are locked one at a time, so under
// concurrent writes the result is not a single atomic snapshot.
func (s *Sharded[K, V]) Size() int {
	total := 0
	for _, sh := range s.shards {
		total += sh.Size()
	}
	return total
}

func (s *Sharded[K, V]) Clear() {
	for _, sh := range s.shards {
		sh.Clear()
	}
}

func (s *Sharded[K, V]) CleanupExpired() int {
	n := 0
	for _, sh := range s.shards {
		n += sh.CleanupExpired()
	}
	return n
}

// SetPolicy installs p on every shard. Policies are stateless, so one value
// can serve all shards.
func (s *Sharded[K, V]) SetPolicy(p policy.Policy[K]) {
	for _, sh := range s.shards {
		sh.SetPolicy(p)
	}
}

func (s *Sharded[K, V]) Stats() Stats {
	var st Stats
	for _, sh := range s.shards {
		st = st.add(sh.Stats())
	}
	return st
}

// Close stops the shared janitor and closes every shard.
func (s *Sharded[K, V]) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.jan.stop()
	for _, sh := range s.shards {
		_ = sh.Close()
	}
	return nil
}

var _ Cache[string, int] = (*Sharded[string, int])(nil)
