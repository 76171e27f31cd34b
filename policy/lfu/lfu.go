// Package lfu implements a Least-Frequently-Used eviction policy.
package lfu

import (
	"github.com/IvanBrykalov/weakcache/policy"
	"github.com/IvanBrykalov/weakcache/policy/lru"
)

type lfu[K comparable] struct{}

// New returns a policy that removes the entry with the fewest hits.
// Among equally cold entries the least recently used one goes first.
func New[K comparable]() policy.Policy[K] { return lfu[K]{} }

func (lfu[K]) Evict(t policy.Table[K]) {
	policy.EvictMin(t, func(a, b policy.Node[K]) bool {
		if a.Hits() != b.Hits() {
			return a.Hits() < b.Hits()
		}
		return lru.Less(a, b)
	})
}
