// Package fifo implements an insertion-order eviction policy.
package fifo

import "github.com/IvanBrykalov/weakcache/policy"

type fifo[K comparable] struct{}

// New returns a policy that removes the oldest inserted entry,
// ignoring reads entirely.
func New[K comparable]() policy.Policy[K] { return fifo[K]{} }

func (fifo[K]) Evict(t policy.Table[K]) {
	policy.EvictMin(t, func(a, b policy.Node[K]) bool {
		if a.CreatedAt() != b.CreatedAt() {
			return a.CreatedAt() < b.CreatedAt()
		}
		return a.CreatedSeq() < b.CreatedSeq()
	})
}
