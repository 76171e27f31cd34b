package cache

import "github.com/IvanBrykalov/weakcache/weakref"

// entry is one cache slot. It never holds a strong pointer to the value.
type entry[K comparable, V any] struct {
	key K
	ref weakref.Ref[V]

	// Clock readings (nanoseconds). accessedAt starts equal to createdAt and
	// moves only on a successful Get.
	createdAt  int64
	accessedAt int64

	// Per-cache logical stamps; strictly increasing, used as tie-breakers.
	createdSeq uint64
	accessSeq  uint64

	hits uint64
}

func newEntry[K comparable, V any](k K, v *V, now int64, seq uint64) *entry[K, V] {
	return &entry[K, V]{
		key:        k,
		ref:        weakref.Make(v),
		createdAt:  now,
		accessedAt: now,
		createdSeq: seq,
		accessSeq:  seq,
	}
}

func (e *entry[K, V]) touch(now int64, seq uint64) {
	e.accessedAt = now
	e.accessSeq = seq
	e.hits++
}

// policy.Node implementation.

func (e *entry[K, V]) Key() K                { return e.key }
func (e *entry[K, V]) CreatedAt() int64      { return e.createdAt }
func (e *entry[K, V]) LastAccessedAt() int64 { return e.accessedAt }
func (e *entry[K, V]) CreatedSeq() uint64    { return e.createdSeq }
func (e *entry[K, V]) AccessSeq() uint64     { return e.accessSeq }
func (e *entry[K, V]) Hits() uint64          { return e.hits }
func (e *entry[K, V]) Expired() bool         { return e.ref.Expired() }
