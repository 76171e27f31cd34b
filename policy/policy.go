// Package policy defines the eviction-policy capability used by the cache.
//
// A policy is stateless: every time the cache needs room it hands the policy
// its live entry table, and the policy removes exactly one entry from it.
// Policies never see cached values, only the bookkeeping of each entry.
package policy

// Node is the read-only view of a cache entry that a policy may inspect.
//
// Timestamps come from the cache clock (nanoseconds). The sequence numbers are
// strictly increasing per cache and make tie-breaking deterministic even when
// two entries share a timestamp or the table is a Go map.
type Node[K comparable] interface {
	Key() K
	// CreatedAt is the time the entry was inserted or last overwritten.
	CreatedAt() int64
	// LastAccessedAt is CreatedAt or the time of the last successful Get.
	LastAccessedAt() int64
	// CreatedSeq orders entries by insertion.
	CreatedSeq() uint64
	// AccessSeq orders entries by last touch (insert or successful Get).
	AccessSeq() uint64
	// Hits counts successful Gets since the entry was created.
	Hits() uint64
	// Expired reports whether the cached value has been reclaimed.
	Expired() bool
}

// Table is the live entry table passed to a policy by reference.
//
// Concurrency: the cache calls into a policy with its lock held. A policy must
// not retain the Table or any Node after Evict returns.
type Table[K comparable] interface {
	// Len returns the number of entries in the table.
	Len() int
	// Range calls fn for each entry until fn returns false.
	// Iteration order is unspecified.
	Range(fn func(n Node[K]) bool)
	// Remove deletes the entry for k and reports whether it existed.
	Remove(k K) bool
}

// Policy chooses which entry to remove when the cache is full.
//
// Contract:
//   - on an empty table Evict is a no-op;
//   - on a non-empty table Evict removes exactly one entry.
//
// The cache treats any other outcome as a programming error and panics.
type Policy[K comparable] interface {
	Evict(t Table[K])
}

// Func adapts an ordinary function to the Policy interface.
type Func[K comparable] func(t Table[K])

// Evict calls f(t).
func (f Func[K]) Evict(t Table[K]) { f(t) }

// Victim returns the minimum node of t under less; the first node seen wins
// among equals. ok is false on an empty table.
func Victim[K comparable](t Table[K], less func(a, b Node[K]) bool) (victim Node[K], ok bool) {
	t.Range(func(n Node[K]) bool {
		if !ok || less(n, victim) {
			victim, ok = n, true
		}
		return true
	})
	return victim, ok
}

// EvictMin removes the minimum entry of t under less. It is a no-op on an
// empty table.
func EvictMin[K comparable](t Table[K], less func(a, b Node[K]) bool) {
	if v, ok := Victim(t, less); ok {
		t.Remove(v.Key())
	}
}
