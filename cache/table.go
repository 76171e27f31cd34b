package cache

import "github.com/IvanBrykalov/weakcache/policy"

// table is the entry map handed to eviction policies. Removals made through
// the policy.Table interface are recorded as victims so the cache can verify
// the policy contract and report the evictions.
//
// All methods run under the cache lock.
type table[K comparable, V any] struct {
	m       map[K]*entry[K, V]
	victims []*entry[K, V]
}

func newTable[K comparable, V any](capacity int) table[K, V] {
	return table[K, V]{m: make(map[K]*entry[K, V], capacity)}
}

func (t *table[K, V]) Len() int { return len(t.m) }

func (t *table[K, V]) Range(fn func(n policy.Node[K]) bool) {
	for _, e := range t.m {
		if !fn(e) {
			return
		}
	}
}

func (t *table[K, V]) Remove(k K) bool {
	e, ok := t.m[k]
	if !ok {
		return false
	}
	delete(t.m, k)
	t.victims = append(t.victims, e)
	return true
}

// takeVictims returns the recorded victims and resets the record.
func (t *table[K, V]) takeVictims() []*entry[K, V] {
	v := t.victims
	t.victims = nil
	return v
}

var _ policy.Table[string] = (*table[string, int])(nil)
