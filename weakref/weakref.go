// Package weakref provides a non-owning reference to a value whose lifetime
// is controlled by code outside the cache.
package weakref

import "weak"

// Ref observes a *V without keeping it alive. The zero Ref is expired.
//
// Liveness can change between any two calls: a Ref that reported alive may
// report expired on the next call once the garbage collector reclaims the
// value. Callers that need the value must use Acquire, not Expired followed
// by a separate dereference.
type Ref[V any] struct {
	p weak.Pointer[V]
}

// Make returns a Ref to strong. It does not take ownership.
// Make(nil) returns a Ref that is expired from the start. Pointers to
// zero-size or non-heap values are never reclaimed, so their Ref never expires.
func Make[V any](strong *V) Ref[V] {
	return Ref[V]{p: weak.Make(strong)}
}

// Expired reports whether the referenced value has been reclaimed.
func (r Ref[V]) Expired() bool {
	return r.p.Value() == nil
}

// Acquire returns a strong pointer to the value if it is still alive.
// The returned pointer keeps the value alive for as long as the caller holds it.
func (r Ref[V]) Acquire() (*V, bool) {
	v := r.p.Value()
	return v, v != nil
}
