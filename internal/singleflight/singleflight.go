// Package singleflight coalesces concurrent loads of the same key.
package singleflight

import (
	"context"
	"fmt"
	"sync"
)

// Group runs fn at most once per key among concurrent callers; the others
// wait and share the result.
//
// Cancelling ctx in a follower unblocks only that follower. The leader's fn
// keeps running; thread ctx into fn if the work itself must stop.
type Group[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]*call[V]
}

type call[V any] struct {
	done chan struct{} // closed once val/err are published
	val  V
	err  error
	dups int
}

// PanicError is returned to followers when the leader's fn panicked.
// The leader itself re-panics with the original value.
type PanicError struct {
	Value any
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("singleflight: load panicked: %v", p.Value)
}

// Do runs fn for key unless a call is already in flight, in which case it
// waits for that call. shared reports whether the result was delivered to
// more than one caller.
func (g *Group[K, V]) Do(ctx context.Context, key K, fn func() (V, error)) (v V, shared bool, err error) {
	g.mu.Lock()
	if g.m == nil {
		g.m = make(map[K]*call[V])
	}
	if c, ok := g.m[key]; ok {
		c.dups++
		g.mu.Unlock()

		select {
		case <-c.done:
			return c.val, true, c.err
		case <-ctx.Done():
			var zero V
			return zero, false, ctx.Err()
		}
	}

	c := &call[V]{done: make(chan struct{})}
	g.m[key] = c
	g.mu.Unlock()

	g.run(c, key, fn)

	g.mu.Lock()
	shared = c.dups > 0
	g.mu.Unlock()
	return c.val, shared, c.err
}

// run executes fn and always publishes, even if fn panics.
func (g *Group[K, V]) run(c *call[V], key K, fn func() (V, error)) {
	normal := false
	defer func() {
		var recovered any
		if !normal {
			recovered = recover()
			c.err = &PanicError{Value: recovered}
		}
		g.mu.Lock()
		delete(g.m, key)
		g.mu.Unlock()
		close(c.done)
		if !normal {
			panic(recovered)
		}
	}()

	c.val, c.err = fn()
	normal = true
}
