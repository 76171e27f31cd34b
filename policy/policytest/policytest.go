// Package policytest provides an in-memory policy.Table for testing
// eviction policies without a cache.
package policytest

import "github.com/IvanBrykalov/weakcache/policy"

// Node is a plain policy.Node with settable fields.
type Node[K comparable] struct {
	K          K
	Created    int64
	Accessed   int64
	CSeq, ASeq uint64
	HitCount   uint64
	Dead       bool
}

func (n *Node[K]) Key() K                { return n.K }
func (n *Node[K]) CreatedAt() int64      { return n.Created }
func (n *Node[K]) LastAccessedAt() int64 { return n.Accessed }
func (n *Node[K]) CreatedSeq() uint64    { return n.CSeq }
func (n *Node[K]) AccessSeq() uint64     { return n.ASeq }
func (n *Node[K]) Hits() uint64          { return n.HitCount }
func (n *Node[K]) Expired() bool         { return n.Dead }

// Table is a map-backed policy.Table that records removals.
type Table[K comparable] struct {
	M       map[K]*Node[K]
	Removed []K
}

// NewTable builds a Table from nodes.
func NewTable[K comparable](nodes ...*Node[K]) *Table[K] {
	t := &Table[K]{M: make(map[K]*Node[K], len(nodes))}
	for _, n := range nodes {
		t.M[n.K] = n
	}
	return t
}

func (t *Table[K]) Len() int { return len(t.M) }

func (t *Table[K]) Range(fn func(n policy.Node[K]) bool) {
	for _, n := range t.M {
		if !fn(n) {
			return
		}
	}
}

func (t *Table[K]) Remove(k K) bool {
	if _, ok := t.M[k]; !ok {
		return false
	}
	delete(t.M, k)
	t.Removed = append(t.Removed, k)
	return true
}

var _ policy.Table[string] = (*Table[string])(nil)
