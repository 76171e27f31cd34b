package lfu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IvanBrykalov/weakcache/policy/policytest"
)

func TestLFU_EvictsFewestHits(t *testing.T) {
	t.Parallel()

	tbl := policytest.NewTable(
		&policytest.Node[string]{K: "hot", Accessed: 1, ASeq: 1, HitCount: 9},
		&policytest.Node[string]{K: "cold", Accessed: 5, ASeq: 5, HitCount: 1},
		&policytest.Node[string]{K: "warm", Accessed: 3, ASeq: 3, HitCount: 4},
	)
	New[string]().Evict(tbl)

	assert.Equal(t, []string{"cold"}, tbl.Removed)
}

func TestLFU_TieFallsBackToRecency(t *testing.T) {
	t.Parallel()

	tbl := policytest.NewTable(
		&policytest.Node[string]{K: "newer", Accessed: 8, ASeq: 8, HitCount: 2},
		&policytest.Node[string]{K: "older", Accessed: 2, ASeq: 2, HitCount: 2},
	)
	New[string]().Evict(tbl)

	assert.Equal(t, []string{"older"}, tbl.Removed)
}

func TestLFU_EmptyTableNoOp(t *testing.T) {
	t.Parallel()

	tbl := policytest.NewTable[string]()
	New[string]().Evict(tbl)

	assert.Empty(t, tbl.Removed)
}
