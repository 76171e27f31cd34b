package fifo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IvanBrykalov/weakcache/policy/policytest"
)

// Reads do not save an entry from FIFO eviction.
func TestFIFO_IgnoresAccess(t *testing.T) {
	t.Parallel()

	tbl := policytest.NewTable(
		&policytest.Node[int]{K: 1, Created: 10, CSeq: 1, Accessed: 99, ASeq: 9, HitCount: 50},
		&policytest.Node[int]{K: 2, Created: 20, CSeq: 2, Accessed: 20, ASeq: 2},
	)
	New[int]().Evict(tbl)

	assert.Equal(t, []int{1}, tbl.Removed)
}

func TestFIFO_TieBrokenByCreatedSeq(t *testing.T) {
	t.Parallel()

	tbl := policytest.NewTable(
		&policytest.Node[int]{K: 1, Created: 10, CSeq: 7},
		&policytest.Node[int]{K: 2, Created: 10, CSeq: 3},
	)
	New[int]().Evict(tbl)

	assert.Equal(t, []int{2}, tbl.Removed)
}

func TestFIFO_EmptyTableNoOp(t *testing.T) {
	t.Parallel()

	tbl := policytest.NewTable[int]()
	New[int]().Evict(tbl)

	assert.Empty(t, tbl.Removed)
}
