package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/weakcache/policy"
	"github.com/IvanBrykalov/weakcache/policy/policytest"
)

func TestFunc_AdaptsFunction(t *testing.T) {
	t.Parallel()

	var called int
	p := policy.Func[string](func(tb policy.Table[string]) {
		called++
		tb.Remove("a")
	})

	tbl := policytest.NewTable(&policytest.Node[string]{K: "a"}, &policytest.Node[string]{K: "b"})
	p.Evict(tbl)

	assert.Equal(t, 1, called)
	assert.Equal(t, []string{"a"}, tbl.Removed)
}

func TestVictim(t *testing.T) {
	t.Parallel()

	byHits := func(a, b policy.Node[string]) bool { return a.Hits() < b.Hits() }

	_, ok := policy.Victim(policytest.NewTable[string](), byHits)
	assert.False(t, ok)

	tbl := policytest.NewTable(
		&policytest.Node[string]{K: "a", HitCount: 3},
		&policytest.Node[string]{K: "b", HitCount: 1},
	)
	v, ok := policy.Victim(tbl, byHits)
	require.True(t, ok)
	assert.Equal(t, "b", v.Key())
	assert.Empty(t, tbl.Removed, "Victim must not remove")

	policy.EvictMin(tbl, byHits)
	assert.Equal(t, []string{"b"}, tbl.Removed)
}
