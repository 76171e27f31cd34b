package weakref

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blob struct {
	name string
	data []byte
}

//go:noinline
func dropped() Ref[blob] {
	return Make(&blob{name: "tmp", data: make([]byte, 64)})
}

func TestRef_AliveWhileOwned(t *testing.T) {
	v := &blob{name: "owned"}
	r := Make(v)

	runtime.GC()

	assert.False(t, r.Expired())
	got, ok := r.Acquire()
	require.True(t, ok)
	assert.Same(t, v, got)
	runtime.KeepAlive(v)
}

func TestRef_ExpiresAfterOwnerDrops(t *testing.T) {
	r := dropped()

	runtime.GC()
	runtime.GC()

	assert.True(t, r.Expired())
	got, ok := r.Acquire()
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestRef_AcquiredHandleKeepsValueAlive(t *testing.T) {
	r := dropped()
	held, ok := r.Acquire()
	if !ok {
		t.Skip("value collected before Acquire")
	}

	runtime.GC()

	assert.False(t, r.Expired(), "held handle must keep the value alive")
	runtime.KeepAlive(held)
}

var static = blob{name: "static"}

// Zero-size and package-level values are not heap objects; Make must accept
// them and they stay alive.
func TestRef_ZeroSizeAndStatic(t *testing.T) {
	zs := Make(&struct{}{})
	st := Make(&static)

	runtime.GC()

	assert.False(t, zs.Expired())
	got, ok := st.Acquire()
	require.True(t, ok)
	assert.Same(t, &static, got)
}

func TestRef_NilAndZero(t *testing.T) {
	assert.True(t, Make[blob](nil).Expired())

	var zero Ref[blob]
	assert.True(t, zero.Expired())
	_, ok := zero.Acquire()
	assert.False(t, ok)
}
