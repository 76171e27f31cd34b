package prom

import (
	"runtime"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/IvanBrykalov/weakcache/cache"
)

type item struct{ name string }

func TestAdapter_WiredIntoCache(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "weakcache", "test", prometheus.Labels{"app": "unit"})

	c := cache.MustNew(cache.Options[string, item]{Capacity: 1, Metrics: m})
	defer c.Close()

	a, b := &item{"a"}, &item{"b"}
	c.Put("a", a)
	c.Get("a")
	c.Get("nope")
	c.Put("b", b)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.hits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.misses))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evicts.WithLabelValues("policy")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.evicts.WithLabelValues("expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.entries))

	n, err := testutil.GatherAndCount(reg)
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	runtime.KeepAlive(a)
	runtime.KeepAlive(b)
}

func TestAdapter_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg, "weakcache", "dup", nil)
	assert.Panics(t, func() { New(reg, "weakcache", "dup", nil) })
}
