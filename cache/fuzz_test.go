package cache

import (
	"runtime"
	"strings"
	"testing"
)

// Fuzz basic Put/Get/Remove semantics under arbitrary string keys.
// Guards against panics and checks the core invariants.
func FuzzCache_PutGetRemove(f *testing.F) {
	f.Add("", "")
	f.Add("a", "1")
	f.Add("αβγ", "δ")
	f.Add("emoji🙂", "🙂🙂")
	f.Add("long", strings.Repeat("x", 1024))

	f.Fuzz(func(t *testing.T, k, v string) {
		const limit = 1 << 12
		if len(k) > limit {
			k = k[:limit]
		}

		c := MustNew(Options[string, resource]{Capacity: 2})
		t.Cleanup(func() { _ = c.Close() })

		r := &resource{name: v}
		c.Put(k, r)
		got, ok := c.Get(k)
		if !ok || got != r || got.name != v {
			t.Fatalf("after Put/Get: want %q, got %v ok=%v", v, got, ok)
		}

		other := &resource{name: "other"}
		c.Put(k+"/1", other)
		c.Put(k+"/2", other)
		if c.Size() > 2 {
			t.Fatalf("size %d exceeds capacity", c.Size())
		}

		c.Remove(k)
		if c.Contains(k) {
			t.Fatalf("key must be absent after Remove")
		}
		runtime.KeepAlive(r)
		runtime.KeepAlive(other)
	})
}
