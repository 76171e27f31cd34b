package cache

import (
	"context"
	"math/rand"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

// A mixed workload of concurrent Put/Get/Contains/Remove/CleanupExpired on
// random keys while owners keep dropping values and the GC runs.
// Should pass under `-race` without detector reports.
func TestRace_Basic(t *testing.T) {
	const capacity = 256
	c := newCache(t, Options[string, resource]{Capacity: capacity})

	workers := 4 * runtime.GOMAXPROCS(0)
	keyspace := 2_000
	deadline := time.Now().Add(time.Second)

	var overflow atomic.Int64
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(w)*9973))
			held := make([]*resource, 0, 32)
			for time.Now().Before(deadline) {
				k := "k:" + strconv.Itoa(r.Intn(keyspace))
				switch n := r.Intn(100); {
				case n < 5:
					c.Remove(k)
				case n < 7:
					c.CleanupExpired()
				case n < 8:
					runtime.GC()
				case n < 25:
					v := newResource(k)
					if len(held) == cap(held) {
						held = held[:0] // drop our references
					}
					held = append(held, v)
					c.Put(k, v)
					if c.Size() > capacity {
						overflow.Add(1)
					}
				case n < 40:
					c.Contains(k)
				default:
					c.Get(k)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if n := overflow.Load(); n > 0 {
		t.Fatalf("size exceeded capacity %d times", n)
	}
}

// One hundred goroutines call GetOrLoad on the same key concurrently.
func TestRace_GetOrLoad(t *testing.T) {
	var calls int64
	value := newResource("v")

	c := newCache(t, Options[string, resource]{
		Capacity: 1024,
		Loader: func(_ context.Context, _ string) (*resource, error) {
			atomic.AddInt64(&calls, 1)
			time.Sleep(2 * time.Millisecond) // simulate I/O
			return value, nil
		},
	})

	const goroutines = 100
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := c.GetOrLoad(context.Background(), "same-key")
			if err != nil {
				t.Errorf("GetOrLoad error: %v", err)
				return
			}
			if v != value {
				t.Errorf("unexpected value: %p", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt64(&calls); got > 1 {
		t.Fatalf("loader should run at most once, got %d", got)
	}
	keepAlive(value)
}
