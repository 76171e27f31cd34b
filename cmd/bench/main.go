// Command bench runs a synthetic workload against the cache: workers own a
// rotating set of values, drop some of them, and the GC reclaims them while
// the cache keeps serving. It exposes Prometheus metrics and optional pprof.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/weakcache/cache"
	pmet "github.com/IvanBrykalov/weakcache/metrics/prom"
	"github.com/IvanBrykalov/weakcache/policy"
	"github.com/IvanBrykalov/weakcache/policy/fifo"
	"github.com/IvanBrykalov/weakcache/policy/lfu"
	"github.com/IvanBrykalov/weakcache/policy/lru"
)

type payload struct {
	key  string
	data []byte
}

func main() {
	var (
		capacity = flag.Int("cap", 10_000, "cache capacity (entries)")
		shards   = flag.Int("shards", 1, "number of shards (1 = single-lock cache, 0 = auto)")
		polName  = flag.String("policy", "lru", "eviction policy: lru | lfu | fifo")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")
		keepPct  = flag.Int("keep", 50, "percentage of written values whose owner is retained [0..100]")
		ownSlots = flag.Int("owned", 1024, "values each worker keeps alive at once")
		keys     = flag.Int("keys", 100_000, "keyspace size")
		zipfS    = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "random seed")

		gcEvery    = flag.Duration("gc", 100*time.Millisecond, "force runtime.GC at this interval (0 = never)")
		sweepEvery = flag.Duration("sweep", time.Second, "background CleanupExpired interval (0 = disabled)")

		logFormat   = flag.String("log", "text", "log format: text | json")
		debug       = flag.Bool("debug", false, "enable debug logging (logs every eviction)")
		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr; empty = disabled")
	)
	flag.Parse()

	logger := newLogger(*logFormat, *debug)

	if *pprofAddr != "" {
		go func() {
			logger.Info("pprof listening", "addr", *pprofAddr)
			logger.Error("pprof server stopped", "error", http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	metrics := pmet.New(nil, "weakcache", "bench", nil)
	if *metricsAddr != "" {
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			logger.Info("metrics listening", "addr", *metricsAddr)
			logger.Error("metrics server stopped", "error", http.ListenAndServe(*metricsAddr, nil))
		}()
	}

	pol, err := policyByName(*polName)
	if err != nil {
		logger.Error("bad flag", "error", err)
		os.Exit(2)
	}

	opt := cache.Options[string, payload]{
		Capacity:        *capacity,
		Shards:          *shards,
		Policy:          pol,
		CleanupInterval: *sweepEvery,
		Metrics:         metrics,
		Logger:          logger,
	}
	var c cache.Cache[string, payload]
	if *shards == 1 {
		c, err = cache.New(opt)
	} else {
		c, err = cache.NewSharded(opt)
	}
	if err != nil {
		logger.Error("cannot build cache", "error", err)
		os.Exit(2)
	}
	defer func() { _ = c.Close() }()

	var reads, writes, hits, total atomic.Uint64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	if *gcEvery > 0 {
		g.Go(func() error {
			t := time.NewTicker(*gcEvery)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-t.C:
					runtime.GC()
				}
			}
		})
	}

	n := max(*workers, 1)
	slots := max(*ownSlots, 1)
	keysMax := uint64(max(*keys, 2) - 1)
	start := time.Now()
	for w := 0; w < n; w++ {
		g.Go(func() error {
			// rand.Rand is not goroutine-safe: one per worker.
			r := rand.New(rand.NewSource(*seed + int64(w)*9973))
			zipf := rand.NewZipf(r, *zipfS, 1, keysMax)
			owned := make([]*payload, slots) // the values this worker keeps alive

			for ctx.Err() == nil {
				total.Add(1)
				k := "k:" + strconv.FormatUint(zipf.Uint64(), 10)
				if r.Intn(100) < *readPct {
					reads.Add(1)
					if _, ok := c.Get(k); ok {
						hits.Add(1)
					}
					continue
				}
				writes.Add(1)
				v := &payload{key: k, data: make([]byte, 64)}
				if r.Intn(100) < *keepPct {
					owned[r.Intn(slots)] = v
				}
				c.Put(k, v)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("workload failed", "error", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	st := c.Stats()
	ops := total.Load()
	fmt.Printf("policy=%s cap=%d shards=%d workers=%d keys=%d dur=%v seed=%d\n",
		*polName, *capacity, *shards, n, *keys, elapsed, *seed)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		ops, float64(ops)/elapsed.Seconds(), reads.Load(), writes.Load())
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%\n", st.Hits, st.Misses, st.HitRate()*100)
	fmt.Printf("evictions=%d  expirations=%d  size=%d  live=%d\n",
		st.Evictions, st.Expirations, c.Size(), c.Size()-c.CleanupExpired())
}

func policyByName(name string) (policy.Policy[string], error) {
	switch name {
	case "lru":
		return lru.New[string](), nil
	case "lfu":
		return lfu.New[string](), nil
	case "fifo":
		return fifo.New[string](), nil
	default:
		return nil, fmt.Errorf("unknown policy %q (use lru, lfu or fifo)", name)
	}
}

func newLogger(format string, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
