package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// janitor periodically sweeps expired entries. A ticker-driven full scan
// needs no per-entry timers and is bounded by capacity.
type janitor struct {
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// startJanitor runs sweep every interval until stop is called.
// It returns nil when interval is not positive.
func startJanitor(interval time.Duration, sweep func() int, log *slog.Logger) *janitor {
	if interval <= 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	j := &janitor{cancel: cancel}
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := sweep(); n > 0 {
					log.Debug("swept expired entries", "removed", n)
				}
			}
		}
	}()
	return j
}

// stop cancels the loop and waits for it. Safe on a nil janitor.
func (j *janitor) stop() {
	if j == nil {
		return
	}
	j.cancel()
	j.wg.Wait()
}
