package ping

import (
	"context"
	"net"
	"sync"
)

// DefaultWorkers is the default sweep concurrency level.
const DefaultWorkers = 50

// SweepOptions configures a sweep run.
type SweepOptions struct {
	// Workers controls how many liveness probes run at once.
	Workers int
	// Progress, when set, is called after every completed probe with a
	// monotonically increasing done count. Observational only.
	Progress func(done, total int)
}

// AliveFunc is the liveness check used by Sweep. It matches
// (*Pinger).IsAlive and exists so tests can substitute a fake.
type AliveFunc func(ctx context.Context, addr net.IP) bool

// Sweep probes every address concurrently and returns the subset that
// responded, in no particular order. The pool is bounded by opts.Workers;
// cancellation stops scheduling new probes and returns what completed.
// An unreachable or empty range yields an empty result, never an error.
func Sweep(ctx context.Context, addrs []net.IP, alive AliveFunc, opts SweepOptions) []net.IP {
	if len(addrs) == 0 || alive == nil {
		return nil
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(addrs) {
		workers = len(addrs)
	}

	jobs := make(chan net.IP, len(addrs))
	results := make(chan net.IP, len(addrs))
	done := make(chan struct{}, len(addrs))
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for addr := range jobs {
			select {
			case <-ctx.Done():
				// Drain without probing so progress accounting still
				// completes.
				done <- struct{}{}
				continue
			default:
			}
			if alive(ctx, addr) {
				results <- addr
			}
			done <- struct{}{}
		}
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker()
	}

enqueue:
	for _, addr := range addrs {
		select {
		case <-ctx.Done():
			break enqueue
		case jobs <- addr:
		}
	}
	close(jobs)

	if opts.Progress != nil {
		go func() {
			completed := 0
			for range done {
				completed++
				opts.Progress(completed, len(addrs))
			}
		}()
	}

	wg.Wait()
	close(results)
	close(done)

	var up []net.IP
	for addr := range results {
		up = append(up, addr)
	}
	return up
}
