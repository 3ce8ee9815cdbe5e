package render

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Dispatcher partitions a range into chunks and runs each chunk on a
// worker. Workers is the hardware concurrency count by default; set it to
// 1 to disable parallelism.
type Dispatcher struct {
	Workers int
}

// NewDispatcher returns a Dispatcher sized to GOMAXPROCS.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{Workers: runtime.GOMAXPROCS(0)}
}

// ParallelFor partitions [start,end) into Workers chunks and calls fn(i) for
// every i in range, exactly once, with no ordering guarantee across
// workers. It blocks until every chunk completes and returns the first
// error any invocation of fn returned, aborting outstanding work via the
// group's context.
func (d *Dispatcher) ParallelFor(ctx context.Context, start, end int, fn func(ctx context.Context, i int) error) error {
	n := end - start
	if n <= 0 {
		return nil
	}
	workers := d.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	g, gctx := errgroup.WithContext(ctx)
	chunk := (n + workers - 1) / workers
	for w := range workers {
		lo := start + w*chunk
		hi := lo + chunk
		if hi > end {
			hi = end
		}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				if err := fn(gctx, i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
