// Package pool provides the fixed-size worker pool shared by the discovery and
// scan phases of a run.
package pool

import (
	"context"
	"runtime"
	"sync"
)

// Pool limits how many units of work run at the same time.
type Pool struct {
	sem chan struct{}
}

// New creates a pool with the given size. A size of zero or less uses the
// number of logical CPUs.
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	return &Pool{
		sem: make(chan struct{}, size),
	}
}

// Size returns the maximum number of concurrent workers.
func (p *Pool) Size() int {
	return cap(p.sem)
}

// Acquire blocks until a worker slot is available or ctx is done.
func (p *Pool) Acquire(ctx context.Context) error {
	select {
	case p.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a worker slot to the pool.
func (p *Pool) Release() {
	<-p.sem
}

// Map runs fn for every item on the pool and returns the results in input
// order. Each result is written to its own slot, so fn needs no locking.
//
// When ctx is cancelled no further items are dispatched; Map waits for the
// items already running and returns the partial results with ctx.Err(). Slots
// for items that never ran hold the zero value.
func Map[T, R any](ctx context.Context, p *Pool, items []T, fn func(context.Context, T) R) ([]R, error) {
	out := make([]R, len(items))

	var wg sync.WaitGroup

	for i, item := range items {
		if ctx.Err() != nil {
			break
		}
		if err := p.Acquire(ctx); err != nil {
			break
		}
		// the slot may have been freed by the item that cancelled ctx
		if ctx.Err() != nil {
			p.Release()
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer p.Release()
			out[i] = fn(ctx, item)
		}()
	}

	wg.Wait()
	return out, ctx.Err()
}
