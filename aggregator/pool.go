package aggregator

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Pool bounds concurrent Aggregator use and reuses their group slices
// across checkouts, pairing a semaphore-gated concurrency limit with a
// sync.Pool free list the way the host resource controller bounds
// background workers.
type Pool struct {
	sem  *semaphore.Weighted
	pool sync.Pool
}

// NewPool returns a Pool that allows at most maxConcurrent Aggregators
// checked out at once.
func NewPool(maxConcurrent int64) *Pool {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Pool{
		sem:  semaphore.NewWeighted(maxConcurrent),
		pool: sync.Pool{New: func() interface{} { return New() }},
	}
}

// Acquire blocks until a concurrency slot is free, then returns a reset
// Aggregator. The caller must call Release when done with it.
func (p *Pool) Acquire(ctx context.Context) (*Aggregator, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	a := p.pool.Get().(*Aggregator)
	a.Reset()
	return a, nil
}

// TryAcquire checks out an Aggregator without blocking, returning false
// if every concurrency slot is in use.
func (p *Pool) TryAcquire() (*Aggregator, bool) {
	if !p.sem.TryAcquire(1) {
		return nil, false
	}
	a := p.pool.Get().(*Aggregator)
	a.Reset()
	return a, true
}

// Release returns a checked-out Aggregator to the pool and frees its
// concurrency slot.
func (p *Pool) Release(a *Aggregator) {
	a.Reset()
	p.pool.Put(a)
	p.sem.Release(1)
}
