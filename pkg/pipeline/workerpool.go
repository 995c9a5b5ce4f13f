package pipeline

import (
	"context"
	"sync"
)

// Job is a unit of work submitted to the WorkerPool.
type Job func(ctx context.Context) error

// WorkerPool runs jobs on a fixed number of goroutines and remembers the
// first error any job returns. It parallelizes the per-split assembly,
// which shares no mutable state once the mapping table is built.
type WorkerPool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int

	closeMu sync.Mutex
	closed  bool

	errOnce  sync.Once
	firstErr error
	cancel   context.CancelFunc
}

// NewWorkerPool creates a pool with the given worker count and job queue
// capacity.
func NewWorkerPool(workers, queue int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queue <= 0 {
		queue = workers * 2
	}
	return &WorkerPool{
		jobs:    make(chan Job, queue),
		workers: workers,
	}
}

// Start begins the worker goroutines. A job error cancels the context seen
// by the remaining jobs, so in-flight work can bail out early.
func (p *WorkerPool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					p.fail(ctx.Err())
					return
				case job, ok := <-p.jobs:
					if !ok {
						return
					}
					if err := job(ctx); err != nil {
						p.fail(err)
					}
				}
			}
		}()
	}
}

func (p *WorkerPool) fail(err error) {
	if err == nil {
		return
	}
	p.errOnce.Do(func() {
		p.firstErr = err
		if p.cancel != nil {
			p.cancel()
		}
	})
}

// Submit enqueues a job. It returns ErrPoolClosed after Close.
func (p *WorkerPool) Submit(job Job) error {
	p.closeMu.Lock()
	defer p.closeMu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.jobs <- job
	return nil
}

// Close stops accepting jobs, waits for the workers to drain the queue and
// returns the first job error, if any.
func (p *WorkerPool) Close() error {
	p.closeMu.Lock()
	if p.closed {
		p.closeMu.Unlock()
		return p.firstErr
	}
	p.closed = true
	close(p.jobs)
	p.closeMu.Unlock()
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	return p.firstErr
}

// ErrPoolClosed is returned if a Submit is attempted after Close.
var ErrPoolClosed = &PoolError{"worker pool closed"}

// PoolError provides a simple typed error for pool operations.
type PoolError struct{ msg string }

func (e *PoolError) Error() string { return e.msg }
