package morph

import (
	"runtime"
	"sync"

	"github.com/gogpu/morph/internal/parallel"
)

// Option configures how a warp, grid warp or merge is executed.
// Options never change numeric output.
//
// Example:
//
//	// Single-threaded warp
//	out, err := morph.Warp(src, srcLines, dstLines, morph.DefaultParams(), morph.WithWorkers(1))
type Option func(*options)

// options holds the execution configuration of one call.
type options struct {
	workers int
	pool    *parallel.WorkerPool
}

// defaultOptions returns the default execution options.
func defaultOptions() options {
	return options{
		workers: runtime.GOMAXPROCS(0),
		pool:    nil, // shared pool, created on first use
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.pool == nil {
		o.pool = sharedPool()
	}
	return o
}

// WithWorkers sets how many parts the work is split into.
// n <= 0 keeps the default of GOMAXPROCS; n == 1 runs the whole call as a
// single task.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithPool runs the work on a caller-owned pool instead of the shared one.
// The caller keeps ownership and must not close the pool while calls using
// it are in flight. A nil pool keeps the shared one.
func WithPool(p *Pool) Option {
	return func(o *options) {
		if p != nil {
			o.pool = p.wp
		}
	}
}

// Pool is a set of worker goroutines that warps run on.
// Most callers never need one: morph keeps a shared pool sized to GOMAXPROCS.
type Pool struct {
	wp *parallel.WorkerPool
}

// NewPool starts a pool with the given number of workers
// (GOMAXPROCS when workers <= 0).
func NewPool(workers int) *Pool {
	return &Pool{wp: parallel.NewWorkerPool(workers)}
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.wp.Workers()
}

// Close stops the workers. Close is safe to call multiple times.
func (p *Pool) Close() {
	p.wp.Close()
}

var (
	sharedPoolOnce sync.Once
	sharedPoolPtr  *parallel.WorkerPool
)

// sharedPool returns the process-wide pool, creating it on first use.
// It lives for the lifetime of the process.
func sharedPool() *parallel.WorkerPool {
	sharedPoolOnce.Do(func() {
		sharedPoolPtr = parallel.NewWorkerPool(0)
	})
	return sharedPoolPtr
}
