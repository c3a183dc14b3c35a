// Package parallel runs independent pieces of CPU-bound work across a fixed
// set of goroutines.
//
// The morph core splits an output raster into row bands (see Bands) and hands
// one closure per band to a WorkerPool. Bands write to disjoint slices of the
// output buffer, so no synchronization is needed beyond the final join.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines with per-worker queues.
//
// Work is distributed round-robin. A worker whose queue is empty steals from
// the other queues before blocking, which keeps bands of uneven cost
// balanced.
//
// Thread safety: Run is safe for concurrent use. Run must not be called from
// inside a task executing on the same pool, and Close must not race with Run.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	mine := p.workQueues[id]
	for {
		select {
		case <-p.done:
			p.drain(mine)
			return
		case work := <-mine:
			work()
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drain(mine)
				return
			case work := <-mine:
				work()
			}
		}
	}
}

// drain executes whatever is left in a queue during shutdown.
func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal takes one item from another worker's queue, or returns nil.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// Run executes every task and waits for all of them to finish.
//
// ctx is checked before each task starts; tasks that have not started when
// ctx is cancelled are skipped, and Run returns ctx.Err(). A task that is
// already running is never interrupted. On a closed pool Run executes the
// tasks on the calling goroutine.
func (p *WorkerPool) Run(ctx context.Context, tasks []func()) error {
	if len(tasks) == 0 {
		return ctx.Err()
	}
	if !p.running.Load() {
		for _, task := range tasks {
			if err := ctx.Err(); err != nil {
				return err
			}
			task()
		}
		return nil
	}

	var completion sync.WaitGroup
	completion.Add(len(tasks))

	for i, task := range tasks {
		wrapped := func() {
			defer completion.Done()
			if ctx.Err() != nil {
				return
			}
			task()
		}

		select {
		case p.workQueues[i%p.workers] <- wrapped:
		case <-p.done:
			wrapped()
		}
	}

	completion.Wait()
	return ctx.Err()
}

// Close stops the workers after the queued work has drained.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}
