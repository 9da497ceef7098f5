package meshing

import (
	"context"
	"sync"
)

// Job rebuilds the meshes of one chunk. Build may read shared block data but
// must only write state owned by its chunk.
type Job struct {
	Index int
	Build func() PassMask
	// Result receives the outcome when done
	Result chan<- JobResult
}

// JobResult reports which meshes a job rebuilt.
type JobResult struct {
	Index int
	Mask  PassMask
}

// WorkerPool runs mesh jobs on a fixed set of goroutines.
type WorkerPool struct {
	jobQueue chan Job
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool starts workers goroutines reading from a queue of queueSize jobs.
func NewWorkerPool(workers int, queueSize int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	pool := &WorkerPool{
		jobQueue: make(chan Job, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}
	for range workers {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

// SubmitJobBlocking queues a job, waiting for room unless the pool shuts down.
func (p *WorkerPool) SubmitJobBlocking(job Job) {
	select {
	case p.jobQueue <- job:
	case <-p.ctx.Done():
	}
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			res := JobResult{Index: job.Index, Mask: job.Build()}
			select {
			case job.Result <- res:
			case <-p.ctx.Done():
				return
			}
		case <-p.ctx.Done():
			return
		}
	}
}

// Run builds every function in builds and returns their masks in order.
func (p *WorkerPool) Run(builds []func() PassMask) []PassMask {
	masks := make([]PassMask, len(builds))
	results := make(chan JobResult, len(builds))
	for i, b := range builds {
		p.SubmitJobBlocking(Job{Index: i, Build: b, Result: results})
	}
	for range builds {
		select {
		case r := <-results:
			masks[r.Index] = r.Mask
		case <-p.ctx.Done():
			return masks
		}
	}
	return masks
}

// Shutdown stops the workers and waits for them to exit.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
