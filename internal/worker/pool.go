// Package worker runs deferred side work (audit log writes) off the request
// path on a fixed set of goroutines.
package worker

import (
	"sync"

	"github.com/kanhadewangan/trpc-blog/internal/metrics"
)

type task func()

type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(n int) *Pool {
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
				metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
			}
		}()
	}
	return p
}

func (p *Pool) Submit(f task) {
	p.jobs <- f
	metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
}

// Stop closes the queue and waits for in-flight work to drain.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
