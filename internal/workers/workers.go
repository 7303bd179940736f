package workers

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Workers runs a set of workers, each in its own goroutine.
type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

// NewWorkers groups ws. Nothing runs until Run is called.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// Run starts every worker and returns immediately. The workers stop when ctx
// is cancelled; use Wait to block until they have exited.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker := worker
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			worker.Run(ctx)
		}()
	}
}

// Wait blocks until every started worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}

// Periodic calls a function on every tick of a clock ticker.
type Periodic struct {
	clock    clockwork.Clock
	interval time.Duration
	fn       func(ctx context.Context)
}

// NewPeriodic returns a worker calling fn every interval. The first call
// happens one interval after Run starts.
func NewPeriodic(clock clockwork.Clock, interval time.Duration, fn func(ctx context.Context)) *Periodic {
	return &Periodic{clock: clock, interval: interval, fn: fn}
}

// Run implements Worker.
func (p *Periodic) Run(ctx context.Context) {
	t := p.clock.NewTicker(p.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.Chan():
			p.fn(ctx)
		}
	}
}
