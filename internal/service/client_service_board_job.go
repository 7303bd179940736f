package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-task-client/internal/workers"
	"github.com/MKhiriev/go-task-client/models"
	"github.com/jonboulle/clockwork"
)

const defaultBoardRefreshInterval = time.Minute

type boardRefreshJob struct {
	tasks TaskService
	clock clockwork.Clock

	mu      sync.Mutex
	cancel  context.CancelFunc
	running *workers.Workers
}

// NewBoardRefreshJob creates a job that reloads the board through tasks on
// every tick of clock. The job is idle until Start is called.
func NewBoardRefreshJob(tasks TaskService, clock clockwork.Clock) BoardRefreshJob {
	return &boardRefreshJob{tasks: tasks, clock: clock}
}

// Start implements BoardRefreshJob.
func (j *boardRefreshJob) Start(ctx context.Context, filter models.TaskFilter, withUsers bool, interval time.Duration, onLoaded func(models.Board, error)) {
	if interval <= 0 {
		interval = defaultBoardRefreshInterval
	}

	j.Stop()

	reload := workers.NewPeriodic(j.clock, interval, func(ctx context.Context) {
		board, err := j.tasks.Board(ctx, filter, withUsers)
		if ctx.Err() != nil {
			return
		}
		onLoaded(board, err)
	})

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.running = workers.NewWorkers(reload)
	j.running.Run(jobCtx)
	j.mu.Unlock()
}

// Stop implements BoardRefreshJob. It is a no-op when the job is not running.
func (j *boardRefreshJob) Stop() {
	j.mu.Lock()
	cancel, running := j.cancel, j.running
	j.cancel, j.running = nil, nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if running != nil {
		running.Wait()
	}
}
