package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"reelpress/internal/logging"
	"reelpress/internal/task"
)

// ErrQueueFull is returned when the submission queue cannot take another task.
var ErrQueueFull = errors.New("task queue full")

// ErrPoolClosed is returned when work is submitted after shutdown began.
var ErrPoolClosed = errors.New("worker pool closed")

// Runner executes one registered task to a terminal state.
type Runner interface {
	Run(ctx context.Context, id string)
}

// Pool is a bounded worker pool draining a task queue. Submission never
// blocks: a full queue is an immediate error so the intake boundary can
// report back-pressure instead of hanging.
type Pool struct {
	runner   Runner
	registry *task.Registry
	workers  int
	queue    chan string
	logger   *slog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewPool creates a pool with the given worker count and queue capacity.
func NewPool(runner Runner, registry *task.Registry, workers, capacity int, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if capacity <= 0 {
		capacity = workers
	}
	return &Pool{
		runner:   runner,
		registry: registry,
		workers:  workers,
		queue:    make(chan string, capacity),
		logger:   logging.NewComponentLogger(logger, "pool"),
	}
}

// Start launches the workers. They exit when ctx is canceled or the queue is
// closed; in-flight tasks observe the cancellation through the same context.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

func (p *Pool) worker(ctx context.Context, index int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case id, ok := <-p.queue:
			if !ok {
				return
			}
			p.logger.Debug("worker picked up task",
				logging.Int("worker", index),
				logging.String(logging.FieldTaskID, id))
			p.runner.Run(ctx, id)
		}
	}
}

// Submit queues a registered task for processing.
func (p *Pool) Submit(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.queue <- id:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops intake, waits for the workers to exit, and marks every task
// still queued or interrupted mid-flight as failed so no task is left
// non-terminal after the daemon stops.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()

	for id := range p.queue {
		p.failInterrupted(id)
	}
	for _, t := range p.registry.List() {
		if !t.Status.Terminal() {
			p.failInterrupted(t.ID)
		}
	}
}

func (p *Pool) failInterrupted(id string) {
	if err := p.registry.Fail(id, "processing interrupted by shutdown"); err != nil {
		if !errors.Is(err, task.ErrTerminal) && !errors.Is(err, task.ErrNotFound) {
			p.logger.Warn("cannot fail interrupted task",
				logging.String(logging.FieldTaskID, id),
				logging.Error(err))
		}
		return
	}
	p.logger.Warn("task interrupted by shutdown", logging.String(logging.FieldTaskID, id))
}
