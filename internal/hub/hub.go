package hub

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a unit of background work, such as a notification fan-out.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Hub runs submitted jobs one at a time on a single goroutine, in submission order.
// Submit never blocks; callers decide what to do with ErrQueueFull and ErrHubNotRunning.
type Hub struct {
	jobs            chan Job
	shutdownChannel chan struct{}
	done            chan struct{}
	jobTimeout      time.Duration
	log             *slog.Logger

	started bool // a worker exists and Stop has not been called
	running bool // Submit accepts jobs
	mu      sync.RWMutex
}

func NewHub(queueSize int, jobTimeout time.Duration, log *slog.Logger) *Hub {
	return &Hub{
		jobs:       make(chan Job, queueSize),
		jobTimeout: jobTimeout,
		log:        log,
	}
}

func (h *Hub) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.started {
		return ErrHubAlreadyRunning
	}
	h.started = true
	h.running = true
	h.shutdownChannel = make(chan struct{})
	h.done = make(chan struct{})

	h.log.Info("Starting hub", "queue_size", cap(h.jobs))
	go h.run(ctx, h.shutdownChannel, h.done)
	return nil
}

// Stop refuses new jobs, drains the queue and waits for the worker to exit.
// It also succeeds after the worker already exited because ctx was cancelled.
func (h *Hub) Stop() error {
	h.mu.Lock()
	if !h.started {
		h.mu.Unlock()
		return ErrHubNotRunning
	}
	h.started = false
	if h.running {
		h.running = false
		close(h.shutdownChannel)
	}
	done := h.done
	h.mu.Unlock()

	<-done
	h.log.Info("Hub stopped")
	return nil
}

// Submit queues job without blocking.
func (h *Hub) Submit(job Job) error {
	if job.Run == nil {
		return ErrNilJob
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.running {
		return ErrHubNotRunning
	}

	select {
	case h.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// IsRunning reports whether Submit currently accepts jobs.
func (h *Hub) IsRunning() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.running
}

// QueueLength is the number of jobs waiting to run.
func (h *Hub) QueueLength() int {
	return len(h.jobs)
}

func (h *Hub) run(ctx context.Context, shutdown, done chan struct{}) {
	defer close(done)

	for {
		select {
		case job := <-h.jobs:
			h.execute(ctx, job)

		case <-shutdown:
			h.drain(ctx)
			return

		case <-ctx.Done():
			// Stop intake first; the drain below is the last one.
			h.mu.Lock()
			h.running = false
			h.mu.Unlock()
			h.log.Info("Hub context cancelled, draining queue", "queued", len(h.jobs))
			h.drain(context.WithoutCancel(ctx))
			return
		}
	}
}

func (h *Hub) drain(ctx context.Context) {
	for {
		select {
		case job := <-h.jobs:
			h.execute(ctx, job)
		default:
			return
		}
	}
}

func (h *Hub) execute(ctx context.Context, job Job) {
	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.jobTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			h.log.Error("Hub job panicked", "job", job.Name, "panic", r)
		}
	}()

	if err := job.Run(jobCtx); err != nil {
		h.log.Warn("Hub job failed", "job", job.Name, "err", err)
	}
}
