// Package queue provides the in-memory and Redis Streams job queues.
package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/amirasaad/subtracker/pkg/queue"
)

// MemoryQueue runs jobs on a fixed pool of goroutines fed by a buffered channel.
type MemoryQueue struct {
	handler queue.HandlerFunc
	logger  *slog.Logger
	opts    options

	ch     chan queue.Job
	wg     sync.WaitGroup
	once   sync.Once
	base   context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

// NewMemoryQueue creates the queue and starts its workers.
func NewMemoryQueue(handler queue.HandlerFunc, logger *slog.Logger, opts ...Option) *MemoryQueue {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	base, cancel := context.WithCancel(context.Background())
	q := &MemoryQueue{
		handler: handler,
		logger:  logger.With("component", "memory-queue"),
		opts:    o,
		ch:      make(chan queue.Job, o.queueSize),
		base:    base,
		cancel:  cancel,
	}
	q.start()
	return q
}

func (q *MemoryQueue) start() {
	q.once.Do(func() {
		for i := range q.opts.workers {
			q.wg.Add(1)
			go q.work(i + 1)
		}
	})
}

func (q *MemoryQueue) work(workerID int) {
	defer q.wg.Done()
	q.logger.Debug("worker started", "worker_id", workerID)
	for job := range q.ch {
		if err := q.run(job); err != nil {
			q.logger.Error("job failed", "worker_id", workerID, "upload_id", job.UploadID, "error", err)
		} else {
			q.logger.Info("job done", "worker_id", workerID, "upload_id", job.UploadID)
		}
	}
	q.logger.Debug("worker stopped", "worker_id", workerID)
}

func (q *MemoryQueue) run(job queue.Job) (err error) {
	ctx, cancel := context.WithTimeout(q.base, q.opts.jobTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return q.handler(ctx, job)
}

// Enqueue implements queue.Queue.
func (q *MemoryQueue) Enqueue(ctx context.Context, job queue.Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "upload_id", job.UploadID)
		return queue.ErrQueueClosed
	}
	select {
	case q.ch <- job:
		q.logger.Debug("queued upload for analysis", "upload_id", job.UploadID)
		return nil
	default:
	}
	q.logger.Warn("queue full, applying backpressure", "upload_id", job.UploadID)
	select {
	case q.ch <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown implements queue.Queue.
func (q *MemoryQueue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-done:
		q.cancel()
		q.logger.Info("queue drained, shutdown complete")
		return nil
	case <-ctx.Done():
		q.cancel()
		<-done
		q.logger.Warn("shutdown deadline reached, in-flight jobs cancelled")
		return ctx.Err()
	}
}
