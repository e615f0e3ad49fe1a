package queue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amirasaad/subtracker/pkg/queue"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newJob() queue.Job {
	return queue.Job{UploadID: uuid.New(), UserID: uuid.New(), FileName: "a.pdf", SubmittedAt: time.Now()}
}

func TestMemoryQueue_RunsEveryJob(t *testing.T) {
	var mu sync.Mutex
	seen := map[uuid.UUID]bool{}
	q := NewMemoryQueue(func(_ context.Context, job queue.Job) error {
		mu.Lock()
		defer mu.Unlock()
		seen[job.UploadID] = true
		return nil
	}, discardLogger(), WithWorkers(3), WithQueueSize(2))

	jobs := make([]queue.Job, 20)
	for i := range jobs {
		jobs[i] = newJob()
		require.NoError(t, q.Enqueue(context.Background(), jobs[i]))
	}
	require.NoError(t, q.Shutdown(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, len(jobs))
	for _, j := range jobs {
		assert.True(t, seen[j.UploadID])
	}
}

func TestMemoryQueue_BoundedConcurrency(t *testing.T) {
	var running, peak atomic.Int32
	q := NewMemoryQueue(func(_ context.Context, _ queue.Job) error {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		running.Add(-1)
		return nil
	}, discardLogger(), WithWorkers(2))

	for range 8 {
		require.NoError(t, q.Enqueue(context.Background(), newJob()))
	}
	require.NoError(t, q.Shutdown(context.Background()))
	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.GreaterOrEqual(t, peak.Load(), int32(1))
}

func TestMemoryQueue_EnqueueAfterShutdown(t *testing.T) {
	q := NewMemoryQueue(func(context.Context, queue.Job) error { return nil }, discardLogger())
	require.NoError(t, q.Shutdown(context.Background()))
	require.NoError(t, q.Shutdown(context.Background()))

	err := q.Enqueue(context.Background(), newJob())
	assert.ErrorIs(t, err, queue.ErrQueueClosed)
}

func TestMemoryQueue_ShutdownDeadlineCancelsJobs(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})
	q := NewMemoryQueue(func(ctx context.Context, _ queue.Job) error {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	}, discardLogger(), WithWorkers(1), WithJobTimeout(time.Minute))

	require.NoError(t, q.Enqueue(context.Background(), newJob()))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := q.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("in-flight job was not cancelled")
	}
}

func TestMemoryQueue_HandlerPanicDoesNotKillWorker(t *testing.T) {
	var calls atomic.Int32
	q := NewMemoryQueue(func(context.Context, queue.Job) error {
		if calls.Add(1) == 1 {
			panic("boom")
		}
		return errors.New("plain failure")
	}, discardLogger(), WithWorkers(1))

	require.NoError(t, q.Enqueue(context.Background(), newJob()))
	require.NoError(t, q.Enqueue(context.Background(), newJob()))
	require.NoError(t, q.Shutdown(context.Background()))
	assert.Equal(t, int32(2), calls.Load())
}

func TestMemoryQueue_EnqueueRespectsContextWhenFull(t *testing.T) {
	release := make(chan struct{})
	q := NewMemoryQueue(func(context.Context, queue.Job) error {
		<-release
		return nil
	}, discardLogger(), WithWorkers(1), WithQueueSize(1))
	defer func() {
		close(release)
		_ = q.Shutdown(context.Background())
	}()

	// one job held by the worker, one in the buffer
	require.NoError(t, q.Enqueue(context.Background(), newJob()))
	require.Eventually(t, func() bool { return len(q.ch) == 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, q.Enqueue(context.Background(), newJob()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err := q.Enqueue(ctx, newJob())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
