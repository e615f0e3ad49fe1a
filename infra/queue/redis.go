package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/subtracker/pkg/queue"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const jobField = "job"

// RedisQueue stores jobs in a Redis stream and consumes them through a
// consumer group. Entries whose handler fails or panics are copied to
// "<stream>-DLQ" before being acknowledged.
type RedisQueue struct {
	client  *redis.Client
	stream  string
	group   string
	handler queue.HandlerFunc
	logger  *slog.Logger
	opts    options

	wg         sync.WaitGroup
	stopRead   context.CancelFunc
	cancelJobs context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

// NewRedisQueue connects to url, creates the stream and group if needed and
// starts the consumers.
func NewRedisQueue(
	url, stream, group string,
	handler queue.HandlerFunc,
	logger *slog.Logger,
	opts ...Option,
) (*RedisQueue, error) {
	if url == "" || stream == "" || group == "" {
		return nil, fmt.Errorf("redis queue: url, stream, and group are required")
	}
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis queue: invalid URL: %w", err)
	}
	opt.ContextTimeoutEnabled = true
	if o.poolSize > 0 {
		opt.PoolSize = o.poolSize
	}
	if o.dialTimeout > 0 {
		opt.DialTimeout = o.dialTimeout
	}
	if o.readTimeout > 0 {
		opt.ReadTimeout = o.readTimeout
	}
	if o.writeTimeout > 0 {
		opt.WriteTimeout = o.writeTimeout
	}
	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close() //nolint:errcheck
		return nil, fmt.Errorf("redis queue: connection failed: %w", err)
	}

	err = client.XGroupCreateMkStream(context.Background(), stream, group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		client.Close() //nolint:errcheck
		return nil, fmt.Errorf("redis queue: create group: %w", err)
	}

	q := &RedisQueue{
		client:  client,
		stream:  stream,
		group:   group,
		handler: handler,
		logger:  logger.With("component", "redis-queue", "stream", stream),
		opts:    o,
	}
	q.start()
	return q, nil
}

func (q *RedisQueue) start() {
	readCtx, stopRead := context.WithCancel(context.Background())
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	q.stopRead, q.cancelJobs = stopRead, cancelJobs
	prefix := uuid.NewString()[:8]
	for i := range q.opts.workers {
		consumer := fmt.Sprintf("consumer-%s-%d", prefix, i+1)
		q.wg.Add(1)
		go q.consume(readCtx, jobCtx, consumer)
	}
}

// Enqueue implements queue.Queue.
func (q *RedisQueue) Enqueue(ctx context.Context, job queue.Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return queue.ErrQueueClosed
	}
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("redis queue: marshal failed: %w", err)
	}
	id, err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		Values: map[string]any{jobField: string(data)},
	}).Result()
	if err != nil {
		return fmt.Errorf("redis queue: enqueue failed: %w", err)
	}
	q.logger.Debug("queued upload for analysis", "upload_id", job.UploadID, "msg_id", id)
	return nil
}

// TODO: reclaim entries left pending by a crashed consumer with XAUTOCLAIM.
func (q *RedisQueue) consume(ctx, jobCtx context.Context, consumer string) {
	defer q.wg.Done()
	q.logger.Debug("consumer started", "consumer", consumer)
	for ctx.Err() == nil {
		res, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    q.group,
			Consumer: consumer,
			Streams:  []string{q.stream, ">"},
			Count:    1,
			Block:    q.opts.block,
		}).Result()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			if !errors.Is(err, redis.Nil) {
				q.logger.Error("error reading from stream", "error", err, "consumer", consumer)
				sleep(ctx, time.Second)
			}
			continue
		}
		for _, stream := range res {
			for _, msg := range stream.Messages {
				q.handle(jobCtx, consumer, msg)
			}
		}
	}
	q.logger.Debug("consumer stopped", "consumer", consumer)
}

func (q *RedisQueue) handle(ctx context.Context, consumer string, msg redis.XMessage) {
	// Ack and DLQ writes must happen even when the consumer is stopping.
	bg := context.WithoutCancel(ctx)
	defer func() {
		if err := q.client.XAck(bg, q.stream, q.group, msg.ID).Err(); err != nil {
			q.logger.Error("failed to acknowledge message", "error", err, "msg_id", msg.ID)
		}
	}()

	raw, ok := msg.Values[jobField].(string)
	if !ok {
		q.logger.Error("message without job field", "msg_id", msg.ID)
		q.pushToDLQ(bg, msg.Values)
		return
	}
	var job queue.Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		q.logger.Error("failed to unmarshal job", "error", err, "msg_id", msg.ID)
		q.pushToDLQ(bg, msg.Values)
		return
	}

	jobCtx, cancel := context.WithTimeout(ctx, q.opts.jobTimeout)
	defer cancel()
	func() {
		defer func() {
			if r := recover(); r != nil {
				q.logger.Error("handler panic recovered", "panic", r, "upload_id", job.UploadID)
				q.pushToDLQ(bg, msg.Values)
			}
		}()
		if err := q.handler(jobCtx, job); err != nil {
			q.logger.Error("job failed", "error", err, "upload_id", job.UploadID, "consumer", consumer)
			q.pushToDLQ(bg, msg.Values)
			return
		}
		q.logger.Info("job done", "upload_id", job.UploadID, "consumer", consumer)
	}()
}

func (q *RedisQueue) pushToDLQ(ctx context.Context, values map[string]any) {
	dlqStream := q.stream + "-DLQ"
	if _, err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: dlqStream,
		Values: values,
	}).Result(); err != nil {
		q.logger.Error("failed to push to DLQ", "error", err, "stream", dlqStream)
		return
	}
	q.logger.Warn("job pushed to DLQ", "stream", dlqStream)
}

// Shutdown implements queue.Queue. Consumers stop reading immediately; the
// job each one is running gets until ctx is done.
func (q *RedisQueue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.mu.Unlock()

	q.stopRead()
	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = ctx.Err()
		q.logger.Warn("shutdown deadline reached, in-flight jobs cancelled")
	}
	q.cancelJobs()
	<-done
	if cerr := q.client.Close(); cerr != nil {
		q.logger.Warn("closing redis client", "error", cerr)
	}
	return err
}

// Client exposes the underlying connection.
func (q *RedisQueue) Client() *redis.Client { return q.client }

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
