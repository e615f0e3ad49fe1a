package queue

import "time"

type options struct {
	workers    int
	queueSize  int
	jobTimeout time.Duration
	block      time.Duration

	poolSize     int
	dialTimeout  time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func defaultOptions() options {
	return options{
		workers:    4,
		queueSize:  256,
		jobTimeout: 30 * time.Second,
		block:      5 * time.Second,
	}
}

// Option configures a queue.
type Option func(*options)

// WithWorkers sets the number of concurrent workers.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithQueueSize sets the buffer of the in-memory queue.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueSize = n
		}
	}
}

// WithJobTimeout bounds how long a single job may run.
func WithJobTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.jobTimeout = d
		}
	}
}

// WithBlock sets how long a Redis consumer blocks waiting for new entries.
func WithBlock(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.block = d
		}
	}
}

// WithPool tunes the Redis connection pool. Zero values keep the client defaults.
func WithPool(size int, dial, read, write time.Duration) Option {
	return func(o *options) {
		o.poolSize = size
		o.dialTimeout = dial
		o.readTimeout = read
		o.writeTimeout = write
	}
}
