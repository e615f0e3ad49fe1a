// Package queue defines the work-item abstraction between upload intake and
// the analysis pipeline.
package queue

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrQueueClosed is returned by Enqueue after Shutdown has started.
var ErrQueueClosed = errors.New("queue is shutting down")

// Job asks the pipeline to analyze one upload.
type Job struct {
	UploadID    uuid.UUID `json:"uploadId"`
	UserID      uuid.UUID `json:"userId"`
	FileName    string    `json:"fileName"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// HandlerFunc processes one job. The queue logs the returned error; it does
// not retry.
type HandlerFunc func(ctx context.Context, job Job) error

// Queue accepts jobs and runs them on its workers.
type Queue interface {
	// Enqueue hands a job to the workers. It blocks while the queue is full
	// until ctx is done.
	Enqueue(ctx context.Context, job Job) error
	// Shutdown stops accepting jobs and waits for workers until ctx is done,
	// after which in-flight jobs are cancelled.
	Shutdown(ctx context.Context) error
}
