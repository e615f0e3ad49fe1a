package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/subtracker/pkg/domain/payment"
	"github.com/amirasaad/subtracker/pkg/domain/upload"
	"github.com/amirasaad/subtracker/pkg/queue"
	"github.com/amirasaad/subtracker/pkg/repository"
	"github.com/amirasaad/subtracker/pkg/storage"
)

// Processor drives one upload through pending -> processing -> completed|failed.
type Processor struct {
	uow          repository.UnitOfWork
	blobs        storage.BlobStore
	analyzer     Analyzer
	startDelay   time.Duration
	processDelay time.Duration
	logger       *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithStartDelay sets the wait before an upload enters processing.
func WithStartDelay(d time.Duration) Option {
	return func(p *Processor) { p.startDelay = d }
}

// WithProcessDelay sets the wait between entering processing and analysis.
func WithProcessDelay(d time.Duration) Option {
	return func(p *Processor) { p.processDelay = d }
}

// NewProcessor creates a Processor with the default 1s/3s delays.
func NewProcessor(
	uow repository.UnitOfWork,
	blobs storage.BlobStore,
	analyzer Analyzer,
	logger *slog.Logger,
	opts ...Option,
) *Processor {
	p := &Processor{
		uow:          uow,
		blobs:        blobs,
		analyzer:     analyzer,
		startDelay:   time.Second,
		processDelay: 3 * time.Second,
		logger:       logger.With("component", "analysis"),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Handle is the queue.HandlerFunc for analysis jobs. If the upload cannot
// enter processing it stays pending. Any error after that marks it failed.
func (p *Processor) Handle(ctx context.Context, job queue.Job) error {
	log := p.logger.With("upload_id", job.UploadID, "user_id", job.UserID)

	if err := wait(ctx, p.startDelay); err != nil {
		log.Warn("Job cancelled before processing", "error", err)
		return err
	}
	if err := p.transition(ctx, job, upload.StatusPending, upload.StatusProcessing, nil); err != nil {
		log.Error("Could not start processing", "error", err)
		return err
	}
	log.Info("Processing upload", "file", job.FileName)

	count, err := p.process(ctx, job)
	if err != nil {
		// ctx may already be cancelled; the failure must still be recorded.
		ferr := p.transition(context.WithoutCancel(ctx), job, upload.StatusProcessing, upload.StatusFailed, nil)
		if ferr != nil {
			log.Error("Could not mark upload failed", "error", ferr)
		}
		log.Error("Analysis failed", "error", err)
		return errors.Join(err, ferr)
	}
	log.Info("Analysis completed", "payments", count)
	return nil
}

func (p *Processor) process(ctx context.Context, job queue.Job) (count int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analysis panic: %v", r)
		}
	}()
	if err := wait(ctx, p.processDelay); err != nil {
		return 0, err
	}

	var u *upload.Upload
	if err := p.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UploadRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, job.UploadID)
		return err
	}); err != nil {
		return 0, err
	}

	content, err := p.blobs.Open(ctx, u.FilePath)
	if err != nil {
		return 0, fmt.Errorf("open stored file: %w", err)
	}
	defer content.Close() //nolint:errcheck

	results, err := p.analyzer.Analyze(ctx, u, content)
	if err != nil {
		return 0, err
	}

	err = p.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		payments, err := uow.PaymentRepository()
		if err != nil {
			return err
		}
		for _, d := range results.DetectedPayments {
			rp := payment.NewDetected(u.UserID, u.ID, d.MerchantName, d.Amount, d.Frequency, d.Category, d.Confidence)
			if err := payments.Create(ctx, rp); err != nil {
				return fmt.Errorf("create payment %s: %w", d.MerchantName, err)
			}
		}
		uploads, err := uow.UploadRepository()
		if err != nil {
			return err
		}
		return uploads.Transition(ctx, u.ID, upload.StatusProcessing, upload.StatusCompleted, results)
	})
	if err != nil {
		return 0, err
	}
	return len(results.DetectedPayments), nil
}

func (p *Processor) transition(
	ctx context.Context,
	job queue.Job,
	from, to upload.Status,
	results *upload.AnalysisResults,
) error {
	return p.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UploadRepository()
		if err != nil {
			return err
		}
		return repo.Transition(ctx, job.UploadID, from, to, results)
	})
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
