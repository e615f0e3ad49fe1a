// Package upload implements statement intake: validation, blob storage,
// record creation and job submission.
package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/amirasaad/subtracker/pkg/config"
	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/domain/upload"
	"github.com/amirasaad/subtracker/pkg/queue"
	"github.com/amirasaad/subtracker/pkg/repository"
	"github.com/amirasaad/subtracker/pkg/storage"
	"github.com/google/uuid"
)

// File is one file of an intake batch.
type File struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// Service accepts upload batches.
type Service struct {
	uow    repository.UnitOfWork
	blobs  storage.BlobStore
	queue  queue.Queue
	cfg    *config.Upload
	logger *slog.Logger
}

// New creates a Service.
func New(
	uow repository.UnitOfWork,
	blobs storage.BlobStore,
	q queue.Queue,
	cfg *config.Upload,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, blobs: blobs, queue: q, cfg: cfg, logger: logger}
}

// SuccessMessage is the message returned for a stored batch of n files.
func SuccessMessage(n int) string {
	return fmt.Sprintf("%d file(s) uploaded successfully", n)
}

// Upload validates the whole batch, stores every file, creates one pending
// upload per file and submits an analysis job for each. It returns without
// waiting for analysis. A file that fails validation rejects the batch
// before anything is written.
func (s *Service) Upload(ctx context.Context, userID uuid.UUID, files []File) ([]*upload.Upload, error) {
	log := s.logger.With("user_id", userID, "files", len(files))
	if err := s.validate(files); err != nil {
		log.Warn("Upload rejected", "error", err)
		return nil, err
	}

	objects := make([]storage.Object, 0, len(files))
	cleanup := func() {
		for _, obj := range objects {
			if err := s.blobs.Delete(context.WithoutCancel(ctx), obj.Path); err != nil {
				log.Warn("Failed to remove stored file", "path", obj.Path, "error", err)
			}
		}
	}
	for _, f := range files {
		obj, err := s.store(ctx, f)
		if err != nil {
			cleanup()
			log.Error("Storing file failed", "file", f.Name, "error", err)
			return nil, err
		}
		objects = append(objects, obj)
	}

	uploads := make([]*upload.Upload, len(files))
	for i, f := range files {
		uploads[i] = upload.New(userID, f.Name, objects[i].ContentType, objects[i].Path, objects[i].Size)
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UploadRepository()
		if err != nil {
			return err
		}
		for _, u := range uploads {
			if err := repo.Create(ctx, u); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		cleanup()
		log.Error("Creating upload records failed", "error", err)
		return nil, err
	}

	for _, u := range uploads {
		job := queue.Job{UploadID: u.ID, UserID: userID, FileName: u.FileName, SubmittedAt: time.Now().UTC()}
		if err := s.queue.Enqueue(ctx, job); err != nil {
			log.Error("Enqueue failed, upload stays pending", "upload_id", u.ID, "error", err)
		}
	}
	log.Info("Upload accepted")
	return uploads, nil
}

func (s *Service) validate(files []File) error {
	if len(files) == 0 {
		return fmt.Errorf("%w: No files uploaded", domain.ErrValidation)
	}
	if len(files) > s.cfg.MaxFiles {
		return fmt.Errorf("%w: at most %d files per upload", domain.ErrValidation, s.cfg.MaxFiles)
	}
	for _, f := range files {
		if !upload.IsAllowedFile(f.Name) {
			return fmt.Errorf("%w: Invalid file type %q. Only PDF, JPG, and PNG files are allowed", domain.ErrValidation, f.Name)
		}
		if f.Size > s.cfg.MaxFileSize {
			return fmt.Errorf("%w: %s is larger than %d bytes", domain.ErrTooLarge, f.Name, s.cfg.MaxFileSize)
		}
	}
	return nil
}

func (s *Service) store(ctx context.Context, f File) (storage.Object, error) {
	rc, err := f.Open()
	if err != nil {
		return storage.Object{}, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close() //nolint:errcheck
	return s.blobs.Put(ctx, f.Name, rc, s.cfg.MaxFileSize)
}

// List returns the user's uploads, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (uploads []*upload.Upload, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UploadRepository()
		if err != nil {
			return err
		}
		uploads, err = repo.ListByUser(ctx, userID)
		return err
	})
	return uploads, err
}
