package initializer

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/amirasaad/subtracker/infra"
	"github.com/amirasaad/subtracker/infra/filestore"
	infra_provider "github.com/amirasaad/subtracker/infra/provider"
	infra_queue "github.com/amirasaad/subtracker/infra/queue"
	infra_repository "github.com/amirasaad/subtracker/infra/repository"
	infra_storage "github.com/amirasaad/subtracker/infra/storage"
	"github.com/amirasaad/subtracker/pkg/app"
	"github.com/amirasaad/subtracker/pkg/config"
	"github.com/amirasaad/subtracker/pkg/provider"
	"github.com/amirasaad/subtracker/pkg/queue"
	"github.com/amirasaad/subtracker/pkg/repository"
	"github.com/amirasaad/subtracker/pkg/service/analysis"
)

// InitializeCore builds the logger, persistence, blob storage and mailer.
// The returned deps have no queue; commands that never accept uploads use it.
func InitializeCore(cfg *config.App) (*app.Deps, error) {
	logger := setupLogger(cfg.Log)
	deps := &app.Deps{Logger: logger}

	uow, err := newUnitOfWork(cfg, logger)
	if err != nil {
		return nil, err
	}
	deps.Uow = uow

	blobs, err := infra_storage.NewLocalStore(cfg.Upload.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob storage: %w", err)
	}
	deps.Blobs = blobs
	deps.Mailer = newMailer(cfg.Mail, logger)
	return deps, nil
}

// InitializeDependencies builds everything the server needs, including the
// analysis queue and its workers.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	deps, err := InitializeCore(cfg)
	if err != nil {
		return nil, err
	}

	processor := analysis.NewProcessor(
		deps.Uow,
		deps.Blobs,
		analysis.NewMockAnalyzer(rand.NewSource(time.Now().UnixNano())),
		deps.Logger,
		analysis.WithStartDelay(cfg.Analysis.StartDelay),
		analysis.WithProcessDelay(cfg.Analysis.ProcessDelay),
	)
	deps.Queue, err = newQueue(cfg, processor.Handle, deps.Logger)
	if err != nil {
		return nil, err
	}
	return deps, nil
}

func newUnitOfWork(cfg *config.App, logger *slog.Logger) (repository.UnitOfWork, error) {
	switch cfg.Storage.Backend {
	case "postgres":
		db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
		if err != nil {
			logger.Error("Failed to initialize database", "error", err)
			return nil, err
		}
		if err := infra.AutoMigrate(db); err != nil {
			return nil, err
		}
		logger.Info("Using postgres storage")
		return infra_repository.NewUoW(db), nil
	default:
		store, err := filestore.New(cfg.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file storage: %w", err)
		}
		logger.Info("Using file storage", "dir", store.Dir())
		return filestore.NewUoW(store), nil
	}
}

func newMailer(cfg *config.Mail, logger *slog.Logger) provider.Mailer {
	if cfg.Driver == "smtp" {
		logger.Info("Using SMTP mailer", "host", cfg.Host, "port", cfg.Port)
		return infra_provider.NewSMTPMailer(cfg, logger)
	}
	return infra_provider.NewLogMailer(logger)
}

func newQueue(cfg *config.App, handler queue.HandlerFunc, logger *slog.Logger) (queue.Queue, error) {
	opts := []infra_queue.Option{
		infra_queue.WithWorkers(cfg.Analysis.Workers),
		infra_queue.WithQueueSize(cfg.Analysis.QueueSize),
		infra_queue.WithJobTimeout(cfg.Analysis.JobTimeout),
	}
	if cfg.Queue.Backend == "redis" {
		r := cfg.Redis
		opts = append(opts, infra_queue.WithPool(r.PoolSize, r.DialTimeout, r.ReadTimeout, r.WriteTimeout))
		q, err := infra_queue.NewRedisQueue(r.URL, r.Stream, r.Group, handler, logger, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis queue: %w", err)
		}
		logger.Info("Using Redis queue", "stream", r.Stream, "group", r.Group)
		return q, nil
	}
	return infra_queue.NewMemoryQueue(handler, logger, opts...), nil
}
