package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/subtracker/pkg/config"
	"github.com/amirasaad/subtracker/pkg/dto"
	"github.com/amirasaad/subtracker/pkg/provider"
	"github.com/amirasaad/subtracker/pkg/queue"
	"github.com/amirasaad/subtracker/pkg/repository"
	"github.com/amirasaad/subtracker/pkg/service/auth"
	"github.com/amirasaad/subtracker/pkg/service/dashboard"
	"github.com/amirasaad/subtracker/pkg/service/payment"
	"github.com/amirasaad/subtracker/pkg/service/reminder"
	"github.com/amirasaad/subtracker/pkg/service/upload"
	"github.com/amirasaad/subtracker/pkg/service/user"
	"github.com/amirasaad/subtracker/pkg/storage"
)

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Uow    repository.UnitOfWork
	Blobs  storage.BlobStore
	Queue  queue.Queue
	Mailer provider.Mailer
	Logger *slog.Logger
}

type App struct {
	Deps             *Deps
	Config           *config.App
	AuthService      *auth.Service
	UserService      *user.Service
	UploadService    *upload.Service
	PaymentService   *payment.Service
	DashboardService *dashboard.Service
	ReminderService  *reminder.Service
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.UserService = user.New(deps.Uow, deps.Logger)

	authMap := map[string]func() *auth.Service{
		"jwt": func() *auth.Service {
			return auth.NewWithJWT(app.UserService, cfg.Auth.Jwt, deps.Logger)
		},
	}
	if authFactory, ok := authMap[cfg.Auth.Strategy]; ok {
		app.AuthService = authFactory()
	} else {
		app.AuthService = auth.NewWithDemo(app.UserService, cfg.Auth.Demo, deps.Logger)
	}
	app.UploadService = upload.New(deps.Uow, deps.Blobs, deps.Queue, cfg.Upload, deps.Logger)
	app.PaymentService = payment.New(deps.Uow, deps.Logger)
	app.DashboardService = dashboard.New(deps.Uow, deps.Logger)
	app.ReminderService = reminder.New(deps.Uow, deps.Mailer, deps.Logger)
	return app
}

// Bootstrap seeds the demo user when the demo strategy is active.
func (a *App) Bootstrap(ctx context.Context) error {
	if a.AuthService.TokenRequired() {
		return nil
	}
	demo := a.Config.Auth.Demo
	u, err := a.UserService.EnsureUser(ctx, dto.Identity{
		UserID:    demo.UserID,
		Email:     demo.Email,
		FirstName: demo.FirstName,
		LastName:  demo.LastName,
	})
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	a.Deps.Logger.Info("Demo user ready", "user_id", u.ID, "email", u.Email)
	return nil
}
