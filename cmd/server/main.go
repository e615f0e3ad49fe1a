package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/subtracker/infra/initializer"
	"github.com/amirasaad/subtracker/pkg/app"
	"github.com/amirasaad/subtracker/pkg/config"
	"github.com/amirasaad/subtracker/webapi"
	log "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

// @title Subscription Tracker API
// @version 1.0
// @description Upload bank statements, track detected subscriptions and manage reminders.
// @BasePath /api
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(config.GetEnv("ENV_FILE", ".env"))
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	fiberApp, a, err := build(cfg)
	if err != nil {
		return err
	}
	logger := a.Deps.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.Server.Addr()
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
		"storage", cfg.Storage.Backend,
		"queue", cfg.Queue.Backend,
		"auth", cfg.Auth.Strategy,
	)
	errCh := make(chan error, 1)
	go func() { errCh <- fiberApp.Listen(addr) }()

	select {
	case err := <-errCh:
		_ = shutdownQueue(a, cfg, logger)
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	var errs []error
	if err := fiberApp.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := shutdownQueue(a, cfg, logger); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// build wires the dependencies, seeds the demo user and creates the HTTP app.
func build(cfg *config.App) (*fiber.App, *app.App, error) {
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	a := app.New(deps, cfg)
	if err := a.Bootstrap(context.Background()); err != nil {
		return nil, nil, err
	}
	return webapi.SetupApp(a), a, nil
}

func shutdownQueue(a *app.App, cfg *config.App, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.Deps.Queue.Shutdown(ctx); err != nil {
		logger.Error("Analysis queue did not drain", "error", err)
		return fmt.Errorf("queue shutdown: %w", err)
	}
	logger.Info("Analysis queue drained")
	return nil
}
