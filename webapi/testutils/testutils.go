// Package testutils builds a fully wired application for handler tests.
package testutils

import (
	"context"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	infra_provider "github.com/amirasaad/subtracker/infra/provider"
	infra_queue "github.com/amirasaad/subtracker/infra/queue"
	infra_storage "github.com/amirasaad/subtracker/infra/storage"
	"github.com/amirasaad/subtracker/pkg/app"
	"github.com/amirasaad/subtracker/pkg/config"
	"github.com/amirasaad/subtracker/pkg/dto"
	"github.com/amirasaad/subtracker/pkg/service/analysis"
	"github.com/amirasaad/subtracker/pkg/service/auth"
	pkgtestutils "github.com/amirasaad/subtracker/pkg/testutils"
	"github.com/amirasaad/subtracker/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// DemoUserID is the user every request is attributed to in demo mode.
const DemoUserID = "00000000-0000-0000-0000-000000000001"

// Config returns an application config suitable for tests.
func Config(strategy string) *config.App {
	return &config.App{
		Env:       "test",
		Server:    &config.Server{Host: "localhost", Port: 3000, APIPrefix: "/api", ShutdownTimeout: time.Second},
		Log:       &config.Log{Format: "text"},
		DB:        &config.DB{},
		Storage:   &config.Storage{Backend: "file"},
		Upload:    &config.Upload{MaxFiles: 10, MaxFileSize: 1 << 20},
		Analysis:  &config.Analysis{Workers: 2, QueueSize: 16, JobTimeout: 5 * time.Second},
		Queue:     &config.Queue{Backend: "memory"},
		Redis:     &config.Redis{},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
		Cors:      &config.Cors{AllowOrigins: "*"},
		Mail:      &config.Mail{Driver: "log"},
		Auth: &config.Auth{
			Strategy: strategy,
			Jwt:      &config.Jwt{Secret: "test-secret", Expiry: time.Hour},
			Demo: &config.Demo{
				UserID:    DemoUserID,
				Email:     "demo@example.com",
				FirstName: "Demo",
				LastName:  "User",
			},
		},
	}
}

// Env is a running application backed by temp dirs.
type Env struct {
	App   *app.App
	Fiber *fiber.App
	Cfg   *config.App
}

// NewEnv wires the application the way the server does, using the file
// backend, local blobs, the in-memory queue and an analyzer without delays.
// Pass a nil cfg for demo defaults.
func NewEnv(t testing.TB, cfg *config.App) *Env {
	t.Helper()
	if cfg == nil {
		cfg = Config("demo")
	}
	logger := pkgtestutils.DiscardLogger()
	uow := pkgtestutils.NewFileUoW(t)
	blobs, err := infra_storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	processor := analysis.NewProcessor(uow, blobs, analysis.NewMockAnalyzer(rand.NewSource(1)), logger,
		analysis.WithStartDelay(0), analysis.WithProcessDelay(0))
	q := infra_queue.NewMemoryQueue(processor.Handle, logger,
		infra_queue.WithWorkers(cfg.Analysis.Workers),
		infra_queue.WithQueueSize(cfg.Analysis.QueueSize))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = q.Shutdown(ctx)
	})

	a := app.New(&app.Deps{
		Uow:    uow,
		Blobs:  blobs,
		Queue:  q,
		Mailer: infra_provider.NewLogMailer(logger),
		Logger: logger,
	}, cfg)
	require.NoError(t, a.Bootstrap(context.Background()))
	return &Env{App: a, Fiber: webapi.SetupApp(a), Cfg: cfg}
}

// Token signs a bearer token for identity with the env's JWT settings.
func (e *Env) Token(t testing.TB, identity dto.Identity) string {
	t.Helper()
	token, err := auth.NewJWTStrategy(e.Cfg.Auth.Jwt, pkgtestutils.DiscardLogger()).GenerateToken(identity)
	require.NoError(t, err)
	return token
}

// MakeRequest sends a JSON request to the app.
func (e *Env) MakeRequest(t testing.TB, method, path, body, token string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return e.Do(t, req, token)
}

// Do sends req with an optional bearer token.
func (e *Env) Do(t testing.TB, req *http.Request, token string) *http.Response {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.Fiber.Test(req, -1)
	require.NoError(t, err)
	return resp
}
