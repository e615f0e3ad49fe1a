// Package testutils holds helpers shared by service and handler tests.
package testutils

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/subtracker/infra/filestore"
	"github.com/amirasaad/subtracker/pkg/domain/user"
	"github.com/amirasaad/subtracker/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewFileUoW returns a UnitOfWork backed by a file store in a temp dir.
func NewFileUoW(t testing.TB) repository.UnitOfWork {
	t.Helper()
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	return filestore.NewUoW(store)
}

// SeedUser stores a user with the given email and returns it.
func SeedUser(t testing.TB, uow repository.UnitOfWork, email string) *user.User {
	t.Helper()
	repo, err := uow.UserRepository()
	require.NoError(t, err)
	u := user.New(uuid.New(), email, "Test", "User", "")
	require.NoError(t, repo.Upsert(context.Background(), u))
	return u
}
