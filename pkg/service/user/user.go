// Package user provides business logic for the signed-in user's profile.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/domain/user"
	"github.com/amirasaad/subtracker/pkg/dto"
	"github.com/amirasaad/subtracker/pkg/repository"
	"github.com/google/uuid"
)

// subjectNamespace derives stable user ids from non-UUID identity subjects.
var subjectNamespace = uuid.MustParse("6f1c1a9e-3b8e-4f57-9a4c-2f0d6c1b7e21")

// Service provides user operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// IDFromSubject maps an identity subject to a user id. UUID subjects are used
// as-is; anything else gets a name-based UUID.
func IDFromSubject(subject string) (uuid.UUID, error) {
	if subject == "" {
		return uuid.Nil, fmt.Errorf("%w: empty subject", domain.ErrUnauthorized)
	}
	if id, err := uuid.Parse(subject); err == nil {
		return id, nil
	}
	return uuid.NewSHA1(subjectNamespace, []byte(subject)), nil
}

// GetCurrentUser returns the user with the given id.
func (s *Service) GetCurrentUser(ctx context.Context, userID uuid.UUID) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// EnsureUser creates the user described by identity or refreshes its stored
// claims. CreatedAt of an existing user is kept.
func (s *Service) EnsureUser(ctx context.Context, identity dto.Identity) (u *user.User, err error) {
	id, err := IDFromSubject(identity.UserID)
	if err != nil {
		return nil, err
	}
	logger := s.logger.With("user_id", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		claims := user.User{
			Email:           identity.Email,
			FirstName:       identity.FirstName,
			LastName:        identity.LastName,
			ProfileImageURL: identity.ProfileImageURL,
		}
		existing, err := repo.Get(ctx, id)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			u = user.New(id, identity.Email, identity.FirstName, identity.LastName, identity.ProfileImageURL)
			logger.Info("Creating user on first login")
		case err != nil:
			return err
		default:
			existing.Merge(claims)
			u = existing
		}
		return repo.Upsert(ctx, u)
	})
	if err != nil {
		logger.Error("EnsureUser failed", "error", err)
		return nil, err
	}
	return u, nil
}

// UpdateProfile applies the non-nil fields of update.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, update dto.ProfileUpdate) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, userID)
		if err != nil {
			return err
		}
		if update.FirstName != nil {
			u.FirstName = *update.FirstName
		}
		if update.LastName != nil {
			u.LastName = *update.LastName
		}
		if update.ProfileImageURL != nil {
			u.ProfileImageURL = *update.ProfileImageURL
		}
		return repo.Upsert(ctx, u)
	})
	if err != nil {
		s.logger.Error("UpdateProfile failed", "user_id", userID, "error", err)
		return nil, err
	}
	return u, nil
}
