package filestore

import (
	"context"
	"time"

	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/domain/user"
	"github.com/google/uuid"
)

type userRepository struct {
	c *collection[user.User]
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var found *user.User
	err := r.c.view(ctx, func(items []user.User) error {
		for i := range items {
			if items[i].ID == id {
				u := items[i]
				found = &u
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return found, err
}

func (r *userRepository) Upsert(ctx context.Context, u *user.User) error {
	return r.c.update(ctx, func(items []user.User) ([]user.User, error) {
		now := time.Now().UTC()
		u.UpdatedAt = now
		for i := range items {
			if items[i].ID == u.ID {
				u.CreatedAt = items[i].CreatedAt
				items[i] = *u
				return items, nil
			}
		}
		if u.CreatedAt.IsZero() {
			u.CreatedAt = now
		}
		return append(items, *u), nil
	})
}
