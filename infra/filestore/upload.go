package filestore

import (
	"context"
	"fmt"
	"slices"

	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/domain/upload"
	"github.com/google/uuid"
)

type uploadRepository struct {
	c *collection[upload.Upload]
}

func (r *uploadRepository) Create(ctx context.Context, u *upload.Upload) error {
	return r.c.update(ctx, func(items []upload.Upload) ([]upload.Upload, error) {
		for i := range items {
			if items[i].ID == u.ID {
				return nil, domain.ErrAlreadyExists
			}
		}
		return append(items, *u), nil
	})
}

func (r *uploadRepository) Get(ctx context.Context, id uuid.UUID) (*upload.Upload, error) {
	var found *upload.Upload
	err := r.c.view(ctx, func(items []upload.Upload) error {
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

func (r *uploadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*upload.Upload, error) {
	out := []*upload.Upload{}
	err := r.c.view(ctx, func(items []upload.Upload) error {
		for i := range items {
			if items[i].UserID == userID {
				u := items[i]
				out = append(out, &u)
			}
		}
		return nil
	})
	slices.SortStableFunc(out, func(a, b *upload.Upload) int {
		return b.UploadDate.Compare(a.UploadDate)
	})
	return out, err
}

func (r *uploadRepository) Transition(
	ctx context.Context,
	id uuid.UUID,
	from, to upload.Status,
	results *upload.AnalysisResults,
) error {
	return r.c.update(ctx, func(items []upload.Upload) ([]upload.Upload, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if items[i].AnalysisStatus != from {
				return nil, fmt.Errorf("%w: upload %s is %s, expected %s",
					domain.ErrInvalidTransition, id, items[i].AnalysisStatus, from)
			}
			if err := items[i].Transition(to, results); err != nil {
				return nil, err
			}
			return items, nil
		}
		return nil, domain.ErrNotFound
	})
}
