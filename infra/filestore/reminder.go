package filestore

import (
	"context"
	"slices"
	"time"

	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/domain/reminder"
	"github.com/google/uuid"
)

type reminderRepository struct {
	c *collection[reminder.Reminder]
}

func (r *reminderRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*reminder.Reminder, error) {
	var found *reminder.Reminder
	err := r.c.view(ctx, func(items []reminder.Reminder) error {
		for i := range items {
			if items[i].UserID == userID {
				rem := items[i]
				found = &rem
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return found, err
}

func (r *reminderRepository) Upsert(ctx context.Context, rem *reminder.Reminder) (*reminder.Reminder, error) {
	var stored reminder.Reminder
	err := r.c.update(ctx, func(items []reminder.Reminder) ([]reminder.Reminder, error) {
		for i := range items {
			if items[i].UserID == rem.UserID {
				items[i].Frequency = rem.Frequency
				items[i].SendTime = rem.SendTime
				items[i].IsActive = rem.IsActive
				stored = items[i]
				return items, nil
			}
		}
		stored = *rem
		if stored.ID == uuid.Nil {
			stored.ID = uuid.New()
		}
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = time.Now().UTC()
		}
		return append(items, stored), nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *reminderRepository) MarkSent(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return r.c.update(ctx, func(items []reminder.Reminder) ([]reminder.Reminder, error) {
		for i := range items {
			if items[i].UserID == userID {
				t := at.UTC()
				items[i].LastSent = &t
				return items, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

func (r *reminderRepository) ListActive(ctx context.Context) ([]*reminder.Reminder, error) {
	out := []*reminder.Reminder{}
	err := r.c.view(ctx, func(items []reminder.Reminder) error {
		for i := range items {
			if items[i].IsActive {
				rem := items[i]
				out = append(out, &rem)
			}
		}
		return nil
	})
	return out, err
}

type historyRepository struct {
	c *collection[reminder.History]
}

func (r *historyRepository) Create(ctx context.Context, h *reminder.History) error {
	return r.c.update(ctx, func(items []reminder.History) ([]reminder.History, error) {
		return append(items, *h), nil
	})
}

func (r *historyRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*reminder.History, error) {
	out := []*reminder.History{}
	err := r.c.view(ctx, func(items []reminder.History) error {
		for i := range items {
			if items[i].UserID == userID {
				h := items[i]
				out = append(out, &h)
			}
		}
		return nil
	})
	slices.SortStableFunc(out, func(a, b *reminder.History) int {
		return b.SentDate.Compare(a.SentDate)
	})
	return out, err
}
