package filestore

import (
	"context"
	"slices"

	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/domain/payment"
	"github.com/google/uuid"
)

type paymentRepository struct {
	c *collection[payment.RecurringPayment]
}

func (r *paymentRepository) Create(ctx context.Context, p *payment.RecurringPayment) error {
	return r.c.update(ctx, func(items []payment.RecurringPayment) ([]payment.RecurringPayment, error) {
		return append(items, *p), nil
	})
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*payment.RecurringPayment, error) {
	out, err := r.filter(ctx, func(p *payment.RecurringPayment) bool { return p.UserID == userID })
	slices.SortStableFunc(out, func(a, b *payment.RecurringPayment) int {
		return b.DetectedDate.Compare(a.DetectedDate)
	})
	return out, err
}

func (r *paymentRepository) ListByUpload(ctx context.Context, uploadID uuid.UUID) ([]*payment.RecurringPayment, error) {
	return r.filter(ctx, func(p *payment.RecurringPayment) bool {
		return p.UploadID != nil && *p.UploadID == uploadID
	})
}

func (r *paymentRepository) UpdateStatus(
	ctx context.Context,
	userID, id uuid.UUID,
	status payment.Status,
) (*payment.RecurringPayment, error) {
	var updated *payment.RecurringPayment
	err := r.c.update(ctx, func(items []payment.RecurringPayment) ([]payment.RecurringPayment, error) {
		for i := range items {
			if items[i].ID == id && items[i].UserID == userID {
				items[i].Status = status
				p := items[i]
				updated = &p
				return items, nil
			}
		}
		return nil, domain.ErrNotFound
	})
	return updated, err
}

func (r *paymentRepository) filter(
	ctx context.Context,
	keep func(p *payment.RecurringPayment) bool,
) ([]*payment.RecurringPayment, error) {
	out := []*payment.RecurringPayment{}
	err := r.c.view(ctx, func(items []payment.RecurringPayment) error {
		for i := range items {
			if keep(&items[i]) {
				p := items[i]
				out = append(out, &p)
			}
		}
		return nil
	})
	return out, err
}
