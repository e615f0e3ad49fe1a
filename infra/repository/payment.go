package repository

import (
	"context"

	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/domain/payment"
	"github.com/amirasaad/subtracker/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new PaymentRepository with the given database connection.
func NewPaymentRepository(db *gorm.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *payment.RecurringPayment) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(paymentToModel(p)).Error
	})
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*payment.RecurringPayment, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ?", userID).Order("detected_date DESC"))
}

func (r *paymentRepository) ListByUpload(ctx context.Context, uploadID uuid.UUID) ([]*payment.RecurringPayment, error) {
	return r.list(r.db.WithContext(ctx).Where("upload_id = ?", uploadID))
}

func (r *paymentRepository) UpdateStatus(
	ctx context.Context,
	userID, id uuid.UUID,
	status payment.Status,
) (*payment.RecurringPayment, error) {
	res := r.db.WithContext(ctx).
		Model(&RecurringPayment{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", string(status))
	if res.Error != nil {
		return nil, MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	var m RecurringPayment
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	}); err != nil {
		return nil, err
	}
	return paymentFromModel(&m), nil
}

func (r *paymentRepository) list(q *gorm.DB) ([]*payment.RecurringPayment, error) {
	var models []RecurringPayment
	if err := WrapError(func() error { return q.Find(&models).Error }); err != nil {
		return nil, err
	}
	out := make([]*payment.RecurringPayment, 0, len(models))
	for i := range models {
		out = append(out, paymentFromModel(&models[i]))
	}
	return out, nil
}
