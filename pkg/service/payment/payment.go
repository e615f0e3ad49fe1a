// Package payment lists recurring payments and applies user status changes.
package payment

import (
	"context"
	"log/slog"

	"github.com/amirasaad/subtracker/pkg/domain/payment"
	"github.com/amirasaad/subtracker/pkg/repository"
	"github.com/google/uuid"
)

// Service handles recurring payments.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// List returns the user's payments, most recently detected first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (payments []*payment.RecurringPayment, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PaymentRepository()
		if err != nil {
			return err
		}
		payments, err = repo.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// UpdateStatus sets the status of one of the user's payments. An unknown
// status is rejected before anything is read. A payment owned by another
// user is reported as not found.
func (s *Service) UpdateStatus(
	ctx context.Context,
	userID, id uuid.UUID,
	status string,
) (p *payment.RecurringPayment, err error) {
	log := s.logger.With("user_id", userID, "payment_id", id)
	st, err := payment.ParseStatus(status)
	if err != nil {
		log.Warn("Rejected status update", "status", status)
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PaymentRepository()
		if err != nil {
			return err
		}
		p, err = repo.UpdateStatus(ctx, userID, id, st)
		return err
	})
	if err != nil {
		log.Error("UpdateStatus failed", "error", err)
		return nil, err
	}
	log.Info("Payment status updated", "status", st)
	return p, nil
}
