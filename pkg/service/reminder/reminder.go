// Package reminder manages reminder settings and sends subscription summaries.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/domain/payment"
	"github.com/amirasaad/subtracker/pkg/domain/reminder"
	"github.com/amirasaad/subtracker/pkg/domain/user"
	"github.com/amirasaad/subtracker/pkg/dto"
	"github.com/amirasaad/subtracker/pkg/money"
	"github.com/amirasaad/subtracker/pkg/provider"
	"github.com/amirasaad/subtracker/pkg/repository"
	"github.com/google/uuid"
)

// Service handles reminder settings, history and dispatch.
type Service struct {
	uow    repository.UnitOfWork
	mailer provider.Mailer
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Service.
func New(uow repository.UnitOfWork, mailer provider.Mailer, logger *slog.Logger) *Service {
	return &Service{
		uow:    uow,
		mailer: mailer,
		logger: logger.With("component", "reminders"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// DispatchReport summarizes one DispatchDue run.
type DispatchReport struct {
	Checked   int
	Delivered int
	Failed    int
}

// Get returns the user's settings, or the defaults if none were saved.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (r *reminder.Reminder, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.ReminderRepository()
		if err != nil {
			return err
		}
		r, err = repo.GetByUser(ctx, userID)
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		return reminder.Default(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Upsert saves the user's settings. A second save keeps ID and CreatedAt.
func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, in dto.ReminderSettings) (r *reminder.Reminder, err error) {
	freq, err := reminder.ParseFrequency(in.Frequency)
	if err != nil {
		return nil, err
	}
	sendTime, err := reminder.ParseSendTime(in.SendTime)
	if err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.ReminderRepository()
		if err != nil {
			return err
		}
		r, err = repo.Upsert(ctx, &reminder.Reminder{
			ID:        uuid.New(),
			UserID:    userID,
			Frequency: freq,
			SendTime:  sendTime,
			IsActive:  active,
			CreatedAt: s.now(),
		})
		return err
	})
	if err != nil {
		s.logger.Error("Saving reminder failed", "user_id", userID, "error", err)
		return nil, err
	}
	return r, nil
}

// History returns the user's sends, newest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID) (h []*reminder.History, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.ReminderHistoryRepository()
		if err != nil {
			return err
		}
		h, err = repo.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Send emails the user a summary of their active subscriptions and records
// the attempt. A mailer failure is recorded as a failed send and is not
// returned as an error.
func (s *Service) Send(ctx context.Context, userID uuid.UUID) (*reminder.History, error) {
	return s.send(ctx, userID, s.now())
}

// DispatchDue sends every active reminder that is due at now.
func (s *Service) DispatchDue(ctx context.Context, now time.Time) (DispatchReport, error) {
	var (
		report DispatchReport
		active []*reminder.Reminder
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.ReminderRepository()
		if err != nil {
			return err
		}
		active, err = repo.ListActive(ctx)
		return err
	})
	if err != nil {
		return report, err
	}

	for _, r := range active {
		report.Checked++
		if !r.IsDue(now) {
			continue
		}
		h, err := s.send(ctx, r.UserID, now)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			s.logger.Warn("Reminder skipped", "user_id", r.UserID, "error", err)
			report.Failed++
		case h.Status == reminder.HistoryDelivered:
			report.Delivered++
		default:
			report.Failed++
		}
	}
	s.logger.Info("Reminder dispatch finished",
		"checked", report.Checked, "delivered", report.Delivered, "failed", report.Failed)
	return report, nil
}

func (s *Service) send(ctx context.Context, userID uuid.UUID, at time.Time) (*reminder.History, error) {
	log := s.logger.With("user_id", userID)

	var (
		u        *user.User
		payments []*payment.RecurringPayment
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if u, err = users.Get(ctx, userID); err != nil {
			return err
		}
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
	if u.Email == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, user.ErrMissingEmail)
	}

	var (
		active []*payment.RecurringPayment
		total  = money.Zero
	)
	for _, p := range payments {
		if !p.IsActive() {
			continue
		}
		active = append(active, p)
		if p.Frequency == payment.FrequencyMonthly {
			total = total.Add(p.Amount)
		}
	}

	h := &reminder.History{
		ID:                uuid.New(),
		UserID:            userID,
		SentDate:          at.UTC(),
		Status:            reminder.HistoryDelivered,
		SubscriptionCount: len(active),
		TotalAmount:       total,
		RecipientEmail:    u.Email,
	}
	if err := s.mailer.Send(ctx, summary(u, active, total)); err != nil {
		log.Error("Reminder email failed", "error", err)
		h.Status = reminder.HistoryFailed
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		history, err := uow.ReminderHistoryRepository()
		if err != nil {
			return err
		}
		if err := history.Create(ctx, h); err != nil {
			return err
		}
		if h.Status != reminder.HistoryDelivered {
			return nil
		}
		reminders, err := uow.ReminderRepository()
		if err != nil {
			return err
		}
		// users that never saved settings still get manual sends
		if err := reminders.MarkSent(ctx, userID, h.SentDate); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		log.Error("Recording reminder failed", "error", err)
		return nil, err
	}
	log.Info("Reminder sent", "status", h.Status, "subscriptions", h.SubscriptionCount)
	return h, nil
}

func summary(u *user.User, active []*payment.RecurringPayment, monthly money.Amount) provider.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", u.DisplayName())
	fmt.Fprintf(&b, "You have %d active subscription(s).\n", len(active))
	for _, p := range active {
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", p.MerchantName, p.Amount, p.Frequency)
	}
	fmt.Fprintf(&b, "\nMonthly total: %s\n", monthly)
	return provider.Message{
		To:      u.Email,
		Subject: "Your subscription summary",
		Body:    b.String(),
	}
}
