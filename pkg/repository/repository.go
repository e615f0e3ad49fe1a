package repository

import (
	"context"
	"time"

	"github.com/amirasaad/subtracker/pkg/domain/payment"
	"github.com/amirasaad/subtracker/pkg/domain/reminder"
	"github.com/amirasaad/subtracker/pkg/domain/upload"
	"github.com/amirasaad/subtracker/pkg/domain/user"
	"github.com/google/uuid"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Get returns domain.ErrNotFound when the user does not exist.
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	// Upsert creates the user or replaces its mutable fields, keeping CreatedAt.
	Upsert(ctx context.Context, u *user.User) error
}

// UploadRepository stores uploads and guards their status transitions.
type UploadRepository interface {
	Create(ctx context.Context, u *upload.Upload) error
	Get(ctx context.Context, id uuid.UUID) (*upload.Upload, error)
	// ListByUser returns the user's uploads, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*upload.Upload, error)
	// Transition moves an upload from one status to another atomically.
	// It fails with domain.ErrInvalidTransition if the stored status is not from
	// or the move is not allowed, and with domain.ErrNotFound if the id is unknown.
	Transition(ctx context.Context, id uuid.UUID, from, to upload.Status, results *upload.AnalysisResults) error
}

// PaymentRepository stores recurring payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *payment.RecurringPayment) error
	// ListByUser returns the user's payments, most recently detected first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*payment.RecurringPayment, error)
	ListByUpload(ctx context.Context, uploadID uuid.UUID) ([]*payment.RecurringPayment, error)
	// UpdateStatus changes the status of a payment owned by userID.
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status payment.Status) (*payment.RecurringPayment, error)
}

// ReminderRepository stores the per-user reminder settings.
type ReminderRepository interface {
	// GetByUser returns domain.ErrNotFound when the user has no reminder.
	GetByUser(ctx context.Context, userID uuid.UUID) (*reminder.Reminder, error)
	// Upsert writes the settings keyed by user, keeping ID and CreatedAt of an
	// existing row. It returns the stored reminder.
	Upsert(ctx context.Context, r *reminder.Reminder) (*reminder.Reminder, error)
	MarkSent(ctx context.Context, userID uuid.UUID, at time.Time) error
	ListActive(ctx context.Context) ([]*reminder.Reminder, error)
}

// ReminderHistoryRepository is the append-only log of reminder sends.
type ReminderHistoryRepository interface {
	Create(ctx context.Context, h *reminder.History) error
	// ListByUser returns the user's history, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*reminder.History, error)
}
