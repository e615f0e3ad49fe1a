package repository

import (
	"context"
	"time"

	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/domain/reminder"
	"github.com/amirasaad/subtracker/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new ReminderRepository with the given database connection.
func NewReminderRepository(db *gorm.DB) repository.ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*reminder.Reminder, error) {
	var m Reminder
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	}); err != nil {
		return nil, err
	}
	return reminderFromModel(&m), nil
}

// Upsert inserts or, on a user_id conflict, updates only the settings
// columns so id and created_at of the existing row survive.
func (r *reminderRepository) Upsert(ctx context.Context, rem *reminder.Reminder) (*reminder.Reminder, error) {
	m := reminderToModel(rem)
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"frequency", "send_time", "is_active"}),
		}).Create(m).Error
	}); err != nil {
		return nil, err
	}
	return r.GetByUser(ctx, rem.UserID)
}

func (r *reminderRepository) MarkSent(ctx context.Context, userID uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&Reminder{}).
		Where("user_id = ?", userID).
		Update("last_sent", at.UTC())
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reminderRepository) ListActive(ctx context.Context) ([]*reminder.Reminder, error) {
	var models []Reminder
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Where("is_active = ?", true).Find(&models).Error
	}); err != nil {
		return nil, err
	}
	out := make([]*reminder.Reminder, 0, len(models))
	for i := range models {
		out = append(out, reminderFromModel(&models[i]))
	}
	return out, nil
}

type historyRepository struct {
	db *gorm.DB
}

// NewReminderHistoryRepository creates a new ReminderHistoryRepository with the given database connection.
func NewReminderHistoryRepository(db *gorm.DB) repository.ReminderHistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(ctx context.Context, h *reminder.History) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(historyToModel(h)).Error
	})
}

func (r *historyRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*reminder.History, error) {
	var models []ReminderHistory
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("sent_date DESC").
			Find(&models).Error
	}); err != nil {
		return nil, err
	}
	out := make([]*reminder.History, 0, len(models))
	for i := range models {
		out = append(out, historyFromModel(&models[i]))
	}
	return out, nil
}
