package repository

import (
	"time"

	"github.com/amirasaad/subtracker/pkg/money"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User represents a user record in the database.
type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email           *string   `gorm:"uniqueIndex;size:255"`
	FirstName       string    `gorm:"size:100"`
	LastName        string    `gorm:"size:100"`
	ProfileImageURL string    `gorm:"size:1024"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Upload represents an uploaded statement and its analysis state.
type Upload struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	User            *User     `gorm:"constraint:OnDelete:CASCADE"`
	FileName        string    `gorm:"not null"`
	FileType        string    `gorm:"size:127;not null"`
	FileSize        int64     `gorm:"not null"`
	FilePath        string    `gorm:"not null"`
	UploadDate      time.Time `gorm:"not null;index"`
	AnalysisStatus  string    `gorm:"size:16;not null;index"`
	AnalysisResults datatypes.JSON
}

// RecurringPayment represents a detected recurring charge.
type RecurringPayment struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID    `gorm:"type:uuid;not null;index"`
	User            *User        `gorm:"constraint:OnDelete:CASCADE"`
	MerchantName    string       `gorm:"not null"`
	Amount          money.Amount `gorm:"type:numeric(12,2);not null"`
	Frequency       string       `gorm:"size:16;not null"`
	Category        string       `gorm:"size:64;not null"`
	Status          string       `gorm:"size:16;not null;index"`
	Confidence      float64      `gorm:"type:numeric(3,2);not null"`
	DetectedDate    time.Time    `gorm:"not null;index"`
	LastPaymentDate *time.Time
	NextPaymentDate *time.Time
	UploadID        *uuid.UUID `gorm:"type:uuid;index"`
	Upload          *Upload    `gorm:"constraint:OnDelete:SET NULL"`
}

// Reminder represents the reminder settings of a user. One row per user.
type Reminder struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE"`
	Frequency string    `gorm:"size:16;not null"`
	SendTime  string    `gorm:"size:16;not null"`
	IsActive  bool      `gorm:"not null"`
	LastSent  *time.Time
	CreatedAt time.Time
}

// ReminderHistory is an append-only record of a reminder send.
type ReminderHistory struct {
	ID                uuid.UUID    `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID    `gorm:"type:uuid;not null;index"`
	User              *User        `gorm:"constraint:OnDelete:CASCADE"`
	SentDate          time.Time    `gorm:"not null;index"`
	Status            string       `gorm:"size:16;not null"`
	SubscriptionCount int          `gorm:"not null"`
	TotalAmount       money.Amount `gorm:"type:numeric(12,2);not null"`
	RecipientEmail    string       `gorm:"size:255;not null"`
}

// TableName keeps the history table singular.
func (ReminderHistory) TableName() string { return "reminder_history" }

// Models lists every model for auto-migration, parents first.
func Models() []any {
	return []any{&User{}, &Upload{}, &RecurringPayment{}, &Reminder{}, &ReminderHistory{}}
}
