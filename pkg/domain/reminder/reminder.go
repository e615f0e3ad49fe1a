// Package reminder holds per-user reminder settings and the send history.
package reminder

import (
	"fmt"
	"time"

	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/money"
	"github.com/google/uuid"
)

// Frequency is how often a reminder is sent.
type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiWeekly  Frequency = "bi-weekly"
	FrequencyQuarterly Frequency = "quarterly"
)

// SendTime is the day of the month a monthly or quarterly reminder goes out.
type SendTime string

const (
	SendTimeFirstDay SendTime = "first_day"
	SendTimeLastDay  SendTime = "last_day"
	SendTime15th     SendTime = "15th"
)

// ParseFrequency validates s against the known reminder frequencies.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(s); f {
	case FrequencyMonthly, FrequencyWeekly, FrequencyBiWeekly, FrequencyQuarterly:
		return f, nil
	default:
		return "", fmt.Errorf("%w: invalid reminder frequency %q", domain.ErrValidation, s)
	}
}

// ParseSendTime validates s against the known send times.
func ParseSendTime(s string) (SendTime, error) {
	switch st := SendTime(s); st {
	case SendTimeFirstDay, SendTimeLastDay, SendTime15th:
		return st, nil
	default:
		return "", fmt.Errorf("%w: invalid reminder send time %q", domain.ErrValidation, s)
	}
}

// Reminder is the single reminder configuration of a user.
type Reminder struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	Frequency Frequency  `json:"frequency"`
	SendTime  SendTime   `json:"sendTime"`
	IsActive  bool       `json:"isActive"`
	LastSent  *time.Time `json:"lastSent,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Default returns the settings reported for users that never saved any.
// The returned value has no ID and is not persisted.
func Default(userID uuid.UUID) *Reminder {
	return &Reminder{
		UserID:    userID,
		Frequency: FrequencyMonthly,
		SendTime:  SendTimeFirstDay,
		IsActive:  true,
	}
}

// quarterStarts are the months quarterly reminders are sent in.
var quarterStarts = map[time.Month]bool{
	time.January: true,
	time.April:   true,
	time.July:    true,
	time.October: true,
}

// IsDue reports whether the reminder should be sent at now.
func (r *Reminder) IsDue(now time.Time) bool {
	if !r.IsActive {
		return false
	}
	now = now.UTC()
	switch r.Frequency {
	case FrequencyWeekly:
		return r.elapsed(now, 7*24*time.Hour)
	case FrequencyBiWeekly:
		return r.elapsed(now, 14*24*time.Hour)
	case FrequencyQuarterly:
		if !quarterStarts[now.Month()] {
			return false
		}
		return r.onSendDay(now)
	case FrequencyMonthly:
		return r.onSendDay(now)
	default:
		return false
	}
}

func (r *Reminder) elapsed(now time.Time, d time.Duration) bool {
	if r.LastSent == nil {
		return true
	}
	return now.Sub(r.LastSent.UTC()) >= d
}

func (r *Reminder) onSendDay(now time.Time) bool {
	if now.Day() != sendDay(r.SendTime, now) {
		return false
	}
	if r.LastSent == nil {
		return true
	}
	y1, m1, d1 := r.LastSent.UTC().Date()
	y2, m2, d2 := now.Date()
	return y1 != y2 || m1 != m2 || d1 != d2
}

func sendDay(st SendTime, now time.Time) int {
	switch st {
	case SendTime15th:
		return 15
	case SendTimeLastDay:
		// day 0 of next month is the last day of this one
		return time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	default:
		return 1
	}
}

// HistoryStatus is the delivery outcome of a sent reminder.
type HistoryStatus string

const (
	HistoryDelivered HistoryStatus = "delivered"
	HistoryFailed    HistoryStatus = "failed"
	HistoryBounced   HistoryStatus = "bounced"
)

// History records one reminder send attempt. Records are append-only.
type History struct {
	ID                uuid.UUID     `json:"id"`
	UserID            uuid.UUID     `json:"userId"`
	SentDate          time.Time     `json:"sentDate"`
	Status            HistoryStatus `json:"status"`
	SubscriptionCount int           `json:"subscriptionCount"`
	TotalAmount       money.Amount  `json:"totalAmount"`
	RecipientEmail    string        `json:"recipientEmail"`
}
