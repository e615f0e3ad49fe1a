package repository

import (
	"encoding/json"
	"fmt"

	"github.com/amirasaad/subtracker/pkg/domain/payment"
	"github.com/amirasaad/subtracker/pkg/domain/reminder"
	"github.com/amirasaad/subtracker/pkg/domain/upload"
	"github.com/amirasaad/subtracker/pkg/domain/user"
	"gorm.io/datatypes"
)

func userToModel(u *user.User) *User {
	m := &User{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
	if u.Email != "" {
		email := u.Email
		m.Email = &email
	}
	return m
}

func userFromModel(m *User) *user.User {
	u := &user.User{
		ID:              m.ID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		ProfileImageURL: m.ProfileImageURL,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Email != nil {
		u.Email = *m.Email
	}
	return u
}

func resultsToJSON(r *upload.AnalysisResults) (datatypes.JSON, error) {
	if r == nil {
		return nil, nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode analysis results: %w", err)
	}
	return datatypes.JSON(b), nil
}

func uploadToModel(u *upload.Upload) (*Upload, error) {
	results, err := resultsToJSON(u.AnalysisResults)
	if err != nil {
		return nil, err
	}
	return &Upload{
		ID:              u.ID,
		UserID:          u.UserID,
		FileName:        u.FileName,
		FileType:        u.FileType,
		FileSize:        u.FileSize,
		FilePath:        u.FilePath,
		UploadDate:      u.UploadDate,
		AnalysisStatus:  string(u.AnalysisStatus),
		AnalysisResults: results,
	}, nil
}

func uploadFromModel(m *Upload) (*upload.Upload, error) {
	u := &upload.Upload{
		ID:             m.ID,
		UserID:         m.UserID,
		FileName:       m.FileName,
		FileType:       m.FileType,
		FileSize:       m.FileSize,
		FilePath:       m.FilePath,
		UploadDate:     m.UploadDate,
		AnalysisStatus: upload.Status(m.AnalysisStatus),
	}
	if len(m.AnalysisResults) > 0 && string(m.AnalysisResults) != "null" {
		var r upload.AnalysisResults
		if err := json.Unmarshal(m.AnalysisResults, &r); err != nil {
			return nil, fmt.Errorf("decode analysis results of upload %s: %w", m.ID, err)
		}
		u.AnalysisResults = &r
	}
	return u, nil
}

func paymentToModel(p *payment.RecurringPayment) *RecurringPayment {
	return &RecurringPayment{
		ID:              p.ID,
		UserID:          p.UserID,
		MerchantName:    p.MerchantName,
		Amount:          p.Amount,
		Frequency:       string(p.Frequency),
		Category:        p.Category,
		Status:          string(p.Status),
		Confidence:      p.Confidence,
		DetectedDate:    p.DetectedDate,
		LastPaymentDate: p.LastPaymentDate,
		NextPaymentDate: p.NextPaymentDate,
		UploadID:        p.UploadID,
	}
}

func paymentFromModel(m *RecurringPayment) *payment.RecurringPayment {
	return &payment.RecurringPayment{
		ID:              m.ID,
		UserID:          m.UserID,
		MerchantName:    m.MerchantName,
		Amount:          m.Amount,
		Frequency:       payment.Frequency(m.Frequency),
		Category:        m.Category,
		Status:          payment.Status(m.Status),
		Confidence:      m.Confidence,
		DetectedDate:    m.DetectedDate,
		LastPaymentDate: m.LastPaymentDate,
		NextPaymentDate: m.NextPaymentDate,
		UploadID:        m.UploadID,
	}
}

func reminderToModel(r *reminder.Reminder) *Reminder {
	return &Reminder{
		ID:        r.ID,
		UserID:    r.UserID,
		Frequency: string(r.Frequency),
		SendTime:  string(r.SendTime),
		IsActive:  r.IsActive,
		LastSent:  r.LastSent,
		CreatedAt: r.CreatedAt,
	}
}

func reminderFromModel(m *Reminder) *reminder.Reminder {
	return &reminder.Reminder{
		ID:        m.ID,
		UserID:    m.UserID,
		Frequency: reminder.Frequency(m.Frequency),
		SendTime:  reminder.SendTime(m.SendTime),
		IsActive:  m.IsActive,
		LastSent:  m.LastSent,
		CreatedAt: m.CreatedAt,
	}
}

func historyToModel(h *reminder.History) *ReminderHistory {
	return &ReminderHistory{
		ID:                h.ID,
		UserID:            h.UserID,
		SentDate:          h.SentDate,
		Status:            string(h.Status),
		SubscriptionCount: h.SubscriptionCount,
		TotalAmount:       h.TotalAmount,
		RecipientEmail:    h.RecipientEmail,
	}
}

func historyFromModel(m *ReminderHistory) *reminder.History {
	return &reminder.History{
		ID:                m.ID,
		UserID:            m.UserID,
		SentDate:          m.SentDate,
		Status:            reminder.HistoryStatus(m.Status),
		SubscriptionCount: m.SubscriptionCount,
		TotalAmount:       m.TotalAmount,
		RecipientEmail:    m.RecipientEmail,
	}
}
