// Package upload holds the Upload aggregate and its analysis state machine.
package upload

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/domain/payment"
	"github.com/amirasaad/subtracker/pkg/money"
	"github.com/google/uuid"
)

// Status is the analysis state of an upload.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// transitions lists the only allowed moves; anything else is rejected.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing},
	StatusProcessing: {StatusCompleted, StatusFailed},
}

// CanTransition reports whether from -> to is allowed.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// AllowedExtensions holds the file extensions accepted by intake.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedFile checks the extension of name against AllowedExtensions.
func IsAllowedFile(name string) bool {
	_, ok := AllowedExtensions[NormalizeExt(filepath.Ext(name))]
	return ok
}

// DetectedPayment is one recurring charge found by analysis.
type DetectedPayment struct {
	MerchantName string            `json:"merchantName"`
	Amount       money.Amount      `json:"amount"`
	Frequency    payment.Frequency `json:"frequency"`
	Category     string            `json:"category"`
	Confidence   float64           `json:"confidence"`
}

// AnalysisResults is attached to an upload once analysis completes.
type AnalysisResults struct {
	TotalRecurringPayments int               `json:"totalRecurringPayments"`
	MonthlyTotal           money.Amount      `json:"monthlyTotal"`
	DetectedPayments       []DetectedPayment `json:"detectedPayments"`
}

// Upload is a user-submitted file and its analysis lifecycle.
type Upload struct {
	ID              uuid.UUID        `json:"id"`
	UserID          uuid.UUID        `json:"userId"`
	FileName        string           `json:"fileName"`
	FileType        string           `json:"fileType"`
	FileSize        int64            `json:"fileSize"`
	FilePath        string           `json:"filePath"`
	UploadDate      time.Time        `json:"uploadDate"`
	AnalysisStatus  Status           `json:"analysisStatus"`
	AnalysisResults *AnalysisResults `json:"analysisResults,omitempty"`
}

// New creates a pending upload.
func New(userID uuid.UUID, fileName, fileType, filePath string, size int64) *Upload {
	return &Upload{
		ID:             uuid.New(),
		UserID:         userID,
		FileName:       fileName,
		FileType:       fileType,
		FileSize:       size,
		FilePath:       filePath,
		UploadDate:     time.Now().UTC(),
		AnalysisStatus: StatusPending,
	}
}

// Transition moves the upload to the next status. Results are kept only
// when the target is completed.
func (u *Upload) Transition(to Status, results *AnalysisResults) error {
	if !CanTransition(u.AnalysisStatus, to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, u.AnalysisStatus, to)
	}
	u.AnalysisStatus = to
	if to == StatusCompleted {
		u.AnalysisResults = results
	}
	return nil
}
