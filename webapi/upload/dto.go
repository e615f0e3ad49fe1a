package upload

import (
	"time"

	"github.com/amirasaad/subtracker/pkg/domain/upload"
	"github.com/google/uuid"
)

// UploadResponse is an upload without its storage location.
type UploadResponse struct {
	ID              uuid.UUID               `json:"id"`
	UserID          uuid.UUID               `json:"userId"`
	FileName        string                  `json:"fileName"`
	FileType        string                  `json:"fileType"`
	FileSize        int64                   `json:"fileSize"`
	UploadDate      time.Time               `json:"uploadDate"`
	AnalysisStatus  upload.Status           `json:"analysisStatus"`
	AnalysisResults *upload.AnalysisResults `json:"analysisResults"`
}

// BatchResponse is returned for an accepted batch.
type BatchResponse struct {
	Uploads []UploadResponse `json:"uploads"`
	Message string           `json:"message"`
}

// ToUploadResponse maps a domain upload to its response.
func ToUploadResponse(u *upload.Upload) UploadResponse {
	return UploadResponse{
		ID:              u.ID,
		UserID:          u.UserID,
		FileName:        u.FileName,
		FileType:        u.FileType,
		FileSize:        u.FileSize,
		UploadDate:      u.UploadDate,
		AnalysisStatus:  u.AnalysisStatus,
		AnalysisResults: u.AnalysisResults,
	}
}

// ToUploadResponses maps a list, never returning nil.
func ToUploadResponses(us []*upload.Upload) []UploadResponse {
	out := make([]UploadResponse, 0, len(us))
	for _, u := range us {
		out = append(out, ToUploadResponse(u))
	}
	return out
}
