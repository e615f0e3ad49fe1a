package repository

import (
	"context"
	"fmt"

	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/domain/upload"
	"github.com/amirasaad/subtracker/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type uploadRepository struct {
	db *gorm.DB
}

// NewUploadRepository creates a new UploadRepository with the given database connection.
func NewUploadRepository(db *gorm.DB) repository.UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(ctx context.Context, u *upload.Upload) error {
	m, err := uploadToModel(u)
	if err != nil {
		return err
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(m).Error
	})
}

func (r *uploadRepository) Get(ctx context.Context, id uuid.UUID) (*upload.Upload, error) {
	var m Upload
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	}); err != nil {
		return nil, err
	}
	return uploadFromModel(&m)
}

func (r *uploadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*upload.Upload, error) {
	var models []Upload
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("upload_date DESC").
			Find(&models).Error
	}); err != nil {
		return nil, err
	}
	out := make([]*upload.Upload, 0, len(models))
	for i := range models {
		u, err := uploadFromModel(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// Transition is a compare-and-set on analysis_status so concurrent workers
// cannot move the same upload twice.
func (r *uploadRepository) Transition(
	ctx context.Context,
	id uuid.UUID,
	from, to upload.Status,
	results *upload.AnalysisResults,
) error {
	if !upload.CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	updates := map[string]any{"analysis_status": string(to)}
	if to == upload.StatusCompleted {
		js, err := resultsToJSON(results)
		if err != nil {
			return err
		}
		updates["analysis_results"] = js
	}
	res := r.db.WithContext(ctx).
		Model(&Upload{}).
		Where("id = ? AND analysis_status = ?", id, string(from)).
		Updates(updates)
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&Upload{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	if count == 0 {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: upload %s is not %s", domain.ErrInvalidTransition, id, from)
}
