package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionRepository stores realized form payloads.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.Submission) error
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]model.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, sub *model.Submission) error {
	return GetDB(ctx, r.db).Create(sub).Error
}

func (r *submissionRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]model.Submission, error) {
	var subs []model.Submission
	if err := GetDB(ctx, r.db).
		Where("request_id = ?", requestID).
		Order("submitted_at ASC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
