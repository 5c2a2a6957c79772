package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FieldRepository owns the per-service form schema rows.
type FieldRepository interface {
	ListByService(ctx context.Context, serviceID uuid.UUID) ([]model.FormField, error)
	ReplaceAll(ctx context.Context, serviceID uuid.UUID, fields []model.FormField) error
}

type fieldRepository struct {
	db *gorm.DB
}

func NewFieldRepository(db *gorm.DB) FieldRepository {
	return &fieldRepository{db: db}
}

func (r *fieldRepository) ListByService(ctx context.Context, serviceID uuid.UUID) ([]model.FormField, error) {
	var fields []model.FormField
	if err := GetDB(ctx, r.db).
		Where("service_id = ?", serviceID).
		Order("sort_order ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

// ReplaceAll is destructive-and-recreate: every prior field row for the
// service is hard-deleted and the new ordered list inserted with dense
// sort_order indices. Row IDs do not survive a save. Callers are expected to
// run this inside a transaction via TransactionManager.
func (r *fieldRepository) ReplaceAll(ctx context.Context, serviceID uuid.UUID, fields []model.FormField) error {
	db := GetDB(ctx, r.db)

	if err := db.Unscoped().Where("service_id = ?", serviceID).Delete(&model.FormField{}).Error; err != nil {
		return err
	}

	for i := range fields {
		fields[i].ID = uuid.Nil
		fields[i].ServiceID = serviceID
		fields[i].SortOrder = i
	}

	if len(fields) == 0 {
		return nil
	}
	return db.Create(&fields).Error
}
