package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceRepository handles catalog reads and writes.
type ServiceRepository interface {
	Create(ctx context.Context, svc *model.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Service, error)
	GetBySlug(ctx context.Context, slug string) (*model.Service, error)
	List(ctx context.Context, page, limit int) ([]model.Service, int64, error)
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, svc *model.Service) error {
	// services.slug carries a unique index — a duplicate slug fails the insert
	// atomically instead of racing a pre-check.
	return GetDB(ctx, r.db).Create(svc).Error
}

func (r *serviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	var svc model.Service
	if err := GetDB(ctx, r.db).First(&svc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) GetBySlug(ctx context.Context, slug string) (*model.Service, error) {
	var svc model.Service
	if err := GetDB(ctx, r.db).First(&svc, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) List(ctx context.Context, page, limit int) ([]model.Service, int64, error) {
	var services []model.Service
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Service{}).Where("is_active = ?", true).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Where("is_active = ?", true).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&services).Error; err != nil {
		return nil, 0, err
	}

	return services, total, nil
}
