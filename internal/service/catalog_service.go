package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateServiceRequest struct {
	Title       string `json:"title" binding:"required"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"`
}

// --- Interface ---

// CatalogService owns the offered-services catalog.
type CatalogService interface {
	CreateService(ctx context.Context, req CreateServiceRequest, creatorID *uuid.UUID) (*model.Service, error)
	GetService(ctx context.Context, id string) (*model.Service, error)
	ListServices(ctx context.Context, page, limit int) ([]model.Service, int64, error)
}

type catalogService struct {
	services repository.ServiceRepository
	audits   repository.AuditRepository
	tx       repository.TransactionManager
}

func NewCatalogService(
	services repository.ServiceRepository,
	audits repository.AuditRepository,
	tx repository.TransactionManager,
) CatalogService {
	return &catalogService{services: services, audits: audits, tx: tx}
}

// --- Implementation ---

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the title and collapses everything non-alphanumeric to
// single hyphens. Uniqueness is enforced by the slug's unique index at insert
// time, not by a pre-check loop.
func Slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

func (s *catalogService) CreateService(ctx context.Context, req CreateServiceRequest, creatorID *uuid.UUID) (*model.Service, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid price %q", ErrInvalidPayload, req.Price)
	}

	svc := &model.Service{
		Title:       req.Title,
		Slug:        Slugify(req.Title),
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Price:       price,
		IsActive:    true,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.services.Create(txCtx, svc); err != nil {
			return fmt.Errorf("failed to create service: %w", err)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"slug":  svc.Slug,
			"price": price.StringFixed(2),
		})
		audit := model.AuditLog{
			UserID:     creatorID,
			Action:     model.ActionCreateService,
			EntityID:   svc.ID.String(),
			EntityName: svc.Title,
			Details:    string(details),
		}
		if err := s.audits.Create(txCtx, &audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return svc, nil
}

func (s *catalogService) GetService(ctx context.Context, id string) (*model.Service, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrServiceNotFound
	}
	svc, err := s.services.GetByID(ctx, parsed)
	if err != nil {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

func (s *catalogService) ListServices(ctx context.Context, page, limit int) ([]model.Service, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.services.List(ctx, page, limit)
}
