package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/repository"
)

// --- DTOs ---

type RevenueEntryResponse struct {
	ID         string `json:"id"`
	Amount     string `json:"amount"`
	Label      string `json:"label"`
	Source     string `json:"source"`
	RelatedID  string `json:"related_id"`
	CustomerID string `json:"customer_id"`
	CreatedAt  string `json:"created_at"`
}

// --- Interface ---

// RevenueService reads derived revenue for the admin dashboard.
type RevenueService interface {
	ListEntries(ctx context.Context, page, limit int) ([]RevenueEntryResponse, int64, error)
	Summary(ctx context.Context, groupBy, startDate, endDate string) ([]repository.RevenueSummaryRow, error)
}

type revenueService struct {
	revenue repository.RevenueRepository
}

func NewRevenueService(revenue repository.RevenueRepository) RevenueService {
	return &revenueService{revenue: revenue}
}

// --- Implementation ---

func (s *revenueService) ListEntries(ctx context.Context, page, limit int) ([]RevenueEntryResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	entries, total, err := s.revenue.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch revenue entries: %w", err)
	}

	result := make([]RevenueEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, RevenueEntryResponse{
			ID:         e.ID.String(),
			Amount:     e.Amount.StringFixed(2),
			Label:      e.Label,
			Source:     e.Source,
			RelatedID:  e.RelatedID.String(),
			CustomerID: e.CustomerID.String(),
			CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, total, nil
}

func (s *revenueService) Summary(ctx context.Context, groupBy, startDate, endDate string) ([]repository.RevenueSummaryRow, error) {
	switch groupBy {
	case "day", "week", "month":
	default:
		return nil, fmt.Errorf("%w: group_by must be day, week or month", ErrInvalidPayload)
	}

	if startDate == "" {
		startDate = time.Now().UTC().AddDate(0, -1, 0).Format("2006-01-02")
	}
	if endDate == "" {
		endDate = time.Now().UTC().Format("2006-01-02")
	}

	return s.revenue.Summary(ctx, groupBy, startDate, endDate)
}
