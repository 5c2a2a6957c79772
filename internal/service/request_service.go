package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RequestFilter struct {
	Status string // one of the status enum or empty for all
	Page   int
	Limit  int
}

type RequestResponse struct {
	ID            string `json:"id"`
	CustomerID    string `json:"customer_id"`
	CustomerEmail string `json:"customer_email,omitempty"`
	ServiceID     string `json:"service_id"`
	ServiceName   string `json:"service_name"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

// --- Interface ---

// RequestService advances request statuses and derives revenue on completion.
type RequestService interface {
	UpdateStatus(ctx context.Context, requestID, status string, actorID *uuid.UUID) (*RequestResponse, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]RequestResponse, int64, error)
}

// statusBroadcaster is the slice of the websocket hub this service needs.
type statusBroadcaster interface {
	PublishStatus(event websocket.StatusEvent)
}

type requestService struct {
	requests repository.RequestRepository
	revenue  repository.RevenueRepository
	audits   repository.AuditRepository
	tx       repository.TransactionManager
	hub      statusBroadcaster // optional
}

func NewRequestService(
	requests repository.RequestRepository,
	revenue repository.RevenueRepository,
	audits repository.AuditRepository,
	tx repository.TransactionManager,
	hub statusBroadcaster,
) RequestService {
	return &requestService{requests: requests, revenue: revenue, audits: audits, tx: tx, hub: hub}
}

// --- Implementation ---

// UpdateStatus writes the new status unconditionally — no transition table is
// enforced, any status may follow any other. Only the transition into
// COMPLETED has a side effect: a revenue entry derived from the request's
// amount snapshot, inserted at most once per request via the
// (related_id, source) unique index.
func (s *requestService) UpdateStatus(ctx context.Context, requestID, status string, actorID *uuid.UUID) (*RequestResponse, error) {
	id, err := uuid.Parse(requestID)
	if err != nil {
		return nil, ErrRequestNotFound
	}

	normalized, err := model.ParseRequestStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to load request: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.requests.UpdateStatus(txCtx, id, normalized); err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}

		if normalized == model.RequestStatusCompleted {
			entry := &model.RevenueEntry{
				Amount:     request.AmountSnapshot,
				Label:      request.ServiceNameSnapshot,
				Source:     model.RevenueSourceRequest,
				RelatedID:  request.ID,
				CustomerID: request.CustomerID,
			}
			created, err := s.revenue.CreateIfAbsent(txCtx, entry)
			if err != nil {
				return fmt.Errorf("failed to create revenue entry: %w", err)
			}
			if created {
				details, _ := json.Marshal(map[string]interface{}{
					"request_id": request.ID.String(),
					"amount":     request.AmountSnapshot.StringFixed(2),
				})
				audit := model.AuditLog{
					UserID:     actorID,
					Action:     model.ActionCreateRevenue,
					EntityID:   entry.ID.String(),
					EntityName: request.ServiceNameSnapshot,
					Details:    string(details),
				}
				if err := s.audits.Create(txCtx, &audit); err != nil {
					return fmt.Errorf("failed to write audit log: %w", err)
				}
			}
		}

		details, _ := json.Marshal(map[string]interface{}{
			"from": request.Status,
			"to":   normalized,
		})
		audit := model.AuditLog{
			UserID:     actorID,
			Action:     model.ActionUpdateStatus,
			EntityID:   request.ID.String(),
			EntityName: request.ServiceNameSnapshot,
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

	request.Status = normalized
	if s.hub != nil {
		s.hub.PublishStatus(websocket.StatusEvent{
			RequestID: request.ID.String(),
			Status:    normalized,
			ChangedAt: time.Now().UTC(),
		})
	}

	resp := toRequestResponse(*request)
	return &resp, nil
}

func (s *requestService) ListRequests(ctx context.Context, filter RequestFilter) ([]RequestResponse, int64, error) {
	if filter.Status != "" {
		normalized, err := model.ParseRequestStatus(filter.Status)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
		}
		filter.Status = normalized
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	requests, total, err := s.requests.List(ctx, filter.Status, filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch requests: %w", err)
	}

	result := make([]RequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, toRequestResponse(r))
	}
	return result, total, nil
}

// --- Helpers ---

func toRequestResponse(r model.ServiceRequest) RequestResponse {
	resp := RequestResponse{
		ID:          r.ID.String(),
		CustomerID:  r.CustomerID.String(),
		ServiceID:   r.ServiceID.String(),
		ServiceName: r.ServiceNameSnapshot,
		Amount:      r.AmountSnapshot.StringFixed(2),
		Status:      r.Status,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
	if r.Customer != nil {
		resp.CustomerEmail = r.Customer.Email
	}
	return resp
}
