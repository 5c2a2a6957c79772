package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"backend/internal/form"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateSubmissionRequest struct {
	ServiceID string      `json:"serviceId" binding:"required"`
	FormData  form.Values `json:"formData" binding:"required"`
}

type SubmissionResult struct {
	RequestID    string `json:"request_id"`
	SubmissionID string `json:"submission_id"`
	CustomerID   string `json:"customer_id"`
}

// --- Interface ---

// SubmissionService reconciles a validated form payload into durable records:
// an upserted customer, a request with point-in-time service snapshots, and
// the stored submission payload — all inside one transaction.
type SubmissionService interface {
	CreateSubmission(ctx context.Context, req CreateSubmissionRequest) (*SubmissionResult, error)
}

type submissionService struct {
	fields      repository.FieldRepository
	services    repository.ServiceRepository
	customers   repository.CustomerRepository
	requests    repository.RequestRepository
	submissions repository.SubmissionRepository
	audits      repository.AuditRepository
	tx          repository.TransactionManager
}

func NewSubmissionService(
	fields repository.FieldRepository,
	services repository.ServiceRepository,
	customers repository.CustomerRepository,
	requests repository.RequestRepository,
	submissions repository.SubmissionRepository,
	audits repository.AuditRepository,
	tx repository.TransactionManager,
) SubmissionService {
	return &submissionService{
		fields:      fields,
		services:    services,
		customers:   customers,
		requests:    requests,
		submissions: submissions,
		audits:      audits,
		tx:          tx,
	}
}

// --- Implementation ---

func (s *submissionService) CreateSubmission(ctx context.Context, req CreateSubmissionRequest) (*SubmissionResult, error) {
	email := strings.TrimSpace(req.FormData["email"])
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidPayload)
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid serviceId", ErrInvalidPayload)
	}

	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, ErrServiceNotFound
	}

	fields, err := s.fields.ListByService(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}

	// Clients validate before sending, but the payload is re-checked here —
	// the schema is the contract, not the client.
	if errs := form.Validate(fields, req.FormData); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	// Convert to the typed payload immediately after validation; nothing
	// downstream sees stringly values.
	typed, err := form.ConvertValues(fields, req.FormData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	payload, err := typed.MarshalJSONB()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize payload: %w", err)
	}

	var result SubmissionResult
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// First submission for an unknown email creates a provisional
		// customer from whatever contact fields the payload carries.
		customer, err := s.customers.UpsertByEmail(txCtx, &model.Customer{
			Email:       email,
			Name:        strings.TrimSpace(req.FormData["name"]),
			Phone:       strings.TrimSpace(req.FormData["phone"]),
			Location:    strings.TrimSpace(req.FormData["location"]),
			Provisional: true,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert customer: %w", err)
		}

		request := &model.ServiceRequest{
			CustomerID:          customer.ID,
			ServiceID:           svc.ID,
			ServiceNameSnapshot: svc.Title,
			AmountSnapshot:      svc.Price,
			Status:              model.RequestStatusPending,
		}
		if err := s.requests.Create(txCtx, request); err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		submission := &model.Submission{
			CustomerID: customer.ID,
			RequestID:  request.ID,
			ServiceID:  svc.ID,
			FormData:   payload,
		}
		if err := s.submissions.Create(txCtx, submission); err != nil {
			return fmt.Errorf("failed to create submission: %w", err)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"service_id": svc.ID.String(),
			"request_id": request.ID.String(),
			"email":      email,
		})
		audit := model.AuditLog{
			Action:     model.ActionCreateSubmission,
			EntityID:   submission.ID.String(),
			EntityName: svc.Title,
			Details:    string(details),
		}
		if err := s.audits.Create(txCtx, &audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}

		result = SubmissionResult{
			RequestID:    request.ID.String(),
			SubmissionID: submission.ID.String(),
			CustomerID:   customer.ID.String(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}
