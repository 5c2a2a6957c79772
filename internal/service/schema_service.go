package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

// FieldPayload is one field definition on the wire. Type is accepted
// case-insensitively and served lower-cased.
type FieldPayload struct {
	Name        string   `json:"name" binding:"required"`
	Label       string   `json:"label" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	Required    bool     `json:"required"`
	Placeholder string   `json:"placeholder"`
	Options     []string `json:"options"`
	IsFixed     bool     `json:"is_fixed"`
}

type ReplaceFieldsRequest struct {
	Fields []FieldPayload `json:"fields" binding:"required"`
}

// FormResponse is the render payload for a service's intake form.
type FormResponse struct {
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle"`
	Fields   []FieldPayload `json:"fields"`
}

// --- Interface ---

// SchemaService is the administrative editor for a service's field schema and
// the read side the form renderer consumes.
type SchemaService interface {
	GetForm(ctx context.Context, serviceID string) (*FormResponse, error)
	ListFields(ctx context.Context, serviceID string) ([]model.FormField, error)
	ReplaceFields(ctx context.Context, serviceID string, req ReplaceFieldsRequest, editorID *uuid.UUID) error
}

type schemaService struct {
	fields   repository.FieldRepository
	services repository.ServiceRepository
	audits   repository.AuditRepository
	tx       repository.TransactionManager
}

func NewSchemaService(
	fields repository.FieldRepository,
	services repository.ServiceRepository,
	audits repository.AuditRepository,
	tx repository.TransactionManager,
) SchemaService {
	return &schemaService{fields: fields, services: services, audits: audits, tx: tx}
}

// --- Implementation ---

func (s *schemaService) GetForm(ctx context.Context, serviceID string) (*FormResponse, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, ErrServiceNotFound
	}

	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, ErrServiceNotFound
	}

	fields, err := s.fields.ListByService(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load fields: %w", err)
	}

	resp := &FormResponse{
		Title:    svc.Title,
		Subtitle: svc.Subtitle,
		Fields:   make([]FieldPayload, 0, len(fields)),
	}
	for _, f := range fields {
		resp.Fields = append(resp.Fields, FieldPayload{
			Name:        f.Name,
			Label:       f.Label,
			Type:        strings.ToLower(f.FieldType),
			Required:    f.Required,
			Placeholder: f.Placeholder,
			Options:     f.Options,
			IsFixed:     f.IsFixed,
		})
	}
	return resp, nil
}

func (s *schemaService) ListFields(ctx context.Context, serviceID string) ([]model.FormField, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, ErrServiceNotFound
	}
	return s.fields.ListByService(ctx, id)
}

// ReplaceFields swaps a service's schema wholesale: prior rows are deleted
// and the new ordered list inserted with dense indices, in one transaction.
// A payload that drops a previously fixed field (Name/Email/Phone/Location
// style mandatory fields) is rejected — silently losing the email field would
// break every future submission for the service.
func (s *schemaService) ReplaceFields(ctx context.Context, serviceID string, req ReplaceFieldsRequest, editorID *uuid.UUID) error {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return ErrServiceNotFound
	}

	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return ErrServiceNotFound
	}

	fields, err := buildFields(id, req.Fields)
	if err != nil {
		return err
	}

	existing, err := s.fields.ListByService(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load current fields: %w", err)
	}
	incoming := make(map[string]bool, len(fields))
	for _, f := range fields {
		incoming[f.Name] = true
	}
	for _, f := range existing {
		if f.IsFixed && !incoming[f.Name] {
			return fmt.Errorf("%w: %s", ErrFixedFieldRemoved, f.Name)
		}
	}

	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.fields.ReplaceAll(txCtx, id, fields); err != nil {
			return fmt.Errorf("failed to replace fields: %w", err)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"service_id":  id.String(),
			"field_count": len(fields),
		})
		audit := model.AuditLog{
			UserID:     editorID,
			Action:     model.ActionReplaceFormSchema,
			EntityID:   id.String(),
			EntityName: svc.Title,
			Details:    string(details),
		}
		if err := s.audits.Create(txCtx, &audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
}

func buildFields(serviceID uuid.UUID, payload []FieldPayload) ([]model.FormField, error) {
	fields := make([]model.FormField, 0, len(payload))
	seen := make(map[string]bool, len(payload))

	for i, p := range payload {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: field %d has no name", ErrInvalidField, i)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate field name %q", ErrInvalidField, name)
		}
		seen[name] = true

		fieldType := strings.ToUpper(strings.TrimSpace(p.Type))
		if !model.ValidFieldType(fieldType) {
			return nil, fmt.Errorf("%w: unknown type %q for field %q", ErrInvalidField, p.Type, name)
		}

		fields = append(fields, model.FormField{
			ServiceID:   serviceID,
			Name:        name,
			Label:       p.Label,
			FieldType:   fieldType,
			Required:    p.Required,
			Placeholder: p.Placeholder,
			Options:     p.Options,
			SortOrder:   i,
			IsFixed:     p.IsFixed,
		})
	}
	return fields, nil
}
