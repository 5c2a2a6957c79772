package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"backend/internal/form"
	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intakeFields() []model.FormField {
	return []model.FormField{
		{Name: "name", Label: "Full Name", FieldType: model.FieldTypeText, Required: true, IsFixed: true},
		{Name: "email", Label: "Email", FieldType: model.FieldTypeText, Required: true, IsFixed: true},
		{Name: "phone", Label: "Mobile", FieldType: model.FieldTypeText, Required: true, IsFixed: true},
		{Name: "turnover", Label: "Annual Turnover", FieldType: model.FieldTypeNumber},
	}
}

func gstService() *model.Service {
	return &model.Service{
		ID:    uuid.New(),
		Title: "GST Registration",
		Slug:  "gst-registration",
		Price: decimal.NewFromInt(1499),
	}
}

func TestCreateSubmissionHappyPath(t *testing.T) {
	svc := gstService()

	var createdRequest *model.ServiceRequest
	var createdSubmission *model.Submission
	var upserted *model.Customer
	customerID := uuid.New()

	audits := &fakeAuditRepo{}
	s := NewSubmissionService(
		&fakeFieldRepo{ListByServiceFunc: func(ctx context.Context, serviceID uuid.UUID) ([]model.FormField, error) {
			return intakeFields(), nil
		}},
		&fakeServiceRepo{GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*model.Service, error) {
			require.Equal(t, svc.ID, id)
			return svc, nil
		}},
		&fakeCustomerRepo{UpsertByEmailFunc: func(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
			upserted = customer
			stored := *customer
			stored.ID = customerID
			return &stored, nil
		}},
		&fakeRequestRepo{CreateFunc: func(ctx context.Context, req *model.ServiceRequest) error {
			req.ID = uuid.New()
			createdRequest = req
			return nil
		}},
		&fakeSubmissionRepo{CreateFunc: func(ctx context.Context, sub *model.Submission) error {
			sub.ID = uuid.New()
			createdSubmission = sub
			return nil
		}},
		audits,
		&fakeTxManager{},
	)

	result, err := s.CreateSubmission(context.Background(), CreateSubmissionRequest{
		ServiceID: svc.ID.String(),
		FormData: form.Values{
			"name":     "Priya Sharma",
			"email":    "priya@example.com",
			"phone":    "9876543210",
			"turnover": "1250000",
		},
	})
	require.NoError(t, err)

	// Customer is provisional and carries the payload's contact fields.
	require.NotNil(t, upserted)
	assert.True(t, upserted.Provisional)
	assert.Equal(t, "priya@example.com", upserted.Email)
	assert.Equal(t, "Priya Sharma", upserted.Name)

	// The request starts PENDING with point-in-time snapshots of the service.
	require.NotNil(t, createdRequest)
	assert.Equal(t, model.RequestStatusPending, createdRequest.Status)
	assert.Equal(t, "GST Registration", createdRequest.ServiceNameSnapshot)
	assert.True(t, createdRequest.AmountSnapshot.Equal(decimal.NewFromInt(1499)))
	assert.Equal(t, customerID, createdRequest.CustomerID)

	// The stored payload is typed, not stringly.
	require.NotNil(t, createdSubmission)
	var payload map[string]form.TypedValue
	require.NoError(t, json.Unmarshal(createdSubmission.FormData, &payload))
	assert.Equal(t, form.KindNumber, payload["turnover"].Kind)
	assert.Equal(t, float64(1250000), payload["turnover"].Number)
	assert.Equal(t, form.KindText, payload["name"].Kind)

	assert.Equal(t, createdRequest.ID.String(), result.RequestID)
	assert.Equal(t, createdSubmission.ID.String(), result.SubmissionID)
	assert.Equal(t, customerID.String(), result.CustomerID)

	require.Len(t, audits.entries, 1)
	assert.Equal(t, model.ActionCreateSubmission, audits.entries[0].Action)
}

func TestCreateSubmissionMissingEmail(t *testing.T) {
	s := NewSubmissionService(nil, nil, nil, nil, nil, nil, &fakeTxManager{})

	_, err := s.CreateSubmission(context.Background(), CreateSubmissionRequest{
		ServiceID: uuid.NewString(),
		FormData:  form.Values{"name": "Priya"},
	})

	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestCreateSubmissionBadServiceID(t *testing.T) {
	s := NewSubmissionService(nil, nil, nil, nil, nil, nil, &fakeTxManager{})

	_, err := s.CreateSubmission(context.Background(), CreateSubmissionRequest{
		ServiceID: "not-a-uuid",
		FormData:  form.Values{"email": "priya@example.com"},
	})

	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestCreateSubmissionServiceNotFound(t *testing.T) {
	s := NewSubmissionService(
		nil,
		&fakeServiceRepo{GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*model.Service, error) {
			return nil, errors.New("record not found")
		}},
		nil, nil, nil, nil,
		&fakeTxManager{},
	)

	_, err := s.CreateSubmission(context.Background(), CreateSubmissionRequest{
		ServiceID: uuid.NewString(),
		FormData:  form.Values{"email": "priya@example.com"},
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreateSubmissionRevalidatesAgainstSchema(t *testing.T) {
	svc := gstService()

	s := NewSubmissionService(
		&fakeFieldRepo{ListByServiceFunc: func(ctx context.Context, serviceID uuid.UUID) ([]model.FormField, error) {
			return intakeFields(), nil
		}},
		&fakeServiceRepo{GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*model.Service, error) {
			return svc, nil
		}},
		nil, nil, nil, nil,
		&fakeTxManager{},
	)

	_, err := s.CreateSubmission(context.Background(), CreateSubmissionRequest{
		ServiceID: svc.ID.String(),
		FormData: form.Values{
			"email": "priya@example.com",
			"phone": "12345", // fails the mobile format rule
		},
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, form.MsgMissingRequired, vErr.Fields["name"])
	assert.Equal(t, "Enter a valid 10-digit mobile number", vErr.Fields["phone"])
}

func TestCreateSubmissionRollsBackOnSubmissionFailure(t *testing.T) {
	svc := gstService()
	boom := errors.New("insert failed")

	s := NewSubmissionService(
		&fakeFieldRepo{ListByServiceFunc: func(ctx context.Context, serviceID uuid.UUID) ([]model.FormField, error) {
			return intakeFields(), nil
		}},
		&fakeServiceRepo{GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*model.Service, error) {
			return svc, nil
		}},
		&fakeCustomerRepo{UpsertByEmailFunc: func(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
			customer.ID = uuid.New()
			return customer, nil
		}},
		&fakeRequestRepo{CreateFunc: func(ctx context.Context, req *model.ServiceRequest) error {
			req.ID = uuid.New()
			return nil
		}},
		&fakeSubmissionRepo{CreateFunc: func(ctx context.Context, sub *model.Submission) error {
			return boom
		}},
		&fakeAuditRepo{},
		&fakeTxManager{},
	)

	_, err := s.CreateSubmission(context.Background(), CreateSubmissionRequest{
		ServiceID: svc.ID.String(),
		FormData: form.Values{
			"name":  "Priya Sharma",
			"email": "priya@example.com",
			"phone": "9876543210",
		},
	})

	// The transaction callback's error surfaces so the whole pipeline rolls back.
	assert.ErrorIs(t, err, boom)
}
