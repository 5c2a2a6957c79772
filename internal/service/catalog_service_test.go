package service

import (
	"context"
	"testing"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"GST Registration", "gst-registration"},
		{"Trademark (Class 9)", "trademark-class-9"},
		{"  ITR Filing  ", "itr-filing"},
		{"Pvt. Ltd. Incorporation", "pvt-ltd-incorporation"},
		{"FSSAI", "fssai"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.title), "title %q", tc.title)
	}
}

func TestCreateServiceSetsSlugAndAudit(t *testing.T) {
	var created *model.Service
	audits := &fakeAuditRepo{}
	s := NewCatalogService(
		&fakeServiceRepo{CreateFunc: func(ctx context.Context, svc *model.Service) error {
			svc.ID = uuid.New()
			created = svc
			return nil
		}},
		audits,
		&fakeTxManager{},
	)

	svc, err := s.CreateService(context.Background(), CreateServiceRequest{
		Title: "GST Registration",
		Price: "1499.00",
	}, nil)
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, "gst-registration", created.Slug)
	assert.True(t, created.Price.Equal(decimal.NewFromInt(1499)))
	assert.True(t, created.IsActive)
	assert.Equal(t, created.ID, svc.ID)

	require.Len(t, audits.entries, 1)
	assert.Equal(t, model.ActionCreateService, audits.entries[0].Action)
}

func TestCreateServiceRejectsBadPrice(t *testing.T) {
	s := NewCatalogService(&fakeServiceRepo{}, &fakeAuditRepo{}, &fakeTxManager{})

	_, err := s.CreateService(context.Background(), CreateServiceRequest{
		Title: "GST Registration",
		Price: "fifteen hundred",
	}, nil)

	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestGetServiceBadID(t *testing.T) {
	s := NewCatalogService(&fakeServiceRepo{}, &fakeAuditRepo{}, &fakeTxManager{})

	_, err := s.GetService(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestRevenueSummaryRejectsUnknownGroupBy(t *testing.T) {
	s := NewRevenueService(&fakeRevenueRepo{})

	_, err := s.Summary(context.Background(), "year", "", "")
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
