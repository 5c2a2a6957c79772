package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

// Hand-rolled repository fakes: each method delegates to a settable Func
// field, so every test scripts exactly the calls it expects.

type fakeTxManager struct{}

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeFieldRepo struct {
	ListByServiceFunc func(ctx context.Context, serviceID uuid.UUID) ([]model.FormField, error)
	ReplaceAllFunc    func(ctx context.Context, serviceID uuid.UUID, fields []model.FormField) error
}

func (f *fakeFieldRepo) ListByService(ctx context.Context, serviceID uuid.UUID) ([]model.FormField, error) {
	return f.ListByServiceFunc(ctx, serviceID)
}

func (f *fakeFieldRepo) ReplaceAll(ctx context.Context, serviceID uuid.UUID, fields []model.FormField) error {
	return f.ReplaceAllFunc(ctx, serviceID, fields)
}

type fakeServiceRepo struct {
	CreateFunc    func(ctx context.Context, svc *model.Service) error
	GetByIDFunc   func(ctx context.Context, id uuid.UUID) (*model.Service, error)
	GetBySlugFunc func(ctx context.Context, slug string) (*model.Service, error)
	ListFunc      func(ctx context.Context, page, limit int) ([]model.Service, int64, error)
}

func (f *fakeServiceRepo) Create(ctx context.Context, svc *model.Service) error {
	return f.CreateFunc(ctx, svc)
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	return f.GetByIDFunc(ctx, id)
}

func (f *fakeServiceRepo) GetBySlug(ctx context.Context, slug string) (*model.Service, error) {
	return f.GetBySlugFunc(ctx, slug)
}

func (f *fakeServiceRepo) List(ctx context.Context, page, limit int) ([]model.Service, int64, error) {
	return f.ListFunc(ctx, page, limit)
}

type fakeCustomerRepo struct {
	UpsertByEmailFunc func(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*model.Customer, error)
}

func (f *fakeCustomerRepo) UpsertByEmail(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	return f.UpsertByEmailFunc(ctx, customer)
}

func (f *fakeCustomerRepo) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return f.GetByEmailFunc(ctx, email)
}

type fakeRequestRepo struct {
	CreateFunc       func(ctx context.Context, req *model.ServiceRequest) error
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*model.ServiceRequest, error)
	ListFunc         func(ctx context.Context, status string, page, limit int) ([]model.ServiceRequest, int64, error)
	UpdateStatusFunc func(ctx context.Context, id uuid.UUID, status string) error
}

func (f *fakeRequestRepo) Create(ctx context.Context, req *model.ServiceRequest) error {
	return f.CreateFunc(ctx, req)
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceRequest, error) {
	return f.GetByIDFunc(ctx, id)
}

func (f *fakeRequestRepo) List(ctx context.Context, status string, page, limit int) ([]model.ServiceRequest, int64, error) {
	return f.ListFunc(ctx, status, page, limit)
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return f.UpdateStatusFunc(ctx, id, status)
}

type fakeSubmissionRepo struct {
	CreateFunc        func(ctx context.Context, sub *model.Submission) error
	ListByRequestFunc func(ctx context.Context, requestID uuid.UUID) ([]model.Submission, error)
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	return f.CreateFunc(ctx, sub)
}

func (f *fakeSubmissionRepo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]model.Submission, error) {
	return f.ListByRequestFunc(ctx, requestID)
}

type fakeRevenueRepo struct {
	CreateIfAbsentFunc func(ctx context.Context, entry *model.RevenueEntry) (bool, error)
	ListFunc           func(ctx context.Context, page, limit int) ([]model.RevenueEntry, int64, error)
	SummaryFunc        func(ctx context.Context, groupBy, startDate, endDate string) ([]repository.RevenueSummaryRow, error)
}

func (f *fakeRevenueRepo) CreateIfAbsent(ctx context.Context, entry *model.RevenueEntry) (bool, error) {
	return f.CreateIfAbsentFunc(ctx, entry)
}

func (f *fakeRevenueRepo) List(ctx context.Context, page, limit int) ([]model.RevenueEntry, int64, error) {
	return f.ListFunc(ctx, page, limit)
}

func (f *fakeRevenueRepo) Summary(ctx context.Context, groupBy, startDate, endDate string) ([]repository.RevenueSummaryRow, error) {
	return f.SummaryFunc(ctx, groupBy, startDate, endDate)
}

// fakeAuditRepo records every entry instead of delegating; audit assertions
// only ever count and inspect.
type fakeAuditRepo struct {
	entries []model.AuditLog
}

func (f *fakeAuditRepo) Create(ctx context.Context, entry *model.AuditLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}
