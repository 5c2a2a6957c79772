package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CustomerRepository upserts and reads customers keyed by email.
type CustomerRepository interface {
	// UpsertByEmail inserts the customer unless a row with the same email
	// already exists, then returns the stored row either way. The insert is a
	// single ON CONFLICT DO NOTHING against the unique email index, so two
	// concurrent first submissions cannot create duplicates.
	UpsertByEmail(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) UpsertByEmail(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	db := GetDB(ctx, r.db)

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(customer).Error; err != nil {
		return nil, err
	}

	// On conflict the insert is a no-op and the generated ID is not populated;
	// reload by the natural key to get the winning row.
	var stored model.Customer
	if err := db.First(&stored, "email = ?", customer.Email).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var customer model.Customer
	if err := GetDB(ctx, r.db).First(&customer, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}
