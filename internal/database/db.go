package database

import (
	"log"

	"backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models. The unique indexes on customers.email,
	// services.slug and revenue_entries (related_id, source) are part of the
	// consistency model, not just lookups — inserts rely on them.
	err = db.AutoMigrate(
		&model.User{},
		&model.Service{},
		&model.FormField{},
		&model.Customer{},
		&model.ServiceRequest{},
		&model.Submission{},
		&model.RevenueEntry{},
		&model.AuditLog{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
