package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RevenueSource enum constants
const (
	RevenueSourceRequest = "REQUEST"
)

// RevenueEntry is the derived financial record created when a request first
// transitions to COMPLETED. The composite unique index on (related_id, source)
// is what makes the derivation idempotent under concurrent status updates:
// duplicates are rejected by the store, not by a read-then-write check.
type RevenueEntry struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Label      string          `gorm:"type:varchar(255);not null" json:"label"`
	Source     string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_revenue_related_source" json:"source"`
	RelatedID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_revenue_related_source" json:"related_id"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`
}
