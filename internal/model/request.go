package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RequestStatus enum constants
const (
	RequestStatusNew        = "NEW"
	RequestStatusPending    = "PENDING"
	RequestStatusInProgress = "IN_PROGRESS"
	RequestStatusCompleted  = "COMPLETED"
	RequestStatusCancelled  = "CANCELLED"
)

// ParseRequestStatus normalizes a status string (case-insensitive input,
// upper-case canonical form) and rejects anything outside the enum.
// No transition table is enforced — any status may follow any other.
func ParseRequestStatus(s string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	switch normalized {
	case RequestStatusNew, RequestStatusPending, RequestStatusInProgress,
		RequestStatusCompleted, RequestStatusCancelled:
		return normalized, nil
	}
	return "", fmt.Errorf("invalid status %q: must be one of NEW, PENDING, IN_PROGRESS, COMPLETED, CANCELLED", s)
}

// ServiceRequest is one customer's order for one service.
// ServiceNameSnapshot and AmountSnapshot are copied from the service at
// creation time and never change if the service is edited later.
type ServiceRequest struct {
	ID                  uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer            *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ServiceID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"service_id"`
	ServiceNameSnapshot string          `gorm:"type:varchar(255);not null" json:"service_name"`
	AmountSnapshot      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Status              string          `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	DeletedAt           gorm.DeletedAt  `gorm:"index" json:"-"`
}
