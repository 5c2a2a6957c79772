package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Submission stores the realized form payload for one request. The payload is
// kept as a typed jsonb document — values are converted to their declared
// field types before they reach this boundary, never carried as raw strings.
type Submission struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	RequestID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"request_id"`
	ServiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"service_id"`
	FormData    json.RawMessage `gorm:"type:jsonb;not null;default:'{}'" json:"form_data"`
	SubmittedAt time.Time       `gorm:"autoCreateTime" json:"submitted_at"`
}
