package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is identified by email — the natural key the reconciliation
// pipeline upserts on. A customer created implicitly from a first submission
// carries Provisional=true until they complete a real account.
type Customer struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email       string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name        string         `gorm:"type:varchar(255)" json:"name"`
	Phone       string         `gorm:"type:varchar(20)" json:"phone"`
	Location    string         `gorm:"type:varchar(255)" json:"location"`
	Provisional bool           `gorm:"default:false" json:"provisional"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
