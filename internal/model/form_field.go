package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FieldType enum constants. Stored upper-case, lower-cased at the API boundary.
const (
	FieldTypeText     = "TEXT"
	FieldTypeTextarea = "TEXTAREA"
	FieldTypeNumber   = "NUMBER"
	FieldTypeDate     = "DATE"
	FieldTypeDropdown = "DROPDOWN"
	FieldTypeCheckbox = "CHECKBOX"
	FieldTypeFile     = "FILE"
)

// ValidFieldType reports whether t is a known field type.
func ValidFieldType(t string) bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeDate,
		FieldTypeDropdown, FieldTypeCheckbox, FieldTypeFile:
		return true
	}
	return false
}

// StringList is a []string persisted as a jsonb column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

// FormField is one field definition in a service's intake form schema.
// Name doubles as the display key and the payload key; it is unique within
// the owning service. SortOrder is a dense 0..n-1 index assigned on every
// save, so field IDs must never be cached across a schema replace.
type FormField struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ServiceID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_service_field_name" json:"service_id"`
	Name        string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_service_field_name" json:"name"`
	Label       string     `gorm:"type:varchar(255);not null" json:"label"`
	FieldType   string     `gorm:"type:varchar(20);not null" json:"type"` // TEXT, TEXTAREA, NUMBER, DATE, DROPDOWN, CHECKBOX, FILE
	Required    bool       `gorm:"default:false" json:"required"`
	Placeholder string     `gorm:"type:varchar(255)" json:"placeholder"`
	Options     StringList `gorm:"type:jsonb;not null;default:'[]'" json:"options"` // DROPDOWN only
	SortOrder   int        `gorm:"not null;default:0" json:"order"`
	IsFixed     bool       `gorm:"default:false" json:"is_fixed"` // protected from deletion in the editor
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
