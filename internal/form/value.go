package form

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"backend/internal/model"
)

// Values is the wire payload a filled-in form produces: field name → raw
// string value. Checkboxes arrive as the literal "true" or are absent. Keys
// must be a subset of the owning schema's field names.
type Values map[string]string

// ValueKind tags a TypedValue with its converted representation.
type ValueKind string

const (
	KindText   ValueKind = "text"
	KindNumber ValueKind = "number"
	KindDate   ValueKind = "date"
	KindBool   ValueKind = "bool"
	KindFile   ValueKind = "file"
)

// TypedValue is the tagged union a raw form value is converted into at the
// submission boundary, according to the field's declared type. Only the
// variant matching Kind is meaningful.
type TypedValue struct {
	Kind   ValueKind `json:"kind"`
	Text   string    `json:"text,omitempty"`
	Number float64   `json:"number,omitempty"`
	Date   time.Time `json:"date,omitempty"`
	Bool   bool      `json:"bool,omitempty"`
	URL    string    `json:"url,omitempty"`
}

// TypedValues is the converted payload stored on a submission.
type TypedValues map[string]TypedValue

// MarshalJSONB serializes the typed payload for a jsonb column.
func (t TypedValues) MarshalJSONB() (json.RawMessage, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

// ConvertValues converts validated raw values into their declared native
// types. It runs after Validate, so a conversion failure means the raw value
// passed the name-keyed rules but cannot be represented as its declared type
// (e.g. a non-numeric NUMBER field) — that is reported as an error, not
// silently carried forward as a string. Fields absent from values are skipped.
func ConvertValues(fields []model.FormField, values Values) (TypedValues, error) {
	typed := make(TypedValues, len(values))

	for _, field := range fields {
		raw, ok := values[field.Name]
		if !ok {
			continue
		}
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" && field.FieldType != model.FieldTypeCheckbox {
			continue
		}

		switch field.FieldType {
		case model.FieldTypeNumber:
			n, err := strconv.ParseFloat(trimmed, 64)
			if err != nil {
				return nil, fmt.Errorf("field %q: %q is not a number", field.Name, trimmed)
			}
			typed[field.Name] = TypedValue{Kind: KindNumber, Number: n}
		case model.FieldTypeDate:
			d, err := time.Parse("2006-01-02", trimmed)
			if err != nil {
				return nil, fmt.Errorf("field %q: %q is not a date (want YYYY-MM-DD)", field.Name, trimmed)
			}
			typed[field.Name] = TypedValue{Kind: KindDate, Date: d}
		case model.FieldTypeCheckbox:
			// Checkboxes are "true" or absent on the wire; anything else is
			// treated as unchecked.
			typed[field.Name] = TypedValue{Kind: KindBool, Bool: trimmed == "true"}
		case model.FieldTypeFile:
			typed[field.Name] = TypedValue{Kind: KindFile, URL: trimmed}
		default:
			typed[field.Name] = TypedValue{Kind: KindText, Text: trimmed}
		}
	}

	return typed, nil
}
