// Package form implements the schema-driven form engine: per-field validation
// rules, typed value conversion, and a submit-guarded form session.
package form

import (
	"regexp"
	"strings"

	"backend/internal/model"
)

// MsgMissingRequired is the message for a required field left empty.
const MsgMissingRequired = "This field is required"

// Format rules are keyed by field *name*, not type — schema authors use these
// identifiers conventionally (email, phone, pan, pinCode).
var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	panPattern   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	pinPattern   = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

var formatRules = map[string]func(string) string{
	"email": func(v string) string {
		if !emailPattern.MatchString(v) {
			return "Enter a valid email address"
		}
		return ""
	},
	"phone": func(v string) string {
		if !phonePattern.MatchString(v) {
			return "Enter a valid 10-digit mobile number"
		}
		return ""
	},
	"pan": func(v string) string {
		// PAN is case-normalized before matching
		if !panPattern.MatchString(strings.ToUpper(v)) {
			return "Enter a valid PAN (e.g. ABCDE1234F)"
		}
		return ""
	},
	"pinCode": func(v string) string {
		if !pinPattern.MatchString(v) {
			return "Enter a valid 6-digit PIN code"
		}
		return ""
	},
}

// ValidateField returns the first failing rule's message for one field, or ""
// when the value passes. Presence runs first: a required+empty failure
// suppresses any format message. Format rules only run on non-empty values,
// so optional format-checked fields may legally stay blank.
func ValidateField(field model.FormField, raw string) string {
	trimmed := strings.TrimSpace(raw)

	if field.Required && trimmed == "" {
		return MsgMissingRequired
	}

	if trimmed == "" {
		return ""
	}

	if rule, ok := formatRules[field.Name]; ok {
		return rule(trimmed)
	}
	return ""
}

// Validate runs ValidateField over the whole schema in order and collects
// every failure keyed by field name. An empty map means the values pass.
func Validate(fields []model.FormField, values Values) map[string]string {
	errs := make(map[string]string)
	for _, field := range fields {
		if msg := ValidateField(field, values[field.Name]); msg != "" {
			errs[field.Name] = msg
		}
	}
	return errs
}
