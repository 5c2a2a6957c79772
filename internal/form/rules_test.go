package form

import (
	"testing"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestValidateFieldRequired(t *testing.T) {
	field := model.FormField{Name: "name", FieldType: model.FieldTypeText, Required: true}

	assert.Equal(t, MsgMissingRequired, ValidateField(field, ""))
	assert.Equal(t, MsgMissingRequired, ValidateField(field, "   "))
	assert.Empty(t, ValidateField(field, "Priya"))
}

func TestValidateFieldRequiredSuppressesFormat(t *testing.T) {
	// An empty required email reports the presence failure, not the format one.
	field := model.FormField{Name: "email", FieldType: model.FieldTypeText, Required: true}

	assert.Equal(t, MsgMissingRequired, ValidateField(field, ""))
}

func TestValidateFieldOptionalEmptyPasses(t *testing.T) {
	// Format rules only run on non-empty values, so an optional phone may stay blank.
	field := model.FormField{Name: "phone", FieldType: model.FieldTypeText, Required: false}

	assert.Empty(t, ValidateField(field, ""))
	assert.Empty(t, ValidateField(field, "   "))
}

func TestValidateFieldEmail(t *testing.T) {
	field := model.FormField{Name: "email", FieldType: model.FieldTypeText, Required: true}

	valid := []string{"a@b.co", "user.name@example.com", "x+tag@sub.domain.org"}
	for _, v := range valid {
		assert.Empty(t, ValidateField(field, v), "expected %q to pass", v)
	}

	invalid := []string{"plain", "no@tld", "two@@example.com", "sp ace@example.com", "@example.com"}
	for _, v := range invalid {
		assert.Equal(t, "Enter a valid email address", ValidateField(field, v), "expected %q to fail", v)
	}
}

func TestValidateFieldPhone(t *testing.T) {
	field := model.FormField{Name: "phone", FieldType: model.FieldTypeText}

	assert.Empty(t, ValidateField(field, "9876543210"))
	assert.Empty(t, ValidateField(field, "6000000000"))

	invalid := []string{"1234567890", "987654321", "98765432101", "98765abc10", "5876543210"}
	for _, v := range invalid {
		assert.Equal(t, "Enter a valid 10-digit mobile number", ValidateField(field, v), "expected %q to fail", v)
	}
}

func TestValidateFieldPAN(t *testing.T) {
	field := model.FormField{Name: "pan", FieldType: model.FieldTypeText}

	assert.Empty(t, ValidateField(field, "ABCDE1234F"))
	// PAN matching is case-insensitive: input is upper-cased before the check.
	assert.Empty(t, ValidateField(field, "abcde1234f"))

	invalid := []string{"ABCD1234F", "ABCDE12345", "1BCDE1234F", "ABCDE1234"}
	for _, v := range invalid {
		assert.NotEmpty(t, ValidateField(field, v), "expected %q to fail", v)
	}
}

func TestValidateFieldPinCode(t *testing.T) {
	field := model.FormField{Name: "pinCode", FieldType: model.FieldTypeText}

	assert.Empty(t, ValidateField(field, "560001"))
	assert.Empty(t, ValidateField(field, "110001"))

	invalid := []string{"060001", "56001", "5600011", "56000a"}
	for _, v := range invalid {
		assert.Equal(t, "Enter a valid 6-digit PIN code", ValidateField(field, v), "expected %q to fail", v)
	}
}

func TestValidateFieldTrimsBeforeMatching(t *testing.T) {
	field := model.FormField{Name: "email", FieldType: model.FieldTypeText, Required: true}

	assert.Empty(t, ValidateField(field, "  user@example.com  "))
}

func TestValidateFieldUnknownNameHasNoFormatRule(t *testing.T) {
	// Only the conventional names carry format rules; everything else is
	// presence-checked at most.
	field := model.FormField{Name: "companyName", FieldType: model.FieldTypeText}

	assert.Empty(t, ValidateField(field, "not an email at all"))
}

func TestValidateCollectsAllFailures(t *testing.T) {
	fields := []model.FormField{
		{Name: "name", FieldType: model.FieldTypeText, Required: true},
		{Name: "email", FieldType: model.FieldTypeText, Required: true},
		{Name: "phone", FieldType: model.FieldTypeText, Required: true},
		{Name: "notes", FieldType: model.FieldTypeTextarea},
	}

	errs := Validate(fields, Values{
		"email": "not-an-email",
		"phone": "12345",
	})

	assert.Len(t, errs, 3)
	assert.Equal(t, MsgMissingRequired, errs["name"])
	assert.Equal(t, "Enter a valid email address", errs["email"])
	assert.Equal(t, "Enter a valid 10-digit mobile number", errs["phone"])
	assert.NotContains(t, errs, "notes")
}

func TestValidatePassingValues(t *testing.T) {
	fields := []model.FormField{
		{Name: "name", FieldType: model.FieldTypeText, Required: true},
		{Name: "email", FieldType: model.FieldTypeText, Required: true},
	}

	errs := Validate(fields, Values{"name": "Priya", "email": "priya@example.com"})
	assert.Empty(t, errs)
}
