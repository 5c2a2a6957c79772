package form

import (
	"testing"
	"time"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertValuesByDeclaredType(t *testing.T) {
	fields := []model.FormField{
		{Name: "name", FieldType: model.FieldTypeText},
		{Name: "notes", FieldType: model.FieldTypeTextarea},
		{Name: "turnover", FieldType: model.FieldTypeNumber},
		{Name: "incorporated", FieldType: model.FieldTypeDate},
		{Name: "gstRegistered", FieldType: model.FieldTypeCheckbox},
		{Name: "panCard", FieldType: model.FieldTypeFile},
	}

	typed, err := ConvertValues(fields, Values{
		"name":          "Acme Traders",
		"notes":         "  urgent  ",
		"turnover":      "1250000.50",
		"incorporated":  "2021-04-01",
		"gstRegistered": "true",
		"panCard":       "https://cdn.example.com/pan.pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, TypedValue{Kind: KindText, Text: "Acme Traders"}, typed["name"])
	assert.Equal(t, TypedValue{Kind: KindText, Text: "urgent"}, typed["notes"])
	assert.Equal(t, TypedValue{Kind: KindNumber, Number: 1250000.50}, typed["turnover"])
	assert.Equal(t, KindDate, typed["incorporated"].Kind)
	assert.Equal(t, time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC), typed["incorporated"].Date)
	assert.Equal(t, TypedValue{Kind: KindBool, Bool: true}, typed["gstRegistered"])
	assert.Equal(t, TypedValue{Kind: KindFile, URL: "https://cdn.example.com/pan.pdf"}, typed["panCard"])
}

func TestConvertValuesSkipsAbsentFields(t *testing.T) {
	fields := []model.FormField{
		{Name: "name", FieldType: model.FieldTypeText},
		{Name: "turnover", FieldType: model.FieldTypeNumber},
	}

	typed, err := ConvertValues(fields, Values{"name": "Acme"})
	require.NoError(t, err)

	assert.Contains(t, typed, "name")
	assert.NotContains(t, typed, "turnover")
}

func TestConvertValuesBadNumber(t *testing.T) {
	fields := []model.FormField{{Name: "turnover", FieldType: model.FieldTypeNumber}}

	_, err := ConvertValues(fields, Values{"turnover": "twelve"})
	assert.Error(t, err)
}

func TestConvertValuesBadDate(t *testing.T) {
	fields := []model.FormField{{Name: "incorporated", FieldType: model.FieldTypeDate}}

	_, err := ConvertValues(fields, Values{"incorporated": "01/04/2021"})
	assert.Error(t, err)
}

func TestConvertValuesCheckboxAnythingElseIsFalse(t *testing.T) {
	fields := []model.FormField{{Name: "agree", FieldType: model.FieldTypeCheckbox}}

	typed, err := ConvertValues(fields, Values{"agree": "yes"})
	require.NoError(t, err)
	assert.False(t, typed["agree"].Bool)

	typed, err = ConvertValues(fields, Values{"agree": "true"})
	require.NoError(t, err)
	assert.True(t, typed["agree"].Bool)
}

func TestConvertValuesDropdownFallsBackToText(t *testing.T) {
	fields := []model.FormField{{Name: "state", FieldType: model.FieldTypeDropdown}}

	typed, err := ConvertValues(fields, Values{"state": "Karnataka"})
	require.NoError(t, err)
	assert.Equal(t, TypedValue{Kind: KindText, Text: "Karnataka"}, typed["state"])
}

func TestMarshalJSONB(t *testing.T) {
	typed := TypedValues{
		"name": {Kind: KindText, Text: "Acme"},
	}

	raw, err := typed.MarshalJSONB()
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":{"kind":"text","text":"Acme"}}`, string(raw))
}
