package form

import (
	"context"
	"errors"
	"strings"
	"sync"

	"backend/internal/model"
	"backend/internal/upload"
)

var (
	// ErrSubmitInFlight is returned when Submit is re-entered while a
	// previous submission is still outstanding (disable-on-submit).
	ErrSubmitInFlight = errors.New("a submission is already in flight")
	// ErrUploadInFlight is returned when Submit is called while a file
	// transfer has not reached a terminal state. Without this guard an
	// optional file field could be submitted mid-upload and its URL would
	// silently never reach the stored payload.
	ErrUploadInFlight = errors.New("a file upload is still in progress")
	// ErrValidationFailed is returned when one or more fields fail
	// validation; Errors() carries the per-field messages.
	ErrValidationFailed = errors.New("validation failed")
)

// SubmitFunc delivers a validated payload to the submission endpoint.
type SubmitFunc func(ctx context.Context, values Values) error

// FieldView is the per-type render model for one field: what input to draw,
// with the current value and error annotated.
type FieldView struct {
	Name        string
	Label       string
	InputKind   string // text, textarea, number, date, select, checkbox, file
	Placeholder string
	Required    bool
	Options     []string // select only
	Value       string
	Error       string
}

// Form composes an ordered field schema, the current value map, and per-field
// errors into a working, submittable form. All methods are safe for use from
// upload completion callbacks, which arrive on transfer goroutines.
type Form struct {
	mu         sync.Mutex
	fields     []model.FormField
	known      map[string]model.FormField
	values     Values
	errors     map[string]string
	uploads    *upload.Manager
	submitting bool
}

// New builds a form session for the given schema. File transfers started via
// SelectFile report back into the value/error maps through the manager hooks.
func New(fields []model.FormField, transport upload.Transport) *Form {
	f := &Form{
		fields: fields,
		known:  make(map[string]model.FormField, len(fields)),
		values: make(Values),
		errors: make(map[string]string),
	}
	for _, field := range fields {
		f.known[field.Name] = field
	}
	f.uploads = upload.NewManager(transport, upload.Hooks{
		OnDone: func(name, url string) {
			f.SetValue(name, url)
		},
		OnReset: func(name string) {
			f.SetValue(name, "")
		},
		OnError: func(name, msg string) {
			f.setError(name, msg)
		},
	})
	return f
}

// SetValue records a raw value and clears the field's error the moment the
// value changes; re-validation waits until submit. Names outside the schema
// are ignored — payload keys stay a subset of the schema.
func (f *Form) SetValue(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.known[name]; !ok {
		return
	}
	if value == "" {
		delete(f.values, name)
	} else {
		f.values[name] = value
	}
	delete(f.errors, name)
}

func (f *Form) setError(name, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.known[name]; !ok {
		return
	}
	f.errors[name] = msg
}

// Value returns the current raw value for a field.
func (f *Form) Value(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name]
}

// Errors returns a copy of the current per-field error messages.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Values returns a copy of the current raw value map.
func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(Values, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// SelectFile starts (or restarts) the upload session for a FILE field.
// Selecting while a previous transfer is active cancels it first.
func (f *Form) SelectFile(ctx context.Context, name string, file upload.File) (*upload.Session, error) {
	f.mu.Lock()
	field, ok := f.known[name]
	f.mu.Unlock()
	if !ok || field.FieldType != model.FieldTypeFile {
		return nil, errors.New("not a file field: " + name)
	}
	return f.uploads.Select(ctx, name, file), nil
}

// RemoveFile cancels any active transfer for the field and resets its value.
// A previously stored object is not deleted server-side (accepted leak).
func (f *Form) RemoveFile(name string) {
	f.uploads.Remove(name)
}

// Views returns the render model for every field in schema order.
func (f *Form) Views() []FieldView {
	f.mu.Lock()
	defer f.mu.Unlock()

	views := make([]FieldView, 0, len(f.fields))
	for _, field := range f.fields {
		views = append(views, FieldView{
			Name:        field.Name,
			Label:       field.Label,
			InputKind:   inputKind(field.FieldType),
			Placeholder: field.Placeholder,
			Required:    field.Required,
			Options:     field.Options,
			Value:       f.values[field.Name],
			Error:       f.errors[field.Name],
		})
	}
	return views
}

func inputKind(fieldType string) string {
	if fieldType == model.FieldTypeDropdown {
		return "select"
	}
	return strings.ToLower(fieldType)
}

// Submit validates the whole form and, only if every field passes, hands the
// payload to send. All failures are surfaced at once via Errors(), not just
// the first. Re-entrant submits and in-flight uploads are refused.
func (f *Form) Submit(ctx context.Context, send SubmitFunc) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	if f.uploads.Active() {
		f.mu.Unlock()
		return ErrUploadInFlight
	}

	errs := Validate(f.fields, f.values)
	if len(errs) > 0 {
		f.errors = errs
		f.mu.Unlock()
		return ErrValidationFailed
	}

	f.submitting = true
	snapshot := make(Values, len(f.values))
	for k, v := range f.values {
		snapshot[k] = v
	}
	f.mu.Unlock()

	err := send(ctx, snapshot)

	f.mu.Lock()
	f.submitting = false
	f.mu.Unlock()
	return err
}
