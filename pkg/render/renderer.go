package render

import (
	"context"

	"github.com/jobkit/appform/pkg/capture"
	"github.com/jobkit/appform/pkg/schema"
)

// Session is the slice of the form controller a renderer is allowed to touch:
// it relays edits and reads current state, nothing more. Keeping renderers
// behind this interface lets interaction logic run against a scripted fake.
type Session interface {
	// SetCandidate stores the fixed applicant fields.
	SetCandidate(info schema.CandidateInfo)
	// HandleFieldChange writes a scalar/array value and clears the field's error.
	HandleFieldChange(fieldName string, value any)
	// HandleFileChange writes (or clears, when file is nil) a pending file and
	// records the field type needed later for upload routing.
	HandleFileChange(fieldName string, file *capture.File, fieldType schema.FieldType)
	// Value returns the current value for a non-file field.
	Value(fieldName string) (any, bool)
	// PendingFile returns the current pending file for a file-based field.
	PendingFile(fieldName string) (*capture.File, bool)
	// FieldError returns the stored validation error for a field, if any.
	FieldError(fieldName string) string
}

// RenderOptions carries optional prefill state into a render pass.
type RenderOptions struct {
	Values map[string]any
	Errors map[string]string
}

// Renderer walks a job listing's sections and collects candidate input into
// the session.
type Renderer interface {
	Name() string
	Render(ctx context.Context, listing schema.JobListing, session Session, options RenderOptions) error
}
