package form

import (
	"time"

	"github.com/jobkit/appform/pkg/schema"
	"github.com/jobkit/appform/pkg/uploads"
)

// Response is one schema field's final recorded answer. Value is null for
// file-based types; Files is empty unless an upload succeeded for the field.
type Response struct {
	FieldName  string                 `json:"fieldName"`
	FieldLabel string                 `json:"fieldLabel"`
	FieldType  schema.FieldType       `json:"fieldType"`
	Value      any                    `json:"value"`
	Files      []uploads.UploadedFile `json:"files"`
}

// Snapshot carries a verbatim copy of the schema the candidate answered, for
// audit and versioning on the backend.
type Snapshot struct {
	CustomSections []schema.Section `json:"customSections"`
}

// Payload is the structured application document posted on submit.
type Payload struct {
	JobListingID string               `json:"jobListingId"`
	Candidate    schema.CandidateInfo `json:"candidate"`
	Responses    []Response           `json:"responses"`
	FormSnapshot Snapshot             `json:"formSnapshot"`
}

// Receipt is the stored application record the backend returns on success.
type Receipt struct {
	ID          string
	SubmittedAt time.Time
}
