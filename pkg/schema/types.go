package schema

import "sort"

// FieldType is the closed enumeration of input kinds a job listing can
// declare. Renderers and validators must handle every variant; anything
// outside this set fails closed (no widget, no default validation).
type FieldType string

const (
	FieldTypeText           FieldType = "text"
	FieldTypeEmail          FieldType = "email"
	FieldTypeURL            FieldType = "url"
	FieldTypeNumber         FieldType = "number"
	FieldTypeTextarea       FieldType = "textarea"
	FieldTypeSelect         FieldType = "select"
	FieldTypeMultiSelect    FieldType = "multi_select"
	FieldTypeCheckbox       FieldType = "checkbox"
	FieldTypeFile           FieldType = "file"
	FieldTypeVoiceRecording FieldType = "voice_recording"
	FieldTypeVideoRecording FieldType = "video_recording"
)

// Valid reports whether the type is part of the closed enumeration.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypeURL, FieldTypeNumber,
		FieldTypeTextarea, FieldTypeSelect, FieldTypeMultiSelect,
		FieldTypeCheckbox, FieldTypeFile, FieldTypeVoiceRecording,
		FieldTypeVideoRecording:
		return true
	}
	return false
}

// IsFileBased reports whether responses for this type are carried as files
// rather than scalar/array values. A field name lives in exactly one of the
// value map or the pending-file map, decided solely by this predicate.
func (t FieldType) IsFileBased() bool {
	switch t {
	case FieldTypeFile, FieldTypeVoiceRecording, FieldTypeVideoRecording:
		return true
	}
	return false
}

// Option is one selectable entry for select/multi_select/checkbox fields.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// StoredValue returns the value submitted when this option is chosen. The
// explicit value wins; the label is the fallback.
func (o Option) StoredValue() string {
	if o.Value != "" {
		return o.Value
	}
	return o.Label
}

// Rules carries the optional constraints a field schema can declare. Which
// subset applies depends on the field type.
type Rules struct {
	Min              *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max              *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	MinLength        *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength        *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	AllowedFileTypes []string `json:"allowedFileTypes,omitempty" yaml:"allowedFileTypes,omitempty"`
	MaxSize          int64    `json:"maxSize,omitempty" yaml:"maxSize,omitempty"`
}

// RecordingConfig caps recording fields. MaxDuration is advisory: it is shown
// to the candidate but not enforced during capture.
type RecordingConfig struct {
	MaxDuration int `json:"maxDuration,omitempty" yaml:"maxDuration,omitempty"`
}

// FieldSchema describes one input inside a custom section. FieldName is the
// response key and must be unique within its section.
type FieldSchema struct {
	FieldName       string           `json:"fieldName" yaml:"fieldName"`
	FieldLabel      string           `json:"fieldLabel" yaml:"fieldLabel"`
	FieldType       FieldType        `json:"fieldType" yaml:"fieldType"`
	IsRequired      bool             `json:"isRequired" yaml:"isRequired"`
	Placeholder     string           `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText        string           `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Order           int              `json:"order,omitempty" yaml:"order,omitempty"`
	Options         []Option         `json:"options,omitempty" yaml:"options,omitempty"`
	Validation      *Rules           `json:"validation,omitempty" yaml:"validation,omitempty"`
	RecordingConfig *RecordingConfig `json:"recordingConfig,omitempty" yaml:"recordingConfig,omitempty"`
}

// Section is a named, ordered group of fields. A section with no declared
// fields may still imply a single recording field; see InferMediaType.
type Section struct {
	SectionTitle       string        `json:"sectionTitle" yaml:"sectionTitle"`
	SectionDescription string        `json:"sectionDescription,omitempty" yaml:"sectionDescription,omitempty"`
	Order              int           `json:"order,omitempty" yaml:"order,omitempty"`
	Fields             []FieldSchema `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Media is a display-only attachment on a listing. The core never uploads or
// mutates these.
type Media struct {
	ID       string `json:"_id,omitempty" yaml:"id,omitempty"`
	URL      string `json:"url" yaml:"url"`
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Caption  string `json:"caption,omitempty" yaml:"caption,omitempty"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	MimeType string `json:"mimeType,omitempty" yaml:"mimeType,omitempty"`
	Size     int64  `json:"size,omitempty" yaml:"size,omitempty"`
	Order    int    `json:"order,omitempty" yaml:"order,omitempty"`
}

// Range is a min/max pair used by display-only listing metadata.
type Range struct {
	Min  int    `json:"min,omitempty" yaml:"min,omitempty"`
	Max  int    `json:"max,omitempty" yaml:"max,omitempty"`
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Salary is display-only compensation metadata.
type Salary struct {
	Min          int    `json:"min,omitempty" yaml:"min,omitempty"`
	Max          int    `json:"max,omitempty" yaml:"max,omitempty"`
	Currency     string `json:"currency,omitempty" yaml:"currency,omitempty"`
	Period       string `json:"period,omitempty" yaml:"period,omitempty"`
	IsNegotiable bool   `json:"isNegotiable,omitempty" yaml:"isNegotiable,omitempty"`
}

// Location is display-only place metadata.
type Location struct {
	City     string `json:"city,omitempty" yaml:"city,omitempty"`
	State    string `json:"state,omitempty" yaml:"state,omitempty"`
	Country  string `json:"country,omitempty" yaml:"country,omitempty"`
	IsRemote bool   `json:"isRemote,omitempty" yaml:"isRemote,omitempty"`
}

// JobListing is the server-declared document driving a form session. The core
// reads CustomSections; everything else is display metadata.
type JobListing struct {
	ID                 string    `json:"_id" yaml:"id"`
	JobTitle           string    `json:"jobTitle" yaml:"jobTitle"`
	JobDescription     string    `json:"jobDescription,omitempty" yaml:"jobDescription,omitempty"`
	Role               string    `json:"role,omitempty" yaml:"role,omitempty"`
	EmploymentType     string    `json:"employmentType,omitempty" yaml:"employmentType,omitempty"`
	Qualifications     []string  `json:"qualifications,omitempty" yaml:"qualifications,omitempty"`
	Tags               []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	ExperienceRequired *Range    `json:"experienceRequired,omitempty" yaml:"experienceRequired,omitempty"`
	Salary             *Salary   `json:"salary,omitempty" yaml:"salary,omitempty"`
	Location           *Location `json:"location,omitempty" yaml:"location,omitempty"`
	ExpiresAt          string    `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
	CustomSections     []Section `json:"customSections,omitempty" yaml:"customSections,omitempty"`
	Media              []Media   `json:"media,omitempty" yaml:"media,omitempty"`
}

// CandidateInfo holds the three fixed applicant fields validated outside the
// schema-driven flow.
type CandidateInfo struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Phone string `json:"phone" yaml:"phone"`
}

// SortedSections returns the custom sections in ascending display order.
// Ordering applies to rendering only; submission assembly walks the raw
// schema order.
func (j JobListing) SortedSections() []Section {
	out := append([]Section(nil), j.CustomSections...)
	sort.SliceStable(out, func(i, k int) bool { return out[i].Order < out[k].Order })
	return out
}

// SortedFields returns the section's fields in ascending display order.
func (s Section) SortedFields() []FieldSchema {
	out := append([]FieldSchema(nil), s.Fields...)
	sort.SliceStable(out, func(i, k int) bool { return out[i].Order < out[k].Order })
	return out
}

// SortedMedia returns listing attachments in ascending display order.
func (j JobListing) SortedMedia() []Media {
	out := append([]Media(nil), j.Media...)
	sort.SliceStable(out, func(i, k int) bool { return out[i].Order < out[k].Order })
	return out
}
