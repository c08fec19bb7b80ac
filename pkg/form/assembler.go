package form

import (
	"strings"

	"github.com/jobkit/appform/pkg/schema"
	"github.com/jobkit/appform/pkg/uploads"
)

// AssembleResponses walks the sections in schema order and emits one response
// per declared field, plus one response per media-only section whose inferred
// recording was uploaded. Display sorting never applies here; the payload
// mirrors the schema's own traversal order.
func AssembleResponses(sections []schema.Section, values map[string]any, uploaded map[string]uploads.UploadedFile) []Response {
	responses := make([]Response, 0, len(sections))

	for _, section := range sections {
		if len(section.Fields) > 0 {
			for _, field := range section.Fields {
				responses = append(responses, fieldResponse(field, values, uploaded))
			}
			continue
		}

		mediaType, ok := schema.InferMediaType(section)
		if !ok {
			// Display-only section, nothing to record.
			continue
		}
		descriptor, ok := uploaded[section.SectionTitle]
		if !ok {
			continue
		}
		responses = append(responses, Response{
			FieldName:  section.SectionTitle,
			FieldLabel: section.SectionTitle,
			FieldType:  mediaType,
			Value:      nil,
			Files:      []uploads.UploadedFile{descriptor},
		})
	}

	return responses
}

func fieldResponse(field schema.FieldSchema, values map[string]any, uploaded map[string]uploads.UploadedFile) Response {
	response := Response{
		FieldName:  field.FieldName,
		FieldLabel: field.FieldLabel,
		FieldType:  field.FieldType,
		Files:      []uploads.UploadedFile{},
	}

	if field.FieldType.IsFileBased() {
		if descriptor, ok := uploaded[field.FieldName]; ok {
			response.Files = append(response.Files, descriptor)
		}
		return response
	}

	if value, ok := values[field.FieldName]; ok && value != nil && value != "" {
		response.Value = value
	}
	return response
}

// BuildPayload assembles the full application document, trimming the
// candidate fields and snapshotting the schema verbatim.
func BuildPayload(listing schema.JobListing, candidate schema.CandidateInfo, responses []Response) Payload {
	return Payload{
		JobListingID: listing.ID,
		Candidate: schema.CandidateInfo{
			Name:  strings.TrimSpace(candidate.Name),
			Email: strings.TrimSpace(candidate.Email),
			Phone: strings.TrimSpace(candidate.Phone),
		},
		Responses:    responses,
		FormSnapshot: Snapshot{CustomSections: listing.CustomSections},
	}
}
