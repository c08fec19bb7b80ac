package render

import (
	"strings"

	"github.com/jobkit/appform/pkg/schema"
)

// ErrorMapping splits a server rejection payload into field-level messages
// (keyed by field name) and form-level messages that match no known field.
type ErrorMapping struct {
	Fields map[string]string
	Form   []string
}

// MapErrorPayload normalises a submission-rejection payload onto the field
// names a listing declares, including the synthetic fields of media-only
// sections. Unknown keys become form-level errors so messages are not lost.
func MapErrorPayload(sections []schema.Section, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{}
	if len(payload) == 0 {
		return mapping
	}

	known := fieldNameSet(sections)
	for key, messages := range payload {
		message := firstMessage(messages)
		if message == "" {
			continue
		}
		name := strings.TrimSpace(key)
		if _, ok := known[name]; ok {
			if mapping.Fields == nil {
				mapping.Fields = make(map[string]string)
			}
			mapping.Fields[name] = message
			continue
		}
		mapping.Form = append(mapping.Form, message)
	}
	return mapping
}

func fieldNameSet(sections []schema.Section) map[string]struct{} {
	known := map[string]struct{}{
		"name":  {},
		"email": {},
		"phone": {},
	}
	for _, section := range sections {
		if len(section.Fields) == 0 {
			if _, ok := schema.InferMediaType(section); ok {
				known[section.SectionTitle] = struct{}{}
			}
			continue
		}
		for _, field := range section.Fields {
			if name := strings.TrimSpace(field.FieldName); name != "" {
				known[name] = struct{}{}
			}
		}
	}
	return known
}

func firstMessage(messages []string) string {
	for _, message := range messages {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
