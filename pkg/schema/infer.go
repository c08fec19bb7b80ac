package schema

import (
	"fmt"
	"strings"
)

// InferMediaType decides whether a section with no declared fields implies a
// single recording field, by case-insensitive keyword matching over the title
// and then the description. The priority order is fixed:
//
//  1. title mentions voice/audio, or recording without video -> voice
//  2. title mentions video -> video
//  3. description mentions voice/audio/"record yourself" -> voice
//  4. description mentions video -> video
//  5. otherwise no inferred type; the section is display-only.
//
// Keyword matching couples free text to behavior; it lives behind this one
// function so a future explicit schema flag can replace it without touching
// any renderer.
func InferMediaType(s Section) (FieldType, bool) {
	title := strings.ToLower(s.SectionTitle)
	description := strings.ToLower(s.SectionDescription)

	if strings.Contains(title, "voice") || strings.Contains(title, "audio") ||
		(strings.Contains(title, "recording") && !strings.Contains(title, "video")) {
		return FieldTypeVoiceRecording, true
	}
	if strings.Contains(title, "video") {
		return FieldTypeVideoRecording, true
	}
	if strings.Contains(description, "voice") || strings.Contains(description, "audio") ||
		strings.Contains(description, "record yourself") {
		return FieldTypeVoiceRecording, true
	}
	if strings.Contains(description, "video") {
		return FieldTypeVideoRecording, true
	}
	return "", false
}

// SyntheticField builds the implicit recording field for a section whose
// media type was inferred. The section title doubles as the response key, and
// the field is never required.
func SyntheticField(s Section, mediaType FieldType) FieldSchema {
	placeholder := s.SectionDescription
	if placeholder == "" {
		placeholder = fmt.Sprintf("Record your %s", strings.ReplaceAll(string(mediaType), "_", " "))
	}
	return FieldSchema{
		FieldName:   s.SectionTitle,
		FieldLabel:  s.SectionTitle,
		FieldType:   mediaType,
		IsRequired:  false,
		Placeholder: placeholder,
	}
}
