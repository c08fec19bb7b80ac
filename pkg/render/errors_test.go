package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jobkit/appform/pkg/schema"
)

func TestMapErrorPayload(t *testing.T) {
	sections := []schema.Section{
		{
			SectionTitle: "Basics",
			Fields: []schema.FieldSchema{
				{FieldName: "bio", FieldType: schema.FieldTypeTextarea},
			},
		},
		{SectionTitle: "Voice Introduction", SectionDescription: "Record yourself"},
	}

	payload := map[string][]string{
		"bio":                {"Too short"},
		"email":              {"Already applied"},
		"Voice Introduction": {"Recording corrupt"},
		"jobListingId":       {"Listing closed"},
		"blank":              {"   "},
	}

	got := MapErrorPayload(sections, payload)

	wantFields := map[string]string{
		"bio":                "Too short",
		"email":              "Already applied",
		"Voice Introduction": "Recording corrupt",
	}
	if diff := cmp.Diff(wantFields, got.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Listing closed"}, got.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayloadEmpty(t *testing.T) {
	got := MapErrorPayload(nil, nil)
	if got.Fields != nil || got.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", got)
	}
}
