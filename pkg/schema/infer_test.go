package schema

import "testing"

func TestInferMediaType(t *testing.T) {
	cases := []struct {
		name        string
		section     Section
		want        FieldType
		wantOK      bool
	}{
		{
			name:    "voice in title",
			section: Section{SectionTitle: "Voice Introduction"},
			want:    FieldTypeVoiceRecording,
			wantOK:  true,
		},
		{
			name:    "audio in title",
			section: Section{SectionTitle: "Audio Pitch"},
			want:    FieldTypeVoiceRecording,
			wantOK:  true,
		},
		{
			name:    "recording without video in title",
			section: Section{SectionTitle: "Recording Challenge"},
			want:    FieldTypeVoiceRecording,
			wantOK:  true,
		},
		{
			name:    "video recording in title stays video",
			section: Section{SectionTitle: "Video Recording Round"},
			want:    FieldTypeVideoRecording,
			wantOK:  true,
		},
		{
			name:    "video in title",
			section: Section{SectionTitle: "Video Pitch"},
			want:    FieldTypeVideoRecording,
			wantOK:  true,
		},
		{
			name: "title wins over description",
			section: Section{
				SectionTitle:       "Voice Round",
				SectionDescription: "Send us a video of yourself",
			},
			want:   FieldTypeVoiceRecording,
			wantOK: true,
		},
		{
			name: "record yourself in description",
			section: Section{
				SectionTitle:       "Tell us more",
				SectionDescription: "Record yourself answering the question below",
			},
			want:   FieldTypeVoiceRecording,
			wantOK: true,
		},
		{
			name: "video in description",
			section: Section{
				SectionTitle:       "Final Round",
				SectionDescription: "Upload a short video response",
			},
			want:   FieldTypeVideoRecording,
			wantOK: true,
		},
		{
			name:    "plain section",
			section: Section{SectionTitle: "About the team", SectionDescription: "Who we are"},
			wantOK:  false,
		},
		{
			name:    "case insensitive",
			section: Section{SectionTitle: "VOICE CHECK"},
			want:    FieldTypeVoiceRecording,
			wantOK:  true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := InferMediaType(tc.section)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Fatalf("type = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSyntheticField(t *testing.T) {
	section := Section{
		SectionTitle:       "Voice Introduction",
		SectionDescription: "Tell us about yourself",
	}
	field := SyntheticField(section, FieldTypeVoiceRecording)

	if field.FieldName != "Voice Introduction" {
		t.Fatalf("field name = %q", field.FieldName)
	}
	if field.IsRequired {
		t.Fatal("synthetic fields must not be required")
	}
	if field.Placeholder != "Tell us about yourself" {
		t.Fatalf("placeholder = %q", field.Placeholder)
	}
}

func TestSyntheticFieldDefaultPlaceholder(t *testing.T) {
	field := SyntheticField(Section{SectionTitle: "Video Round"}, FieldTypeVideoRecording)
	if field.Placeholder != "Record your video recording" {
		t.Fatalf("placeholder = %q", field.Placeholder)
	}
}
