package uploads

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jobkit/appform/pkg/capture"
	"github.com/jobkit/appform/pkg/schema"
)

type call struct {
	kind  string
	name  string
	extra string
}

type scriptedUploader struct {
	calls   []call
	failOn  string
	failErr error
}

func (s *scriptedUploader) UploadDocument(_ context.Context, file *capture.File) (UploadedFile, error) {
	return s.record("document", file, "")
}

func (s *scriptedUploader) UploadVoice(_ context.Context, file *capture.File, maxDuration int) (UploadedFile, error) {
	return s.record("voice", file, "maxDuration=300")
}

func (s *scriptedUploader) UploadVideo(_ context.Context, file *capture.File, quality string) (UploadedFile, error) {
	return s.record("video", file, "quality="+quality)
}

func (s *scriptedUploader) record(kind string, file *capture.File, extra string) (UploadedFile, error) {
	s.calls = append(s.calls, call{kind: kind, name: file.Name, extra: extra})
	if s.failOn == file.Name {
		return UploadedFile{}, s.failErr
	}
	return UploadedFile{URL: "https://cdn.example.com/" + file.Name}, nil
}

func pendingFixture() (map[string]*capture.File, map[string]schema.FieldType) {
	files := map[string]*capture.File{
		"resume":  capture.FromDisk("resume.pdf", "application/pdf", []byte("pdf")),
		"intro":   capture.FromDisk("intro_recording.webm", "audio/webm", []byte("a")),
		"pitch":   capture.FromDisk("pitch_recording.webm", "video/webm", []byte("v")),
		"skipped": nil,
	}
	types := map[string]schema.FieldType{
		"resume": schema.FieldTypeFile,
		"intro":  schema.FieldTypeVoiceRecording,
		"pitch":  schema.FieldTypeVideoRecording,
	}
	return files, types
}

func TestUploadAllRoutesAndOrders(t *testing.T) {
	uploader := &scriptedUploader{}
	pipeline := NewPipeline(uploader, nil)
	files, types := pendingFixture()
	order := []string{"resume", "skipped", "intro", "pitch"}

	uploaded, err := pipeline.UploadAll(context.Background(), order, files, types)
	if err != nil {
		t.Fatalf("upload all: %v", err)
	}

	wantCalls := []call{
		{kind: "document", name: "resume.pdf"},
		{kind: "voice", name: "intro_recording.webm", extra: "maxDuration=300"},
		{kind: "video", name: "pitch_recording.webm", extra: "quality=auto:low"},
	}
	if diff := cmp.Diff(wantCalls, uploader.calls, cmp.AllowUnexported(call{})); diff != "" {
		t.Fatalf("call sequence mismatch (-want +got):\n%s", diff)
	}

	if len(uploaded) != 3 {
		t.Fatalf("uploaded = %d entries", len(uploaded))
	}
	if uploaded["resume"].URL != "https://cdn.example.com/resume.pdf" {
		t.Fatalf("resume descriptor: %+v", uploaded["resume"])
	}
}

func TestUploadAllFailFast(t *testing.T) {
	uploader := &scriptedUploader{
		failOn:  "intro_recording.webm",
		failErr: errors.New("network down"),
	}
	pipeline := NewPipeline(uploader, nil)
	files, types := pendingFixture()

	_, err := pipeline.UploadAll(context.Background(), []string{"resume", "intro", "pitch"}, files, types)
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(err.Error(), "failed to upload intro") {
		t.Fatalf("err = %v", err)
	}
	if !errors.Is(err, uploader.failErr) {
		t.Fatal("cause not wrapped")
	}

	// pitch must not have been attempted after the failure
	for _, c := range uploader.calls {
		if c.kind == "video" {
			t.Fatal("upload continued past the failure")
		}
	}
}

func TestUploadAllEmpty(t *testing.T) {
	pipeline := NewPipeline(&scriptedUploader{}, nil)
	uploaded, err := pipeline.UploadAll(context.Background(), nil, nil, nil)
	if err != nil {
		t.Fatalf("upload all: %v", err)
	}
	if len(uploaded) != 0 {
		t.Fatalf("uploaded = %v", uploaded)
	}
}
