package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobkit/appform/pkg/form"
	"github.com/jobkit/appform/pkg/schema"
)

const listingBody = `{
	"_id": "651f0a",
	"jobTitle": "Backend Engineer",
	"customSections": [{"sectionTitle": "Basics"}]
}`

func TestJobsGetBySlug(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"data": {"jobListing": ` + listingBody + `}}`))
	}))
	defer server.Close()

	jobs := NewJobs(Config{BaseURL: server.URL + "/api", HTTPClient: server.Client()})
	listing, err := jobs.GetBySlug(context.Background(), "backend-engineer")
	require.NoError(t, err)

	assert.Equal(t, "/api/jobs/backend-engineer", gotPath)
	assert.Equal(t, "651f0a", listing.ID)
	assert.Equal(t, "Backend Engineer", listing.JobTitle)
}

func TestJobsGetBySlugBareListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listingBody))
	}))
	defer server.Close()

	jobs := NewJobs(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	listing, err := jobs.GetBySlug(context.Background(), "backend-engineer")
	require.NoError(t, err)
	assert.Equal(t, "651f0a", listing.ID)
}

func TestJobsGetBySlugRequiresSlug(t *testing.T) {
	jobs := NewJobs(Config{BaseURL: "http://localhost"})
	_, err := jobs.GetBySlug(context.Background(), "")
	require.Error(t, err)
}

func TestJobsGetBySlugNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "job not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	jobs := NewJobs(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	_, err := jobs.GetBySlug(context.Background(), "gone")
	require.Error(t, err)
}

func testPayload() form.Payload {
	return form.Payload{
		JobListingID: "651f0a",
		Candidate:    schema.CandidateInfo{Name: "Ada", Email: "ada@lovelace.io", Phone: "+44 123"},
		Responses: []form.Response{
			{FieldName: "bio", FieldLabel: "Bio", FieldType: schema.FieldTypeTextarea, Value: "hello"},
		},
	}
}

func TestApplicationsSubmit(t *testing.T) {
	var gotBody form.Payload
	var gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/applications", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotRequestID = r.Header.Get("X-Request-ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"data": {"_id": "app-1", "submittedAt": "2026-03-14T09:30:00Z"}}`))
	}))
	defer server.Close()

	applications := NewApplications(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	receipt, err := applications.SubmitApplication(context.Background(), testPayload())
	require.NoError(t, err)

	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "651f0a", gotBody.JobListingID)
	assert.Equal(t, "Ada", gotBody.Candidate.Name)
	assert.Equal(t, "app-1", receipt.ID)
	assert.Equal(t, 2026, receipt.SubmittedAt.Year())
}

func TestApplicationsSubmitBareRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"_id": "app-2", "submittedAt": "2026-03-14T09:30:00Z"}`))
	}))
	defer server.Close()

	applications := NewApplications(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	receipt, err := applications.SubmitApplication(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Equal(t, "app-2", receipt.ID)
}

func TestApplicationsSubmitRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message": "You have already applied to this job"}`))
	}))
	defer server.Close()

	applications := NewApplications(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	_, err := applications.SubmitApplication(context.Background(), testPayload())
	require.Error(t, err)
	assert.Equal(t, "You have already applied to this job", err.Error())
}

func TestApplicationsSubmitStructuredRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{
			"message": "Validation failed",
			"errors": {
				"email": ["Email already used"],
				"bio": "Bio is too short"
			}
		}`))
	}))
	defer server.Close()

	applications := NewApplications(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	_, err := applications.SubmitApplication(context.Background(), testPayload())
	require.Error(t, err)

	var rejection *RejectionError
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, "Validation failed", rejection.Message)
	assert.Equal(t, []string{"Email already used"}, rejection.Fields["email"])
	// single-string entries are normalised to one-element lists
	assert.Equal(t, []string{"Bio is too short"}, rejection.Fields["bio"])
}

func TestApplicationsSubmitMalformedSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	applications := NewApplications(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	_, err := applications.SubmitApplication(context.Background(), testPayload())
	require.Error(t, err)
}
