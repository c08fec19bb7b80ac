package schema

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

const listingJSON = `{
	"_id": "651f0a",
	"jobTitle": "Backend Engineer",
	"customSections": [
		{"sectionTitle": "Basics", "fields": [
			{"fieldName": "bio", "fieldLabel": "Bio", "fieldType": "textarea", "isRequired": true}
		]}
	]
}`

func TestDecodeListingBare(t *testing.T) {
	doc := MustNewDocument(SourceFromFile("listing.json"), []byte(listingJSON))
	listing, err := DecodeListing(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if listing.ID != "651f0a" || listing.JobTitle != "Backend Engineer" {
		t.Fatalf("unexpected listing: %+v", listing)
	}
	if len(listing.CustomSections) != 1 || len(listing.CustomSections[0].Fields) != 1 {
		t.Fatalf("sections not decoded: %+v", listing.CustomSections)
	}
}

func TestDecodeListingEnvelopes(t *testing.T) {
	cases := map[string]string{
		"jobListing":      `{"jobListing": ` + listingJSON + `}`,
		"data.jobListing": `{"data": {"jobListing": ` + listingJSON + `}}`,
		"data bare":       `{"data": ` + listingJSON + `}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			doc := MustNewDocument(SourceFromFile("listing.json"), []byte(raw))
			listing, err := DecodeListing(doc)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if listing.ID != "651f0a" {
				t.Fatalf("listing not found in envelope, got %+v", listing)
			}
		})
	}
}

func TestDecodeListingRejectsEmpty(t *testing.T) {
	doc := MustNewDocument(SourceFromFile("listing.json"), []byte(`{"ok": true}`))
	if _, err := DecodeListing(doc); err == nil {
		t.Fatal("expected error for document without a listing")
	}
}

func TestDecodeListingYAML(t *testing.T) {
	raw := []byte("id: abc123\njobTitle: Designer\ncustomSections:\n  - sectionTitle: Portfolio\n")
	doc := MustNewDocument(SourceFromFile("listing.yaml"), raw)
	listing, err := DecodeListing(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if listing.ID != "abc123" || listing.JobTitle != "Designer" {
		t.Fatalf("unexpected listing: %+v", listing)
	}
}

func TestLoaderFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "listing.json")
	if err := os.WriteFile(path, []byte(listingJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(LoaderOptions{})
	listing, err := loader.LoadListing(context.Background(), SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if listing.JobTitle != "Backend Engineer" {
		t.Fatalf("unexpected listing: %+v", listing)
	}
}

func TestLoaderFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"jobs/backend.json": {Data: []byte(listingJSON)},
	}
	loader := NewLoader(LoaderOptions{FileSystem: fsys})
	listing, err := loader.LoadListing(context.Background(), SourceFromFS("jobs/backend.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if listing.ID != "651f0a" {
		t.Fatalf("unexpected listing: %+v", listing)
	}
}

func TestLoaderFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("missing accept header")
		}
		_, _ = w.Write([]byte(`{"data": {"jobListing": ` + listingJSON + `}}`))
	}))
	defer server.Close()

	loader := NewLoader(LoaderOptions{HTTPClient: server.Client()})
	listing, err := loader.LoadListing(context.Background(), SourceFromURL(server.URL+"/api/jobs/backend"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if listing.ID != "651f0a" {
		t.Fatalf("unexpected listing: %+v", listing)
	}
}

func TestLoaderURLDisabledWithoutClient(t *testing.T) {
	loader := NewLoader(LoaderOptions{})
	if _, err := loader.Load(context.Background(), SourceFromURL("http://example.com/jobs/x")); err == nil {
		t.Fatal("expected http support disabled error")
	}
}

func TestLoaderHTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()

	loader := NewLoader(LoaderOptions{HTTPClient: server.Client()})
	if _, err := loader.LoadListing(context.Background(), SourceFromURL(server.URL)); err == nil {
		t.Fatal("expected error for 404")
	}
}
