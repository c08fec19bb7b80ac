package schema

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS lookups.
	FileSystem fs.FS
	// HTTPClient enables SourceKindURL lookups. Nil disables HTTP.
	HTTPClient *http.Client
	// RequestTimeout bounds HTTP fetches when the client has no timeout.
	RequestTimeout time.Duration
}

// Loader fetches listing documents from files, fs.FS entries, or URLs.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// NewLoader constructs a Loader from pre-resolved options.
func NewLoader(options LoaderOptions) *Loader {
	httpClient := options.HTTPClient
	if httpClient != nil && options.RequestTimeout > 0 && httpClient.Timeout == 0 {
		clone := *httpClient
		clone.Timeout = options.RequestTimeout
		httpClient = &clone
	}
	return &Loader{
		fs:      options.FileSystem,
		http:    httpClient,
		timeout: options.RequestTimeout,
	}
}

// Load fetches a document from the provided source and wraps it.
func (l *Loader) Load(ctx context.Context, src Source) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case SourceKindFS:
		data, err = loadFromFS(l.fs, src.Location())
	case SourceKindURL:
		if l.http == nil {
			return Document{}, errors.New("schema loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("schema loader: unsupported source kind")
	}
	if err != nil {
		return Document{}, err
	}

	return NewDocument(src, data)
}

// LoadListing fetches and decodes a JobListing in one step.
func (l *Loader) LoadListing(ctx context.Context, src Source) (JobListing, error) {
	doc, err := l.Load(ctx, src)
	if err != nil {
		return JobListing{}, err
	}
	return DecodeListing(doc)
}

// DecodeListing parses a listing document, tolerating every envelope shape
// the backend is known to emit. YAML documents are detected by extension;
// everything else decodes as JSON.
func DecodeListing(doc Document) (JobListing, error) {
	raw := doc.Raw()
	if isYAMLLocation(doc.Location()) {
		var listing JobListing
		var env struct {
			JobListing *JobListing `yaml:"jobListing"`
		}
		if err := yaml.Unmarshal(raw, &env); err == nil && env.JobListing != nil {
			return *env.JobListing, nil
		}
		if err := yaml.Unmarshal(raw, &listing); err != nil {
			return JobListing{}, err
		}
		return listing, nil
	}
	return decodeListingJSON(raw)
}

func decodeListingJSON(raw []byte) (JobListing, error) {
	var env struct {
		JobListing *JobListing     `json:"jobListing"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.JobListing != nil {
			return *env.JobListing, nil
		}
		if len(env.Data) > 0 {
			if listing, err := decodeListingJSON(env.Data); err == nil && listing.ID != "" {
				return listing, nil
			}
		}
	}

	var listing JobListing
	if err := json.Unmarshal(raw, &listing); err != nil {
		return JobListing{}, err
	}
	if listing.ID == "" && listing.JobTitle == "" {
		return JobListing{}, errors.New("schema: document does not contain a job listing")
	}
	return listing, nil
}

func isYAMLLocation(location string) bool {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func loadFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("schema loader: file path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

func loadFromFS(fsys fs.FS, name string) ([]byte, error) {
	if fsys == nil {
		return nil, errors.New("schema loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("schema loader: fs entry name is required")
	}
	return fs.ReadFile(fsys, name)
}

func loadHTTP(ctx context.Context, client *http.Client, rawURL string, timeout time.Duration) ([]byte, error) {
	if rawURL == "" {
		return nil, errors.New("schema loader: url is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("schema loader: unexpected status " + resp.Status)
	}
	return io.ReadAll(resp.Body)
}
