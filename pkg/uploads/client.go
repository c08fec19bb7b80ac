package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/jobkit/appform/pkg/capture"
)

// Endpoints names the three upload targets.
type Endpoints struct {
	Document string
	Voice    string
	Video    string
}

// Uploader is the collaborator contract the pipeline dispatches through.
type Uploader interface {
	UploadDocument(ctx context.Context, file *capture.File) (UploadedFile, error)
	UploadVoice(ctx context.Context, file *capture.File, maxDuration int) (UploadedFile, error)
	UploadVideo(ctx context.Context, file *capture.File, quality string) (UploadedFile, error)
}

// Client implements Uploader over multipart HTTP POSTs.
type Client struct {
	http      *http.Client
	endpoints Endpoints
	now       func() time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithClock overrides the timestamp source for synthesized descriptors.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient builds an upload client for the given endpoints.
func NewClient(endpoints Endpoints, options ...ClientOption) *Client {
	c := &Client{
		http:      &http.Client{},
		endpoints: endpoints,
		now:       time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// UploadDocument posts a picked file to the generic document endpoint. The
// endpoint may answer with a bare URL string, an array with the URL first, or
// a structured descriptor; all three normalize to UploadedFile.
func (c *Client) UploadDocument(ctx context.Context, file *capture.File) (UploadedFile, error) {
	return c.post(ctx, c.endpoints.Document, "document", file, nil)
}

// UploadVoice posts a voice recording with its max-duration parameter.
func (c *Client) UploadVoice(ctx context.Context, file *capture.File, maxDuration int) (UploadedFile, error) {
	extra := map[string]string{}
	if maxDuration > 0 {
		extra["maxDuration"] = strconv.Itoa(maxDuration)
	}
	return c.post(ctx, c.endpoints.Voice, "recording", file, extra)
}

// UploadVideo posts a video recording with its quality parameter.
func (c *Client) UploadVideo(ctx context.Context, file *capture.File, quality string) (UploadedFile, error) {
	return c.post(ctx, c.endpoints.Video, "recording", file, map[string]string{"quality": quality})
}

func (c *Client) post(ctx context.Context, endpoint, fieldName string, file *capture.File, extra map[string]string) (UploadedFile, error) {
	if endpoint == "" {
		return UploadedFile{}, errors.New("uploads: endpoint is not configured")
	}
	if file == nil || len(file.Data) == 0 {
		return UploadedFile{}, errors.New("uploads: file is empty")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(fieldName, file.Name)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("uploads: build form: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return UploadedFile{}, fmt.Errorf("uploads: write file: %w", err)
	}
	for key, value := range extra {
		if err := writer.WriteField(key, value); err != nil {
			return UploadedFile{}, fmt.Errorf("uploads: write field %s: %w", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		return UploadedFile{}, fmt.Errorf("uploads: close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("uploads: build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("uploads: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("uploads: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return UploadedFile{}, fmt.Errorf("uploads: %s", rejectionMessage(raw, resp.Status))
	}

	return normalizeResponse(raw, file, c.now())
}

// normalizeResponse folds the endpoint's answer into the single descriptor
// shape. Bare URLs (or arrays with the URL first) synthesize the remaining
// metadata from the captured file and the current time.
func normalizeResponse(raw []byte, file *capture.File, now time.Time) (UploadedFile, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	payload := raw
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		payload = envelope.Data
	}

	var url string
	if err := json.Unmarshal(payload, &url); err == nil && url != "" {
		return synthesize(url, file, now), nil
	}

	var urls []json.RawMessage
	if err := json.Unmarshal(payload, &urls); err == nil && len(urls) > 0 {
		payload = urls[0]
		if err := json.Unmarshal(payload, &url); err == nil && url != "" {
			return synthesize(url, file, now), nil
		}
	}

	var descriptor UploadedFile
	if err := json.Unmarshal(payload, &descriptor); err != nil || descriptor.URL == "" {
		return UploadedFile{}, errors.New("uploads: unrecognized upload response")
	}
	if descriptor.UploadedAt.IsZero() {
		descriptor.UploadedAt = now
	}
	return descriptor, nil
}

func rejectionMessage(raw []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "unexpected status " + fallback
}
