package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobkit/appform/internal/logger"
	"github.com/jobkit/appform/pkg/form"
)

// Applications posts finished application payloads. It satisfies
// form.Submitter.
type Applications struct {
	base string
	http *http.Client
	log  logger.Logger
}

// NewApplications builds a submission client from the shared config.
func NewApplications(cfg Config) *Applications {
	return &Applications{
		base: cfg.baseURL(),
		http: cfg.httpClient(),
		log:  logger.OrNop(cfg.Logger),
	}
}

// SubmitApplication posts the payload and returns the stored record's
// identifiers. A rejection surfaces the backend's message verbatim.
func (a *Applications) SubmitApplication(ctx context.Context, payload form.Payload) (form.Receipt, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return form.Receipt{}, fmt.Errorf("client: encode application: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.base+"/applications", bytes.NewReader(body))
	if err != nil {
		return form.Receipt{}, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := a.http.Do(req)
	if err != nil {
		return form.Receipt{}, fmt.Errorf("client: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return form.Receipt{}, fmt.Errorf("client: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rejection := newRejectionError(raw, resp.Status)
		a.log.Warn("application rejected",
			zap.String("jobListingId", payload.JobListingID),
			zap.Int("status", resp.StatusCode),
			zap.String("message", rejection.Message))
		return form.Receipt{}, rejection
	}

	receipt, err := decodeReceipt(raw)
	if err != nil {
		return form.Receipt{}, err
	}
	a.log.Info("application accepted",
		zap.String("jobListingId", payload.JobListingID),
		zap.String("applicationId", receipt.ID))
	return receipt, nil
}

// RejectionError is a non-2xx submission response. Fields carries the
// field-keyed messages the backend attached alongside the flat message, when
// it sent any.
type RejectionError struct {
	Message string
	Fields  map[string][]string
}

func (e *RejectionError) Error() string { return e.Message }

// newRejectionError decodes a rejection body. The "errors" object may map
// field names to either a single string or a list of strings.
func newRejectionError(raw []byte, fallback string) *RejectionError {
	rejection := &RejectionError{Message: serverMessage(raw, fallback)}

	var body struct {
		Errors map[string]json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Errors) == 0 {
		return rejection
	}

	fields := make(map[string][]string, len(body.Errors))
	for name, value := range body.Errors {
		var list []string
		if err := json.Unmarshal(value, &list); err == nil && len(list) > 0 {
			fields[name] = list
			continue
		}
		var single string
		if err := json.Unmarshal(value, &single); err == nil && single != "" {
			fields[name] = []string{single}
		}
	}
	if len(fields) > 0 {
		rejection.Fields = fields
	}
	return rejection
}

// decodeReceipt accepts both the enveloped and the bare record shape.
func decodeReceipt(raw []byte) (form.Receipt, error) {
	var record struct {
		ID          string    `json:"_id"`
		SubmittedAt time.Time `json:"submittedAt"`
		Data        *struct {
			ID          string    `json:"_id"`
			SubmittedAt time.Time `json:"submittedAt"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		return form.Receipt{}, fmt.Errorf("client: decode response: %w", err)
	}
	if record.Data != nil && record.Data.ID != "" {
		return form.Receipt{ID: record.Data.ID, SubmittedAt: record.Data.SubmittedAt}, nil
	}
	if record.ID == "" {
		return form.Receipt{}, errors.New("client: response does not contain an application record")
	}
	return form.Receipt{ID: record.ID, SubmittedAt: record.SubmittedAt}, nil
}
