// Package client talks to the hiring backend: fetching job listings and
// posting finished applications.
package client

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/jobkit/appform/internal/logger"
)

// Config carries the shared settings for the backend clients.
type Config struct {
	// BaseURL is the API root, e.g. "https://jobs.example.com/api".
	BaseURL string
	// HTTPClient overrides the default client. Optional.
	HTTPClient *http.Client
	// Timeout bounds each request when HTTPClient has none.
	Timeout time.Duration
	// Logger is optional; nil means silent.
	Logger logger.Logger
}

func (c Config) httpClient() *http.Client {
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if c.Timeout > 0 && httpClient.Timeout == 0 {
		clone := *httpClient
		clone.Timeout = c.Timeout
		httpClient = &clone
	}
	return httpClient
}

func (c Config) baseURL() string {
	return strings.TrimRight(c.BaseURL, "/")
}

// serverMessage pulls the backend's message field out of an error body,
// falling back to the HTTP status line.
func serverMessage(raw []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "unexpected status " + fallback
}
