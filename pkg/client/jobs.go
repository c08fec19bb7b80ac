package client

import (
	"context"
	"errors"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/jobkit/appform/internal/logger"
	"github.com/jobkit/appform/pkg/schema"
)

// Jobs fetches job listings by slug. Responses are decoded with the same
// envelope tolerance as local listing documents.
type Jobs struct {
	base   string
	loader *schema.Loader
	log    logger.Logger
}

// NewJobs builds a listing client from the shared config.
func NewJobs(cfg Config) *Jobs {
	return &Jobs{
		base: cfg.baseURL(),
		loader: schema.NewLoader(schema.LoaderOptions{
			HTTPClient:     cfg.httpClient(),
			RequestTimeout: cfg.Timeout,
		}),
		log: logger.OrNop(cfg.Logger),
	}
}

// GetBySlug fetches and decodes the listing published under slug.
func (j *Jobs) GetBySlug(ctx context.Context, slug string) (schema.JobListing, error) {
	if slug == "" {
		return schema.JobListing{}, errors.New("client: slug is required")
	}

	endpoint := j.base + "/jobs/" + url.PathEscape(slug)
	started := time.Now()
	listing, err := j.loader.LoadListing(ctx, schema.SourceFromURL(endpoint))
	if err != nil {
		j.log.Error("fetch job listing failed", zap.String("slug", slug), zap.Error(err))
		return schema.JobListing{}, err
	}

	j.log.Debug("fetched job listing",
		zap.String("slug", slug),
		zap.String("jobListingId", listing.ID),
		zap.Duration("elapsed", time.Since(started)))
	return listing, nil
}
