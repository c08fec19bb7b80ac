package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jobkit/appform/internal/config"
	"github.com/jobkit/appform/internal/logger"
	"github.com/jobkit/appform/pkg/client"
	"github.com/jobkit/appform/pkg/form"
	"github.com/jobkit/appform/pkg/render"
	"github.com/jobkit/appform/pkg/renderers/tui"
	"github.com/jobkit/appform/pkg/schema"
	"github.com/jobkit/appform/pkg/uploads"
)

func main() {
	job := flag.String("job", "", "job listing: file path, URL, or published slug")
	configPath := flag.String("config", "", "config file (defaults to config.yaml lookup)")
	rendererName := flag.String("renderer", "tui", "renderer to use")
	flag.Parse()

	if *job == "" {
		log.Fatal("missing -job: pass a listing file, URL, or slug")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	appLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx := context.Background()
	listing, err := loadListing(ctx, cfg, appLog, *job)
	if err != nil {
		log.Fatalf("load job listing: %v", err)
	}

	printListing(os.Stdout, listing)

	uploadClient := uploads.NewClient(uploads.Endpoints{
		Document: cfg.Uploads.DocumentURL,
		Voice:    cfg.Uploads.VoiceURL,
		Video:    cfg.Uploads.VideoURL,
	}, uploads.WithHTTPClient(&http.Client{Timeout: cfg.UploadTimeout()}))

	applications := client.NewApplications(client.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.APITimeout(),
		Logger:  appLog,
	})

	controller := form.NewController(listing,
		uploads.NewPipeline(uploadClient, appLog),
		applications,
		form.WithLogger(appLog))

	registry := render.NewRegistry()
	tuiRenderer, err := tui.New()
	if err != nil {
		log.Fatalf("init renderer: %v", err)
	}
	registry.MustRegister(tuiRenderer)

	renderer, err := registry.Get(*rendererName)
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}

	if err := renderer.Render(ctx, listing, controller, render.RenderOptions{}); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(130)
		}
		log.Fatalf("render: %v", err)
	}

	if err := controller.Submit(ctx); err != nil {
		if errors.Is(err, form.ErrValidation) {
			printErrors(os.Stderr, controller.Errors())
			os.Exit(1)
		}
		appLog.Error("submission failed", zap.Error(err))
		var rejection *client.RejectionError
		if errors.As(err, &rejection) && len(rejection.Fields) > 0 {
			printRejection(os.Stderr, listing, rejection)
		} else {
			fmt.Fprintf(os.Stderr, "Failed to submit application: %s\n", controller.SubmitError())
		}
		os.Exit(1)
	}

	receipt, _ := controller.Receipt()
	fmt.Printf("\nApplication submitted.\n")
	if receipt.ID != "" {
		fmt.Printf("Reference: %s\n", receipt.ID)
	}
	if !receipt.SubmittedAt.IsZero() {
		fmt.Printf("Submitted at: %s\n", receipt.SubmittedAt.Format("2006-01-02 15:04 MST"))
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// loadListing resolves the -job argument: URLs and existing files load
// directly, anything else is treated as a published slug.
func loadListing(ctx context.Context, cfg *config.Config, appLog logger.Logger, job string) (schema.JobListing, error) {
	if strings.HasPrefix(job, "http://") || strings.HasPrefix(job, "https://") {
		if _, err := url.ParseRequestURI(job); err != nil {
			return schema.JobListing{}, fmt.Errorf("invalid job listing URL %q: %w", job, err)
		}
		loader := schema.NewLoader(schema.LoaderOptions{
			HTTPClient:     &http.Client{},
			RequestTimeout: cfg.APITimeout(),
		})
		return loader.LoadListing(ctx, schema.SourceFromURL(job))
	}
	if _, err := os.Stat(job); err == nil {
		loader := schema.NewLoader(schema.LoaderOptions{})
		return loader.LoadListing(ctx, schema.SourceFromFile(job))
	}
	jobs := client.NewJobs(client.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.APITimeout(),
		Logger:  appLog,
	})
	return jobs.GetBySlug(ctx, job)
}

func printErrors(w io.Writer, errs map[string]string) {
	fmt.Fprintln(w, "Please fix the following before submitting:")
	keys := make([]string, 0, len(errs))
	for key := range errs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "  %s: %s\n", key, errs[key])
	}
}

// printRejection maps a structured server rejection onto the listing's field
// names; messages matching no known field print as form-level lines.
func printRejection(w io.Writer, listing schema.JobListing, rejection *client.RejectionError) {
	mapping := render.MapErrorPayload(listing.CustomSections, rejection.Fields)
	fmt.Fprintln(w, "The server rejected the application:")
	keys := make([]string, 0, len(mapping.Fields))
	for key := range mapping.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "  %s: %s\n", key, mapping.Fields[key])
	}
	for _, message := range mapping.Form {
		fmt.Fprintf(w, "  %s\n", message)
	}
}
