// Package form holds the session controller that ties validation, capture,
// uploads, and submission into one submit lifecycle.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jobkit/appform/internal/logger"
	"github.com/jobkit/appform/pkg/capture"
	"github.com/jobkit/appform/pkg/schema"
	"github.com/jobkit/appform/pkg/uploads"
	"github.com/jobkit/appform/pkg/validate"
)

// ErrValidation reports that Submit stopped before any network activity
// because one or more fields failed their checks. The per-field messages are
// available through FieldError and Errors.
var ErrValidation = errors.New("form: validation failed")

// submitErrorKey is where upload and submission failures surface. Field edits
// never clear it; only the next submit attempt does.
const submitErrorKey = "submit"

// FileUploader runs the batch upload phase. *uploads.Pipeline satisfies it.
type FileUploader interface {
	UploadAll(ctx context.Context, order []string, files map[string]*capture.File, types map[string]schema.FieldType) (map[string]uploads.UploadedFile, error)
}

// Submitter posts the assembled application document.
type Submitter interface {
	SubmitApplication(ctx context.Context, payload Payload) (Receipt, error)
}

// Controller owns all mutable session state for one application attempt. It
// implements render.Session so renderers stay free of lifecycle logic. All
// methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	listing   schema.JobListing
	candidate schema.CandidateInfo

	values       map[string]any
	pendingFiles map[string]*capture.File
	pendingTypes map[string]schema.FieldType
	errors       map[string]string

	status  Status
	receipt *Receipt

	uploader  FileUploader
	submitter Submitter
	log       logger.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger attaches a logger to the controller.
func WithLogger(log logger.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// NewController builds a session over the given listing and collaborators.
func NewController(listing schema.JobListing, uploader FileUploader, submitter Submitter, options ...Option) *Controller {
	c := &Controller{
		listing:      listing,
		values:       make(map[string]any),
		pendingFiles: make(map[string]*capture.File),
		pendingTypes: make(map[string]schema.FieldType),
		errors:       make(map[string]string),
		status:       StatusEditing,
		uploader:     uploader,
		submitter:    submitter,
		log:          logger.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Listing returns the schema this session answers.
func (c *Controller) Listing() schema.JobListing {
	return c.listing
}

// SetCandidate stores the applicant's fixed fields and clears any stale
// candidate errors.
func (c *Controller) SetCandidate(info schema.CandidateInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.candidate = info
	delete(c.errors, "name")
	delete(c.errors, "email")
	delete(c.errors, "phone")
}

// Candidate returns the currently stored applicant fields.
func (c *Controller) Candidate() schema.CandidateInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.candidate
}

// HandleFieldChange records a scalar/array value and clears the field's error,
// so a correction is acknowledged immediately rather than on the next submit.
func (c *Controller) HandleFieldChange(fieldName string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[fieldName] = value
	delete(c.errors, fieldName)
}

// HandleFileChange records a pending file for a file-based field, or clears it
// when file is nil. The field type is remembered for upload routing.
func (c *Controller) HandleFileChange(fieldName string, file *capture.File, fieldType schema.FieldType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if file == nil {
		delete(c.pendingFiles, fieldName)
		delete(c.pendingTypes, fieldName)
	} else {
		c.pendingFiles[fieldName] = file
		c.pendingTypes[fieldName] = fieldType
	}
	delete(c.errors, fieldName)
}

// Value returns the current value for a non-file field.
func (c *Controller) Value(fieldName string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.values[fieldName]
	return value, ok
}

// PendingFile returns the pending file for a file-based field.
func (c *Controller) PendingFile(fieldName string) (*capture.File, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	file, ok := c.pendingFiles[fieldName]
	return file, ok
}

// FieldError returns the stored validation error for a field, if any.
func (c *Controller) FieldError(fieldName string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors[fieldName]
}

// Errors returns a copy of all stored errors keyed by field name.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.errors) == 0 {
		return nil
	}
	out := make(map[string]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// Status returns the current lifecycle phase.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// SubmitError returns the upload/submission failure message, if the last
// attempt failed past validation.
func (c *Controller) SubmitError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors[submitErrorKey]
}

// Receipt returns the stored application record after a successful submit.
func (c *Controller) Receipt() (Receipt, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.receipt == nil {
		return Receipt{}, false
	}
	return *c.receipt, true
}

// Reset returns the session to a blank editing state, keeping the listing and
// collaborators.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.candidate = schema.CandidateInfo{}
	c.values = make(map[string]any)
	c.pendingFiles = make(map[string]*capture.File)
	c.pendingTypes = make(map[string]schema.FieldType)
	c.errors = make(map[string]string)
	c.status = StatusEditing
	c.receipt = nil
}

// Submit runs the full lifecycle: validate everything, upload pending files
// one at a time, then post the assembled payload. Each phase is a hard
// barrier; a failure in one leaves all entered values and pending files
// intact so the candidate can retry without re-entering anything.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.status.inFlight() {
		c.mu.Unlock()
		return errors.New("form: submit already in progress")
	}
	c.status = StatusValidating
	delete(c.errors, submitErrorKey)

	plan := fieldPlan(c.listing)
	errs := c.validateLocked(plan)
	if len(errs) > 0 {
		for name, msg := range errs {
			c.errors[name] = msg
		}
		c.status = StatusEditing
		c.mu.Unlock()
		c.log.Info("submit blocked by validation", zap.Int("errors", len(errs)))
		return ErrValidation
	}

	// Snapshot state so the lock is not held across network calls.
	order := make([]string, 0, len(plan))
	for _, entry := range plan {
		if entry.fileBased {
			order = append(order, entry.field.FieldName)
		}
	}
	files := make(map[string]*capture.File, len(c.pendingFiles))
	for k, v := range c.pendingFiles {
		files[k] = v
	}
	types := make(map[string]schema.FieldType, len(c.pendingTypes))
	for k, v := range c.pendingTypes {
		types[k] = v
	}
	values := make(map[string]any, len(c.values))
	for k, v := range c.values {
		values[k] = v
	}
	candidate := c.candidate
	c.status = StatusUploading
	c.mu.Unlock()

	uploaded, err := c.uploader.UploadAll(ctx, order, files, types)
	if err != nil {
		c.fail(err.Error())
		return err
	}

	c.setStatus(StatusSubmitting)
	responses := AssembleResponses(c.listing.CustomSections, values, uploaded)
	payload := BuildPayload(c.listing, candidate, responses)

	receipt, err := c.submitter.SubmitApplication(ctx, payload)
	if err != nil {
		c.fail(err.Error())
		return fmt.Errorf("form: %w", err)
	}

	c.mu.Lock()
	c.status = StatusSucceeded
	c.receipt = &receipt
	c.mu.Unlock()
	c.log.Info("application submitted",
		zap.String("jobListingId", payload.JobListingID),
		zap.String("applicationId", receipt.ID))
	return nil
}

// validateLocked checks candidate info and every planned field, returning the
// first error per field. Caller holds the mutex.
func (c *Controller) validateLocked(plan []planEntry) map[string]string {
	errs := make(map[string]string)
	for name, msg := range validate.Candidate(c.candidate) {
		errs[name] = msg
	}
	for _, entry := range plan {
		var in validate.Input
		if entry.fileBased {
			_, has := c.pendingFiles[entry.field.FieldName]
			in = validate.FileInput(has)
		} else {
			in = validate.ValueInput(c.values[entry.field.FieldName])
		}
		if msg := validate.Field(entry.field, in); msg != "" {
			errs[entry.field.FieldName] = msg
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type planEntry struct {
	field     schema.FieldSchema
	fileBased bool
}

// fieldPlan flattens the listing into validation/upload order: sections and
// fields exactly as declared, with media-only sections contributing their
// inferred synthetic field.
func fieldPlan(listing schema.JobListing) []planEntry {
	var plan []planEntry
	for _, section := range listing.CustomSections {
		if len(section.Fields) > 0 {
			for _, field := range section.Fields {
				plan = append(plan, planEntry{field: field, fileBased: field.FieldType.IsFileBased()})
			}
			continue
		}
		if mediaType, ok := schema.InferMediaType(section); ok {
			plan = append(plan, planEntry{field: schema.SyntheticField(section, mediaType), fileBased: true})
		}
	}
	return plan
}

func (c *Controller) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

func (c *Controller) fail(message string) {
	c.mu.Lock()
	c.status = StatusFailed
	c.errors[submitErrorKey] = message
	c.mu.Unlock()
	c.log.Error("submit failed", zap.String("reason", message))
}
