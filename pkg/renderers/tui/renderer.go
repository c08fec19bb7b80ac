// Package tui renders a job application session as a sequence of terminal
// prompts, driven by the listing's schema.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jobkit/appform/pkg/capture"
	"github.com/jobkit/appform/pkg/render"
	"github.com/jobkit/appform/pkg/schema"
	"github.com/jobkit/appform/pkg/validate"
)

const skipChoice = "(skip)"

// Renderer implements render.Renderer for terminal-driven sessions. Every
// answer is validated inline and re-prompted until it passes, so a session
// that finishes cleanly submits without local validation errors.
type Renderer struct {
	driver       PromptDriver
	device       capture.Device
	readFile     FileReader
	status       io.Writer
	tickInterval time.Duration
}

// New constructs a TUI renderer with defaults (survey driver, os file reads).
func New(options ...Option) (render.Renderer, error) {
	driver, err := newSurveyDriver()
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		driver:       driver,
		readFile:     os.ReadFile,
		status:       os.Stderr,
		tickInterval: time.Second,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver, err = newSurveyDriver()
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// Render collects candidate info first, then walks the listing's sections in
// display order, prompting for each declared field and for each inferred
// recording section.
func (r *Renderer) Render(ctx context.Context, listing schema.JobListing, session render.Session, options render.RenderOptions) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.driver == nil {
		return errors.New("tui: prompt driver is nil")
	}
	if session == nil {
		return errors.New("tui: session is required")
	}

	if err := r.promptCandidate(ctx, session, options); err != nil {
		return err
	}

	for _, section := range listing.SortedSections() {
		if section.SectionTitle != "" {
			if err := r.driver.Info(ctx, section.SectionTitle); err != nil {
				return err
			}
		}
		if section.SectionDescription != "" {
			if err := r.driver.Info(ctx, section.SectionDescription); err != nil {
				return err
			}
		}

		if len(section.Fields) > 0 {
			for _, field := range section.SortedFields() {
				if err := r.promptField(ctx, field, session, options); err != nil {
					return err
				}
			}
			continue
		}

		if mediaType, ok := schema.InferMediaType(section); ok {
			field := schema.SyntheticField(section, mediaType)
			if err := r.promptRecording(ctx, field, session); err != nil {
				return err
			}
		}
	}

	return nil
}

// promptCandidate loops the three fixed applicant prompts until they validate.
func (r *Renderer) promptCandidate(ctx context.Context, session render.Session, options render.RenderOptions) error {
	info := schema.CandidateInfo{
		Name:  stringValue(options.Values, "name"),
		Email: stringValue(options.Values, "email"),
		Phone: stringValue(options.Values, "phone"),
	}

	for {
		var err error
		info.Name, err = r.driver.Input(ctx, InputConfig{Message: "Full name", Default: info.Name})
		if err != nil {
			return err
		}
		info.Email, err = r.driver.Input(ctx, InputConfig{Message: "Email", Default: info.Email})
		if err != nil {
			return err
		}
		info.Phone, err = r.driver.Input(ctx, InputConfig{Message: "Phone", Default: info.Phone})
		if err != nil {
			return err
		}

		errs := validate.Candidate(info)
		if len(errs) == 0 {
			session.SetCandidate(info)
			return nil
		}
		for _, key := range []string{"name", "email", "phone"} {
			if msg, ok := errs[key]; ok {
				if err := r.driver.Info(ctx, msg); err != nil {
					return err
				}
			}
		}
	}
}

// promptField dispatches on the closed set of field types. Unknown types are
// skipped without output so stale schemas stay submittable.
func (r *Renderer) promptField(ctx context.Context, field schema.FieldSchema, session render.Session, options render.RenderOptions) error {
	switch field.FieldType {
	case schema.FieldTypeText, schema.FieldTypeEmail, schema.FieldTypeURL:
		return r.promptString(ctx, field, session, options)
	case schema.FieldTypeNumber:
		return r.promptNumber(ctx, field, session, options)
	case schema.FieldTypeTextarea:
		return r.promptTextArea(ctx, field, session, options)
	case schema.FieldTypeSelect:
		return r.promptSelect(ctx, field, session)
	case schema.FieldTypeMultiSelect, schema.FieldTypeCheckbox:
		return r.promptMultiSelect(ctx, field, session)
	case schema.FieldTypeFile:
		return r.promptFile(ctx, field, session)
	case schema.FieldTypeVoiceRecording, schema.FieldTypeVideoRecording:
		return r.promptRecording(ctx, field, session)
	default:
		return nil
	}
}

func (r *Renderer) promptString(ctx context.Context, field schema.FieldSchema, session render.Session, options render.RenderOptions) error {
	defaultVal := stringValue(options.Values, field.FieldName)
	for {
		response, err := r.driver.Input(ctx, InputConfig{
			Message:     fieldLabel(field),
			Default:     defaultVal,
			Help:        field.HelpText,
			Placeholder: field.Placeholder,
		})
		if err != nil {
			return err
		}
		if msg := validate.Field(field, validate.ValueInput(response)); msg != "" {
			if err := r.driver.Info(ctx, msg); err != nil {
				return err
			}
			continue
		}
		if strings.TrimSpace(response) != "" {
			session.HandleFieldChange(field.FieldName, response)
		}
		return nil
	}
}

func (r *Renderer) promptNumber(ctx context.Context, field schema.FieldSchema, session render.Session, options render.RenderOptions) error {
	defaultVal := stringValue(options.Values, field.FieldName)
	for {
		input, err := r.driver.Input(ctx, InputConfig{
			Message:     fieldLabel(field),
			Default:     defaultVal,
			Help:        field.HelpText,
			Placeholder: field.Placeholder,
		})
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			if field.IsRequired {
				if err := r.driver.Info(ctx, fmt.Sprintf("%s is required", field.FieldLabel)); err != nil {
					return err
				}
				continue
			}
			return nil
		}

		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			if err := r.driver.Info(ctx, "Please enter a number"); err != nil {
				return err
			}
			continue
		}
		if msg := validate.Field(field, validate.ValueInput(parsed)); msg != "" {
			if err := r.driver.Info(ctx, msg); err != nil {
				return err
			}
			continue
		}
		session.HandleFieldChange(field.FieldName, parsed)
		return nil
	}
}

func (r *Renderer) promptTextArea(ctx context.Context, field schema.FieldSchema, session render.Session, options render.RenderOptions) error {
	defaultVal := stringValue(options.Values, field.FieldName)
	help := field.HelpText
	if rules := field.Validation; rules != nil && rules.MaxLength != nil && *rules.MaxLength > 0 {
		help = strings.TrimSpace(fmt.Sprintf("%s (max %d characters)", help, *rules.MaxLength))
	}
	for {
		response, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: fieldLabel(field),
			Default: defaultVal,
			Help:    help,
		})
		if err != nil {
			return err
		}
		if msg := validate.Field(field, validate.ValueInput(response)); msg != "" {
			if err := r.driver.Info(ctx, msg); err != nil {
				return err
			}
			continue
		}
		if strings.TrimSpace(response) != "" {
			session.HandleFieldChange(field.FieldName, response)
		}
		return nil
	}
}

func (r *Renderer) promptSelect(ctx context.Context, field schema.FieldSchema, session render.Session) error {
	labels := make([]string, 0, len(field.Options)+1)
	offset := 0
	if !field.IsRequired {
		labels = append(labels, skipChoice)
		offset = 1
	}
	for _, option := range field.Options {
		labels = append(labels, option.Label)
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message: fieldLabel(field),
			Options: labels,
			Help:    field.HelpText,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(labels) {
			if err := r.driver.Info(ctx, "Invalid selection"); err != nil {
				return err
			}
			continue
		}
		if offset == 1 && idx == 0 {
			return nil
		}
		session.HandleFieldChange(field.FieldName, field.Options[idx-offset].StoredValue())
		return nil
	}
}

func (r *Renderer) promptMultiSelect(ctx context.Context, field schema.FieldSchema, session render.Session) error {
	labels := make([]string, 0, len(field.Options))
	for _, option := range field.Options {
		labels = append(labels, option.Label)
	}

	for {
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message: fieldLabel(field),
			Options: labels,
			Help:    field.HelpText,
		})
		if err != nil {
			return err
		}

		selected := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(field.Options) {
				selected = append(selected, field.Options[idx].StoredValue())
			}
		}
		if msg := validate.Field(field, validate.ValueInput(selected)); msg != "" {
			if err := r.driver.Info(ctx, msg); err != nil {
				return err
			}
			continue
		}
		if len(selected) > 0 {
			session.HandleFieldChange(field.FieldName, selected)
		}
		return nil
	}
}

// promptFile asks for a path, reads it, and hands the first accepted file to
// the session. Only one file is kept per field.
func (r *Renderer) promptFile(ctx context.Context, field schema.FieldSchema, session render.Session) error {
	for {
		path, err := r.driver.Input(ctx, InputConfig{
			Message:     fmt.Sprintf("%s (path to file)", fieldLabel(field)),
			Help:        field.HelpText,
			Placeholder: field.Placeholder,
		})
		if err != nil {
			return err
		}

		path = strings.TrimSpace(path)
		if path == "" {
			if field.IsRequired {
				if err := r.driver.Info(ctx, fmt.Sprintf("%s is required", field.FieldLabel)); err != nil {
					return err
				}
				continue
			}
			return nil
		}

		if msg := checkFileRules(field, path); msg != "" {
			if err := r.driver.Info(ctx, msg); err != nil {
				return err
			}
			continue
		}

		data, err := r.readFile(path)
		if err != nil {
			if err := r.driver.Info(ctx, fmt.Sprintf("Cannot read %s: %v", path, err)); err != nil {
				return err
			}
			continue
		}
		if rules := field.Validation; rules != nil && rules.MaxSize > 0 && int64(len(data)) > rules.MaxSize {
			if err := r.driver.Info(ctx, fmt.Sprintf("File exceeds the %d byte limit", rules.MaxSize)); err != nil {
				return err
			}
			continue
		}

		name := filepath.Base(path)
		file := capture.FromDisk(name, mime.TypeByExtension(filepath.Ext(name)), data)
		session.HandleFileChange(field.FieldName, file, field.FieldType)
		return nil
	}
}

// promptRecording drives the record/stop/keep loop for voice and video
// fields. Deleting a take clears the pending file and offers a fresh attempt.
func (r *Renderer) promptRecording(ctx context.Context, field schema.FieldSchema, session render.Session) error {
	if r.device == nil {
		return r.driver.Info(ctx, fmt.Sprintf("No capture device available; skipping %s", fieldLabel(field)))
	}

	help := field.Placeholder
	if rc := field.RecordingConfig; rc != nil && rc.MaxDuration > 0 {
		help = strings.TrimSpace(fmt.Sprintf("%s (up to %s)", help, capture.FormatElapsed(rc.MaxDuration)))
	}

	for {
		record, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Record %s?", fieldLabel(field)),
			Default: true,
			Help:    help,
		})
		if err != nil {
			return err
		}
		if !record {
			return nil
		}

		recorder := capture.NewRecorder(field.FieldName, r.device, func(name string, file *capture.File) {
			session.HandleFileChange(name, file, field.FieldType)
		},
			capture.WithTickInterval(r.tickInterval),
			capture.WithTickFunc(func(elapsed int) {
				fmt.Fprintf(r.status, "\rRecording... %s", capture.FormatElapsed(elapsed))
			}))

		if field.FieldType == schema.FieldTypeVideoRecording {
			err = recorder.StartVideo(ctx)
		} else {
			err = recorder.StartAudio(ctx)
		}
		if err != nil {
			return r.driver.Info(ctx, err.Error())
		}

		if _, err := r.driver.Input(ctx, InputConfig{Message: "Recording... press Enter to stop"}); err != nil {
			_ = recorder.Close()
			return err
		}
		if err := recorder.Stop(); err != nil {
			return err
		}
		// terminate the in-place timer line before normal output resumes
		fmt.Fprintln(r.status)
		if err := r.driver.Info(ctx, fmt.Sprintf("Recorded %s", capture.FormatElapsed(recorder.Elapsed()))); err != nil {
			return err
		}

		keep, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Keep this recording?", Default: true})
		if err != nil {
			return err
		}
		if keep {
			return nil
		}
		recorder.Delete()
	}
}

func fieldLabel(field schema.FieldSchema) string {
	if field.FieldLabel != "" {
		return field.FieldLabel
	}
	return field.FieldName
}

// checkFileRules enforces the allowed-extension list before the file is read.
func checkFileRules(field schema.FieldSchema, path string) string {
	rules := field.Validation
	if rules == nil || len(rules.AllowedFileTypes) == 0 {
		return ""
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range rules.AllowedFileTypes {
		normalized := strings.ToLower(strings.TrimSpace(allowed))
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if ext == normalized {
			return ""
		}
	}
	return fmt.Sprintf("Allowed file types: %s", strings.Join(rules.AllowedFileTypes, ", "))
}

func stringValue(values map[string]any, key string) string {
	if values == nil {
		return ""
	}
	if s, ok := values[key].(string); ok {
		return s
	}
	return ""
}
