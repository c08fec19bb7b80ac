package tui

import (
	"io"
	"time"

	"github.com/jobkit/appform/pkg/capture"
)

// FileReader loads a picked file from disk. Overridable for tests.
type FileReader func(path string) ([]byte, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithDevice supplies the capture device backing recording fields. Without
// one, recording prompts are skipped with a notice.
func WithDevice(device capture.Device) Option {
	return func(r *Renderer) {
		r.device = device
	}
}

// WithFileReader overrides how file fields read picked paths.
func WithFileReader(read FileReader) Option {
	return func(r *Renderer) {
		if read != nil {
			r.readFile = read
		}
	}
}

// WithStatusWriter overrides where the live recording timer is written.
// Defaults to stderr so it never interleaves with prompt output.
func WithStatusWriter(w io.Writer) Option {
	return func(r *Renderer) {
		if w != nil {
			r.status = w
		}
	}
}

// WithTickInterval overrides the elapsed counter resolution for recordings.
func WithTickInterval(d time.Duration) Option {
	return func(r *Renderer) {
		if d > 0 {
			r.tickInterval = d
		}
	}
}
