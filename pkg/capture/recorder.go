// Package capture manages the record/stop/delete lifecycle for voice and
// video fields, producing named webm blobs and guaranteeing hardware release.
package capture

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"
)

// State enumerates the recording lifecycle. Stopped means a finished blob is
// held; delete returns the recorder to Idle.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateStopped
)

// Modality distinguishes the two recording kinds.
type Modality int

const (
	ModalityAudio Modality = iota
	ModalityVideo
)

func (m Modality) mimeType() string {
	if m == ModalityVideo {
		return "video/webm"
	}
	return "audio/webm"
}

// FileChangeFunc receives the finished recording, or nil when a recording is
// deleted and the field's pending file must be cleared.
type FileChangeFunc func(fieldName string, file *File)

// TickFunc receives the elapsed seconds at one-second resolution while a
// recording is active.
type TickFunc func(elapsed int)

// Option configures a Recorder.
type Option func(*Recorder)

// WithTickFunc registers an elapsed-time observer.
func WithTickFunc(fn TickFunc) Option {
	return func(r *Recorder) { r.onTick = fn }
}

// WithTickInterval overrides the one-second counter resolution. Tests use
// this to avoid waiting on wall-clock time.
func WithTickInterval(d time.Duration) Option {
	return func(r *Recorder) {
		if d > 0 {
			r.tickInterval = d
		}
	}
}

// Recorder owns at most one active capture session for a single field
// instance. Starting while already recording is a no-op guarded by state.
type Recorder struct {
	fieldName string
	device    Device
	onFile    FileChangeFunc
	onTick    TickFunc

	tickInterval time.Duration

	mu       sync.Mutex
	state    State
	modality Modality
	stream   Stream
	chunks   [][]byte
	elapsed  int
	output   *File
	stopTick chan struct{}
	drained  chan struct{}
}

// NewRecorder builds a recorder bound to one field. The file-change callback
// is how output reaches the owning form state.
func NewRecorder(fieldName string, device Device, onFile FileChangeFunc, options ...Option) *Recorder {
	r := &Recorder{
		fieldName:    fieldName,
		device:       device,
		onFile:       onFile,
		tickInterval: time.Second,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// State reports the current lifecycle state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Elapsed reports the recorded seconds so far (or of the finished blob).
func (r *Recorder) Elapsed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.elapsed
}

// Output returns the finished recording, nil unless Stopped.
func (r *Recorder) Output() *File {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.output
}

// StartAudio begins an audio capture session. Acquisition failure reports
// ErrMicrophoneAccess and leaves the recorder idle with no stream held.
func (r *Recorder) StartAudio(ctx context.Context) error {
	return r.start(ctx, ModalityAudio)
}

// StartVideo begins a video capture session. Acquisition failure reports
// ErrCameraAccess and leaves the recorder idle with no stream held.
func (r *Recorder) StartVideo(ctx context.Context) error {
	return r.start(ctx, ModalityVideo)
}

func (r *Recorder) start(ctx context.Context, modality Modality) error {
	r.mu.Lock()
	if r.state == StateRecording {
		r.mu.Unlock()
		return nil
	}
	if r.device == nil {
		r.mu.Unlock()
		return fmt.Errorf("capture: no device configured for %s", r.fieldName)
	}
	r.mu.Unlock()

	var (
		stream Stream
		err    error
	)
	if modality == ModalityVideo {
		stream, err = r.device.AcquireVideo(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCameraAccess, err)
		}
	} else {
		stream, err = r.device.AcquireAudio(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMicrophoneAccess, err)
		}
	}

	r.mu.Lock()
	if r.state == StateRecording {
		// lost the race; release the extra stream immediately
		r.mu.Unlock()
		return stream.StopTracks()
	}
	r.state = StateRecording
	r.modality = modality
	r.stream = stream
	r.chunks = nil
	r.elapsed = 0
	r.stopTick = make(chan struct{})
	r.drained = make(chan struct{})
	r.mu.Unlock()

	go r.drain(stream)
	go r.tick(r.stopTick)
	return nil
}

func (r *Recorder) drain(stream Stream) {
	for chunk := range stream.Chunks() {
		if len(chunk) == 0 {
			continue
		}
		r.mu.Lock()
		r.chunks = append(r.chunks, append([]byte(nil), chunk...))
		r.mu.Unlock()
	}
	r.mu.Lock()
	drained := r.drained
	r.mu.Unlock()
	if drained != nil {
		close(drained)
	}
}

func (r *Recorder) tick(stop <-chan struct{}) {
	ticker := time.NewTicker(r.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.mu.Lock()
			if r.state != StateRecording {
				r.mu.Unlock()
				return
			}
			r.elapsed++
			elapsed := r.elapsed
			onTick := r.onTick
			r.mu.Unlock()
			if onTick != nil {
				onTick(elapsed)
			}
		}
	}
}

// Stop finalizes the buffered chunks into a single webm blob named
// "<fieldName>_recording.webm", releases all hardware tracks, cancels the
// elapsed counter, and hands the file to the file-change callback.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	if r.state != StateRecording {
		r.mu.Unlock()
		return nil
	}
	stream := r.stream
	drained := r.drained
	close(r.stopTick)
	r.mu.Unlock()

	// Releasing the tracks closes the chunk channel, which lets the drain
	// goroutine finish flushing buffered data.
	err := stream.StopTracks()
	if drained != nil {
		<-drained
	}

	r.mu.Lock()
	var buf bytes.Buffer
	for _, chunk := range r.chunks {
		buf.Write(chunk)
	}
	file := &File{
		Name:         fmt.Sprintf("%s_recording.webm", r.fieldName),
		MimeType:     r.modality.mimeType(),
		Data:         buf.Bytes(),
		Duration:     r.elapsed,
		LastModified: time.Now(),
	}
	r.output = file
	r.stream = nil
	r.chunks = nil
	r.state = StateStopped
	onFile := r.onFile
	fieldName := r.fieldName
	r.mu.Unlock()

	if onFile != nil {
		onFile(fieldName, file)
	}
	return err
}

// Delete discards the finished blob, resets elapsed time to zero, returns to
// Idle, and propagates a nil file so the field's pending entry is cleared.
func (r *Recorder) Delete() {
	r.mu.Lock()
	if r.state != StateStopped {
		r.mu.Unlock()
		return
	}
	r.output = nil
	r.elapsed = 0
	r.state = StateIdle
	onFile := r.onFile
	fieldName := r.fieldName
	r.mu.Unlock()

	if onFile != nil {
		onFile(fieldName, nil)
	}
}

// Close tears the recorder down, releasing hardware and timers if a session
// is still active. Used on component teardown; no callback fires.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.state != StateRecording {
		r.mu.Unlock()
		return nil
	}
	stream := r.stream
	drained := r.drained
	close(r.stopTick)
	r.stream = nil
	r.chunks = nil
	r.state = StateIdle
	r.mu.Unlock()

	err := stream.StopTracks()
	if drained != nil {
		<-drained
	}
	return err
}

// FormatElapsed renders seconds as zero-padded MM:SS for recording widgets.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
