package capture

import "context"

// Stream is a live capture session handle. Implementations wrap whatever
// runtime actually owns the microphone or camera.
type Stream interface {
	// Chunks delivers encoded data as it is produced. The channel is closed
	// once the underlying tracks stop.
	Chunks() <-chan []byte
	// StopTracks releases the hardware. Safe to call more than once; the
	// recorder always calls it on stop so the device is never left held.
	StopTracks() error
}

// Device acquires capture streams. Acquisition can fail with a permission
// denial or device error; the recorder surfaces those to the user and stays
// idle.
type Device interface {
	AcquireAudio(ctx context.Context) (Stream, error)
	AcquireVideo(ctx context.Context) (Stream, error)
}
