package capture

import "errors"

var (
	// ErrMicrophoneAccess is surfaced when audio acquisition fails. The
	// session stays idle and the candidate can retry.
	ErrMicrophoneAccess = errors.New("capture: could not access microphone, ensure permissions are granted")
	// ErrCameraAccess is surfaced when video acquisition fails.
	ErrCameraAccess = errors.New("capture: could not access camera, ensure permissions are granted")
)
