package form

// Status tracks where a session sits in the submit lifecycle. Transitions are
// strictly sequential: Editing -> Validating -> Uploading -> Submitting, then
// Succeeded or Failed. Validation failures fall back to Editing.
type Status int

const (
	StatusEditing Status = iota
	StatusValidating
	StatusUploading
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusEditing:
		return "editing"
	case StatusValidating:
		return "validating"
	case StatusUploading:
		return "uploading"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// inFlight reports whether a submit attempt currently owns the session.
func (s Status) inFlight() bool {
	return s == StatusValidating || s == StatusUploading || s == StatusSubmitting
}
