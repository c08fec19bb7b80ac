// Package uploads dispatches pending files to the type-routed upload
// endpoints and normalizes their heterogeneous responses.
package uploads

import (
	"time"

	"github.com/jobkit/appform/pkg/capture"
)

// UploadedFile is the stored-artifact descriptor an upload resolves to. It is
// immutable once produced.
type UploadedFile struct {
	URL        string    `json:"url"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mimeType"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Fixed dispatch parameters. Voice uploads always advertise a 300 second cap
// and video uploads request the low automatic quality tier.
const (
	VoiceMaxDuration = 300
	VideoQuality     = "auto:low"
)

// synthesize fills a descriptor from the captured file when the endpoint only
// returned a bare URL.
func synthesize(url string, file *capture.File, now time.Time) UploadedFile {
	return UploadedFile{
		URL:        url,
		Filename:   file.Name,
		Size:       file.Size(),
		MimeType:   file.MimeType,
		UploadedAt: now,
	}
}
