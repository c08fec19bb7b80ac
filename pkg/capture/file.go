package capture

import "time"

// File is a locally captured or selected blob awaiting upload.
type File struct {
	Name         string
	MimeType     string
	Data         []byte
	Duration     int // seconds, zero for picked files
	LastModified time.Time
}

// Size returns the blob length in bytes.
func (f *File) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Data))
}

// FromDisk wraps bytes read from a file picker. Only recording files carry a
// duration.
func FromDisk(name, mimeType string, data []byte) *File {
	return &File{
		Name:         name,
		MimeType:     mimeType,
		Data:         data,
		LastModified: time.Now(),
	}
}
