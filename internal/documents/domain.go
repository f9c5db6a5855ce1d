package documents

import "time"

// Document is file metadata kept for the shared library. The binary itself
// lives in object storage outside this service; we track what was uploaded,
// by whom, and when.
type Document struct {
	ID          int64
	Title       string
	Description string
	FileName    string
	ContentType string
	SizeBytes   int64
	StorageKey  string
	UploaderID  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
