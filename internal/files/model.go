package files

import "time"

// Record is the durable entry for one uploaded file. The summary is produced
// once at upload time and never regenerated; there is no update path.
type Record struct {
	ID         string
	FileName   string
	Summary    string
	StorageKey string
	SizeBytes  int64
	MimeType   string
	CreatedAt  time.Time
}
