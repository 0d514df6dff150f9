package saves

import (
	"time"
)

// GeneratedName is the opaque handle under which an archive is stored.
type GeneratedName string

// StoredArchive describes one uploaded save archive on disk
type StoredArchive struct {
	GeneratedName GeneratedName `json:"generated_name"`
	StoragePath   string        `json:"storage_path"`
	OriginalName  string        `json:"original_name"`
	SizeBytes     int64         `json:"size_bytes"`
	MimeType      string        `json:"mime_type,omitempty"`
	StoredAt      time.Time     `json:"stored_at"`
}

// RetentionResult is returned by a retention pass.
type RetentionResult struct {
	MaxFiles int      `json:"max_files"`
	Before   int      `json:"before"`
	After    int      `json:"after"`
	Deleted  []string `json:"deleted"`
	Failed   int      `json:"failed"`
}

// EventKind enum
type EventKind string

const (
	EventStored         EventKind = "stored"
	EventEvicted        EventKind = "evicted"
	EventDecodeFailed   EventKind = "decode_failed"
	EventAnalysisFailed EventKind = "analysis_failed"
)

// ArchiveEvent is an audit entry about an archive's lifecycle.
// The storage root stays authoritative; events are never read back to resolve a name.
type ArchiveEvent struct {
	ID            int64     `json:"id"`
	GeneratedName string    `json:"generated_name"`
	Kind          EventKind `json:"kind"`
	Message       string    `json:"message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
