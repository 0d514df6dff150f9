package saves

import "context"

// ArchiveStore port (persistence of uploaded archives)
type ArchiveStore interface {
	Store(ctx context.Context, data []byte, originalFilename, mimeType string) (*StoredArchive, error)
	Resolve(name GeneratedName) (string, bool)
	Open(name GeneratedName) ([]byte, error)
	EnforceRetention(ctx context.Context, maxCount int) (RetentionResult, error)
}

// HeaderCodec port: raw header bytes in, structured record out.
type HeaderCodec interface {
	Decode(ctx context.Context, raw []byte) (*SaveData, error)
}

// Decoder port: whole container bytes in, decoded save out.
type Decoder interface {
	Decode(ctx context.Context, container []byte) (*SaveData, error)
}

// Mirror port (optional copy of archives in object storage)
type Mirror interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Remove(ctx context.Context, key string) error
}

// EventRepository port (optional audit log)
type EventRepository interface {
	Save(ctx context.Context, e *ArchiveEvent) error
	ListByArchive(ctx context.Context, name string, limit int) ([]*ArchiveEvent, error)
}
