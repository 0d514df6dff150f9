package saves

import (
	"mime"
	"strings"
)

// MaxUploadBytes is the largest accepted archive (200 MiB).
const MaxUploadBytes int64 = 200 << 20

// allowedMIMETypes is the archive/compression allow-list for uploads.
var allowedMIMETypes = map[string]bool{
	"application/zip":              true,
	"application/x-zip-compressed": true,
	"application/octet-stream":     true,
	"application/gzip":             true,
	"application/x-gzip":           true,
	"application/x-7z-compressed":  true,
	"application/x-rar-compressed": true,
	"application/x-tar":            true,
}

// AllowedMIME reports whether contentType (parameters ignored) is accepted.
func AllowedMIME(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(contentType))
	}
	return allowedMIMETypes[mt]
}

// ValidateUpload checks type and size before anything touches storage.
func ValidateUpload(contentType string, size int64) error {
	if size <= 0 {
		return Validation("uploaded file is empty")
	}
	if size > MaxUploadBytes {
		return Validation("file too large: %d bytes (max %d)", size, MaxUploadBytes)
	}
	if !AllowedMIME(contentType) {
		return Validation("unsupported file type %q", contentType)
	}
	return nil
}
