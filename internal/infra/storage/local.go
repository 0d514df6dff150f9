package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
	"github.com/bryanwahyu/factory-save-analyzer/internal/infra/filename"
	"github.com/bryanwahyu/factory-save-analyzer/internal/logging"
)

// DefaultExt is used when the original name carries no usable extension.
const DefaultExt = ".zip"

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// Local keeps archives as flat, opaque-named files under Root.
// There is no index: the directory listing is the state.
type Local struct {
	Root string

	remove func(string) error
}

func NewLocal(root string) *Local {
	return &Local{Root: root, remove: os.Remove}
}

// Store writes data under a freshly generated name.
func (l *Local) Store(ctx context.Context, data []byte, originalFilename, mimeType string) (*saves.StoredArchive, error) {
	if err := os.MkdirAll(l.Root, 0o755); err != nil {
		return nil, saves.Internal("create storage root", err)
	}

	original := baseName(filename.Normalize(originalFilename))
	name := uuid.New().String() + extensionOf(original)
	path := filepath.Join(l.Root, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, saves.Internal("create archive file", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.Remove(path)
		return nil, saves.Internal("write archive file", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, saves.Internal("close archive file", err)
	}

	storedAt := time.Now()
	if info, err := os.Stat(path); err == nil {
		storedAt = info.ModTime()
	}

	logging.Ctx(ctx).Info().
		Str("generated_name", name).
		Str("original_name", original).
		Int("size", len(data)).
		Msg("archive stored")

	return &saves.StoredArchive{
		GeneratedName: saves.GeneratedName(name),
		StoragePath:   path,
		OriginalName:  original,
		SizeBytes:     int64(len(data)),
		MimeType:      mimeType,
		StoredAt:      storedAt,
	}, nil
}

// Resolve returns the path of a stored archive. It never fails; an unknown
// or malformed name yields ("", false).
func (l *Local) Resolve(name saves.GeneratedName) (string, bool) {
	n := string(name)
	if n == "" || n == "." || n == ".." || strings.ContainsAny(n, `/\`) {
		return "", false
	}
	path := filepath.Join(l.Root, n)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// Open reads a stored archive fully.
func (l *Local) Open(name saves.GeneratedName) ([]byte, error) {
	path, ok := l.Resolve(name)
	if !ok {
		return nil, saves.NotFound(string(name))
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, saves.NotFound(string(name))
		}
		return nil, saves.Internal("read archive file", err)
	}
	return b, nil
}

type storedFile struct {
	name    string
	modTime time.Time
}

// EnforceRetention deletes the oldest files until at most maxCount remain.
// Cleanup is best effort: a file that cannot be deleted is logged and
// skipped, and a file already removed by a concurrent pass counts as deleted.
func (l *Local) EnforceRetention(ctx context.Context, maxCount int) (saves.RetentionResult, error) {
	res := saves.RetentionResult{MaxFiles: maxCount, Deleted: []string{}}
	if maxCount < 0 {
		return res, saves.Validation("max files must be >= 0, got %d", maxCount)
	}

	files, err := l.list()
	if err != nil {
		return res, saves.Internal("list storage root", err)
	}
	res.Before = len(files)
	res.After = len(files)
	if len(files) <= maxCount {
		return res, nil
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime.Equal(files[j].modTime) {
			return files[i].name < files[j].name
		}
		return files[i].modTime.Before(files[j].modTime)
	})

	remove := l.remove
	if remove == nil {
		remove = os.Remove
	}
	for _, f := range files[:len(files)-maxCount] {
		err := remove(filepath.Join(l.Root, f.name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			logging.Ctx(ctx).Warn().Err(err).Str("file", f.name).Msg("failed to evict archive")
			res.Failed++
			continue
		}
		res.Deleted = append(res.Deleted, f.name)
	}
	res.After = res.Before - len(res.Deleted)

	logging.Ctx(ctx).Info().
		Int("before", res.Before).
		Int("deleted", len(res.Deleted)).
		Int("failed", res.Failed).
		Int("max_files", maxCount).
		Msg("retention pass finished")
	return res, nil
}

func (l *Local) list() ([]storedFile, error) {
	entries, err := os.ReadDir(l.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]storedFile, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		out = append(out, storedFile{name: e.Name(), modTime: info.ModTime()})
	}
	return out, nil
}

func baseName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 && i < len(name)-1 {
		name = name[i+1:]
	}
	return name
}

func extensionOf(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if !extPattern.MatchString(ext) {
		return DefaultExt
	}
	return ext
}
