package archive

import (
	"archive/zip"
	"fmt"
	"strings"

	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
)

// HeaderEntry is the archive member that holds the save header.
const HeaderEntry = "level-init.dat"

// maxListedEntries bounds the entry names attached to a not-found error.
const maxListedEntries = 10

// MatchEntry reports whether an archive path names target at any depth.
// The game picks the directory name inside the archive, so it is never
// assumed to match the archive's own filename.
func MatchEntry(path, target string) bool {
	p := strings.ReplaceAll(path, `\`, "/")
	return p == target || strings.HasSuffix(p, "/"+target)
}

// Locate returns the first entry matching target.
func Locate(entries []*zip.File, target string) (*zip.File, error) {
	for _, f := range entries {
		if MatchEntry(f.Name, target) {
			return f, nil
		}
	}
	listed := make([]string, 0, maxListedEntries)
	for _, f := range entries {
		if len(listed) == maxListedEntries {
			break
		}
		listed = append(listed, f.Name)
	}
	return nil, saves.Decode(
		fmt.Sprintf("%s not found in archive (%d entries)", target, len(entries)),
		map[string]any{"target": target, "entries": listed},
		nil,
	)
}
