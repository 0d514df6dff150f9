package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
)

// seed creates n files whose modification times increase with their index.
func seed(t *testing.T, root string, n int) []string {
	t.Helper()
	require.NoError(t, os.MkdirAll(root, 0o755))
	base := time.Now().Add(-time.Duration(n) * time.Hour)
	names := make([]string, n)
	for i := 0; i < n; i++ {
		// names sort opposite to age so ordering must come from mtime
		names[i] = fmt.Sprintf("%03d.zip", n-i)
		p := filepath.Join(root, names[i])
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
		mt := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(p, mt, mt))
	}
	return names
}

func listNames(t *testing.T, root string) []string {
	t.Helper()
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}

func TestLocal_StoreAndResolve(t *testing.T) {
	root := filepath.Join(t.TempDir(), "saves")
	l := NewLocal(root)

	a, err := l.Store(context.Background(), []byte("PK\x03\x04data"), "我的基地.zip", "application/zip")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(a.GeneratedName), ".zip"))
	assert.NotEqual(t, "我的基地.zip", string(a.GeneratedName))
	assert.Equal(t, "我的基地.zip", a.OriginalName)
	assert.Equal(t, int64(8), a.SizeBytes)
	assert.Equal(t, filepath.Join(root, string(a.GeneratedName)), a.StoragePath)

	path, ok := l.Resolve(a.GeneratedName)
	require.True(t, ok)
	assert.Equal(t, a.StoragePath, path)

	b, err := l.Open(a.GeneratedName)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK\x03\x04data"), b)
}

func TestLocal_StoreExtension(t *testing.T) {
	l := NewLocal(t.TempDir())
	tests := map[string]string{
		"base.ZIP":        ".zip",
		"base.tar":        ".tar",
		"noext":           ".zip",
		"":                ".zip",
		"weird.ext with ": ".zip",
	}
	for original, ext := range tests {
		a, err := l.Store(context.Background(), []byte("x"), original, "")
		require.NoError(t, err)
		assert.Equal(t, ext, filepath.Ext(string(a.GeneratedName)), "original %q", original)
	}
}

func TestLocal_StoreNormalizesOriginalName(t *testing.T) {
	l := NewLocal(t.TempDir())
	a, err := l.Store(context.Background(), []byte("x"), "", "")
	require.NoError(t, err)
	assert.Equal(t, "unnamed", a.OriginalName)

	a, err = l.Store(context.Background(), []byte("x"), `C:\Users\me\%E5%AD%98%E6%A1%A3.zip`, "")
	require.NoError(t, err)
	assert.Equal(t, "存档.zip", a.OriginalName)
}

func TestLocal_GeneratedNamesAreUnique(t *testing.T) {
	l := NewLocal(t.TempDir())
	seen := map[saves.GeneratedName]bool{}
	for i := 0; i < 50; i++ {
		a, err := l.Store(context.Background(), []byte("x"), "same.zip", "")
		require.NoError(t, err)
		require.False(t, seen[a.GeneratedName])
		seen[a.GeneratedName] = true
	}
}

func TestLocal_ResolveRejectsUnknownAndTraversal(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dir.zip"), 0o755))
	l := NewLocal(root)

	for _, name := range []string{"", ".", "..", "../etc/passwd", `a\b.zip`, "missing.zip", "dir.zip"} {
		_, ok := l.Resolve(saves.GeneratedName(name))
		assert.False(t, ok, "name %q", name)
	}

	_, err := l.Open("missing.zip")
	assert.ErrorIs(t, err, saves.ErrNotFound)
}

func TestLocal_EnforceRetention(t *testing.T) {
	const total = 6
	for maxCount := 0; maxCount <= total+1; maxCount++ {
		t.Run(fmt.Sprintf("max=%d", maxCount), func(t *testing.T) {
			root := t.TempDir()
			names := seed(t, root, total)
			l := NewLocal(root)

			res, err := l.EnforceRetention(context.Background(), maxCount)
			require.NoError(t, err)

			keep := maxCount
			if keep > total {
				keep = total
			}
			want := append([]string(nil), names[total-keep:]...)
			sort.Strings(want)

			got := listNames(t, root)
			if keep == 0 {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, want, got)
			}
			assert.Equal(t, total, res.Before)
			assert.Equal(t, keep, res.After)
			assert.Len(t, res.Deleted, total-keep)
			assert.Zero(t, res.Failed)
		})
	}
}

func TestLocal_EnforceRetentionIgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	seed(t, root, 3)
	require.NoError(t, os.Mkdir(filepath.Join(root, "nested"), 0o755))

	res, err := NewLocal(root).EnforceRetention(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Before)
	assert.Len(t, res.Deleted, 2)
	assert.DirExists(t, filepath.Join(root, "nested"))
}

func TestLocal_EnforceRetentionContinuesAfterFailure(t *testing.T) {
	root := t.TempDir()
	names := seed(t, root, 4)
	l := NewLocal(root)
	l.remove = func(p string) error {
		if filepath.Base(p) == names[0] {
			return errors.New("permission denied")
		}
		return os.Remove(p)
	}

	res, err := l.EnforceRetention(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, []string{names[1], names[2]}, res.Deleted)
	assert.FileExists(t, filepath.Join(root, names[0]))
	assert.FileExists(t, filepath.Join(root, names[3]))
}

func TestLocal_EnforceRetentionMissingFileIsNoop(t *testing.T) {
	root := t.TempDir()
	names := seed(t, root, 3)
	l := NewLocal(root)
	l.remove = func(p string) error {
		_ = os.Remove(p)
		return os.Remove(p) // second delete reports ErrNotExist
	}

	res, err := l.EnforceRetention(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, res.Failed)
	assert.Equal(t, []string{names[2]}, listNames(t, root))
}

func TestLocal_EnforceRetentionConcurrent(t *testing.T) {
	root := t.TempDir()
	names := seed(t, root, 10)
	l := NewLocal(root)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.EnforceRetention(context.Background(), 3)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	want := append([]string(nil), names[7:]...)
	sort.Strings(want)
	assert.Equal(t, want, listNames(t, root))
}

func TestLocal_EnforceRetentionValidation(t *testing.T) {
	_, err := NewLocal(t.TempDir()).EnforceRetention(context.Background(), -1)
	assert.ErrorIs(t, err, saves.ErrValidation)
}

func TestLocal_EnforceRetentionMissingRoot(t *testing.T) {
	res, err := NewLocal(filepath.Join(t.TempDir(), "absent")).EnforceRetention(context.Background(), 0)
	require.NoError(t, err)
	assert.Zero(t, res.Before)
}
