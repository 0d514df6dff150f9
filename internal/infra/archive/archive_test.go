package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
	"github.com/bryanwahyu/factory-save-analyzer/internal/infra/codec"
)

type entry struct {
	name    string
	content string
}

func buildZip(t *testing.T, entries ...entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func zipFiles(t *testing.T, data []byte) []*zip.File {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return zr.File
}

func TestMatchEntry(t *testing.T) {
	cases := map[string]bool{
		"level-init.dat":       true,
		"x/level-init.dat":     true,
		"a/b/level-init.dat":   true,
		`win\level-init.dat`:   true,
		"level-init.dat.bak":   false,
		"x/my-level-init.dat":  false,
		"level-init.dat/other": false,
		"x/level.dat0":         false,
	}
	for path, want := range cases {
		assert.Equal(t, want, MatchEntry(path, HeaderEntry), path)
	}
}

func TestLocate_FirstMatchWins(t *testing.T) {
	data := buildZip(t,
		entry{"save/script.dat", "s"},
		entry{"save/level-init.dat", "first"},
		entry{"other/level-init.dat", "second"},
	)
	f, err := Locate(zipFiles(t, data), HeaderEntry)
	require.NoError(t, err)
	assert.Equal(t, "save/level-init.dat", f.Name)
}

func TestLocate_MissingListsAtMostTenEntries(t *testing.T) {
	var entries []entry
	for i := 0; i < 15; i++ {
		entries = append(entries, entry{fmt.Sprintf("save/chunk-%02d.dat", i), "x"})
	}
	_, err := Locate(zipFiles(t, buildZip(t, entries...)), HeaderEntry)
	require.ErrorIs(t, err, saves.ErrDecode)

	se, ok := saves.AsError(err)
	require.True(t, ok)
	details, ok := se.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, HeaderEntry, details["target"])
	listed, ok := details["entries"].([]string)
	require.True(t, ok)
	assert.Len(t, listed, 10)
	assert.Equal(t, "save/chunk-00.dat", listed[0])
}

func TestDecoder_Decode(t *testing.T) {
	var got []byte
	c := codec.Func(func(_ context.Context, raw []byte) (*saves.SaveData, error) {
		got = raw
		return &saves.SaveData{Header: saves.SaveHeader{DisplayName: "base"}}, nil
	})
	d := NewDecoder(c)

	data, err := d.Decode(context.Background(), buildZip(t, entry{"anything/level-init.dat", "HEADER"}))
	require.NoError(t, err)
	assert.Equal(t, "base", data.Header.DisplayName)
	assert.Equal(t, []byte("HEADER"), got)
}

func TestDecoder_Failures(t *testing.T) {
	ok := codec.Func(func(context.Context, []byte) (*saves.SaveData, error) {
		return &saves.SaveData{}, nil
	})
	failing := codec.Func(func(context.Context, []byte) (*saves.SaveData, error) {
		return nil, errors.New("unsupported header version")
	})
	empty := codec.Func(func(context.Context, []byte) (*saves.SaveData, error) {
		return nil, nil
	})

	tests := []struct {
		name  string
		codec saves.HeaderCodec
		input []byte
	}{
		{"not a zip", ok, []byte("definitely not a zip")},
		{"empty input", ok, nil},
		{"no header entry", ok, buildZip(t, entry{"save/level.dat0", "x"})},
		{"empty header entry", ok, buildZip(t, entry{"save/level-init.dat", ""})},
		{"codec error", failing, buildZip(t, entry{"level-init.dat", "x"})},
		{"codec returns nothing", empty, buildZip(t, entry{"level-init.dat", "x"})},
		{"no codec", nil, buildZip(t, entry{"level-init.dat", "x"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder(tt.codec).Decode(context.Background(), tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, saves.ErrDecode)
		})
	}
}
