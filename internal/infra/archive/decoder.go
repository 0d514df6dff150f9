// Package archive opens uploaded save containers and extracts the header.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
)

// Decoder implements saves.Decoder on top of a header codec.
type Decoder struct {
	Codec saves.HeaderCodec
}

func NewDecoder(codec saves.HeaderCodec) *Decoder {
	return &Decoder{Codec: codec}
}

// Decode opens container as a zip, extracts the header entry and hands its
// bytes to the codec. Every failure comes back as a decode error.
func (d *Decoder) Decode(ctx context.Context, container []byte) (*saves.SaveData, error) {
	zr, err := zip.NewReader(bytes.NewReader(container), int64(len(container)))
	if err != nil {
		return nil, saves.Decode("archive is not a readable zip file", nil, err)
	}

	entry, err := Locate(zr.File, HeaderEntry)
	if err != nil {
		return nil, err
	}

	raw, err := readEntry(entry)
	if err != nil {
		return nil, saves.Decode(fmt.Sprintf("failed to read %s", entry.Name), map[string]any{"entry": entry.Name}, err)
	}
	if len(raw) == 0 {
		return nil, saves.Decode(fmt.Sprintf("%s is empty", entry.Name), map[string]any{"entry": entry.Name}, nil)
	}

	if d.Codec == nil {
		return nil, saves.Decode("no header codec configured", nil, errors.New("nil codec"))
	}
	data, err := d.Codec.Decode(ctx, raw)
	if err != nil {
		return nil, saves.Decode("header codec rejected "+entry.Name, map[string]any{"entry": entry.Name}, err)
	}
	if data == nil {
		return nil, saves.Decode("header codec returned no data", map[string]any{"entry": entry.Name}, nil)
	}
	return data, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
