// Package codec adapts external header decoders to saves.HeaderCodec.
//
// The save header layout is owned by the game and is not decoded here. An
// external decoder receives the raw header bytes and answers with JSON:
//
//	{"name": "...", "version": "...", "modList": [{"name": "...", "version": "..."}], "snapshot": {...}}
//
// snapshot is optional; without it only the degraded analysis is possible.
package codec

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
)

// ErrEmptyOutput is returned when the decoder printed nothing.
var ErrEmptyOutput = errors.New("codec produced no output")

// Func adapts a plain function to saves.HeaderCodec.
type Func func(ctx context.Context, raw []byte) (*saves.SaveData, error)

func (f Func) Decode(ctx context.Context, raw []byte) (*saves.SaveData, error) {
	return f(ctx, raw)
}

type output struct {
	Name     string          `json:"name"`
	Version  string          `json:"version"`
	ModList  []saves.Mod     `json:"modList"`
	Snapshot *saves.Snapshot `json:"snapshot"`
}

// ParseOutput turns decoder JSON into SaveData.
func ParseOutput(b []byte) (*saves.SaveData, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, ErrEmptyOutput
	}
	var out output
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("malformed codec output: %w", err)
	}
	return &saves.SaveData{
		Header: saves.SaveHeader{
			DisplayName:   out.Name,
			VersionString: out.Version,
			ModList:       out.ModList,
		},
		Snapshot: out.Snapshot,
	}, nil
}
