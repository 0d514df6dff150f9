package codec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
	"github.com/bryanwahyu/factory-save-analyzer/internal/logging"
)

// Exec runs an external decoder command per header. Header bytes go to
// stdin, JSON is read from stdout.
type Exec struct {
	Command []string
	Env     []string
}

func NewExec(command []string, env []string) (*Exec, error) {
	if len(command) == 0 || strings.TrimSpace(command[0]) == "" {
		return nil, errors.New("codec command is empty")
	}
	return &Exec{Command: command, Env: env}, nil
}

func (e *Exec) Decode(ctx context.Context, raw []byte) (*saves.SaveData, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, e.Command[0], e.Command[1:]...)
	cmd.Stdin = bytes.NewReader(raw)
	cmd.Env = append(cmd.Environ(), e.Env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	logging.Debug().
		Str("codec", e.Command[0]).
		Int("input_bytes", len(raw)).
		Dur("duration", time.Since(start)).
		Msg("header codec finished")
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return nil, fmt.Errorf("codec exited with code %d: %s", ee.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("run codec: %w", err)
	}
	return ParseOutput(stdout.Bytes())
}
