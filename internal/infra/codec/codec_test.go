package codec

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
)

func TestParseOutput(t *testing.T) {
	data, err := ParseOutput([]byte(`{"name":"Nauvis","version":"1.1.110","modList":[{"name":"base","version":"1.1.110"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "Nauvis", data.Header.DisplayName)
	assert.Equal(t, "1.1.110", data.Header.VersionString)
	assert.Equal(t, []saves.Mod{{Name: "base", Version: "1.1.110"}}, data.Header.ModList)
	assert.False(t, data.HasSnapshot())
}

func TestParseOutput_WithSnapshot(t *testing.T) {
	data, err := ParseOutput([]byte(`{"name":"x","snapshot":{"gameState":{"ticks":216000,"inventory":{"iron-plate":10}}}}`))
	require.NoError(t, err)
	require.True(t, data.HasSnapshot())
	assert.Equal(t, int64(216000), data.Snapshot.Game.Ticks)
	assert.Equal(t, 10.0, data.Snapshot.Game.Inventory["iron-plate"])
}

func TestParseOutput_Errors(t *testing.T) {
	_, err := ParseOutput([]byte("  \n"))
	assert.ErrorIs(t, err, ErrEmptyOutput)

	_, err = ParseOutput([]byte("{not json"))
	assert.Error(t, err)
}

func TestNewExec_RequiresCommand(t *testing.T) {
	_, err := NewExec(nil, nil)
	assert.Error(t, err)
	_, err = NewExec([]string{" "}, nil)
	assert.Error(t, err)
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExec_Decode(t *testing.T) {
	requireShell(t)
	c, err := NewExec([]string{"sh", "-c", `cat >/dev/null; echo '{"name":"'"$SAVE_NAME"'","version":"2.0.7"}'`}, []string{"SAVE_NAME=Vulcanus"})
	require.NoError(t, err)

	data, err := c.Decode(context.Background(), []byte{0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, "Vulcanus", data.Header.DisplayName)
	assert.Equal(t, "2.0.7", data.Header.VersionString)
}

func TestExec_NonZeroExit(t *testing.T) {
	requireShell(t)
	c, err := NewExec([]string{"sh", "-c", "echo boom >&2; exit 3"}, nil)
	require.NoError(t, err)

	_, err = c.Decode(context.Background(), []byte{0x01})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code 3")
	assert.Contains(t, err.Error(), "boom")
}

func TestFunc(t *testing.T) {
	var got []byte
	f := Func(func(_ context.Context, raw []byte) (*saves.SaveData, error) {
		got = raw
		return &saves.SaveData{}, nil
	})
	_, err := f.Decode(context.Background(), []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}
