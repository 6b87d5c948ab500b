package debug

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledByDefault(t *testing.T) {
	assert.False(t, IsEnabled())
	assert.NotPanics(t, func() {
		Log("ignored %d", 1)
		Event("bus", "publish", "ignored")
		Error("bus", errors.New("boom"), "ignored")
	})
}

func TestEnableWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")

	require.NoError(t, Enable(path))
	t.Cleanup(Disable)

	assert.True(t, IsEnabled())
	assert.Equal(t, path, LogPath())

	// Second Enable is a no-op.
	require.NoError(t, Enable(filepath.Join(t.TempDir(), "other.log")))
	assert.Equal(t, path, LogPath())

	Log("hello %s", "world")
	Event("editor", "commit", "customer saved")
	Error("bus", errors.New("boom"), "dispatch failed")
	l := Logger()
	l.Info().Msg("from logger")

	Disable()
	assert.False(t, IsEnabled())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, `"message":"debug session started"`)
	assert.Contains(t, content, `"message":"hello world"`)
	assert.Contains(t, content, `"component":"editor"`)
	assert.Contains(t, content, `"event":"commit"`)
	assert.Contains(t, content, `"error":"boom"`)
	assert.Contains(t, content, `"message":"from logger"`)
}

func TestEnableFailsOnBadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	err := Enable(filepath.Join(blocker, "debug.log"))
	require.Error(t, err)
	assert.False(t, IsEnabled())
}
