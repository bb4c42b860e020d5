package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "yatube.log")
	t.Cleanup(func() { Logger = zap.NewNop() })

	require.NoError(t, Init("debug", "json", "file", path))
	Info("Post created", zap.Int64("post_id", 7))
	Debug("Comment discarded")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Post created"`)
	assert.Contains(t, string(data), `"post_id":7`)
	assert.Contains(t, string(data), "Comment discarded")
}

func TestInitLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yatube.log")
	t.Cleanup(func() { Logger = zap.NewNop() })

	require.NoError(t, Init("warn", "console", "file", path))
	Info("hidden")
	Warn("shown")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}
