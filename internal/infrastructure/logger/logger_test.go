package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamboard/core/internal/infrastructure/config"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(config.LoggerConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, err := New(config.LoggerConfig{Level: "info", Format: "json", Output: "file", Filename: path, MaxSizeMB: 1})
	require.NoError(t, err)

	log.WithComponent("test").Infow("hello", "answer", 42)
	log.Debugw("filtered out")
	_ = log.Close()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"component":"test"`)
	assert.NotContains(t, string(b), "filtered out")
}

func TestNop(t *testing.T) {
	log := NewNop()
	log.WithError(assert.AnError).LogMemberAction("kim", "create", map[string]interface{}{"id": "1"})
	assert.NoError(t, log.Close())
}
