package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	data := []byte("path: " + filepath.Join(dir, "data") + "\nbackend: sqlite\nlog:\n  level: debug\nwatch:\n  poll: 5s\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".studyplan.yaml"), data, 0o644))

	t.Setenv(ConfigPathEnv, dir)
	t.Setenv("STUDYPLAN_LOG_FORMAT", "json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data"), cfg.BasePath())
	assert.Equal(t, BackendSQLite, cfg.Backend())
	assert.Equal(t, filepath.Join(dir, "data", "studyplan.db"), cfg.SQLitePath())
	assert.Equal(t, "debug", cfg.LogLevel())
	assert.Equal(t, "json", cfg.LogFormat())
	assert.Equal(t, 5*time.Second, cfg.PollInterval())
	assert.Equal(t, filepath.Join(dir, ".studyplan.yaml"), cfg.File())
}
