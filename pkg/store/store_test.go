package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	path    string
	backend string
}

func (c testConfig) BasePath() string            { return c.path }
func (c testConfig) Backend() string             { return c.backend }
func (c testConfig) SQLitePath() string          { return filepath.Join(c.path, "test.db") }
func (c testConfig) RedisURL() string            { return "not a url" }
func (c testConfig) LogLevel() string            { return "debug" }
func (c testConfig) LogFormat() string           { return "text" }
func (c testConfig) PollInterval() time.Duration { return time.Second }
func (c testConfig) File() string                { return "" }

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Read(ctx, KeyTasks)
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, kv.Write(ctx, KeyTasks, []byte(`[{"id":"a"}]`)))
	require.NoError(t, kv.Write(ctx, KeySettings, []byte(`{}`)))

	got, err := kv.Read(ctx, KeyTasks)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a"}]`, string(got))

	// Full overwrite, not merge.
	require.NoError(t, kv.Write(ctx, KeyTasks, []byte(`[]`)))
	got, err = kv.Read(ctx, KeyTasks)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	_, err = kv.Read(ctx, KeyGoals)
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestDiskvKV(t *testing.T) {
	base := t.TempDir()
	kv, err := OpenDiskv(base)
	require.NoError(t, err)
	defer kv.Close()
	exerciseKV(t, kv)

	// Values survive a reopen.
	again, err := OpenDiskv(base)
	require.NoError(t, err)
	got, err := again.Read(context.Background(), KeySettings)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(got))
}

func TestSQLiteKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "plan.db")
	kv, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	defer kv.Close()
	exerciseKV(t, kv)
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()

	kv, err := Open(ctx, testConfig{path: base})
	require.NoError(t, err)
	assert.IsType(t, &Diskv{}, kv)

	kv, err = Open(ctx, testConfig{path: base, backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, kv)

	kv, err = Open(ctx, testConfig{path: base, backend: BackendSQLite})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, kv)
	require.NoError(t, kv.Close())

	_, err = Open(ctx, testConfig{path: base, backend: BackendRedis})
	assert.ErrorContains(t, err, "parse redis url")

	_, err = Open(ctx, testConfig{path: base, backend: "etcd"})
	assert.ErrorContains(t, err, "unknown backend")
}
