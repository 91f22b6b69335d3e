package commands

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/store"
)

func TestCommandTree(t *testing.T) {
	root := New()
	for _, path := range [][]string{
		{"task", "add"}, {"task", "list"}, {"task", "edit"}, {"task", "done"}, {"task", "undo"}, {"task", "rm"},
		{"goal", "add"}, {"goal", "list"}, {"goal", "edit"}, {"goal", "progress"}, {"goal", "rm"},
		{"week"}, {"stats"}, {"export"}, {"import"}, {"settings"},
		{"notify", "status"}, {"notify", "enable"}, {"notify", "disable"}, {"notify", "test"},
		{"watch"}, {"mcp"}, {"info"}, {"key"}, {"version"}, {"upgrade"}, {"completion"},
	} {
		cmd, _, err := root.Find(path)
		if assert.NoError(t, err, path) {
			assert.Equal(t, path[len(path)-1], cmd.Name(), path)
		}
	}
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	root := New()
	root.SetArgs(args)
	return root.Execute()
}

func TestTaskAndGoalRoundTripOnDisk(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(store.ConfigPathEnv, dir)
	t.Setenv("STUDYPLAN_PATH", dir)
	t.Setenv("STUDYPLAN_BACKEND", store.BackendDiskv)

	require.NoError(t, run(t, "task", "add", "problem", "set", "3",
		"-s", "Maths", "-d", "2026-11-02 09:00", "--duration", "1h30m", "-p", "high"))
	require.NoError(t, run(t, "goal", "add", "finish", "thesis", "--target", "40"))
	require.NoError(t, run(t, "settings", "--default-remind", "45"))

	kv, err := store.OpenDiskv(dir)
	require.NoError(t, err)
	s := app.New(kv)
	s.Load(context.Background())

	require.Len(t, s.Tasks(), 1)
	task := s.Tasks()[0]
	assert.Equal(t, "problem set 3", task.Title)
	assert.Equal(t, 90, task.DurationMins)
	assert.EqualValues(t, "high", task.Priority)

	require.Len(t, s.Goals(), 1)
	assert.Equal(t, 40.0, s.Goals()[0].TargetHours)
	assert.Equal(t, 45, s.Settings().DefaultReminderMins)

	require.NoError(t, run(t, "task", "done", task.ID))
	require.NoError(t, run(t, "goal", "progress", s.Goals()[0].ID, "2.5"))

	s.Load(context.Background())
	assert.True(t, s.Tasks()[0].Completed)
	assert.Equal(t, 2.5, s.Goals()[0].ProgressHours)
}

func TestTaskAddRequiresFlags(t *testing.T) {
	t.Setenv("STUDYPLAN_BACKEND", store.BackendMemory)
	assert.Error(t, run(t, "task", "add", "no", "due"))
}

func TestDisplayAddr(t *testing.T) {
	a := &net.TCPAddr{IP: net.IPv4zero, Port: 9000}
	assert.Equal(t, "127.0.0.1:9000", displayAddr("0.0.0.0", a))
	assert.Equal(t, "localhost:9000", displayAddr("localhost", a))
	assert.Equal(t, "[::1]:9000", displayAddr("::", &net.TCPAddr{IP: net.IPv6loopback, Port: 9000}))
}
