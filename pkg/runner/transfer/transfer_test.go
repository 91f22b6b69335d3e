package transfer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/store"
)

func newStore(t *testing.T) *app.Service {
	t.Helper()
	s := app.New(store.NewMemory())
	s.Load(context.Background())
	return s
}

func TestExportImportThroughFile(t *testing.T) {
	ctx := context.Background()
	src := newStore(t)
	_, err := src.CreateTask(ctx, app.TaskInput{
		Title: "Flashcards", Subject: "Spanish", DueAt: time.Now().Add(time.Hour), DurationMins: 20,
	})
	require.NoError(t, err)
	_, err = src.CreateGoal(ctx, app.GoalInput{Title: "Vocabulary", TargetHours: 12})
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, (&Export{File: file, Store: src}).Do(ctx))

	dst := newStore(t)
	var out bytes.Buffer
	require.NoError(t, (&Import{File: file, Out: &out, Store: dst}).Do(ctx))
	assert.Equal(t, "Imported 1 tasks and 1 goals.\n", out.String())
	require.Len(t, dst.Tasks(), 1)
	assert.Equal(t, src.Tasks()[0].ID, dst.Tasks()[0].ID)
	assert.True(t, src.Tasks()[0].DueAt.Equal(dst.Tasks()[0].DueAt))
	require.Len(t, dst.Goals(), 1)
	assert.Equal(t, "Vocabulary", dst.Goals()[0].Title)
}

func TestExportToWriter(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, (&Export{Out: &out, Store: newStore(t)}).Do(context.Background()))
	assert.True(t, strings.HasPrefix(out.String(), "{"))
	assert.Contains(t, out.String(), `"tasks": []`)
}

func TestImportFromStdin(t *testing.T) {
	dst := newStore(t)
	in := strings.NewReader(`{"tasks":[],"goals":[],"settings":{"defaultReminderMins":45}}`)
	require.NoError(t, (&Import{File: "-", In: in, Out: &bytes.Buffer{}, Store: dst}).Do(context.Background()))
	assert.Equal(t, 45, dst.Settings().DefaultReminderMins)
}

func TestImportRejectsMalformed(t *testing.T) {
	ctx := context.Background()
	dst := newStore(t)
	_, err := dst.CreateGoal(ctx, app.GoalInput{Title: "Keep me", TargetHours: 1})
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`[1,2,3]`), 0o600))

	err = (&Import{File: file, Store: dst}).Do(ctx)
	assert.ErrorIs(t, err, app.ErrInvalidFormat)
	assert.Len(t, dst.Goals(), 1)
}

func TestImportMissingFile(t *testing.T) {
	err := (&Import{File: filepath.Join(t.TempDir(), "nope.json"), Store: newStore(t)}).Do(context.Background())
	assert.ErrorContains(t, err, "import:")
}
