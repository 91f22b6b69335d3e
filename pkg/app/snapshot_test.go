package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/studyplan/pkg/model"
	"tableflip.dev/studyplan/pkg/store"
)

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestService(t, nil)

	remind := 10
	in := validTask()
	in.RemindMins = &remind
	in.Priority = model.PriorityHigh
	in.DueAt = time.Date(2026, time.October, 21, 14, 0, 0, 123456789, time.FixedZone("x", 3600))
	task, err := src.CreateTask(ctx, in)
	require.NoError(t, err)
	_, err = src.SetCompleted(ctx, task.ID, true)
	require.NoError(t, err)
	_, err = src.CreateTask(ctx, validTask())
	require.NoError(t, err)
	g, err := src.CreateGoal(ctx, GoalInput{Title: "Thesis", TargetHours: 40})
	require.NoError(t, err)
	_, err = src.AddGoalProgress(ctx, g.ID, 2.5)
	require.NoError(t, err)
	_, err = src.SetDefaultReminder(ctx, 45)
	require.NoError(t, err)
	_, err = src.SetNotifications(ctx, model.PermissionDenied)
	require.NoError(t, err)

	exported := src.ExportSnapshot()
	data, err := json.Marshal(exported)
	require.NoError(t, err)

	dst := newTestService(t, nil)
	require.NoError(t, dst.ImportSnapshot(ctx, data))

	assert.Equal(t, exported, dst.ExportSnapshot())
}

func TestExportIsACopy(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil)
	remind := 5
	in := validTask()
	in.RemindMins = &remind
	_, err := s.CreateTask(ctx, in)
	require.NoError(t, err)

	snap := s.ExportSnapshot()
	snap.Tasks[0].Title = "changed"
	*snap.Tasks[0].RemindMins = 99

	assert.Equal(t, "Read chapter 4", s.Tasks()[0].Title)
	assert.Equal(t, 5, *s.Tasks()[0].RemindMins)
}

func TestExportEmptyEncodesArrays(t *testing.T) {
	s := newTestService(t, nil)
	data, err := json.Marshal(s.ExportSnapshot())
	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks":[],"goals":[],"settings":{"defaultReminderMins":30,"notifications":"not-requested"}}`, string(data))
}

func TestImportRejectsMalformedShape(t *testing.T) {
	docs := []string{
		`[]`,
		`null`,
		`"tasks"`,
		`{}`,
		`{"tasks": {}}`,
		`{"tasks": [], "goals": "none"}`,
		`{"tasks": [], "settings": []}`,
		`{"tasks": [{"durationMins": "long"}]}`,
		`not json`,
	}
	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			ctx := context.Background()
			kv := store.NewMemory()
			s := newTestService(t, kv)
			task, err := s.CreateTask(ctx, validTask())
			require.NoError(t, err)
			before := s.ExportSnapshot()

			err = s.ImportSnapshot(ctx, []byte(doc))
			require.ErrorIs(t, err, ErrInvalidFormat)
			assert.Equal(t, before, s.ExportSnapshot())
			assert.Equal(t, task.ID, storedTasks(t, kv)[0].ID)
		})
	}
}

func TestImportMergesSettingsKeys(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil)
	_, err := s.SetNotifications(ctx, model.PermissionGranted)
	require.NoError(t, err)
	_, err = s.CreateTask(ctx, validTask())
	require.NoError(t, err)

	err = s.ImportSnapshot(ctx, []byte(`{"goals": [], "settings": {"defaultReminderMins": 12, "notifications": "bogus", "theme": "dark"}}`))
	require.NoError(t, err)

	st := s.Settings()
	assert.Equal(t, 12, st.DefaultReminderMins)
	assert.Equal(t, model.PermissionGranted, st.Notifications)
	// tasks were absent from the document and stay as they were.
	assert.Len(t, s.Tasks(), 1)
}

func TestImportWriteFailure(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{KV: store.NewMemory(), failOn: map[string]bool{}}
	s := newTestService(t, kv)
	_, err := s.CreateTask(ctx, validTask())
	require.NoError(t, err)

	kv.failOn[store.KeyTasks] = true
	err = s.ImportSnapshot(ctx, []byte(`{"tasks": []}`))
	require.ErrorIs(t, err, ErrWrite)
	assert.Len(t, s.Tasks(), 1)
}

func TestImportPartialWriteIsRolledBack(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{KV: store.NewMemory(), failOn: map[string]bool{}}
	s := newTestService(t, kv)
	_, err := s.CreateTask(ctx, validTask())
	require.NoError(t, err)
	_, err = s.CreateGoal(ctx, GoalInput{Title: "Revise", TargetHours: 4})
	require.NoError(t, err)

	kv.failOn[store.KeyGoals] = true
	err = s.ImportSnapshot(ctx, []byte(`{"tasks": [], "goals": []}`))
	require.ErrorIs(t, err, ErrWrite)

	// tasks were written before goals failed and must be back on disk.
	assert.Len(t, storedTasks(t, kv), 1)
	assert.Len(t, s.Tasks(), 1)

	delete(kv.failOn, store.KeyGoals)
	s.Load(ctx)
	assert.Len(t, s.Tasks(), 1)
	assert.Len(t, s.Goals(), 1)
}
