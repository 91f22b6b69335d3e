package report

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/printers"
	"tableflip.dev/studyplan/pkg/store"
	"tableflip.dev/studyplan/pkg/views"
)

// Monday.
var now = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

func seeded(t *testing.T) *app.Service {
	t.Helper()
	ctx := context.Background()
	s := app.New(store.NewMemory(), app.WithClock(func() time.Time { return now }))
	s.Load(ctx)
	for _, in := range []app.TaskInput{
		{Title: "Quiz prep", Subject: "Chem", DueAt: now.Add(2 * time.Hour), DurationMins: 60},
		{Title: "Essay", Subject: "English", DueAt: now.Add(50 * time.Hour), DurationMins: 90},
		{Title: "Old lab", Subject: "Physics", DueAt: now.Add(-24 * time.Hour), DurationMins: 30},
	} {
		_, err := s.CreateTask(ctx, in)
		require.NoError(t, err)
	}
	return s
}

func TestWeekJSON(t *testing.T) {
	s := seeded(t)
	var out bytes.Buffer
	w := Week{JSON: true, Store: s, Printer: printers.PrettyPrint{Out: &out}, Now: func() time.Time { return now }}
	require.NoError(t, w.Do(context.Background()))

	var got WeekResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, now.Truncate(24*time.Hour), got.Range.Start.UTC())
	require.Len(t, got.Days[0].Tasks, 1)
	assert.Equal(t, "Quiz prep", got.Days[0].Tasks[0].Title)
	require.Len(t, got.Days[2].Tasks, 1)
	assert.Equal(t, "Essay", got.Days[2].Tasks[0].Title)
}

func TestWeekOffsetBack(t *testing.T) {
	s := seeded(t)
	var out bytes.Buffer
	w := Week{Offset: -1, JSON: true, Store: s, Printer: printers.PrettyPrint{Out: &out}, Now: func() time.Time { return now }}
	require.NoError(t, w.Do(context.Background()))

	var got WeekResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Days[6].Tasks, 1)
	assert.Equal(t, "Old lab", got.Days[6].Tasks[0].Title)
}

func TestStatsJSON(t *testing.T) {
	s := seeded(t)
	var out bytes.Buffer
	st := Stats{JSON: true, Store: s, Printer: printers.PrettyPrint{Out: &out}, Now: func() time.Time { return now }}
	require.NoError(t, st.Do(context.Background()))

	var got views.Stats
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 1, got.Overdue)
	assert.Equal(t, 2, got.Upcoming)
	assert.Equal(t, 2.5, got.WeeklyHours)
}

func TestStatsPretty(t *testing.T) {
	s := seeded(t)
	var out bytes.Buffer
	st := Stats{Store: s, Printer: printers.PrettyPrint{Out: &out}, Now: func() time.Time { return now }}
	require.NoError(t, st.Do(context.Background()))
	assert.Contains(t, out.String(), "Workload")
}
