package model

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"past open", Task{DueAt: now.Add(-time.Minute)}, true},
		{"past completed", Task{DueAt: now.Add(-time.Minute), Completed: true}, false},
		{"exactly now", Task{DueAt: now}, false},
		{"future", Task{DueAt: now.Add(time.Hour)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.IsOverdue(now))
			assert.Equal(t, !tt.task.Completed && tt.task.DueAt.Before(now), tt.task.IsOverdue(now))
		})
	}
}

func TestTaskIsDueSoon(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	assert.True(t, Task{DueAt: now}.IsDueSoon(now))
	assert.True(t, Task{DueAt: now.Add(60 * time.Minute)}.IsDueSoon(now))
	assert.False(t, Task{DueAt: now.Add(61 * time.Minute)}.IsDueSoon(now))
	assert.False(t, Task{DueAt: now.Add(-2 * time.Minute)}.IsDueSoon(now))
	assert.False(t, Task{DueAt: now.Add(10 * time.Minute), Completed: true}.IsDueSoon(now))
}

func TestReminderLead(t *testing.T) {
	ten := 10
	assert.Equal(t, 30*time.Minute, Task{}.ReminderLead(30))
	assert.Equal(t, 10*time.Minute, Task{RemindMins: &ten}.ReminderLead(30))
}

func TestParsePriority(t *testing.T) {
	for in, want := range map[string]Priority{"": PriorityMed, "HIGH": PriorityHigh, "medium": PriorityMed, " low ": PriorityLow} {
		got, err := ParsePriority(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParsePriority("urgent")
	assert.Error(t, err)
	assert.False(t, Priority("urgent").Valid())
}

func TestClamps(t *testing.T) {
	assert.Equal(t, 0, ClampRemindMins(-5))
	assert.Equal(t, 1440, ClampRemindMins(5000))
	assert.Equal(t, 45, ClampRemindMins(45))
	assert.Equal(t, 10000.0, ClampProgress(10003))
	assert.Equal(t, 0.0, ClampProgress(-1))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
}

func TestCloneDetachesReminder(t *testing.T) {
	v := 15
	orig := Task{ID: "a", RemindMins: &v}
	cp := orig.Clone()
	*cp.RemindMins = 99
	assert.Equal(t, 15, *orig.RemindMins)
}

func TestTaskJSONShape(t *testing.T) {
	due := time.Date(2026, time.October, 21, 14, 0, 0, 0, time.UTC)
	b, err := json.Marshal(Task{ID: "x", Title: "Read", Subject: "Bio", DueAt: due, DurationMins: 60, Priority: PriorityHigh})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"x","title":"Read","subject":"Bio","dueAt":"2026-10-21T14:00:00Z","durationMins":60,"priority":"high","completed":false,"createdAt":"0001-01-01T00:00:00Z"}`, string(b))
}
