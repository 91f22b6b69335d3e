// Package model defines the planner entities: tasks, goals, settings and the
// snapshot that carries all three in and out of the tool.
package model

import (
	"fmt"
	"math"
	"strings"
	"time"

	"tableflip.dev/studyplan/pkg/timeutil"
)

const (
	// DefaultReminderMins applies to tasks without their own reminder.
	DefaultReminderMins = 30
	// MaxRemindMins caps how far ahead of a due time a reminder may fire.
	MaxRemindMins = 24 * 60
	// MaxProgressHours caps accumulated goal progress.
	MaxProgressHours = 10000
	// DueSoonMins is the window in which an open task counts as due soon.
	DueSoonMins = 60
)

// Priority ranks a task.
type Priority string

const (
	PriorityLow  Priority = "low"
	PriorityMed  Priority = "med"
	PriorityHigh Priority = "high"
)

// ParsePriority accepts low, med(ium) or high in any case. Empty means med.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, nil
	case "", "med", "medium":
		return PriorityMed, nil
	case "high":
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("unknown priority %q, want low, med or high", s)
}

// Rank orders priorities with high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMed:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p.Rank() < 3
}

// Permission mirrors the notification facility's permission state.
type Permission string

const (
	PermissionNotRequested Permission = "not-requested"
	PermissionGranted      Permission = "granted"
	PermissionDenied       Permission = "denied"
	PermissionUnsupported  Permission = "unsupported"
)

// Valid reports whether p is a known permission state.
func (p Permission) Valid() bool {
	switch p {
	case PermissionNotRequested, PermissionGranted, PermissionDenied, PermissionUnsupported:
		return true
	}
	return false
}

// Task is a unit of study work with a due time and estimated duration.
type Task struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Subject      string    `json:"subject"`
	DueAt        time.Time `json:"dueAt"`
	DurationMins int       `json:"durationMins"`
	Priority     Priority  `json:"priority"`
	// RemindMins is nil when the task follows Settings.DefaultReminderMins.
	RemindMins *int      `json:"remindMins,omitempty"`
	Completed  bool      `json:"completed"`
	CreatedAt  time.Time `json:"createdAt"`
}

// IsOverdue is true for open tasks whose due time has passed.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueAt.Before(now)
}

// IsDueSoon is true for open tasks due within the next hour.
func (t Task) IsDueSoon(now time.Time) bool {
	if t.Completed {
		return false
	}
	m := timeutil.MinutesUntil(t.DueAt, now)
	return m >= 0 && m <= DueSoonMins
}

// ReminderLead returns how long before DueAt the reminder fires.
func (t Task) ReminderLead(defaultMins int) time.Duration {
	mins := defaultMins
	if t.RemindMins != nil {
		mins = *t.RemindMins
	}
	return time.Duration(ClampRemindMins(mins)) * time.Minute
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	if t.RemindMins != nil {
		v := *t.RemindMins
		t.RemindMins = &v
	}
	return t
}

// Goal is a long running target of accumulated study hours.
type Goal struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	TargetHours   float64   `json:"targetHours"`
	ProgressHours float64   `json:"progressHours"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Settings holds the planner wide preferences.
type Settings struct {
	DefaultReminderMins int        `json:"defaultReminderMins"`
	Notifications       Permission `json:"notifications"`
}

// DefaultSettings is used when nothing valid is stored.
func DefaultSettings() Settings {
	return Settings{
		DefaultReminderMins: DefaultReminderMins,
		Notifications:       PermissionNotRequested,
	}
}

// Snapshot is the full serialized state used for export and import.
type Snapshot struct {
	Tasks    []Task   `json:"tasks"`
	Goals    []Goal   `json:"goals"`
	Settings Settings `json:"settings"`
}

// ClampRemindMins bounds a reminder lead to [0, MaxRemindMins].
func ClampRemindMins(v int) int {
	return min(max(v, 0), MaxRemindMins)
}

// ClampProgress bounds goal progress to [0, MaxProgressHours].
func ClampProgress(v float64) float64 {
	return math.Min(math.Max(v, 0), MaxProgressHours)
}

// IsFinite reports whether v is a usable number.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
