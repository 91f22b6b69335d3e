// Package views computes read-only projections of the planner state: filtered
// task lists, workload statistics, the weekly timeline and goal progress.
// Nothing here mutates its input.
package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/studyplan/pkg/model"
	"tableflip.dev/studyplan/pkg/timeutil"
)

// Status selects tasks by completion state.
type Status string

const (
	StatusAll       Status = "all"
	StatusOpen      Status = "open"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
)

// SortKey orders a task list. The zero value keeps the input order.
type SortKey string

const (
	SortNone        SortKey = ""
	SortDueAsc      SortKey = "dueAsc"
	SortDueDesc     SortKey = "dueDesc"
	SortPriority    SortKey = "priority"
	SortCreatedDesc SortKey = "createdDesc"
)

// Filter is the list state a user picks.
type Filter struct {
	Query  string
	Status Status
	SortBy SortKey
}

// ParseStatus accepts the status names case-insensitively. Empty means all.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return StatusAll, nil
	case "open":
		return StatusOpen, nil
	case "completed", "done":
		return StatusCompleted, nil
	case "overdue":
		return StatusOverdue, nil
	}
	return "", fmt.Errorf("unknown status %q, want all, open, completed or overdue", s)
}

// ParseSort accepts the sort key names case-insensitively. Empty and "none"
// keep the input order.
func ParseSort(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "dueasc", "due":
		return SortDueAsc, nil
	case "duedesc":
		return SortDueDesc, nil
	case "priority":
		return SortPriority, nil
	case "createddesc", "created":
		return SortCreatedDesc, nil
	}
	return "", fmt.Errorf("unknown sort %q, want dueAsc, dueDesc, priority or createdDesc", s)
}

// FilterAndSortTasks returns the tasks matching f, ordered by f.SortBy. Ties
// keep their relative input order. The result never aliases tasks.
func FilterAndSortTasks(tasks []model.Task, f Filter, now time.Time) []model.Task {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Title), query) &&
			!strings.Contains(strings.ToLower(t.Subject), query) {
			continue
		}
		if !matchStatus(t, f.Status, now) {
			continue
		}
		out = append(out, t.Clone())
	}

	if less := lessFor(f.SortBy); less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

func matchStatus(t model.Task, s Status, now time.Time) bool {
	switch s {
	case StatusOpen:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	case StatusOverdue:
		return t.IsOverdue(now)
	}
	return true
}

func lessFor(k SortKey) func(a, b model.Task) bool {
	switch k {
	case SortDueAsc:
		return func(a, b model.Task) bool { return a.DueAt.Before(b.DueAt) }
	case SortDueDesc:
		return func(a, b model.Task) bool { return a.DueAt.After(b.DueAt) }
	case SortPriority:
		return func(a, b model.Task) bool { return a.Priority.Rank() < b.Priority.Rank() }
	case SortCreatedDesc:
		return func(a, b model.Task) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	return nil
}

// DueBetween keeps the tasks whose due time lies inside r.
func DueBetween(tasks []model.Task, r timeutil.Range) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if r.Contains(t.DueAt) {
			out = append(out, t.Clone())
		}
	}
	return out
}
