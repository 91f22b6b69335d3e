// Package task provides the runners behind the task commands.
package task

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/model"
	"tableflip.dev/studyplan/pkg/printers"
	"tableflip.dev/studyplan/pkg/timeutil"
	"tableflip.dev/studyplan/pkg/views"
)

var errNoStore = errors.New("no planner store")

// Add creates a task from user-typed values and prints the open task list.
type Add struct {
	Title        string
	Subject      string
	Due          string
	DurationMins int
	Priority     string
	RemindMins   *int
	JSON         bool

	Store   *app.Service
	Printer printers.PrettyPrint
	Now     func() time.Time
}

func (n *Add) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	now := clock(n.Now)

	due, err := timeutil.ParseDue(n.Due, now)
	if err != nil {
		return err
	}
	priority, err := model.ParsePriority(n.Priority)
	if err != nil {
		return err
	}

	t, err := n.Store.CreateTask(ctx, app.TaskInput{
		Title:        n.Title,
		Subject:      n.Subject,
		DueAt:        due,
		DurationMins: n.DurationMins,
		Priority:     priority,
		RemindMins:   n.RemindMins,
	})
	if err != nil {
		return err
	}
	if n.JSON {
		return n.Printer.JSON(t)
	}

	open := views.FilterAndSortTasks(n.Store.Tasks(), views.Filter{Status: views.StatusOpen, SortBy: views.SortDueAsc}, now)
	n.Printer.TitleWithCount("Open tasks", len(open), "task")
	n.Printer.Tasks(now, open...)
	return nil
}

// List prints the tasks selected by Filter. A non-zero Within keeps only
// tasks due between now and now+Within.
type List struct {
	Filter views.Filter
	Within time.Duration
	JSON   bool

	Store   *app.Service
	Printer printers.PrettyPrint
	Now     func() time.Time
}

func (n *List) Do(_ context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	now := clock(n.Now)

	tasks := views.FilterAndSortTasks(n.Store.Tasks(), n.Filter, now)
	if n.Within > 0 {
		tasks = views.DueBetween(tasks, timeutil.Range{Start: now, End: now.Add(n.Within)})
	}
	if n.JSON {
		return n.Printer.JSON(tasks)
	}

	n.Printer.NewLine()
	n.Printer.TitleWithCount(listTitle(n.Filter.Status), len(tasks), "task")
	n.Printer.Tasks(now, tasks...)
	return nil
}

func listTitle(s views.Status) string {
	switch s {
	case views.StatusOpen:
		return "Open tasks"
	case views.StatusCompleted:
		return "Completed tasks"
	case views.StatusOverdue:
		return "Overdue tasks"
	}
	return "Tasks"
}

// Edit applies a patch to one task.
type Edit struct {
	ID    string
	Patch app.TaskPatch
	JSON  bool

	Store   *app.Service
	Printer printers.PrettyPrint
	Now     func() time.Time
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	t, err := n.Store.UpdateTask(ctx, n.ID, n.Patch)
	if err != nil {
		return err
	}
	if n.JSON {
		return n.Printer.JSON(t)
	}
	n.Printer.Tasks(clock(n.Now), t)
	return nil
}

// Complete marks tasks done, or open again when Done is false.
type Complete struct {
	IDs  []string
	Done bool

	Store   *app.Service
	Printer printers.PrettyPrint
	Now     func() time.Time
}

func (n *Complete) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	changed := make([]model.Task, 0, len(n.IDs))
	for _, id := range n.IDs {
		t, err := n.Store.SetCompleted(ctx, id, n.Done)
		if err != nil {
			return err
		}
		changed = append(changed, t)
	}
	n.Printer.Tasks(clock(n.Now), changed...)
	return nil
}

// Delete removes tasks. Unknown ids are ignored.
type Delete struct {
	IDs   []string
	Store *app.Service
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	for _, id := range n.IDs {
		if err := n.Store.DeleteTask(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}
