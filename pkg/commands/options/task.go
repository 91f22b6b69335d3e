package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/model"
	"tableflip.dev/studyplan/pkg/timeutil"
)

// TaskOptions
type TaskOptions struct {
	Subject  string
	Due      string
	Duration string
	Priority string
	Remind   string
	// Title is only a flag on edit; add takes it from the arguments.
	Title       string
	ClearRemind bool
}

func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVarP(&o.Subject, "subject", "s", "",
		"Subject or course the task belongs to.")
	cmd.Flags().StringVarP(&o.Due, "due", "d", "",
		`Due time, example: --due="2026-03-02 17:00" or --due=2026-03-02 for the end of that day.`)
	cmd.Flags().StringVar(&o.Duration, "duration", "",
		`Estimated effort, example: --duration=90 or --duration=1h30m.`)
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", "",
		"Priority: low, med or high.")
	cmd.Flags().StringVar(&o.Remind, "remind", "",
		`Remind this long before due instead of the default, example: --remind=45m.`)
}

func AddTaskEditArgs(cmd *cobra.Command, o *TaskOptions) {
	AddTaskArgs(cmd, o)
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"New title.")
	cmd.Flags().BoolVar(&o.ClearRemind, "default-remind", false,
		"Use the default reminder lead again.")
}

// RemindMins is nil when --remind was not given.
func (o *TaskOptions) RemindMins(cmd *cobra.Command) (*int, error) {
	if !cmd.Flags().Changed("remind") {
		return nil, nil
	}
	m, err := ParseMinutes(o.Remind)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Patch builds an edit from the flags the user actually set.
func (o *TaskOptions) Patch(cmd *cobra.Command, now time.Time) (app.TaskPatch, error) {
	var p app.TaskPatch
	flags := cmd.Flags()
	if flags.Changed("title") {
		p.Title = &o.Title
	}
	if flags.Changed("subject") {
		p.Subject = &o.Subject
	}
	if flags.Changed("due") {
		due, err := timeutil.ParseDue(o.Due, now)
		if err != nil {
			return p, err
		}
		p.DueAt = &due
	}
	if flags.Changed("duration") {
		m, err := ParseMinutes(o.Duration)
		if err != nil {
			return p, err
		}
		p.DurationMins = &m
	}
	if flags.Changed("priority") {
		pr, err := model.ParsePriority(o.Priority)
		if err != nil {
			return p, err
		}
		p.Priority = &pr
	}
	remind, err := o.RemindMins(cmd)
	if err != nil {
		return p, err
	}
	p.RemindMins = remind
	p.ClearRemind = o.ClearRemind
	return p, nil
}
