package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/studyplan/pkg/commands/options"
	"tableflip.dev/studyplan/pkg/printers"
	"tableflip.dev/studyplan/pkg/runner/task"
)

func addTask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Add, list and change study tasks",
		Example: `
studyplan task add read chapter 4 --subject biology --due 2026-03-02 --duration 90
studyplan task list --status open --sort dueAsc
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTaskAdd(cmd)
	addTaskList(cmd)
	addTaskEdit(cmd)
	addTaskDone(cmd, "done", true)
	addTaskDone(cmd, "undo", false)
	addTaskRm(cmd)

	topLevel.AddCommand(cmd)
}

func addTaskAdd(parent *cobra.Command) {
	to := &options.TaskOptions{}
	io := &options.IDOptions{}
	var title string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Example: `
studyplan task add problem set 3 -s maths -d "2026-03-02 09:00" --duration 1h30m -p high
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, func(ctx context.Context, p *planner) error {
				duration, err := options.ParseMinutes(to.Duration)
				if err != nil {
					return err
				}
				remind, err := to.RemindMins(cmd)
				if err != nil {
					return err
				}
				s := task.Add{
					Title:        title,
					Subject:      to.Subject,
					Due:          to.Due,
					DurationMins: duration,
					Priority:     to.Priority,
					RemindMins:   remind,
					JSON:         output.JSON,
					Store:        p.store,
					Printer:      printers.PrettyPrint{ShowID: io.ShowID},
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddTaskArgs(cmd, to)
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("due")
	_ = cmd.MarkFlagRequired("duration")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTaskList(parent *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Example: `
studyplan task list
studyplan task list -q essay --status overdue
studyplan task list --within 3d --sort dueAsc -k
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, func(ctx context.Context, p *planner) error {
				f, within, err := fo.Filter()
				if err != nil {
					return err
				}
				s := task.List{
					Filter:  f,
					Within:  within,
					JSON:    output.JSON,
					Store:   p.store,
					Printer: printers.PrettyPrint{ShowID: io.ShowID},
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTaskEdit(parent *cobra.Command) {
	to := &options.TaskOptions{}

	cmd := &cobra.Command{
		Use:               "edit <id>",
		ValidArgsFunction: taskCompletions,
		Short:             "Change fields of a task",
		Long: `Change fields of a task. Only the flags given are applied; an empty title or
subject, or a non-positive duration, keeps the current value.`,
		Example: `
studyplan task edit 3f2c --due "2026-03-03 12:00" --remind 2h
studyplan task edit 3f2c --default-remind
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(ctx context.Context, p *planner) error {
				patch, err := to.Patch(cmd, time.Now())
				if err != nil {
					return err
				}
				s := task.Edit{
					ID:      args[0],
					Patch:   patch,
					JSON:    output.JSON,
					Store:   p.store,
					Printer: printers.PrettyPrint{ShowID: true},
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddTaskEditArgs(cmd, to)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTaskDone(parent *cobra.Command, use string, done bool) {
	short := "Mark tasks as completed"
	if !done {
		short = "Mark completed tasks as open again"
	}

	cmd := &cobra.Command{
		Use:               use + " <id>...",
		ValidArgsFunction: taskCompletions,
		Short:             short,
		Args:              cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(ctx context.Context, p *planner) error {
				s := task.Complete{
					IDs:     args,
					Done:    done,
					Store:   p.store,
					Printer: printers.PrettyPrint{ShowID: true},
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTaskRm(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "rm <id>...",
		ValidArgsFunction: taskCompletions,
		Aliases:           []string{"delete"},
		Short:             "Delete tasks",
		Args:              cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(ctx context.Context, p *planner) error {
				s := task.Delete{IDs: args, Store: p.store}
				return s.Do(ctx)
			})
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}
