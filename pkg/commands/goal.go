package commands

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/studyplan/pkg/commands/options"
	"tableflip.dev/studyplan/pkg/printers"
	"tableflip.dev/studyplan/pkg/runner/goal"
)

func addGoal(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Track goals measured in study hours",
		Example: `
studyplan goal add finish thesis draft --target 40
studyplan goal progress 9a1e 2.5
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addGoalAdd(cmd)
	addGoalList(cmd)
	addGoalEdit(cmd)
	addGoalProgress(cmd)
	addGoalRm(cmd)

	topLevel.AddCommand(cmd)
}

func addGoalAdd(parent *cobra.Command) {
	gop := &options.GoalOptions{}
	io := &options.IDOptions{}
	var title string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a goal",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, func(ctx context.Context, p *planner) error {
				s := goal.Add{
					Title:       title,
					TargetHours: gop.Target,
					JSON:        output.JSON,
					Store:       p.store,
					Printer:     printers.PrettyPrint{ShowID: io.ShowID},
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddGoalTargetArg(cmd, gop)
	_ = cmd.MarkFlagRequired("target")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addGoalList(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List goals and their progress",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, func(ctx context.Context, p *planner) error {
				s := goal.List{
					JSON:    output.JSON,
					Store:   p.store,
					Printer: printers.PrettyPrint{ShowID: io.ShowID},
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addGoalEdit(parent *cobra.Command) {
	gop := &options.GoalOptions{}

	cmd := &cobra.Command{
		Use:               "edit <id>",
		ValidArgsFunction: goalCompletions,
		Short:             "Change a goal's title, target or logged hours",
		Long: `Change a goal's title, target or logged hours. Targets below one hour become one
hour and logged hours are kept between 0 and 10000.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(ctx context.Context, p *planner) error {
				s := goal.Edit{
					ID:      args[0],
					Patch:   gop.Patch(cmd),
					JSON:    output.JSON,
					Store:   p.store,
					Printer: printers.PrettyPrint{ShowID: true},
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddGoalEditArgs(cmd, gop)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addGoalProgress(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "progress <id> <hours>",
		ValidArgsFunction: goalCompletions,
		Short:             "Log studied hours against a goal",
		Args:              cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(ctx context.Context, p *planner) error {
				hours, err := strconv.ParseFloat(args[1], 64)
				if err != nil {
					return err
				}
				s := goal.Progress{
					ID:      args[0],
					Hours:   hours,
					JSON:    output.JSON,
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

func addGoalRm(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "rm <id>...",
		ValidArgsFunction: goalCompletions,
		Aliases:           []string{"delete"},
		Short:             "Delete goals",
		Args:              cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(ctx context.Context, p *planner) error {
				s := goal.Delete{IDs: args, Store: p.store}
				return s.Do(ctx)
			})
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}
