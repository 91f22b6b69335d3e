package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/studyplan/pkg/commands/options"
	"tableflip.dev/studyplan/pkg/runner/report"
)

func addWeek(topLevel *cobra.Command) {
	var offset int

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the Monday to Sunday timeline of due tasks",
		Example: `
studyplan week
studyplan week --offset 1
studyplan week --offset -2 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, func(ctx context.Context, p *planner) error {
				s := report.Week{Offset: offset, JSON: output.JSON, Store: p.store}
				return s.Do(ctx)
			})
		},
	}

	cmd.Flags().IntVarP(&offset, "offset", "o", 0, "Whole weeks from the current one; negative looks back.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addStats(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task totals and this week's open workload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, func(ctx context.Context, p *planner) error {
				s := report.Stats{JSON: output.JSON, Store: p.store}
				return s.Do(ctx)
			})
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
