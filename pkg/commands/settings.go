package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/studyplan/pkg/commands/options"
	"tableflip.dev/studyplan/pkg/runner/settings"
)

func addSettings(topLevel *cobra.Command) {
	var remind string

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Example: `
studyplan settings
studyplan settings --default-remind 1h
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, func(ctx context.Context, p *planner) error {
				s := settings.Settings{JSON: output.JSON, Store: p.store}
				if cmd.Flags().Changed("default-remind") {
					m, err := options.ParseMinutes(remind)
					if err != nil {
						return err
					}
					s.DefaultRemind = &m
				}
				return s.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&remind, "default-remind", "",
		"Remind this long before due for tasks without their own lead, example: 30 or 1h.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
