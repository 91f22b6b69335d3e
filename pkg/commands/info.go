package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/studyplan/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where the planner is stored.",
		Example: `
studyplan info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, func(ctx context.Context, p *planner) error {
				s := info.Info{
					Config: p.cfg,
					Store:  p.store,
				}
				return s.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
