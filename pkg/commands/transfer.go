package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/studyplan/pkg/commands/options"
	"tableflip.dev/studyplan/pkg/runner/transfer"
)

func addExport(topLevel *cobra.Command) {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every task, goal and setting as one JSON document",
		Example: `
studyplan export > backup.json
studyplan export -f backup.json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, func(ctx context.Context, p *planner) error {
				s := transfer.Export{File: file, Out: cmd.OutOrStdout(), Store: p.store}
				return s.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Write to this file instead of stdout.")
	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace tasks and goals with those of an exported document",
		Long: `Import reads a document written by export. Tasks and goals present in the
document replace the current ones; settings are merged key by key. A malformed
document is rejected and nothing changes. Use - to read stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(ctx context.Context, p *planner) error {
				s := transfer.Import{File: args[0], In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Store: p.store}
				return s.Do(ctx)
			})
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
