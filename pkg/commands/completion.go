package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/studyplan/pkg/app"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(studyplan completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(studyplan completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// taskCompletions offers the ids of open tasks, titled, for commands that
// take a task id.
func taskCompletions(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return idCompletions(func(s *app.Service) []string {
		var out []string
		for _, t := range s.Tasks() {
			out = append(out, t.ID+"\t"+t.Title)
		}
		return out
	})
}

func goalCompletions(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return idCompletions(func(s *app.Service) []string {
		var out []string
		for _, g := range s.Goals() {
			out = append(out, g.ID+"\t"+g.Title)
		}
		return out
	})
}

func idCompletions(list func(*app.Service) []string) ([]string, cobra.ShellCompDirective) {
	p, err := openPlanner(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer p.Close()
	return list(p.store), cobra.ShellCompDirectiveNoFileComp
}
