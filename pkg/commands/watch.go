package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/studyplan/pkg/notify"
	"tableflip.dev/studyplan/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run in the foreground and deliver reminders before tasks are due",
		Long: `Watch keeps one reminder armed per open task, firing the task's reminder lead
(or the default) before it is due. Changes made by other studyplan commands are
picked up as they happen. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, func(ctx context.Context, p *planner) error {
				s := watch.Watch{
					KV:       p.kv,
					Store:    p.store,
					Notifier: notify.NewTerminal(os.Stdout, p.store.Settings().Notifications),
					Poll:     p.cfg.PollInterval(),
					Log:      p.log,
					Out:      cmd.OutOrStdout(),
				}
				return s.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
