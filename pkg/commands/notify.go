package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/studyplan/pkg/notify"
	"tableflip.dev/studyplan/pkg/runner/notifications"
)

func addNotify(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Manage reminder notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	for _, a := range []struct {
		action notifications.Action
		short  string
	}{
		{notifications.Status, "Show whether reminders are delivered"},
		{notifications.Enable, "Ask for permission to deliver reminders"},
		{notifications.Disable, "Stop delivering reminders"},
		{notifications.Test, "Deliver a test reminder"},
	} {
		action := a.action
		cmd.AddCommand(&cobra.Command{
			Use:   string(action),
			Short: a.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withPlanner(cmd, func(ctx context.Context, p *planner) error {
					s := notifications.Notifications{
						Action:   action,
						Store:    p.store,
						Notifier: notify.NewTerminal(os.Stdout, p.store.Settings().Notifications),
					}
					return s.Do(ctx)
				})
			},
		})
	}

	topLevel.AddCommand(cmd)
}
