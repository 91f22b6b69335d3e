package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/studyplan/pkg/app"
)

// GoalOptions
type GoalOptions struct {
	Title    string
	Target   float64
	Progress float64
}

func AddGoalTargetArg(cmd *cobra.Command, o *GoalOptions) {
	cmd.Flags().Float64Var(&o.Target, "target", 0,
		"Hours needed to reach the goal.")
}

func AddGoalEditArgs(cmd *cobra.Command, o *GoalOptions) {
	AddGoalTargetArg(cmd, o)
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"New title.")
	cmd.Flags().Float64Var(&o.Progress, "progress", 0,
		"Set the logged hours outright.")
}

// Patch builds an edit from the flags the user actually set.
func (o *GoalOptions) Patch(cmd *cobra.Command) app.GoalPatch {
	var p app.GoalPatch
	if cmd.Flags().Changed("title") {
		p.Title = &o.Title
	}
	if cmd.Flags().Changed("target") {
		p.TargetHours = &o.Target
	}
	if cmd.Flags().Changed("progress") {
		p.ProgressHours = &o.Progress
	}
	return p
}
