// Package goal provides the runners behind the goal commands.
package goal

import (
	"context"
	"errors"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/model"
	"tableflip.dev/studyplan/pkg/printers"
	"tableflip.dev/studyplan/pkg/views"
)

var errNoStore = errors.New("no planner store")

// Add creates a goal and prints every goal.
type Add struct {
	Title       string
	TargetHours float64
	JSON        bool

	Store   *app.Service
	Printer printers.PrettyPrint
}

func (n *Add) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	g, err := n.Store.CreateGoal(ctx, app.GoalInput{Title: n.Title, TargetHours: n.TargetHours})
	if err != nil {
		return err
	}
	if n.JSON {
		return n.Printer.JSON(withProgress(g))
	}
	return (&List{Store: n.Store, Printer: n.Printer}).Do(ctx)
}

// Progressed is a goal with its completion, as printed by --json.
type Progressed struct {
	model.Goal
	views.Progress
}

func withProgress(g model.Goal) Progressed {
	return Progressed{Goal: g, Progress: views.GoalProgress(g)}
}

// List prints every goal with its progress bar.
type List struct {
	JSON bool

	Store   *app.Service
	Printer printers.PrettyPrint
}

func (n *List) Do(_ context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	goals := n.Store.Goals()
	if n.JSON {
		out := make([]Progressed, 0, len(goals))
		for _, g := range goals {
			out = append(out, withProgress(g))
		}
		return n.Printer.JSON(out)
	}

	n.Printer.NewLine()
	n.Printer.TitleWithCount("Goals", len(goals), "goal")
	n.Printer.Goals(goals...)
	return nil
}

// Edit applies a patch to one goal.
type Edit struct {
	ID    string
	Patch app.GoalPatch
	JSON  bool

	Store   *app.Service
	Printer printers.PrettyPrint
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	g, err := n.Store.UpdateGoal(ctx, n.ID, n.Patch)
	if err != nil {
		return err
	}
	if n.JSON {
		return n.Printer.JSON(withProgress(g))
	}
	n.Printer.Goals(g)
	return nil
}

// Progress logs studied hours against a goal.
type Progress struct {
	ID    string
	Hours float64
	JSON  bool

	Store   *app.Service
	Printer printers.PrettyPrint
}

func (n *Progress) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	g, err := n.Store.AddGoalProgress(ctx, n.ID, n.Hours)
	if err != nil {
		return err
	}
	if n.JSON {
		return n.Printer.JSON(withProgress(g))
	}
	n.Printer.Goals(g)
	return nil
}

// Delete removes goals. Unknown ids are ignored.
type Delete struct {
	IDs   []string
	Store *app.Service
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	for _, id := range n.IDs {
		if err := n.Store.DeleteGoal(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
