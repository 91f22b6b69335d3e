// Package settings shows and changes the planner settings.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosuri/uitable"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/printers"
)

// Settings prints the settings, after applying DefaultRemind when set.
type Settings struct {
	DefaultRemind *int
	JSON          bool

	Store   *app.Service
	Printer printers.PrettyPrint
}

func (n *Settings) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("no planner store")
	}
	st := n.Store.Settings()
	if n.DefaultRemind != nil {
		var err error
		if st, err = n.Store.SetDefaultReminder(ctx, *n.DefaultRemind); err != nil {
			return err
		}
	}
	if n.JSON {
		return n.Printer.JSON(st)
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Default reminder", fmt.Sprintf("%d minutes before due", st.DefaultReminderMins))
	tbl.AddRow("Notifications", string(st.Notifications))

	n.Printer.NewLine()
	n.Printer.Title("Settings")
	return n.Printer.Table(tbl)
}
