// Package notifications manages the reminder permission and lets the user
// try a delivery.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/model"
	"tableflip.dev/studyplan/pkg/notify"
)

// Action selects what Notifications does.
type Action string

const (
	Status  Action = "status"
	Enable  Action = "enable"
	Disable Action = "disable"
	Test    Action = "test"
)

// Notifications runs one Action against the stored permission.
type Notifications struct {
	Action   Action
	Store    *app.Service
	Notifier notify.Notifier
	Out      io.Writer
}

func (n *Notifications) Do(ctx context.Context) error {
	if n.Store == nil || n.Notifier == nil {
		return errors.New("notifications need a planner store and a notifier")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	switch n.Action {
	case Status, "":
		// fall through to the report below
	case Enable:
		p, err := n.Notifier.RequestPermission(ctx)
		if err != nil {
			return err
		}
		if _, err := n.Store.SetNotifications(ctx, p); err != nil {
			return err
		}
	case Disable:
		if _, err := n.Store.SetNotifications(ctx, model.PermissionDenied); err != nil {
			return err
		}
	case Test:
		return notify.Deliver(n.Notifier, n.Store.Settings().Notifications,
			"Reminder: test", "Reminders will look like this.", "test")
	default:
		return fmt.Errorf("unknown notifications action %q", n.Action)
	}

	stored := n.Store.Settings().Notifications
	_, _ = fmt.Fprintf(out, "Notifications: %s", permissionColor(stored).Sprint(stored))
	if facility := n.Notifier.Permission(); facility == model.PermissionUnsupported {
		_, _ = fmt.Fprint(out, color.New(color.Faint).Sprint(" (output is not a terminal)"))
	}
	_, _ = fmt.Fprintln(out)
	return nil
}

func permissionColor(p model.Permission) *color.Color {
	switch p {
	case model.PermissionGranted:
		return color.New(color.FgGreen, color.Bold)
	case model.PermissionDenied:
		return color.New(color.FgRed)
	}
	return color.New(color.Faint)
}
