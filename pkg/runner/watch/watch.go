// Package watch runs the reminder daemon: it keeps the reminder timers in
// step with the stored tasks until interrupted.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/logging"
	"tableflip.dev/studyplan/pkg/model"
	"tableflip.dev/studyplan/pkg/notify"
	"tableflip.dev/studyplan/pkg/reminder"
	"tableflip.dev/studyplan/pkg/store"
	"tableflip.dev/studyplan/pkg/timeutil"
)

// Watch reloads Store whenever KV changes underneath it and reschedules
// reminders on every reload.
type Watch struct {
	KV       store.KV
	Store    *app.Service
	Notifier notify.Notifier
	// Poll is used for backends without change notifications.
	Poll time.Duration
	Log  *slog.Logger
	Out  io.Writer
	// Changes overrides the change source.
	Changes <-chan store.Event
}

func (w *Watch) Do(ctx context.Context) error {
	if w.Store == nil || w.Notifier == nil {
		return errors.New("watch needs a planner store and a notifier")
	}
	log := w.Log
	if log == nil {
		log = logging.Discard()
	}
	out := w.Out
	if out == nil {
		out = color.Output
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	changes := w.Changes
	if changes == nil {
		var err error
		if changes, err = w.changes(ctx, log); err != nil {
			return err
		}
	}

	if facility := w.Notifier.Permission(); facility == model.PermissionUnsupported &&
		w.Store.Settings().Notifications != facility {
		log.Warn("watch: notifier cannot show notifications", "stored", w.Store.Settings().Notifications)
		if _, err := w.Store.SetNotifications(ctx, facility); err != nil {
			return err
		}
	}

	sched := reminder.New(w.Notifier, reminder.WithLogger(log))
	unbind := sched.Bind(w.Store, time.Now)
	defer unbind()

	w.report(out, sched)
	for {
		select {
		case <-ctx.Done():
			log.Info("watch: stopping")
			return nil
		case ev, ok := <-changes:
			if !ok {
				return nil
			}
			log.Debug("watch: store changed", "key", ev.Key)
			w.Store.Load(ctx)
			w.report(out, sched)
		}
	}
}

func (w *Watch) changes(ctx context.Context, log *slog.Logger) (<-chan store.Event, error) {
	if d, ok := w.KV.(*store.Diskv); ok {
		return d.Watch(ctx, log)
	}
	if w.KV == nil {
		return nil, errors.New("watch needs a key-value store")
	}
	poll := w.Poll
	if poll <= 0 {
		poll = 30 * time.Second
	}
	log.Info("watch: polling store", "interval", poll)
	return store.Poll(ctx, w.KV, poll, log)
}

func (w *Watch) report(out io.Writer, sched *reminder.Scheduler) {
	st := w.Store.Settings()
	pending := sched.Pending()
	faint := color.New(color.Faint)
	if st.Notifications != model.PermissionGranted {
		_, _ = faint.Fprintf(out, "Notifications are %s; run `studyplan notify enable` to arm reminders.\n", st.Notifications)
		return
	}
	var next time.Time
	for _, at := range pending {
		if next.IsZero() || at.Before(next) {
			next = at
		}
	}
	msg := fmt.Sprintf("%d reminder(s) armed", len(pending))
	if !next.IsZero() {
		msg += ", next at " + timeutil.FormatDue(next, time.Now())
	}
	_, _ = faint.Fprintln(out, msg)
}
