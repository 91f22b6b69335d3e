// Package reminder turns task due times into one-shot notification timers.
// Every relevant change cancels all pending timers and recomputes them from
// scratch.
package reminder

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/logging"
	"tableflip.dev/studyplan/pkg/model"
	"tableflip.dev/studyplan/pkg/notify"
	"tableflip.dev/studyplan/pkg/timeutil"
)

// Timer is a pending one-shot callback.
type Timer interface {
	Stop() bool
}

// AfterFunc arms f to run once after d. It may return nil when arming fails.
type AfterFunc func(d time.Duration, f func()) Timer

func stdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithAfterFunc replaces time.AfterFunc.
func WithAfterFunc(fn AfterFunc) Option {
	return func(s *Scheduler) { s.afterFunc = fn }
}

// WithLogger sets the logger; the default discards.
func WithLogger(log *slog.Logger) Option {
	return func(s *Scheduler) { s.log = log }
}

type pending struct {
	timer Timer
	at    time.Time
}

// Scheduler holds at most one pending reminder per task.
type Scheduler struct {
	notifier  notify.Notifier
	afterFunc AfterFunc
	log       *slog.Logger

	mu      sync.Mutex
	pending map[string]*pending
}

// New returns a Scheduler that delivers through n.
func New(n notify.Notifier, opts ...Option) *Scheduler {
	s := &Scheduler{
		notifier:  n,
		afterFunc: stdAfterFunc,
		log:       logging.Discard(),
		pending:   make(map[string]*pending),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Message builds the notification for t as seen at now.
func Message(t model.Task, now time.Time) (title, body, tag string) {
	title = "Reminder: " + t.Title
	body = fmt.Sprintf("%s, due %s", t.Subject, timeutil.FormatDue(t.DueAt, now))
	tag = "task-" + t.ID
	return title, body, tag
}

// RescheduleAll cancels every pending reminder, then arms one for each open
// task whose reminder time is still ahead of now. Nothing is armed unless
// notifications are granted and the notifier supports them. It never fails;
// unarmable reminders are skipped.
func (s *Scheduler) RescheduleAll(tasks []model.Task, now time.Time, settings model.Settings) {
	perm := notify.Effective(s.notifier, settings.Notifications)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	if perm != model.PermissionGranted {
		s.log.Debug("reminder: notifications not granted", "permission", perm)
		return
	}

	for _, t := range tasks {
		if t.Completed {
			continue
		}
		at := t.DueAt.Add(-t.ReminderLead(settings.DefaultReminderMins))
		if !at.After(now) {
			continue
		}
		p := &pending{at: at}
		title, body, tag := Message(t, now)
		id := t.ID
		p.timer = s.afterFunc(at.Sub(now), func() { s.fire(id, p, title, body, tag) })
		if p.timer == nil {
			s.log.Warn("reminder: could not arm timer", "task", id, "at", at)
			continue
		}
		s.pending[id] = p
	}
	s.log.Debug("reminder: rescheduled", "pending", len(s.pending))
}

func (s *Scheduler) fire(id string, p *pending, title, body, tag string) {
	s.mu.Lock()
	if s.pending[id] != p {
		s.mu.Unlock()
		return
	}
	delete(s.pending, id)
	s.mu.Unlock()

	if err := s.notifier.Show(title, body, tag); err != nil {
		s.log.Warn("reminder: delivery failed", "task", id, "error", err)
	}
}

// Pending reports the fire time of every armed reminder by task id.
func (s *Scheduler) Pending() map[string]time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]time.Time, len(s.pending))
	for id, p := range s.pending {
		out[id] = p.at
	}
	return out
}

// Stop cancels every pending reminder.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

func (s *Scheduler) cancelLocked() {
	for id, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, id)
	}
}

// Source is the state a Scheduler follows.
type Source interface {
	Tasks() []model.Task
	Settings() model.Settings
	Subscribe(fn func(app.Change)) (cancel func())
}

// Bind reschedules now and after every task or settings change in src. The
// returned func unsubscribes and cancels pending reminders.
func (s *Scheduler) Bind(src Source, clock func() time.Time) (unbind func()) {
	reschedule := func() { s.RescheduleAll(src.Tasks(), clock(), src.Settings()) }
	cancel := src.Subscribe(func(c app.Change) {
		switch c.Kind {
		case app.ChangeTasks, app.ChangeSettings:
			reschedule()
		}
	})
	reschedule()
	return func() {
		cancel()
		s.Stop()
	}
}
