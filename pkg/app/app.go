// Package app owns the planner state. Service is the only writer of the task,
// goal and settings collections; every mutation is persisted before it is
// visible and then announced to subscribers.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/studyplan/pkg/logging"
	"tableflip.dev/studyplan/pkg/model"
	"tableflip.dev/studyplan/pkg/store"
)

// ChangeKind names the collection a Change refers to.
type ChangeKind int

const (
	ChangeTasks ChangeKind = iota
	ChangeGoals
	ChangeSettings
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeTasks:
		return store.KeyTasks
	case ChangeGoals:
		return store.KeyGoals
	case ChangeSettings:
		return store.KeySettings
	}
	return "unknown"
}

// Change is published after a collection was persisted.
type Change struct {
	Kind ChangeKind
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs replaces the UUID generator.
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithLogger sets the logger; the default discards.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// Service is the planner's data store.
type Service struct {
	kv    store.KV
	now   func() time.Time
	newID func() string
	log   *slog.Logger

	mu       sync.Mutex
	tasks    []model.Task
	goals    []model.Goal
	settings model.Settings

	subMu   sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// New returns an empty Service over kv. Call Load to read persisted state.
func New(kv store.KV, opts ...Option) *Service {
	s := &Service{
		kv:       kv,
		now:      time.Now,
		newID:    uuid.NewString,
		log:      logging.Discard(),
		tasks:    []model.Task{},
		goals:    []model.Goal{},
		settings: model.DefaultSettings(),
		subs:     make(map[int]func(Change)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the in-memory state with what kv holds. A missing, unreadable
// or malformed collection is replaced by its empty or default value; Load
// never fails.
func (s *Service) Load(ctx context.Context) {
	tasks := []model.Task{}
	if err := s.read(ctx, store.KeyTasks, &tasks); err != nil {
		s.log.Warn("app: tasks unreadable, starting empty", "error", err)
		tasks = []model.Task{}
	}
	goals := []model.Goal{}
	if err := s.read(ctx, store.KeyGoals, &goals); err != nil {
		s.log.Warn("app: goals unreadable, starting empty", "error", err)
		goals = []model.Goal{}
	}
	settings := model.DefaultSettings()
	if err := s.read(ctx, store.KeySettings, &settings); err != nil {
		s.log.Warn("app: settings unreadable, using defaults", "error", err)
		settings = model.DefaultSettings()
	}

	now := s.now()
	s.mu.Lock()
	s.tasks = s.normalizeTasks(tasks, now)
	s.goals = s.normalizeGoals(goals, now)
	s.settings = normalizeSettings(settings)
	s.mu.Unlock()

	s.log.Debug("app: loaded", "tasks", len(tasks), "goals", len(goals))
	s.publish(ChangeTasks, ChangeGoals, ChangeSettings)
}

// Save writes all three collections. The first failure is returned.
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeAll(ctx, s.tasks, s.goals, s.settings)
}

// Subscribe registers fn for every Change. fn runs on the mutating
// goroutine after the Service lock is released. The returned func
// unsubscribes.
func (s *Service) Subscribe(fn func(Change)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Service) publish(kinds ...ChangeKind) {
	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, k := range kinds {
		for _, fn := range fns {
			fn(Change{Kind: k})
		}
	}
}

// Settings returns the current settings.
func (s *Service) Settings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetDefaultReminder changes the reminder lead used by tasks without their own.
func (s *Service) SetDefaultReminder(ctx context.Context, mins int) (model.Settings, error) {
	if mins < 0 {
		return model.Settings{}, invalid("defaultReminderMins", "must not be negative")
	}
	mins = model.ClampRemindMins(mins)
	return s.updateSettings(ctx, func(st *model.Settings) { st.DefaultReminderMins = mins })
}

// SetNotifications records the notification permission last reported.
func (s *Service) SetNotifications(ctx context.Context, p model.Permission) (model.Settings, error) {
	if !p.Valid() {
		return model.Settings{}, invalid("notifications", fmt.Sprintf("unknown permission %q", p))
	}
	return s.updateSettings(ctx, func(st *model.Settings) { st.Notifications = p })
}

func (s *Service) updateSettings(ctx context.Context, fn func(*model.Settings)) (model.Settings, error) {
	s.mu.Lock()
	next := s.settings
	fn(&next)
	if err := s.write(ctx, store.KeySettings, next); err != nil {
		s.mu.Unlock()
		return model.Settings{}, err
	}
	s.settings = next
	s.mu.Unlock()

	s.publish(ChangeSettings)
	return next, nil
}

func (s *Service) read(ctx context.Context, key string, into any) error {
	data, err := s.kv.Read(ctx, key)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, into)
}

func (s *Service) write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, key, err)
	}
	if err := s.kv.Write(ctx, key, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, key, err)
	}
	return nil
}

// writeAll must be called with s.mu held.
func (s *Service) writeAll(ctx context.Context, tasks []model.Task, goals []model.Goal, settings model.Settings) error {
	return s.replaceAll(ctx,
		model.Snapshot{Tasks: tasks, Goals: goals, Settings: settings},
		model.Snapshot{Tasks: s.tasks, Goals: s.goals, Settings: s.settings})
}

// replaceAll writes next key by key. When a write fails, the keys already
// written are put back to prev so the store never holds a mix of both.
func (s *Service) replaceAll(ctx context.Context, next, prev model.Snapshot) error {
	type entry struct {
		key        string
		next, prev any
	}
	entries := []entry{
		{store.KeyTasks, next.Tasks, prev.Tasks},
		{store.KeyGoals, next.Goals, prev.Goals},
		{store.KeySettings, next.Settings, prev.Settings},
	}
	for i, e := range entries {
		err := s.write(ctx, e.key, e.next)
		if err == nil {
			continue
		}
		for _, done := range entries[:i] {
			if rerr := s.write(ctx, done.key, done.prev); rerr != nil {
				s.log.Error("app: restore after failed write", "key", done.key, "error", rerr)
			}
		}
		return err
	}
	return nil
}

// normalizeTasks fills defaults and makes ids unique.
func (s *Service) normalizeTasks(tasks []model.Task, now time.Time) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if _, dup := seen[t.ID]; t.ID == "" || dup {
			t.ID = s.newID()
		}
		seen[t.ID] = struct{}{}
		if !t.Priority.Valid() {
			t.Priority = model.PriorityMed
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		if t.RemindMins != nil {
			v := model.ClampRemindMins(*t.RemindMins)
			t.RemindMins = &v
		}
		t.DueAt = t.DueAt.UTC()
		t.CreatedAt = t.CreatedAt.UTC()
		out = append(out, t)
	}
	return out
}

func (s *Service) normalizeGoals(goals []model.Goal, now time.Time) []model.Goal {
	out := make([]model.Goal, 0, len(goals))
	seen := make(map[string]struct{}, len(goals))
	for _, g := range goals {
		if _, dup := seen[g.ID]; g.ID == "" || dup {
			g.ID = s.newID()
		}
		seen[g.ID] = struct{}{}
		if g.CreatedAt.IsZero() {
			g.CreatedAt = now
		}
		g.CreatedAt = g.CreatedAt.UTC()
		g.ProgressHours = model.ClampProgress(g.ProgressHours)
		out = append(out, g)
	}
	return out
}

func normalizeSettings(st model.Settings) model.Settings {
	if st.DefaultReminderMins < 0 {
		st.DefaultReminderMins = model.DefaultReminderMins
	}
	st.DefaultReminderMins = model.ClampRemindMins(st.DefaultReminderMins)
	if !st.Notifications.Valid() {
		st.Notifications = model.PermissionNotRequested
	}
	return st
}

func cloneTasks(in []model.Task) []model.Task {
	out := make([]model.Task, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}

func cloneGoals(in []model.Goal) []model.Goal {
	out := make([]model.Goal, len(in))
	copy(out, in)
	return out
}
