package app

import (
	"context"
	"strings"
	"time"

	"tableflip.dev/studyplan/pkg/model"
	"tableflip.dev/studyplan/pkg/store"
)

// TaskInput carries the fields of a new task.
type TaskInput struct {
	Title        string
	Subject      string
	DueAt        time.Time
	DurationMins int
	// Priority defaults to med when empty.
	Priority model.Priority
	// RemindMins is clamped to [0, 1440]; nil follows the global default.
	RemindMins *int
}

// TaskPatch is a single structured edit. Nil fields are left alone; a field
// holding an unusable value keeps the old value.
type TaskPatch struct {
	Title        *string
	Subject      *string
	DueAt        *time.Time
	DurationMins *int
	Priority     *model.Priority
	RemindMins   *int
	// ClearRemind puts the task back on the global default reminder.
	ClearRemind bool
}

// Tasks returns a copy of every task in insertion order.
func (s *Service) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

// Task returns the task with id.
func (s *Service) Task(id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexTask(s.tasks, id); i >= 0 {
		return s.tasks[i].Clone(), nil
	}
	return model.Task{}, notFound("task", id)
}

// CreateTask validates in, stores the new task and returns it.
func (s *Service) CreateTask(ctx context.Context, in TaskInput) (model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Task{}, invalid("title", "required")
	}
	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		return model.Task{}, invalid("subject", "required")
	}
	if in.DueAt.IsZero() {
		return model.Task{}, invalid("dueAt", "required")
	}
	if in.DurationMins <= 0 {
		return model.Task{}, invalid("durationMins", "must be positive")
	}
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMed
	}
	if !priority.Valid() {
		return model.Task{}, invalid("priority", "want low, med or high")
	}

	t := model.Task{
		ID:           s.newID(),
		Title:        title,
		Subject:      subject,
		DueAt:        in.DueAt.UTC(),
		DurationMins: in.DurationMins,
		Priority:     priority,
		CreatedAt:    s.now().UTC(),
	}
	if in.RemindMins != nil {
		v := model.ClampRemindMins(*in.RemindMins)
		t.RemindMins = &v
	}

	err := s.mutateTasks(ctx, func(tasks []model.Task) ([]model.Task, error) {
		return append(tasks, t), nil
	})
	if err != nil {
		return model.Task{}, err
	}
	s.log.Debug("app: task created", "id", t.ID, "due", t.DueAt)
	return t.Clone(), nil
}

// UpdateTask applies p to the task with id.
func (s *Service) UpdateTask(ctx context.Context, id string, p TaskPatch) (model.Task, error) {
	var updated model.Task
	err := s.mutateTasks(ctx, func(tasks []model.Task) ([]model.Task, error) {
		i := indexTask(tasks, id)
		if i < 0 {
			return nil, notFound("task", id)
		}
		t := &tasks[i]
		if p.Title != nil {
			if v := strings.TrimSpace(*p.Title); v != "" {
				t.Title = v
			} else {
				s.log.Debug("app: ignoring empty title", "id", id)
			}
		}
		if p.Subject != nil {
			if v := strings.TrimSpace(*p.Subject); v != "" {
				t.Subject = v
			} else {
				s.log.Debug("app: ignoring empty subject", "id", id)
			}
		}
		if p.DueAt != nil && !p.DueAt.IsZero() {
			t.DueAt = p.DueAt.UTC()
		}
		if p.DurationMins != nil {
			if *p.DurationMins > 0 {
				t.DurationMins = *p.DurationMins
			} else {
				s.log.Debug("app: ignoring non-positive duration", "id", id, "durationMins", *p.DurationMins)
			}
		}
		if p.Priority != nil && p.Priority.Valid() {
			t.Priority = *p.Priority
		}
		switch {
		case p.ClearRemind:
			t.RemindMins = nil
		case p.RemindMins != nil:
			v := model.ClampRemindMins(*p.RemindMins)
			t.RemindMins = &v
		}
		updated = t.Clone()
		return tasks, nil
	})
	if err != nil {
		return model.Task{}, err
	}
	return updated, nil
}

// SetCompleted marks the task with id done or open again.
func (s *Service) SetCompleted(ctx context.Context, id string, done bool) (model.Task, error) {
	var updated model.Task
	err := s.mutateTasks(ctx, func(tasks []model.Task) ([]model.Task, error) {
		i := indexTask(tasks, id)
		if i < 0 {
			return nil, notFound("task", id)
		}
		tasks[i].Completed = done
		updated = tasks[i].Clone()
		return tasks, nil
	})
	if err != nil {
		return model.Task{}, err
	}
	return updated, nil
}

// DeleteTask removes the task with id. Unknown ids are not an error.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	return s.mutateTasks(ctx, func(tasks []model.Task) ([]model.Task, error) {
		out := tasks[:0]
		for _, t := range tasks {
			if t.ID != id {
				out = append(out, t)
			}
		}
		return out, nil
	})
}

// mutateTasks runs fn on a private copy, persists the result and only then
// makes it current. A failing fn or write leaves the state untouched.
func (s *Service) mutateTasks(ctx context.Context, fn func([]model.Task) ([]model.Task, error)) error {
	s.mu.Lock()
	next, err := fn(cloneTasks(s.tasks))
	if err == nil {
		err = s.write(ctx, store.KeyTasks, next)
	}
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.tasks = next
	s.mu.Unlock()

	s.publish(ChangeTasks)
	return nil
}

func indexTask(tasks []model.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
