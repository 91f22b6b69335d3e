// Package mcp exposes the study planner over the Model Context Protocol.
package mcp

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/model"
	"tableflip.dev/studyplan/pkg/timeutil"
	"tableflip.dev/studyplan/pkg/views"
)

// Service adapts the planner's Data Store to transport-friendly calls shared
// by the MCP tools and resources.
type Service struct {
	Store *app.Service
	Now   func() time.Time
}

// TaskDTO is a task with its derived flags.
type TaskDTO struct {
	model.Task
	Overdue  bool   `json:"overdue"`
	DueSoon  bool   `json:"dueSoon"`
	DueLabel string `json:"dueLabel"`
}

// GoalDTO is a goal with its completion.
type GoalDTO struct {
	model.Goal
	views.Progress
}

// DayDTO is one day of the weekly timeline.
type DayDTO struct {
	Date  string    `json:"date"`
	Tasks []TaskDTO `json:"tasks"`
}

// WeekDTO is the weekly timeline.
type WeekDTO struct {
	Offset int      `json:"offset"`
	Start  string   `json:"start"`
	End    string   `json:"end"`
	Days   []DayDTO `json:"days"`
}

// AddTaskOptions carries the user-facing fields of a new task.
type AddTaskOptions struct {
	Title        string
	Subject      string
	Due          string
	DurationMins int
	Priority     string
	RemindMins   *int
}

// NewService builds a Service over store.
func NewService(store *app.Service) *Service {
	return &Service{Store: store, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Service) ready() error {
	if s.Store == nil {
		return errors.New("planner store is not configured")
	}
	return nil
}

// ListTasks returns the tasks matching f.
func (s *Service) ListTasks(_ context.Context, f views.Filter) ([]TaskDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	now := s.now()
	return toTaskDTOs(views.FilterAndSortTasks(s.Store.Tasks(), f, now), now), nil
}

// TaskByID returns a single task.
func (s *Service) TaskByID(_ context.Context, id string) (*TaskDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	t, err := s.Store.Task(id)
	if err != nil {
		return nil, err
	}
	dto := toTaskDTO(t, s.now())
	return &dto, nil
}

// AddTask parses the user-facing fields and creates the task.
func (s *Service) AddTask(ctx context.Context, opts AddTaskOptions) (*TaskDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	now := s.now()
	due, err := timeutil.ParseDue(opts.Due, now)
	if err != nil {
		return nil, err
	}
	priority, err := model.ParsePriority(opts.Priority)
	if err != nil {
		return nil, err
	}
	t, err := s.Store.CreateTask(ctx, app.TaskInput{
		Title:        opts.Title,
		Subject:      opts.Subject,
		DueAt:        due,
		DurationMins: opts.DurationMins,
		Priority:     priority,
		RemindMins:   opts.RemindMins,
	})
	if err != nil {
		return nil, err
	}
	dto := toTaskDTO(t, now)
	return &dto, nil
}

// UpdateTask applies a patch.
func (s *Service) UpdateTask(ctx context.Context, id string, p app.TaskPatch) (*TaskDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	t, err := s.Store.UpdateTask(ctx, id, p)
	if err != nil {
		return nil, err
	}
	dto := toTaskDTO(t, s.now())
	return &dto, nil
}

// SetTaskCompleted marks a task done or open.
func (s *Service) SetTaskCompleted(ctx context.Context, id string, done bool) (*TaskDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	t, err := s.Store.SetCompleted(ctx, id, done)
	if err != nil {
		return nil, err
	}
	dto := toTaskDTO(t, s.now())
	return &dto, nil
}

// DeleteTask removes a task.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.Store.DeleteTask(ctx, id)
}

// ListGoals returns every goal with its progress.
func (s *Service) ListGoals(_ context.Context) ([]GoalDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	goals := s.Store.Goals()
	out := make([]GoalDTO, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalDTO(g))
	}
	return out, nil
}

// AddGoal creates a goal.
func (s *Service) AddGoal(ctx context.Context, title string, targetHours float64) (*GoalDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	g, err := s.Store.CreateGoal(ctx, app.GoalInput{Title: title, TargetHours: targetHours})
	if err != nil {
		return nil, err
	}
	dto := toGoalDTO(g)
	return &dto, nil
}

// LogProgress adds hours to a goal.
func (s *Service) LogProgress(ctx context.Context, id string, hours float64) (*GoalDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	g, err := s.Store.AddGoalProgress(ctx, id, hours)
	if err != nil {
		return nil, err
	}
	dto := toGoalDTO(g)
	return &dto, nil
}

// DeleteGoal removes a goal.
func (s *Service) DeleteGoal(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.Store.DeleteGoal(ctx, id)
}

// Stats summarizes the task list.
func (s *Service) Stats(_ context.Context) (views.Stats, error) {
	if err := s.ready(); err != nil {
		return views.Stats{}, err
	}
	return views.ComputeStats(s.Store.Tasks(), s.now()), nil
}

// Week returns the timeline offset whole weeks from the current one.
func (s *Service) Week(_ context.Context, offset int) (*WeekDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	now := s.now()
	week := timeutil.WeekRange(offset, now)
	buckets := views.BucketByDay(s.Store.Tasks(), week)

	dto := &WeekDTO{
		Offset: offset,
		Start:  week.Start.Format(time.RFC3339),
		End:    week.End.Format(time.RFC3339),
		Days:   make([]DayDTO, 0, len(buckets)),
	}
	for _, b := range buckets {
		dto.Days = append(dto.Days, DayDTO{
			Date:  b.Day.Format("2006-01-02"),
			Tasks: toTaskDTOs(b.Tasks, now),
		})
	}
	return dto, nil
}

// Snapshot exports the whole planner state.
func (s *Service) Snapshot(_ context.Context) (model.Snapshot, error) {
	if err := s.ready(); err != nil {
		return model.Snapshot{}, err
	}
	return s.Store.ExportSnapshot(), nil
}

func toTaskDTO(t model.Task, now time.Time) TaskDTO {
	return TaskDTO{
		Task:     t,
		Overdue:  t.IsOverdue(now),
		DueSoon:  t.IsDueSoon(now),
		DueLabel: timeutil.FormatDue(t.DueAt, now),
	}
}

func toTaskDTOs(tasks []model.Task, now time.Time) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskDTO(t, now))
	}
	return out
}

func toGoalDTO(g model.Goal) GoalDTO {
	return GoalDTO{Goal: g, Progress: views.GoalProgress(g)}
}
