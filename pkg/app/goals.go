package app

import (
	"context"
	"math"
	"strings"

	"tableflip.dev/studyplan/pkg/model"
	"tableflip.dev/studyplan/pkg/store"
)

// GoalInput carries the fields of a new goal.
type GoalInput struct {
	Title       string
	TargetHours float64
}

// GoalPatch edits a goal. Nil fields are left alone; unusable values keep
// the old value and numbers are clamped.
type GoalPatch struct {
	Title         *string
	TargetHours   *float64
	ProgressHours *float64
}

// Goals returns a copy of every goal in insertion order.
func (s *Service) Goals() []model.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneGoals(s.goals)
}

// Goal returns the goal with id.
func (s *Service) Goal(id string) (model.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexGoal(s.goals, id); i >= 0 {
		return s.goals[i], nil
	}
	return model.Goal{}, notFound("goal", id)
}

// CreateGoal validates in, stores the new goal and returns it.
func (s *Service) CreateGoal(ctx context.Context, in GoalInput) (model.Goal, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Goal{}, invalid("title", "required")
	}
	if !model.IsFinite(in.TargetHours) || in.TargetHours <= 0 {
		return model.Goal{}, invalid("targetHours", "must be a positive number")
	}

	g := model.Goal{
		ID:          s.newID(),
		Title:       title,
		TargetHours: in.TargetHours,
		CreatedAt:   s.now().UTC(),
	}
	err := s.mutateGoals(ctx, func(goals []model.Goal) ([]model.Goal, error) {
		return append(goals, g), nil
	})
	if err != nil {
		return model.Goal{}, err
	}
	return g, nil
}

// UpdateGoal applies p to the goal with id. Targets are floored at one hour.
func (s *Service) UpdateGoal(ctx context.Context, id string, p GoalPatch) (model.Goal, error) {
	var updated model.Goal
	err := s.mutateGoals(ctx, func(goals []model.Goal) ([]model.Goal, error) {
		i := indexGoal(goals, id)
		if i < 0 {
			return nil, notFound("goal", id)
		}
		g := &goals[i]
		if p.Title != nil {
			if v := strings.TrimSpace(*p.Title); v != "" {
				g.Title = v
			}
		}
		if p.TargetHours != nil && model.IsFinite(*p.TargetHours) {
			g.TargetHours = math.Max(1, *p.TargetHours)
		}
		if p.ProgressHours != nil && model.IsFinite(*p.ProgressHours) {
			g.ProgressHours = model.ClampProgress(*p.ProgressHours)
		}
		updated = *g
		return goals, nil
	})
	if err != nil {
		return model.Goal{}, err
	}
	return updated, nil
}

// AddGoalProgress adds hours to the goal with id, capped at 10000.
func (s *Service) AddGoalProgress(ctx context.Context, id string, hours float64) (model.Goal, error) {
	if !model.IsFinite(hours) || hours <= 0 {
		return model.Goal{}, invalid("hours", "must be a positive number")
	}
	var updated model.Goal
	err := s.mutateGoals(ctx, func(goals []model.Goal) ([]model.Goal, error) {
		i := indexGoal(goals, id)
		if i < 0 {
			return nil, notFound("goal", id)
		}
		goals[i].ProgressHours = model.ClampProgress(goals[i].ProgressHours + hours)
		updated = goals[i]
		return goals, nil
	})
	if err != nil {
		return model.Goal{}, err
	}
	return updated, nil
}

// DeleteGoal removes the goal with id. Unknown ids are not an error.
func (s *Service) DeleteGoal(ctx context.Context, id string) error {
	return s.mutateGoals(ctx, func(goals []model.Goal) ([]model.Goal, error) {
		out := goals[:0]
		for _, g := range goals {
			if g.ID != id {
				out = append(out, g)
			}
		}
		return out, nil
	})
}

func (s *Service) mutateGoals(ctx context.Context, fn func([]model.Goal) ([]model.Goal, error)) error {
	s.mu.Lock()
	next, err := fn(cloneGoals(s.goals))
	if err == nil {
		err = s.write(ctx, store.KeyGoals, next)
	}
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.goals = next
	s.mu.Unlock()

	s.publish(ChangeGoals)
	return nil
}

func indexGoal(goals []model.Goal, id string) int {
	for i := range goals {
		if goals[i].ID == id {
			return i
		}
	}
	return -1
}
