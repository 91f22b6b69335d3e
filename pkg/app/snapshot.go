package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"

	"tableflip.dev/studyplan/pkg/model"
)

// ExportSnapshot returns a copy of the whole state, safe to serialize.
func (s *Service) ExportSnapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.Snapshot{
		Tasks:    cloneTasks(s.tasks),
		Goals:    cloneGoals(s.goals),
		Settings: s.settings,
	}
}

// ImportSnapshot loads a document shaped like ExportSnapshot's output. tasks
// and goals replace the current collections wholesale, settings keys are
// merged one by one. Any malformed part rejects the whole document with
// ErrInvalidFormat and leaves the state untouched.
func (s *Service) ImportSnapshot(ctx context.Context, data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		return fmt.Errorf("%w: expected a JSON object", ErrInvalidFormat)
	}

	var (
		tasks    []model.Task
		goals    []model.Goal
		settings map[string]json.RawMessage
	)
	rawTasks, hasTasks := doc["tasks"]
	if hasTasks {
		if !isJSON(rawTasks, '[') {
			return fmt.Errorf("%w: tasks must be an array", ErrInvalidFormat)
		}
		if err := json.Unmarshal(rawTasks, &tasks); err != nil {
			return fmt.Errorf("%w: tasks: %v", ErrInvalidFormat, err)
		}
	}
	rawGoals, hasGoals := doc["goals"]
	if hasGoals {
		if !isJSON(rawGoals, '[') {
			return fmt.Errorf("%w: goals must be an array", ErrInvalidFormat)
		}
		if err := json.Unmarshal(rawGoals, &goals); err != nil {
			return fmt.Errorf("%w: goals: %v", ErrInvalidFormat, err)
		}
	}
	rawSettings, hasSettings := doc["settings"]
	if hasSettings {
		if !isJSON(rawSettings, '{') {
			return fmt.Errorf("%w: settings must be an object", ErrInvalidFormat)
		}
		if err := json.Unmarshal(rawSettings, &settings); err != nil {
			return fmt.Errorf("%w: settings: %v", ErrInvalidFormat, err)
		}
	}
	if !hasTasks && !hasGoals && !hasSettings {
		return fmt.Errorf("%w: no tasks, goals or settings", ErrInvalidFormat)
	}

	now := s.now()
	s.mu.Lock()
	nextTasks, nextGoals := s.tasks, s.goals
	if hasTasks {
		nextTasks = s.normalizeTasks(tasks, now)
	}
	if hasGoals {
		nextGoals = s.normalizeGoals(goals, now)
	}
	nextSettings := mergeSettings(s.settings, settings)

	if err := s.writeAll(ctx, nextTasks, nextGoals, nextSettings); err != nil {
		s.mu.Unlock()
		return err
	}
	s.tasks, s.goals, s.settings = nextTasks, nextGoals, nextSettings
	s.mu.Unlock()

	s.log.Info("app: snapshot imported", "tasks", len(nextTasks), "goals", len(nextGoals))
	s.publish(ChangeTasks, ChangeGoals, ChangeSettings)
	return nil
}

// mergeSettings copies every recognized, valid key of raw onto base.
func mergeSettings(base model.Settings, raw map[string]json.RawMessage) model.Settings {
	if v, ok := raw["defaultReminderMins"]; ok {
		var mins float64
		if err := json.Unmarshal(v, &mins); err == nil && mins >= 0 && mins == math.Trunc(mins) {
			base.DefaultReminderMins = int(math.Min(mins, model.MaxRemindMins))
		}
	}
	if v, ok := raw["notifications"]; ok {
		var p model.Permission
		if err := json.Unmarshal(v, &p); err == nil && p.Valid() {
			base.Notifications = p
		}
	}
	return base
}

func isJSON(raw json.RawMessage, open byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == open
}
