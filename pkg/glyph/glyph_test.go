package glyph

import (
	"testing"
	"time"

	"tableflip.dev/studyplan/pkg/model"
)

func TestForTask(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		task model.Task
		want State
	}{
		{"open", model.Task{DueAt: now.Add(3 * time.Hour)}, Open},
		{"due soon", model.Task{DueAt: now.Add(59 * time.Minute)}, DueSoon},
		{"overdue", model.Task{DueAt: now.Add(-time.Minute)}, Overdue},
		{"completed overdue", model.Task{DueAt: now.Add(-time.Hour), Completed: true}, Completed},
	}
	for _, tt := range tests {
		if got := ForTask(tt.task, now); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestMarkersExcludeNone(t *testing.T) {
	for _, m := range Markers() {
		if m.Meaning == "none" {
			t.Fatalf("expected legend without the blank marker")
		}
	}
	if ForPriority(model.PriorityMed) != None {
		t.Fatalf("expected med priority to have no marker")
	}
}
