package model

import "testing"

func TestTaskStatus_IsValid(t *testing.T) {
	valid := []TaskStatus{TaskStatusNotStarted, TaskStatusStarted, TaskStatusCompleted}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("expected %q to be valid", s)
		}
	}

	invalid := []TaskStatus{"", "done", "Not Started", "in progress"}
	for _, s := range invalid {
		if s.IsValid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestTaskPriority_IsValid(t *testing.T) {
	valid := []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}
	for _, p := range valid {
		if !p.IsValid() {
			t.Errorf("expected %q to be valid", p)
		}
	}

	invalid := []TaskPriority{"", "urgent", "Low", "critical"}
	for _, p := range invalid {
		if p.IsValid() {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}
