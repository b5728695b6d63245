package service

import (
	"context"
	"errors"
	"testing"
)

func validTaskInput() TaskInput {
	return TaskInput{
		Name:        "Write report",
		Description: "Quarterly numbers",
		Status:      "not started",
		Priority:    "medium",
		StartDate:   "2026-09-01",
		DueDate:     "2026-09-15",
	}
}

func TestTaskService_CreateTask_MissingFields(t *testing.T) {
	svc := NewTaskService(nil)

	mutations := map[string]func(*TaskInput){
		"name":        func(in *TaskInput) { in.Name = "" },
		"description": func(in *TaskInput) { in.Description = "  " },
		"status":      func(in *TaskInput) { in.Status = "" },
		"priority":    func(in *TaskInput) { in.Priority = "" },
		"start date":  func(in *TaskInput) { in.StartDate = "" },
		"due date":    func(in *TaskInput) { in.DueDate = "" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			input := validTaskInput()
			mutate(&input)

			_, err := svc.CreateTask(context.Background(), input)
			if !errors.Is(err, ErrMissingTaskFields) {
				t.Errorf("expected ErrMissingTaskFields, got %v", err)
			}
		})
	}
}

func TestTaskService_CreateTask_InvalidStatus(t *testing.T) {
	svc := NewTaskService(nil)

	input := validTaskInput()
	input.Status = "done"

	_, err := svc.CreateTask(context.Background(), input)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestTaskService_CreateTask_InvalidPriority(t *testing.T) {
	svc := NewTaskService(nil)

	input := validTaskInput()
	input.Priority = "urgent"

	_, err := svc.CreateTask(context.Background(), input)
	if !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestTaskService_UpdateTask_Validates(t *testing.T) {
	svc := NewTaskService(nil)

	input := validTaskInput()
	input.Status = "paused"

	_, err := svc.UpdateTask(context.Background(), 1, input)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}
