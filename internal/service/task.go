package service

import (
	"context"
	"errors"
	"strings"

	"github.com/pulsehub/pulsehub/internal/model"
	"github.com/pulsehub/pulsehub/internal/repository"
)

// Task service errors.
var (
	ErrMissingTaskFields = errors.New("all task fields are required")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrTaskNotFound      = errors.New("task not found")
)

// TaskService handles the task manager.
type TaskService struct {
	repo *repository.Repository
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *repository.Repository) *TaskService {
	return &TaskService{repo: repo}
}

// TaskInput defines input for creating or fully updating a task.
// All fields are required.
type TaskInput struct {
	Name        string
	Description string
	Status      string
	Priority    string
	StartDate   string
	DueDate     string
}

// validate checks that every field is present and that status and priority
// are known values.
func (in TaskInput) validate() error {
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.Status) == "" ||
		strings.TrimSpace(in.Priority) == "" ||
		strings.TrimSpace(in.StartDate) == "" ||
		strings.TrimSpace(in.DueDate) == "" {
		return ErrMissingTaskFields
	}
	if !model.TaskStatus(in.Status).IsValid() {
		return ErrInvalidStatus
	}
	if !model.TaskPriority(in.Priority).IsValid() {
		return ErrInvalidPriority
	}
	return nil
}

// CreateTask validates and persists a new task.
func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	task := &model.Task{
		Name:        input.Name,
		Description: input.Description,
		Status:      model.TaskStatus(input.Status),
		Priority:    model.TaskPriority(input.Priority),
		StartDate:   input.StartDate,
		DueDate:     input.DueDate,
	}

	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// ListTasks retrieves all tasks in insertion order.
func (s *TaskService) ListTasks(ctx context.Context) ([]*model.Task, error) {
	return s.repo.ListTasks(ctx)
}

// UpdateTask replaces all fields of an existing task.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, input TaskInput) (*model.Task, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	task := &model.Task{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Status:      model.TaskStatus(input.Status),
		Priority:    model.TaskPriority(input.Priority),
		StartDate:   input.StartDate,
		DueDate:     input.DueDate,
	}

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}
