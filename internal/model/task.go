package model

import "time"

// TaskStatus represents the progress state of a task.
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not started"
	TaskStatusStarted    TaskStatus = "started"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid checks if the status is one of the known states.
func (s TaskStatus) IsValid() bool {
	return s == TaskStatusNotStarted || s == TaskStatusStarted || s == TaskStatusCompleted
}

// TaskPriority represents the urgency of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// IsValid checks if the priority is one of the known levels.
func (p TaskPriority) IsValid() bool {
	return p == TaskPriorityLow || p == TaskPriorityMedium || p == TaskPriorityHigh
}

// Task is a task-manager entry. All fields are required on create and on full
// update; dates are opaque strings supplied by the client form.
type Task struct {
	ID          int64        `json:"id"`
	Name        string       `json:"taskName"`
	Description string       `json:"taskDescription"`
	Status      TaskStatus   `json:"taskStatus"`
	Priority    TaskPriority `json:"taskPriority"`
	StartDate   string       `json:"taskStartDate"`
	DueDate     string       `json:"taskDueDate"`
	CreatedAt   time.Time    `json:"createdAt"`
}
