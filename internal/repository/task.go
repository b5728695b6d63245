package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pulsehub/pulsehub/internal/model"
)

// ErrTaskNotFound indicates the task does not exist.
var ErrTaskNotFound = errors.New("task not found")

// CreateTask inserts a new task and fills in its generated id.
func (r *Repository) CreateTask(ctx context.Context, task *model.Task) error {
	query := `
		INSERT INTO tasks (task_name, task_description, task_status, task_priority, task_start_date, task_due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		task.Name,
		task.Description,
		task.Status,
		task.Priority,
		task.StartDate,
		task.DueDate,
	).Scan(&task.ID, &task.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// ListTasks retrieves all tasks in insertion order.
func (r *Repository) ListTasks(ctx context.Context) ([]*model.Task, error) {
	query := `
		SELECT id, task_name, task_description, task_status, task_priority, task_start_date, task_due_date, created_at
		FROM tasks
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*model.Task, 0)
	for rows.Next() {
		var task model.Task
		err := rows.Scan(
			&task.ID,
			&task.Name,
			&task.Description,
			&task.Status,
			&task.Priority,
			&task.StartDate,
			&task.DueDate,
			&task.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// UpdateTask replaces all mutable fields of a task.
func (r *Repository) UpdateTask(ctx context.Context, task *model.Task) error {
	query := `
		UPDATE tasks
		SET task_name = $2, task_description = $3, task_status = $4,
		    task_priority = $5, task_start_date = $6, task_due_date = $7
		WHERE id = $1
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Name,
		task.Description,
		task.Status,
		task.Priority,
		task.StartDate,
		task.DueDate,
	).Scan(&task.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// DeleteTask removes a task.
func (r *Repository) DeleteTask(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}

	return nil
}
