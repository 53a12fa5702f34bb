package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/goaltrack/goaltrack/internal/model"
)

// CreateTask creates a new task in the repository.
func (r *Repository) CreateTask(ctx context.Context, t model.Task) error {
	query := `
		INSERT INTO tasks (id, title, goal_id, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, t.ID, t.Title, t.GoalID, t.Completed, t.CreatedAt.Unix(), t.UpdatedAt.Unix())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: tasks.") {
			return fmt.Errorf("task already exists: %w", model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert task: %w", err)
	}

	r.logger.Debugf("Created task in repository: %s", t.ID)
	return nil
}

// GetTask retrieves a task by ID.
func (r *Repository) GetTask(ctx context.Context, id string) (*model.Task, error) {
	query := `SELECT id, title, goal_id, completed, created_at, updated_at FROM tasks WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	task, err := r.scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query task: %w", err)
	}

	return &task, nil
}

// ListTasksByGoal returns all tasks linked to a goal.
func (r *Repository) ListTasksByGoal(ctx context.Context, goalID string) ([]model.Task, error) {
	query := `SELECT id, title, goal_id, completed, created_at, updated_at FROM tasks WHERE goal_id = ? ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := r.scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tasks, nil
}

// UpdateTask updates an existing task.
func (r *Repository) UpdateTask(ctx context.Context, t model.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, goal_id = ?, completed = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, t.Title, t.GoalID, t.Completed, t.UpdatedAt.Unix(), t.ID)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task %s: %w", t.ID, model.ErrNotFound)
	}

	r.logger.Debugf("Updated task in repository: %s", t.ID)
	return nil
}

// CreateProject creates a new project in the repository.
func (r *Repository) CreateProject(ctx context.Context, p model.Project) error {
	query := `
		INSERT INTO projects (id, name, goal_id, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.GoalID, p.Completed, p.CreatedAt.Unix(), p.UpdatedAt.Unix())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: projects.") {
			return fmt.Errorf("project already exists: %w", model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert project: %w", err)
	}

	r.logger.Debugf("Created project in repository: %s", p.ID)
	return nil
}

// GetProject retrieves a project by ID.
func (r *Repository) GetProject(ctx context.Context, id string) (*model.Project, error) {
	query := `SELECT id, name, goal_id, completed, created_at, updated_at FROM projects WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	project, err := r.scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query project: %w", err)
	}

	return &project, nil
}

// ListProjectsByGoal returns all projects linked to a goal.
func (r *Repository) ListProjectsByGoal(ctx context.Context, goalID string) ([]model.Project, error) {
	query := `SELECT id, name, goal_id, completed, created_at, updated_at FROM projects WHERE goal_id = ? ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("could not query projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		project, err := r.scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return projects, nil
}

// UpdateProject updates an existing project.
func (r *Repository) UpdateProject(ctx context.Context, p model.Project) error {
	query := `
		UPDATE projects
		SET name = ?, goal_id = ?, completed = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, p.Name, p.GoalID, p.Completed, p.UpdatedAt.Unix(), p.ID)
	if err != nil {
		return fmt.Errorf("could not update project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("project %s: %w", p.ID, model.ErrNotFound)
	}

	r.logger.Debugf("Updated project in repository: %s", p.ID)
	return nil
}

func (r *Repository) scanTask(s scanner) (model.Task, error) {
	var task model.Task
	var createdAt, updatedAt int64

	err := s.Scan(&task.ID, &task.Title, &task.GoalID, &task.Completed, &createdAt, &updatedAt)
	if err != nil {
		return model.Task{}, err
	}

	task.CreatedAt = timeFromUnix(createdAt)
	task.UpdatedAt = timeFromUnix(updatedAt)

	return task, nil
}

func (r *Repository) scanProject(s scanner) (model.Project, error) {
	var project model.Project
	var createdAt, updatedAt int64

	err := s.Scan(&project.ID, &project.Name, &project.GoalID, &project.Completed, &createdAt, &updatedAt)
	if err != nil {
		return model.Project{}, err
	}

	project.CreatedAt = timeFromUnix(createdAt)
	project.UpdatedAt = timeFromUnix(updatedAt)

	return project, nil
}
