package model

import (
	"fmt"
	"time"
)

// Task represents a task that can be linked to a goal.
type Task struct {
	ID        string
	Title     string
	GoalID    string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates the task.
func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("title is required: %w", ErrNotValid)
	}
	return nil
}

// Project represents a project that can be linked to a goal.
type Project struct {
	ID        string
	Name      string
	GoalID    string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates the project.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required: %w", ErrNotValid)
	}
	return nil
}
