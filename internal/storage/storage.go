package storage

import (
	"context"

	"github.com/goaltrack/goaltrack/internal/model"
)

// GoalFilter filters goal listings.
type GoalFilter struct {
	WorkspaceID string
	OwnerID     string
	Private     *bool
}

// Repository is the interface for goal, task and project persistence.
type Repository interface {
	CreateGoal(ctx context.Context, g model.Goal) error
	GetGoal(ctx context.Context, id string) (*model.Goal, error)
	ListGoals(ctx context.Context, filter GoalFilter) ([]model.Goal, error)
	UpdateGoal(ctx context.Context, g model.Goal) error
	DeleteGoal(ctx context.Context, id string) error

	CreateTask(ctx context.Context, t model.Task) error
	GetTask(ctx context.Context, id string) (*model.Task, error)
	ListTasksByGoal(ctx context.Context, goalID string) ([]model.Task, error)
	UpdateTask(ctx context.Context, t model.Task) error

	CreateProject(ctx context.Context, p model.Project) error
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListProjectsByGoal(ctx context.Context, goalID string) ([]model.Project, error)
	UpdateProject(ctx context.Context, p model.Project) error
}
