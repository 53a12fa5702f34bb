package backend

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

// TaskUpdate is the result of a task completion mutation. UpdatedGoals
// carries the goal progress deltas the backend computed as a side effect of
// the mutation; it may be empty when the mutation path does not track goals.
type TaskUpdate struct {
	Task         model.Task
	UpdatedGoals []model.GoalProgressDelta
}

// ProjectUpdate is the result of a project status mutation.
type ProjectUpdate struct {
	Project      model.Project
	UpdatedGoals []model.GoalProgressDelta
}

// Backend is the interface for the goal tracking backend.
type Backend interface {
	// FetchGoals lists goals, optionally filtered.
	FetchGoals(ctx context.Context, filter *GoalFilter) ([]model.Goal, error)
	// FetchGoal fetches a single goal, fails with model.ErrNotFound if missing.
	FetchGoal(ctx context.Context, id string) (*model.Goal, error)
	// CalculateProgress recomputes a goal's progress percentage from its
	// linked tasks or projects.
	CalculateProgress(ctx context.Context, goalID string) (int, error)
	// UpdateTaskCompletion marks a task as completed or not. goalID is an
	// optional hint for the goal the task belongs to (empty when unknown).
	UpdateTaskCompletion(ctx context.Context, taskID string, completed bool, goalID string) (*TaskUpdate, error)
	// UpdateProjectStatus marks a project as completed or not, same contract
	// as UpdateTaskCompletion.
	UpdateProjectStatus(ctx context.Context, projectID string, completed bool, goalID string) (*ProjectUpdate, error)

	// CreateGoal creates a new goal and returns it with its assigned id.
	CreateGoal(ctx context.Context, goal model.Goal) (*model.Goal, error)
	// CreateTask creates a new task, optionally linked to a goal.
	CreateTask(ctx context.Context, task model.Task) (*model.Task, error)
	// CreateProject creates a new project, optionally linked to a goal.
	CreateProject(ctx context.Context, project model.Project) (*model.Project, error)
	// SetGoalParent assigns (or clears, with empty parentID) a goal's parent.
	// Fails with model.ErrNotValid if the assignment would create a cycle.
	SetGoalParent(ctx context.Context, goalID, parentID string) error
}
