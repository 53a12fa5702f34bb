package local

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/goaltrack/goaltrack/internal/backend"
	"github.com/goaltrack/goaltrack/internal/log"
	"github.com/goaltrack/goaltrack/internal/model"
	"github.com/goaltrack/goaltrack/internal/storage"
)

// BackendConfig is the configuration for the local backend.
type BackendConfig struct {
	Repository storage.Repository
	Logger     log.Logger
}

func (c *BackendConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "backend.Local"})
	return nil
}

// Backend is a backend.Backend implementation on top of local storage, so
// the tool works standalone without a remote service. Derived goal progress
// is recomputed from the linked task/project rows, and task/project
// mutations report the resulting goal deltas directly.
type Backend struct {
	repo   storage.Repository
	logger log.Logger
}

// NewBackend creates a new local backend.
func NewBackend(cfg BackendConfig) (*Backend, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Backend{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// FetchGoals lists goals, optionally filtered.
func (b *Backend) FetchGoals(ctx context.Context, filter *backend.GoalFilter) ([]model.Goal, error) {
	f := storage.GoalFilter{}
	if filter != nil {
		f.WorkspaceID = filter.WorkspaceID
		f.OwnerID = filter.OwnerID
		f.Private = filter.Private
	}

	goals, err := b.repo.ListGoals(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("could not list goals: %w", err)
	}

	return goals, nil
}

// FetchGoal fetches a single goal with its linked task and project ids.
func (b *Backend) FetchGoal(ctx context.Context, id string) (*model.Goal, error) {
	goal, err := b.repo.GetGoal(ctx, id)
	if err != nil {
		return nil, err
	}

	tasks, err := b.repo.ListTasksByGoal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not list goal tasks: %w", err)
	}
	for _, t := range tasks {
		goal.TaskIDs = append(goal.TaskIDs, t.ID)
	}

	projects, err := b.repo.ListProjectsByGoal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not list goal projects: %w", err)
	}
	for _, p := range projects {
		goal.ProjectIDs = append(goal.ProjectIDs, p.ID)
	}

	return goal, nil
}

// CalculateProgress recomputes a goal's progress from the completion ratio
// of its linked items. Goals with manual progress keep their stored value.
// A derived goal with no linked items has zero progress.
func (b *Backend) CalculateProgress(ctx context.Context, goalID string) (int, error) {
	goal, err := b.repo.GetGoal(ctx, goalID)
	if err != nil {
		return 0, err
	}

	total, completed := 0, 0
	switch goal.Source {
	case model.ProgressSourceTasks:
		tasks, err := b.repo.ListTasksByGoal(ctx, goalID)
		if err != nil {
			return 0, fmt.Errorf("could not list goal tasks: %w", err)
		}
		for _, t := range tasks {
			total++
			if t.Completed {
				completed++
			}
		}

	case model.ProgressSourceProjects:
		projects, err := b.repo.ListProjectsByGoal(ctx, goalID)
		if err != nil {
			return 0, fmt.Errorf("could not list goal projects: %w", err)
		}
		for _, p := range projects {
			total++
			if p.Completed {
				completed++
			}
		}

	default:
		return goal.Progress, nil
	}

	if total == 0 {
		return 0, nil
	}

	return model.ClampProgress(completed * 100 / total), nil
}

// UpdateTaskCompletion marks a task as completed or not and recomputes the
// derived progress of the goal it is linked to, returning the deltas.
func (b *Backend) UpdateTaskCompletion(ctx context.Context, taskID string, completed bool, goalID string) (*backend.TaskUpdate, error) {
	task, err := b.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.Completed = completed
	task.UpdatedAt = time.Now().UTC()
	if err := b.repo.UpdateTask(ctx, *task); err != nil {
		return nil, fmt.Errorf("could not update task: %w", err)
	}

	// Prefer the caller's goal hint, fall back to the task's own link.
	if goalID == "" {
		goalID = task.GoalID
	}

	deltas, err := b.refreshDerivedGoal(ctx, goalID, model.ProgressSourceTasks)
	if err != nil {
		return nil, err
	}

	b.logger.Debugf("Updated task %s completion to %t", taskID, completed)

	return &backend.TaskUpdate{Task: *task, UpdatedGoals: deltas}, nil
}

// UpdateProjectStatus marks a project as completed or not, same contract as
// UpdateTaskCompletion.
func (b *Backend) UpdateProjectStatus(ctx context.Context, projectID string, completed bool, goalID string) (*backend.ProjectUpdate, error) {
	project, err := b.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	project.Completed = completed
	project.UpdatedAt = time.Now().UTC()
	if err := b.repo.UpdateProject(ctx, *project); err != nil {
		return nil, fmt.Errorf("could not update project: %w", err)
	}

	if goalID == "" {
		goalID = project.GoalID
	}

	deltas, err := b.refreshDerivedGoal(ctx, goalID, model.ProgressSourceProjects)
	if err != nil {
		return nil, err
	}

	b.logger.Debugf("Updated project %s completion to %t", projectID, completed)

	return &backend.ProjectUpdate{Project: *project, UpdatedGoals: deltas}, nil
}

// CreateGoal creates a new goal.
func (b *Backend) CreateGoal(ctx context.Context, goal model.Goal) (*model.Goal, error) {
	if goal.Status == "" {
		goal.Status = model.GoalStatusNone
	}
	if goal.Source == "" {
		goal.Source = model.ProgressSourceManual
	}
	if err := goal.Validate(); err != nil {
		return nil, fmt.Errorf("invalid goal: %w", err)
	}

	now := time.Now().UTC()
	goal.ID = newID()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	if err := b.repo.CreateGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("could not save goal: %w", err)
	}

	b.logger.Infof("Created goal: %s (%s)", goal.Title, goal.ID)

	return &goal, nil
}

// CreateTask creates a new task.
func (b *Backend) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}

	now := time.Now().UTC()
	task.ID = newID()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := b.repo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("could not save task: %w", err)
	}

	b.logger.Infof("Created task: %s (%s)", task.Title, task.ID)

	return &task, nil
}

// CreateProject creates a new project.
func (b *Backend) CreateProject(ctx context.Context, project model.Project) (*model.Project, error) {
	if err := project.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project: %w", err)
	}

	now := time.Now().UTC()
	project.ID = newID()
	project.CreatedAt = now
	project.UpdatedAt = now

	if err := b.repo.CreateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("could not save project: %w", err)
	}

	b.logger.Infof("Created project: %s (%s)", project.Name, project.ID)

	return &project, nil
}

// SetGoalParent assigns a goal's parent, keeping the goal tree acyclic.
func (b *Backend) SetGoalParent(ctx context.Context, goalID, parentID string) error {
	goal, err := b.repo.GetGoal(ctx, goalID)
	if err != nil {
		return err
	}

	// Cycle detection needs the whole tree.
	all, err := b.repo.ListGoals(ctx, storage.GoalFilter{})
	if err != nil {
		return fmt.Errorf("could not list goals: %w", err)
	}
	goalsByID := make(map[string]model.Goal, len(all))
	for _, g := range all {
		goalsByID[g.ID] = g
	}

	if err := model.ValidateParent(goalsByID, goalID, parentID); err != nil {
		return err
	}

	goal.ParentID = parentID
	goal.UpdatedAt = time.Now().UTC()
	if err := b.repo.UpdateGoal(ctx, *goal); err != nil {
		return fmt.Errorf("could not update goal: %w", err)
	}

	b.logger.Infof("Set goal %s parent to %q", goalID, parentID)

	return nil
}

// refreshDerivedGoal recomputes and stores a goal's derived progress,
// returning the delta. Goals that are missing, unlinked or manually tracked
// produce no delta.
func (b *Backend) refreshDerivedGoal(ctx context.Context, goalID string, source model.ProgressSource) ([]model.GoalProgressDelta, error) {
	if goalID == "" {
		return nil, nil
	}

	goal, err := b.repo.GetGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.Source != source {
		return nil, nil
	}

	progress, err := b.CalculateProgress(ctx, goalID)
	if err != nil {
		return nil, err
	}

	goal.Progress = progress
	goal.UpdatedAt = time.Now().UTC()
	if err := b.repo.UpdateGoal(ctx, *goal); err != nil {
		return nil, fmt.Errorf("could not update goal progress: %w", err)
	}

	return []model.GoalProgressDelta{{GoalID: goalID, Progress: progress}}, nil
}

func newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
