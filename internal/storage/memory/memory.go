package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goaltrack/goaltrack/internal/log"
	"github.com/goaltrack/goaltrack/internal/model"
	"github.com/goaltrack/goaltrack/internal/storage"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository.
type Repository struct {
	goals    map[string]model.Goal
	tasks    map[string]model.Task
	projects map[string]model.Project
	mu       sync.RWMutex
	logger   log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		goals:    make(map[string]model.Goal),
		tasks:    make(map[string]model.Task),
		projects: make(map[string]model.Project),
		logger:   cfg.Logger,
	}, nil
}

// CreateGoal creates a new goal in the repository.
func (r *Repository) CreateGoal(ctx context.Context, g model.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.goals[g.ID]; ok {
		return fmt.Errorf("goal with id %s: %w", g.ID, model.ErrAlreadyExists)
	}

	r.goals[g.ID] = g
	r.logger.Debugf("Created goal in repository: %s", g.ID)

	return nil
}

// GetGoal retrieves a goal by ID.
func (r *Repository) GetGoal(ctx context.Context, id string) (*model.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	goal, ok := r.goals[id]
	if !ok {
		return nil, fmt.Errorf("goal %s: %w", id, model.ErrNotFound)
	}

	// Return a copy
	goalCopy := goal
	return &goalCopy, nil
}

// ListGoals returns all goals matching the filter, ordered by creation time.
func (r *Repository) ListGoals(ctx context.Context, filter storage.GoalFilter) ([]model.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	goals := make([]model.Goal, 0, len(r.goals))
	for _, goal := range r.goals {
		if filter.WorkspaceID != "" && goal.WorkspaceID != filter.WorkspaceID {
			continue
		}
		if filter.OwnerID != "" && goal.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Private != nil && goal.Private != *filter.Private {
			continue
		}
		goals = append(goals, goal)
	}

	sort.Slice(goals, func(i, j int) bool {
		if goals[i].CreatedAt.Equal(goals[j].CreatedAt) {
			return goals[i].ID < goals[j].ID
		}
		return goals[i].CreatedAt.Before(goals[j].CreatedAt)
	})

	return goals, nil
}

// UpdateGoal updates an existing goal.
func (r *Repository) UpdateGoal(ctx context.Context, g model.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.goals[g.ID]; !ok {
		return fmt.Errorf("goal %s: %w", g.ID, model.ErrNotFound)
	}

	r.goals[g.ID] = g
	r.logger.Debugf("Updated goal in repository: %s", g.ID)

	return nil
}

// DeleteGoal deletes a goal.
func (r *Repository) DeleteGoal(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.goals[id]; !ok {
		return fmt.Errorf("goal %s: %w", id, model.ErrNotFound)
	}

	delete(r.goals, id)
	r.logger.Debugf("Deleted goal from repository: %s", id)

	return nil
}

// CreateTask creates a new task in the repository.
func (r *Repository) CreateTask(ctx context.Context, t model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[t.ID]; ok {
		return fmt.Errorf("task with id %s: %w", t.ID, model.ErrAlreadyExists)
	}

	r.tasks[t.ID] = t
	r.logger.Debugf("Created task in repository: %s", t.ID)

	return nil
}

// GetTask retrieves a task by ID.
func (r *Repository) GetTask(ctx context.Context, id string) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}

	taskCopy := task
	return &taskCopy, nil
}

// ListTasksByGoal returns all tasks linked to a goal.
func (r *Repository) ListTasksByGoal(ctx context.Context, goalID string) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := []model.Task{}
	for _, task := range r.tasks {
		if task.GoalID == goalID {
			tasks = append(tasks, task)
		}
	}

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })

	return tasks, nil
}

// UpdateTask updates an existing task.
func (r *Repository) UpdateTask(ctx context.Context, t model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[t.ID]; !ok {
		return fmt.Errorf("task %s: %w", t.ID, model.ErrNotFound)
	}

	r.tasks[t.ID] = t
	r.logger.Debugf("Updated task in repository: %s", t.ID)

	return nil
}

// CreateProject creates a new project in the repository.
func (r *Repository) CreateProject(ctx context.Context, p model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[p.ID]; ok {
		return fmt.Errorf("project with id %s: %w", p.ID, model.ErrAlreadyExists)
	}

	r.projects[p.ID] = p
	r.logger.Debugf("Created project in repository: %s", p.ID)

	return nil
}

// GetProject retrieves a project by ID.
func (r *Repository) GetProject(ctx context.Context, id string) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, model.ErrNotFound)
	}

	projectCopy := project
	return &projectCopy, nil
}

// ListProjectsByGoal returns all projects linked to a goal.
func (r *Repository) ListProjectsByGoal(ctx context.Context, goalID string) ([]model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := []model.Project{}
	for _, project := range r.projects {
		if project.GoalID == goalID {
			projects = append(projects, project)
		}
	}

	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })

	return projects, nil
}

// UpdateProject updates an existing project.
func (r *Repository) UpdateProject(ctx context.Context, p model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[p.ID]; !ok {
		return fmt.Errorf("project %s: %w", p.ID, model.ErrNotFound)
	}

	r.projects[p.ID] = p
	r.logger.Debugf("Updated project in repository: %s", p.ID)

	return nil
}
