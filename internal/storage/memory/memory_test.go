package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaltrack/goaltrack/internal/log"
	"github.com/goaltrack/goaltrack/internal/model"
	"github.com/goaltrack/goaltrack/internal/storage"
	"github.com/goaltrack/goaltrack/internal/storage/memory"
)

func newTestRepository(t *testing.T) *memory.Repository {
	repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: log.Noop})
	require.NoError(t, err)
	return repo
}

func TestGoalCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	goal := model.Goal{
		ID:       "G1",
		Title:    "Ship the new onboarding",
		Progress: 20,
		Status:   model.GoalStatusOnTrack,
		Source:   model.ProgressSourceTasks,
	}

	// Create.
	require.NoError(t, repo.CreateGoal(ctx, goal))
	err := repo.CreateGoal(ctx, goal)
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	// Get.
	got, err := repo.GetGoal(ctx, "G1")
	require.NoError(t, err)
	assert.Equal(t, goal, *got)

	_, err = repo.GetGoal(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	// Update.
	goal.Progress = 60
	require.NoError(t, repo.UpdateGoal(ctx, goal))
	got, err = repo.GetGoal(ctx, "G1")
	require.NoError(t, err)
	assert.Equal(t, 60, got.Progress)

	err = repo.UpdateGoal(ctx, model.Goal{ID: "missing"})
	assert.ErrorIs(t, err, model.ErrNotFound)

	// Delete.
	require.NoError(t, repo.DeleteGoal(ctx, "G1"))
	err = repo.DeleteGoal(ctx, "G1")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestListGoals(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	priv := true

	goals := []model.Goal{
		{ID: "G1", Title: "A", WorkspaceID: "W1", OwnerID: "U1", CreatedAt: now},
		{ID: "G2", Title: "B", WorkspaceID: "W1", OwnerID: "U2", Private: true, CreatedAt: now.Add(time.Second)},
		{ID: "G3", Title: "C", WorkspaceID: "W2", OwnerID: "U1", CreatedAt: now.Add(2 * time.Second)},
	}

	tests := map[string]struct {
		filter storage.GoalFilter
		expIDs []string
	}{
		"No filter returns everything in creation order": {
			filter: storage.GoalFilter{},
			expIDs: []string{"G1", "G2", "G3"},
		},
		"Filter by workspace": {
			filter: storage.GoalFilter{WorkspaceID: "W1"},
			expIDs: []string{"G1", "G2"},
		},
		"Filter by owner": {
			filter: storage.GoalFilter{OwnerID: "U1"},
			expIDs: []string{"G1", "G3"},
		},
		"Filter by privacy": {
			filter: storage.GoalFilter{Private: &priv},
			expIDs: []string{"G2"},
		},
		"Combined filters": {
			filter: storage.GoalFilter{WorkspaceID: "W1", OwnerID: "U2"},
			expIDs: []string{"G2"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			repo := newTestRepository(t)
			for _, g := range goals {
				require.NoError(t, repo.CreateGoal(ctx, g))
			}

			got, err := repo.ListGoals(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, g := range got {
				ids = append(ids, g.ID)
			}
			assert.Equal(t, tt.expIDs, ids)
		})
	}
}

func TestTaskCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	task := model.Task{ID: "T1", Title: "Write docs", GoalID: "G1"}

	require.NoError(t, repo.CreateTask(ctx, task))
	assert.ErrorIs(t, repo.CreateTask(ctx, task), model.ErrAlreadyExists)

	got, err := repo.GetTask(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, task, *got)

	task.Completed = true
	require.NoError(t, repo.UpdateTask(ctx, task))
	got, err = repo.GetTask(ctx, "T1")
	require.NoError(t, err)
	assert.True(t, got.Completed)

	assert.ErrorIs(t, repo.UpdateTask(ctx, model.Task{ID: "missing"}), model.ErrNotFound)
}

func TestListTasksByGoal(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.CreateTask(ctx, model.Task{ID: "T1", Title: "A", GoalID: "G1"}))
	require.NoError(t, repo.CreateTask(ctx, model.Task{ID: "T2", Title: "B", GoalID: "G2"}))
	require.NoError(t, repo.CreateTask(ctx, model.Task{ID: "T3", Title: "C", GoalID: "G1"}))

	tasks, err := repo.ListTasksByGoal(ctx, "G1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "T1", tasks[0].ID)
	assert.Equal(t, "T3", tasks[1].ID)

	tasks, err = repo.ListTasksByGoal(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestProjectCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	project := model.Project{ID: "P1", Name: "Mobile app", GoalID: "G1"}

	require.NoError(t, repo.CreateProject(ctx, project))
	assert.ErrorIs(t, repo.CreateProject(ctx, project), model.ErrAlreadyExists)

	got, err := repo.GetProject(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, project, *got)

	project.Completed = true
	require.NoError(t, repo.UpdateProject(ctx, project))
	got, err = repo.GetProject(ctx, "P1")
	require.NoError(t, err)
	assert.True(t, got.Completed)

	projects, err := repo.ListProjectsByGoal(ctx, "G1")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "P1", projects[0].ID)
}
