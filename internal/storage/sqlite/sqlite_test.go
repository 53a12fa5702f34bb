package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaltrack/goaltrack/internal/log"
	"github.com/goaltrack/goaltrack/internal/model"
	"github.com/goaltrack/goaltrack/internal/storage"
	"github.com/goaltrack/goaltrack/internal/storage/sqlite"
)

func newTestRepository(t *testing.T) *sqlite.Repository {
	dbPath := filepath.Join(t.TempDir(), "goaltrack.db")
	repo, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{
		DBPath: dbPath,
		Logger: log.Noop,
	})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestGoalRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	now := time.Now().Truncate(time.Second).UTC()
	goal := model.Goal{
		ID:          "01JTEST000000000000000001",
		Title:       "Grow ARR",
		Description: "Quarterly revenue goal",
		Progress:    35,
		Status:      model.GoalStatusOnTrack,
		Private:     true,
		OwnerID:     "U1",
		WorkspaceID: "W1",
		ParentID:    "",
		Source:      model.ProgressSourceProjects,
		Timeframe:   "Q3 FY26",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	require.NoError(t, repo.CreateGoal(ctx, goal))

	// Duplicate id maps to ErrAlreadyExists.
	err := repo.CreateGoal(ctx, goal)
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	got, err := repo.GetGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, goal, *got)

	_, err = repo.GetGoal(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	goal.Progress = 50
	goal.Status = model.GoalStatusAtRisk
	require.NoError(t, repo.UpdateGoal(ctx, goal))
	got, err = repo.GetGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.Progress)
	assert.Equal(t, model.GoalStatusAtRisk, got.Status)

	assert.ErrorIs(t, repo.UpdateGoal(ctx, model.Goal{ID: "missing"}), model.ErrNotFound)

	require.NoError(t, repo.DeleteGoal(ctx, goal.ID))
	assert.ErrorIs(t, repo.DeleteGoal(ctx, goal.ID), model.ErrNotFound)
}

func TestListGoalsFilters(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	now := time.Now().Truncate(time.Second).UTC()
	goals := []model.Goal{
		{ID: "G1", Title: "A", Status: model.GoalStatusNone, Source: model.ProgressSourceManual, WorkspaceID: "W1", OwnerID: "U1", CreatedAt: now, UpdatedAt: now},
		{ID: "G2", Title: "B", Status: model.GoalStatusNone, Source: model.ProgressSourceTasks, WorkspaceID: "W1", OwnerID: "U2", Private: true, CreatedAt: now.Add(time.Second), UpdatedAt: now},
		{ID: "G3", Title: "C", Status: model.GoalStatusNone, Source: model.ProgressSourceTasks, WorkspaceID: "W2", OwnerID: "U1", CreatedAt: now.Add(2 * time.Second), UpdatedAt: now},
	}
	for _, g := range goals {
		require.NoError(t, repo.CreateGoal(ctx, g))
	}

	priv := true
	tests := map[string]struct {
		filter storage.GoalFilter
		expIDs []string
	}{
		"All goals in creation order": {filter: storage.GoalFilter{}, expIDs: []string{"G1", "G2", "G3"}},
		"By workspace":                {filter: storage.GoalFilter{WorkspaceID: "W1"}, expIDs: []string{"G1", "G2"}},
		"By owner":                    {filter: storage.GoalFilter{OwnerID: "U1"}, expIDs: []string{"G1", "G3"}},
		"By privacy":                  {filter: storage.GoalFilter{Private: &priv}, expIDs: []string{"G2"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
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

func TestTaskRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	now := time.Now().Truncate(time.Second).UTC()
	task := model.Task{ID: "T1", Title: "Draft spec", GoalID: "G1", CreatedAt: now, UpdatedAt: now}

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

	require.NoError(t, repo.CreateTask(ctx, model.Task{ID: "T2", Title: "Review spec", GoalID: "G1", CreatedAt: now.Add(time.Second), UpdatedAt: now}))
	require.NoError(t, repo.CreateTask(ctx, model.Task{ID: "T3", Title: "Other", GoalID: "G2", CreatedAt: now, UpdatedAt: now}))

	tasks, err := repo.ListTasksByGoal(ctx, "G1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "T1", tasks[0].ID)
	assert.Equal(t, "T2", tasks[1].ID)
}

func TestProjectRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	now := time.Now().Truncate(time.Second).UTC()
	project := model.Project{ID: "P1", Name: "Website revamp", GoalID: "G1", CreatedAt: now, UpdatedAt: now}

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
