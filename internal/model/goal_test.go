package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaltrack/goaltrack/internal/model"
)

func TestGoalValidate(t *testing.T) {
	tests := map[string]struct {
		goal   model.Goal
		expErr bool
	}{
		"Valid goal": {
			goal: model.Goal{
				ID:       "01JTEST000000000000000000",
				Title:    "Increase retention",
				Progress: 40,
				Status:   model.GoalStatusOnTrack,
				Source:   model.ProgressSourceTasks,
			},
			expErr: false,
		},
		"Missing title is invalid": {
			goal: model.Goal{
				Progress: 0,
				Status:   model.GoalStatusNone,
				Source:   model.ProgressSourceManual,
			},
			expErr: true,
		},
		"Unknown status is invalid": {
			goal: model.Goal{
				Title:  "Something",
				Status: model.GoalStatus("paused"),
				Source: model.ProgressSourceManual,
			},
			expErr: true,
		},
		"Unknown progress source is invalid": {
			goal: model.Goal{
				Title:  "Something",
				Status: model.GoalStatusNone,
				Source: model.ProgressSource("milestones"),
			},
			expErr: true,
		},
		"Progress above 100 is invalid": {
			goal: model.Goal{
				Title:    "Something",
				Progress: 140,
				Status:   model.GoalStatusNone,
				Source:   model.ProgressSourceManual,
			},
			expErr: true,
		},
		"Negative progress is invalid": {
			goal: model.Goal{
				Title:    "Something",
				Progress: -1,
				Status:   model.GoalStatusNone,
				Source:   model.ProgressSourceManual,
			},
			expErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.goal.Validate()

			if tt.expErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestClampProgress(t *testing.T) {
	tests := map[string]struct {
		progress int
		exp      int
	}{
		"Within range is unchanged":   {progress: 42, exp: 42},
		"Zero is unchanged":           {progress: 0, exp: 0},
		"Hundred is unchanged":        {progress: 100, exp: 100},
		"Negative clamps to zero":     {progress: -20, exp: 0},
		"Above hundred clamps to 100": {progress: 250, exp: 100},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.exp, model.ClampProgress(tt.progress))
		})
	}
}

func TestValidateParent(t *testing.T) {
	// A -> B -> C chain (C's parent is B, B's parent is A).
	goals := map[string]model.Goal{
		"A": {ID: "A"},
		"B": {ID: "B", ParentID: "A"},
		"C": {ID: "C", ParentID: "B"},
		"D": {ID: "D"},
	}

	tests := map[string]struct {
		goalID   string
		parentID string
		expErr   error
	}{
		"Empty parent clears the relation": {
			goalID:   "C",
			parentID: "",
		},
		"Assigning an unrelated goal as parent is valid": {
			goalID:   "D",
			parentID: "C",
		},
		"Self parent is rejected": {
			goalID:   "A",
			parentID: "A",
			expErr:   model.ErrNotValid,
		},
		"Direct cycle is rejected": {
			goalID:   "A",
			parentID: "B",
			expErr:   model.ErrNotValid,
		},
		"Transitive cycle is rejected": {
			goalID:   "A",
			parentID: "C",
			expErr:   model.ErrNotValid,
		},
		"Unknown parent is rejected": {
			goalID:   "A",
			parentID: "Z",
			expErr:   model.ErrNotFound,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := model.ValidateParent(goals, tt.goalID, tt.parentID)

			if tt.expErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
