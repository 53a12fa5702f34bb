package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/goaltrack/goaltrack/internal/backend"
	"github.com/goaltrack/goaltrack/internal/backend/backendmock"
	"github.com/goaltrack/goaltrack/internal/log"
	"github.com/goaltrack/goaltrack/internal/model"
	"github.com/goaltrack/goaltrack/internal/session"
	"github.com/goaltrack/goaltrack/internal/store"
)

func TestNew(t *testing.T) {
	tests := map[string]struct {
		cfg    store.Config
		expErr bool
		errMsg string
	}{
		"Valid config": {
			cfg: store.Config{
				Backend:     &backendmock.MockBackend{},
				Credentials: session.Static("tkn"),
				Logger:      log.Noop,
			},
			expErr: false,
		},
		"Missing backend returns error": {
			cfg: store.Config{
				Credentials: session.Static("tkn"),
			},
			expErr: true,
			errMsg: "backend is required",
		},
		"Missing credentials returns error": {
			cfg: store.Config{
				Backend: &backendmock.MockBackend{},
			},
			expErr: true,
			errMsg: "credentials are required",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := store.New(tt.cfg)

			if tt.expErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, s)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, s)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	goals := []model.Goal{
		{ID: "G1", Title: "Goal 1", Progress: 40, Source: model.ProgressSourceTasks},
		{ID: "G2", Title: "Goal 2", Progress: 10, Source: model.ProgressSourceManual},
	}

	tests := map[string]struct {
		creds      session.Credentials
		setupMocks func(b *backendmock.MockBackend)
		expErr     bool
		expGoals   int
	}{
		"Load replaces the set with fetched goals": {
			creds: session.Static("tkn"),
			setupMocks: func(b *backendmock.MockBackend) {
				b.On("FetchGoals", mock.Anything, (*backend.GoalFilter)(nil)).
					Return(goals, nil)
			},
			expGoals: 2,
		},
		"No session clears the set and does not fetch": {
			creds:      session.Static(""),
			setupMocks: func(b *backendmock.MockBackend) {},
			expGoals:   0,
		},
		"Fetch failure yields an empty set and an error": {
			creds: session.Static("tkn"),
			setupMocks: func(b *backendmock.MockBackend) {
				b.On("FetchGoals", mock.Anything, (*backend.GoalFilter)(nil)).
					Return(nil, errors.New("boom"))
			},
			expErr:   true,
			expGoals: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			mockBackend := backendmock.NewMockBackend(t)
			tt.setupMocks(mockBackend)

			s, err := store.New(store.Config{
				Backend:     mockBackend,
				Credentials: tt.creds,
				Logger:      log.Noop,
			})
			require.NoError(t, err)

			err = s.Load(context.Background(), nil)

			if tt.expErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expGoals, s.Len())
		})
	}
}

func TestLoadReplacesLocalMutations(t *testing.T) {
	mockBackend := backendmock.NewMockBackend(t)
	mockBackend.On("FetchGoals", mock.Anything, mock.Anything).
		Return([]model.Goal{{ID: "G1", Title: "Goal 1", Progress: 40}}, nil).Twice()

	s, err := store.New(store.Config{
		Backend:     mockBackend,
		Credentials: session.Static("tkn"),
		Logger:      log.Noop,
	})
	require.NoError(t, err)

	require.NoError(t, s.Load(context.Background(), nil))
	require.True(t, s.ApplyProgress("G1", 90))

	// A full load is a replace, not a merge: the local mutation is gone.
	require.NoError(t, s.Load(context.Background(), nil))
	goal, ok := s.Get("G1")
	require.True(t, ok)
	assert.Equal(t, 40, goal.Progress)
}

func TestApplyProgress(t *testing.T) {
	tests := map[string]struct {
		goalID      string
		progress    int
		expApplied  bool
		expProgress int
	}{
		"In range value is stored":          {goalID: "G1", progress: 55, expApplied: true, expProgress: 55},
		"Negative value clamps to zero":     {goalID: "G1", progress: -30, expApplied: true, expProgress: 0},
		"Value above 100 clamps to hundred": {goalID: "G1", progress: 250, expApplied: true, expProgress: 100},
		"Unknown goal id is a no-op":        {goalID: "GX", progress: 55, expApplied: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			mockBackend := backendmock.NewMockBackend(t)
			mockBackend.On("FetchGoals", mock.Anything, mock.Anything).
				Return([]model.Goal{{ID: "G1", Title: "Goal 1", Progress: 40}}, nil)

			s, err := store.New(store.Config{
				Backend:     mockBackend,
				Credentials: session.Static("tkn"),
				Logger:      log.Noop,
			})
			require.NoError(t, err)
			require.NoError(t, s.Load(context.Background(), nil))

			applied := s.ApplyProgress(tt.goalID, tt.progress)

			assert.Equal(t, tt.expApplied, applied)
			if tt.expApplied {
				goal, ok := s.Get(tt.goalID)
				require.True(t, ok)
				assert.Equal(t, tt.expProgress, goal.Progress)
			} else {
				// No new entry is created for unknown ids.
				assert.Equal(t, 1, s.Len())
				_, ok := s.Get(tt.goalID)
				assert.False(t, ok)
			}
		})
	}
}

func TestRefreshOne(t *testing.T) {
	tests := map[string]struct {
		goalID      string
		setupMocks  func(b *backendmock.MockBackend)
		expErr      error
		expProgress int
	}{
		"Refresh replaces the goal in place": {
			goalID: "G1",
			setupMocks: func(b *backendmock.MockBackend) {
				b.On("FetchGoal", mock.Anything, "G1").
					Return(&model.Goal{ID: "G1", Title: "Goal 1", Progress: 75}, nil)
			},
			expProgress: 75,
		},
		"Not found leaves the set untouched": {
			goalID: "GX",
			setupMocks: func(b *backendmock.MockBackend) {
				b.On("FetchGoal", mock.Anything, "GX").
					Return(nil, model.ErrNotFound)
			},
			expErr: model.ErrNotFound,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			mockBackend := backendmock.NewMockBackend(t)
			mockBackend.On("FetchGoals", mock.Anything, mock.Anything).
				Return([]model.Goal{{ID: "G1", Title: "Goal 1", Progress: 40}}, nil)
			tt.setupMocks(mockBackend)

			s, err := store.New(store.Config{
				Backend:     mockBackend,
				Credentials: session.Static("tkn"),
				Logger:      log.Noop,
			})
			require.NoError(t, err)
			require.NoError(t, s.Load(context.Background(), nil))

			goal, err := s.RefreshOne(context.Background(), tt.goalID)

			if tt.expErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expErr)
				// Prior state untouched.
				prior, ok := s.Get("G1")
				require.True(t, ok)
				assert.Equal(t, 40, prior.Progress)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expProgress, goal.Progress)
				stored, ok := s.Get(tt.goalID)
				require.True(t, ok)
				assert.Equal(t, tt.expProgress, stored.Progress)
			}
		})
	}
}
