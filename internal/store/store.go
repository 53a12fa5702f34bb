package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goaltrack/goaltrack/internal/backend"
	"github.com/goaltrack/goaltrack/internal/log"
	"github.com/goaltrack/goaltrack/internal/model"
	"github.com/goaltrack/goaltrack/internal/session"
)

// Config is the configuration for the goal store.
type Config struct {
	Backend     backend.Backend
	Credentials session.Credentials
	Logger      log.Logger
}

func (c *Config) defaults() error {
	if c.Backend == nil {
		return fmt.Errorf("backend is required")
	}
	if c.Credentials == nil {
		return fmt.Errorf("credentials are required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "store.Goals"})
	return nil
}

// Store holds the authoritative, session-scoped set of goals and provides
// controlled mutation. The reconciler never keeps its own copy, it reads
// current state and writes progress through ApplyProgress.
type Store struct {
	backend backend.Backend
	creds   session.Credentials
	logger  log.Logger

	mu    sync.RWMutex
	goals map[string]model.Goal
	order []string
}

// New creates a new goal store.
func New(cfg Config) (*Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Store{
		backend: cfg.Backend,
		creds:   cfg.Credentials,
		logger:  cfg.Logger,
		goals:   map[string]model.Goal{},
	}, nil
}

// Load fetches goals from the backend and replaces the in-memory set. It is
// a replace, not a merge: pending local progress updates are lost and must be
// re-applied by the caller if needed.
//
// Without a session credential Load clears the set and returns nil: post
// logout there is nothing to fetch and no error to report. A fetch failure
// also yields an empty set, with the cause logged and returned.
func (s *Store) Load(ctx context.Context, filter *backend.GoalFilter) error {
	if _, ok := s.creds.Token(); !ok {
		s.replace(nil)
		s.logger.Debugf("No session, goal set cleared")
		return nil
	}

	goals, err := s.backend.FetchGoals(ctx, filter)
	if err != nil {
		s.replace(nil)
		s.logger.Errorf("Could not load goals: %s", err)
		return fmt.Errorf("could not load goals: %w", err)
	}

	s.replace(goals)
	s.logger.Debugf("Loaded %d goals", len(goals))

	return nil
}

// RefreshOne re-fetches a single goal and replaces it in place if it is part
// of the current set. A backend not-found leaves the set unchanged and
// returns model.ErrNotFound.
func (s *Store) RefreshOne(ctx context.Context, goalID string) (*model.Goal, error) {
	goal, err := s.backend.FetchGoal(ctx, goalID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("goal %s: %w", goalID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not refresh goal %s: %w", goalID, err)
	}

	s.mu.Lock()
	if _, ok := s.goals[goal.ID]; ok {
		s.goals[goal.ID] = *goal
	}
	s.mu.Unlock()

	goalCopy := *goal
	return &goalCopy, nil
}

// ApplyProgress overwrites the progress of a goal with the given value
// clamped to [0, 100]. It is the only mutation path used by the reconciler.
// Unknown goal ids are a no-op and return false: no new entry is created.
func (s *Store) ApplyProgress(goalID string, progress int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, ok := s.goals[goalID]
	if !ok {
		return false
	}

	goal.Progress = model.ClampProgress(progress)
	s.goals[goalID] = goal
	s.logger.Debugf("Applied progress %d to goal %s", goal.Progress, goalID)

	return true
}

// Get returns a copy of the goal with the given id.
func (s *Store) Get(goalID string) (*model.Goal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	goal, ok := s.goals[goalID]
	if !ok {
		return nil, false
	}

	goalCopy := goal
	return &goalCopy, true
}

// List returns a copy of all goals in load order.
func (s *Store) List() []model.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	goals := make([]model.Goal, 0, len(s.order))
	for _, id := range s.order {
		goals = append(goals, s.goals[id])
	}

	return goals
}

// Len returns the number of goals currently loaded.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.goals)
}

func (s *Store) replace(goals []model.Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goals = make(map[string]model.Goal, len(goals))
	s.order = make([]string, 0, len(goals))
	for _, g := range goals {
		s.goals[g.ID] = g
		s.order = append(s.order, g.ID)
	}
}
