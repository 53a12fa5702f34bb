package reconcile

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goaltrack/goaltrack/internal/backend"
	"github.com/goaltrack/goaltrack/internal/log"
	"github.com/goaltrack/goaltrack/internal/model"
	"github.com/goaltrack/goaltrack/internal/session"
)

const (
	defaultSweepInterval  = 5 * time.Second
	defaultActivityWindow = 10 * time.Second
	defaultSettleDelay    = 2 * time.Second
)

// GoalStore is the mutation seam the reconciler writes progress through.
type GoalStore interface {
	ApplyProgress(goalID string, progress int) bool
}

// Config is the configuration for the reconciler.
type Config struct {
	Backend     backend.Backend
	Store       GoalStore
	Credentials session.Credentials
	Logger      log.Logger

	// SweepInterval is the period of the sweep trigger check.
	SweepInterval time.Duration
	// ActivityWindow is the trailing window after a task/project mutation
	// during which periodic sweeps keep firing.
	ActivityWindow time.Duration
	// SettleDelay is how long Run waits before the baseline sweep.
	SettleDelay time.Duration
	// Now is the clock, for tests.
	Now func() time.Time
}

func (c *Config) defaults() error {
	if c.Backend == nil {
		return fmt.Errorf("backend is required")
	}
	if c.Store == nil {
		return fmt.Errorf("store is required")
	}
	if c.Credentials == nil {
		return fmt.Errorf("credentials are required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "reconcile.Reconciler"})

	if c.SweepInterval <= 0 {
		c.SweepInterval = defaultSweepInterval
	}
	if c.ActivityWindow <= 0 {
		c.ActivityWindow = defaultActivityWindow
	}
	if c.SettleDelay < 0 {
		c.SettleDelay = defaultSettleDelay
	}
	if c.Now == nil {
		c.Now = time.Now
	}

	return nil
}

// Reconciler keeps goal progress percentages eventually consistent with the
// completion state of their linked tasks and projects.
//
// Task and project mutations go through the reconciler instead of calling
// the backend directly, so a single seam observes them: when the backend
// reports which goals a mutation affected those deltas are applied straight
// to the goal store, and when it does not, a full reconciliation sweep picks
// up the slack. A periodic trigger also sweeps while mutations are recent,
// covering multi-goal side effects the direct-delta path can miss.
type Reconciler struct {
	backend backend.Backend
	store   GoalStore
	creds   session.Credentials
	logger  log.Logger

	sweepInterval  time.Duration
	activityWindow time.Duration
	settleDelay    time.Duration
	now            func() time.Time

	inFlight atomic.Bool

	mu             sync.Mutex
	lastTaskUpdate time.Time
	lastProjUpdate time.Time
}

// New creates a new reconciler.
func New(cfg Config) (*Reconciler, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Reconciler{
		backend:        cfg.Backend,
		store:          cfg.Store,
		creds:          cfg.Credentials,
		logger:         cfg.Logger,
		sweepInterval:  cfg.SweepInterval,
		activityWindow: cfg.ActivityWindow,
		settleDelay:    cfg.SettleDelay,
		now:            cfg.Now,
	}, nil
}

// CompleteTask updates a task's completion through the backend and keeps
// linked goal progress in sync.
//
// Without a session the mutation passes through untouched: no activity is
// recorded, no deltas are applied and no sweep is scheduled. On backend
// failure it returns an empty result shape together with the error, so
// callers can choose to act on it or ignore it; the reconciler itself only
// logs it.
func (r *Reconciler) CompleteTask(ctx context.Context, taskID string, completed bool, goalID string) (*backend.TaskUpdate, error) {
	if _, ok := r.creds.Token(); !ok {
		return r.backend.UpdateTaskCompletion(ctx, taskID, completed, goalID)
	}

	// Activity is recorded before the mutation, regardless of its outcome.
	r.markActivity(&r.lastTaskUpdate)

	update, err := r.backend.UpdateTaskCompletion(ctx, taskID, completed, goalID)
	if err != nil {
		r.logger.Errorf("Task completion update failed for %s: %s", taskID, err)
		return &backend.TaskUpdate{}, fmt.Errorf("could not update task %s: %w", taskID, err)
	}

	r.consume(ctx, model.ProgressUpdateEvent{
		EntityID:     taskID,
		Completed:    completed,
		UpdatedGoals: update.UpdatedGoals,
	})

	return update, nil
}

// CompleteProject updates a project's status through the backend, same
// contract as CompleteTask.
func (r *Reconciler) CompleteProject(ctx context.Context, projectID string, completed bool, goalID string) (*backend.ProjectUpdate, error) {
	if _, ok := r.creds.Token(); !ok {
		return r.backend.UpdateProjectStatus(ctx, projectID, completed, goalID)
	}

	r.markActivity(&r.lastProjUpdate)

	update, err := r.backend.UpdateProjectStatus(ctx, projectID, completed, goalID)
	if err != nil {
		r.logger.Errorf("Project status update failed for %s: %s", projectID, err)
		return &backend.ProjectUpdate{}, fmt.Errorf("could not update project %s: %w", projectID, err)
	}

	r.consume(ctx, model.ProgressUpdateEvent{
		EntityID:     projectID,
		Completed:    completed,
		UpdatedGoals: update.UpdatedGoals,
	})

	return update, nil
}

// ReconcileAll runs a full reconciliation sweep: every goal whose progress is
// derived from tasks or projects gets its percentage recomputed by the
// backend and written to the goal store.
//
// Only one sweep runs at a time, concurrent calls return immediately without
// issuing any backend calls. Goals are processed sequentially; a single
// goal's calculation failure is logged and does not abort the sweep.
func (r *Reconciler) ReconcileAll(ctx context.Context) error {
	if !r.inFlight.CompareAndSwap(false, true) {
		r.logger.Debugf("Reconciliation already in flight, skipping")
		return nil
	}
	defer r.inFlight.Store(false)

	goals, err := r.backend.FetchGoals(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not fetch goals for reconciliation: %w", err)
	}

	reconciled := 0
	for _, g := range goals {
		if !g.Derived() {
			continue
		}

		progress, err := r.backend.CalculateProgress(ctx, g.ID)
		if err != nil {
			// Leave this goal stale until the next successful sweep.
			r.logger.Errorf("Could not calculate progress for goal %s: %s", g.ID, err)
			continue
		}

		r.store.ApplyProgress(g.ID, progress)
		reconciled++
	}

	r.logger.Debugf("Reconciliation sweep done, %d goals reconciled", reconciled)

	return nil
}

// Run runs the periodic sweep trigger until the context is cancelled. After
// a settling delay it performs one baseline sweep, then on every tick it
// sweeps if a session is present and a task or project mutation happened
// within the trailing activity window.
func (r *Reconciler) Run(ctx context.Context) error {
	select {
	case <-time.After(r.settleDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	if _, ok := r.creds.Token(); ok {
		if err := r.ReconcileAll(ctx); err != nil {
			r.logger.Errorf("Baseline reconciliation failed: %s", err)
		}
	}

	ticker := time.NewTicker(r.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			if _, ok := r.creds.Token(); !ok {
				continue
			}
			if !r.recentActivity() {
				continue
			}
			if err := r.ReconcileAll(ctx); err != nil {
				r.logger.Errorf("Reconciliation sweep failed: %s", err)
			}
		}
	}
}

// consume handles a progress update event exactly once: direct deltas are
// applied to the store, and a full sweep is scheduled when the mutation did
// not report which goals were affected.
func (r *Reconciler) consume(ctx context.Context, ev model.ProgressUpdateEvent) {
	if len(ev.UpdatedGoals) > 0 {
		for _, d := range ev.UpdatedGoals {
			r.store.ApplyProgress(d.GoalID, d.Progress)
		}
		return
	}

	r.logger.Debugf("Mutation on %s reported no goal deltas, scheduling a sweep", ev.EntityID)

	// The sweep must survive the caller's request lifetime.
	sweepCtx := context.WithoutCancel(ctx)
	go func() {
		if err := r.ReconcileAll(sweepCtx); err != nil {
			r.logger.Errorf("Scheduled reconciliation failed: %s", err)
		}
	}()
}

func (r *Reconciler) markActivity(ts *time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	*ts = r.now()
}

func (r *Reconciler) recentActivity() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.activityWindow)
	return r.lastTaskUpdate.After(cutoff) || r.lastProjUpdate.After(cutoff)
}
