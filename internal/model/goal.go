package model

import (
	"fmt"
	"time"
)

// GoalStatus represents the tracking status of a goal.
type GoalStatus string

const (
	// GoalStatusNone indicates the goal has no status set yet.
	GoalStatusNone GoalStatus = "no-status"
	// GoalStatusOnTrack indicates the goal is progressing as expected.
	GoalStatusOnTrack GoalStatus = "on-track"
	// GoalStatusAtRisk indicates the goal may miss its timeframe.
	GoalStatusAtRisk GoalStatus = "at-risk"
	// GoalStatusOffTrack indicates the goal is not progressing as expected.
	GoalStatusOffTrack GoalStatus = "off-track"
	// GoalStatusAchieved indicates the goal has been completed.
	GoalStatusAchieved GoalStatus = "achieved"
)

// ProgressSource indicates how a goal's progress percentage is derived.
type ProgressSource string

const (
	// ProgressSourceManual means progress is set by hand.
	ProgressSourceManual ProgressSource = "manual"
	// ProgressSourceTasks means progress is derived from linked task completion.
	ProgressSourceTasks ProgressSource = "tasks"
	// ProgressSourceProjects means progress is derived from linked project completion.
	ProgressSourceProjects ProgressSource = "projects"
)

// Goal represents a trackable objective.
//
// Progress is always within [0, 100]. When ProgressSource is tasks or
// projects the progress field is derived from the completion ratio of the
// linked items and is not independently editable.
type Goal struct {
	ID          string
	Title       string
	Description string
	Progress    int
	Status      GoalStatus
	Private     bool
	OwnerID     string
	WorkspaceID string
	ParentID    string
	Source      ProgressSource
	TaskIDs     []string
	ProjectIDs  []string
	Timeframe   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Derived returns true when the goal's progress is computed from linked items.
func (g *Goal) Derived() bool {
	return g.Source == ProgressSourceTasks || g.Source == ProgressSourceProjects
}

// Validate validates the goal.
func (g *Goal) Validate() error {
	if g.Title == "" {
		return fmt.Errorf("title is required: %w", ErrNotValid)
	}

	switch g.Status {
	case GoalStatusNone, GoalStatusOnTrack, GoalStatusAtRisk, GoalStatusOffTrack, GoalStatusAchieved:
	default:
		return fmt.Errorf("unknown status %q: %w", g.Status, ErrNotValid)
	}

	switch g.Source {
	case ProgressSourceManual, ProgressSourceTasks, ProgressSourceProjects:
	default:
		return fmt.Errorf("unknown progress source %q: %w", g.Source, ErrNotValid)
	}

	if g.Progress < 0 || g.Progress > 100 {
		return fmt.Errorf("progress must be within [0, 100]: %w", ErrNotValid)
	}

	return nil
}

// ClampProgress clamps a progress percentage to [0, 100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// ValidateParent checks that assigning parentID as the parent of goalID keeps
// the goal tree acyclic. Goals are given as a flat map keyed by id, parent
// relations as id references; the check walks ancestors iteratively.
func ValidateParent(goals map[string]Goal, goalID, parentID string) error {
	if parentID == "" {
		return nil
	}
	if goalID == parentID {
		return fmt.Errorf("goal cannot be its own parent: %w", ErrNotValid)
	}
	if _, ok := goals[parentID]; !ok {
		return fmt.Errorf("parent goal %s: %w", parentID, ErrNotFound)
	}

	// Walk up from the candidate parent. Reaching goalID means goalID is an
	// ancestor of the candidate, so the assignment would close a cycle.
	seen := map[string]bool{}
	current := parentID
	for current != "" {
		if current == goalID {
			return fmt.Errorf("goal %s is an ancestor of %s, assignment would create a cycle: %w", goalID, parentID, ErrNotValid)
		}
		if seen[current] {
			// Pre-existing cycle in the data, don't loop forever.
			return fmt.Errorf("goal tree already contains a cycle at %s: %w", current, ErrNotValid)
		}
		seen[current] = true

		g, ok := goals[current]
		if !ok {
			break
		}
		current = g.ParentID
	}

	return nil
}
