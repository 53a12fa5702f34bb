package model

// GoalProgressDelta is a goal progress update reported as a direct side
// effect of a task or project mutation.
type GoalProgressDelta struct {
	GoalID   string
	Progress int
}

// ProgressUpdateEvent is produced when a task or project completion mutation
// succeeds. It is consumed exactly once by the reconciler and then discarded.
type ProgressUpdateEvent struct {
	EntityID     string
	Completed    bool
	UpdatedGoals []GoalProgressDelta
}
