package printer

import "github.com/goaltrack/goaltrack/internal/model"

// Printer knows how to print goal information in different formats.
type Printer interface {
	PrintGoalList(goals []model.Goal) error
	PrintGoalStatus(goal model.Goal, tasks []model.Task, projects []model.Project) error
	PrintMessage(msg string) error
}
