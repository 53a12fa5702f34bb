package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/goaltrack/goaltrack/internal/model"
)

// JSONPrinter prints goal information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// listItem represents a goal in the list output (subset of fields).
type listItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Progress  int       `json:"progress"`
	Status    string    `json:"status"`
	Source    string    `json:"progress_source"`
	UpdatedAt time.Time `json:"updated_at"`
}

// statusOutput represents the full goal status output.
type statusOutput struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Progress    int          `json:"progress"`
	Status      string       `json:"status"`
	Source      string       `json:"progress_source"`
	Private     bool         `json:"private"`
	ParentID    string       `json:"parent_id,omitempty"`
	Timeframe   string       `json:"timeframe,omitempty"`
	Tasks       []itemOutput `json:"tasks,omitempty"`
	Projects    []itemOutput `json:"projects,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// itemOutput represents a linked task or project in the status output.
type itemOutput struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintGoalList prints goals in JSON format with a subset of fields.
func (j *JSONPrinter) PrintGoalList(goals []model.Goal) error {
	items := make([]listItem, len(goals))
	for i, g := range goals {
		items[i] = listItem{
			ID:        g.ID,
			Title:     g.Title,
			Progress:  g.Progress,
			Status:    string(g.Status),
			Source:    string(g.Source),
			UpdatedAt: g.UpdatedAt.UTC(),
		}
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// PrintGoalStatus prints detailed goal status in JSON format.
func (j *JSONPrinter) PrintGoalStatus(goal model.Goal, tasks []model.Task, projects []model.Project) error {
	output := statusOutput{
		ID:          goal.ID,
		Title:       goal.Title,
		Description: goal.Description,
		Progress:    goal.Progress,
		Status:      string(goal.Status),
		Source:      string(goal.Source),
		Private:     goal.Private,
		ParentID:    goal.ParentID,
		Timeframe:   goal.Timeframe,
		CreatedAt:   goal.CreatedAt.UTC(),
		UpdatedAt:   goal.UpdatedAt.UTC(),
	}

	for _, task := range tasks {
		output.Tasks = append(output.Tasks, itemOutput{ID: task.ID, Title: task.Title, Completed: task.Completed})
	}
	for _, project := range projects {
		output.Projects = append(output.Projects, itemOutput{ID: project.ID, Title: project.Name, Completed: project.Completed})
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	output := messageOutput{Message: msg}
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
