package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goaltrack/goaltrack/internal/model"
)

// TablePrinter prints goal information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintGoalList prints goals in a table format.
func (t *TablePrinter) PrintGoalList(goals []model.Goal) error {
	if len(goals) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header
	fmt.Fprintln(tw, "ID\tTITLE\tPROGRESS\tSTATUS\tSOURCE\tUPDATED")

	// Print rows
	for _, g := range goals {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			g.ID, g.Title, FormatProgress(g.Progress), g.Status, g.Source, TimeAgo(g.UpdatedAt))
	}

	return nil
}

// PrintGoalStatus prints detailed goal status with its linked items.
func (t *TablePrinter) PrintGoalStatus(goal model.Goal, tasks []model.Task, projects []model.Project) error {
	fmt.Fprintf(t.writer, "Title:      %s\n", goal.Title)
	fmt.Fprintf(t.writer, "ID:         %s\n", goal.ID)
	fmt.Fprintf(t.writer, "Progress:   %s\n", FormatProgress(goal.Progress))
	fmt.Fprintf(t.writer, "Status:     %s\n", goal.Status)
	fmt.Fprintf(t.writer, "Source:     %s\n", goal.Source)

	if goal.Description != "" {
		fmt.Fprintf(t.writer, "About:      %s\n", goal.Description)
	}
	if goal.ParentID != "" {
		fmt.Fprintf(t.writer, "Parent:     %s\n", goal.ParentID)
	}
	if goal.Timeframe != "" {
		fmt.Fprintf(t.writer, "Timeframe:  %s\n", goal.Timeframe)
	}
	if goal.Private {
		fmt.Fprintf(t.writer, "Visibility: private\n")
	}

	fmt.Fprintf(t.writer, "Created:    %s\n", FormatTimestamp(goal.CreatedAt))
	fmt.Fprintf(t.writer, "Updated:    %s\n", FormatTimestamp(goal.UpdatedAt))

	if len(tasks) > 0 {
		fmt.Fprintf(t.writer, "\nTasks:\n")
		tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  ID\tTITLE\tDONE")
		for _, task := range tasks {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", task.ID, task.Title, checkmark(task.Completed))
		}
		tw.Flush()
	}

	if len(projects) > 0 {
		fmt.Fprintf(t.writer, "\nProjects:\n")
		tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  ID\tNAME\tDONE")
		for _, project := range projects {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", project.ID, project.Name, checkmark(project.Completed))
		}
		tw.Flush()
	}

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}

func checkmark(completed bool) string {
	if completed {
		return "yes"
	}
	return "no"
}
