package printer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaltrack/goaltrack/internal/model"
	"github.com/goaltrack/goaltrack/internal/printer"
)

func goalFixture() model.Goal {
	createdAt := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)
	return model.Goal{
		ID:          "01234567890ABCDEFGHIJKLMNOP",
		Title:       "Grow ARR",
		Description: "Quarterly revenue goal",
		Progress:    45,
		Status:      model.GoalStatusOnTrack,
		Source:      model.ProgressSourceProjects,
		WorkspaceID: "W1",
		Timeframe:   "Q3 FY26",
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestTablePrinterPrintGoalStatus(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	tasks := []model.Task{{ID: "T1", Title: "Draft plan", Completed: true}}
	err := p.PrintGoalStatus(goalFixture(), tasks, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Title:      Grow ARR")
	assert.Contains(t, out, "Progress:   45%")
	assert.Contains(t, out, "Status:     on-track")
	assert.Contains(t, out, "Timeframe:  Q3 FY26")
	assert.Contains(t, out, "Draft plan")
}

func TestTablePrinterPrintGoalList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintGoalList([]model.Goal{goalFixture()})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Grow ARR")
	assert.Contains(t, out, "45%")
}

func TestJSONPrinterPrintGoalStatus(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	tasks := []model.Task{{ID: "T1", Title: "Draft plan", Completed: true}}
	err := p.PrintGoalStatus(goalFixture(), tasks, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"title": "Grow ARR"`)
	assert.Contains(t, out, `"progress": 45`)
	assert.Contains(t, out, `"status": "on-track"`)
	assert.Contains(t, out, `"completed": true`)
}

func TestJSONPrinterPrintGoalList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintGoalList([]model.Goal{goalFixture()})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"id": "01234567890ABCDEFGHIJKLMNOP"`)
	assert.Contains(t, out, `"progress_source": "projects"`)
}

func TestTablePrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintMessage("ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", strings.TrimSpace(buf.String()))
}
