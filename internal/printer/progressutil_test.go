package printer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goaltrack/goaltrack/internal/printer"
)

func TestFormatProgress(t *testing.T) {
	tests := map[string]struct {
		progress int
		expected string
	}{
		"zero progress":     {progress: 0, expected: "0%"},
		"partial progress":  {progress: 45, expected: "45%"},
		"complete progress": {progress: 100, expected: "100%"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, printer.FormatProgress(test.progress))
		})
	}
}

func TestProgressBar(t *testing.T) {
	tests := map[string]struct {
		progress int
		width    int
		expected string
	}{
		"empty bar":                    {progress: 0, width: 10, expected: "[          ] 0%"},
		"half full bar":                {progress: 50, width: 10, expected: "[=====     ] 50%"},
		"full bar":                     {progress: 100, width: 10, expected: "[==========] 100%"},
		"out of range gets clamped":    {progress: 150, width: 10, expected: "[==========] 100%"},
		"negative gets clamped":        {progress: -5, width: 10, expected: "[          ] 0%"},
		"zero width falls back to ten": {progress: 50, width: 0, expected: "[=====     ] 50%"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, printer.ProgressBar(test.progress, test.width))
		})
	}
}
