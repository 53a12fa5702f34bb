package printer

import (
	"fmt"
	"strings"
)

// FormatProgress returns a human-readable progress string.
// Examples: "0%", "45%", "100%".
func FormatProgress(progress int) string {
	return fmt.Sprintf("%d%%", progress)
}

// ProgressBar returns a fixed-width textual progress bar.
// Example: "[=====     ] 50%".
func ProgressBar(progress int, width int) string {
	if width <= 0 {
		width = 10
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	filled := progress * width / 100
	return fmt.Sprintf("[%s%s] %d%%", strings.Repeat("=", filled), strings.Repeat(" ", width-filled), progress)
}
