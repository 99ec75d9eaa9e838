// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"firetask/internal/service"
	"firetask/internal/view"
)

// FormatTask formats one task line.
// Format: "{N:>4}  [x] {PRIORITY:<6} {TITLE}" plus optional subtask progress
// and due date.
func FormatTask(w io.Writer, num int, t service.Task) {
	check := " "
	if t.Completed {
		check = "x"
	}
	line := fmt.Sprintf("%4d  [%s] %-6s %s", num, check, t.Priority, normalizeTitle(t.Title))
	if progress := view.SubtaskProgress(t); progress != "" {
		line += " (" + progress + ")"
	}
	if !t.DueDate.IsZero() {
		line += " due " + t.DueDate.Format("2006-01-02")
	}
	fmt.Fprintln(w, line)
}

// FormatTaskDetail formats a task with its description and subtasks.
func FormatTaskDetail(w io.Writer, num int, t service.Task) {
	FormatTask(w, num, t)
	if t.Description != "" {
		fmt.Fprintf(w, "      %s\n", normalizeTitle(t.Description))
	}
	for i, st := range t.Subtasks {
		check := " "
		if st.Completed {
			check = "x"
		}
		fmt.Fprintf(w, "      %d.%d [%s] %s\n", num, i+1, check, normalizeTitle(st.Title))
	}
}

// FormatStats formats the dashboard figures.
func FormatStats(w io.Writer, s view.Stats) {
	fmt.Fprintf(w, "total          %d\n", s.Total)
	fmt.Fprintf(w, "completed      %d\n", s.Completed)
	fmt.Fprintf(w, "active         %d\n", s.Active)
	fmt.Fprintf(w, "high priority  %d\n", s.HighPriorityActive)
	fmt.Fprintf(w, "completion     %d%%\n", s.CompletionRate)
}

// FormatSnapshotHeader prints a separator for each live snapshot.
func FormatSnapshotHeader(w io.Writer, n int) {
	fmt.Fprintf(w, "--- snapshot %d ---\n", n)
}

// normalizeTitle normalizes text for single-line display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
