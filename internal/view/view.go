// Package view derives display state from task snapshots. Every function is
// a pure transform: it reads a snapshot, never mutates it, and performs no
// I/O. Each snapshot delivered by the store replaces the previous one
// wholesale; nothing here merges incrementally.
package view

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"firetask/internal/service"
)

// StatusFilter selects tasks by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// ParseStatusFilter parses a status filter value.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(s) {
	case StatusAll, StatusActive, StatusCompleted:
		return StatusFilter(s), nil
	}
	return "", fmt.Errorf("invalid status filter: %s (want all, active or completed)", s)
}

// Weight maps a priority to its ordering value. Unknown priorities weigh 0
// and sink to the bottom of the sort.
func Weight(p service.Priority) int {
	switch p {
	case service.PriorityHigh:
		return 3
	case service.PriorityMedium:
		return 2
	case service.PriorityLow:
		return 1
	}
	return 0
}

// Sorted returns the snapshot ordered by descending priority weight. The
// sort is stable: tasks of equal weight keep their store-provided order.
func Sorted(tasks []service.Task) []service.Task {
	out := make([]service.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return Weight(out[i].Priority) > Weight(out[j].Priority)
	})
	return out
}

// Filtered returns the sorted snapshot reduced to tasks whose title or
// description contains search case-insensitively and whose completion state
// matches status. An empty search matches everything.
func Filtered(tasks []service.Task, search string, status StatusFilter) []service.Task {
	search = strings.ToLower(strings.TrimSpace(search))
	var out []service.Task
	for _, t := range Sorted(tasks) {
		if !matchesStatus(t, status) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// ByCategory keeps tasks of the given category, preserving order.
func ByCategory(tasks []service.Task, cat service.Category) []service.Task {
	var out []service.Task
	for _, t := range tasks {
		if t.Category == cat {
			out = append(out, t)
		}
	}
	return out
}

func matchesStatus(t service.Task, status StatusFilter) bool {
	switch status {
	case StatusActive:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	}
	return true
}

// Stats are the dashboard figures derived from one snapshot.
type Stats struct {
	Total              int
	Completed          int
	Active             int
	HighPriorityActive int

	// CompletionRate is a rounded percentage, 0 for an empty snapshot.
	CompletionRate int
}

// Dashboard computes the stats for a snapshot.
func Dashboard(tasks []service.Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		if t.Priority == service.PriorityHigh {
			s.HighPriorityActive++
		}
	}
	s.Active = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(100 * float64(s.Completed) / float64(s.Total)))
	}
	return s
}

// SubtaskProgress renders a "done/total" counter for a task's subtasks, or
// an empty string when the task has none.
func SubtaskProgress(t service.Task) string {
	if len(t.Subtasks) == 0 {
		return ""
	}
	done := 0
	for _, st := range t.Subtasks {
		if st.Completed {
			done++
		}
	}
	return fmt.Sprintf("%d/%d", done, len(t.Subtasks))
}
