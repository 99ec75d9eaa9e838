package service

import (
	"fmt"
	"time"
)

// Priority is a task's urgency level.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority parses a canonical priority label.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s), nil
	}
	return "", fmt.Errorf("invalid priority: %s (want High, Medium or Low)", s)
}

// Category is a task's fixed classification.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHome     Category = "home"
	CategoryOther    Category = "other"
)

// ParseCategory parses a category value.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryWork, CategoryPersonal, CategoryHome, CategoryOther:
		return Category(s), nil
	}
	return "", fmt.Errorf("invalid category: %s (want work, personal, home or other)", s)
}

// Subtask is a checklist item embedded in its parent task. Subtasks have no
// independent lifecycle; they are edited in memory and persisted atomically
// with the parent document.
type Subtask struct {
	ID        string
	Title     string
	Completed bool
}

// Task represents a single task document owned by one principal.
type Task struct {
	ID          string
	Title       string
	Description string
	DueDate     time.Time
	Completed   bool
	Category    Category
	Priority    Priority
	Subtasks    []Subtask
	OwnerID     string
	CreatedAt   time.Time
}

// TaskUpdate is a typed set of optional field updates. A nil field is left
// untouched by the merge; a set field replaces the stored value. Subtasks are
// always replaced as a whole sequence.
type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Completed   *bool
	Category    *Category
	Priority    *Priority
	Subtasks    *[]Subtask
}

// IsZero reports whether no field is set.
func (u TaskUpdate) IsZero() bool {
	return u.Title == nil && u.Description == nil && u.DueDate == nil &&
		u.Completed == nil && u.Category == nil && u.Priority == nil &&
		u.Subtasks == nil
}
