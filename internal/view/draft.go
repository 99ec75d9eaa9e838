package view

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"firetask/internal/service"
)

// Draft is an in-memory, unsaved edit of a task's fields. All operations
// are value transforms returning a new draft; nothing touches the store
// until the caller confirms the save.
type Draft struct {
	Title       string
	Description string
	DueDate     time.Time
	Category    service.Category
	Priority    service.Priority
	Subtasks    []service.Subtask
}

// NewDraft returns a draft with the creation defaults.
func NewDraft() Draft {
	return Draft{
		DueDate:  time.Now(),
		Category: service.CategoryOther,
		Priority: service.PriorityMedium,
	}
}

// FromTask returns a draft seeded from an existing task.
func FromTask(t service.Task) Draft {
	subtasks := make([]service.Subtask, len(t.Subtasks))
	copy(subtasks, t.Subtasks)
	return Draft{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Category:    t.Category,
		Priority:    t.Priority,
		Subtasks:    subtasks,
	}
}

// AddSubtask appends a new unchecked subtask with a locally generated id.
// A whitespace-only title leaves the draft unchanged.
func (d Draft) AddSubtask(title string) Draft {
	title = strings.TrimSpace(title)
	if title == "" {
		return d
	}
	out := d.cloneSubtasks()
	out.Subtasks = append(out.Subtasks, service.Subtask{
		ID:    uuid.NewString(),
		Title: title,
	})
	return out
}

// ToggleSubtask flips the completion of the subtask with the given id.
func (d Draft) ToggleSubtask(id string) Draft {
	out := d.cloneSubtasks()
	for i, st := range out.Subtasks {
		if st.ID == id {
			out.Subtasks[i].Completed = !st.Completed
		}
	}
	return out
}

// RemoveSubtask drops the subtask with the given id. Survivors keep their
// order.
func (d Draft) RemoveSubtask(id string) Draft {
	out := d
	out.Subtasks = nil
	for _, st := range d.Subtasks {
		if st.ID != id {
			out.Subtasks = append(out.Subtasks, st)
		}
	}
	return out
}

// Validate checks the draft before submission. A title that is empty after
// trimming blocks the save; no store call may be made.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return service.ErrEmptyTitle
	}
	return nil
}

// Task materializes the draft as a new task for the given owner. The store
// assigns id and creation time; completion starts false.
func (d Draft) Task(ownerID string) service.Task {
	return service.Task{
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
		Category:    d.Category,
		Priority:    d.Priority,
		Subtasks:    d.Subtasks,
		OwnerID:     ownerID,
	}
}

// Diff computes the typed update that turns orig into the draft. Unchanged
// fields stay nil so the merge leaves them alone.
func (d Draft) Diff(orig service.Task) service.TaskUpdate {
	var u service.TaskUpdate
	if d.Title != orig.Title {
		u.Title = &d.Title
	}
	if d.Description != orig.Description {
		u.Description = &d.Description
	}
	if !d.DueDate.Equal(orig.DueDate) {
		u.DueDate = &d.DueDate
	}
	if d.Category != orig.Category {
		u.Category = &d.Category
	}
	if d.Priority != orig.Priority {
		u.Priority = &d.Priority
	}
	if !subtasksEqual(d.Subtasks, orig.Subtasks) {
		subtasks := d.Subtasks
		u.Subtasks = &subtasks
	}
	return u
}

func (d Draft) cloneSubtasks() Draft {
	out := d
	out.Subtasks = make([]service.Subtask, len(d.Subtasks))
	copy(out.Subtasks, d.Subtasks)
	return out
}

func subtasksEqual(a, b []service.Subtask) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
