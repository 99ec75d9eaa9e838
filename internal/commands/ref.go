package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"firetask/internal/service"
	"firetask/internal/session"
	"firetask/internal/view"
)

// ErrRefRequired indicates no task number was provided.
var ErrRefRequired = errors.New("task number required")

// ParseRef parses a 1-based task number from the first positional argument.
// Task numbers refer to positions in the sorted listing, the same order the
// list command prints.
func ParseRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrRefRequired
	}
	if !isAllDigits(args[0]) {
		return 0, fmt.Errorf("invalid task number: %s", args[0])
	}
	num, err := strconv.Atoi(args[0])
	if err != nil || num < 1 {
		return 0, fmt.Errorf("invalid task number: %s", args[0])
	}
	return num, nil
}

// ResolveRef indexes into display-ordered tasks.
func ResolveRef(tasks []service.Task, num int) (service.Task, error) {
	if num < 1 || num > len(tasks) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return tasks[num-1], nil
}

// displayTasks fetches the principal's snapshot in display order.
func displayTasks(ctx context.Context, svc service.Store, sess session.Session) ([]service.Task, error) {
	tasks, err := svc.List(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	return view.Sorted(tasks), nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
