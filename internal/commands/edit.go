package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"firetask/internal/config"
	"firetask/internal/exitcode"
	"firetask/internal/service"
	"firetask/internal/session"
	"firetask/internal/view"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. It seeds a draft from the stored
// task, applies the requested changes in memory, validates, and saves the
// diff as one typed merge.
type EditCmd struct {
	title       optFlag
	desc        optFlag
	due         optFlag
	priority    optFlag
	category    optFlag
	addSubtasks multiFlag
	toggleSub   int
	removeSub   int
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string {
	return "firetask edit [--title <t>] [--desc <d>] [--due <date>] [--priority <p>] [--category <c>] [--add-subtask <t>]... [--toggle-subtask <n>] [--rm-subtask <n>] <n>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Var(&c.title, "title", "")
	fs.Var(&c.desc, "desc", "")
	fs.Var(&c.due, "due", "")
	fs.Var(&c.priority, "priority", "")
	fs.Var(&c.category, "category", "")
	fs.Var(&c.addSubtasks, "add-subtask", "")
	fs.IntVar(&c.toggleSub, "toggle-subtask", 0, "")
	fs.IntVar(&c.removeSub, "rm-subtask", 0, "")
}

// SetTitle sets the title flag (for testing).
func (c *EditCmd) SetTitle(title string) {
	c.title = optFlag{value: title, set: true}
}

// SetPriority sets the priority flag (for testing).
func (c *EditCmd) SetPriority(p string) {
	c.priority = optFlag{value: p, set: true}
}

// SetToggleSubtask sets the subtask toggle flag (for testing).
func (c *EditCmd) SetToggleSubtask(n int) {
	c.toggleSub = n
}

// SetAddSubtasks sets the subtask additions (for testing).
func (c *EditCmd) SetAddSubtasks(titles ...string) {
	c.addSubtasks = titles
}

// SetRemoveSubtask sets the subtask removal flag (for testing).
func (c *EditCmd) SetRemoveSubtask(n int) {
	c.removeSub = n
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Store, args []string, out, errOut io.Writer) int {
	num, err := ParseRef(args)
	if err != nil {
		if errors.Is(err, ErrRefRequired) {
			fmt.Fprintln(errOut, "error: task number required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	tasks, err := displayTasks(ctx, svc, sess)
	if err != nil {
		return storeExit(errOut, err)
	}

	task, err := ResolveRef(tasks, num)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	draft := view.FromTask(task)

	if c.title.set {
		draft.Title = c.title.value
	}
	if c.desc.set {
		draft.Description = c.desc.value
	}
	if c.due.set {
		due, err := parseDue(c.due.value)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		draft.DueDate = due
	}
	if c.priority.set {
		p, err := service.ParsePriority(c.priority.value)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		draft.Priority = p
	}
	if c.category.set {
		cat, err := service.ParseCategory(c.category.value)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		draft.Category = cat
	}

	// Subtask numbers refer to the stored order, so toggles and removals
	// resolve before new subtasks are appended.
	if c.toggleSub > 0 {
		if c.toggleSub > len(draft.Subtasks) {
			fmt.Fprintf(errOut, "error: subtask number out of range: %d\n", c.toggleSub)
			return exitcode.UserError
		}
		draft = draft.ToggleSubtask(draft.Subtasks[c.toggleSub-1].ID)
	}
	if c.removeSub > 0 {
		if c.removeSub > len(draft.Subtasks) {
			fmt.Fprintf(errOut, "error: subtask number out of range: %d\n", c.removeSub)
			return exitcode.UserError
		}
		draft = draft.RemoveSubtask(draft.Subtasks[c.removeSub-1].ID)
	}
	for _, title := range c.addSubtasks {
		draft = draft.AddSubtask(title)
	}

	// Validation resolves locally; the store is never called on failure.
	if err := draft.Validate(); err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			fmt.Fprintln(errOut, "error: title required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	update := draft.Diff(task)
	if update.IsZero() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "nothing to update")
		}
		return exitcode.Success
	}

	if err := svc.Update(ctx, task.ID, update); err != nil {
		return storeExit(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
