package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"firetask/internal/config"
	"firetask/internal/exitcode"
	"firetask/internal/service"
	"firetask/internal/session"
	"firetask/internal/view"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command. It builds a draft, validates it locally
// and persists it in one write.
type AddCmd struct {
	desc     string
	due      string
	priority string
	category string
	subtasks multiFlag
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "firetask add [--desc <text>] [--due <date>] [--priority <p>] [--category <c>] [--subtask <title>]... <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.category, "category", "", "")
	fs.Var(&c.subtasks, "subtask", "")
}

// SetSubtasks sets the subtask titles (for testing).
func (c *AddCmd) SetSubtasks(titles ...string) {
	c.subtasks = titles
}

// SetPriority sets the priority flag (for testing).
func (c *AddCmd) SetPriority(p string) {
	c.priority = p
}

// SetDue sets the due date flag (for testing).
func (c *AddCmd) SetDue(due string) {
	c.due = due
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Store, args []string, out, errOut io.Writer) int {
	draft := view.NewDraft()
	draft.Title = strings.Join(args, " ")
	draft.Description = c.desc

	if c.due != "" {
		due, err := parseDue(c.due)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		draft.DueDate = due
	}
	if c.priority != "" {
		p, err := service.ParsePriority(c.priority)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		draft.Priority = p
	}
	if c.category != "" {
		cat, err := service.ParseCategory(c.category)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		draft.Category = cat
	}
	for _, title := range c.subtasks {
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

	if _, err := svc.Create(ctx, sess.UserID, draft.Task(sess.UserID)); err != nil {
		return storeExit(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
