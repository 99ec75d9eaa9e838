package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"firetask/internal/config"
	"firetask/internal/exitcode"
	"firetask/internal/output"
	"firetask/internal/service"
	"firetask/internal/session"
	"firetask/internal/view"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `firetask` (no args) and filtered listings.
type ListCmd struct {
	search   string
	status   string
	category string
	full     bool
}

// SetFilters sets the filter flags (for testing).
func (c *ListCmd) SetFilters(search, status, category string) {
	c.search = search
	c.status = status
	c.category = category
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "firetask list [--search <text>] [--status all|active|completed] [--category <c>] [--full]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.status, "status", string(view.StatusAll), "")
	fs.StringVar(&c.category, "category", "", "")
	fs.BoolVar(&c.full, "full", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Store, args []string, out, errOut io.Writer) int {
	if c.status == "" {
		c.status = string(view.StatusAll)
	}
	status, err := view.ParseStatusFilter(c.status)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	var category service.Category
	if c.category != "" {
		category, err = service.ParseCategory(c.category)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	snapshot, err := svc.List(ctx, sess.UserID)
	if err != nil {
		return storeExit(errOut, err)
	}

	tasks := view.Filtered(snapshot, c.search, status)
	if category != "" {
		tasks = view.ByCategory(tasks, category)
	}

	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for i, t := range tasks {
		if c.full {
			output.FormatTaskDetail(out, i+1, t)
		} else {
			output.FormatTask(out, i+1, t)
		}
	}
	return exitcode.Success
}
