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
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command. Deletion is permanent and immediate, so
// it is gated on an explicit --force confirmation.
type RmCmd struct {
	force bool
}

// SetForce sets the confirmation flag (for testing).
func (c *RmCmd) SetForce(force bool) {
	c.force = force
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "firetask rm --force <n>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
	fs.BoolVar(&c.force, "f", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Store, args []string, out, errOut io.Writer) int {
	num, err := ParseRef(args)
	if err != nil {
		if errors.Is(err, ErrRefRequired) {
			fmt.Fprintln(errOut, "error: task number required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	if !c.force {
		fmt.Fprintln(errOut, "error: deletion is permanent (re-run with --force)")
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

	if err := svc.Delete(ctx, task.ID); err != nil {
		return storeExit(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
