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
	Register(&DoneCmd{})
}

// DoneCmd implements the done command: it toggles a task's completion, so
// running it twice restores the original state.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "firetask done <n>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Store, args []string, out, errOut io.Writer) int {
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

	if err := svc.ToggleCompletion(ctx, task); err != nil {
		return storeExit(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
