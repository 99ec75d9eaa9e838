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
	Register(&WatchCmd{})
}

// WatchCmd implements the watch command: a live feed of the principal's
// tasks. Every change prints the full replacement snapshot. The subscription
// is cancelled on the way out, whatever ends the watch; a feed error stops
// the stream and leaves the last snapshot on screen.
type WatchCmd struct{}

func (c *WatchCmd) Name() string      { return "watch" }
func (c *WatchCmd) Aliases() []string { return nil }
func (c *WatchCmd) Synopsis() string  { return "Stream live task updates" }
func (c *WatchCmd) Usage() string     { return "firetask watch" }
func (c *WatchCmd) NeedsAuth() bool   { return true }

func (c *WatchCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WatchCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Store, args []string, out, errOut io.Writer) int {
	// Callbacks are serialized by the subscription, so n needs no lock.
	n := 0
	errCh := make(chan error, 1)

	cancel, err := svc.Subscribe(ctx, sess.UserID,
		func(snapshot []service.Task) {
			n++
			output.FormatSnapshotHeader(out, n)
			tasks := view.Sorted(snapshot)
			if len(tasks) == 0 {
				fmt.Fprintln(out, "no tasks")
				return
			}
			for i, t := range tasks {
				output.FormatTask(out, i+1, t)
			}
		},
		func(err error) {
			select {
			case errCh <- err:
			default:
			}
		},
	)
	if err != nil {
		return storeExit(errOut, err)
	}
	defer cancel()

	select {
	case <-ctx.Done():
		return exitcode.Success
	case err := <-errCh:
		fmt.Fprintf(errOut, "error: live feed stopped: %v\n", err)
		return exitcode.BackendError
	}
}
