package commands

import (
	"context"
	"flag"
	"io"

	"firetask/internal/config"
	"firetask/internal/exitcode"
	"firetask/internal/output"
	"firetask/internal/service"
	"firetask/internal/session"
	"firetask/internal/view"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd implements the stats command: the dashboard figures for the
// current snapshot.
type StatsCmd struct{}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return nil }
func (c *StatsCmd) Synopsis() string  { return "Show productivity stats" }
func (c *StatsCmd) Usage() string     { return "firetask stats" }
func (c *StatsCmd) NeedsAuth() bool   { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Store, args []string, out, errOut io.Writer) int {
	snapshot, err := svc.List(ctx, sess.UserID)
	if err != nil {
		return storeExit(errOut, err)
	}
	output.FormatStats(out, view.Dashboard(snapshot))
	return exitcode.Success
}
