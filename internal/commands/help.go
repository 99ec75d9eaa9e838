package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"firetask/internal/config"
	"firetask/internal/exitcode"
	"firetask/internal/service"
	"firetask/internal/session"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "firetask help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  firetask                                            List all tasks
  firetask list [--search <text>] [--status all|active|completed] [--category <c>] [--full]
  firetask add [--desc <text>] [--due <date>] [--priority <p>] [--category <c>] [--subtask <title>]... <title...>
  firetask edit [--title <t>] [--desc <d>] [--due <date>] [--priority <p>] [--category <c>]
                [--add-subtask <t>]... [--toggle-subtask <n>] [--rm-subtask <n>] <n>
  firetask done <n>
  firetask rm --force <n>
  firetask stats
  firetask watch
  firetask login [--password <p>] <email>
  firetask signup [--password <p>] <email>
  firetask logout
  firetask whoami
  firetask help
  firetask version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Priorities: High, Medium, Low. Categories: work, personal, home, other.
Task numbers refer to positions in the listing (High before Medium before Low).
`
