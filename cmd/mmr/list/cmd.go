// Package listcmd implements the `mmr list` command.
package listcmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/go-ports/mmr/cmd/mmr/shared"
)

// Command implements `mmr list`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	prune bool
}

// New creates the list command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "list",
		Short: "List .mmr files mmr has seen",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().BoolVar(&c.prune, "prune", false, "Forget entries whose file no longer exists")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service()
	if err != nil {
		return err
	}
	defer svc.Close()

	out := cmd.OutOrStdout()
	if c.prune {
		n, err := svc.Prune()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Pruned %d missing %s.\n", n, plural(n, "entry", "entries"))
	}

	entries, err := svc.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No reminders found.")
		return nil
	}

	now := svc.Now()
	fmt.Fprintf(out, "Reminders (%d):\n", len(entries))
	for _, e := range entries {
		if !e.Exists {
			fmt.Fprintf(out, "  %s  (missing)\n", e.Path)
			continue
		}
		fmt.Fprintf(out, "  %s  %s  %s\n", e.Path, humanize.RelTime(e.ModTime, now, "ago", "from now"), e.Subject)
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
