// Package addcmd implements the `mmr add` command.
package addcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/mmr/cmd/mmr/shared"
)

// Command implements `mmr add`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	redact bool
}

// New creates the add command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "add <words...>",
		Short: "Append a line to the .mmr file",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.run,
	}
	c.cmd.Flags().BoolVar(&c.redact, "redact", false, "Mask API tokens and .mmrignore matches (default from config add.redact)")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	svc, path, err := c.ctx.Marker(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	redact := svc.Config.Add.Redact
	if cmd.Flags().Changed("redact") {
		redact = c.redact
	}
	_, err = svc.Add(path, args, redact)
	return err
}
