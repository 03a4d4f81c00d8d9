// Package editcmd implements the `mmr edit` command.
package editcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/mmr/cmd/mmr/shared"
)

// Command implements `mmr edit`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the edit command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "edit",
		Short: "Edit (or create) the .mmr file in $EDITOR",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, path, err := c.ctx.Marker(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()
	return svc.Edit(path)
}
