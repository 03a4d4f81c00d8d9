// Package pathcmd implements the `mmr path` command.
package pathcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/mmr/cmd/mmr/shared"
)

// Command implements `mmr path`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the path command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "path",
		Short: "Print the path of the .mmr file that would be used",
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

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
