// Package mcpcmd implements the `mmr mcp` command.
package mcpcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/mmr/cmd/mmr/shared"
	"github.com/go-ports/mmr/internal/config"
	internalmcp "github.com/go-ports/mmr/internal/mcp"
)

// Command implements `mmr mcp`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the mcp command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "mcp",
		Short: "Start the mmr MCP server (stdio transport)",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	home := c.ctx.Home
	if home != "" {
		h, err := config.NormalizeHome(home)
		if err != nil {
			return err
		}
		home = h
	}
	return internalmcp.Serve(cmd.Context(), home)
}
