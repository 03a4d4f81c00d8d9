// Package printcmd implements the `mmr print` command.
package printcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/mmr/cmd/mmr/shared"
	"github.com/go-ports/mmr/internal/service"
)

// Command implements `mmr print`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	subject bool
	touch   bool
}

// New creates the print command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "print",
		Short: "Print the .mmr file regardless of its age",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.BoolVarP(&c.subject, "subject", "s", false, "Print only the first line")
	f.BoolVar(&c.touch, "touch", false, "Reset the file's modification time afterwards")

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

	return svc.Print(cmd.OutOrStdout(), path, service.PrintOptions{
		Subject: c.subject,
		Touch:   c.touch,
	})
}
