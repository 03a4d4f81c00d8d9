// Package remindcmd implements the `mmr remind` command.
package remindcmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-ports/mmr/cmd/mmr/shared"
	"github.com/go-ports/mmr/internal/config"
	"github.com/go-ports/mmr/internal/service"
)

// Command implements `mmr remind`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	age     int64
	subject bool
	touch   bool
}

// New creates the remind command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "remind",
		Short: "Print the .mmr file if it is old enough",
		Long: "Print the .mmr file only if it was last modified more than --age seconds ago.\n" +
			"A missing file prints nothing. Suitable for a shell prompt hook.",
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	f := c.cmd.Flags()
	f.Int64VarP(&c.age, "age", "a", config.DefaultRemindAge,
		"Minimum age of the .mmr file in seconds (default from config)")
	f.BoolVarP(&c.subject, "subject", "s", false, "Print only the first line")
	f.BoolVar(&c.touch, "touch", false, "Reset the file's modification time after printing, re-arming the reminder")

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

	age := svc.Config.Remind.Age
	if cmd.Flags().Changed("age") {
		age = c.age
	}
	if age < 0 {
		return fmt.Errorf("remind: --age must not be negative, got %d", age)
	}

	subject := svc.Config.Remind.Subject
	if cmd.Flags().Changed("subject") {
		subject = c.subject
	}

	_, err = svc.Remind(cmd.OutOrStdout(), path, service.RemindOptions{
		MinAge:  time.Duration(age) * time.Second,
		Subject: subject,
		Touch:   c.touch,
	})
	return err
}
