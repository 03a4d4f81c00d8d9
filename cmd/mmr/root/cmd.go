// Package rootcmd wires the root cobra.Command for the mmr CLI binary.
package rootcmd

import (
	"github.com/spf13/cobra"

	addcmd "github.com/go-ports/mmr/cmd/mmr/add"
	configcmd "github.com/go-ports/mmr/cmd/mmr/config"
	editcmd "github.com/go-ports/mmr/cmd/mmr/edit"
	listcmd "github.com/go-ports/mmr/cmd/mmr/list"
	mcpcmd "github.com/go-ports/mmr/cmd/mmr/mcp"
	pathcmd "github.com/go-ports/mmr/cmd/mmr/path"
	printcmd "github.com/go-ports/mmr/cmd/mmr/print"
	remindcmd "github.com/go-ports/mmr/cmd/mmr/remind"
	"github.com/go-ports/mmr/cmd/mmr/shared"
	versioncmd "github.com/go-ports/mmr/cmd/mmr/version"
)

// New creates and returns the root cobra.Command for the mmr CLI.
func New() *cobra.Command {
	return NewWithContext(&shared.Context{})
}

// NewWithContext builds the command tree around ctx. Tests use it to swap the
// editor launcher and clock.
func NewWithContext(ctx *shared.Context) *cobra.Command {
	edit := editcmd.New(ctx)

	root := &cobra.Command{
		Use:           "mmr",
		Short:         "Remember things in directories",
		Long:          "mmr keeps a short note in a .mmr file per directory and shows it again once it is old enough.\nWith no subcommand it opens the note in $EDITOR.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          edit.Cmd().RunE,
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&ctx.Recursive, "recursive", "r", false,
		"Search parent directories for the nearest .mmr file (default from config)")
	pf.StringVar(&ctx.Home, "home", "",
		"Override mmr home directory (default: $MMR_HOME env → ~/.config/mmr)")
	pf.StringVarP(&ctx.Dir, "dir", "C", "",
		"Start from this directory instead of the working directory")

	root.AddCommand(
		edit.Cmd(),
		printcmd.New(ctx).Cmd(),
		remindcmd.New(ctx).Cmd(),
		addcmd.New(ctx).Cmd(),
		pathcmd.New(ctx).Cmd(),
		listcmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
		versioncmd.New(ctx).Cmd(),
	)

	return root
}
