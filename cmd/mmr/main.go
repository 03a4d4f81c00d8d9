package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	rootcmd "github.com/go-ports/mmr/cmd/mmr/root"
	"github.com/go-ports/mmr/internal/editor"
)

// errorExitCode is returned for every failure mmr reports itself.
const errorExitCode = 7

func main() {
	if err := run(); err != nil {
		var exitErr *editor.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps err to the process status. An editor that ran as a child
// process hands back its own status.
func exitCode(err error) int {
	var exitErr *editor.ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exitErr):
		return exitErr.Code
	default:
		return errorExitCode
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	return rootcmd.New().ExecuteContext(ctx)
}
