// Package shared holds the context passed to all CLI commands.
package shared

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/go-ports/mmr/internal/config"
	"github.com/go-ports/mmr/internal/editor"
	"github.com/go-ports/mmr/internal/service"
)

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// Home overrides the mmr home directory.
	// When empty, resolution falls through to MMR_HOME env var → ~/.config/mmr.
	Home string
	// Dir is where marker resolution starts. Empty means the working directory.
	Dir string
	// Recursive enables the upward search. Only honoured when set on the
	// command line; otherwise the config default applies.
	Recursive bool

	// Launch and Now replace the editor and clock; nil selects the real ones.
	Launch editor.Launcher
	Now    func() time.Time
}

// Service opens a service for the resolved home.
func (c *Context) Service() (*service.Service, error) {
	home := c.Home
	if home != "" {
		h, err := config.NormalizeHome(home)
		if err != nil {
			return nil, err
		}
		home = h
	}
	return service.New(home, service.Options{Now: c.Now, Launch: c.Launch})
}

// Marker opens a service and resolves the marker path for cmd.
// The caller must Close the returned service.
func (c *Context) Marker(cmd *cobra.Command) (*service.Service, string, error) {
	svc, err := c.Service()
	if err != nil {
		return nil, "", err
	}
	recursive := svc.Config.Recursive
	if cmd.Flags().Changed("recursive") {
		recursive = c.Recursive
	}
	path, err := svc.Resolve(c.Dir, recursive)
	if err != nil {
		_ = svc.Close()
		return nil, "", err
	}
	return svc, path, nil
}
