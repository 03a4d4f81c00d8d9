// Package configcmd implements the `mmr config` command group.
package configcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/mmr/cmd/mmr/shared"
	"github.com/go-ports/mmr/internal/config"
)

const configTemplate = `# mmr configuration

# Search parent directories for the nearest .mmr by default (same as -r).
recursive: false

# Remember every .mmr mmr touches so 'mmr list' can show them.
index: true

remind:
  age: 2700        # seconds a note must sit untouched before remind shows it
  subject: false   # show only the first line

add:
  redact: false    # mask API tokens and .mmrignore matches (same as --redact)
`

// Command implements `mmr config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		Args:  cobra.NoArgs,
		RunE:  c.runShow,
	}
	c.cmd.AddCommand(newConfigInit(ctx))
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

// resolveHome applies the --home flag on top of config.ResolveHome.
func resolveHome(ctx *shared.Context) (home, source string, err error) {
	if ctx.Home != "" {
		home, err = config.NormalizeHome(ctx.Home)
		return home, "flag", err
	}
	home, source = config.ResolveHome()
	return home, source, nil
}

func (c *Command) runShow(cmd *cobra.Command, _ []string) error {
	home, source, err := resolveHome(c.ctx)
	if err != nil {
		return err
	}
	cfg, err := config.Load(filepath.Join(home, config.FileName))
	if err != nil {
		return err
	}
	data := map[string]any{
		"recursive": cfg.Recursive,
		"index":     cfg.Index,
		"remind": map[string]any{
			"age":     cfg.Remind.Age,
			"subject": cfg.Remind.Subject,
		},
		"add": map[string]any{
			"redact": cfg.Add.Redact,
		},
		"home":        home,
		"home_source": source,
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
	return nil
}

// ---------------------------------------------------------------------------
// config init
// ---------------------------------------------------------------------------

func newConfigInit(ctx *shared.Context) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, _, err := resolveHome(ctx)
			if err != nil {
				return err
			}
			cfgPath := filepath.Join(home, config.FileName)
			out := cmd.OutOrStdout()
			if _, err := os.Stat(cfgPath); err == nil && !force {
				fmt.Fprintf(out, "Config already exists at %s\n", cfgPath)
				fmt.Fprintln(out, "Use --force to overwrite.")
				return nil
			}
			if err := os.MkdirAll(home, 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(cfgPath, []byte(configTemplate), 0o600); err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s\n", cfgPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	return cmd
}
