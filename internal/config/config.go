// Package config handles configuration loading and mmr home resolution.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultRemindAge is the default minimum marker age for remind, in seconds.
const DefaultRemindAge int64 = 2700

// FileName is the config file kept in the mmr home.
const FileName = "config.yaml"

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// RemindConfig holds defaults for the remind command.
type RemindConfig struct {
	Age     int64 `yaml:"age"`     // seconds
	Subject bool  `yaml:"subject"` // print only the first line
}

// AddConfig holds defaults for the add command.
type AddConfig struct {
	Redact bool `yaml:"redact"` // mask token shapes and .mmrignore matches
}

// Config is the root configuration.
type Config struct {
	Recursive bool         `yaml:"recursive"` // search parent directories by default
	Index     bool         `yaml:"index"`     // record seen markers in index.db
	Remind    RemindConfig `yaml:"remind"`
	Add       AddConfig    `yaml:"add"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Recursive: false,
		Index:     true,
		Remind: RemindConfig{
			Age:     DefaultRemindAge,
			Subject: false,
		},
		Add: AddConfig{Redact: false},
	}
}

// Load reads config.yaml from path.
// If the file does not exist it returns Default() with no error.
// Missing keys retain their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	// Unmarshal into a plain map so we can apply only the keys that are present.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if v, ok := raw["recursive"].(bool); ok {
		cfg.Recursive = v
	}
	if v, ok := raw["index"].(bool); ok {
		cfg.Index = v
	}
	if rem, ok := raw["remind"].(map[string]any); ok {
		if v, ok := rem["age"].(int); ok && v >= 0 {
			cfg.Remind.Age = int64(v)
		}
		if v, ok := rem["subject"].(bool); ok {
			cfg.Remind.Subject = v
		}
	}
	if add, ok := raw["add"].(map[string]any); ok {
		if v, ok := add["redact"].(bool); ok {
			cfg.Add.Redact = v
		}
	}

	return cfg, nil
}

// ---------------------------------------------------------------------------
// Home resolution
// ---------------------------------------------------------------------------

// normalizePath expands ~ and makes the path absolute.
func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// ResolveHome returns the mmr home and the source of the resolution.
// Priority: MMR_HOME env → ~/.config/mmr
// source is one of "env" or "default".
func ResolveHome() (path, source string) {
	if env := os.Getenv("MMR_HOME"); env != "" {
		p, err := normalizePath(env)
		if err == nil {
			return p, "env"
		}
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mmr"), "default"
}

// GetHome returns the resolved mmr home.
func GetHome() string {
	path, _ := ResolveHome()
	return path
}

// NormalizeHome expands a --home flag value the same way MMR_HOME is expanded.
func NormalizeHome(path string) (string, error) {
	return normalizePath(path)
}
