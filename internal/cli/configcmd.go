package cli

import (
	"encoding/json"
	"fmt"

	"npdump/internal/config"
	"npdump/internal/output"
)

// ConfigCmd groups configuration inspection subcommands
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show the resolved configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show which config file is in effect"`
	Generate ConfigGenerateCmd `cmd:"" help:"Print a sample config file"`
}

// ConfigShowCmd prints the resolved configuration
type ConfigShowCmd struct{}

type configOutput struct {
	Type          string `json:"type"`
	SchemaVersion int    `json:"schemaVersion"`
	Format        string `json:"format"`
	Color         string `json:"color"`
	Quiet         bool   `json:"quiet"`
	Verbose       bool   `json:"verbose"`
}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if globals.Format == "ndjson" {
		return json.NewEncoder(globals.Stdout).Encode(configOutput{
			Type:          "config",
			SchemaVersion: output.SchemaVersion,
			Format:        cfg.Format,
			Color:         cfg.Color,
			Quiet:         cfg.Quiet,
			Verbose:       cfg.Verbose,
		})
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintf(globals.Stdout, "  format:  %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  color:   %s\n", cfg.Color)
	fmt.Fprintf(globals.Stdout, "  quiet:   %t\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose: %t\n", cfg.Verbose)
	return nil
}

// ConfigPathCmd prints the config file in effect and the search order
type ConfigPathCmd struct{}

type configPathOutput struct {
	Type          string   `json:"type"`
	SchemaVersion int      `json:"schemaVersion"`
	Path          string   `json:"path"`
	SearchPaths   []string `json:"search_paths"`
}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.Format == "ndjson" {
		return json.NewEncoder(globals.Stdout).Encode(configPathOutput{
			Type:          "config_path",
			SchemaVersion: output.SchemaVersion,
			Path:          path,
			SearchPaths:   config.SearchPaths(),
		})
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}
	fmt.Fprintln(globals.Stdout, "Search order:")
	for _, p := range config.SearchPaths() {
		fmt.Fprintf(globals.Stdout, "  %s\n", p)
	}
	return nil
}

// ConfigGenerateCmd prints a sample configuration file
type ConfigGenerateCmd struct{}

const sampleConfig = `# npdump configuration file
# Place at ~/.npdump.yaml, ./npdump.yaml, or under your user config
# directory as npdump/npdump.yaml.

# Output format: text or ndjson
format: text

# Color output: auto, always, or never
color: auto

# Suppress informational output on stderr
quiet: false

# Enable verbose debug logging
verbose: false
`

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	fmt.Fprint(globals.Stdout, sampleConfig)
	return nil
}
