package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"npdump/internal/cli"
	"npdump/internal/config"
)

func main() {
	// Load configuration from files/environment
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Apply config defaults before parsing
	// These will be overridden by CLI flags if specified
	vars := kong.Vars{
		"config_format": cfg.Format,
		"config_color":  cfg.Color,
	}

	ctx := kong.Parse(&c,
		kong.Name("npdump"),
		kong.Description("npdump: Dump the system-wide now-playing media session\n\nRun 'npdump schema' for machine-readable output schemas"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	// Create globals with config fallbacks
	globals := cli.NewGlobalsWithConfig(&c, cfg)
	err = ctx.Run(globals)
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig honors an explicit --config path before falling back to the
// standard search locations.
func loadConfig(args []string) (*config.Config, error) {
	if path := configPathFromArgs(args); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func configPathFromArgs(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}
