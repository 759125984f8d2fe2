// Package cli defines the npdump command tree. Commands receive a Globals
// struct carrying resolved flags, output streams, and the session manager,
// so tests drive them with captured buffers and fake providers.
package cli

import (
	"io"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"npdump/internal/config"
	"npdump/internal/mediasession"
)

// Version is set via ldflags at build time
var Version = "dev"

// Commit is set via ldflags at build time
var Commit = "unknown"

// CLI is the root command structure
type CLI struct {
	Format  string `help:"Output format (text, ndjson)" enum:"text,ndjson" default:"${config_format}"`
	Color   string `help:"Color output (auto, always, never)" enum:"auto,always,never" default:"${config_color}"`
	Quiet   bool   `short:"q" help:"Suppress informational output on stderr"`
	Verbose bool   `short:"v" help:"Enable verbose debug logging"`
	Config  string `help:"Path to config file" type:"path"`

	Dump       DumpCmd       `cmd:"" default:"withargs" help:"Dump the current media session"`
	Doctor     DoctorCmd     `cmd:"" help:"Check the environment and report problems"`
	Version    VersionCmd    `cmd:"" help:"Show version information"`
	Conf       ConfigCmd     `cmd:"" name:"config" help:"Inspect and generate configuration"`
	Schema     SchemaCmd     `cmd:"" help:"Output JSON Schema for ndjson record types"`
	Completion CompletionCmd `cmd:"" help:"Generate shell completions"`
	Update     UpdateCmd     `cmd:"" help:"Show how to upgrade npdump"`
}

// Globals holds resolved global options shared by all commands
type Globals struct {
	Format  string
	Color   string
	Quiet   bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
	Clock   clock.Clock

	// Manager overrides platform detection when set; tests inject fakes.
	Manager mediasession.Manager

	logger *agentLogger
	dumpID string
}

// NewGlobalsWithConfig builds Globals from parsed flags, falling back to
// config values for the booleans kong cannot default from vars.
func NewGlobalsWithConfig(c *CLI, cfg *config.Config) *Globals {
	g := &Globals{
		Format:  c.Format,
		Color:   c.Color,
		Quiet:   c.Quiet || cfg.Quiet,
		Verbose: c.Verbose || cfg.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
		Clock:   clock.New(),
		dumpID:  uuid.NewString(),
	}
	g.logger = newAgentLogger(g, g.dumpID)
	return g
}

// Debug logs a diagnostic line; no-op unless --verbose.
func (g *Globals) Debug(format string, args ...interface{}) {
	if g.logger != nil {
		g.logger.Debug(format, args...)
	}
}

// ColorEnabled resolves the --color flag against the output stream.
func (g *Globals) ColorEnabled() bool {
	switch g.Color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := g.Stdout.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
