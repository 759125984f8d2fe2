package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"npdump/internal/dump"
	"npdump/internal/mediasession"
	"npdump/internal/mediasession/system"
	"npdump/internal/output"
)

// DumpCmd prints everything the platform's media session facility reports
// about the current session: source app, playback state and controls,
// media metadata, and timeline.
type DumpCmd struct{}

// Run executes the dump command
func (c *DumpCmd) Run(globals *Globals) error {
	if err := validateFlags(globals); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals so a stuck provider probe can be interrupted
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
	}()

	manager := globals.Manager
	if manager == nil {
		globals.Debug("Selecting session manager for %s", runtime.GOOS)
		var err error
		manager, err = system.RequestManager(globals.Clock)
		if err != nil {
			return outputErrorCommon(globals, "MANAGER_UNAVAILABLE", err.Error())
		}
	}

	globals.Debug("Requesting current session")
	sess, err := manager.CurrentSession(ctx)
	if err != nil {
		if errors.Is(err, mediasession.ErrNoCurrentSession) {
			return outputErrorCommon(globals, "NO_CURRENT_SESSION",
				"no media session is currently active",
				"start playback in a media app and retry")
		}
		return outputErrorCommon(globals, "MANAGER_UNAVAILABLE", err.Error())
	}

	globals.Debug("Collecting properties for session %q", sess.SourceAppID())
	res := dump.Collect(ctx, sess)

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteDump(res)
	}
	return dump.NewTextRenderer(globals.Stdout).Render(res)
}
