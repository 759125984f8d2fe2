// Package gsmtc reads the current media session from the Windows
// GlobalSystemMediaTransportControlsSession facility. The WinRT calls happen
// inside a PowerShell script that emits one JSON snapshot; this package runs
// the script and maps the document onto the session model. Per-section
// try/catch in the script keeps section failures isolated all the way
// through to the dump.
package gsmtc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"npdump/internal/mediasession"
)

const noSessionExitCode = 3

// Manager snapshots the current session once per CurrentSession call.
type Manager struct{}

func NewManager() *Manager { return &Manager{} }

func (m *Manager) CurrentSession(ctx context.Context) (mediasession.Session, error) {
	cmd := exec.CommandContext(ctx, "powershell",
		"-NoProfile", "-NonInteractive", "-ExecutionPolicy", "Bypass",
		"-Command", snapshotScript)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == noSessionExitCode {
			return nil, mediasession.ErrNoCurrentSession
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("query media facility: %s", msg)
		}
		return nil, fmt.Errorf("query media facility: %w", err)
	}

	snap, err := parseSnapshot(stdout.Bytes())
	if err != nil {
		return nil, err
	}
	return &session{snap: snap}, nil
}

// session serves the pre-fetched snapshot. The facility is queried exactly
// once per run; each accessor replays its section or its section error.
type session struct {
	snap *snapshot
}

func (s *session) SourceAppID() string { return s.snap.SourceAppUserModelID }

func (s *session) MediaProperties(ctx context.Context) (*mediasession.MediaProperties, error) {
	if s.snap.MediaPropertiesError != "" {
		return nil, errors.New(s.snap.MediaPropertiesError)
	}
	if s.snap.MediaProperties == nil {
		return nil, errors.New("media properties missing from snapshot")
	}
	return s.snap.MediaProperties.convert()
}

func (s *session) PlaybackInfo(ctx context.Context) (*mediasession.PlaybackInfo, error) {
	if s.snap.PlaybackInfoError != "" {
		return nil, errors.New(s.snap.PlaybackInfoError)
	}
	if s.snap.PlaybackInfo == nil {
		return nil, errors.New("playback info missing from snapshot")
	}
	return s.snap.PlaybackInfo.convert()
}

func (s *session) TimelineProperties(ctx context.Context) (*mediasession.TimelineProperties, error) {
	if s.snap.TimelinePropertiesError != "" {
		return nil, errors.New(s.snap.TimelinePropertiesError)
	}
	if s.snap.TimelineProperties == nil {
		return nil, errors.New("timeline properties missing from snapshot")
	}
	return s.snap.TimelineProperties.convert(), nil
}
