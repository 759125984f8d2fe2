// Package applescript reads the current media session from macOS music
// players through osascript. Only players with a usable scripting
// dictionary are probed (Music first, then Spotify); the first one found
// with a loaded track becomes the session.
package applescript

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/benbjohnson/clock"

	"npdump/internal/mediasession"
)

// player describes one scriptable macOS application. The scripts return
// one field per line; shape differences between the dictionaries (genre,
// repeat setting, duration unit) are carried here instead of in the
// parsers' call sites.
type player struct {
	name           string
	bundleID       string
	metadataScript string
	playbackScript string
	durationInMS   bool
	repeatIsBool   bool
	controls       mediasession.PlaybackControls
}

var players = []player{
	{
		name:     "Music",
		bundleID: "com.apple.Music",
		metadataScript: `tell application "Music"
	set t to current track
	return (name of t) & linefeed & (artist of t) & linefeed & (album of t) & linefeed & (album artist of t) & linefeed & (genre of t) & linefeed & (track number of t) & linefeed & (track count of t)
end tell`,
		playbackScript: `tell application "Music"
	return (player state as string) & linefeed & (shuffle enabled) & linefeed & (song repeat as string)
end tell`,
		controls: mediasession.PlaybackControls{
			IsFastForwardEnabled:      true,
			IsNextEnabled:             true,
			IsPauseEnabled:            true,
			IsPlaybackPositionEnabled: true,
			IsPlayEnabled:             true,
			IsPlayPauseToggleEnabled:  true,
			IsPreviousEnabled:         true,
			IsRepeatEnabled:           true,
			IsRewindEnabled:           true,
			IsShuffleEnabled:          true,
			IsStopEnabled:             true,
		},
	},
	{
		name:     "Spotify",
		bundleID: "com.spotify.client",
		// Spotify's dictionary has no genre or track count; the blank and
		// zero keep the field positions aligned with Music's script.
		metadataScript: `tell application "Spotify"
	set t to current track
	return (name of t) & linefeed & (artist of t) & linefeed & (album of t) & linefeed & (album artist of t) & linefeed & "" & linefeed & (track number of t) & linefeed & 0 & linefeed & (artwork url of t)
end tell`,
		playbackScript: `tell application "Spotify"
	return (player state as string) & linefeed & shuffling & linefeed & repeating
end tell`,
		durationInMS: true,
		repeatIsBool: true,
		controls: mediasession.PlaybackControls{
			IsNextEnabled:             true,
			IsPauseEnabled:            true,
			IsPlaybackPositionEnabled: true,
			IsPlayEnabled:             true,
			IsPlayPauseToggleEnabled:  true,
			IsPreviousEnabled:         true,
			IsRepeatEnabled:           true,
			IsShuffleEnabled:          true,
		},
	},
}

// stateScript probes a player without launching it. Telling an
// application that is not running starts it, so the process check has to
// come first.
func stateScript(name string) string {
	return fmt.Sprintf(`tell application "System Events"
	if not (exists process "%[1]s") then return "absent"
end tell
tell application "%[1]s" to return player state as string`, name)
}

func timelineScript(name string) string {
	return fmt.Sprintf(`tell application "%s"
	return "" & (duration of current track) & linefeed & (player position)
end tell`, name)
}

// Manager finds the active player among the known macOS applications.
type Manager struct {
	clk clock.Clock
}

func NewManager(clk clock.Clock) *Manager {
	return &Manager{clk: clk}
}

func (m *Manager) CurrentSession(ctx context.Context) (mediasession.Session, error) {
	for _, p := range players {
		state, err := runScript(ctx, stateScript(p.name))
		if err != nil || state == "absent" || state == "stopped" {
			continue
		}
		return &session{player: p, clk: m.clk}, nil
	}
	return nil, mediasession.ErrNoCurrentSession
}

type session struct {
	player player
	clk    clock.Clock
}

func (s *session) SourceAppID() string {
	return s.player.bundleID
}

func (s *session) MediaProperties(ctx context.Context) (*mediasession.MediaProperties, error) {
	out, err := runScript(ctx, s.player.metadataScript)
	if err != nil {
		return nil, err
	}
	return parseMediaProperties(s.player, out)
}

func (s *session) PlaybackInfo(ctx context.Context) (*mediasession.PlaybackInfo, error) {
	out, err := runScript(ctx, s.player.playbackScript)
	if err != nil {
		return nil, err
	}
	return parsePlaybackInfo(s.player, out)
}

func (s *session) TimelineProperties(ctx context.Context) (*mediasession.TimelineProperties, error) {
	out, err := runScript(ctx, timelineScript(s.player.name))
	if err != nil {
		return nil, err
	}
	return parseTimeline(s.player, out, s.clk.Now())
}

// runScript keeps trailing newlines out of the result but leaves leading
// whitespace alone so field positions survive empty values.
func runScript(ctx context.Context, script string) (string, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("osascript: %s", msg)
		}
		return "", fmt.Errorf("osascript: %w", err)
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}
