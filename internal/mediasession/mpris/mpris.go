// Package mpris reads the current media session from MPRIS players on the
// D-Bus session bus.
package mpris

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/godbus/dbus/v5"
	"github.com/samber/lo"

	"npdump/internal/mediasession"
)

const (
	busNamePrefix   = "org.mpris.MediaPlayer2."
	objectPath      = "/org/mpris/MediaPlayer2"
	playerInterface = "org.mpris.MediaPlayer2.Player"

	listNamesMethod = "org.freedesktop.DBus.ListNames"
	getAllMethod    = "org.freedesktop.DBus.Properties.GetAll"
	getMethod       = "org.freedesktop.DBus.Properties.Get"
)

// Manager picks the current session among the MPRIS players registered on
// the session bus.
type Manager struct {
	conn *dbus.Conn
	clk  clock.Clock
}

// NewManager connects to the session bus.
func NewManager(clk clock.Clock) (*Manager, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return &Manager{conn: conn, clk: clk}, nil
}

// CurrentSession returns the active player: the first one reporting Playing,
// else the first reporting Paused, else the lexicographically first player.
// Bus names are sorted so the pick is deterministic.
func (m *Manager) CurrentSession(ctx context.Context) (mediasession.Session, error) {
	var names []string
	if err := m.conn.BusObject().CallWithContext(ctx, listNamesMethod, 0).Store(&names); err != nil {
		return nil, fmt.Errorf("list bus names: %w", err)
	}

	players := lo.Filter(names, func(name string, _ int) bool {
		return strings.HasPrefix(name, busNamePrefix)
	})
	if len(players) == 0 {
		return nil, mediasession.ErrNoCurrentSession
	}
	sort.Strings(players)

	statuses := make(map[string]string, len(players))
	for _, name := range players {
		statuses[name], _ = m.playbackStatus(ctx, name)
	}

	pick := players[0]
	if name, ok := lo.Find(players, func(n string) bool { return statuses[n] == "Playing" }); ok {
		pick = name
	} else if name, ok := lo.Find(players, func(n string) bool { return statuses[n] == "Paused" }); ok {
		pick = name
	}

	return &session{conn: m.conn, busName: pick, clk: m.clk}, nil
}

func (m *Manager) playbackStatus(ctx context.Context, busName string) (string, error) {
	obj := m.conn.Object(busName, objectPath)
	var v dbus.Variant
	if err := obj.CallWithContext(ctx, getMethod, 0, playerInterface, "PlaybackStatus").Store(&v); err != nil {
		return "", err
	}
	status, ok := v.Value().(string)
	if !ok {
		return "", fmt.Errorf("playback status of %s is not a string", busName)
	}
	return status, nil
}

// session reads one player's state. Each snapshot fetch is a fresh GetAll so
// the three sections stay independent.
type session struct {
	conn    *dbus.Conn
	busName string
	clk     clock.Clock
}

func (s *session) SourceAppID() string { return s.busName }

func (s *session) playerProps(ctx context.Context) (map[string]dbus.Variant, error) {
	obj := s.conn.Object(s.busName, objectPath)
	var props map[string]dbus.Variant
	if err := obj.CallWithContext(ctx, getAllMethod, 0, playerInterface).Store(&props); err != nil {
		return nil, fmt.Errorf("get player properties: %w", err)
	}
	return props, nil
}

func (s *session) MediaProperties(ctx context.Context) (*mediasession.MediaProperties, error) {
	props, err := s.playerProps(ctx)
	if err != nil {
		return nil, err
	}
	return mediaPropertiesFromProps(props), nil
}

func (s *session) PlaybackInfo(ctx context.Context) (*mediasession.PlaybackInfo, error) {
	props, err := s.playerProps(ctx)
	if err != nil {
		return nil, err
	}
	return playbackInfoFromProps(props)
}

func (s *session) TimelineProperties(ctx context.Context) (*mediasession.TimelineProperties, error) {
	props, err := s.playerProps(ctx)
	if err != nil {
		return nil, err
	}
	return timelineFromProps(props, s.clk.Now()), nil
}
