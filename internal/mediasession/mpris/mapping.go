package mpris

import (
	"fmt"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"

	"npdump/internal/mediasession"
	"npdump/internal/mediasession/artwork"
)

// mediaPropertiesFromProps builds the metadata snapshot from the player's
// Metadata property. A player with nothing loaded has an empty map, which
// yields an empty snapshot rather than an error.
func mediaPropertiesFromProps(props map[string]dbus.Variant) *mediasession.MediaProperties {
	md := metadataMap(props)

	m := &mediasession.MediaProperties{
		Title:        stringValue(md, "xesam:title"),
		AlbumTitle:   stringValue(md, "xesam:album"),
		Artist:       strings.Join(stringSliceValue(md, "xesam:artist"), ", "),
		AlbumArtist:  strings.Join(stringSliceValue(md, "xesam:albumArtist"), ", "),
		TrackNumber:  int32Value(md, "xesam:trackNumber"),
		Genres:       stringSliceValue(md, "xesam:genre"),
		PlaybackType: mediasession.PlaybackTypeUnknown,
	}
	if artURL := stringValue(md, "mpris:artUrl"); artURL != "" {
		m.Thumbnail = artwork.FromURL(artURL)
	}
	return m
}

func playbackInfoFromProps(props map[string]dbus.Variant) (*mediasession.PlaybackInfo, error) {
	status, err := statusFromName(stringValue(props, "PlaybackStatus"))
	if err != nil {
		return nil, err
	}

	info := &mediasession.PlaybackInfo{
		Status:   status,
		Controls: controlsFromProps(props),
	}

	if v, ok := props["LoopStatus"]; ok {
		if name, ok := v.Value().(string); ok {
			mode, err := repeatFromName(name)
			if err != nil {
				return nil, err
			}
			info.AutoRepeatMode = &mode
		}
	}
	if v, ok := props["Shuffle"]; ok {
		if shuffle, ok := v.Value().(bool); ok {
			info.ShuffleActive = &shuffle
		}
	}
	if v, ok := props["Rate"]; ok {
		if rate, ok := v.Value().(float64); ok {
			info.Rate = &rate
		}
	}
	return info, nil
}

// timelineFromProps derives the timeline snapshot: the track plays from 0 to
// mpris:length and is seekable across the same range. MPRIS carries no
// last-updated stamp, so the read time stands in.
func timelineFromProps(props map[string]dbus.Variant, now time.Time) *mediasession.TimelineProperties {
	length := microsecondsValue(metadataMap(props), "mpris:length")
	position := microsecondsValue(props, "Position")

	return &mediasession.TimelineProperties{
		EndTime:     length,
		MaxSeekTime: length,
		Position:    position,
		LastUpdated: now,
	}
}

// controlsFromProps maps the MPRIS Can* properties onto the capability set.
// Seeking covers position and rewind/fast-forward; CanControl covers the
// mode toggles. Channel switching and recording have no MPRIS counterpart
// and stay false.
func controlsFromProps(props map[string]dbus.Variant) mediasession.PlaybackControls {
	canGoNext := boolValue(props, "CanGoNext")
	canGoPrevious := boolValue(props, "CanGoPrevious")
	canPlay := boolValue(props, "CanPlay")
	canPause := boolValue(props, "CanPause")
	canSeek := boolValue(props, "CanSeek")
	canControl := boolValue(props, "CanControl")

	return mediasession.PlaybackControls{
		IsFastForwardEnabled:      canSeek,
		IsNextEnabled:             canGoNext,
		IsPauseEnabled:            canPause,
		IsPlaybackPositionEnabled: canSeek,
		IsPlaybackRateEnabled:     canControl,
		IsPlayEnabled:             canPlay,
		IsPlayPauseToggleEnabled:  canPlay || canPause,
		IsPreviousEnabled:         canGoPrevious,
		IsRepeatEnabled:           canControl,
		IsRewindEnabled:           canSeek,
		IsShuffleEnabled:          canControl,
		IsStopEnabled:             canControl,
	}
}

func statusFromName(name string) (mediasession.PlaybackStatus, error) {
	switch name {
	case "Playing":
		return mediasession.PlaybackStatusPlaying, nil
	case "Paused":
		return mediasession.PlaybackStatusPaused, nil
	case "Stopped":
		return mediasession.PlaybackStatusStopped, nil
	}
	return 0, fmt.Errorf("playback status %q: %w", name, mediasession.ErrInvalidEnumValue)
}

func repeatFromName(name string) (mediasession.AutoRepeatMode, error) {
	switch name {
	case "None":
		return mediasession.AutoRepeatModeNone, nil
	case "Track":
		return mediasession.AutoRepeatModeTrack, nil
	case "Playlist":
		return mediasession.AutoRepeatModeList, nil
	}
	return 0, fmt.Errorf("loop status %q: %w", name, mediasession.ErrInvalidEnumValue)
}

func metadataMap(props map[string]dbus.Variant) map[string]dbus.Variant {
	v, ok := props["Metadata"]
	if !ok {
		return nil
	}
	md, _ := v.Value().(map[string]dbus.Variant)
	return md
}

func stringValue(m map[string]dbus.Variant, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	s, _ := v.Value().(string)
	return s
}

func stringSliceValue(m map[string]dbus.Variant, key string) []string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	s, _ := v.Value().([]string)
	return s
}

func boolValue(m map[string]dbus.Variant, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	b, _ := v.Value().(bool)
	return b
}

// int32Value tolerates the integer widths players actually ship for track
// numbers.
func int32Value(m map[string]dbus.Variant, key string) int32 {
	v, ok := m[key]
	if !ok {
		return 0
	}
	switch n := v.Value().(type) {
	case int32:
		return n
	case int64:
		return int32(n)
	case uint32:
		return int32(n)
	case int16:
		return int32(n)
	case uint16:
		return int32(n)
	}
	return 0
}

// microsecondsValue reads an MPRIS time value (microseconds on the wire)
// into a Duration.
func microsecondsValue(m map[string]dbus.Variant, key string) time.Duration {
	v, ok := m[key]
	if !ok {
		return 0
	}
	switch n := v.Value().(type) {
	case int64:
		return time.Duration(n) * time.Microsecond
	case uint64:
		return time.Duration(n) * time.Microsecond
	case int32:
		return time.Duration(n) * time.Microsecond
	case uint32:
		return time.Duration(n) * time.Microsecond
	case float64:
		return time.Duration(n * float64(time.Microsecond))
	}
	return 0
}
