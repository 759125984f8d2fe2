package mediasession

import (
	"errors"
	"fmt"
)

// ErrInvalidEnumValue reports a platform integer outside an enum's defined
// range. The facility contract makes this unreachable in practice; it is
// still a normal error so a misbehaving platform degrades one dump section
// instead of crashing the process.
var ErrInvalidEnumValue = errors.New("invalid enum value")

// PlaybackStatus is the session's transport state.
type PlaybackStatus int32

const (
	PlaybackStatusClosed PlaybackStatus = iota
	PlaybackStatusOpened
	PlaybackStatusChanging
	PlaybackStatusStopped
	PlaybackStatusPlaying
	PlaybackStatusPaused
)

// PlaybackStatusFromValue maps the platform integer to a PlaybackStatus.
func PlaybackStatusFromValue(v int32) (PlaybackStatus, error) {
	if v < int32(PlaybackStatusClosed) || v > int32(PlaybackStatusPaused) {
		return 0, fmt.Errorf("playback status %d: %w", v, ErrInvalidEnumValue)
	}
	return PlaybackStatus(v), nil
}

func (s PlaybackStatus) String() string {
	switch s {
	case PlaybackStatusClosed:
		return "Closed"
	case PlaybackStatusOpened:
		return "Opened"
	case PlaybackStatusChanging:
		return "Changing"
	case PlaybackStatusStopped:
		return "Stopped"
	case PlaybackStatusPlaying:
		return "Playing"
	case PlaybackStatusPaused:
		return "Paused"
	}
	return fmt.Sprintf("PlaybackStatus(%d)", int32(s))
}

// AutoRepeatMode is the session's repeat setting.
type AutoRepeatMode int32

const (
	AutoRepeatModeNone AutoRepeatMode = iota
	AutoRepeatModeTrack
	AutoRepeatModeList
)

// AutoRepeatModeFromValue maps the platform integer to an AutoRepeatMode.
func AutoRepeatModeFromValue(v int32) (AutoRepeatMode, error) {
	if v < int32(AutoRepeatModeNone) || v > int32(AutoRepeatModeList) {
		return 0, fmt.Errorf("auto repeat mode %d: %w", v, ErrInvalidEnumValue)
	}
	return AutoRepeatMode(v), nil
}

func (m AutoRepeatMode) String() string {
	switch m {
	case AutoRepeatModeNone:
		return "None"
	case AutoRepeatModeTrack:
		return "Track"
	case AutoRepeatModeList:
		return "List"
	}
	return fmt.Sprintf("AutoRepeatMode(%d)", int32(m))
}

// PlaybackType classifies the current media item.
type PlaybackType int32

const (
	PlaybackTypeUnknown PlaybackType = iota
	PlaybackTypeMusic
	PlaybackTypeVideo
	PlaybackTypeImage
)

// PlaybackTypeFromValue maps the platform integer to a PlaybackType.
func PlaybackTypeFromValue(v int32) (PlaybackType, error) {
	if v < int32(PlaybackTypeUnknown) || v > int32(PlaybackTypeImage) {
		return 0, fmt.Errorf("playback type %d: %w", v, ErrInvalidEnumValue)
	}
	return PlaybackType(v), nil
}

func (t PlaybackType) String() string {
	switch t {
	case PlaybackTypeUnknown:
		return "Unknown"
	case PlaybackTypeMusic:
		return "Music"
	case PlaybackTypeVideo:
		return "Video"
	case PlaybackTypeImage:
		return "Image"
	}
	return fmt.Sprintf("PlaybackType(%d)", int32(t))
}
