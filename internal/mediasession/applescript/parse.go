package applescript

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"npdump/internal/mediasession"
	"npdump/internal/mediasession/artwork"
)

func parseMediaProperties(p player, out string) (*mediasession.MediaProperties, error) {
	fields := strings.Split(out, "\n")
	if len(fields) < 7 {
		return nil, errors.New("unexpected metadata format")
	}

	trackNumber, err := parseInt32(fields[5])
	if err != nil {
		return nil, fmt.Errorf("parse track number: %w", err)
	}
	trackCount, err := parseInt32(fields[6])
	if err != nil {
		return nil, fmt.Errorf("parse track count: %w", err)
	}

	m := &mediasession.MediaProperties{
		Title:           fields[0],
		Artist:          fields[1],
		AlbumTitle:      fields[2],
		AlbumArtist:     fields[3],
		AlbumTrackCount: trackCount,
		TrackNumber:     trackNumber,
		PlaybackType:    mediasession.PlaybackTypeMusic,
	}
	if genre := strings.TrimSpace(fields[4]); genre != "" {
		m.Genres = []string{genre}
	}
	if len(fields) > 7 {
		if art := strings.TrimSpace(fields[7]); art != "" {
			m.Thumbnail = artwork.FromURL(art)
		}
	}
	return m, nil
}

func parsePlaybackInfo(p player, out string) (*mediasession.PlaybackInfo, error) {
	fields := strings.Split(out, "\n")
	if len(fields) != 3 {
		return nil, errors.New("unexpected playback format")
	}

	status, err := statusFromState(strings.TrimSpace(fields[0]))
	if err != nil {
		return nil, err
	}
	mode, err := repeatFromSetting(strings.TrimSpace(fields[2]), p.repeatIsBool)
	if err != nil {
		return nil, err
	}
	shuffle := strings.TrimSpace(fields[1]) == "true"

	return &mediasession.PlaybackInfo{
		Status:         status,
		Controls:       p.controls,
		AutoRepeatMode: &mode,
		ShuffleActive:  &shuffle,
		Type:           lo.ToPtr(mediasession.PlaybackTypeMusic),
	}, nil
}

func parseTimeline(p player, out string, now time.Time) (*mediasession.TimelineProperties, error) {
	fields := strings.Split(out, "\n")
	if len(fields) != 2 {
		return nil, errors.New("unexpected timeline format")
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("parse duration: %w", err)
	}
	position, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("parse position: %w", err)
	}
	if p.durationInMS {
		duration /= 1000
	}

	end := time.Duration(duration * float64(time.Second))
	return &mediasession.TimelineProperties{
		EndTime:     end,
		MaxSeekTime: end,
		Position:    time.Duration(position * float64(time.Second)),
		LastUpdated: now,
	}, nil
}

func statusFromState(state string) (mediasession.PlaybackStatus, error) {
	switch state {
	case "playing":
		return mediasession.PlaybackStatusPlaying, nil
	case "paused":
		return mediasession.PlaybackStatusPaused, nil
	case "stopped":
		return mediasession.PlaybackStatusStopped, nil
	case "fast forwarding", "rewinding":
		return mediasession.PlaybackStatusChanging, nil
	}
	return 0, fmt.Errorf("unknown player state %q: %w", state, mediasession.ErrInvalidEnumValue)
}

// repeatFromSetting maps either dictionary's repeat value: Music exposes
// an off/one/all enum, Spotify a plain boolean that covers the playlist.
func repeatFromSetting(setting string, boolStyle bool) (mediasession.AutoRepeatMode, error) {
	if boolStyle {
		switch setting {
		case "true":
			return mediasession.AutoRepeatModeList, nil
		case "false":
			return mediasession.AutoRepeatModeNone, nil
		}
		return 0, fmt.Errorf("unknown repeat setting %q: %w", setting, mediasession.ErrInvalidEnumValue)
	}
	switch setting {
	case "off":
		return mediasession.AutoRepeatModeNone, nil
	case "one":
		return mediasession.AutoRepeatModeTrack, nil
	case "all":
		return mediasession.AutoRepeatModeList, nil
	}
	return 0, fmt.Errorf("unknown repeat setting %q: %w", setting, mediasession.ErrInvalidEnumValue)
}

func parseInt32(s string) (int32, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}
