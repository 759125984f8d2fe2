package gsmtc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"npdump/internal/mediasession"
)

// snapshot is the wire document the PowerShell script emits. Sections and
// their *_error fields are mutually exclusive.
type snapshot struct {
	SourceAppUserModelID    string           `json:"source_app_user_model_id"`
	MediaProperties         *mediaSection    `json:"media_properties"`
	MediaPropertiesError    string           `json:"media_properties_error"`
	PlaybackInfo            *playbackSection `json:"playback_info"`
	PlaybackInfoError       string           `json:"playback_info_error"`
	TimelineProperties      *timelineSection `json:"timeline_properties"`
	TimelinePropertiesError string           `json:"timeline_properties_error"`
}

type mediaSection struct {
	Title           string            `json:"title"`
	Subtitle        string            `json:"subtitle"`
	Artist          string            `json:"artist"`
	AlbumTitle      string            `json:"album_title"`
	AlbumArtist     string            `json:"album_artist"`
	AlbumTrackCount int32             `json:"album_track_count"`
	TrackNumber     int32             `json:"track_number"`
	Genres          []string          `json:"genres"`
	PlaybackType    *int32            `json:"playback_type"`
	Thumbnail       *thumbnailSection `json:"thumbnail"`
	ThumbnailError  string            `json:"thumbnail_error"`
}

type thumbnailSection struct {
	ContentType string `json:"content_type"`
	Size        uint64 `json:"size"`
}

type playbackSection struct {
	PlaybackStatus  int32           `json:"playback_status"`
	AutoRepeatMode  *int32          `json:"auto_repeat_mode"`
	IsShuffleActive *bool           `json:"is_shuffle_active"`
	PlaybackRate    *float64        `json:"playback_rate"`
	PlaybackType    *int32          `json:"playback_type"`
	Controls        controlsSection `json:"controls"`
}

type controlsSection struct {
	IsChannelDownEnabled      bool `json:"is_channel_down_enabled"`
	IsChannelUpEnabled        bool `json:"is_channel_up_enabled"`
	IsFastForwardEnabled      bool `json:"is_fast_forward_enabled"`
	IsNextEnabled             bool `json:"is_next_enabled"`
	IsPauseEnabled            bool `json:"is_pause_enabled"`
	IsPlaybackPositionEnabled bool `json:"is_playback_position_enabled"`
	IsPlaybackRateEnabled     bool `json:"is_playback_rate_enabled"`
	IsPlayEnabled             bool `json:"is_play_enabled"`
	IsPlayPauseToggleEnabled  bool `json:"is_play_pause_toggle_enabled"`
	IsPreviousEnabled         bool `json:"is_previous_enabled"`
	IsRecordEnabled           bool `json:"is_record_enabled"`
	IsRepeatEnabled           bool `json:"is_repeat_enabled"`
	IsRewindEnabled           bool `json:"is_rewind_enabled"`
	IsShuffleEnabled          bool `json:"is_shuffle_enabled"`
	IsStopEnabled             bool `json:"is_stop_enabled"`
}

type timelineSection struct {
	StartTimeNS       int64 `json:"start_time_ns"`
	EndTimeNS         int64 `json:"end_time_ns"`
	MinSeekTimeNS     int64 `json:"min_seek_time_ns"`
	MaxSeekTimeNS     int64 `json:"max_seek_time_ns"`
	PositionNS        int64 `json:"position_ns"`
	LastUpdatedUnixNS int64 `json:"last_updated_unix_ns"`
}

func parseSnapshot(data []byte) (*snapshot, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if snap.SourceAppUserModelID == "" {
		return nil, errors.New("snapshot missing source app id")
	}
	return &snap, nil
}

func (m *mediaSection) convert() (*mediasession.MediaProperties, error) {
	props := &mediasession.MediaProperties{
		Title:           m.Title,
		Subtitle:        m.Subtitle,
		Artist:          m.Artist,
		AlbumTitle:      m.AlbumTitle,
		AlbumArtist:     m.AlbumArtist,
		AlbumTrackCount: m.AlbumTrackCount,
		TrackNumber:     m.TrackNumber,
		Genres:          m.Genres,
	}
	if m.PlaybackType != nil {
		pt, err := mediasession.PlaybackTypeFromValue(*m.PlaybackType)
		if err != nil {
			return nil, err
		}
		props.PlaybackType = pt
	}
	switch {
	case m.ThumbnailError != "":
		props.Thumbnail = &failedThumbnail{message: m.ThumbnailError}
	case m.Thumbnail != nil:
		props.Thumbnail = &staticThumbnail{contentType: m.Thumbnail.ContentType, size: m.Thumbnail.Size}
	}
	return props, nil
}

func (p *playbackSection) convert() (*mediasession.PlaybackInfo, error) {
	status, err := mediasession.PlaybackStatusFromValue(p.PlaybackStatus)
	if err != nil {
		return nil, err
	}

	info := &mediasession.PlaybackInfo{
		Status:        status,
		Controls:      p.Controls.convert(),
		ShuffleActive: p.IsShuffleActive,
		Rate:          p.PlaybackRate,
	}
	if p.AutoRepeatMode != nil {
		mode, err := mediasession.AutoRepeatModeFromValue(*p.AutoRepeatMode)
		if err != nil {
			return nil, err
		}
		info.AutoRepeatMode = &mode
	}
	if p.PlaybackType != nil {
		pt, err := mediasession.PlaybackTypeFromValue(*p.PlaybackType)
		if err != nil {
			return nil, err
		}
		info.Type = &pt
	}
	return info, nil
}

func (c controlsSection) convert() mediasession.PlaybackControls {
	return mediasession.PlaybackControls{
		IsChannelDownEnabled:      c.IsChannelDownEnabled,
		IsChannelUpEnabled:        c.IsChannelUpEnabled,
		IsFastForwardEnabled:      c.IsFastForwardEnabled,
		IsNextEnabled:             c.IsNextEnabled,
		IsPauseEnabled:            c.IsPauseEnabled,
		IsPlaybackPositionEnabled: c.IsPlaybackPositionEnabled,
		IsPlaybackRateEnabled:     c.IsPlaybackRateEnabled,
		IsPlayEnabled:             c.IsPlayEnabled,
		IsPlayPauseToggleEnabled:  c.IsPlayPauseToggleEnabled,
		IsPreviousEnabled:         c.IsPreviousEnabled,
		IsRecordEnabled:           c.IsRecordEnabled,
		IsRepeatEnabled:           c.IsRepeatEnabled,
		IsRewindEnabled:           c.IsRewindEnabled,
		IsShuffleEnabled:          c.IsShuffleEnabled,
		IsStopEnabled:             c.IsStopEnabled,
	}
}

func (t *timelineSection) convert() *mediasession.TimelineProperties {
	tl := &mediasession.TimelineProperties{
		StartTime:   time.Duration(t.StartTimeNS),
		EndTime:     time.Duration(t.EndTimeNS),
		MinSeekTime: time.Duration(t.MinSeekTimeNS),
		MaxSeekTime: time.Duration(t.MaxSeekTimeNS),
		Position:    time.Duration(t.PositionNS),
	}
	if t.LastUpdatedUnixNS != 0 {
		tl.LastUpdated = time.Unix(0, t.LastUpdatedUnixNS)
	}
	return tl
}

// staticThumbnail carries attributes the script already read. The bytes stay
// on the Windows side; the dump never consumes them anyway.
type staticThumbnail struct {
	contentType string
	size        uint64
}

func (t *staticThumbnail) Open(ctx context.Context) (*mediasession.ThumbnailStream, error) {
	return mediasession.NewThumbnailStream(t.contentType, t.size, nil), nil
}

// failedThumbnail replays the script-side open failure.
type failedThumbnail struct {
	message string
}

func (t *failedThumbnail) Open(ctx context.Context) (*mediasession.ThumbnailStream, error) {
	return nil, errors.New(t.message)
}
