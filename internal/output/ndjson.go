// Package output emits dump records as NDJSON, one JSON object per line,
// for machine consumers. The line-oriented text format lives in the dump
// package; this is the structured alternative behind --format ndjson.
package output

import (
	"encoding/json"
	"io"

	"github.com/samber/lo"

	"npdump/internal/dump"
	"npdump/internal/mediasession"
)

// SchemaVersion identifies the NDJSON record layout.
const SchemaVersion = 1

// NDJSONWriter writes typed records to a stream.
type NDJSONWriter struct {
	enc *json.Encoder
}

func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	return &NDJSONWriter{enc: json.NewEncoder(w)}
}

// Session is the dump header record.
type Session struct {
	Type           string `json:"type"`
	SchemaVersion  int    `json:"schemaVersion"`
	AppUserModelID string `json:"app_user_model_id"`
}

// PlaybackInfo mirrors the playback_info dump section. Optional fields are
// omitted when the platform does not report them.
type PlaybackInfo struct {
	Type            string          `json:"type"`
	SchemaVersion   int             `json:"schemaVersion"`
	PlaybackStatus  string          `json:"playback_status"`
	AutoRepeatMode  *string         `json:"auto_repeat_mode,omitempty"`
	IsShuffleActive *bool           `json:"is_shuffle_active,omitempty"`
	PlaybackRate    *float64        `json:"playback_rate,omitempty"`
	PlaybackType    *string         `json:"playback_type,omitempty"`
	Controls        map[string]bool `json:"controls"`
}

// MediaProperties mirrors the media_properties dump section.
type MediaProperties struct {
	Type            string     `json:"type"`
	SchemaVersion   int        `json:"schemaVersion"`
	Title           string     `json:"title"`
	Subtitle        string     `json:"subtitle"`
	Artist          string     `json:"artist"`
	AlbumTitle      string     `json:"album_title"`
	AlbumArtist     string     `json:"album_artist"`
	AlbumTrackCount int32      `json:"album_track_count"`
	TrackNumber     int32      `json:"track_number"`
	Genres          []string   `json:"genres"`
	PlaybackType    string     `json:"playback_type"`
	Thumbnail       *Thumbnail `json:"thumbnail,omitempty"`
	ThumbnailError  string     `json:"thumbnail_error,omitempty"`
}

// Thumbnail is the artwork descriptor: declared attributes only, no bytes.
type Thumbnail struct {
	ContentType string `json:"content_type"`
	Size        uint64 `json:"size"`
}

// TimelineProperties mirrors the timeline_properties dump section. All
// values are integer nanoseconds; last_updated_unix_ns is 0 when the
// platform never stamped the snapshot.
type TimelineProperties struct {
	Type              string `json:"type"`
	SchemaVersion     int    `json:"schemaVersion"`
	StartTimeNS       int64  `json:"start_time_ns"`
	EndTimeNS         int64  `json:"end_time_ns"`
	MinSeekTimeNS     int64  `json:"min_seek_time_ns"`
	MaxSeekTimeNS     int64  `json:"max_seek_time_ns"`
	PositionNS        int64  `json:"position_ns"`
	LastUpdatedUnixNS int64  `json:"last_updated_unix_ns"`
}

// Error is a structured failure record. Section is set for soft per-section
// failures, empty for fatal ones.
type Error struct {
	Type          string `json:"type"`
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	Section       string `json:"section,omitempty"`
	Hint          string `json:"hint,omitempty"`
}

// WriteDump writes one run's records in dump order, substituting an error
// record for each failed section.
func (w *NDJSONWriter) WriteDump(res *dump.Result) error {
	if err := w.WriteSession(res.AppID); err != nil {
		return err
	}

	if res.PlaybackErr != nil {
		if err := w.WriteSectionError("playback_info", res.PlaybackErr.Error()); err != nil {
			return err
		}
	} else if err := w.WritePlaybackInfo(res.Playback); err != nil {
		return err
	}

	if res.MediaErr != nil {
		if err := w.WriteSectionError("media_properties", res.MediaErr.Error()); err != nil {
			return err
		}
	} else if err := w.WriteMediaProperties(res.Media, res.Thumbnail, res.ThumbErr); err != nil {
		return err
	}

	if res.TimelineErr != nil {
		return w.WriteSectionError("timeline_properties", res.TimelineErr.Error())
	}
	return w.WriteTimelineProperties(res.Timeline)
}

func (w *NDJSONWriter) WriteSession(appID string) error {
	return w.enc.Encode(Session{
		Type:           "session",
		SchemaVersion:  SchemaVersion,
		AppUserModelID: appID,
	})
}

func (w *NDJSONWriter) WritePlaybackInfo(info *mediasession.PlaybackInfo) error {
	record := PlaybackInfo{
		Type:            "playback_info",
		SchemaVersion:   SchemaVersion,
		PlaybackStatus:  info.Status.String(),
		IsShuffleActive: info.ShuffleActive,
		PlaybackRate:    info.Rate,
		Controls: lo.SliceToMap(info.Controls.Flags(), func(f mediasession.ControlFlag) (string, bool) {
			return f.Name, f.Enabled
		}),
	}
	if info.AutoRepeatMode != nil {
		record.AutoRepeatMode = lo.ToPtr(info.AutoRepeatMode.String())
	}
	if info.Type != nil {
		record.PlaybackType = lo.ToPtr(info.Type.String())
	}
	return w.enc.Encode(record)
}

func (w *NDJSONWriter) WriteMediaProperties(media *mediasession.MediaProperties, thumb *dump.ThumbnailInfo, thumbErr error) error {
	record := MediaProperties{
		Type:            "media_properties",
		SchemaVersion:   SchemaVersion,
		Title:           media.Title,
		Subtitle:        media.Subtitle,
		Artist:          media.Artist,
		AlbumTitle:      media.AlbumTitle,
		AlbumArtist:     media.AlbumArtist,
		AlbumTrackCount: media.AlbumTrackCount,
		TrackNumber:     media.TrackNumber,
		Genres:          media.Genres,
		PlaybackType:    media.PlaybackType.String(),
	}
	if record.Genres == nil {
		record.Genres = []string{}
	}
	if thumb != nil {
		record.Thumbnail = &Thumbnail{ContentType: thumb.ContentType, Size: thumb.Size}
	}
	if thumbErr != nil {
		record.ThumbnailError = thumbErr.Error()
	}
	return w.enc.Encode(record)
}

func (w *NDJSONWriter) WriteTimelineProperties(tl *mediasession.TimelineProperties) error {
	return w.enc.Encode(TimelineProperties{
		Type:              "timeline_properties",
		SchemaVersion:     SchemaVersion,
		StartTimeNS:       tl.StartTime.Nanoseconds(),
		EndTimeNS:         tl.EndTime.Nanoseconds(),
		MinSeekTimeNS:     tl.MinSeekTime.Nanoseconds(),
		MaxSeekTimeNS:     tl.MaxSeekTime.Nanoseconds(),
		PositionNS:        tl.Position.Nanoseconds(),
		LastUpdatedUnixNS: tl.LastUpdatedUnixNano(),
	})
}

// WriteSectionError records a soft section failure in place of its section.
func (w *NDJSONWriter) WriteSectionError(section, message string) error {
	return w.enc.Encode(Error{
		Type:          "error",
		SchemaVersion: SchemaVersion,
		Code:          "SECTION_UNAVAILABLE",
		Message:       message,
		Section:       section,
	})
}

// WriteError records a fatal failure.
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	record := Error{
		Type:          "error",
		SchemaVersion: SchemaVersion,
		Code:          code,
		Message:       message,
	}
	if len(hint) > 0 {
		record.Hint = hint[0]
	}
	return w.enc.Encode(record)
}
