package gsmtc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"npdump/internal/mediasession"
)

const fullSnapshot = `{
  "source_app_user_model_id": "Spotify.exe",
  "media_properties": {
    "title": "Song",
    "subtitle": "",
    "artist": "Artist",
    "album_title": "Album",
    "album_artist": "Artist",
    "album_track_count": 12,
    "track_number": 3,
    "genres": ["Rock", "Indie"],
    "playback_type": 1,
    "thumbnail": {"content_type": "image/png", "size": 1024}
  },
  "playback_info": {
    "playback_status": 4,
    "auto_repeat_mode": 1,
    "is_shuffle_active": true,
    "playback_rate": 1.0,
    "playback_type": 1,
    "controls": {
      "is_next_enabled": true,
      "is_pause_enabled": true,
      "is_play_enabled": true,
      "is_play_pause_toggle_enabled": true,
      "is_previous_enabled": true
    }
  },
  "timeline_properties": {
    "start_time_ns": 0,
    "end_time_ns": 240000000000,
    "min_seek_time_ns": 0,
    "max_seek_time_ns": 240000000000,
    "position_ns": 35000000000,
    "last_updated_unix_ns": 1700000000000000000
  }
}`

func TestParseSnapshotFullSession(t *testing.T) {
	snap, err := parseSnapshot([]byte(fullSnapshot))
	require.NoError(t, err)

	sess := &session{snap: snap}
	assert.Equal(t, "Spotify.exe", sess.SourceAppID())

	ctx := context.Background()

	media, err := sess.MediaProperties(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Song", media.Title)
	assert.Equal(t, "Artist", media.Artist)
	assert.Equal(t, "Album", media.AlbumTitle)
	assert.Equal(t, int32(12), media.AlbumTrackCount)
	assert.Equal(t, int32(3), media.TrackNumber)
	assert.Equal(t, []string{"Rock", "Indie"}, media.Genres)
	assert.Equal(t, mediasession.PlaybackTypeMusic, media.PlaybackType)

	require.NotNil(t, media.Thumbnail)
	stream, err := media.Thumbnail.Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, "image/png", stream.ContentType())
	assert.Equal(t, uint64(1024), stream.Size())
	require.NoError(t, stream.Close())

	playback, err := sess.PlaybackInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, mediasession.PlaybackStatusPlaying, playback.Status)
	require.NotNil(t, playback.AutoRepeatMode)
	assert.Equal(t, mediasession.AutoRepeatModeTrack, *playback.AutoRepeatMode)
	require.NotNil(t, playback.ShuffleActive)
	assert.True(t, *playback.ShuffleActive)
	require.NotNil(t, playback.Rate)
	assert.Equal(t, 1.0, *playback.Rate)
	assert.True(t, playback.Controls.IsPlayPauseToggleEnabled)
	assert.False(t, playback.Controls.IsRecordEnabled)

	timeline, err := sess.TimelineProperties(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4*time.Minute, timeline.EndTime)
	assert.Equal(t, 35*time.Second, timeline.Position)
	assert.Equal(t, int64(1700000000000000000), timeline.LastUpdatedUnixNano())
}

func TestParseSnapshotSectionErrors(t *testing.T) {
	doc := `{
  "source_app_user_model_id": "Video.UI.exe",
  "media_properties_error": "The device is not ready.",
  "playback_info": {"playback_status": 5, "controls": {}},
  "timeline_properties_error": "Element not found."
}`
	snap, err := parseSnapshot([]byte(doc))
	require.NoError(t, err)

	sess := &session{snap: snap}
	ctx := context.Background()

	_, err = sess.MediaProperties(ctx)
	require.EqualError(t, err, "The device is not ready.")

	playback, err := sess.PlaybackInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, mediasession.PlaybackStatusPaused, playback.Status)
	assert.Nil(t, playback.AutoRepeatMode)
	assert.Nil(t, playback.ShuffleActive)
	assert.Nil(t, playback.Rate)

	_, err = sess.TimelineProperties(ctx)
	require.EqualError(t, err, "Element not found.")
}

func TestParseSnapshotThumbnailError(t *testing.T) {
	doc := `{
  "source_app_user_model_id": "Spotify.exe",
  "media_properties": {"title": "Song", "thumbnail_error": "Access denied."}
}`
	snap, err := parseSnapshot([]byte(doc))
	require.NoError(t, err)

	media, err := (&session{snap: snap}).MediaProperties(context.Background())
	require.NoError(t, err)
	require.NotNil(t, media.Thumbnail)

	_, err = media.Thumbnail.Open(context.Background())
	require.EqualError(t, err, "Access denied.")
}

func TestParseSnapshotNoThumbnail(t *testing.T) {
	doc := `{
  "source_app_user_model_id": "Spotify.exe",
  "media_properties": {"title": "Song"}
}`
	snap, err := parseSnapshot([]byte(doc))
	require.NoError(t, err)

	media, err := (&session{snap: snap}).MediaProperties(context.Background())
	require.NoError(t, err)
	assert.Nil(t, media.Thumbnail)
	assert.Equal(t, mediasession.PlaybackTypeUnknown, media.PlaybackType)
}

func TestParseSnapshotRejectsInvalidStatus(t *testing.T) {
	doc := `{
  "source_app_user_model_id": "Spotify.exe",
  "playback_info": {"playback_status": 9, "controls": {}}
}`
	snap, err := parseSnapshot([]byte(doc))
	require.NoError(t, err)

	_, err = (&session{snap: snap}).PlaybackInfo(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, mediasession.ErrInvalidEnumValue)
}

func TestParseSnapshotRejectsMissingAppID(t *testing.T) {
	_, err := parseSnapshot([]byte(`{"playback_info": {"playback_status": 4, "controls": {}}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing source app id")
}

func TestParseSnapshotRejectsMalformedJSON(t *testing.T) {
	_, err := parseSnapshot([]byte("not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse snapshot")
}

func TestTimelineSectionZeroLastUpdated(t *testing.T) {
	tl := (&timelineSection{PositionNS: 1000}).convert()
	assert.True(t, tl.LastUpdated.IsZero())
	assert.Equal(t, int64(0), tl.LastUpdatedUnixNano())
	assert.Equal(t, time.Duration(1000), tl.Position)
}
