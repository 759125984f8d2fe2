package dump

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"npdump/internal/mediasession"
	"npdump/internal/mediasession/sessiontest"
)

func playingSession() *sessiontest.Session {
	return &sessiontest.Session{
		AppID: "Spotify.exe",
		Playback: &mediasession.PlaybackInfo{
			Status:         mediasession.PlaybackStatusPlaying,
			AutoRepeatMode: lo.ToPtr(mediasession.AutoRepeatModeTrack),
			ShuffleActive:  lo.ToPtr(true),
			Rate:           lo.ToPtr(1.0),
			Type:           lo.ToPtr(mediasession.PlaybackTypeMusic),
			Controls: mediasession.PlaybackControls{
				IsNextEnabled:            true,
				IsPauseEnabled:           true,
				IsPlayEnabled:            true,
				IsPlayPauseToggleEnabled: true,
				IsPreviousEnabled:        true,
			},
		},
		Media: &mediasession.MediaProperties{
			Title:        "Song",
			Artist:       "Artist",
			PlaybackType: mediasession.PlaybackTypeMusic,
			Thumbnail:    &sessiontest.Thumbnail{ContentType: "image/png", Size: 1024},
		},
		Timeline: &mediasession.TimelineProperties{
			EndTime:     4 * time.Minute,
			MaxSeekTime: 4 * time.Minute,
			Position:    35 * time.Second,
			LastUpdated: time.Unix(1700000000, 0),
		},
	}
}

func render(t *testing.T, session mediasession.Session) string {
	t.Helper()
	res := Collect(context.Background(), session)
	var buf bytes.Buffer
	require.NoError(t, NewTextRenderer(&buf).Render(res))
	return buf.String()
}

func TestRenderFullSession(t *testing.T) {
	got := render(t, playingSession())

	want := strings.Join([]string{
		`app_user_model_id: "Spotify.exe"`,
		``,
		`playback_info:`,
		`    playback_status: "Playing"`,
		`    auto_repeat_mode: "Track"`,
		`    is_shuffle_active: true`,
		`    playback_rate: 1x`,
		`    playback_type: "Music"`,
		`    controls:`,
		`        is_channel_down_enabled: false`,
		`        is_channel_up_enabled: false`,
		`        is_fast_forward_enabled: false`,
		`        is_next_enabled: true`,
		`        is_pause_enabled: true`,
		`        is_playback_position_enabled: false`,
		`        is_playback_rate_enabled: false`,
		`        is_play_enabled: true`,
		`        is_play_pause_toggle_enabled: true`,
		`        is_previous_enabled: true`,
		`        is_record_enabled: false`,
		`        is_repeat_enabled: false`,
		`        is_rewind_enabled: false`,
		`        is_shuffle_enabled: false`,
		`        is_stop_enabled: false`,
		`media_properties:`,
		`    title: "Song"`,
		`    subtitle: ""`,
		`    artist: "Artist"`,
		`    album_title: ""`,
		`    album_artist: ""`,
		`    album_track_count: 0`,
		`    track_number: 0`,
		`    genres:`,
		`    playback_type: "Music"`,
		`    thumbnail:`,
		`        content_type: image/png`,
		`        size: 1024`,
		`timeline_properties:`,
		`    start_time: 0`,
		`    end_time: 240000000000`,
		`    min_seek_time: 0`,
		`    max_seek_time: 240000000000`,
		`    position: 35000000000`,
		`    last_updated_time: 1700000000000000000`,
	}, "\n") + "\n"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dump mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderLineOrder(t *testing.T) {
	got := render(t, playingSession())

	ordered := []string{
		`app_user_model_id: "Spotify.exe"`,
		`playback_status: "Playing"`,
		`is_shuffle_active: true`,
		`title: "Song"`,
		`content_type: image/png`,
		`size: 1024`,
	}

	last := -1
	for _, line := range ordered {
		idx := strings.Index(got, line)
		require.GreaterOrEqual(t, idx, 0, "missing line %q", line)
		assert.Greater(t, idx, last, "line %q out of order", line)
		last = idx
	}
}

func TestRenderMediaFailureIsolation(t *testing.T) {
	session := playingSession()
	session.Media = nil
	session.MediaErr = errors.New("media fetch failed")

	got := render(t, session)

	assert.Contains(t, got, "media_properties:\n    error: media fetch failed\n")
	assert.Contains(t, got, `playback_status: "Playing"`)
	assert.Contains(t, got, "position: 35000000000")
	assert.NotContains(t, got, "title:")
}

func TestRenderPlaybackFailureIsolation(t *testing.T) {
	session := playingSession()
	session.Playback = nil
	session.PlaybackErr = errors.New("playback info failed")

	got := render(t, session)

	assert.Contains(t, got, "playback_info:\n    error: playback info failed\n")
	assert.Contains(t, got, `title: "Song"`)
	assert.Contains(t, got, "last_updated_time: 1700000000000000000")
	assert.NotContains(t, got, "controls:")
}

func TestRenderZeroTimeline(t *testing.T) {
	session := playingSession()
	session.Timeline = &mediasession.TimelineProperties{}

	got := render(t, session)

	want := strings.Join([]string{
		`timeline_properties:`,
		`    start_time: 0`,
		`    end_time: 0`,
		`    min_seek_time: 0`,
		`    max_seek_time: 0`,
		`    position: 0`,
		`    last_updated_time: 0`,
	}, "\n") + "\n"
	assert.Contains(t, got, want)
	assert.NotContains(t, got, "timeline_properties:\n    error:")
}

func TestRenderOptionalPlaybackFieldsSkipped(t *testing.T) {
	session := playingSession()
	session.Playback = &mediasession.PlaybackInfo{
		Status: mediasession.PlaybackStatusPaused,
		Controls: mediasession.PlaybackControls{
			IsPlayEnabled: true,
		},
	}

	got := render(t, session)
	start := strings.Index(got, "playback_info:")
	end := strings.Index(got, "media_properties:")
	require.GreaterOrEqual(t, start, 0)
	require.Greater(t, end, start)
	section := got[start:end]

	assert.Contains(t, section, `playback_status: "Paused"`)
	assert.NotContains(t, section, "auto_repeat_mode:")
	assert.NotContains(t, section, "is_shuffle_active:")
	assert.NotContains(t, section, "playback_rate:")
	assert.NotContains(t, section, "playback_type:")
	assert.Contains(t, section, "is_play_enabled: true")
}

func TestRenderPlaybackRateFormatting(t *testing.T) {
	tests := []struct {
		rate     float64
		expected string
	}{
		{1.0, "playback_rate: 1x"},
		{1.5, "playback_rate: 1.5x"},
		{0.75, "playback_rate: 0.75x"},
		{2, "playback_rate: 2x"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			session := playingSession()
			session.Playback.Rate = lo.ToPtr(tt.rate)
			assert.Contains(t, render(t, session), tt.expected)
		})
	}
}

func TestRenderGenreBullets(t *testing.T) {
	session := playingSession()
	session.Media.Genres = []string{"Rock", "Indie", "Shoegaze"}

	got := render(t, session)
	lines := strings.Split(got, "\n")

	idx := -1
	for i, line := range lines {
		if line == "    genres:" {
			idx = i
			break
		}
	}
	require.GreaterOrEqual(t, idx, 0, "genres header missing")

	require.Equal(t, "        - Rock", lines[idx+1])
	require.Equal(t, "        - Indie", lines[idx+2])
	require.Equal(t, "        - Shoegaze", lines[idx+3])
	assert.False(t, strings.HasPrefix(lines[idx+4], "        - "), "exactly three bullets expected")
}

func TestRenderEmptyGenresHasHeaderOnly(t *testing.T) {
	got := render(t, playingSession())
	lines := strings.Split(got, "\n")

	for i, line := range lines {
		if line == "    genres:" {
			assert.NotContains(t, lines[i+1], "- ")
			return
		}
	}
	t.Fatal("genres header missing")
}

func TestRenderNoThumbnail(t *testing.T) {
	session := playingSession()
	session.Media.Thumbnail = nil

	got := render(t, session)
	assert.Contains(t, got, "    thumbnail:\n        error: no thumbnail available\n")
	assert.NotContains(t, got, "content_type:")
}

func TestRenderThumbnailOpenFailure(t *testing.T) {
	session := playingSession()
	session.Media.Thumbnail = &sessiontest.Thumbnail{Err: errors.New("stream unavailable")}

	got := render(t, session)
	assert.Contains(t, got, "    thumbnail:\n        error: stream unavailable\n")
	assert.Contains(t, got, `title: "Song"`, "thumbnail failure must not drop metadata fields")
}

func TestIndentationDepth(t *testing.T) {
	timeline := &mediasession.TimelineProperties{Position: time.Second}

	for depth := 0; depth <= 3; depth++ {
		t.Run(fmt.Sprintf("depth_%d", depth), func(t *testing.T) {
			var buf bytes.Buffer
			r := NewTextRenderer(&buf)
			r.writeTimelineProperties(timeline, depth)
			require.NoError(t, r.err)

			prefix := strings.Repeat(" ", depth*4)
			for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
				assert.True(t, strings.HasPrefix(line, prefix), "line %q lacks %d-space prefix", line, depth*4)
				assert.False(t, strings.HasPrefix(line, prefix+" "), "line %q over-indented", line)
			}
		})
	}
}

func TestControlsIndentationDepth(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextRenderer(&buf)
	r.writeControls(mediasession.PlaybackControls{}, 2)
	require.NoError(t, r.err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 15)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "        is_"), "line %q", line)
	}
}

type recordingBody struct {
	reads  int
	closed bool
}

func (b *recordingBody) Read(p []byte) (int, error) {
	b.reads++
	return 0, io.EOF
}

func (b *recordingBody) Close() error {
	b.closed = true
	return nil
}

type trackedThumbnail struct {
	body *recordingBody
}

func (t *trackedThumbnail) Open(ctx context.Context) (*mediasession.ThumbnailStream, error) {
	return mediasession.NewThumbnailStream("image/jpeg", 2048, t.body), nil
}

func TestCollectReadsThumbnailAttributesOnly(t *testing.T) {
	body := &recordingBody{}
	session := playingSession()
	session.Media.Thumbnail = &trackedThumbnail{body: body}

	res := Collect(context.Background(), session)

	require.NoError(t, res.ThumbErr)
	require.NotNil(t, res.Thumbnail)
	assert.Equal(t, "image/jpeg", res.Thumbnail.ContentType)
	assert.Equal(t, uint64(2048), res.Thumbnail.Size)
	assert.True(t, body.closed, "thumbnail stream must be closed")
	assert.Zero(t, body.reads, "thumbnail bytes must never be consumed")
}

func TestCollectRecordsSectionErrors(t *testing.T) {
	session := playingSession()
	session.PlaybackErr = errors.New("playback gone")
	session.TimelineErr = errors.New("timeline gone")

	res := Collect(context.Background(), session)

	assert.EqualError(t, res.PlaybackErr, "playback gone")
	assert.EqualError(t, res.TimelineErr, "timeline gone")
	require.NoError(t, res.MediaErr)
	assert.Equal(t, "Song", res.Media.Title)
	assert.Equal(t, "Spotify.exe", res.AppID)
}

type failAfterWriter struct {
	n int
}

func (w *failAfterWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, errors.New("pipe closed")
	}
	w.n--
	return len(p), nil
}

func TestRenderReportsWriterError(t *testing.T) {
	res := Collect(context.Background(), playingSession())
	err := NewTextRenderer(&failAfterWriter{n: 2}).Render(res)
	require.Error(t, err)
	assert.EqualError(t, err, "pipe closed")
}
