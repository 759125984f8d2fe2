package applescript

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"npdump/internal/mediasession"
)

// stubOsascript swaps the real binary for a shell script that answers
// each probe by matching distinctive fragments of the script text it was
// handed.
func stubOsascript(t *testing.T, script string) {
	t.Helper()
	stubDir := t.TempDir()
	path := filepath.Join(stubDir, "osascript")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	t.Setenv("PATH", stubDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func mockClockAt(sec int64) *clock.Mock {
	mock := clock.NewMock()
	mock.Set(time.Unix(sec, 0))
	return mock
}

func TestCurrentSession_MusicActive_WithStubOsascript(t *testing.T) {
	stubOsascript(t, `#!/bin/sh
script="$2"
case "$script" in
*'process "Music"'*) printf 'playing\n' ;;
*'track count'*) printf 'Paranoid Android\nRadiohead\nOK Computer\nRadiohead\nAlternative\n2\n12\n' ;;
*'song repeat'*) printf 'playing\ntrue\none\n' ;;
*'player position'*) printf '243.5\n35.1\n' ;;
*) echo "unexpected script" >&2; exit 1 ;;
esac
`)

	clk := mockClockAt(1700000000)
	sess, err := NewManager(clk).CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "com.apple.Music", sess.SourceAppID())

	media, err := sess.MediaProperties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Paranoid Android", media.Title)
	assert.Equal(t, []string{"Alternative"}, media.Genres)
	assert.Equal(t, int32(12), media.AlbumTrackCount)
	assert.Nil(t, media.Thumbnail)

	playback, err := sess.PlaybackInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mediasession.PlaybackStatusPlaying, playback.Status)
	require.NotNil(t, playback.AutoRepeatMode)
	assert.Equal(t, mediasession.AutoRepeatModeTrack, *playback.AutoRepeatMode)
	assert.True(t, playback.Controls.IsStopEnabled)

	timeline, err := sess.TimelineProperties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 243500*time.Millisecond, timeline.EndTime)
	assert.Equal(t, 35100*time.Millisecond, timeline.Position)
	assert.True(t, timeline.LastUpdated.Equal(time.Unix(1700000000, 0)))
}

func TestCurrentSession_SpotifyActive_WithStubOsascript(t *testing.T) {
	stubOsascript(t, `#!/bin/sh
script="$2"
case "$script" in
*'process "Music"'*) printf 'absent\n' ;;
*'process "Spotify"'*) printf 'playing\n' ;;
*'artwork url'*) printf 'Song\nArtist\nAlbum\nArtist\n\n3\n0\nhttps://i.scdn.co/image/abc123\n' ;;
*'shuffling'*) printf 'playing\nfalse\ntrue\n' ;;
*'player position'*) printf '243500\n35.1\n' ;;
*) echo "unexpected script" >&2; exit 1 ;;
esac
`)

	clk := mockClockAt(1700000000)
	sess, err := NewManager(clk).CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "com.spotify.client", sess.SourceAppID())

	media, err := sess.MediaProperties(context.Background())
	require.NoError(t, err)
	assert.Empty(t, media.Genres)
	assert.NotNil(t, media.Thumbnail)

	playback, err := sess.PlaybackInfo(context.Background())
	require.NoError(t, err)
	require.NotNil(t, playback.AutoRepeatMode)
	assert.Equal(t, mediasession.AutoRepeatModeList, *playback.AutoRepeatMode)
	assert.False(t, playback.Controls.IsStopEnabled)

	timeline, err := sess.TimelineProperties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 243500*time.Millisecond, timeline.EndTime)
}

func TestCurrentSession_NoPlayer_WithStubOsascript(t *testing.T) {
	stubOsascript(t, `#!/bin/sh
script="$2"
case "$script" in
*'process "Music"'*) printf 'absent\n' ;;
*'process "Spotify"'*) printf 'stopped\n' ;;
*) echo "unexpected script" >&2; exit 1 ;;
esac
`)

	_, err := NewManager(mockClockAt(1700000000)).CurrentSession(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, mediasession.ErrNoCurrentSession)
}
