package dump

import (
	"fmt"
	"io"
	"strings"

	"npdump/internal/mediasession"
)

const indentWidth = 4

// TextRenderer writes the human-readable dump: one field per line, four
// spaces per indentation depth, strings and enum names quoted, numbers and
// booleans bare.
type TextRenderer struct {
	w   io.Writer
	err error
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

// Render writes the full dump for one collected result. The session header
// comes first, then playback info, media properties and timeline properties;
// a failed section renders its error text in place of its fields.
func (r *TextRenderer) Render(res *Result) error {
	r.line(0, "app_user_model_id: %q", res.AppID)
	r.blank()

	r.line(0, "playback_info:")
	if res.PlaybackErr != nil {
		r.line(1, "error: %s", res.PlaybackErr)
	} else {
		r.writePlaybackInfo(res.Playback, 1)
	}

	r.line(0, "media_properties:")
	if res.MediaErr != nil {
		r.line(1, "error: %s", res.MediaErr)
	} else {
		r.writeMediaProperties(res, 1)
	}

	r.line(0, "timeline_properties:")
	if res.TimelineErr != nil {
		r.line(1, "error: %s", res.TimelineErr)
	} else {
		r.writeTimelineProperties(res.Timeline, 1)
	}

	return r.err
}

func (r *TextRenderer) writePlaybackInfo(info *mediasession.PlaybackInfo, depth int) {
	r.line(depth, "playback_status: %q", info.Status.String())
	if info.AutoRepeatMode != nil {
		r.line(depth, "auto_repeat_mode: %q", info.AutoRepeatMode.String())
	}
	if info.ShuffleActive != nil {
		r.line(depth, "is_shuffle_active: %t", *info.ShuffleActive)
	}
	if info.Rate != nil {
		r.line(depth, "playback_rate: %gx", *info.Rate)
	}
	if info.Type != nil {
		r.line(depth, "playback_type: %q", info.Type.String())
	}
	r.line(depth, "controls:")
	r.writeControls(info.Controls, depth+1)
}

func (r *TextRenderer) writeControls(controls mediasession.PlaybackControls, depth int) {
	for _, flag := range controls.Flags() {
		r.line(depth, "%s: %t", flag.Name, flag.Enabled)
	}
}

func (r *TextRenderer) writeMediaProperties(res *Result, depth int) {
	m := res.Media
	r.line(depth, "title: %q", m.Title)
	r.line(depth, "subtitle: %q", m.Subtitle)
	r.line(depth, "artist: %q", m.Artist)
	r.line(depth, "album_title: %q", m.AlbumTitle)
	r.line(depth, "album_artist: %q", m.AlbumArtist)
	r.line(depth, "album_track_count: %d", m.AlbumTrackCount)
	r.line(depth, "track_number: %d", m.TrackNumber)
	r.line(depth, "genres:")
	for _, genre := range m.Genres {
		r.line(depth+1, "- %s", genre)
	}
	r.line(depth, "playback_type: %q", m.PlaybackType.String())
	r.line(depth, "thumbnail:")
	switch {
	case res.ThumbErr != nil:
		r.line(depth+1, "error: %s", res.ThumbErr)
	case res.Thumbnail != nil:
		r.line(depth+1, "content_type: %s", res.Thumbnail.ContentType)
		r.line(depth+1, "size: %d", res.Thumbnail.Size)
	}
}

func (r *TextRenderer) writeTimelineProperties(tl *mediasession.TimelineProperties, depth int) {
	r.line(depth, "start_time: %d", tl.StartTime.Nanoseconds())
	r.line(depth, "end_time: %d", tl.EndTime.Nanoseconds())
	r.line(depth, "min_seek_time: %d", tl.MinSeekTime.Nanoseconds())
	r.line(depth, "max_seek_time: %d", tl.MaxSeekTime.Nanoseconds())
	r.line(depth, "position: %d", tl.Position.Nanoseconds())
	r.line(depth, "last_updated_time: %d", tl.LastUpdatedUnixNano())
}

// line writes one field line with 4*depth leading spaces. The first write
// error sticks; later lines become no-ops so Render can report it once.
func (r *TextRenderer) line(depth int, format string, args ...interface{}) {
	if r.err != nil {
		return
	}
	prefix := strings.Repeat(" ", depth*indentWidth)
	if _, err := fmt.Fprintf(r.w, prefix+format+"\n", args...); err != nil {
		r.err = err
	}
}

func (r *TextRenderer) blank() {
	if r.err != nil {
		return
	}
	if _, err := fmt.Fprintln(r.w); err != nil {
		r.err = err
	}
}
