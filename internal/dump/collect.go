// Package dump fetches the current media session's snapshots and renders
// them as a structured, line-oriented report.
package dump

import (
	"context"
	"errors"

	"npdump/internal/mediasession"
)

var errNoThumbnail = errors.New("no thumbnail available")

// ThumbnailInfo is what the dump keeps from an opened thumbnail stream: the
// two declared attributes. The stream's bytes are never consumed.
type ThumbnailInfo struct {
	ContentType string
	Size        uint64
}

// Result carries one run's snapshots. Each section error sits next to its
// section so renderers can interleave error text exactly where the failing
// section's fields would have appeared.
type Result struct {
	AppID string

	Playback    *mediasession.PlaybackInfo
	PlaybackErr error

	Media     *mediasession.MediaProperties
	MediaErr  error
	Thumbnail *ThumbnailInfo
	ThumbErr  error

	Timeline    *mediasession.TimelineProperties
	TimelineErr error
}

// Collect fetches the three sections in dump order, strictly sequentially.
// Section failures are recorded, never returned: a partial Result still
// renders, with the error text standing in for the lost section.
func Collect(ctx context.Context, session mediasession.Session) *Result {
	res := &Result{AppID: session.SourceAppID()}

	res.Playback, res.PlaybackErr = session.PlaybackInfo(ctx)
	if res.PlaybackErr == nil && res.Playback == nil {
		res.PlaybackErr = errors.New("playback info unavailable")
	}

	res.Media, res.MediaErr = session.MediaProperties(ctx)
	if res.MediaErr == nil && res.Media == nil {
		res.MediaErr = errors.New("media properties unavailable")
	}
	if res.MediaErr == nil {
		res.Thumbnail, res.ThumbErr = openThumbnail(ctx, res.Media.Thumbnail)
	}

	res.Timeline, res.TimelineErr = session.TimelineProperties(ctx)
	if res.TimelineErr == nil && res.Timeline == nil {
		res.TimelineErr = errors.New("timeline properties unavailable")
	}

	return res
}

// openThumbnail reads the declared content type and size off the artwork
// stream and closes it immediately.
func openThumbnail(ctx context.Context, thumb mediasession.Thumbnail) (*ThumbnailInfo, error) {
	if thumb == nil {
		return nil, errNoThumbnail
	}
	stream, err := thumb.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer stream.Close()
	return &ThumbnailInfo{ContentType: stream.ContentType(), Size: stream.Size()}, nil
}
