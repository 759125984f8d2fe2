// Package sessiontest provides in-memory media-session fakes so dump and CLI
// behavior can be tested without a real OS media session.
package sessiontest

import (
	"bytes"
	"context"
	"io"

	"npdump/internal/mediasession"
)

// Manager returns a fixed session or a fixed error.
type Manager struct {
	Session mediasession.Session
	Err     error
}

func (m *Manager) CurrentSession(ctx context.Context) (mediasession.Session, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Session, nil
}

// Session serves canned snapshots. Each section can independently be an
// error, mirroring how the platform isolates section failures.
type Session struct {
	AppID       string
	Media       *mediasession.MediaProperties
	MediaErr    error
	Playback    *mediasession.PlaybackInfo
	PlaybackErr error
	Timeline    *mediasession.TimelineProperties
	TimelineErr error
}

func (s *Session) SourceAppID() string { return s.AppID }

func (s *Session) MediaProperties(ctx context.Context) (*mediasession.MediaProperties, error) {
	if s.MediaErr != nil {
		return nil, s.MediaErr
	}
	return s.Media, nil
}

func (s *Session) PlaybackInfo(ctx context.Context) (*mediasession.PlaybackInfo, error) {
	if s.PlaybackErr != nil {
		return nil, s.PlaybackErr
	}
	return s.Playback, nil
}

func (s *Session) TimelineProperties(ctx context.Context) (*mediasession.TimelineProperties, error) {
	if s.TimelineErr != nil {
		return nil, s.TimelineErr
	}
	return s.Timeline, nil
}

// Thumbnail opens to a stream over Data with the declared attributes.
type Thumbnail struct {
	ContentType string
	Size        uint64
	Data        []byte
	Err         error
}

func (t *Thumbnail) Open(ctx context.Context) (*mediasession.ThumbnailStream, error) {
	if t.Err != nil {
		return nil, t.Err
	}
	var body io.ReadCloser
	if t.Data != nil {
		body = io.NopCloser(bytes.NewReader(t.Data))
	}
	return mediasession.NewThumbnailStream(t.ContentType, t.Size, body), nil
}
