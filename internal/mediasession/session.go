package mediasession

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNoCurrentSession is returned by Manager.CurrentSession when the platform
// reports no active media source.
var ErrNoCurrentSession = errors.New("no current media session")

// Manager is the entry point into the platform's media transport facility.
type Manager interface {
	// CurrentSession returns the session of the application currently deemed
	// the active media source. The error wraps ErrNoCurrentSession when no
	// application is playing or paused.
	CurrentSession(ctx context.Context) (Session, error)
}

// Session is a read-only handle to one media-producing application. The three
// snapshot fetches are independent: one failing must not prevent the others.
type Session interface {
	// SourceAppID identifies the owning application in platform terms:
	// AppUserModelId on Windows, the MPRIS bus name on Linux, the bundle
	// identifier on macOS.
	SourceAppID() string

	MediaProperties(ctx context.Context) (*MediaProperties, error)
	PlaybackInfo(ctx context.Context) (*PlaybackInfo, error)
	TimelineProperties(ctx context.Context) (*TimelineProperties, error)
}

// MediaProperties is the metadata snapshot for the current item.
type MediaProperties struct {
	Title           string
	Subtitle        string
	Artist          string
	AlbumTitle      string
	AlbumArtist     string
	AlbumTrackCount int32
	TrackNumber     int32
	Genres          []string
	PlaybackType    PlaybackType

	// Thumbnail is nil when the platform reports no artwork.
	Thumbnail Thumbnail
}

// PlaybackInfo is the status-and-capabilities snapshot. Pointer fields are
// nil when the platform does not report them for the current session.
type PlaybackInfo struct {
	Status         PlaybackStatus
	Controls       PlaybackControls
	AutoRepeatMode *AutoRepeatMode
	ShuffleActive  *bool
	Rate           *float64
	Type           *PlaybackType
}

// TimelineProperties is the position snapshot. All fields are always
// reported; a zero LastUpdated means the platform never stamped one.
type TimelineProperties struct {
	StartTime   time.Duration
	EndTime     time.Duration
	MinSeekTime time.Duration
	MaxSeekTime time.Duration
	Position    time.Duration
	LastUpdated time.Time
}

// LastUpdatedUnixNano is the raw integer form of the timestamp: Unix
// nanoseconds, or 0 when the platform never stamped one.
func (t TimelineProperties) LastUpdatedUnixNano() int64 {
	if t.LastUpdated.IsZero() {
		return 0
	}
	return t.LastUpdated.UnixNano()
}

// Thumbnail opens the session's artwork as a readable stream.
type Thumbnail interface {
	Open(ctx context.Context) (*ThumbnailStream, error)
}

// ThumbnailStream carries the artwork's declared content type and byte size
// on top of the raw stream. The dump reads the two attributes and closes the
// stream without consuming the bytes.
type ThumbnailStream struct {
	contentType string
	size        uint64
	body        io.ReadCloser
}

// NewThumbnailStream wraps body with its declared attributes. A nil body is
// allowed for platforms that report attributes without transporting bytes.
func NewThumbnailStream(contentType string, size uint64, body io.ReadCloser) *ThumbnailStream {
	return &ThumbnailStream{contentType: contentType, size: size, body: body}
}

// ContentType returns the declared MIME type, e.g. "image/png".
func (s *ThumbnailStream) ContentType() string { return s.contentType }

// Size returns the declared byte size.
func (s *ThumbnailStream) Size() uint64 { return s.size }

func (s *ThumbnailStream) Read(p []byte) (int, error) {
	if s.body == nil {
		return 0, io.EOF
	}
	return s.body.Read(p)
}

func (s *ThumbnailStream) Close() error {
	if s.body == nil {
		return nil
	}
	return s.body.Close()
}
