// Package artwork opens player-reported art URLs as thumbnail streams.
// Players hand out either local file paths (file:) or CDN links (http/https);
// the dump only ever reads the stream's declared content type and size.
package artwork

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"npdump/internal/mediasession"
)

// FromURL wraps an art URL as a lazily-opened thumbnail.
func FromURL(rawURL string) mediasession.Thumbnail {
	return &urlThumbnail{url: rawURL}
}

type urlThumbnail struct {
	url string
}

func (t *urlThumbnail) Open(ctx context.Context) (*mediasession.ThumbnailStream, error) {
	u, err := url.Parse(t.url)
	if err != nil {
		return nil, fmt.Errorf("parse art url: %w", err)
	}

	switch u.Scheme {
	case "file", "":
		return openFile(u.Path)
	case "http", "https":
		return openHTTP(ctx, t.url)
	}
	return nil, fmt.Errorf("unsupported art url scheme %q", u.Scheme)
}

// openFile sniffs the content type from the first 512 bytes and stitches
// them back in front of the remaining stream.
func openFile(path string) (*mediasession.ThumbnailStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	header := make([]byte, 512)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		f.Close()
		return nil, err
	}

	body := readCloser{
		Reader: io.MultiReader(bytes.NewReader(header[:n]), f),
		Closer: f,
	}
	return mediasession.NewThumbnailStream(http.DetectContentType(header[:n]), uint64(info.Size()), body), nil
}

func openHTTP(ctx context.Context, rawURL string) (*mediasession.ThumbnailStream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch art: %s", resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	var size uint64
	if resp.ContentLength > 0 {
		size = uint64(resp.ContentLength)
	}
	return mediasession.NewThumbnailStream(contentType, size, resp.Body), nil
}

type readCloser struct {
	io.Reader
	io.Closer
}
