package respbuild

import (
	"fmt"
	"io"

	"github.com/grafov/m3u8"
)

const playlistContentType = "application/vnd.apple.mpegurl"

// BodyPlaylist finishes the response with the encoded playlist as its body.
// The response gets the HLS Content-Type unless the builder already has one;
// the builder's own headers are not changed.
func (b *Builder) BodyPlaylist(p m3u8.Playlist) (*Response, error) {
	if b.err != nil {
		return nil, b.err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: nil playlist", ErrInvalidPlaylist)
	}
	resp, err := b.BodyBytes(p.Encode().Bytes())
	if err != nil {
		return nil, err
	}
	if resp.Header.Get("Content-Type") == "" {
		resp.Header.Set("Content-Type", playlistContentType)
	}
	return resp, nil
}

// DecodePlaylist parses an m3u8 playlist, master or media.
func DecodePlaylist(r io.Reader) (m3u8.Playlist, error) {
	p, _, err := m3u8.DecodeFrom(r, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlaylist, err)
	}
	return p, nil
}
