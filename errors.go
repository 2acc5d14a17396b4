package respbuild

import "errors"

var (
	ErrInvalidStatus      = errors.New("invalid status code")
	ErrInvalidVersion     = errors.New("unsupported HTTP version")
	ErrInvalidHeaderName  = errors.New("invalid header name")
	ErrInvalidHeaderValue = errors.New("invalid header value")
	ErrInvalidPlaylist    = errors.New("invalid m3u8 playlist")
	ErrNoRoute            = errors.New("no stub registered for request")
)
