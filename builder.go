package respbuild

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hydrz/respbuild/utils"
	"golang.org/x/net/http/httpguts"
)

// Builder accumulates the parts of an HTTP response and produces a Response
// once a body is attached. Methods return the builder for chaining.
//
// The first invalid input latches an error: later status, version and header
// calls become no-ops and the error is returned when the body is attached.
// A Builder must not be used from several goroutines at once.
type Builder struct {
	status     int
	protoMajor int
	protoMinor int
	header     http.Header
	origin     Origin
	err        error
}

// NewBuilder returns a builder for a 200 OK HTTP/1.1 response.
func NewBuilder() *Builder {
	return &Builder{
		status:     http.StatusOK,
		protoMajor: 1,
		protoMinor: 1,
		header:     make(http.Header),
	}
}

// Status sets the status code. Codes outside 100-999 latch ErrInvalidStatus.
func (b *Builder) Status(code int) *Builder {
	if b.err != nil {
		return b
	}
	if code < 100 || code > 999 {
		b.err = fmt.Errorf("%w: %d", ErrInvalidStatus, code)
		return b
	}
	b.status = code
	return b
}

// Version sets the protocol version. HTTP/1.0, 1.1, 2 and 3 are accepted.
func (b *Builder) Version(major, minor int) *Builder {
	if b.err != nil {
		return b
	}
	switch {
	case major == 1 && (minor == 0 || minor == 1):
	case (major == 2 || major == 3) && minor == 0:
	default:
		b.err = fmt.Errorf("%w: HTTP/%d.%d", ErrInvalidVersion, major, minor)
		return b
	}
	b.protoMajor, b.protoMinor = major, minor
	return b
}

// Header appends a value under name, keeping any values already set.
func (b *Builder) Header(name, value string) *Builder {
	if b.err != nil {
		return b
	}
	if !httpguts.ValidHeaderFieldName(name) {
		b.err = fmt.Errorf("%w: %q", ErrInvalidHeaderName, name)
		return b
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		b.err = fmt.Errorf("%w: %q", ErrInvalidHeaderValue, value)
		return b
	}
	b.header.Add(name, value)
	return b
}

// Headers merges h into the headers set so far. Each name present in h
// replaces every value the builder already holds for it; other names are
// kept. The merge is skipped when the builder has failed.
func (b *Builder) Headers(h http.Header) *Builder {
	if target := b.HeadersMut(); target != nil {
		utils.ReplaceHeader(target, h)
	}
	return b
}

// URL attaches u as the response origin, replacing any earlier one.
// A nil u removes it. The URL is stored as given, without validation.
func (b *Builder) URL(u *url.URL) *Builder {
	b.origin = NewOrigin(u)
	return b
}

// HeadersMut returns the header map being built, or nil once the builder
// has failed.
func (b *Builder) HeadersMut() http.Header {
	if b.err != nil {
		return nil
	}
	return b.header
}

// Err returns the first error recorded by the builder.
func (b *Builder) Err() error {
	return b.err
}

// Body finishes the response with r as its body. A nil r yields an empty
// body of unknown length.
func (b *Builder) Body(r io.Reader) (*Response, error) {
	if r == nil {
		return b.build(http.NoBody, 0)
	}
	return b.build(r, -1)
}

// BodyBytes finishes the response with p as its body.
func (b *Builder) BodyBytes(p []byte) (*Response, error) {
	return b.build(bytes.NewReader(p), int64(len(p)))
}

// BodyString finishes the response with s as its body.
func (b *Builder) BodyString(s string) (*Response, error) {
	return b.build(strings.NewReader(s), int64(len(s)))
}

// Empty finishes the response without a body.
func (b *Builder) Empty() (*Response, error) {
	return b.build(http.NoBody, 0)
}

func (b *Builder) build(body io.Reader, length int64) (*Response, error) {
	if b.err != nil {
		return nil, b.err
	}
	rc, ok := body.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(body)
	}
	resp := &http.Response{
		Status:        fmt.Sprintf("%d %s", b.status, http.StatusText(b.status)),
		StatusCode:    b.status,
		Proto:         fmt.Sprintf("HTTP/%d.%d", b.protoMajor, b.protoMinor),
		ProtoMajor:    b.protoMajor,
		ProtoMinor:    b.protoMinor,
		Header:        b.header.Clone(),
		Body:          rc,
		ContentLength: length,
	}
	if http.StatusText(b.status) == "" {
		resp.Status = fmt.Sprintf("%d status code %d", b.status, b.status)
	}
	return &Response{Response: resp, origin: b.origin}, nil
}
