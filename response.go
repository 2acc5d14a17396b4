package respbuild

import (
	"net/http"
	"net/url"
)

// Response is an *http.Response together with the origin it was built with.
type Response struct {
	*http.Response
	origin Origin
}

// Origin returns the origin attached with Builder.URL, if any.
func (r *Response) Origin() (Origin, bool) {
	return r.origin, !r.origin.IsZero()
}

// URL returns the attached origin URL, or nil.
func (r *Response) URL() *url.URL {
	return r.origin.URL()
}

// OriginOf returns the origin of a response handed out by a Transport.
func OriginOf(resp *http.Response) (*url.URL, bool) {
	if resp == nil || resp.Request == nil || resp.Request.URL == nil {
		return nil, false
	}
	return cloneURL(resp.Request.URL), true
}
