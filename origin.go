package respbuild

import "net/url"

// Origin marks the URL a response was obtained from.
// It is metadata carried beside the response, never a header.
// The zero value carries no URL.
type Origin struct {
	url *url.URL
}

// NewOrigin wraps u. The URL is copied, so later changes to u are not seen.
func NewOrigin(u *url.URL) Origin {
	return Origin{url: cloneURL(u)}
}

// URL returns a copy of the wrapped URL, or nil for the zero Origin.
func (o Origin) URL() *url.URL {
	return cloneURL(o.url)
}

// IsZero reports whether o carries no URL.
func (o Origin) IsZero() bool {
	return o.url == nil
}

func (o Origin) String() string {
	if o.url == nil {
		return ""
	}
	return o.url.String()
}

// Equal reports whether both origins wrap structurally equal URLs.
func (o Origin) Equal(other Origin) bool {
	if o.url == nil || other.url == nil {
		return o.url == other.url
	}
	return urlEqual(o.url, other.url)
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}
	return &c
}

func urlEqual(a, b *url.URL) bool {
	if a.User.String() != b.User.String() {
		return false
	}
	ac, bc := *a, *b
	ac.User, bc.User = nil, nil
	return ac == bc
}
