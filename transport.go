package respbuild

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// RespondFunc produces the response for a matched request. The builder it
// receives already carries the request URL as origin; calling b.URL
// overrides it, as a redirect would.
type RespondFunc func(req *http.Request, b *Builder) (*Response, error)

// Transport is an http.RoundTripper that answers requests from registered
// stubs instead of the network.
type Transport struct {
	logger *slog.Logger
	mu     sync.RWMutex
	routes map[string]RespondFunc
}

// NewTransport creates an empty Transport. A nil logger discards output.
func NewTransport(logger *slog.Logger) *Transport {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Transport{
		logger: logger,
		routes: make(map[string]RespondFunc),
	}
}

// Handle registers fn for method and rawURL. An empty method matches any
// method. Query and fragment of rawURL are ignored when matching.
func (t *Transport) Handle(method, rawURL string, fn RespondFunc) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse stub URL %s: %w", rawURL, err)
	}
	if fn == nil {
		return errors.New("nil respond func")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.routes[routeKey(method, u)] = fn
	return nil
}

// RoundTrip implements http.RoundTripper. The request body is closed once
// the handler returns, so handlers must read it before returning.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		defer req.Body.Close()
	}
	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	fn, ok := t.lookup(req.Method, req.URL)
	if !ok {
		t.logger.Debug("No stub for request", "method", req.Method, "url", req.URL.String())
		return nil, fmt.Errorf("%w: %s %s", ErrNoRoute, req.Method, req.URL)
	}

	resp, err := fn(req, NewBuilder().URL(req.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to build stub response for %s %s: %w", req.Method, req.URL, err)
	}
	if resp == nil || resp.Response == nil {
		return nil, fmt.Errorf("stub for %s %s returned no response", req.Method, req.URL)
	}
	if err := req.Context().Err(); err != nil {
		resp.Body.Close()
		return nil, err
	}

	resp.Request = req
	if origin := resp.URL(); origin != nil && !urlEqual(origin, req.URL) {
		redirected := req.WithContext(req.Context())
		redirected.URL = origin
		resp.Request = redirected
	}

	t.logger.Debug("Served stub response", "method", req.Method, "url", req.URL.String(), "status", resp.StatusCode)
	return resp.Response, nil
}

func (t *Transport) lookup(method string, u *url.URL) (RespondFunc, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if fn, ok := t.routes[routeKey(method, u)]; ok {
		return fn, true
	}
	fn, ok := t.routes[routeKey("", u)]
	return fn, ok
}

func routeKey(method string, u *url.URL) string {
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return strings.ToUpper(method) + " " + strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + path
}

// Static returns a RespondFunc that always answers with the given status,
// headers and body.
func Static(status int, header http.Header, body string) RespondFunc {
	return func(_ *http.Request, b *Builder) (*Response, error) {
		return b.Status(status).Headers(header).BodyString(body)
	}
}
