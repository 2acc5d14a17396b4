package respbuild

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestBuilderURL(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		u := mustParse(t, "http://example.com")
		resp, err := NewBuilder().Status(http.StatusOK).URL(u).Empty()
		require.NoError(t, err)

		origin, ok := resp.Origin()
		require.True(t, ok)
		assert.True(t, origin.Equal(NewOrigin(u)))
		assert.Equal(t, u, resp.URL())
	})

	t.Run("no normalisation", func(t *testing.T) {
		u := mustParse(t, "HTTP://User:pw@Example.COM:8080/a/../b?q=1#frag")
		resp, err := NewBuilder().URL(u).Empty()
		require.NoError(t, err)
		assert.Equal(t, u.String(), resp.URL().String())
		assert.Equal(t, u, resp.URL())
	})

	t.Run("last write wins", func(t *testing.T) {
		first := mustParse(t, "http://first.example")
		second := mustParse(t, "http://second.example")
		resp, err := NewBuilder().URL(first).URL(second).Empty()
		require.NoError(t, err)
		assert.Equal(t, second, resp.URL())
	})

	t.Run("nil clears", func(t *testing.T) {
		resp, err := NewBuilder().URL(mustParse(t, "http://example.com")).URL(nil).Empty()
		require.NoError(t, err)
		_, ok := resp.Origin()
		assert.False(t, ok)
		assert.Nil(t, resp.URL())
	})

	t.Run("absent by default", func(t *testing.T) {
		resp, err := NewBuilder().Empty()
		require.NoError(t, err)
		_, ok := resp.Origin()
		assert.False(t, ok)
	})

	t.Run("caller mutation does not leak", func(t *testing.T) {
		u := mustParse(t, "http://example.com/a")
		b := NewBuilder().URL(u)
		u.Path = "/changed"
		resp, err := b.Empty()
		require.NoError(t, err)
		assert.Equal(t, "/a", resp.URL().Path)
	})

	t.Run("not a header", func(t *testing.T) {
		resp, err := NewBuilder().URL(mustParse(t, "http://example.com")).Empty()
		require.NoError(t, err)
		assert.Empty(t, resp.Header)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("kept on failed builder", func(t *testing.T) {
		b := NewBuilder().Status(1).URL(mustParse(t, "http://example.com"))
		assert.True(t, errors.Is(b.Err(), ErrInvalidStatus))
		assert.Equal(t, "http://example.com", b.origin.String())
	})
}

func TestBuilderHeaders(t *testing.T) {
	t.Run("replaces per name and keeps others", func(t *testing.T) {
		resp, err := NewBuilder().
			Header("A", "1").
			Header("B", "2").
			Headers(http.Header{"A": {"9"}, "C": {"3"}}).
			Empty()
		require.NoError(t, err)
		assert.Equal(t, http.Header{"A": {"9"}, "B": {"2"}, "C": {"3"}}, resp.Header)
	})

	t.Run("multi-value replacement", func(t *testing.T) {
		resp, err := NewBuilder().
			Header("X", "1").
			Headers(http.Header{"X": {"a", "b"}}).
			Empty()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, resp.Header.Values("X"))
	})

	t.Run("idempotent", func(t *testing.T) {
		merge := http.Header{"A": {"9", "10"}, "C": {"3"}}
		once, err := NewBuilder().Header("A", "1").Header("B", "2").Headers(merge).Empty()
		require.NoError(t, err)
		twice, err := NewBuilder().Header("A", "1").Header("B", "2").Headers(merge).Headers(merge).Empty()
		require.NoError(t, err)
		assert.Equal(t, once.Header, twice.Header)
	})

	t.Run("empty merge is a no-op", func(t *testing.T) {
		resp, err := NewBuilder().Header("A", "1").Headers(http.Header{}).Headers(nil).Empty()
		require.NoError(t, err)
		assert.Equal(t, http.Header{"A": {"1"}}, resp.Header)
	})

	t.Run("content headers", func(t *testing.T) {
		resp, err := NewBuilder().
			Status(http.StatusOK).
			Header("Content-Type", "application/json").
			Header("Content-Length", "42").
			Headers(http.Header{
				"Content-Type": {"xyz"},
				"Etag":         {"abcd"},
			}).
			Empty()
		require.NoError(t, err)
		assert.Equal(t, http.Header{
			"Content-Type":   {"xyz"},
			"Content-Length": {"42"},
			"Etag":           {"abcd"},
		}, resp.Header)
	})

	t.Run("skipped on failed builder", func(t *testing.T) {
		b := NewBuilder().Header("A", "1").Header("bad name", "x")
		require.Error(t, b.Err())
		err := b.Err()

		b.Headers(http.Header{"A": {"9"}})
		assert.Same(t, err, b.Err())
		assert.Nil(t, b.HeadersMut())
		assert.Equal(t, []string{"1"}, b.header.Values("A"))

		_, buildErr := b.Empty()
		assert.ErrorIs(t, buildErr, ErrInvalidHeaderName)
	})

	t.Run("replaces non-canonical spelling set through HeadersMut", func(t *testing.T) {
		b := NewBuilder()
		b.HeadersMut()["x-a"] = []string{"old"}
		resp, err := b.Headers(http.Header{"X-A": {"new"}}).Empty()
		require.NoError(t, err)
		assert.Equal(t, http.Header{"X-A": {"new"}}, resp.Header)
	})

	t.Run("later header calls append", func(t *testing.T) {
		resp, err := NewBuilder().
			Headers(http.Header{"Set-Cookie": {"a=1"}}).
			Header("Set-Cookie", "b=2").
			Empty()
		require.NoError(t, err)
		assert.Equal(t, []string{"a=1", "b=2"}, resp.Header.Values("Set-Cookie"))
	})
}

func TestBuilderChaining(t *testing.T) {
	u := mustParse(t, "https://example.com/resource")
	resp, err := NewBuilder().
		URL(u).
		Headers(http.Header{"Etag": {"abcd"}}).
		Status(http.StatusCreated).
		Header("X-Extra", "1").
		Headers(http.Header{"Cache-Control": {"no-store"}}).
		Version(2, 0).
		BodyString("created")
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "201 Created", resp.Status)
	assert.Equal(t, "HTTP/2.0", resp.Proto)
	assert.Equal(t, http.Header{
		"Etag":          {"abcd"},
		"X-Extra":       {"1"},
		"Cache-Control": {"no-store"},
	}, resp.Header)
	assert.Equal(t, u, resp.URL())

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "created", string(body))
	assert.EqualValues(t, len("created"), resp.ContentLength)
}

func TestBuilderValidation(t *testing.T) {
	tests := []struct {
		name    string
		build   func(b *Builder) *Builder
		wantErr error
	}{
		{"status too low", func(b *Builder) *Builder { return b.Status(99) }, ErrInvalidStatus},
		{"status too high", func(b *Builder) *Builder { return b.Status(1000) }, ErrInvalidStatus},
		{"version", func(b *Builder) *Builder { return b.Version(1, 2) }, ErrInvalidVersion},
		{"header name", func(b *Builder) *Builder { return b.Header("", "x") }, ErrInvalidHeaderName},
		{"header value", func(b *Builder) *Builder { return b.Header("X", "a\nb") }, ErrInvalidHeaderValue},
		{"first error is kept", func(b *Builder) *Builder { return b.Status(0).Header("", "x") }, ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.build(NewBuilder())
			assert.ErrorIs(t, b.Err(), tt.wantErr)

			resp, err := b.BodyString("ignored")
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuilderBodies(t *testing.T) {
	t.Run("reader has unknown length", func(t *testing.T) {
		resp, err := NewBuilder().Body(strings.NewReader("abc"))
		require.NoError(t, err)
		assert.EqualValues(t, -1, resp.ContentLength)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "abc", string(body))
	})

	t.Run("nil reader", func(t *testing.T) {
		resp, err := NewBuilder().Body(nil)
		require.NoError(t, err)
		assert.Equal(t, http.NoBody, resp.Body)
		assert.Zero(t, resp.ContentLength)
	})

	t.Run("bytes", func(t *testing.T) {
		resp, err := NewBuilder().BodyBytes([]byte("xyz"))
		require.NoError(t, err)
		assert.EqualValues(t, 3, resp.ContentLength)
	})

	t.Run("defaults", func(t *testing.T) {
		resp, err := NewBuilder().Empty()
		require.NoError(t, err)
		assert.Equal(t, "200 OK", resp.Status)
		assert.Equal(t, "HTTP/1.1", resp.Proto)
		assert.NotNil(t, resp.Header)
	})

	t.Run("unknown status text", func(t *testing.T) {
		resp, err := NewBuilder().Status(599).Empty()
		require.NoError(t, err)
		assert.Equal(t, "599 status code 599", resp.Status)
	})

	t.Run("responses do not share headers", func(t *testing.T) {
		b := NewBuilder().Header("A", "1")
		first, err := b.Empty()
		require.NoError(t, err)
		b.Headers(http.Header{"A": {"2"}})
		second, err := b.Empty()
		require.NoError(t, err)
		assert.Equal(t, "1", first.Header.Get("A"))
		assert.Equal(t, "2", second.Header.Get("A"))
	})
}
