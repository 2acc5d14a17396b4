package respbuild

import (
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/hydrz/respbuild/utils"
)

// NewClient returns a resty client that sends its requests through rt,
// usually a *Transport. Unless o.NoCache is set, responses are cached in
// memory or, with o.CacheDir, on disk.
func NewClient(o Option, rt http.RoundTripper) *resty.Client {
	client := resty.New()

	if o.Timeout > 0 {
		client.SetTimeout(o.Timeout)
	}

	if o.RetryCount > 0 {
		client.SetRetryCount(o.RetryCount)
	}

	if o.Headers != nil {
		client.Header = utils.MergeHeader(client.Header, o.Headers)
	}

	if o.UserAgent != "" {
		client.SetHeader("User-Agent", o.UserAgent)
	}

	if o.Debug {
		client.SetDebug(true)
	}

	if rt == nil {
		rt = http.DefaultTransport
	}
	if !o.NoCache {
		var cache httpcache.Cache = httpcache.NewMemoryCache()
		if o.CacheDir != "" {
			cache = diskcache.New(o.CacheDir)
		}
		transport := httpcache.NewTransport(cache)
		transport.Transport = rt
		rt = transport
	}
	client.SetTransport(rt)

	return client
}
