package respbuild

import (
	"net/http"
	"time"

	"github.com/hydrz/respbuild/utils"
)

const defaultUserAgent = "respbuild/1.0"

// Option holds the settings shared by the client and the command line tool.
// Only Progress, Debug, Verbose and Silent are bound to cmd/respbuild flags;
// the rest configure NewClient.
type Option struct {
	Headers    http.Header   // Default request headers sent by the client
	UserAgent  string        // Client user agent
	RetryCount int           // Number of retry attempts
	Timeout    time.Duration // Request timeout
	CacheDir   string        // Directory for the disk cache; empty keeps the cache in memory
	NoCache    bool          // Disable HTTP caching
	Progress   bool          // Report body progress (--progress)
	Debug      bool          // Enable debug logging (--debug, -d)
	Verbose    bool          // Enable verbose output (--verbose, -v)
	Silent     bool          // Suppress all output except errors (--silent)
}

// Combine overlays the non-zero fields of other onto o.
func (o *Option) Combine(other Option) {
	if len(other.Headers) > 0 {
		o.Headers = utils.MergeHeader(o.Headers, other.Headers)
	}
	if other.UserAgent != "" {
		o.UserAgent = other.UserAgent
	}
	if other.RetryCount > 0 {
		o.RetryCount = other.RetryCount
	}
	if other.Timeout > 0 {
		o.Timeout = other.Timeout
	}
	if other.CacheDir != "" {
		o.CacheDir = other.CacheDir
	}

	o.NoCache = o.NoCache || other.NoCache
	o.Progress = o.Progress || other.Progress
	o.Debug = o.Debug || other.Debug
	o.Verbose = o.Verbose || other.Verbose
	o.Silent = o.Silent || other.Silent
}

var DefaultOptions = &Option{
	Timeout:   30 * time.Second,
	UserAgent: defaultUserAgent,
}
