package respbuild

import (
	"io"
	"sync/atomic"
	"time"
)

// ProgressCallback defines the callback function for progress updates
type ProgressCallback func(current, total int64, description string)

// progress tracks progress in concurrent environments with callback support.
type progress struct {
	Total       int64
	Current     atomic.Int64
	Description string
	callback    ProgressCallback
	lastUpdate  atomic.Int64
	finished    atomic.Bool
}

func newProgress(total int64, description string, callback ProgressCallback) *progress {
	if total < 0 {
		total = 0
	}
	return &progress{
		Total:       total,
		Description: description,
		callback:    callback,
	}
}

// Add increments the progress by the specified amount.
func (p *progress) Add(num int64) {
	if num < 0 {
		num = 0
	}
	current := p.Current.Add(num)

	// Rate limit callback calls to avoid performance issues
	if p.callback != nil {
		now := time.Now().UnixMilli()
		lastUpdate := p.lastUpdate.Load()
		if now-lastUpdate > 100 { // Update at most every 100ms
			if p.lastUpdate.CompareAndSwap(lastUpdate, now) {
				p.callback(current, p.Total, p.Description)
			}
		}
	}
}

// Finish reports the final position once. Unknown totals report what was read.
func (p *progress) Finish() {
	if !p.finished.CompareAndSwap(false, true) {
		return
	}
	total := p.Total
	if total == 0 {
		total = p.Current.Load()
	}
	p.Current.Store(total)
	if p.callback != nil {
		p.callback(total, total, p.Description)
	}
}

// NewProgressReader wraps r so that callback observes every read.
// total may be zero when the size is unknown.
func NewProgressReader(r io.Reader, total int64, description string, callback ProgressCallback) io.ReadCloser {
	return &progressReader{Reader: r, bar: newProgress(total, description, callback)}
}

// progressReader wraps an io.Reader and updates the progress as data is read.
type progressReader struct {
	io.Reader
	bar *progress
}

// Read reads data and updates the progress.
func (r *progressReader) Read(p []byte) (n int, err error) {
	n, err = r.Reader.Read(p)
	r.bar.Add(int64(n))
	if err == io.EOF {
		r.bar.Finish()
	}
	return
}

// Close closes the underlying reader if it implements io.Closer and finishes the progress.
func (r *progressReader) Close() error {
	var err error
	if closer, ok := r.Reader.(io.Closer); ok {
		err = closer.Close()
	}
	r.bar.Finish()
	return err
}
