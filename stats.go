package mule

import "sync/atomic"

// Stats is a snapshot of a running download.
// Safe to call from any goroutine while Run is in progress.
type Stats struct {
	// BytesDownloaded is the number of bytes currently on disk.
	BytesDownloaded int64
	// BytesTotal is the expected file size, negative when unknown.
	BytesTotal int64
	// Speed is the one-minute moving average in bytes per second.
	Speed int64
	// Attempt is the number of the attempt in progress, starting at 1.
	Attempt int
}

// Stats returns a snapshot of the download.
func (d *Download) Stats() Stats {
	return Stats{
		BytesDownloaded: atomic.LoadInt64(&d.offset),
		BytesTotal:      atomic.LoadInt64(&d.total),
		Speed:           int64(d.tracker.SmoothedRate()),
		Attempt:         int(atomic.LoadInt32(&d.attempt)),
	}
}
