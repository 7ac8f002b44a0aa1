package mule

import "time"

// Task describes a single file to download.
// A Task is read-only after it is passed to New.
type Task struct {
	// URL of the file to download. Required.
	URL string

	// Dest is the destination file path. Required. Partial data at this
	// path is the resume checkpoint; no other state is kept anywhere.
	Dest string

	// Proxy address used for both http and https requests.
	// Scheme is optional and defaults to http. Empty means direct connection.
	Proxy string

	// RetryInterval is the fixed wait between attempts.
	// Zero means DefaultConfig.RetryInterval.
	RetryInterval time.Duration

	// Timeout bounds connecting and, while streaming, each body read.
	// Zero means DefaultConfig.Timeout.
	Timeout time.Duration

	// MaxAttempts bounds the retry loop.
	// Zero retries until success or cancellation.
	MaxAttempts int

	// InsecureSkipVerify disables TLS certificate verification for this task.
	InsecureSkipVerify bool

	// RateLimit caps the download speed in bytes per second. Zero means unlimited.
	RateLimit int64
}
