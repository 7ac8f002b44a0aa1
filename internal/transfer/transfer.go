// Package transfer performs a single ranged download attempt, streaming the
// response body to the destination file.
package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/juju/ratelimit"

	"github.com/mule-dl/mule/internal/ratetracker"
)

// blockSize is the unit of streaming between response body and file.
const blockSize = 4096

// reportInterval is the minimum period between progress reports.
const reportInterval = time.Second

// Sink receives progress updates during a transfer.
// Report must not block; implementations drop updates when busy.
type Sink interface {
	Report(offset, total, rate int64)
}

// Options describe one attempt.
type Options struct {
	URL    string
	Dest   string
	Offset int64 // resume point, derived from the on-disk file size
	Total  int64 // negative when the server declared no size

	// ReadTimeout aborts the attempt when the body delivers no bytes
	// for this long. The bytes already flushed stay on disk.
	ReadTimeout time.Duration

	// Bucket, when set, caps the download speed.
	Bucket *ratelimit.Bucket

	Tracker *ratetracker.Tracker
	Sink    Sink
}

// Run downloads from o.Offset to the end of the remote file and returns the
// new resume offset, which always equals the destination file size at return.
// A nil error means the body was consumed to EOF; whether the file is complete
// is for the caller to verify. When ctx is cancelled the context error is
// returned and the partial file is preserved.
func Run(ctx context.Context, client *http.Client, o Options) (int64, error) {
	attemptCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, o.URL, nil)
	if err != nil {
		return o.Offset, err
	}
	// The header is sent even for offset zero. A 206 answer then promises
	// the body starts exactly where the file ends, including the ends-at-
	// byte-zero case of an empty partial file.
	offset := o.Offset
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	resp, err := client.Do(req)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return offset, cerr
		}
		return offset, err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK, http.StatusPartialContent:
	default:
		return offset, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if offset > 0 && resp.StatusCode == http.StatusOK {
		// Server ignored the Range header and is sending the whole
		// file. Start the file over instead of appending a copy.
		offset = 0
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	if offset == 0 {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(o.Dest, flags, 0644)
	if err != nil {
		return offset, err
	}
	defer f.Close()

	// The read timeout is enforced by cancelling the request context
	// unless the timer is pushed forward after each successful read.
	timer := time.AfterFunc(o.ReadTimeout, cancel)
	defer timer.Stop()

	buf := make([]byte, blockSize)
	lastReport := time.Now()
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			// Debit exactly what was read. A short read or the final
			// partial block must not pay for a whole one.
			if o.Bucket != nil {
				d := o.Bucket.Take(int64(n))
				select {
				case <-time.After(d):
				case <-ctx.Done():
					return offset, ctx.Err()
				}
			}
			// A throttle pause is deliberate, not a stall.
			timer.Reset(o.ReadTimeout)
			if _, werr := f.Write(buf[:n]); werr != nil {
				return offset, werr
			}
			offset += int64(n)
			o.Tracker.Update(int64(n))
			if time.Since(lastReport) >= reportInterval {
				o.Sink.Report(offset, o.Total, o.Tracker.Rate())
				lastReport = time.Now()
			}
		}
		if rerr == io.EOF {
			o.Sink.Report(offset, o.Total, o.Tracker.Rate())
			return offset, nil
		}
		if rerr != nil {
			if cerr := ctx.Err(); cerr != nil {
				// User cancellation, not a network failure.
				return offset, cerr
			}
			if attemptCtx.Err() != nil {
				return offset, fmt.Errorf("read timeout after %s: %w", o.ReadTimeout, rerr)
			}
			return offset, rerr
		}
	}
}
