// Package probe determines the total size of a remote file before downloading it.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// SizeUnknown is reported when the server does not declare a size.
// Matches the net/http convention for unknown Content-Length.
const SizeUnknown int64 = -1

// rangeProbeLength is the number of bytes requested by the fallback
// ranged probe. Only the Content-Range header of the response is used.
const rangeProbeLength = 1024

// Info is the result of a successful probe.
type Info struct {
	// Size is the total size of the remote file in bytes,
	// or SizeUnknown when the server does not declare one.
	Size int64
}

// Error is a fatal probe failure. It means the resource is unreachable or
// misaddressed, so retrying the download cannot help.
type Error struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("probe %s: %s", e.URL, e.Err.Error())
	}
	return fmt.Sprintf("probe %s: unexpected status code: %d", e.URL, e.StatusCode)
}

func (e *Error) Unwrap() error { return e.Err }

// Probe issues a HEAD request to learn the size of the file at url.
// When the HEAD response carries no size, a ranged GET for the first
// kilobyte is tried and the total is read from the Content-Range header.
// A server that ignores Range leaves the size unknown; that alone is
// not an error.
func Probe(ctx context.Context, client *http.Client, url string) (Info, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return Info{}, &Error{URL: url, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Info{}, &Error{URL: url, Err: err}
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Info{}, &Error{URL: url, StatusCode: resp.StatusCode}
	}
	if resp.ContentLength > 0 {
		return Info{Size: resp.ContentLength}, nil
	}
	return probeRange(ctx, client, url)
}

// probeRange recovers the total size from a partial response.
func probeRange(ctx context.Context, client *http.Client, url string) (Info, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Info{}, &Error{URL: url, Err: err}
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=0-%d", rangeProbeLength-1))
	resp, err := client.Do(req)
	if err != nil {
		return Info{}, &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusPartialContent:
		if size, ok := parseTotal(resp.Header.Get("Content-Range")); ok {
			return Info{Size: size}, nil
		}
		return Info{Size: SizeUnknown}, nil
	case http.StatusOK:
		// Server ignored the Range header. Size stays unknown.
		return Info{Size: SizeUnknown}, nil
	default:
		return Info{}, &Error{URL: url, StatusCode: resp.StatusCode}
	}
}

// parseTotal extracts the total size from a header like "bytes 0-1023/4096".
// A server may send "bytes 0-1023/*" when it does not know the total.
func parseTotal(contentRange string) (int64, bool) {
	i := strings.LastIndexByte(contentRange, '/')
	if i == -1 {
		return 0, false
	}
	total, err := strconv.ParseInt(contentRange[i+1:], 10, 64)
	if err != nil || total <= 0 {
		return 0, false
	}
	return total, true
}
