package mule

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v3"
	"github.com/dustin/go-humanize"
	"github.com/juju/ratelimit"

	"github.com/mule-dl/mule/internal/integrity"
	"github.com/mule-dl/mule/internal/logger"
	"github.com/mule-dl/mule/internal/probe"
	"github.com/mule-dl/mule/internal/proxyurl"
	"github.com/mule-dl/mule/internal/ratetracker"
	"github.com/mule-dl/mule/internal/transfer"
)

// Download drives one resumable transfer to completion.
// Create with New, start with Run.
type Download struct {
	task     Task
	log      logger.Logger
	tracker  *ratetracker.Tracker
	bucket   *ratelimit.Bucket
	notifier Notifier

	// probeClient carries an overall deadline; streamClient does not,
	// since a slow transfer may legitimately run for hours. Mid-stream
	// stalls are caught by the per-read timeout instead.
	probeClient  *http.Client
	streamClient *http.Client

	offset  int64 // atomic
	total   int64 // atomic
	attempt int32 // atomic
}

// Result is the terminal outcome of Run.
type Result struct {
	Outcome Outcome
	// Err explains a Failed outcome.
	Err error
	// Bytes on disk at exit. After a cancellation this is the offset
	// the next invocation will resume from.
	Bytes int64
	// Attempts made, including the final one.
	Attempts int
}

// New validates the task and prepares a Download.
func New(task Task) (*Download, error) {
	if task.URL == "" {
		return nil, errors.New("empty download url")
	}
	if task.Dest == "" {
		return nil, errors.New("empty destination path")
	}
	if task.RetryInterval <= 0 {
		task.RetryInterval = DefaultConfig.RetryInterval
	}
	if task.Timeout <= 0 {
		task.Timeout = DefaultConfig.Timeout
	}
	proxy, err := proxyurl.Normalize(task.Proxy)
	if err != nil {
		return nil, err
	}
	transport := &http.Transport{
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: task.InsecureSkipVerify}, // nolint: gosec
		DialContext:         (&net.Dialer{Timeout: task.Timeout}).DialContext,
		TLSHandshakeTimeout: task.Timeout,
		// Raw bytes only. An encoded body would make byte offsets
		// meaningless for ranged resume.
		DisableCompression: true,
	}
	if proxy != nil {
		transport.Proxy = http.ProxyURL(proxy)
	}
	d := &Download{
		task:         task,
		log:          logger.New("download " + filepath.Base(task.Dest)),
		tracker:      ratetracker.New(),
		probeClient:  &http.Client{Transport: transport, Timeout: task.Timeout},
		streamClient: &http.Client{Transport: transport},
		total:        probe.SizeUnknown,
	}
	if task.RateLimit > 0 {
		d.bucket = ratelimit.NewBucketWithRate(float64(task.RateLimit), task.RateLimit)
	}
	return d, nil
}

// SetNotifier registers the progress sink. Must be called before Run.
func (d *Download) SetNotifier(n Notifier) {
	d.notifier = n
}

// engineSink forwards transfer progress to the notifier and keeps the
// on-disk offset visible to Stats.
type engineSink struct {
	d  *Download
	an *asyncNotifier
}

func (s engineSink) Report(offset, total, rate int64) {
	atomic.StoreInt64(&s.d.offset, offset)
	s.an.send(Progress{Offset: offset, Total: total, Rate: rate})
}

// Run probes the remote size, then repeats ranged attempts until the
// destination file is complete, the attempt budget runs out, or ctx is
// cancelled. Cancellation keeps the partial file so a later Run resumes
// from the same byte.
func (d *Download) Run(ctx context.Context) Result {
	defer d.tracker.Stop()

	n := d.notifier
	if n == nil {
		n = NotifierFunc(func(Progress) {})
	}
	an := newAsyncNotifier(n)
	defer an.stop()
	sink := engineSink{d: d, an: an}

	info, err := probe.Probe(ctx, d.probeClient, d.task.URL)
	if err != nil {
		if ctx.Err() != nil {
			return Result{Outcome: Cancelled, Bytes: d.diskSize()}
		}
		d.log.Errorln("probe failed:", err)
		return Result{Outcome: Failed, Err: err}
	}
	atomic.StoreInt64(&d.total, info.Size)
	if info.Size == probe.SizeUnknown {
		d.log.Warning("server declared no file size; existing data cannot be verified, starting over")
	} else {
		d.log.Infof("downloading %s (%s)", d.task.URL, humanize.IBytes(uint64(info.Size)))
	}

	bo := backoff.NewConstantBackOff(d.task.RetryInterval)
	var attempt int
	for {
		attempt++
		atomic.StoreInt32(&d.attempt, int32(attempt))
		if d.task.MaxAttempts > 0 && attempt > d.task.MaxAttempts {
			return Result{Outcome: Failed, Err: ErrAttemptsExhausted, Bytes: d.diskSize(), Attempts: attempt - 1}
		}

		offset, done, err := d.prepare()
		if err == nil && done {
			d.log.Infof("file is complete: %s", d.task.Dest)
			return Result{Outcome: Succeeded, Bytes: offset, Attempts: attempt}
		}
		if err == nil {
			atomic.StoreInt64(&d.offset, offset)
			if offset > 0 {
				d.log.Infof("attempt %d: resuming from byte %d", attempt, offset)
			} else {
				d.log.Infof("attempt %d: starting from the beginning", attempt)
			}
			var newOffset int64
			newOffset, err = transfer.Run(ctx, d.streamClient, transfer.Options{
				URL:         d.task.URL,
				Dest:        d.task.Dest,
				Offset:      offset,
				Total:       atomic.LoadInt64(&d.total),
				ReadTimeout: d.task.Timeout,
				Bucket:      d.bucket,
				Tracker:     d.tracker,
				Sink:        sink,
			})
			atomic.StoreInt64(&d.offset, newOffset)
			if err == nil {
				err = integrity.Check(d.task.Dest, atomic.LoadInt64(&d.total))
				if err == nil {
					d.log.Infof("download complete: %s", d.task.Dest)
					return Result{Outcome: Succeeded, Bytes: newOffset, Attempts: attempt}
				}
				// Short or broken file. The next iteration re-reads the
				// disk state and decides between resuming and starting over.
			}
		}
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			saved := d.diskSize()
			d.log.Noticef("cancelled; %d bytes saved, rerun to resume from there", saved)
			return Result{Outcome: Cancelled, Bytes: saved, Attempts: attempt}
		}
		wait := bo.NextBackOff()
		d.log.Warningf("attempt %d failed: %s; %s downloaded, retrying in %s",
			attempt, err, humanize.IBytes(uint64(d.diskSize())), wait)
		sink.Report(d.diskSize(), atomic.LoadInt64(&d.total), 0)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return Result{Outcome: Cancelled, Bytes: d.diskSize(), Attempts: attempt}
		}
	}
}

// prepare inspects the destination file before an attempt and returns the
// resume offset. The on-disk size is the only authority here; the offset
// remembered from a previous attempt may be stale if the process was killed
// between a flush and a bookkeeping update.
func (d *Download) prepare() (offset int64, done bool, err error) {
	total := atomic.LoadInt64(&d.total)
	if total == probe.SizeUnknown {
		// Without a size there is no way to tell a complete file from a
		// truncated one. Never resume into a file we cannot verify.
		if err := os.Remove(d.task.Dest); err != nil && !os.IsNotExist(err) {
			return 0, false, err
		}
		return 0, false, nil
	}
	fi, err := os.Stat(d.task.Dest)
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if fi.Size() >= total {
		cerr := integrity.Check(d.task.Dest, total)
		if cerr == nil {
			return total, true, nil
		}
		d.log.Warningf("existing file is corrupt (%s); downloading from scratch", cerr)
		if err := os.Remove(d.task.Dest); err != nil {
			return 0, false, err
		}
		return 0, false, nil
	}
	return fi.Size(), false, nil
}

func (d *Download) diskSize() int64 {
	fi, err := os.Stat(d.task.Dest)
	if err != nil {
		return 0
	}
	return fi.Size()
}
