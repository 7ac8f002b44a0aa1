// Package ratetracker measures the speed of a running transfer.
package ratetracker

import (
	"sync"
	"time"

	"github.com/rcrowley/go-metrics"
)

// Tracker accumulates byte counts and produces two views of the
// transfer speed: an instantaneous rate computed from the bytes moved
// since the previous Rate call, and a one-minute moving average kept
// by a metrics meter. The instantaneous rate is what a human watching
// the transfer wants; the meter feeds the stats snapshot.
type Tracker struct {
	meter metrics.Meter

	mu        sync.Mutex
	total     int64
	lastTotal int64
	lastTime  time.Time
}

// New returns a Tracker ready for use. Stop must be called when the
// transfer is finished to release the meter's ticker goroutine.
func New() *Tracker {
	return &Tracker{
		meter:    metrics.NewMeter(),
		lastTime: time.Now(),
	}
}

// Update records n transferred bytes.
func (t *Tracker) Update(n int64) {
	t.meter.Mark(n)
	t.mu.Lock()
	t.total += n
	t.mu.Unlock()
}

// Rate returns the transfer speed in bytes per second measured over the
// interval since the previous Rate call.
func (t *Tracker) Rate() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	elapsed := now.Sub(t.lastTime)
	if elapsed <= 0 {
		return 0
	}
	rate := int64(float64(t.total-t.lastTotal) / elapsed.Seconds())
	t.lastTotal = t.total
	t.lastTime = now
	return rate
}

// Total returns the number of bytes recorded since New.
func (t *Tracker) Total() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// SmoothedRate returns the one-minute moving average in bytes per second.
func (t *Tracker) SmoothedRate() float64 {
	return t.meter.Rate1()
}

// Stop releases the meter resources. The Tracker must not be used after Stop.
func (t *Tracker) Stop() {
	t.meter.Stop()
}
