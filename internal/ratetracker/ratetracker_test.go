package ratetracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	tr := New()
	defer tr.Stop()

	tr.Update(4096)
	tr.Update(4096)
	assert.Equal(t, int64(8192), tr.Total())

	time.Sleep(20 * time.Millisecond)
	rate := tr.Rate()
	assert.Greater(t, rate, int64(0))

	// No new bytes since the last call.
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, int64(0), tr.Rate())
}
