package mule

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, 3*time.Second, c.RetryInterval)
	assert.Equal(t, 10*time.Second, c.Timeout)
	assert.Zero(t, c.MaxAttempts)
	assert.Empty(t, c.DownloadDir)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mule.yaml")
	body := "download_dir: /tmp/dl\nproxy: 127.0.0.1:8080\nmax_attempts: 5\ninsecure_skip_verify: true\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	c := NewConfig()
	require.NoError(t, c.LoadFile(path))
	assert.Equal(t, "/tmp/dl", c.DownloadDir)
	assert.Equal(t, "127.0.0.1:8080", c.Proxy)
	assert.Equal(t, 5, c.MaxAttempts)
	assert.True(t, c.InsecureSkipVerify)
	// Values absent from the file keep their defaults.
	assert.Equal(t, 3*time.Second, c.RetryInterval)
}

func TestLoadFileMissing(t *testing.T) {
	c := NewConfig()
	err := c.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, os.IsNotExist(err))
}
