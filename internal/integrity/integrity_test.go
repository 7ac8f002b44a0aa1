package integrity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestCheckIntact(t *testing.T) {
	path := writeFile(t, "f", []byte("hello world"))
	assert.NoError(t, Check(path, 11))
}

func TestCheckMissing(t *testing.T) {
	err := Check(filepath.Join(t.TempDir(), "missing"), 10)
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestCheckSizeMismatch(t *testing.T) {
	path := writeFile(t, "f", []byte("hello"))
	err := Check(path, 11)
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestCheckEmpty(t *testing.T) {
	path := writeFile(t, "f", nil)
	err := Check(path, 0)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestCheckUnknownSize(t *testing.T) {
	// Negative expected size skips the size comparison but still
	// rejects an empty file.
	path := writeFile(t, "f", []byte("data"))
	assert.NoError(t, Check(path, -1))

	empty := writeFile(t, "e", nil)
	assert.ErrorIs(t, Check(empty, -1), ErrEmpty)
}
