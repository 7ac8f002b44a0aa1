// Package integrity verifies that a downloaded file matches its expected size.
package integrity

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrNotExist is returned when the file is missing.
	ErrNotExist = errors.New("file does not exist")
	// ErrSizeMismatch is returned when the on-disk size differs from the expected size.
	ErrSizeMismatch = errors.New("file size does not match expected size")
	// ErrEmpty is returned when the file contains no data.
	ErrEmpty = errors.New("file is empty")
)

// headerLength is the number of leading bytes read to confirm the file content is accessible.
const headerLength = 1024

// Check returns nil if the file at path is intact: it exists, its size
// equals expected and its first bytes can be read. Pass a negative
// expected size to skip the size comparison; the emptiness check still
// applies since a zero-byte download is never valid.
func Check(path string, expected int64) error {
	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrNotExist
	}
	if err != nil {
		return err
	}
	if expected >= 0 && fi.Size() != expected {
		return fmt.Errorf("%w: have %d want %d", ErrSizeMismatch, fi.Size(), expected)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	buf := make([]byte, headerLength)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return err
	}
	if n == 0 {
		return ErrEmpty
	}
	return nil
}
