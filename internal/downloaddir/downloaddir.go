// Package downloaddir resolves the user's downloads folder.
package downloaddir

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Default returns the downloads folder under the user's home directory,
// creating it when missing.
func Default() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, "Downloads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
