package mule

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config holds defaults applied to tasks created by the mule command.
type Config struct {
	// DownloadDir is where files are saved.
	// Empty means the user's downloads folder.
	DownloadDir string `yaml:"download_dir"`
	// RetryInterval is the fixed wait between attempts.
	RetryInterval time.Duration `yaml:"retry_interval"`
	// Timeout bounds connecting and individual body reads.
	Timeout time.Duration `yaml:"timeout"`
	// MaxAttempts bounds the retry loop, zero meaning unbounded.
	MaxAttempts int `yaml:"max_attempts"`
	// Proxy address used for requests, scheme optional.
	Proxy string `yaml:"proxy"`
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
	// RateLimit caps the download speed in bytes per second, zero meaning unlimited.
	RateLimit int64 `yaml:"rate_limit"`
}

// DefaultConfig for a new installation.
var DefaultConfig = Config{
	RetryInterval: 3 * time.Second,
	Timeout:       10 * time.Second,
}

// NewConfig returns a copy of DefaultConfig.
func NewConfig() *Config {
	c := DefaultConfig
	return &c
}

// LoadFile overrides the config with values from a YAML file.
func (c *Config) LoadFile(filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, c)
}
