package proxyurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	u, err := Normalize("127.0.0.1:6666")
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "127.0.0.1:6666", u.Host)

	u, err = Normalize("https://127.0.0.1:6666")
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)

	u, err = Normalize("socks5://127.0.0.1:1080")
	require.NoError(t, err)
	assert.Equal(t, "socks5", u.Scheme)
	assert.Equal(t, "127.0.0.1:1080", u.Host)
}

func TestNormalizeEmpty(t *testing.T) {
	u, err := Normalize("")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestNormalizeInvalid(t *testing.T) {
	_, err := Normalize("ftp://127.0.0.1:21")
	assert.Error(t, err)

	_, err = Normalize("http://")
	assert.Error(t, err)
}
